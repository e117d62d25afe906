package detectors

import (
	"github.com/fraudgraph/engine/internal/domain"
	"github.com/fraudgraph/engine/internal/graph"
)

// DetectShell fires for accounts whose total degree is in [1,3] and which
// have at least one incoming and one outgoing transaction (spec §4.3.3).
// A degree-1 account can never qualify — it's missing one direction.
func DetectShell(g *graph.Graph) map[string]domain.ShellSignal {
	out := make(map[string]domain.ShellSignal)
	for _, acct := range g.AllAccounts() {
		in := g.InDegree(acct)
		outDeg := g.OutDegree(acct)
		total := in + outDeg
		if total >= 1 && total <= 3 && in >= 1 && outDeg >= 1 {
			out[acct] = domain.ShellSignal{InDegree: in, OutDegree: outDeg}
		}
	}
	return out
}
