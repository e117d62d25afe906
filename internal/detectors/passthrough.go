package detectors

import (
	"time"

	"github.com/fraudgraph/engine/internal/domain"
	"github.com/fraudgraph/engine/internal/graph"
)

const passthroughWindow = 6 * time.Hour
const passthroughCap = 100

// DetectPassthrough pairs each incoming transaction with outgoing
// transactions that follow within 6 hours, capping at 100 pairs per
// account (spec §4.3.4).
func DetectPassthrough(g *graph.Graph) map[string]domain.PassthroughSignal {
	out := make(map[string]domain.PassthroughSignal)

	for _, acct := range g.AllAccounts() {
		incoming := g.IncomingSorted(acct)
		outgoing := g.OutgoingSorted(acct)
		if len(incoming) == 0 || len(outgoing) == 0 {
			continue
		}

		pairs := 0
		for _, in := range incoming {
			deadline := in.Timestamp.Add(passthroughWindow)
			for _, o := range outgoing {
				if pairs >= passthroughCap {
					break
				}
				if o.Timestamp.Before(in.Timestamp) || o.Timestamp.After(deadline) {
					continue
				}
				pairs++
			}
			if pairs >= passthroughCap {
				break
			}
		}

		if pairs > 0 {
			out[acct] = domain.PassthroughSignal{PairCount: pairs}
		}
	}
	return out
}
