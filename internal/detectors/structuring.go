package detectors

import (
	"github.com/fraudgraph/engine/internal/domain"
	"github.com/fraudgraph/engine/internal/graph"
)

// DetectStructuring fires when more than 70% of an account's transactions
// are round amounts — exact multiples of 1000, 500, or 100 (spec §4.3.5).
func DetectStructuring(g *graph.Graph) map[string]domain.StructuringSignal {
	out := make(map[string]domain.StructuringSignal)
	for _, acct := range g.AllAccounts() {
		all := allTransactions(g, acct)
		if len(all) == 0 {
			continue
		}
		round := 0
		for _, t := range all {
			if isRoundAmount(t.Amount) {
				round++
			}
		}
		frac := float64(round) / float64(len(all))
		if frac > 0.7 {
			out[acct] = domain.StructuringSignal{RoundFraction: frac}
		}
	}
	return out
}
