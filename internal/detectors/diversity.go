package detectors

import (
	"github.com/fraudgraph/engine/internal/domain"
	"github.com/fraudgraph/engine/internal/graph"
)

// DetectCounterpartyDiversity fires for accounts with combined degree ≥10
// whose ratio of unique counterparties to total transactions is below 0.3
// (spec §4.3.17).
func DetectCounterpartyDiversity(g *graph.Graph) map[string]domain.LowDiversitySignal {
	out := make(map[string]domain.LowDiversitySignal)

	for _, acct := range g.AllAccounts() {
		n := g.Degree(acct)
		if n < 10 {
			continue
		}

		counts := make(map[string]int)
		for _, t := range g.Outgoing(acct) {
			counts[t.ReceiverID]++
		}
		for _, t := range g.Incoming(acct) {
			counts[t.SenderID]++
		}

		ratio := float64(len(counts)) / float64(n)
		if ratio >= 0.3 {
			continue
		}

		var top int
		for _, c := range counts {
			if c > top {
				top = c
			}
		}

		out[acct] = domain.LowDiversitySignal{
			DiversityRatio:       ratio,
			TopCounterpartyShare: float64(top) / float64(n),
		}
	}
	return out
}
