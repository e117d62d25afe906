package detectors

import (
	"github.com/fraudgraph/engine/internal/domain"
	"github.com/fraudgraph/engine/internal/graph"
)

// DetectBurst fires for accounts with a maximal run of at least 3
// consecutive inter-arrival gaps below one fifth of the account's mean gap
// (spec §4.3.10).
func DetectBurst(g *graph.Graph) map[string]domain.BurstSignal {
	out := make(map[string]domain.BurstSignal)
	for _, acct := range g.AllAccounts() {
		if g.Degree(acct) < 10 {
			continue
		}
		merged := mergedSortedByTime(g.OutgoingSorted(acct), g.IncomingSorted(acct))
		if len(merged) < 2 {
			continue
		}

		gaps := make([]float64, len(merged)-1)
		var sum float64
		for i := 1; i < len(merged); i++ {
			gaps[i-1] = merged[i].Timestamp.Sub(merged[i-1].Timestamp).Seconds()
			sum += gaps[i-1]
		}
		mean := sum / float64(len(gaps))
		if mean <= 0 {
			continue
		}
		threshold := 0.2 * mean

		var maxRun, run int
		for _, gap := range gaps {
			if gap < threshold {
				run++
				if run > maxRun {
					maxRun = run
				}
			} else {
				run = 0
			}
		}

		if maxRun >= 3 {
			out[acct] = domain.BurstSignal{MaxBurstLength: maxRun}
		}
	}
	return out
}
