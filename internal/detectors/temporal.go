package detectors

import (
	"github.com/fraudgraph/engine/internal/domain"
	"github.com/fraudgraph/engine/internal/graph"
)

// DetectTemporalClustering bins an account's transactions into a 24-hour
// local-hour histogram and fires when the hours within 80% of the peak
// bin number 3 or fewer and together account for more than half of the
// account's activity (spec §4.3.19). This is per-account self clustering,
// distinct from the community-level temporal clustering metric in the
// Louvain stage.
func DetectTemporalClustering(g *graph.Graph) map[string]domain.TemporalClusteringSignal {
	out := make(map[string]domain.TemporalClusteringSignal)

	for _, acct := range g.AllAccounts() {
		all := allTransactions(g, acct)
		if len(all) == 0 {
			continue
		}

		var hist [24]int
		for _, t := range all {
			hist[t.Timestamp.Hour()]++
		}

		peak := 0
		for _, c := range hist {
			if c > peak {
				peak = c
			}
		}
		if peak == 0 {
			continue
		}

		threshold := 0.8 * float64(peak)
		var nearPeakHours, nearPeakCount int
		for _, c := range hist {
			if c > 0 && float64(c) >= threshold {
				nearPeakHours++
				nearPeakCount += c
			}
		}

		concentration := float64(nearPeakCount) / float64(len(all))
		if nearPeakHours <= 3 && concentration > 0.5 {
			out[acct] = domain.TemporalClusteringSignal{
				SingleHour:    nearPeakHours == 1,
				Concentration: concentration,
			}
		}
	}
	return out
}
