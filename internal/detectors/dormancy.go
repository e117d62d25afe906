package detectors

import (
	"github.com/fraudgraph/engine/internal/domain"
	"github.com/fraudgraph/engine/internal/graph"
)

// DetectDormancy fires when the longest gap between an account's
// consecutive events exceeds 30 days and at least 3 events follow it
// (spec §4.3.11).
func DetectDormancy(g *graph.Graph) map[string]domain.DormancySignal {
	out := make(map[string]domain.DormancySignal)
	for _, acct := range g.AllAccounts() {
		merged := mergedSortedByTime(g.OutgoingSorted(acct), g.IncomingSorted(acct))
		if len(merged) < 2 {
			continue
		}

		maxGapIdx := 0
		var maxGap float64
		for i := 1; i < len(merged); i++ {
			gap := merged[i].Timestamp.Sub(merged[i-1].Timestamp).Hours() / 24
			if gap > maxGap {
				maxGap = gap
				maxGapIdx = i
			}
		}

		eventsAfter := len(merged) - maxGapIdx
		if maxGap > 30 && eventsAfter >= 3 {
			out[acct] = domain.DormancySignal{GapDays: maxGap, EventsAfter: eventsAfter}
		}
	}
	return out
}
