package detectors

import (
	"time"

	"github.com/fraudgraph/engine/internal/domain"
	"github.com/fraudgraph/engine/internal/graph"
)

var velocityWindows = []time.Duration{time.Hour, 6 * time.Hour, 24 * time.Hour, 72 * time.Hour}

// DetectVelocity fires when an account's peak transaction rate, measured
// over sliding windows of 1, 6, 24, and 72 hours, exceeds 5 per hour
// (spec §4.3.7).
func DetectVelocity(g *graph.Graph) map[string]domain.VelocitySignal {
	out := make(map[string]domain.VelocitySignal)
	for _, acct := range g.AllAccounts() {
		if g.Degree(acct) < 10 {
			continue
		}
		merged := mergedSortedByTime(g.OutgoingSorted(acct), g.IncomingSorted(acct))
		var peak float64
		for _, w := range velocityWindows {
			if r := maxRatePerHour(merged, w); r > peak {
				peak = r
			}
		}
		if peak > 5 {
			out[acct] = domain.VelocitySignal{PeakRatePerHour: peak}
		}
	}
	return out
}
