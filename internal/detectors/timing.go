package detectors

import (
	"time"

	"github.com/fraudgraph/engine/internal/domain"
	"github.com/fraudgraph/engine/internal/graph"
)

// DetectUnusualTiming fires for accounts with at least 5 transactions
// where more than half land in the local night window [23:00, 05:00) or
// more than 70% fall on a weekend (spec §4.3.9). Hours and weekdays are
// read from the timestamp's own calendar, no timezone conversion.
func DetectUnusualTiming(g *graph.Graph) map[string]domain.UnusualTimingSignal {
	out := make(map[string]domain.UnusualTimingSignal)
	for _, acct := range g.AllAccounts() {
		all := allTransactions(g, acct)
		if len(all) < 5 {
			continue
		}

		var night, weekend int
		for _, t := range all {
			h := t.Timestamp.Hour()
			if h >= 23 || h < 5 {
				night++
			}
			if wd := t.Timestamp.Weekday(); wd == time.Saturday || wd == time.Sunday {
				weekend++
			}
		}

		nightFrac := float64(night) / float64(len(all))
		weekendFrac := float64(weekend) / float64(len(all))
		if nightFrac > 0.5 || weekendFrac > 0.7 {
			out[acct] = domain.UnusualTimingSignal{NightFraction: nightFrac, WeekendFraction: weekendFrac}
		}
	}
	return out
}
