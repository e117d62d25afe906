package detectors

import (
	"github.com/fraudgraph/engine/internal/domain"
	"github.com/fraudgraph/engine/internal/graph"
	"github.com/fraudgraph/engine/internal/stats"
)

// DetectAmountAnomaly fires when more than 30% of an account's
// transactions fall outside the global IQR fences (spec §4.3.8).
func DetectAmountAnomaly(g *graph.Graph, st *stats.Cache) map[string]domain.AmountAnomalySignal {
	out := make(map[string]domain.AmountAnomalySignal)
	for _, acct := range g.AllAccounts() {
		all := allTransactions(g, acct)
		if len(all) == 0 {
			continue
		}
		outliers := 0
		for _, t := range all {
			if t.Amount < st.LowerFence || t.Amount > st.UpperFence {
				outliers++
			}
		}
		frac := float64(outliers) / float64(len(all))
		if frac > 0.3 {
			out[acct] = domain.AmountAnomalySignal{OutlierFraction: frac}
		}
	}
	return out
}
