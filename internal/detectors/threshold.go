package detectors

import (
	"github.com/fraudgraph/engine/internal/domain"
	"github.com/fraudgraph/engine/internal/graph"
)

// DetectThresholdAvoidance fires when an account's mean transaction amount
// lies in [9000, 9999] — just under a common regulatory reporting
// threshold (spec §4.3.6). The payload's clustering consistency is the
// fraction of the account's own transactions that also fall in that band.
func DetectThresholdAvoidance(g *graph.Graph) map[string]domain.ThresholdAvoidanceSignal {
	out := make(map[string]domain.ThresholdAvoidanceSignal)
	for _, acct := range g.AllAccounts() {
		all := allTransactions(g, acct)
		if len(all) == 0 {
			continue
		}
		mean := meanAmount(all)
		if mean < 9000 || mean > 9999 {
			continue
		}
		clustered := 0
		for _, t := range all {
			if t.Amount >= 9000 && t.Amount <= 9999 {
				clustered++
			}
		}
		out[acct] = domain.ThresholdAvoidanceSignal{
			MeanAmount:            mean,
			ClusteringConsistency: float64(clustered) / float64(len(all)),
		}
	}
	return out
}
