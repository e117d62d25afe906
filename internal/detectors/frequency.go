package detectors

import (
	"github.com/fraudgraph/engine/internal/domain"
	"github.com/fraudgraph/engine/internal/graph"
	"github.com/fraudgraph/engine/internal/stats"
)

// DetectFrequencyAnomaly fires for accounts with combined degree ≥20 whose
// mean transactions per day, over the observed time span, exceeds 20
// (spec §4.3.13).
func DetectFrequencyAnomaly(g *graph.Graph, st *stats.Cache) map[string]domain.FrequencyAnomalySignal {
	out := make(map[string]domain.FrequencyAnomalySignal)
	for _, acct := range g.AllAccounts() {
		deg := g.Degree(acct)
		if deg < 20 {
			continue
		}
		txPerDay := float64(deg) / st.SpanDays()
		if txPerDay > 20 {
			out[acct] = domain.FrequencyAnomalySignal{TxPerDay: txPerDay}
		}
	}
	return out
}
