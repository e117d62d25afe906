package community

import (
	"math"
	"sort"

	"github.com/fraudgraph/engine/internal/domain"
	"github.com/fraudgraph/engine/internal/graph"
)

// buildCommunityMetrics computes the per-community record from spec §4.4:
// density, central beneficiaries, amount consistency (1 minus the
// variance-to-mean ratio, capped at 1), temporal clustering
// (coefficient-of-variation form — Open Question #2 resolves to this form,
// not the 1-minus-ratio alternative), smurfing score, and pattern
// classification.
func buildCommunityMetrics(g *graph.Graph, members []string) domain.Community {
	memberSet := make(map[string]struct{}, len(members))
	for _, m := range members {
		memberSet[m] = struct{}{}
	}

	var internal []domain.Transaction
	inDegree := make(map[string]int)
	for _, tx := range g.AllTransactions() {
		_, sOK := memberSet[tx.SenderID]
		_, rOK := memberSet[tx.ReceiverID]
		if sOK && rOK {
			internal = append(internal, tx)
			inDegree[tx.ReceiverID]++
		}
	}

	size := len(members)
	var density float64
	if size > 1 {
		density = float64(len(internal)) / float64(size*(size-1))
	}

	var totalInDegree int
	for _, m := range members {
		totalInDegree += inDegree[m]
	}
	avgInDegree := float64(totalInDegree) / float64(size)

	var centrals []string
	for _, m := range members {
		if float64(inDegree[m]) > 2*avgInDegree {
			centrals = append(centrals, m)
		}
	}
	sort.Strings(centrals)

	mean := meanAmount(internal)
	variance := varianceAmount(internal, mean)
	var consistency float64
	if mean > 0 {
		consistency = 1 - math.Min(variance/mean, 1)
	}

	temporal := temporalClusteringCV(internal)

	var volume float64
	for _, tx := range internal {
		volume += tx.Amount
	}

	c := domain.Community{
		Members:              append([]string{}, members...),
		Density:              density,
		CentralBeneficiaries: centrals,
		AmountConsistency:    consistency,
		TemporalClustering:   temporal,
		InternalVolume:       volume,
	}
	c.SmurfingScore = smurfingScore(c, len(centrals))
	c.PatternClass = classify(c, len(centrals))
	return c
}

// smurfingScore implements spec §4.4's weighted formula.
func smurfingScore(c domain.Community, centrals int) float64 {
	return 0.25*math.Min(1.5*c.Density, 1) +
		0.25*math.Min(float64(centrals)/2, 1) +
		0.30*c.AmountConsistency +
		0.20*c.TemporalClustering
}

// classify applies spec §4.4's precedence order.
func classify(c domain.Community, centrals int) string {
	switch {
	case c.AmountConsistency > 0.85:
		return domain.PatternStructuredSmurfing
	case c.TemporalClustering > 0.7:
		return domain.PatternCoordinatedBurstSmurfing
	case centrals == 1 && c.Density > 0.2:
		return domain.PatternSingleBeneficiarySmurfing
	case centrals >= 2 && c.Density > 0.3:
		return domain.PatternMultiBeneficiaryRing
	default:
		return domain.PatternDistributedSmurfingNetwork
	}
}

// temporalClusteringCV computes the coefficient-of-variation form of
// temporal clustering over sorted internal inter-arrival times: 1 minus
// the ratio of their standard deviation to their mean, clamped to [0,1].
// A zero mean gap with events present (near-simultaneous activity) is
// defined as maximal clustering; fewer than two internal events carry no
// inter-arrival evidence at all.
func temporalClusteringCV(txs []domain.Transaction) float64 {
	if len(txs) < 2 {
		return 0
	}

	sorted := append([]domain.Transaction{}, txs...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Timestamp.Before(sorted[j].Timestamp) })

	deltas := make([]float64, len(sorted)-1)
	for i := 1; i < len(sorted); i++ {
		deltas[i-1] = sorted[i].Timestamp.Sub(sorted[i-1].Timestamp).Seconds()
	}

	mean := meanFloat(deltas)
	if mean == 0 {
		return 1
	}

	var sq float64
	for _, d := range deltas {
		diff := d - mean
		sq += diff * diff
	}
	stddev := math.Sqrt(sq / float64(len(deltas)))

	v := 1 - stddev/mean
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func meanAmount(txs []domain.Transaction) float64 {
	if len(txs) == 0 {
		return 0
	}
	var sum float64
	for _, t := range txs {
		sum += t.Amount
	}
	return sum / float64(len(txs))
}

func varianceAmount(txs []domain.Transaction, mean float64) float64 {
	if len(txs) == 0 {
		return 0
	}
	var sq float64
	for _, t := range txs {
		d := t.Amount - mean
		sq += d * d
	}
	return sq / float64(len(txs))
}

func meanFloat(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}
