package scoring

import (
	"math"

	"github.com/fraudgraph/engine/internal/domain"
	"github.com/fraudgraph/engine/internal/graph"
)

// legitimacyPenalty evaluates the five behavioral rules from spec §4.5 and
// returns the total penalty (a non-negative number to subtract) for an
// account. Rules are independent; an account can match more than one.
func legitimacyPenalty(g *graph.Graph, acct string) float64 {
	var total float64
	total += payrollPenalty(g, acct)
	total += merchantPenalty(g, acct)
	total += utilityPenalty(g, acct)
	total += businessPenalty(g, acct)
	total += savingsPenalty(g, acct)
	return total
}

func payrollPenalty(g *graph.Graph, acct string) float64 {
	out := g.OutgoingSorted(acct)
	if len(out) < 10 {
		return 0
	}
	uniqueAmounts := countUniqueAmounts(out)
	if uniqueAmounts > 3 {
		return 0
	}
	mean := meanIntervalDays(out)
	if mean >= 6 && mean <= 31 {
		return 25
	}
	return 15
}

func merchantPenalty(g *graph.Graph, acct string) float64 {
	in := g.Incoming(acct)
	if len(in) < 20 {
		return 0
	}
	mean := meanAmount(in)
	if mean >= 100 {
		return 0
	}
	diversity := senderDiversity(in)
	if diversity > 0.5 {
		return 20
	}
	return 10
}

func utilityPenalty(g *graph.Graph, acct string) float64 {
	out := g.OutgoingSorted(acct)
	if len(out) < 5 || !allToOneReceiver(out) {
		return 0
	}
	if lowIntervalVariance(out) {
		return 15
	}
	return 8
}

func businessPenalty(g *graph.Graph, acct string) float64 {
	total := g.Degree(acct)
	if total <= 50 {
		return 0
	}
	in, out := g.InDegree(acct), g.OutDegree(acct)
	if out == 0 {
		return 0
	}
	ratio := float64(in) / float64(out)
	if ratio < 0.5 || ratio > 2.0 {
		return 0
	}
	if counterpartyDiversity(g, acct) > 0.3 {
		return 20
	}
	return 0
}

func savingsPenalty(g *graph.Graph, acct string) float64 {
	out := g.OutgoingSorted(acct)
	if len(out) < 3 || len(out) > 20 || !allToOneReceiver(out) {
		return 0
	}
	mean := meanAmount(out)
	if mean == 0 {
		return 0
	}
	variance := varianceAmount(out, mean)
	cv := math.Sqrt(variance) / mean
	if cv*cv < 0.1 {
		return 15
	}
	return 0
}

func countUniqueAmounts(txs []domain.Transaction) int {
	seen := make(map[float64]struct{})
	for _, t := range txs {
		seen[t.Amount] = struct{}{}
	}
	return len(seen)
}

func meanIntervalDays(sorted []domain.Transaction) float64 {
	if len(sorted) < 2 {
		return 0
	}
	var sum float64
	for i := 1; i < len(sorted); i++ {
		sum += sorted[i].Timestamp.Sub(sorted[i-1].Timestamp).Hours() / 24
	}
	return sum / float64(len(sorted)-1)
}

func lowIntervalVariance(sorted []domain.Transaction) bool {
	if len(sorted) < 3 {
		return true
	}
	intervals := make([]float64, len(sorted)-1)
	var sum float64
	for i := 1; i < len(sorted); i++ {
		intervals[i-1] = sorted[i].Timestamp.Sub(sorted[i-1].Timestamp).Hours() / 24
		sum += intervals[i-1]
	}
	mean := sum / float64(len(intervals))
	if mean == 0 {
		return true
	}
	var sq float64
	for _, v := range intervals {
		d := v - mean
		sq += d * d
	}
	variance := sq / float64(len(intervals))
	return variance/mean < 0.2
}

func allToOneReceiver(out []domain.Transaction) bool {
	if len(out) == 0 {
		return false
	}
	first := out[0].ReceiverID
	for _, t := range out[1:] {
		if t.ReceiverID != first {
			return false
		}
	}
	return true
}

func senderDiversity(in []domain.Transaction) float64 {
	if len(in) == 0 {
		return 0
	}
	senders := make(map[string]struct{}, len(in))
	for _, t := range in {
		senders[t.SenderID] = struct{}{}
	}
	return float64(len(senders)) / float64(len(in))
}

func counterpartyDiversity(g *graph.Graph, acct string) float64 {
	deg := g.Degree(acct)
	if deg == 0 {
		return 0
	}
	return float64(len(g.Counterparties(acct))) / float64(deg)
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
