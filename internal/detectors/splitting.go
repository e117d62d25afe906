package detectors

import (
	"math"
	"time"

	"github.com/fraudgraph/engine/internal/domain"
	"github.com/fraudgraph/engine/internal/graph"
)

// DetectAmountSplitting slides a 24-hour window across each account's
// outgoing transactions and fires when at least 3 transactions in some
// window sit within 20% of that window's mean amount, retaining the
// largest such group (spec §4.3.12).
func DetectAmountSplitting(g *graph.Graph) map[string]domain.AmountSplittingSignal {
	out := make(map[string]domain.AmountSplittingSignal)
	for _, acct := range g.AllAccounts() {
		txs := g.OutgoingSorted(acct)
		n := len(txs)
		if n < 3 {
			continue
		}

		left := 0
		bestSize := 0
		var bestMean float64
		for right := 0; right < n; right++ {
			for txs[right].Timestamp.Sub(txs[left].Timestamp) > 24*time.Hour {
				left++
			}
			window := txs[left : right+1]
			mean := meanAmount(window)
			if mean == 0 {
				continue
			}
			count := 0
			for _, t := range window {
				if math.Abs(t.Amount-mean) <= 0.2*mean {
					count++
				}
			}
			if count >= 3 && count > bestSize {
				bestSize = count
				bestMean = mean
			}
		}

		if bestSize >= 3 {
			out[acct] = domain.AmountSplittingSignal{GroupSize: bestSize, MeanAmount: bestMean}
		}
	}
	return out
}
