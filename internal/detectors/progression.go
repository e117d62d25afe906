package detectors

import (
	"github.com/fraudgraph/engine/internal/domain"
	"github.com/fraudgraph/engine/internal/graph"
)

// DetectAmountProgression walks each account's outgoing sequence (at
// least 5 items) and classifies it as escalating or de-escalating when
// more than 60% of consecutive steps move by more than 20% in one
// direction (spec §4.3.18).
func DetectAmountProgression(g *graph.Graph) map[string]domain.AmountProgressionSignal {
	out := make(map[string]domain.AmountProgressionSignal)

	for _, acct := range g.AllAccounts() {
		txs := g.OutgoingSorted(acct)
		if len(txs) < 5 {
			continue
		}

		steps := len(txs) - 1
		var increasing, decreasing int
		for i := 1; i < len(txs); i++ {
			prev := txs[i-1].Amount
			cur := txs[i].Amount
			if prev == 0 {
				continue
			}
			switch {
			case cur > prev*1.2:
				increasing++
			case cur < prev*0.8:
				decreasing++
			}
		}

		incRatio := float64(increasing) / float64(steps)
		decRatio := float64(decreasing) / float64(steps)
		switch {
		case incRatio > 0.6:
			out[acct] = domain.AmountProgressionSignal{Label: "increasing", Ratio: incRatio}
		case decRatio > 0.6:
			out[acct] = domain.AmountProgressionSignal{Label: "decreasing", Ratio: decRatio}
		}
	}
	return out
}
