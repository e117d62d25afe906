package detectors

import (
	"math"
	"time"

	"github.com/fraudgraph/engine/internal/domain"
	"github.com/fraudgraph/engine/internal/graph"
)

const (
	washAmountTolerance = 0.1
	washTimeTolerance   = 48 * time.Hour
	washCap             = 10
	washMinMatches      = 3
)

// DetectWashTrading matches each outgoing transaction against an incoming
// transaction from the same counterparty within 10% of the amount and 48
// hours of the time, capped at 10 matches per account, firing at 3 or
// more (spec §4.3.23).
func DetectWashTrading(g *graph.Graph) map[string]domain.WashTradingSignal {
	out := make(map[string]domain.WashTradingSignal)

	for _, acct := range g.AllAccounts() {
		outTxs := g.Outgoing(acct)
		if len(outTxs) == 0 {
			continue
		}

		incomingByCounterparty := make(map[string][]domain.Transaction)
		for _, t := range g.Incoming(acct) {
			incomingByCounterparty[t.SenderID] = append(incomingByCounterparty[t.SenderID], t)
		}

		matches := 0
		for _, o := range outTxs {
			if matches >= washCap {
				break
			}
			if o.Amount == 0 {
				continue
			}
			for _, in := range incomingByCounterparty[o.ReceiverID] {
				diff := o.Timestamp.Sub(in.Timestamp)
				if diff < 0 {
					diff = -diff
				}
				if diff > washTimeTolerance {
					continue
				}
				if math.Abs(o.Amount-in.Amount) <= washAmountTolerance*o.Amount {
					matches++
					break
				}
			}
		}

		if matches >= washMinMatches {
			out[acct] = domain.WashTradingSignal{MatchCount: matches}
		}
	}
	return out
}
