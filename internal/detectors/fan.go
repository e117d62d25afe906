package detectors

import (
	"time"

	"github.com/fraudgraph/engine/internal/domain"
	"github.com/fraudgraph/engine/internal/graph"
)

const fanWindow = 72 * time.Hour

// DetectFanOutFanIn finds accounts whose outgoing (resp. incoming)
// transactions ever touch 15 or more distinct counterparties within a
// 72-hour sliding window (spec §4.3.2).
func DetectFanOutFanIn(g *graph.Graph) (fanOut, fanIn map[string]domain.FanSignal) {
	fanOut = make(map[string]domain.FanSignal)
	fanIn = make(map[string]domain.FanSignal)

	for _, acct := range g.AllAccounts() {
		if g.OutDegree(acct) >= 15 {
			txs := g.OutgoingSorted(acct)
			count, start, end := maxDistinctInWindow(txs, fanWindow, func(t domain.Transaction) string { return t.ReceiverID })
			if count >= 15 {
				fanOut[acct] = domain.FanSignal{CounterpartyCount: count, WindowStart: start.UnixMilli(), WindowEnd: end.UnixMilli()}
			}
		}
		if g.InDegree(acct) >= 15 {
			txs := g.IncomingSorted(acct)
			count, start, end := maxDistinctInWindow(txs, fanWindow, func(t domain.Transaction) string { return t.SenderID })
			if count >= 15 {
				fanIn[acct] = domain.FanSignal{CounterpartyCount: count, WindowStart: start.UnixMilli(), WindowEnd: end.UnixMilli()}
			}
		}
	}
	return fanOut, fanIn
}
