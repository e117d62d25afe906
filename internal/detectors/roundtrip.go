package detectors

import (
	"time"

	"github.com/fraudgraph/engine/internal/domain"
	"github.com/fraudgraph/engine/internal/graph"
)

const (
	roundTripWindow = 48 * time.Hour
	roundTripCap    = 10
)

// DetectRoundTrip finds A→B→A patterns where the return leg follows the
// outbound leg within 48 hours, capped at 10 per origin account, firing
// when at least 2 are found (spec §4.3.15).
func DetectRoundTrip(g *graph.Graph) map[string]domain.RoundTripSignal {
	out := make(map[string]domain.RoundTripSignal)

	for _, a := range g.AllAccounts() {
		outTxs := g.OutgoingSorted(a)
		if len(outTxs) == 0 {
			continue
		}

		count := 0
		for _, ab := range outTxs {
			if count >= roundTripCap {
				break
			}
			b := ab.ReceiverID
			if b == a {
				continue
			}
			for _, ba := range g.Outgoing(b) {
				if ba.ReceiverID != a {
					continue
				}
				if ba.Timestamp.After(ab.Timestamp) && ba.Timestamp.Sub(ab.Timestamp) <= roundTripWindow {
					count++
					break
				}
			}
		}

		if count >= 2 {
			out[a] = domain.RoundTripSignal{Count: count}
		}
	}
	return out
}
