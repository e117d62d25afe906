// Package detectors implements the family of pattern scanners (spec §4.3).
// Each detector is a pure function of the graph and statistics cache; none
// of them mutate shared state or raise errors — they either fire or they
// don't (spec §7 propagation policy). Helpers shared across detectors live
// here.
package detectors

import (
	"sort"
	"time"

	"github.com/fraudgraph/engine/internal/domain"
	"github.com/fraudgraph/engine/internal/graph"
)

// maxDistinctInWindow slides a window of the given duration across
// time-sorted transactions, left-anchored at each transaction, and returns
// the maximum number of distinct values of extract() seen in any window,
// plus the window bounds that achieved it. Used by fan-out/fan-in (§4.3.2).
func maxDistinctInWindow(txs []domain.Transaction, window time.Duration, extract func(domain.Transaction) string) (maxCount int, winStart, winEnd time.Time) {
	n := len(txs)
	left := 0
	counts := make(map[string]int)

	for right := 0; right < n; right++ {
		counts[extract(txs[right])]++

		for txs[right].Timestamp.Sub(txs[left].Timestamp) > window {
			k := extract(txs[left])
			counts[k]--
			if counts[k] == 0 {
				delete(counts, k)
			}
			left++
		}

		if len(counts) > maxCount {
			maxCount = len(counts)
			winStart = txs[left].Timestamp
			winEnd = txs[right].Timestamp
		}
	}
	return maxCount, winStart, winEnd
}

// maxRatePerHour slides a window of the given duration across time-sorted
// events and returns the maximum per-hour rate observed in any window
// (count in window / window-duration-in-hours). Used by velocity (§4.3.7).
func maxRatePerHour(txs []domain.Transaction, window time.Duration) float64 {
	n := len(txs)
	if n == 0 {
		return 0
	}
	left := 0
	var maxRate float64
	hours := window.Hours()

	for right := 0; right < n; right++ {
		for txs[right].Timestamp.Sub(txs[left].Timestamp) > window {
			left++
		}
		count := right - left + 1
		rate := float64(count) / hours
		if rate > maxRate {
			maxRate = rate
		}
	}
	return maxRate
}

// mergedSortedByTime merges an account's outgoing and incoming transactions
// into one time-sorted sequence, tagging direction isn't needed by callers
// that only care about event timing.
func mergedSortedByTime(out, in []domain.Transaction) []domain.Transaction {
	merged := make([]domain.Transaction, 0, len(out)+len(in))
	merged = append(merged, out...)
	merged = append(merged, in...)
	sort.Slice(merged, func(i, j int) bool { return merged[i].Timestamp.Before(merged[j].Timestamp) })
	return merged
}

// meanAmount returns the arithmetic mean of a transaction slice's amounts,
// 0 for an empty slice (spec §7 numerical edge case: neutral value).
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

// varianceAmount returns the population variance of a transaction slice's
// amounts given its mean.
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

// isRoundAmount reports whether amount is an exact multiple of 1000, 500,
// or 100 (spec §4.3.5).
func isRoundAmount(amount float64) bool {
	for _, denom := range []float64{1000, 500, 100} {
		if remainder(amount, denom) == 0 {
			return true
		}
	}
	return false
}

func remainder(amount, denom float64) float64 {
	// Amounts are currency values; round to the nearest cent before taking
	// the modulus so floating point noise doesn't hide an exact multiple.
	cents := round(amount*100) / 100
	d := round(denom*100) / 100
	if d == 0 {
		return cents
	}
	scaled := cents / d
	return cents - round(scaled)*d
}

func round(f float64) float64 {
	if f >= 0 {
		return float64(int64(f + 0.5))
	}
	return float64(int64(f - 0.5))
}

// distinctOutNeighbors returns the distinct receivers of an account's
// outgoing transactions, in first-seen order. Multi-edges collapse to a
// single graph edge for traversal-based detectors (cycles, layering,
// chains); the amount/timing detail those detectors don't need lives on
// the transaction, not the edge.
func distinctOutNeighbors(g *graph.Graph, account string) []string {
	txs := g.Outgoing(account)
	seen := make(map[string]struct{}, len(txs))
	out := make([]string, 0, len(txs))
	for _, tx := range txs {
		if _, ok := seen[tx.ReceiverID]; !ok {
			seen[tx.ReceiverID] = struct{}{}
			out = append(out, tx.ReceiverID)
		}
	}
	return out
}

// allTransactions returns an account's combined incoming and outgoing
// transactions, unsorted, for detectors that only need the unordered set.
func allTransactions(g *graph.Graph, account string) []domain.Transaction {
	out := g.Outgoing(account)
	in := g.Incoming(account)
	combined := make([]domain.Transaction, 0, len(out)+len(in))
	combined = append(combined, out...)
	combined = append(combined, in...)
	return combined
}
