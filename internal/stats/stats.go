// Package stats computes the global statistics cache (spec §3, §4.2): a
// one-pass set of aggregates over every transaction, frozen for the
// remainder of the analysis run and read concurrently by every detector.
package stats

import (
	"math"
	"sort"
	"time"

	"github.com/fraudgraph/engine/internal/domain"
	"github.com/fraudgraph/engine/internal/graph"
)

// Cache holds the frozen global aggregates. All fields are populated by a
// single call to Compute and never mutated afterward (spec §4.2: "the
// cache is strictly read-only thereafter").
type Cache struct {
	Mean       float64
	StdDev     float64
	Median     float64
	Q1         float64
	Q3         float64
	IQR        float64
	LowerFence float64
	UpperFence float64

	TotalTransactions int
	MinTimestamp      time.Time
	MaxTimestamp      time.Time

	perAccountCount map[string]int
}

// Compute performs the single pass over every transaction described in
// spec §4.2: collect amounts and timestamps, sort amounts to extract
// Q1/median/Q3 by index, and compute mean and population standard
// deviation with a numerically stable two-pass method (spec §9).
func Compute(g *graph.Graph, transactions []domain.Transaction) *Cache {
	c := &Cache{perAccountCount: make(map[string]int)}

	if len(transactions) == 0 {
		return c
	}

	amounts := make([]float64, len(transactions))
	var sum float64
	c.MinTimestamp = transactions[0].Timestamp
	c.MaxTimestamp = transactions[0].Timestamp

	for i, tx := range transactions {
		amounts[i] = tx.Amount
		sum += tx.Amount
		if tx.Timestamp.Before(c.MinTimestamp) {
			c.MinTimestamp = tx.Timestamp
		}
		if tx.Timestamp.After(c.MaxTimestamp) {
			c.MaxTimestamp = tx.Timestamp
		}
	}

	c.TotalTransactions = len(transactions)
	c.Mean = sum / float64(len(transactions))

	// Two-pass variance: accumulate squared deviations from the already-
	// known mean rather than a naive sum-of-squares, as spec §9 prescribes
	// for numerical stability at large magnitudes.
	var sqDiff float64
	for _, a := range amounts {
		d := a - c.Mean
		sqDiff += d * d
	}
	c.StdDev = math.Sqrt(sqDiff / float64(len(amounts)))

	sorted := make([]float64, len(amounts))
	copy(sorted, amounts)
	sort.Float64s(sorted)

	c.Median = percentile(sorted, 0.5)
	c.Q1 = percentile(sorted, 0.25)
	c.Q3 = percentile(sorted, 0.75)
	c.IQR = c.Q3 - c.Q1
	c.LowerFence = c.Q1 - 1.5*c.IQR
	c.UpperFence = c.Q3 + 1.5*c.IQR

	for _, acct := range g.AllAccounts() {
		c.perAccountCount[acct] = g.Degree(acct)
	}

	return c
}

// percentile extracts a quantile from an already-sorted slice by index, as
// spec §4.2 requires ("sort amounts to extract Q1/median/Q3 by index").
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if len(sorted) == 1 {
		return sorted[0]
	}
	idx := p * float64(len(sorted)-1)
	lo := int(math.Floor(idx))
	hi := int(math.Ceil(idx))
	if lo == hi {
		return sorted[lo]
	}
	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// AccountActivity returns the combined incoming+outgoing transaction count
// for an account (spec §4.2).
func (c *Cache) AccountActivity(account string) int {
	return c.perAccountCount[account]
}

// SpanDays returns the observed time range in days, used by the frequency
// anomaly detector (spec §4.3.13). Guards against a zero span.
func (c *Cache) SpanDays() float64 {
	d := c.MaxTimestamp.Sub(c.MinTimestamp).Hours() / 24
	if d <= 0 {
		return 1
	}
	return d
}
