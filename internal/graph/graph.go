// Package graph implements the transaction graph (spec §3, §4.1): a
// directed multigraph keyed by account, with per-account incoming/outgoing
// adjacency lists and a transaction-id lookup table.
package graph

import (
	"sort"

	"github.com/fraudgraph/engine/internal/domain"
)

// Graph is write-once during construction and read-only for the remainder
// of an analysis run (spec §5) — no locking is required for the adjacency
// lists themselves. The lazily-sorted views are the one place multiple
// concurrent detectors can race to populate the same cache entry, so that
// piece alone is guarded; see sortedCache.
type Graph struct {
	outgoing map[string][]domain.Transaction
	incoming map[string][]domain.Transaction
	byID     map[string]domain.Transaction
	order    []string // account ids in first-seen order, for deterministic iteration

	sorted *sortedCache
}

// New builds a Graph from a validated transaction batch (spec §4.1): each
// transaction is appended to its sender's outgoing list and its receiver's
// incoming list exactly once. Self-loops and multi-edges are retained
// verbatim and never deduplicated.
func New(transactions []domain.Transaction) *Graph {
	g := &Graph{
		outgoing: make(map[string][]domain.Transaction),
		incoming: make(map[string][]domain.Transaction),
		byID:     make(map[string]domain.Transaction, len(transactions)),
	}

	seen := make(map[string]struct{})
	touch := func(acct string) {
		if _, ok := seen[acct]; !ok {
			seen[acct] = struct{}{}
			g.order = append(g.order, acct)
		}
	}

	for _, tx := range transactions {
		g.byID[tx.ID] = tx
		g.outgoing[tx.SenderID] = append(g.outgoing[tx.SenderID], tx)
		g.incoming[tx.ReceiverID] = append(g.incoming[tx.ReceiverID], tx)
		touch(tx.SenderID)
		touch(tx.ReceiverID)
	}

	g.sorted = newSortedCache(len(g.order))
	return g
}

// Outgoing returns the account's outgoing transactions in insertion order
// (spec §4.1: "lists may be kept unsorted at insertion").
func (g *Graph) Outgoing(account string) []domain.Transaction {
	return g.outgoing[account]
}

// Incoming returns the account's incoming transactions in insertion order.
func (g *Graph) Incoming(account string) []domain.Transaction {
	return g.incoming[account]
}

// OutgoingSorted returns the account's outgoing transactions sorted by
// timestamp ascending, memoized across repeated calls within a run.
func (g *Graph) OutgoingSorted(account string) []domain.Transaction {
	return g.sorted.get(account, "out", func() []domain.Transaction {
		return sortedCopy(g.outgoing[account])
	})
}

// IncomingSorted returns the account's incoming transactions sorted by
// timestamp ascending, memoized across repeated calls within a run.
func (g *Graph) IncomingSorted(account string) []domain.Transaction {
	return g.sorted.get(account, "in", func() []domain.Transaction {
		return sortedCopy(g.incoming[account])
	})
}

func sortedCopy(txs []domain.Transaction) []domain.Transaction {
	out := make([]domain.Transaction, len(txs))
	copy(out, txs)
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out
}

// AllAccounts returns every account that appears as a sender or receiver of
// at least one transaction, in first-seen order.
func (g *Graph) AllAccounts() []string {
	return g.order
}

// AllTransactions returns every transaction exactly once, in a
// deterministic order (accounts in first-seen order, each account's own
// outgoing transactions in insertion order). Every transaction is owned by
// exactly one sender's outgoing list, so this never duplicates or misses
// one, and — unlike ranging over a map — it reproduces the same order on
// every call, which the community projection and its downstream metrics
// depend on for run-to-run reproducibility.
func (g *Graph) AllTransactions() []domain.Transaction {
	out := make([]domain.Transaction, 0, len(g.byID))
	for _, acct := range g.order {
		out = append(out, g.outgoing[acct]...)
	}
	return out
}

// AccountCount returns the size of the account set.
func (g *Graph) AccountCount() int {
	return len(g.order)
}

// Transaction looks up a transaction by id.
func (g *Graph) Transaction(id string) (domain.Transaction, bool) {
	tx, ok := g.byID[id]
	return tx, ok
}

// TransactionCount returns the total number of transactions in the graph.
func (g *Graph) TransactionCount() int {
	return len(g.byID)
}

// InDegree returns the number of incoming transactions for an account.
func (g *Graph) InDegree(account string) int {
	return len(g.incoming[account])
}

// OutDegree returns the number of outgoing transactions for an account.
func (g *Graph) OutDegree(account string) int {
	return len(g.outgoing[account])
}

// Degree returns the combined in+out transaction count for an account.
func (g *Graph) Degree(account string) int {
	return g.InDegree(account) + g.OutDegree(account)
}

// Counterparties returns the set of distinct accounts that have ever sent
// to or received from the given account.
func (g *Graph) Counterparties(account string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, tx := range g.outgoing[account] {
		out[tx.ReceiverID] = struct{}{}
	}
	for _, tx := range g.incoming[account] {
		out[tx.SenderID] = struct{}{}
	}
	return out
}
