package graph

import (
	"testing"
	"time"

	"github.com/fraudgraph/engine/internal/domain"
)

func tx(id, from, to string, amount float64, at time.Time) domain.Transaction {
	return domain.Transaction{ID: id, SenderID: from, ReceiverID: to, Amount: amount, Timestamp: at}
}

func TestNewBuildsAdjacencyLists(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	g := New([]domain.Transaction{
		tx("t1", "A", "B", 100, base),
		tx("t2", "B", "C", 200, base.Add(time.Hour)),
		tx("t3", "A", "C", 50, base.Add(2*time.Hour)),
	})

	if g.AccountCount() != 3 {
		t.Errorf("expected 3 accounts, got %d", g.AccountCount())
	}
	if g.TransactionCount() != 3 {
		t.Errorf("expected 3 transactions, got %d", g.TransactionCount())
	}
	if g.OutDegree("A") != 2 || g.InDegree("A") != 0 {
		t.Errorf("unexpected degree for A: out=%d in=%d", g.OutDegree("A"), g.InDegree("A"))
	}
	if g.Degree("B") != 2 {
		t.Errorf("expected B degree 2, got %d", g.Degree("B"))
	}
	if got, ok := g.Transaction("t2"); !ok || got.SenderID != "B" {
		t.Errorf("expected to find t2 from B, got %+v ok=%v", got, ok)
	}
}

func TestSelfLoopsAndMultiEdgesRetained(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	g := New([]domain.Transaction{
		tx("t1", "A", "A", 10, base),
		tx("t2", "A", "B", 10, base),
		tx("t3", "A", "B", 10, base.Add(time.Hour)),
	})

	if g.OutDegree("A") != 3 {
		t.Errorf("expected self-loop and duplicate edges retained, out degree 3, got %d", g.OutDegree("A"))
	}
	if g.InDegree("A") != 1 {
		t.Errorf("expected self-loop counted as incoming too, got %d", g.InDegree("A"))
	}
}

func TestOutgoingSortedOrdersByTimestamp(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	g := New([]domain.Transaction{
		tx("t2", "A", "B", 10, base.Add(2*time.Hour)),
		tx("t1", "A", "B", 10, base),
		tx("t3", "A", "B", 10, base.Add(time.Hour)),
	})

	sorted := g.OutgoingSorted("A")
	if len(sorted) != 3 || sorted[0].ID != "t1" || sorted[1].ID != "t3" || sorted[2].ID != "t2" {
		t.Errorf("expected chronological order t1,t3,t2, got %v", ids(sorted))
	}

	unsorted := g.Outgoing("A")
	if unsorted[0].ID != "t2" {
		t.Errorf("expected Outgoing to preserve insertion order, got %v", ids(unsorted))
	}
}

func TestCounterpartiesUnionsBothDirections(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	g := New([]domain.Transaction{
		tx("t1", "A", "B", 10, base),
		tx("t2", "C", "A", 10, base),
	})

	cps := g.Counterparties("A")
	if len(cps) != 2 {
		t.Fatalf("expected 2 counterparties, got %d", len(cps))
	}
	if _, ok := cps["B"]; !ok {
		t.Error("expected B among A's counterparties")
	}
	if _, ok := cps["C"]; !ok {
		t.Error("expected C among A's counterparties")
	}
}

func ids(txs []domain.Transaction) []string {
	out := make([]string, len(txs))
	for i, t := range txs {
		out[i] = t.ID
	}
	return out
}
