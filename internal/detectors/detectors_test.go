package detectors

import (
	"testing"
	"time"

	"github.com/fraudgraph/engine/internal/domain"
	"github.com/fraudgraph/engine/internal/graph"
)

func tx(id, from, to string, amount float64, at time.Time) domain.Transaction {
	return domain.Transaction{ID: id, SenderID: from, ReceiverID: to, Amount: amount, Timestamp: at}
}

func TestDetectCyclesDedupesRotations(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	g := graph.New([]domain.Transaction{
		tx("t1", "B", "C", 100, base),
		tx("t2", "C", "A", 100, base.Add(time.Hour)),
		tx("t3", "A", "B", 100, base.Add(2*time.Hour)),
	})

	cycles := DetectCycles(g, 1000)
	sig, ok := cycles["A"]
	if !ok || len(sig) != 1 {
		t.Fatalf("expected exactly one normalized cycle for A, got %v", sig)
	}
	if sig[0].Members[0] != "A" {
		t.Errorf("expected rotation to start at the lexicographically smallest id A, got %v", sig[0].Members)
	}
	if len(cycles["B"]) != 1 || len(cycles["C"]) != 1 {
		t.Error("expected the same cycle recorded once for every member")
	}
}

func TestDetectCyclesIgnoresLengthOutsideRange(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	// A two-hop back-and-forth is not a valid cycle (length must be 3-5).
	g := graph.New([]domain.Transaction{
		tx("t1", "A", "B", 100, base),
		tx("t2", "B", "A", 100, base.Add(time.Hour)),
	})

	cycles := DetectCycles(g, 1000)
	if len(cycles) != 0 {
		t.Errorf("expected no cycles for a 2-cycle, got %v", cycles)
	}
}

func TestDetectCyclesFindsLengthFour(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	g := graph.New([]domain.Transaction{
		tx("t1", "A", "B", 100, base),
		tx("t2", "B", "C", 100, base.Add(time.Hour)),
		tx("t3", "C", "D", 100, base.Add(2*time.Hour)),
		tx("t4", "D", "A", 100, base.Add(3*time.Hour)),
	})

	cycles := DetectCycles(g, 1000)
	sig, ok := cycles["A"]
	if !ok || len(sig) != 1 || sig[0].Length != 4 {
		t.Fatalf("expected one length-4 cycle for A, got %v", sig)
	}
}

func TestDetectCyclesFindsLengthFive(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	g := graph.New([]domain.Transaction{
		tx("t1", "A", "B", 100, base),
		tx("t2", "B", "C", 100, base.Add(time.Hour)),
		tx("t3", "C", "D", 100, base.Add(2*time.Hour)),
		tx("t4", "D", "E", 100, base.Add(3*time.Hour)),
		tx("t5", "E", "A", 100, base.Add(4*time.Hour)),
	})

	cycles := DetectCycles(g, 1000)
	sig, ok := cycles["A"]
	if !ok || len(sig) != 1 || sig[0].Length != 5 {
		t.Fatalf("expected one length-5 cycle for A, got %v", sig)
	}
}

func TestDetectCyclesReversedOrderingsAreDistinct(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	g := graph.New([]domain.Transaction{
		tx("t1", "A", "B", 100, base),
		tx("t2", "B", "C", 100, base.Add(time.Hour)),
		tx("t3", "C", "A", 100, base.Add(2*time.Hour)),
		tx("t4", "A", "C", 100, base.Add(3*time.Hour)),
		tx("t5", "C", "B", 100, base.Add(4*time.Hour)),
		tx("t6", "B", "A", 100, base.Add(5*time.Hour)),
	})

	cycles := DetectCycles(g, 1000)
	if len(cycles["A"]) != 2 {
		t.Errorf("expected A->B->C->A and A->C->B->A to be recorded as distinct cycles, got %v", cycles["A"])
	}
}

func TestDetectShellRequiresBothDirections(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	g := graph.New([]domain.Transaction{
		tx("t1", "A", "B", 10, base),
	})

	shell := DetectShell(g)
	if _, ok := shell["A"]; ok {
		t.Error("A has only an outgoing transaction, degree 1, should not fire shell")
	}
	if _, ok := shell["B"]; ok {
		t.Error("B has only an incoming transaction, degree 1, should not fire shell")
	}
}

func TestDetectShellFiresWithinDegreeBand(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	g := graph.New([]domain.Transaction{
		tx("t1", "X", "Y", 10, base),
		tx("t2", "Y", "Z", 10, base.Add(time.Hour)),
	})

	shell := DetectShell(g)
	if _, ok := shell["Y"]; !ok {
		t.Error("expected Y (degree 2, one in one out) to fire shell")
	}
}

func TestDetectShellNotFiredAboveDegreeThree(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	g := graph.New([]domain.Transaction{
		tx("t1", "X1", "Y", 10, base),
		tx("t2", "X2", "Y", 10, base.Add(time.Hour)),
		tx("t3", "X3", "Y", 10, base.Add(2*time.Hour)),
		tx("t4", "Y", "Z", 10, base.Add(3*time.Hour)),
	})

	if _, ok := DetectShell(g)["Y"]; ok {
		t.Error("Y has total degree 4, above the shell band, should not fire")
	}
}

func TestDetectFanOutFanInRequiresWindowedCount(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	var transactions []domain.Transaction
	// 15 distinct receivers, but spread far enough apart that no single
	// 72-hour window ever contains more than a handful of them.
	for i := 0; i < 15; i++ {
		transactions = append(transactions, tx(
			"t"+string(rune('a'+i)), "S", "R"+string(rune('a'+i)), 50,
			base.Add(time.Duration(i)*96*time.Hour),
		))
	}
	g := graph.New(transactions)

	fanOut, _ := DetectFanOutFanIn(g)
	if _, ok := fanOut["S"]; ok {
		t.Error("expected no fan_out: receivers are spread beyond any single 72-hour window")
	}
}

func TestDetectPassthroughRespectsSixHourWindow(t *testing.T) {
	base := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	g := graph.New([]domain.Transaction{
		tx("t1", "X", "Y", 500, base),
		tx("t2", "Y", "Z", 480, base.Add(7*time.Hour)),
	})

	if _, ok := DetectPassthrough(g)["Y"]; ok {
		t.Error("outgoing transaction is 7 hours after incoming, outside the 6-hour window")
	}
}

func TestDetectStructuringRequiresMajorityRoundAmounts(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	g := graph.New([]domain.Transaction{
		tx("t1", "A", "R1", 1000, base),
		tx("t2", "A", "R2", 1000, base.Add(time.Hour)),
		tx("t3", "A", "R3", 1000, base.Add(2*time.Hour)),
		tx("t4", "A", "R4", 137, base.Add(3*time.Hour)),
	})

	sig, ok := DetectStructuring(g)["A"]
	if !ok {
		t.Fatal("expected structuring to fire at 75% round transactions")
	}
	if sig.RoundFraction != 0.75 {
		t.Errorf("expected round fraction 0.75, got %v", sig.RoundFraction)
	}
}

func TestDetectStructuringBelowThresholdDoesNotFire(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	g := graph.New([]domain.Transaction{
		tx("t1", "A", "R1", 1000, base),
		tx("t2", "A", "R2", 137, base.Add(time.Hour)),
	})

	if _, ok := DetectStructuring(g)["A"]; ok {
		t.Error("expected structuring not to fire at 50% round transactions")
	}
}
