package overlay

import (
	"testing"
	"time"

	"github.com/fraudgraph/engine/internal/domain"
	"github.com/fraudgraph/engine/internal/graph"
)

func TestEvaluateFiresMatchingRule(t *testing.T) {
	g := graph.New([]domain.Transaction{
		{ID: "t1", SenderID: "A", ReceiverID: "B", Amount: 50, Timestamp: time.Now()},
		{ID: "t2", SenderID: "A", ReceiverID: "C", Amount: 50, Timestamp: time.Now()},
	})

	e, err := NewEngine([]domain.OverlayRule{
		{Name: "low_value_fanout", Expression: "out_degree >= 2 && mean_amount < 100", Delta: -10},
	})
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}

	signals := e.Evaluate(g)
	if len(signals["A"]) != 1 {
		t.Fatalf("expected 1 signal for A, got %d", len(signals["A"]))
	}
	if signals["A"][0].Name != "low_value_fanout" || signals["A"][0].Delta != -10 {
		t.Errorf("unexpected signal: %+v", signals["A"][0])
	}
	if len(signals["B"]) != 0 {
		t.Errorf("expected no signal for B, got %+v", signals["B"])
	}
}

func TestNewEngineSkipsBadRule(t *testing.T) {
	e, err := NewEngine([]domain.OverlayRule{
		{Name: "broken", Expression: "this is not valid cel +++ ", Delta: 5},
		{Name: "non_bool", Expression: "mean_amount", Delta: 5},
	})
	if err != nil {
		t.Fatalf("NewEngine should not error on a bad individual rule: %v", err)
	}
	if len(e.rules) != 0 {
		t.Errorf("expected both rules to be skipped, got %d compiled", len(e.rules))
	}
}

func TestEvaluateEmptyRuleSetReturnsEmptyMap(t *testing.T) {
	g := graph.New([]domain.Transaction{
		{ID: "t1", SenderID: "A", ReceiverID: "B", Amount: 50, Timestamp: time.Now()},
	})
	e, err := NewEngine(nil)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	if signals := e.Evaluate(g); len(signals) != 0 {
		t.Errorf("expected empty signals map, got %v", signals)
	}
}
