package engine

import (
	"context"
	"testing"
	"time"

	"github.com/fraudgraph/engine/internal/domain"
)

func tx(id, from, to string, amount float64, at time.Time) domain.Transaction {
	return domain.Transaction{ID: id, SenderID: from, ReceiverID: to, Amount: amount, Timestamp: at}
}

func TestAnalyzeThreeCycle(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	transactions := []domain.Transaction{
		tx("t1", "A", "B", 10000, base),
		tx("t2", "B", "C", 10000, base.Add(time.Hour)),
		tx("t3", "C", "A", 10000, base.Add(2*time.Hour)),
	}

	var stages []domain.Stage
	cfg := domain.DefaultConfig()
	cfg.ProgressCallback = func(stage domain.Stage, message string, percent float64) {
		stages = append(stages, stage)
	}

	e := New(cfg)
	result, err := e.Analyze(context.Background(), transactions)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if result.RunID == "" {
		t.Error("expected a non-empty run id")
	}
	if len(stages) != 7 {
		t.Errorf("expected 7 stage callbacks, got %d: %v", len(stages), stages)
	}
	if stages[0] != domain.StageGraphBuild || stages[len(stages)-1] != domain.StageReportBuild {
		t.Errorf("unexpected stage order: %v", stages)
	}

	if result.Report.Summary.TotalAccountsAnalyzed != 3 {
		t.Errorf("expected 3 accounts analyzed, got %d", result.Report.Summary.TotalAccountsAnalyzed)
	}
}

func TestAnalyzeEmptyBatch(t *testing.T) {
	e := New(domain.DefaultConfig())
	result, err := e.Analyze(context.Background(), nil)
	if err != nil {
		t.Fatalf("Analyze failed on empty batch: %v", err)
	}
	if len(result.Report.SuspiciousAccounts) != 0 {
		t.Errorf("expected no suspicious accounts, got %d", len(result.Report.SuspiciousAccounts))
	}
	if result.Report.Summary.TotalAccountsAnalyzed != 0 {
		t.Errorf("expected 0 accounts analyzed, got %d", result.Report.Summary.TotalAccountsAnalyzed)
	}
}

func TestAnalyzeRespectsCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := New(domain.DefaultConfig())
	_, err := e.Analyze(ctx, []domain.Transaction{tx("t1", "A", "B", 100, time.Now())})
	if err == nil {
		t.Error("expected an error from a pre-canceled context")
	}
}
