package statusapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fraudgraph/engine/internal/domain"
)

func tx(id, from, to string, amount float64, ts time.Time) domain.Transaction {
	return domain.Transaction{ID: id, SenderID: from, ReceiverID: to, Amount: amount, Timestamp: ts}
}

func testServer() *Server {
	return NewServer("localhost", 0, domain.DefaultConfig(), nil, "test-v1")
}

func TestHealthzReturnsOK(t *testing.T) {
	s := testServer()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rr := httptest.NewRecorder()
	s.Router().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}

func TestReadyzWithoutArchiveReturnsOK(t *testing.T) {
	s := testServer()

	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	rr := httptest.NewRecorder()
	s.Router().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}

func TestAnalyzeRejectsEmptyBatch(t *testing.T) {
	s := testServer()

	body, _ := json.Marshal(AnalyzeRequest{})
	req := httptest.NewRequest(http.MethodPost, "/analyze", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	s.Router().ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty batch, got %d", rr.Code)
	}
}

func TestAnalyzeRunsPipelineAndReturnsReport(t *testing.T) {
	s := testServer()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	req := AnalyzeRequest{Transactions: []domain.Transaction{
		tx("t1", "A", "B", 100, base),
		tx("t2", "B", "C", 100, base.Add(time.Hour)),
		tx("t3", "C", "A", 100, base.Add(2*time.Hour)),
	}}

	body, _ := json.Marshal(req)
	httpReq := httptest.NewRequest(http.MethodPost, "/analyze", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	s.Router().ServeHTTP(rr, httpReq)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp AnalyzeResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.RunID == "" || resp.TrackingID == "" {
		t.Errorf("expected non-empty run/tracking ids, got %+v", resp)
	}
	if resp.Report.Summary.TotalAccountsAnalyzed != 3 {
		t.Errorf("expected 3 accounts analyzed, got %d", resp.Report.Summary.TotalAccountsAnalyzed)
	}
}

func TestListRunsWithoutArchiveReturns503(t *testing.T) {
	s := testServer()

	req := httptest.NewRequest(http.MethodGet, "/runs", nil)
	rr := httptest.NewRecorder()
	s.Router().ServeHTTP(rr, req)

	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 with no archive configured, got %d", rr.Code)
	}
}
