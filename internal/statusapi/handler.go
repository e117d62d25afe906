// Package statusapi is the optional HTTP surface around the engine (out of
// scope for the analysis engine itself, per spec's Non-goals, but the
// natural way operators actually trigger a run and watch it progress). It
// exposes a synchronous /analyze endpoint, a report archive browser, and a
// /ws/progress WebSocket stream mirroring each stage boundary the engine
// reports internally.
package statusapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/fraudgraph/engine/internal/archive"
	"github.com/fraudgraph/engine/internal/domain"
	"github.com/fraudgraph/engine/internal/engine"
)

// Handler holds the dependencies HTTP endpoints need.
type Handler struct {
	baseConfig domain.Config
	store      *archive.Store // nil disables archive-backed endpoints
	hub        *ProgressHub
	version    string
}

// NewHandler builds a Handler. store may be nil if report archiving is
// disabled.
func NewHandler(baseConfig domain.Config, store *archive.Store, hub *ProgressHub, version string) *Handler {
	return &Handler{baseConfig: baseConfig, store: store, hub: hub, version: version}
}

// AnalyzeRequest is the body of POST /analyze.
type AnalyzeRequest struct {
	Transactions []domain.Transaction `json:"transactions"`
}

// AnalyzeResponse is the body of a successful POST /analyze response.
type AnalyzeResponse struct {
	RunID      string        `json:"run_id"`
	TrackingID string        `json:"tracking_id"`
	Report     domain.Report `json:"report"`
}

// Analyze runs one synchronous analysis pass over the posted transaction
// batch, publishing stage progress to /ws/progress clients. The run's
// tracking id is returned in the X-Tracking-ID header and the response
// body, both sent only once the run has completed; a client that subscribes
// without a tracking filter receives the events while the run is in flight.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON request body"})
		return
	}
	if len(req.Transactions) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "transactions must be non-empty"})
		return
	}

	trackingID := uuid.NewString()
	w.Header().Set("X-Tracking-ID", trackingID)

	cfg := h.baseConfig
	if h.hub != nil {
		cfg.ProgressCallback = func(stage domain.Stage, message string, percent float64) {
			h.hub.Publish(ProgressEvent{
				TrackingID: trackingID,
				Stage:      stage,
				Message:    message,
				Percent:    percent,
				Timestamp:  time.Now().UTC(),
			})
		}
	}

	result, err := engine.New(cfg).Analyze(r.Context(), req.Transactions)
	if err != nil {
		slog.Error("analysis run failed", "tracking_id", trackingID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "analysis failed: " + err.Error()})
		return
	}

	if h.store != nil {
		if err := h.store.SaveReport(r.Context(), result.RunID, result.Report); err != nil {
			slog.Error("failed to archive report", "run_id", result.RunID, "error", err)
		}
	}

	writeJSON(w, http.StatusOK, AnalyzeResponse{
		RunID:      result.RunID,
		TrackingID: trackingID,
		Report:     result.Report,
	})
}

// Healthz reports liveness: the process is up and able to serve requests.
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy", "version": h.version})
}

// Readyz reports readiness: dependencies (the archive, if configured) are
// reachable.
func (h *Handler) Readyz(w http.ResponseWriter, r *http.Request) {
	if h.store != nil {
		if err := h.store.Ping(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded", "error": err.Error()})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// GetRun retrieves a previously archived report by run id.
func (h *Handler) GetRun(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "archive not configured"})
		return
	}

	runID := chi.URLParam(r, "id")
	rpt, err := h.store.GetReport(r.Context(), runID)
	if errors.Is(err, archive.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "run not found"})
		return
	}
	if err != nil {
		slog.Error("failed to get archived report", "run_id", runID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load report"})
		return
	}
	writeJSON(w, http.StatusOK, rpt)
}

// ListRuns returns the most recent archived runs.
func (h *Handler) ListRuns(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "archive not configured"})
		return
	}

	runs, err := h.store.ListRuns(r.Context(), 50)
	if err != nil {
		slog.Error("failed to list archived runs", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list runs"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"runs": runs, "count": len(runs)})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
