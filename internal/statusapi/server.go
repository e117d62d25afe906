package statusapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fraudgraph/engine/internal/archive"
	"github.com/fraudgraph/engine/internal/domain"
)

// Server is the optional HTTP status/control surface around the engine.
type Server struct {
	router  *chi.Mux
	handler *Handler
	hub     *ProgressHub
	server  *http.Server
	host    string
	port    int
}

// NewServer builds a Server. store may be nil to disable archive-backed
// endpoints.
func NewServer(host string, port int, baseConfig domain.Config, store *archive.Store, version string) *Server {
	hub := NewProgressHub(slog.Default())
	handler := NewHandler(baseConfig, store, hub, version)
	router := chi.NewRouter()

	router.Use(recoverMiddleware)
	router.Use(tracingMiddleware)
	router.Use(loggingMiddleware)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Compress(5))

	router.Get("/healthz", handler.Healthz)
	router.Get("/readyz", handler.Readyz)
	router.Handle("/metrics", promhttp.Handler())

	router.Post("/analyze", handler.Analyze)
	router.Get("/runs", handler.ListRuns)
	router.Get("/runs/{id}", handler.GetRun)

	router.Get("/ws/progress", hub.ServeWS)

	return &Server{router: router, handler: handler, hub: hub, host: host, port: port}
}

// Start runs the hub loop and blocks serving HTTP until Shutdown is called.
func (s *Server) Start() error {
	go s.hub.Run()

	addr := fmt.Sprintf("%s:%d", s.host, s.port)
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 5 * time.Minute, // analysis runs can take a while
		IdleTimeout:  120 * time.Second,
	}
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router exposes the chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}
