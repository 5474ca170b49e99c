package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/sonic-site-check/internal/domain"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ReportSource returns the most recent site report, if one exists.
type ReportSource interface {
	Latest() (domain.SiteReport, bool)
}

// Server exposes health, readiness, metrics and report HTTP endpoints.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics and
// /reports routes.
func NewServer(addr string, ready sharedobs.ReadinessChecker, reports ReportSource, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /reports", handleReports(reports))

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func handleReports(source ReportSource) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		report, ok := source.Latest()
		if !ok {
			sharedobs.WriteJSON(w, http.StatusNotFound, map[string]string{"error": "no report available"})
			return
		}
		sharedobs.WriteJSON(w, http.StatusOK, report)
	}
}
