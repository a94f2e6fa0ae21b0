// Package api exposes the HTTP interface for the frontier service.
// Routes:
//   - GET /healthz and /readyz for probes.
//   - GET /metrics for Prometheus scraping.
//   - POST /v1/requests to offer a candidate request.
//   - GET /v1/requests/next to pop the next request (204 when empty).
//   - GET /v1/queue for the current queue length.
//   - DELETE /v1/queue to clear the queue.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/JakeFAU/crawl-frontier/internal/metrics"
	"github.com/JakeFAU/crawl-frontier/internal/scheduler"
)

const requestTimeout = 15 * time.Second

// Server wires HTTP handlers to one scheduler session.
type Server struct {
	router    chi.Router
	scheduler *scheduler.Scheduler
	job       string
	logger    *zap.Logger
}

// NewServer constructs a Server with middleware and routes.
func NewServer(sched *scheduler.Scheduler, job string, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		scheduler: sched,
		job:       job,
		logger:    logger,
	}

	r := chi.NewRouter()
	r.Use(s.loggingMiddleware)
	r.Use(recoverMiddleware(logger))
	r.Use(metrics.Middleware)
	r.Use(timeoutMiddleware(requestTimeout))

	r.Get("/healthz", s.healthz)
	r.Get("/readyz", s.readyz)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Post("/requests", s.enqueueRequest)
		r.Get("/requests/next", s.nextRequest)
		r.Get("/queue", s.queueStatus)
		r.Delete("/queue", s.clearQueue)
	})

	s.router = r
	return s
}

// Handler returns the Router for use with http.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) readyz(w http.ResponseWriter, r *http.Request) {
	// A queue length round trip doubles as the store liveness check.
	if _, err := s.scheduler.Len(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "store unreachable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		// Headers are already out; nothing left to do for this response.
		return
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
