package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/JakeFAU/crawl-frontier/internal/frontier"
	"github.com/JakeFAU/crawl-frontier/internal/metrics"
)

// enqueuePayload is the POST /v1/requests body. Priority is a pointer so
// an absent field gets the frontier default instead of zero.
type enqueuePayload struct {
	Method     string              `json:"method"`
	URL        string              `json:"url"`
	Body       []byte              `json:"body,omitempty"`
	Headers    map[string][]string `json:"headers,omitempty"`
	Priority   *int                `json:"priority,omitempty"`
	DontFilter bool                `json:"dont_filter,omitempty"`
}

func (p enqueuePayload) toRequest() *frontier.Request {
	req := frontier.NewRequest(p.URL)
	if p.Method != "" {
		req.Method = p.Method
	}
	req.Body = p.Body
	req.Headers = p.Headers
	if p.Priority != nil {
		req.Priority = *p.Priority
	}
	req.DontFilter = p.DontFilter
	return req
}

func (s *Server) enqueueRequest(w http.ResponseWriter, r *http.Request) {
	var payload enqueuePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if payload.URL == "" {
		writeError(w, http.StatusBadRequest, "url is required")
		return
	}

	enqueued, err := s.scheduler.EnqueueRequest(r.Context(), payload.toRequest())
	if err != nil {
		s.logger.Error("enqueue failed", zap.String("url", payload.URL), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "enqueue failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"enqueued": enqueued})
}

func (s *Server) nextRequest(w http.ResponseWriter, r *http.Request) {
	req, err := s.scheduler.NextRequest(r.Context())
	if err != nil {
		if errors.Is(err, frontier.ErrDecode) {
			s.logger.Error("corrupted queue entry", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "corrupted queue entry")
			return
		}
		s.logger.Error("pop failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "pop failed")
		return
	}
	if req == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

func (s *Server) queueStatus(w http.ResponseWriter, r *http.Request) {
	n, err := s.scheduler.Len(r.Context())
	if err != nil {
		s.logger.Error("queue length failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "queue length failed")
		return
	}
	metrics.SetQueueLength(s.job, n)
	writeJSON(w, http.StatusOK, map[string]any{
		"length":  n,
		"pending": n > 0,
	})
}

func (s *Server) clearQueue(w http.ResponseWriter, r *http.Request) {
	if err := s.scheduler.Clear(r.Context()); err != nil {
		s.logger.Error("queue clear failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "queue clear failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}
