// Package metrics exposes Prometheus collectors for the frontier service.
package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	frontierEnqueuedTotal *prometheus.CounterVec
	frontierFilteredTotal *prometheus.CounterVec
	frontierPoppedTotal   *prometheus.CounterVec
	frontierResumedDepth  *prometheus.GaugeVec
	frontierQueueLength   *prometheus.GaugeVec

	httpRequestsTotal          *prometheus.CounterVec
	httpRequestDurationSeconds *prometheus.HistogramVec

	once sync.Once
)

// Init initializes the Prometheus metrics collectors.
// It is safe to call this function multiple times.
func Init() {
	once.Do(func() {
		frontierEnqueuedTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "frontier_requests_enqueued_total",
				Help: "Total number of requests accepted into the queue, labeled by job.",
			},
			[]string{"job"},
		)

		frontierFilteredTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "frontier_requests_filtered_total",
				Help: "Total number of requests dropped as duplicates, labeled by job.",
			},
			[]string{"job"},
		)

		frontierPoppedTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "frontier_requests_popped_total",
				Help: "Total number of requests handed out to workers, labeled by job.",
			},
			[]string{"job"},
		)

		frontierResumedDepth = promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "frontier_resumed_requests",
				Help: "Queue depth observed when a persistent session resumed, labeled by job.",
			},
			[]string{"job"},
		)

		frontierQueueLength = promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "frontier_queue_length",
				Help: "Most recently observed queue length, labeled by job.",
			},
			[]string{"job"},
		)

		httpRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests, labeled by method and code.",
			},
			[]string{"method", "code"},
		)

		httpRequestDurationSeconds = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency distribution, labeled by method.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method"},
		)
	})
}

// IncEnqueued counts a request accepted into the queue.
func IncEnqueued(job string) {
	if frontierEnqueuedTotal != nil {
		frontierEnqueuedTotal.WithLabelValues(job).Inc()
	}
}

// IncFiltered counts a request dropped by the dupe filter.
func IncFiltered(job string) {
	if frontierFilteredTotal != nil {
		frontierFilteredTotal.WithLabelValues(job).Inc()
	}
}

// IncPopped counts a request handed out to a worker.
func IncPopped(job string) {
	if frontierPoppedTotal != nil {
		frontierPoppedTotal.WithLabelValues(job).Inc()
	}
}

// ObserveResume records the queue depth found when a persistent session
// reopened.
func ObserveResume(job string, depth int64) {
	if frontierResumedDepth != nil {
		frontierResumedDepth.WithLabelValues(job).Set(float64(depth))
	}
}

// SetQueueLength records the latest observed queue length.
func SetQueueLength(job string, n int64) {
	if frontierQueueLength != nil {
		frontierQueueLength.WithLabelValues(job).Set(float64(n))
	}
}

// Handler returns the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// statusRecorder captures the response code for labeling.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Middleware instruments HTTP handlers with request count and latency.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)
		if httpRequestsTotal != nil {
			httpRequestsTotal.WithLabelValues(r.Method, strconv.Itoa(rec.status)).Inc()
		}
		if httpRequestDurationSeconds != nil {
			httpRequestDurationSeconds.WithLabelValues(r.Method).Observe(time.Since(start).Seconds())
		}
	})
}
