package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_Idempotent(t *testing.T) {
	Init()
	Init()
	require.NotNil(t, frontierEnqueuedTotal)
}

func TestFrontierCounters(t *testing.T) {
	Init()

	IncEnqueued("metrics-test")
	IncEnqueued("metrics-test")
	IncFiltered("metrics-test")
	IncPopped("metrics-test")
	ObserveResume("metrics-test", 7)
	SetQueueLength("metrics-test", 3)

	assert.Equal(t, float64(2), testutil.ToFloat64(frontierEnqueuedTotal.WithLabelValues("metrics-test")))
	assert.Equal(t, float64(1), testutil.ToFloat64(frontierFilteredTotal.WithLabelValues("metrics-test")))
	assert.Equal(t, float64(1), testutil.ToFloat64(frontierPoppedTotal.WithLabelValues("metrics-test")))
	assert.Equal(t, float64(7), testutil.ToFloat64(frontierResumedDepth.WithLabelValues("metrics-test")))
	assert.Equal(t, float64(3), testutil.ToFloat64(frontierQueueLength.WithLabelValues("metrics-test")))
}

func TestMiddlewareRecordsStatus(t *testing.T) {
	Init()

	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "418"))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/brew", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "418"))
	assert.Equal(t, before+1, after)
}

func TestHandlerServesScrape(t *testing.T) {
	Init()

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
