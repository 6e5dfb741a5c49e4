package prometheus

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMetrics() *Metrics {
	return newMetricsWithRegistry(prometheus.NewRegistry())
}

func TestObserveConversion(t *testing.T) {
	m := newTestMetrics()

	m.ObserveConversion("lookup", true, 50*time.Microsecond)
	m.ObserveConversion("lookup", true, 80*time.Microsecond)
	m.ObserveConversion("template", false, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ConversionsTotal.WithLabelValues("lookup", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ConversionsTotal.WithLabelValues("template", "error")))
}

func TestObserveHTTPRequest(t *testing.T) {
	m := newTestMetrics()

	m.ObserveHTTPRequest("POST", "/api/v1/convert", 200, 3*time.Millisecond)
	m.ObserveHTTPRequest("POST", "/api/v1/convert", 422, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("POST", "/api/v1/convert", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("POST", "/api/v1/convert", "422")))
}

func TestSetLibrarySize(t *testing.T) {
	m := newTestMetrics()

	m.SetLibrarySize(60, 2)
	assert.Equal(t, 60.0, testutil.ToFloat64(m.LibraryCompounds.WithLabelValues("with_code")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.LibraryCompounds.WithLabelValues("without_code")))

	m.SetLibrarySize(61, 2)
	assert.Equal(t, 61.0, testutil.ToFloat64(m.LibraryCompounds.WithLabelValues("with_code")))
}

func TestObserveBatchJob(t *testing.T) {
	m := newTestMetrics()

	m.ObserveBatchJob("completed", 3, 1, 2*time.Second)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.BatchJobsTotal.WithLabelValues("completed")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.BatchItemsTotal.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BatchItemsTotal.WithLabelValues("error")))
}

func TestHandler(t *testing.T) {
	m := newTestMetrics()
	m.ObserveConversion("lookup", true, time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	require.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "stilbar_conversions_total")
}
