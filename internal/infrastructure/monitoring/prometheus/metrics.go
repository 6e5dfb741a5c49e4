// Package prometheus exposes the application's Prometheus metrics: the
// conversion pipeline, the compound library, batch processing, and the HTTP
// surface.
package prometheus

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "stilbar"

var conversionDurationBuckets = []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1}

// Metrics holds every metric the application records.  It implements
// conversion.MetricsRecorder.
type Metrics struct {
	registry *prometheus.Registry

	ConversionsTotal   *prometheus.CounterVec
	ConversionDuration *prometheus.HistogramVec
	CacheHitsTotal     prometheus.Counter
	CacheMissesTotal   prometheus.Counter

	LibraryCompounds *prometheus.GaugeVec

	BatchJobsTotal   *prometheus.CounterVec
	BatchItemsTotal  *prometheus.CounterVec
	BatchJobDuration prometheus.Histogram

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// NewMetrics builds and registers all metrics on a private registry, along
// with the standard process and Go runtime collectors.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
	return newMetricsWithRegistry(registry)
}

func newMetricsWithRegistry(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		registry: registry,
		ConversionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "conversions_total",
			Help:      "Code-to-SMILES conversions by resolution method and outcome.",
		}, []string{"method", "status"}),
		ConversionDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "conversion_duration_seconds",
			Help:      "Conversion latency by resolution method.",
			Buckets:   conversionDurationBuckets,
		}, []string{"method"}),
		CacheHitsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_hits_total",
			Help:      "Conversion result cache hits.",
		}),
		CacheMissesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_misses_total",
			Help:      "Conversion result cache misses.",
		}),
		LibraryCompounds: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "library_compounds",
			Help:      "Compounds in the library by whether they carry a code.",
		}, []string{"kind"}),
		BatchJobsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batch_jobs_total",
			Help:      "Batch conversion jobs by final state.",
		}, []string{"state"}),
		BatchItemsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batch_items_total",
			Help:      "Individual batch items by outcome.",
		}, []string{"status"}),
		BatchJobDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_job_duration_seconds",
			Help:      "End-to-end batch job processing time.",
			Buckets:   prometheus.DefBuckets,
		}),
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
	}

	registry.MustRegister(
		m.ConversionsTotal, m.ConversionDuration,
		m.CacheHitsTotal, m.CacheMissesTotal,
		m.LibraryCompounds,
		m.BatchJobsTotal, m.BatchItemsTotal, m.BatchJobDuration,
		m.HTTPRequestsTotal, m.HTTPRequestDuration,
	)
	return m
}

// Handler serves the metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveConversion records one conversion outcome.
func (m *Metrics) ObserveConversion(method string, success bool, duration time.Duration) {
	status := "success"
	if !success {
		status = "error"
	}
	m.ConversionsTotal.WithLabelValues(method, status).Inc()
	m.ConversionDuration.WithLabelValues(method).Observe(duration.Seconds())
}

// ObserveHTTPRequest records one served request.  path is the route
// template, not the raw URL, to bound label cardinality.
func (m *Metrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// SetLibrarySize updates the library gauges.
func (m *Metrics) SetLibrarySize(withCode, withoutCode int) {
	m.LibraryCompounds.WithLabelValues("with_code").Set(float64(withCode))
	m.LibraryCompounds.WithLabelValues("without_code").Set(float64(withoutCode))
}

// ObserveBatchJob records one finished batch job.
func (m *Metrics) ObserveBatchJob(state string, succeeded, failed int, duration time.Duration) {
	m.BatchJobsTotal.WithLabelValues(state).Inc()
	m.BatchItemsTotal.WithLabelValues("success").Add(float64(succeeded))
	m.BatchItemsTotal.WithLabelValues("error").Add(float64(failed))
	m.BatchJobDuration.Observe(duration.Seconds())
}
