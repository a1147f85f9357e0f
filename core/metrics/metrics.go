package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "idrec"

// Metrics holds the collectors recorded by the resolver and the pipeline.
type Metrics struct {
	registry *prometheus.Registry

	lookupCalls     *prometheus.CounterVec
	lookupDuration  *prometheus.HistogramVec
	lookupRetries   *prometheus.CounterVec
	cacheHits       prometheus.Counter
	classifications *prometheus.CounterVec
}

// New creates a Metrics value backed by a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		lookupCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lookup_calls_total",
			Help:      "External lookup calls by operation and result.",
		}, []string{"op", "result"}),
		lookupDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "lookup_duration_seconds",
			Help:      "Latency of external lookup calls.",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		}, []string{"op"}),
		lookupRetries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lookup_retries_total",
			Help:      "Retries issued after a transient lookup failure.",
		}, []string{"op"}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_hits_total",
			Help:      "Resolutions served from the run cache.",
		}),
		classifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "classifications_total",
			Help:      "Final classifications by namespace and source.",
		}, []string{"namespace", "source"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{Namespace: namespace}),
		m.lookupCalls,
		m.lookupDuration,
		m.lookupRetries,
		m.cacheHits,
		m.classifications,
	)
	return m
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns an http.Handler exposing the registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

// ObserveLookup records one external call.
func (m *Metrics) ObserveLookup(op string, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.lookupCalls.WithLabelValues(op, result).Inc()
	m.lookupDuration.WithLabelValues(op).Observe(elapsed.Seconds())
}

// IncRetry records a retry of op.
func (m *Metrics) IncRetry(op string) {
	if m == nil {
		return
	}
	m.lookupRetries.WithLabelValues(op).Inc()
}

// IncCacheHit records a cache hit.
func (m *Metrics) IncCacheHit() {
	if m == nil {
		return
	}
	m.cacheHits.Inc()
}

// IncClassification records a final classification.
func (m *Metrics) IncClassification(namespace, source string) {
	if m == nil {
		return
	}
	m.classifications.WithLabelValues(namespace, source).Inc()
}
