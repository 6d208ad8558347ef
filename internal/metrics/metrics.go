// Package metrics exposes Prometheus counters for classifications and
// HTTP traffic. Each Metrics value owns its registry, so tests and
// multiple servers in one process do not collide on registration.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/muliwe/go-fizzbuzz-classifier/internal/fizzbuzz"
)

const namespace = "fizzbuzz"

// Metrics holds the service collectors
type Metrics struct {
	registry        *prometheus.Registry
	classifications *prometheus.CounterVec
	requests        *prometheus.CounterVec
	duration        *prometheus.HistogramVec
}

// New creates and registers all collectors
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		classifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "classifications_total",
			Help:      "Classified integers by resulting kind.",
		}, []string{"kind"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"route", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"route"}),
	}

	m.registry.MustRegister(
		m.classifications,
		m.requests,
		m.duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// Pre-create every kind so dashboards see zeros instead of gaps
	for _, k := range fizzbuzz.Kinds() {
		m.classifications.WithLabelValues(k.String())
	}

	return m
}

// ObserveClassification counts one classified value
func (m *Metrics) ObserveClassification(k fizzbuzz.Kind) {
	m.classifications.WithLabelValues(k.String()).Inc()
}

// ObserveRequest records one served HTTP request
func (m *Metrics) ObserveRequest(route string, code int, d time.Duration) {
	m.requests.WithLabelValues(route, strconv.Itoa(code)).Inc()
	m.duration.WithLabelValues(route).Observe(d.Seconds())
}

// Registry exposes the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
