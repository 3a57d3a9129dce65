// Package metrics exposes Prometheus counters for upstream WordPress traffic
// and enrichment outcomes.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the collectors registered on a private registry. A nil
// *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	upstreamRequests *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
	cacheHits        *prometheus.CounterVec
	relationFailures *prometheus.CounterVec
}

// New creates a Metrics with its own registry, including the Go runtime and
// process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		upstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wpblog",
			Name:      "upstream_requests_total",
			Help:      "WordPress REST requests by endpoint and outcome",
		}, []string{"endpoint", "outcome"}),
		upstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "wpblog",
			Name:      "upstream_request_duration_seconds",
			Help:      "Latency of WordPress REST requests that reached the network",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
		cacheHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wpblog",
			Name:      "response_cache_hits_total",
			Help:      "WordPress responses served from the response cache",
		}, []string{"endpoint"}),
		relationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wpblog",
			Name:      "relation_failures_total",
			Help:      "Post relations that could not be resolved during enrichment",
		}, []string{"relation"}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.upstreamRequests,
		m.upstreamDuration,
		m.cacheHits,
		m.relationFailures,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveUpstream records one upstream request. Outcome is a short label
// such as "ok", "transport", "status", "format".
func (m *Metrics) ObserveUpstream(endpoint, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.upstreamRequests.WithLabelValues(endpoint, outcome).Inc()
	if outcome != "transport" {
		m.upstreamDuration.WithLabelValues(endpoint).Observe(d.Seconds())
	}
}

// CacheHit records a response served from the response cache.
func (m *Metrics) CacheHit(endpoint string) {
	if m == nil {
		return
	}
	m.cacheHits.WithLabelValues(endpoint).Inc()
}

// RelationFailed records a relation left unresolved during enrichment.
func (m *Metrics) RelationFailed(relation string) {
	if m == nil {
		return
	}
	m.relationFailures.WithLabelValues(relation).Inc()
}
