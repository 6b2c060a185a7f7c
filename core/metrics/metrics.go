// Package metrics provides Prometheus instrumentation for the cache store.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Put outcomes used as the "result" label of PutsTotal.
const (
	PutInserted = "inserted"
	PutUpdated  = "updated"
	PutRejected = "rejected"
)

// Metrics holds all Prometheus collectors for a cache store.
type Metrics struct {
	registry *prometheus.Registry

	Hits      prometheus.Counter
	Misses    prometheus.Counter
	Puts      *prometheus.CounterVec
	Evictions prometheus.Counter
	Snapshots prometheus.Counter

	Size     prometheus.Gauge
	Capacity prometheus.Gauge
}

// New creates a Metrics instance registered on its own registry under the
// given namespace. A private registry keeps parallel instances (tests, multiple
// stores) from colliding on the global default registerer.
func New(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		Hits: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_hits_total",
			Help:      "Total number of get requests that found the key",
		}),
		Misses: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_misses_total",
			Help:      "Total number of get requests that did not find the key",
		}),
		Puts: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_puts_total",
			Help:      "Total put requests by result",
		}, []string{"result"}),
		Evictions: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_evictions_total",
			Help:      "Total number of entries evicted to stay within capacity",
		}),
		Snapshots: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_snapshots_total",
			Help:      "Total number of snapshots taken",
		}),
		Size: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cache_entries",
			Help:      "Current number of entries held",
		}),
		Capacity: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cache_capacity",
			Help:      "Maximum number of entries",
		}),
	}
}

// RecordGet records a get request.
func (m *Metrics) RecordGet(hit bool) {
	if hit {
		m.Hits.Inc()
		return
	}
	m.Misses.Inc()
}

// RecordPut records a put request outcome, one of the Put* constants.
func (m *Metrics) RecordPut(result string) {
	m.Puts.WithLabelValues(result).Inc()
}

// RecordEviction records a single capacity eviction.
func (m *Metrics) RecordEviction() {
	m.Evictions.Inc()
}

// RecordSnapshot records a snapshot.
func (m *Metrics) RecordSnapshot() {
	m.Snapshots.Inc()
}

// UpdateSize sets the size and capacity gauges.
func (m *Metrics) UpdateSize(size, capacity int) {
	m.Size.Set(float64(size))
	m.Capacity.Set(float64(capacity))
}

// Registry returns the registry the collectors are registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns an HTTP handler exposing the metrics in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
