package store

import (
	"log/slog"

	"github.com/dmitrymomot/lrucache/core/metrics"
)

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for eviction and rejection events.
func WithLogger(log *slog.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.logger = log
		}
	}
}

// WithMetrics enables Prometheus instrumentation.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Store) {
		s.metrics = m
	}
}

// WithBroadcaster publishes a Change for every put and eviction, so that
// observers such as live dashboards learn about writes from any transport.
func WithBroadcaster(b Changes) Option {
	return func(s *Store) {
		s.changes = b
	}
}
