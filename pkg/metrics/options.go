package metrics

import "github.com/prometheus/client_golang/prometheus"

// Option configures a metrics Manager.
type Option func(*Manager)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(m *Manager) {
		m.namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) Option {
	return func(m *Manager) {
		m.subsystem = subsystem
	}
}

// WithHistogramBuckets sets the histogram buckets for duration metrics.
func WithHistogramBuckets(buckets []float64) Option {
	return func(m *Manager) {
		m.histogramBuckets = buckets
	}
}

// WithRegistry sets a custom Prometheus registerer.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(m *Manager) {
		m.registry = registry
	}
}
