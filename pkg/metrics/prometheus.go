// Package metrics provides Prometheus metrics for the careeriq service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the careeriq service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Benchmarking metrics
	reportsGenerated  prometheus.Counter
	cohortTier        *prometheus.CounterVec
	cohortUnavailable prometheus.Counter
	scoringDuration   prometheus.Histogram

	// Plan metrics
	plansGenerated        prometheus.Counter
	advisorFallbacks      prometheus.Counter
	advisorDuration       prometheus.Histogram
	recommendationUpdates *prometheus.CounterVec
	legacyIDRepairs       prometheus.Counter

	// Store metrics
	storeQueryDuration prometheus.Histogram
	storeErrors        *prometheus.CounterVec

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "careeriq",
		subsystem:        "benchmark",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.reportsGenerated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "reports_generated_total",
		Help:      "Total number of benchmark reports generated",
	})

	m.cohortTier = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "cohort_tier_selected_total",
			Help:      "Total number of cohort resolutions by relaxation tier",
		},
		[]string{"tier"},
	)

	m.cohortUnavailable = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cohort_unavailable_total",
		Help:      "Total number of resolutions that exhausted the relaxation ladder",
	})

	m.scoringDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "scoring_duration_milliseconds",
		Help:      "Benchmark generation duration in milliseconds, cohort queries included",
		Buckets:   m.histogramBuckets,
	})

	m.plansGenerated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "plans_generated_total",
		Help:      "Total number of career plans generated",
	})

	m.advisorFallbacks = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "advisor_fallbacks_total",
		Help:      "Total number of plans served from the fallback template",
	})

	m.advisorDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "advisor_duration_milliseconds",
		Help:      "Advice provider round-trip duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.recommendationUpdates = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "recommendation_updates_total",
			Help:      "Total number of recommendation status transitions by target status",
		},
		[]string{"status"},
	)

	m.legacyIDRepairs = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "legacy_id_repairs_total",
		Help:      "Total number of plans whose recommendations needed id repair",
	})

	m.storeQueryDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_query_duration_milliseconds",
		Help:      "Collection store query duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.storeErrors = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "store_errors_total",
			Help:      "Total number of collection store errors by operation",
		},
		[]string{"operation"},
	)

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)
}

// GetRegistry returns the registry backing the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// RecordReportGenerated counts one generated benchmark report.
func RecordReportGenerated() {
	globalManager.reportsGenerated.Inc()
}

// RecordCohortTier counts a cohort resolution by tier.
func RecordCohortTier(tier string) {
	globalManager.cohortTier.WithLabelValues(tier).Inc()
}

// RecordCohortUnavailable counts an exhausted relaxation ladder.
func RecordCohortUnavailable() {
	globalManager.cohortUnavailable.Inc()
}

// RecordScoringDuration records one benchmark generation duration.
func RecordScoringDuration(ms float64) {
	globalManager.scoringDuration.Observe(ms)
}

// RecordPlanGenerated counts one generated career plan.
func RecordPlanGenerated() {
	globalManager.plansGenerated.Inc()
}

// RecordAdvisorFallback counts one fallback template substitution.
func RecordAdvisorFallback() {
	globalManager.advisorFallbacks.Inc()
}

// RecordAdvisorDuration records one advice provider round trip.
func RecordAdvisorDuration(ms float64) {
	globalManager.advisorDuration.Observe(ms)
}

// RecordRecommendationUpdate counts one status transition.
func RecordRecommendationUpdate(status string) {
	globalManager.recommendationUpdates.WithLabelValues(status).Inc()
}

// RecordLegacyIDRepair counts one plan id repair.
func RecordLegacyIDRepair() {
	globalManager.legacyIDRepairs.Inc()
}

// RecordStoreQueryDuration records one store query duration.
func RecordStoreQueryDuration(ms float64) {
	globalManager.storeQueryDuration.Observe(ms)
}

// RecordStoreError counts one store error by operation.
func RecordStoreError(operation string) {
	globalManager.storeErrors.WithLabelValues(operation).Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, ms float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(ms)
}
