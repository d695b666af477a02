// Package metrics provides Prometheus metrics for the unirank query service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Tool Metrics - one MCP tool call is one query
	toolInvocations *prometheus.CounterVec
	toolDuration    *prometheus.HistogramVec
	toolErrors      *prometheus.CounterVec

	// Dataset Metrics - set once after the table is loaded
	datasetRecords      prometheus.Gauge
	datasetUniversities prometheus.Gauge
	datasetYears        prometheus.Gauge
	datasetCountries    prometheus.Gauge
	datasetLoadDuration prometheus.Gauge
	datasetLoadedUnix   prometheus.Gauge

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "unirank",
		subsystem:        "rankings",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	// Apply all options
	for _, opt := range opts {
		opt(m)
	}

	// Initialize metrics
	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	// Ensure metrics are registered on the configured registry (custom by default)
	auto := promauto.With(m.registry)

	// Tool Metrics
	m.toolInvocations = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "tool_invocations_total",
			Help:      "Total number of MCP tool invocations by tool and status",
		},
		[]string{"tool", "status"},
	)

	m.toolDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "tool_duration_milliseconds",
			Help:      "Tool invocation duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"tool"},
	)

	m.toolErrors = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "tool_errors_total",
			Help:      "Total number of tool errors by tool and error kind",
		},
		[]string{"tool", "error_type"},
	)

	// Dataset Metrics
	m.datasetRecords = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "dataset_records",
		Help:      "Total number of (university, year) records in the loaded table",
	})

	m.datasetUniversities = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "dataset_universities",
		Help:      "Number of distinct universities in the loaded table",
	})

	m.datasetYears = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "dataset_years",
		Help:      "Number of distinct ranking years in the loaded table",
	})

	m.datasetCountries = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "dataset_countries",
		Help:      "Number of distinct countries in the loaded table",
	})

	m.datasetLoadDuration = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "dataset_load_duration_milliseconds",
		Help:      "Duration of the one-time CSV load in milliseconds",
	})

	m.datasetLoadedUnix = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "dataset_loaded_unix",
		Help:      "Unix timestamp of the dataset load",
	})

	// HTTP Performance Metrics
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

	// System Performance Metrics
	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_usage_bytes",
		Help:      "System memory usage in bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutine_count",
		Help:      "Number of goroutines",
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_gc_pause_time_milliseconds",
		Help:      "GC pause time in milliseconds",
		Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
	})
}

// RecordToolInvocation increments the tool invocation counter.
func RecordToolInvocation(tool, status string) {
	globalManager.toolInvocations.WithLabelValues(tool, status).Inc()
}

// RecordToolDuration records a tool invocation duration in milliseconds.
func RecordToolDuration(tool string, latencyMs float64) {
	globalManager.toolDuration.WithLabelValues(tool).Observe(latencyMs)
}

// RecordToolError increments the tool error counter.
func RecordToolError(tool, errorType string) {
	globalManager.toolErrors.WithLabelValues(tool, errorType).Inc()
}

// UpdateDatasetStats sets the dataset size gauges after load.
func UpdateDatasetStats(records, universities, years, countries int) {
	globalManager.datasetRecords.Set(float64(records))
	globalManager.datasetUniversities.Set(float64(universities))
	globalManager.datasetYears.Set(float64(years))
	globalManager.datasetCountries.Set(float64(countries))
}

// RecordDatasetLoad records the one-time CSV load timing.
func RecordDatasetLoad(durationMs float64, loadedUnix int64) {
	globalManager.datasetLoadDuration.Set(durationMs)
	globalManager.datasetLoadedUnix.Set(float64(loadedUnix))
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
