// Package metrics provides Prometheus metrics for the resume dashboard.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the dashboard.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Dataset
	datasetRows         prometheus.Gauge
	datasetRegions      prometheus.Gauge
	datasetLoadDuration prometheus.Histogram
	datasetLoadErrors   prometheus.Counter

	// Chart pipeline
	chartBuilds        *prometheus.CounterVec
	chartFilteredRows  *prometheus.HistogramVec
	chartRenderLatency *prometheus.HistogramVec
	chartRenderErrors  *prometheus.CounterVec
	exportsTotal       *prometheus.CounterVec

	// Prerender
	prerenderQueueSize prometheus.Gauge
	prerenderWorkers   prometheus.Gauge
	prerenderJobs      *prometheus.CounterVec

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorRateByType     *prometheus.CounterVec
	errorRateByEndpoint *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "resumedash",
		subsystem:        "dashboard",
		histogramBuckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every metric definition
	auto := promauto.With(m.registry)

	m.datasetRows = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "dataset_rows",
		Help:      "Number of resume rows in the loaded dataset",
	})

	m.datasetRegions = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "dataset_regions",
		Help:      "Number of distinct regions in the loaded dataset",
	})

	m.datasetLoadDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "dataset_load_duration_milliseconds",
		Help:      "Time spent reading and normalizing the dataset",
		Buckets:   m.histogramBuckets,
	})

	m.datasetLoadErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "dataset_load_errors_total",
		Help:      "Dataset loads that failed (missing or malformed file)",
	})

	m.chartBuilds = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "chart_builds_total",
		Help:      "Filter and aggregate pipeline runs by chart",
	}, []string{"chart"})

	m.chartFilteredRows = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "chart_filtered_rows",
		Help:      "Rows left after the region filter, by chart",
		Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
	}, []string{"chart"})

	m.chartRenderLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "chart_render_duration_milliseconds",
		Help:      "Chart rendering latency by chart and output format",
		Buckets:   m.histogramBuckets,
	}, []string{"chart", "format"})

	m.chartRenderErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "chart_render_errors_total",
		Help:      "Chart renders that failed, by chart",
	}, []string{"chart"})

	m.exportsTotal = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "exports_total",
		Help:      "Workbook exports by chart",
	}, []string{"chart"})

	m.prerenderQueueSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "prerender_queue_size",
		Help:      "Charts waiting to be prerendered",
	})

	m.prerenderWorkers = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "prerender_active_workers",
		Help:      "Prerender workers currently running",
	})

	m.prerenderJobs = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "prerender_jobs_total",
		Help:      "Prerender jobs by outcome (ok, skipped, error, rejected)",
	}, []string{"status"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests by endpoint and method",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})

	m.errorRateByType = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "errors_by_type_total",
		Help:      "Errors by type and severity",
	}, []string{"error_type", "severity"})

	m.errorRateByEndpoint = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "errors_by_endpoint_total",
		Help:      "Errors by endpoint",
	}, []string{"endpoint", "method", "error_type"})

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

// RecordDatasetLoad records a successful dataset load.
func RecordDatasetLoad(rows, regions int, durationMs float64) {
	globalManager.datasetRows.Set(float64(rows))
	globalManager.datasetRegions.Set(float64(regions))
	globalManager.datasetLoadDuration.Observe(durationMs)
}

// RecordDatasetLoadError increments the failed dataset load counter.
func RecordDatasetLoadError() {
	globalManager.datasetLoadErrors.Inc()
}

// RecordChartBuild records one pipeline run and the rows that survived the filter.
func RecordChartBuild(chart string, filteredRows int) {
	globalManager.chartBuilds.WithLabelValues(chart).Inc()
	globalManager.chartFilteredRows.WithLabelValues(chart).Observe(float64(filteredRows))
}

// RecordChartRender records rendering latency for a chart in the given format.
func RecordChartRender(chart, format string, durationMs float64) {
	globalManager.chartRenderLatency.WithLabelValues(chart, format).Observe(durationMs)
}

// RecordChartRenderError increments the render error counter for a chart.
func RecordChartRenderError(chart string) {
	globalManager.chartRenderErrors.WithLabelValues(chart).Inc()
}

// RecordExport increments the export counter for a chart.
func RecordExport(chart string) {
	globalManager.exportsTotal.WithLabelValues(chart).Inc()
}

// UpdatePrerenderQueueSize sets the number of queued prerender jobs.
func UpdatePrerenderQueueSize(size int) {
	globalManager.prerenderQueueSize.Set(float64(size))
}

// UpdatePrerenderWorkers sets the number of running prerender workers.
func UpdatePrerenderWorkers(count int) {
	globalManager.prerenderWorkers.Set(float64(count))
}

// RecordPrerenderJob counts a prerender job by outcome.
func RecordPrerenderJob(status string) {
	globalManager.prerenderJobs.WithLabelValues(status).Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByType records errors by type and severity.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint records errors by endpoint.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// UpdateSystemMemoryUsage sets the current system memory usage.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the current goroutine count.
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
