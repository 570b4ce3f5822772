package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus collector of the console.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	constLabels      map[string]string
	registry         prometheus.Registerer

	// API client metrics
	clientRequests        *prometheus.CounterVec
	clientRequestDuration *prometheus.HistogramVec
	clientErrors          *prometheus.CounterVec

	// Console HTTP server metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorRateByEndpoint *prometheus.CounterVec
	errorRateByType     *prometheus.CounterVec

	// Dev proxy metrics
	proxyUpstreamErrors *prometheus.CounterVec

	// Smoke runner metrics
	smokeChecks *prometheus.CounterVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

var globalManager *Manager //nolint:gochecknoglobals // singleton used by the package-level helpers

// customRegistry keeps the default Go collectors out of /healthz.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals

func init() { //nolint:gochecknoinits
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "robot",
		subsystem:        "console",
		histogramBuckets: []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000, 30000, 60000},
		enabled:          true,
		constLabels:      map[string]string{},
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() { //nolint:funlen
	auto := promauto.With(m.registry)

	m.clientRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "client_requests_total",
		Help:        "Backend requests issued by the API client by endpoint, method and status",
		ConstLabels: m.constLabels,
	}, []string{"endpoint", "method", "status_code"})

	m.clientRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "client_request_duration_milliseconds",
		Help:        "Backend request latency in milliseconds as seen by the API client",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	}, []string{"endpoint", "method"})

	m.clientErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "client_errors_total",
		Help:        "Failed backend calls by endpoint and kind (transport, timeout, status)",
		ConstLabels: m.constLabels,
	}, []string{"endpoint", "kind"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_requests_total",
		Help:        "Requests served by the console by endpoint, method and status",
		ConstLabels: m.constLabels,
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_request_duration_milliseconds",
		Help:        "Console request duration in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	}, []string{"endpoint", "method", "status_code"})

	m.errorRateByEndpoint = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "errors_by_endpoint_total",
		Help:        "Console error responses by endpoint, method and error type",
		ConstLabels: m.constLabels,
	}, []string{"endpoint", "method", "error_type"})

	m.errorRateByType = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "errors_by_type_total",
		Help:        "Console error responses by error type and severity",
		ConstLabels: m.constLabels,
	}, []string{"error_type", "severity"})

	m.proxyUpstreamErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "proxy_upstream_errors_total",
		Help:        "Dev proxy requests that failed to reach the backend, by prefix",
		ConstLabels: m.constLabels,
	}, []string{"prefix"})

	m.smokeChecks = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "smoke_checks_total",
		Help:        "Smoke checks run against the backend by endpoint and result",
		ConstLabels: m.constLabels,
	}, []string{"endpoint", "result"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_memory_usage_bytes",
		Help:        "Heap bytes allocated",
		ConstLabels: m.constLabels,
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_goroutine_count",
		Help:        "Number of goroutines",
		ConstLabels: m.constLabels,
	})
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// ObserveClientRequest records one completed backend call. A zero status
// means no HTTP response was received.
func (m *Manager) ObserveClientRequest(endpoint, method string, status int, d time.Duration) {
	if !m.enabled {
		return
	}
	m.clientRequests.WithLabelValues(endpoint, method, strconv.Itoa(status)).Inc()
	m.clientRequestDuration.WithLabelValues(endpoint, method).Observe(millis(d))
}

// RecordClientError counts a failed backend call.
func (m *Manager) RecordClientError(endpoint, kind string) {
	if !m.enabled {
		return
	}
	m.clientErrors.WithLabelValues(endpoint, kind).Inc()
}

// ObserveHTTPRequest records one request served by the console.
func (m *Manager) ObserveHTTPRequest(endpoint, method string, status int, d time.Duration) {
	if !m.enabled {
		return
	}
	code := strconv.Itoa(status)
	m.httpRequests.WithLabelValues(endpoint, method, code).Inc()
	m.httpRequestDuration.WithLabelValues(endpoint, method, code).Observe(millis(d))
}

// RecordHTTPError records an error response served by the console.
func (m *Manager) RecordHTTPError(endpoint, method, errorType, severity string) {
	if !m.enabled {
		return
	}
	m.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
	m.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordProxyUpstreamError counts a proxied request the backend never answered.
func (m *Manager) RecordProxyUpstreamError(prefix string) {
	if !m.enabled {
		return
	}
	m.proxyUpstreamErrors.WithLabelValues(prefix).Inc()
}

// RecordSmokeCheck counts one smoke check outcome ("pass" or "fail").
func (m *Manager) RecordSmokeCheck(endpoint, result string) {
	if !m.enabled {
		return
	}
	m.smokeChecks.WithLabelValues(endpoint, result).Inc()
}

// UpdateSystemMemoryUsage sets the heap usage gauge.
func (m *Manager) UpdateSystemMemoryUsage(bytes uint64) {
	if !m.enabled {
		return
	}
	m.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine gauge.
func (m *Manager) UpdateSystemGoroutineCount(count int) {
	if !m.enabled {
		return
	}
	m.systemGoroutineCount.Set(float64(count))
}

// Default returns the manager registered on the custom registry.
func Default() *Manager {
	return globalManager
}

// GetRegistry returns the custom Prometheus registry served on /healthz.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
