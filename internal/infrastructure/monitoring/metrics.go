package monitoring

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Panel metrics
	PanelOps        *prometheus.CounterVec
	PanelsOpen      *prometheus.GaugeVec
	EventsDelivered *prometheus.CounterVec

	// Layout metrics
	LayoutsStored   prometheus.Gauge
	LayoutsSaved    prometheus.Counter
	LayoutsRestored prometheus.Counter

	// WebSocket metrics
	WSConnections prometheus.Gauge
	WSMessages    *prometheus.CounterVec

	startTime time.Time

	// Snapshot for the health endpoint
	snapshot Snapshot
	mu       sync.RWMutex
}

// Snapshot holds running totals for the JSON health API
type Snapshot struct {
	TotalRequests     int64   `json:"total_requests"`
	TotalErrors       int64   `json:"total_errors"`
	ActiveConnections int64   `json:"active_connections"`
	UptimeSeconds     float64 `json:"uptime_seconds"`
}

// NewMetrics creates a metrics collector registered on a fresh registry
func NewMetrics() *Metrics {
	return NewMetricsWithRegistry(prometheus.NewRegistry())
}

// NewMetricsWithRegistry creates a metrics collector registered on reg
func NewMetricsWithRegistry(reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)
	m := &Metrics{
		registry:  reg,
		startTime: time.Now(),

		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "desktop_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "desktop_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"method", "path"},
		),

		PanelOps: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "desktop_panel_operations_total",
				Help: "Panel manager operations that changed state",
			},
			[]string{"op"},
		),
		PanelsOpen: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "desktop_panels_open",
				Help: "Number of open panels by kind",
			},
			[]string{"kind"},
		),
		EventsDelivered: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "desktop_panel_events_total",
				Help: "Panel manager notifications emitted",
			},
			[]string{"type"},
		),

		LayoutsStored: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "desktop_layouts_stored",
				Help: "Number of saved layouts",
			},
		),
		LayoutsSaved: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "desktop_layouts_saved_total",
				Help: "Total number of layouts saved",
			},
		),
		LayoutsRestored: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "desktop_layouts_restored_total",
				Help: "Total number of layouts restored",
			},
		),

		WSConnections: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "desktop_ws_connections",
				Help: "Number of active WebSocket connections",
			},
		),
		WSMessages: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "desktop_ws_messages_total",
				Help: "Total number of WebSocket messages",
			},
			[]string{"direction", "type"},
		),
	}

	factory.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "desktop_uptime_seconds",
			Help: "Backend uptime in seconds",
		},
		func() float64 { return time.Since(m.startTime).Seconds() },
	)

	return m
}

// RegisterRuntimeCollectors adds Go runtime and process collectors
func (m *Metrics) RegisterRuntimeCollectors() {
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// Registry returns the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())

	m.mu.Lock()
	m.snapshot.TotalRequests++
	if status[0] == '4' || status[0] == '5' {
		m.snapshot.TotalErrors++
	}
	m.mu.Unlock()
}

// RecordPanelOp records a state-changing panel operation
func (m *Metrics) RecordPanelOp(op string) {
	m.PanelOps.WithLabelValues(op).Inc()
}

// SetPanelsOpen sets the open panel gauge for a kind
func (m *Metrics) SetPanelsOpen(kind string, count int) {
	m.PanelsOpen.WithLabelValues(kind).Set(float64(count))
}

// RecordEvent records an emitted notification
func (m *Metrics) RecordEvent(eventType string) {
	m.EventsDelivered.WithLabelValues(eventType).Inc()
}

// SetLayoutsStored sets the number of saved layouts
func (m *Metrics) SetLayoutsStored(count int) {
	m.LayoutsStored.Set(float64(count))
}

// IncLayoutsSaved increments the layouts saved counter
func (m *Metrics) IncLayoutsSaved() {
	m.LayoutsSaved.Inc()
}

// IncLayoutsRestored increments the layouts restored counter
func (m *Metrics) IncLayoutsRestored() {
	m.LayoutsRestored.Inc()
}

// RecordWSMessage records a WebSocket message
func (m *Metrics) RecordWSMessage(direction, msgType string) {
	m.WSMessages.WithLabelValues(direction, msgType).Inc()
}

// IncWSConnections increments WebSocket connections
func (m *Metrics) IncWSConnections() {
	m.WSConnections.Inc()
	m.mu.Lock()
	m.snapshot.ActiveConnections++
	m.mu.Unlock()
}

// DecWSConnections decrements WebSocket connections
func (m *Metrics) DecWSConnections() {
	m.WSConnections.Dec()
	m.mu.Lock()
	m.snapshot.ActiveConnections--
	m.mu.Unlock()
}

// Snapshot returns the running totals
func (m *Metrics) Snapshot() Snapshot {
	m.mu.RLock()
	s := m.snapshot
	m.mu.RUnlock()
	s.UptimeSeconds = time.Since(m.startTime).Seconds()
	return s
}
