package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/GriffinCanCode/teveclub/internal/types"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Remote action metrics
	ActionsTotal    *prometheus.CounterVec
	FeedSubmissions prometheus.Histogram
	AutoRuns        *prometheus.CounterVec

	// Upstream metrics
	UpstreamCalls    *prometheus.CounterVec
	UpstreamDuration prometheus.Histogram
	BreakerOpen      prometheus.Gauge

	// Session metrics
	SessionsActive prometheus.Gauge
	WSConnections  prometheus.Gauge
}

// NewMetrics creates the collectors and registers them on reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "teveclub_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "teveclub_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"method", "path"},
		),
		ActionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "teveclub_actions_total",
				Help: "Remote actions by outcome and failure kind",
			},
			[]string{"action", "outcome", "kind"},
		),
		FeedSubmissions: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "teveclub_feed_submissions",
				Help:    "Feed submissions issued per feed call",
				Buckets: []float64{0, 1, 2, 3, 5, 8, 10},
			},
		),
		AutoRuns: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "teveclub_auto_runs_total",
				Help: "Auto runs by final status",
			},
			[]string{"status"},
		),
		UpstreamCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "teveclub_upstream_calls_total",
				Help: "Calls forwarded to the remote site",
			},
			[]string{"method", "status"},
		),
		UpstreamDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "teveclub_upstream_call_duration_seconds",
				Help:    "Remote site call duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		BreakerOpen: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "teveclub_upstream_breaker_open",
				Help: "1 when the upstream circuit breaker is open",
			},
		),
		SessionsActive: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "teveclub_sessions_active",
				Help: "Browser sessions holding an upstream cookie jar",
			},
		),
		WSConnections: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "teveclub_ws_connections",
				Help: "Open auto-run stream connections",
			},
		),
	}
}

// RecordHTTPRequest records one served HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordAction counts one remote action result
func (m *Metrics) RecordAction(action string, result types.ActionResult) {
	m.ActionsTotal.WithLabelValues(action, result.Outcome.String(), result.Kind.String()).Inc()
}

// RecordFeedSubmissions observes how many submissions one feed call made
func (m *Metrics) RecordFeedSubmissions(n int) {
	m.FeedSubmissions.Observe(float64(n))
}

// RecordAutoRun counts a finished auto run
func (m *Metrics) RecordAutoRun(status types.ReportStatus) {
	m.AutoRuns.WithLabelValues(string(status)).Inc()
}

// RecordUpstreamCall records one call to the remote site
func (m *Metrics) RecordUpstreamCall(method, status string, duration time.Duration) {
	m.UpstreamCalls.WithLabelValues(method, status).Inc()
	m.UpstreamDuration.Observe(duration.Seconds())
}

// SetBreakerOpen mirrors the upstream breaker state
func (m *Metrics) SetBreakerOpen(open bool) {
	if open {
		m.BreakerOpen.Set(1)
		return
	}
	m.BreakerOpen.Set(0)
}

// SetSessionsActive sets the number of live browser sessions
func (m *Metrics) SetSessionsActive(count int) {
	m.SessionsActive.Set(float64(count))
}

// IncWSConnections increments open stream connections
func (m *Metrics) IncWSConnections() { m.WSConnections.Inc() }

// DecWSConnections decrements open stream connections
func (m *Metrics) DecWSConnections() { m.WSConnections.Dec() }
