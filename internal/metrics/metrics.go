// Package metrics holds the Prometheus instruments for command dispatch and
// paginated views. A nil *Metrics is valid and records nothing.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Dispatch outcomes.
const (
	StatusOK              = "ok"
	StatusResolutionError = "resolution_error"
	StatusHandlerError    = "handler_error"
)

// Pagination outcomes.
const (
	SessionStarted     = "started"
	SessionInvalidData = "invalid_data"
	SessionExpired     = "expired"

	ControlAccepted = "accepted"
	ControlRejected = "rejected"
	ControlInvalid  = "invalid"
	ControlStale    = "stale"
)

type Metrics struct {
	DispatchTotal           *prometheus.CounterVec
	DispatchDurationSeconds *prometheus.HistogramVec

	PaginationSessionsTotal *prometheus.CounterVec
	PaginationSessionsLive  prometheus.Gauge
	PaginationControlsTotal *prometheus.CounterVec
}

// New creates the instruments and registers them on registry.
func New(registry prometheus.Registerer) *Metrics {
	return &Metrics{
		DispatchTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "wavebot_dispatch_total",
				Help: "Slash command dispatches by name path and status",
			},
			[]string{"path", "status"},
		),
		DispatchDurationSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "wavebot_dispatch_duration_seconds",
				Help:    "Time spent resolving and running a handler",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
			},
			[]string{"path"},
		),
		PaginationSessionsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "wavebot_pagination_sessions_total",
				Help: "Paginated views by lifecycle result",
			},
			[]string{"result"},
		),
		PaginationSessionsLive: promauto.With(registry).NewGauge(
			prometheus.GaugeOpts{
				Name: "wavebot_pagination_sessions_live",
				Help: "Paginated views currently accepting input",
			},
		),
		PaginationControlsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "wavebot_pagination_controls_total",
				Help: "Navigation control events by control id and outcome",
			},
			[]string{"control", "outcome"},
		),
	}
}

func (m *Metrics) RecordDispatch(path, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.DispatchTotal.WithLabelValues(path, status).Inc()
	m.DispatchDurationSeconds.WithLabelValues(path).Observe(d.Seconds())
}

func (m *Metrics) SessionStarted() {
	if m == nil {
		return
	}
	m.PaginationSessionsTotal.WithLabelValues(SessionStarted).Inc()
	m.PaginationSessionsLive.Inc()
}

func (m *Metrics) SessionInvalid() {
	if m == nil {
		return
	}
	m.PaginationSessionsTotal.WithLabelValues(SessionInvalidData).Inc()
}

func (m *Metrics) SessionExpired() {
	if m == nil {
		return
	}
	m.PaginationSessionsTotal.WithLabelValues(SessionExpired).Inc()
	m.PaginationSessionsLive.Dec()
}

func (m *Metrics) RecordControl(control, outcome string) {
	if m == nil {
		return
	}
	m.PaginationControlsTotal.WithLabelValues(control, outcome).Inc()
}
