// Package metrics provides Prometheus metrics for the askai client.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Round-trip outcomes.
const (
	OutcomeSuccess      = "success"
	OutcomeError        = "error"
	OutcomeUnauthorized = "unauthorized"
	OutcomeSuperseded   = "superseded"
)

// Metrics holds all Prometheus metrics for the client. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	RoundTripsTotal     *prometheus.CounterVec
	RoundTripDuration   prometheus.Histogram
	HistoryFetchesTotal *prometheus.CounterVec
	RedirectsTotal      *prometheus.CounterVec
	ViewsActive         prometheus.Gauge
}

// NewMetrics creates the metrics on a private registry, so that several
// instances can coexist in one process (tests, CLI + server).
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		RoundTripsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "askai_round_trips_total",
				Help: "Total number of Ask round trips by outcome",
			},
			[]string{"outcome"},
		),
		RoundTripDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "askai_round_trip_duration_seconds",
				Help:    "Duration of Ask round trips in seconds",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
			},
		),
		HistoryFetchesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "askai_history_fetches_total",
				Help: "Total number of history fetches by outcome",
			},
			[]string{"outcome"},
		),
		RedirectsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "askai_redirects_total",
				Help: "Total number of programmatic navigations by target",
			},
			[]string{"target"},
		),
		ViewsActive: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "askai_views_active",
				Help: "Number of dashboard views held by the web client",
			},
		),
	}
}

// RecordRoundTrip records a resolved Ask round trip.
func (m *Metrics) RecordRoundTrip(outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	m.RoundTripsTotal.WithLabelValues(outcome).Inc()
	m.RoundTripDuration.Observe(duration.Seconds())
}

// RecordHistoryFetch records a completed history fetch.
func (m *Metrics) RecordHistoryFetch(outcome string) {
	if m == nil {
		return
	}
	m.HistoryFetchesTotal.WithLabelValues(outcome).Inc()
}

// RecordRedirect records a navigation to path.
func (m *Metrics) RecordRedirect(path string) {
	if m == nil {
		return
	}
	m.RedirectsTotal.WithLabelValues(path).Inc()
}

// SetViewsActive updates the number of live dashboard views.
func (m *Metrics) SetViewsActive(n int) {
	if m == nil {
		return
	}
	m.ViewsActive.Set(float64(n))
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
