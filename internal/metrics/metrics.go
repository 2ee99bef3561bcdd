package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Request outcomes
const (
	OutcomeSuccess     = "success"
	OutcomeEmpty       = "empty"
	OutcomeClientError = "client_error"
	OutcomeModelError  = "model_error"
)

// Metrics holds all Prometheus collectors for the forecaster
type Metrics struct {
	Requests  *prometheus.CounterVec
	Horizon   prometheus.Histogram
	Duration  *prometheus.HistogramVec
	CacheHits prometheus.Counter

	registry *prometheus.Registry
}

// New creates and registers all metrics on reg. A nil reg creates a fresh registry with the Go and
// process collectors.
func New(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	factory := promauto.With(reg)

	return &Metrics{
		Requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "forecaster_requests_total",
				Help: "Number of forecast requests by model and outcome",
			},
			[]string{"model", "outcome"},
		),
		Horizon: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "forecaster_horizon_days",
			Help:    "Requested forecast horizon in days",
			Buckets: []float64{1, 7, 14, 30, 60, 90, 180, 365, 730, 1825, 3660},
		}),
		Duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "forecaster_request_duration_seconds",
				Help:    "Time spent computing a forecast",
				Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
			},
			[]string{"model"},
		),
		CacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "forecaster_cache_hits_total",
			Help: "Number of forecasts served from the result cache",
		}),
		registry: reg,
	}
}

// ObserveRequest records a completed request. Horizon is only observed for successful forecasts.
func (m *Metrics) ObserveRequest(model, outcome string, horizon int, dur time.Duration) {
	m.Requests.WithLabelValues(model, outcome).Inc()
	m.Duration.WithLabelValues(model).Observe(dur.Seconds())
	if outcome == OutcomeSuccess {
		m.Horizon.Observe(float64(horizon))
	}
}

// Handler exposes the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
