// Package dashboard hosts the interactive forecast page, its chart and a JSON API over the forecast
// engine. Default dates are chosen here from the wall clock, never by the engine.
package dashboard

import (
	"context"
	"fmt"
	"io"
	"time"

	forecaster "github.com/abhinavsaxena123/Customer-Complaints-Forecasting"
	"github.com/abhinavsaxena123/Customer-Complaints-Forecasting/internal/cache"
	"github.com/abhinavsaxena123/Customer-Complaints-Forecasting/internal/metrics"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const tracerName = "github.com/abhinavsaxena123/Customer-Complaints-Forecasting/internal/dashboard"

// Engine computes forecasts for validated requests
type Engine interface {
	Forecast(req forecaster.Request) (*forecaster.Result, error)
}

// Options configures the dashboard
type Options struct {
	// DefaultRangeDays is added to today to suggest the end date
	DefaultRangeDays int
	// Now returns the current time used for default dates
	Now         func() time.Time
	ServiceName string
}

func NewDefaultOptions() *Options {
	return &Options{
		DefaultRangeDays: 79,
		Now:              time.Now,
		ServiceName:      "customer-complaints-forecaster",
	}
}

type cacheKey struct {
	start string
	end   string
	model forecaster.ModelID
}

// Service wraps the engine with result caching, metrics and tracing
type Service struct {
	engine  Engine
	cache   *cache.LRU[cacheKey, *forecaster.Result]
	metrics *metrics.Metrics
	tracer  trace.Tracer
	logger  logrus.FieldLogger
	opt     *Options
}

// NewService creates a dashboard service keeping up to cacheSize results. Nil collaborators fall
// back to a private metrics registry, a no-op tracer and a discarding logger.
func NewService(
	engine Engine,
	cacheSize int,
	m *metrics.Metrics,
	tp trace.TracerProvider,
	logger logrus.FieldLogger,
	opt *Options,
) (*Service, error) {
	resultCache, err := cache.NewLRU[cacheKey, *forecaster.Result](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("unable to create result cache, %w", err)
	}
	if m == nil {
		m = metrics.New(nil)
	}
	if tp == nil {
		tp = noop.NewTracerProvider()
	}
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	if opt == nil {
		opt = NewDefaultOptions()
	}
	if opt.Now == nil {
		opt.Now = time.Now
	}
	return &Service{
		engine:  engine,
		cache:   resultCache,
		metrics: m,
		tracer:  tp.Tracer(tracerName),
		logger:  logger,
		opt:     opt,
	}, nil
}

// DefaultDates returns today and today plus the default range
func (s *Service) DefaultDates() (string, string) {
	today := s.opt.Now()
	return today.Format(forecaster.DateLayout),
		today.AddDate(0, 0, s.opt.DefaultRangeDays).Format(forecaster.DateLayout)
}

// CacheStats exposes the result cache counters
func (s *Service) CacheStats() cache.Stats {
	return s.cache.Stats()
}

// Forecast validates the textual request and returns a forecast, serving repeated requests from the
// cache. Returned results are never shared with the cache.
func (s *Service) Forecast(ctx context.Context, trigger bool, start, end, model string) (*forecaster.Result, error) {
	began := time.Now()

	if !trigger {
		s.metrics.Requests.WithLabelValues(metricModel(model), metrics.OutcomeEmpty).Inc()
		return forecaster.EmptyResult(), nil
	}

	req, err := forecaster.ParseRequest(trigger, start, end, model)
	if err != nil {
		s.observeError(model, err, began)
		return nil, err
	}

	key := cacheKey{
		start: req.Start.Format(forecaster.DateLayout),
		end:   req.End.Format(forecaster.DateLayout),
		model: req.Model,
	}
	if res, ok := s.cache.Get(key); ok {
		s.metrics.CacheHits.Inc()
		s.metrics.ObserveRequest(req.Model.String(), metrics.OutcomeSuccess, res.Horizon(), time.Since(began))
		return res.Copy(), nil
	}

	_, span := s.tracer.Start(ctx, "forecaster.compute",
		trace.WithAttributes(
			attribute.String("forecast.model", req.Model.String()),
			attribute.String("forecast.start", key.start),
			attribute.String("forecast.end", key.end),
			attribute.Int("forecast.horizon", req.Horizon()),
		),
	)
	defer span.End()

	res, err := s.engine.Forecast(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "forecast failed")
		s.observeError(req.Model.String(), err, began)
		return nil, err
	}

	s.cache.Add(key, res.Copy())
	s.metrics.ObserveRequest(req.Model.String(), metrics.OutcomeSuccess, res.Horizon(), time.Since(began))
	return res, nil
}

func (s *Service) observeError(model string, err error, began time.Time) {
	outcome := metrics.OutcomeModelError
	if fe, ok := forecaster.AsForecastError(err); ok && fe.UserCorrectable() {
		outcome = metrics.OutcomeClientError
	}
	if outcome == metrics.OutcomeModelError {
		s.logger.WithError(err).WithField("model", model).Error("forecast unavailable")
	}
	s.metrics.ObserveRequest(metricModel(model), outcome, 0, time.Since(began))
}

// metricModel bounds the model label cardinality to known identifiers
func metricModel(model string) string {
	id, err := forecaster.ParseModelID(model)
	if err != nil {
		return forecaster.ModelUnknown.String()
	}
	return id.String()
}
