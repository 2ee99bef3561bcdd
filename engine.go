package forecaster

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/abhinavsaxena123/Customer-Complaints-Forecasting/arima"
	"github.com/abhinavsaxena123/Customer-Complaints-Forecasting/holtwinters"
	"github.com/abhinavsaxena123/Customer-Complaints-Forecasting/timedataset"
	"github.com/sirupsen/logrus"
)

var (
	ErrNoAdapter      = errors.New("no model adapter provided")
	ErrLengthMismatch = errors.New("model returned unexpected number of values")
)

// Adapter is the uniform forecasting capability of a loaded model. Forecast returns exactly horizon
// values for the steps following the model's training end.
type Adapter interface {
	Forecast(horizon int) ([]float64, error)
	TrainEndTime() time.Time
}

var (
	_ Adapter = (*holtwinters.HoltWinters)(nil)
	_ Adapter = (*arima.ARIMA)(nil)
)

// Engine turns forecast requests into daily forecast results. It holds no per request state and is
// safe for concurrent use as long as its adapters are.
type Engine struct {
	opt      *Options
	adapters map[ModelID]Adapter
	logger   logrus.FieldLogger
}

// NewEngine creates an engine over the two loaded models. A nil options uses the defaults and a nil
// logger discards output.
func NewEngine(seasonalSmoothing, autoRegressive Adapter, opt *Options, logger logrus.FieldLogger) (*Engine, error) {
	if seasonalSmoothing == nil {
		return nil, fmt.Errorf("%s, %w", SeasonalSmoothing, ErrNoAdapter)
	}
	if autoRegressive == nil {
		return nil, fmt.Errorf("%s, %w", AutoRegressive, ErrNoAdapter)
	}
	if opt == nil {
		opt = NewDefaultOptions()
	}
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	return &Engine{
		opt: opt,
		adapters: map[ModelID]Adapter{
			SeasonalSmoothing: seasonalSmoothing,
			AutoRegressive:    autoRegressive,
		},
		logger: logger,
	}, nil
}

// Options returns a copy of the engine options
func (e *Engine) Options() Options {
	return *e.opt
}

// TrainEndTime returns the training end of the given model
func (e *Engine) TrainEndTime(model ModelID) (time.Time, error) {
	adapter, exists := e.adapters[model]
	if !exists {
		return time.Time{}, newError(ErrUnknownModel, FieldModel, fmt.Errorf("model id %d", model))
	}
	return adapter.TrainEndTime(), nil
}

// ComputeForecast validates the textual request and produces a forecast. When trigger is false the
// empty result is returned without looking at the other inputs.
func (e *Engine) ComputeForecast(trigger bool, start, end, model string) (*Result, error) {
	if !trigger {
		return EmptyResult(), nil
	}
	req, err := ParseRequest(trigger, start, end, model)
	if err != nil {
		return nil, err
	}
	return e.Forecast(req)
}

// Forecast produces one value per calendar day from req.Start through req.End inclusive
func (e *Engine) Forecast(req Request) (*Result, error) {
	if !req.Trigger {
		return EmptyResult(), nil
	}

	horizon := req.Horizon()
	if horizon <= 0 {
		return nil, newError(ErrInvalidRange, FieldEndDate,
			fmt.Errorf("got horizon %d, %w", horizon, ErrEndBeforeStart))
	}

	adapter, exists := e.adapters[req.Model]
	if !exists {
		return nil, newError(ErrUnknownModel, FieldModel, fmt.Errorf("model id %d", req.Model))
	}

	offset, err := e.offset(req, adapter.TrainEndTime())
	if err != nil {
		return nil, err
	}

	steps := offset + horizon
	if e.opt.MaxHorizon > 0 && steps > e.opt.MaxHorizon {
		return nil, newError(ErrInvalidRange, FieldEndDate,
			fmt.Errorf("got %d steps, max %d, %w", steps, e.opt.MaxHorizon, ErrHorizonTooLong))
	}

	logger := e.logger.WithFields(logrus.Fields{
		"model":   req.Model.String(),
		"start":   req.Start.Format(DateLayout),
		"end":     req.End.Format(DateLayout),
		"horizon": horizon,
	})

	values, err := adapter.Forecast(steps)
	if err != nil {
		logger.WithError(err).Error("model forecast failed")
		return nil, newError(ErrModelInvocation, FieldModel, err)
	}
	if len(values) != steps {
		err := fmt.Errorf("expected %d, but got %d, %w", steps, len(values), ErrLengthMismatch)
		logger.WithError(err).Error("model forecast failed")
		return nil, newError(ErrModelInvocation, FieldModel, err)
	}

	td, err := timedataset.NewDailyDataset(req.Start, values[offset:])
	if err != nil {
		return nil, newError(ErrModelInvocation, FieldModel, err)
	}
	if err := td.IsDaily(); err != nil {
		return nil, newError(ErrModelInvocation, FieldModel, err)
	}

	res := NewResult(req, td)
	logger.Debug("computed forecast")
	return res, nil
}

// offset is the number of leading model steps to discard so values line up with calendar dates
func (e *Engine) offset(req Request, trainEnd time.Time) (int, error) {
	if trainEnd.IsZero() {
		return 0, nil
	}
	firstForecast := timedataset.Date(trainEnd).AddDate(0, 0, 1)
	offset := timedataset.DaysBetween(firstForecast, req.Start)
	if !e.opt.Anchored {
		if offset != 0 {
			e.logger.WithFields(logrus.Fields{
				"model":          req.Model.String(),
				"start":          req.Start.Format(DateLayout),
				"first_forecast": firstForecast.Format(DateLayout),
			}).Debug("forecast values are step relative to training end, not to start date")
		}
		return 0, nil
	}
	if offset < 0 {
		return 0, newError(ErrInvalidRange, FieldStartDate,
			fmt.Errorf("start %s, training end %s, %w",
				req.Start.Format(DateLayout), trainEnd.Format(DateLayout), ErrBeforeTrainEnd))
	}
	return offset, nil
}
