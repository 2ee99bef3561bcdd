// Package arima provides inference for a fitted ARIMA(p,d,q) model whose order was selected
// automatically at training time. Forecasts are relative to the end of training: the model
// knows how many steps ahead it is asked for, not which calendar dates those steps fall on.
package arima

import (
	"errors"
	"fmt"
	"time"

	"gonum.org/v1/gonum/floats"
)

var (
	ErrUninitializedModel   = errors.New("uninitialized arima model")
	ErrInvalidHorizon       = errors.New("horizon must be at least 1")
	ErrInvalidOrder         = errors.New("arima order terms must be non-negative")
	ErrCoefLenMismatch      = errors.New("number of coefficients does not match the model order")
	ErrInsufficientHistory  = errors.New("insufficient history for the model order")
	ErrInsufficientResidual = errors.New("insufficient residuals for the moving average order")
	ErrNonFinite            = errors.New("non-finite value")
)

// ARIMA is an immutable, fitted ARIMA model. It is safe for concurrent use since forecasting
// only reads the frozen state and works on local buffers.
type ARIMA struct {
	trainEndTime time.Time
	order        Order
	intercept    float64

	// coefficients reversed so the oldest lag lines up with the start of the lag window
	arRev []float64
	maRev []float64

	// last p values of the d-times differenced series, oldest first
	lagW []float64
	// last q in-sample residuals, oldest first
	lagE []float64
	// last value of each differencing level 0..d-1, used to integrate forecasts
	levels []float64

	model Model
}

// NewFromModel validates the serialized model and creates a forecasting instance from it. The
// model is copied so later changes to the input have no effect on the instance.
func NewFromModel(model Model) (*ARIMA, error) {
	if err := model.Validate(); err != nil {
		return nil, fmt.Errorf("unable to load arima model, %w", err)
	}
	model = model.Copy()

	p, d, q := model.Order.P, model.Order.D, model.Order.Q

	series := make([]float64, len(model.History))
	copy(series, model.History)
	levels := make([]float64, d)
	for k := 0; k < d; k++ {
		levels[k] = series[len(series)-1]
		series = difference(series)
	}

	a := &ARIMA{
		trainEndTime: model.TrainEndTime,
		order:        model.Order,
		intercept:    model.Intercept,
		arRev:        reversed(model.AR),
		maRev:        reversed(model.MA),
		lagW:         tail(series, p),
		lagE:         tail(model.Residuals, q),
		levels:       levels,
		model:        model,
	}
	return a, nil
}

// Forecast produces horizon values for the steps immediately following the end of training.
// Future shocks are taken at their expected value of zero.
func (a *ARIMA) Forecast(horizon int) ([]float64, error) {
	if a == nil {
		return nil, ErrUninitializedModel
	}
	if horizon < 1 {
		return nil, fmt.Errorf("got %d, %w", horizon, ErrInvalidHorizon)
	}

	p, q := a.order.P, a.order.Q

	w := make([]float64, p+horizon)
	copy(w, a.lagW)
	e := make([]float64, q+horizon)
	copy(e, a.lagE)
	levels := make([]float64, len(a.levels))
	copy(levels, a.levels)

	res := make([]float64, horizon)
	for h := 0; h < horizon; h++ {
		val := a.intercept
		if p > 0 {
			val += floats.Dot(a.arRev, w[h:h+p])
		}
		if q > 0 {
			val += floats.Dot(a.maRev, e[h:h+q])
		}
		w[p+h] = val

		for k := len(levels) - 1; k >= 0; k-- {
			levels[k] += val
			val = levels[k]
		}

		if !isFinite(val) {
			return nil, fmt.Errorf("step %d, %w", h+1, ErrNonFinite)
		}
		res[h] = val
	}
	return res, nil
}

// TrainEndTime returns the time of the last training sample
func (a *ARIMA) TrainEndTime() time.Time {
	if a == nil {
		return time.Time{}
	}
	return a.trainEndTime
}

// Order returns the selected (p,d,q) order
func (a *ARIMA) Order() Order {
	if a == nil {
		return Order{}
	}
	return a.order
}

// Model returns a copy of the serializeable model this instance was created from
func (a *ARIMA) Model() (Model, error) {
	if a == nil {
		return Model{}, ErrUninitializedModel
	}
	return a.model.Copy(), nil
}

func difference(x []float64) []float64 {
	if len(x) < 2 {
		return nil
	}
	out := make([]float64, len(x)-1)
	floats.SubTo(out, x[1:], x[:len(x)-1])
	return out
}

func reversed(x []float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[len(x)-1-i] = v
	}
	return out
}

func tail(x []float64, n int) []float64 {
	out := make([]float64, n)
	copy(out, x[len(x)-n:])
	return out
}
