// Package holtwinters provides inference for a fitted Holt-Winters (triple exponential smoothing)
// model. The model is loaded from its serialized state at the end of training and forecasts a
// number of steps forward from that point.
package holtwinters

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrUninitializedModel  = errors.New("uninitialized holt-winters model")
	ErrInvalidHorizon      = errors.New("horizon must be at least 1")
	ErrUnknownTrend        = errors.New("unknown trend type")
	ErrUnknownSeasonal     = errors.New("unknown seasonal type")
	ErrInvalidPeriod       = errors.New("seasonal period must be at least 2")
	ErrSeasonalLenMismatch = errors.New("number of seasonal terms does not match the seasonal period")
	ErrSmoothingRange      = errors.New("smoothing parameter must be between 0 and 1")
	ErrDampingRange        = errors.New("damping parameter must be greater than 0 and at most 1")
	ErrNonFinite           = errors.New("non-finite value")
)

// HoltWinters is an immutable, fitted Holt-Winters model. It is safe for concurrent use.
type HoltWinters struct {
	trainEndTime time.Time

	trend    TrendType
	seasonal SeasonalType
	period   int

	alpha float64
	beta  float64
	gamma float64
	phi   float64

	level     float64
	slope     float64
	seasonals []float64

	model Model
}

// NewFromModel validates the serialized model and creates a forecasting instance from it. The
// model is copied so later changes to the input have no effect on the instance.
func NewFromModel(model Model) (*HoltWinters, error) {
	if err := model.Validate(); err != nil {
		return nil, fmt.Errorf("unable to load holt-winters model, %w", err)
	}
	model = model.Copy()

	hw := &HoltWinters{
		trainEndTime: model.TrainEndTime,
		trend:        model.Trend,
		seasonal:     model.Seasonal,
		period:       model.Period,
		alpha:        model.Alpha,
		beta:         model.Beta,
		gamma:        model.Gamma,
		phi:          model.Phi,
		level:        model.Level,
		slope:        model.Slope,
		seasonals:    model.Seasonals,
		model:        model,
	}
	return hw, nil
}

// Forecast produces horizon values for the steps immediately following the end of training.
func (hw *HoltWinters) Forecast(horizon int) ([]float64, error) {
	if hw == nil {
		return nil, ErrUninitializedModel
	}
	if horizon < 1 {
		return nil, fmt.Errorf("got %d, %w", horizon, ErrInvalidHorizon)
	}

	res := make([]float64, horizon)

	// cumulative phi + phi^2 + ... + phi^h for the damped trend
	var dampSum float64
	phiPow := 1.0
	for h := 1; h <= horizon; h++ {
		var trend float64
		switch hw.trend {
		case TrendAdditive:
			trend = float64(h) * hw.slope
		case TrendDamped:
			phiPow *= hw.phi
			dampSum += phiPow
			trend = dampSum * hw.slope
		}

		val := hw.level + trend
		switch hw.seasonal {
		case SeasonalAdditive:
			val += hw.seasonals[(h-1)%hw.period]
		case SeasonalMultiplicative:
			val *= hw.seasonals[(h-1)%hw.period]
		}

		if !isFinite(val) {
			return nil, fmt.Errorf("step %d, %w", h, ErrNonFinite)
		}
		res[h-1] = val
	}
	return res, nil
}

// TrainEndTime returns the time of the last training sample
func (hw *HoltWinters) TrainEndTime() time.Time {
	if hw == nil {
		return time.Time{}
	}
	return hw.trainEndTime
}

// Model returns a copy of the serializeable model this instance was created from
func (hw *HoltWinters) Model() (Model, error) {
	if hw == nil {
		return Model{}, ErrUninitializedModel
	}
	return hw.model.Copy(), nil
}
