package arima

import (
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForecast(t *testing.T) {
	testData := map[string]struct {
		model    Model
		horizon  int
		expected []float64
		err      error
	}{
		"ar1": {
			model: Model{
				Order:     Order{P: 1},
				Intercept: 1,
				AR:        []float64{0.5},
				History:   []float64{4},
			},
			horizon:  3,
			expected: []float64{3, 2.5, 2.25},
		},
		"random walk with drift": {
			model: Model{
				Order:     Order{D: 1},
				Intercept: 2,
				History:   []float64{10},
			},
			horizon:  3,
			expected: []float64{12, 14, 16},
		},
		"arima 1 1 0": {
			model: Model{
				Order:   Order{P: 1, D: 1},
				AR:      []float64{0.5},
				History: []float64{10, 12},
			},
			horizon:  3,
			expected: []float64{13, 13.5, 13.75},
		},
		"ma1 shock decays after one step": {
			model: Model{
				Order:     Order{Q: 1},
				Intercept: 10,
				MA:        []float64{0.5},
				History:   []float64{7},
				Residuals: []float64{2},
			},
			horizon:  3,
			expected: []float64{11, 10, 10},
		},
		"arma 2 0 1 uses most recent lags": {
			model: Model{
				Order:     Order{P: 2, Q: 1},
				AR:        []float64{0.5, 0.25},
				MA:        []float64{0.4},
				History:   []float64{1, 2, 4},
				Residuals: []float64{1, -1},
			},
			horizon:  3,
			expected: []float64{2.1, 2.05, 1.55},
		},
		"second order differencing": {
			model: Model{
				Order:     Order{D: 2},
				Intercept: 1,
				History:   []float64{1, 2, 4},
			},
			horizon:  3,
			expected: []float64{7, 11, 16},
		},
		"zero horizon": {
			model:   Model{History: []float64{1}},
			horizon: 0,
			err:     ErrInvalidHorizon,
		},
		"overflow": {
			model: Model{
				Order:     Order{P: 1},
				Intercept: 1e308,
				AR:        []float64{10},
				History:   []float64{1e308},
			},
			horizon: 2,
			err:     ErrNonFinite,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			a, err := NewFromModel(td.model)
			require.NoError(t, err)

			res, err := a.Forecast(td.horizon)
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				assert.Nil(t, res)
				return
			}
			require.NoError(t, err)
			assert.InDeltaSlice(t, td.expected, res, 1e-9)
		})
	}
}

func TestForecastUninitialized(t *testing.T) {
	var a *ARIMA
	_, err := a.Forecast(1)
	assert.ErrorIs(t, err, ErrUninitializedModel)
	assert.True(t, a.TrainEndTime().IsZero())
	assert.Equal(t, Order{}, a.Order())

	_, err = a.Model()
	assert.ErrorIs(t, err, ErrUninitializedModel)
}

func TestForecastDeterministic(t *testing.T) {
	a, err := NewFromModel(Model{
		Order:     Order{P: 2, D: 1, Q: 2},
		Intercept: 0.3,
		AR:        []float64{0.6, -0.2},
		MA:        []float64{0.3, 0.1},
		History:   []float64{100, 104, 103, 108, 110},
		Residuals: []float64{1.5, -0.7, 0.2},
	})
	require.NoError(t, err)

	first, err := a.Forecast(30)
	require.NoError(t, err)
	second, err := a.Forecast(30)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	short, err := a.Forecast(5)
	require.NoError(t, err)
	assert.Equal(t, first[:5], short)

	var wg sync.WaitGroup
	results := make([][]float64, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := a.Forecast(30)
			if err != nil {
				return
			}
			results[i] = res
		}(i)
	}
	wg.Wait()
	for _, res := range results {
		assert.Equal(t, first, res)
	}
}

func TestNewFromModelValidation(t *testing.T) {
	testData := map[string]struct {
		model Model
		err   error
	}{
		"zero value model has no history": {
			err: ErrInsufficientHistory,
		},
		"negative order": {
			model: Model{Order: Order{P: -1}, History: []float64{1}},
			err:   ErrInvalidOrder,
		},
		"ar length mismatch": {
			model: Model{Order: Order{P: 2}, AR: []float64{0.1}, History: []float64{1, 2}},
			err:   ErrCoefLenMismatch,
		},
		"ma length mismatch": {
			model: Model{Order: Order{Q: 1}, History: []float64{1}, Residuals: []float64{0}},
			err:   ErrCoefLenMismatch,
		},
		"history shorter than p plus d": {
			model: Model{Order: Order{P: 2, D: 1}, AR: []float64{0.1, 0.2}, History: []float64{1, 2}},
			err:   ErrInsufficientHistory,
		},
		"missing residuals": {
			model: Model{Order: Order{Q: 2}, MA: []float64{0.1, 0.2}, History: []float64{1}, Residuals: []float64{0}},
			err:   ErrInsufficientResidual,
		},
		"NaN intercept": {
			model: Model{Intercept: math.NaN(), History: []float64{1}},
			err:   ErrNonFinite,
		},
		"infinite history": {
			model: Model{Order: Order{P: 1}, AR: []float64{0.5}, History: []float64{math.Inf(-1)}},
			err:   ErrNonFinite,
		},
		"valid": {
			model: Model{
				Order:     Order{P: 1, D: 1, Q: 1},
				AR:        []float64{0.5},
				MA:        []float64{0.1},
				History:   []float64{1, 2},
				Residuals: []float64{0.5},
			},
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			a, err := NewFromModel(td.model)
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				assert.Nil(t, a)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, td.model.Order, a.Order())
		})
	}
}

func TestNewFromModelCopiesState(t *testing.T) {
	trainEnd := time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)
	m := Model{
		TrainEndTime: trainEnd,
		Order:        Order{P: 1},
		AR:           []float64{0.5},
		History:      []float64{4},
	}
	a, err := NewFromModel(m)
	require.NoError(t, err)

	m.AR[0] = 2
	m.History[0] = 100

	res, err := a.Forecast(1)
	require.NoError(t, err)
	assert.Equal(t, []float64{2}, res)
	assert.Equal(t, trainEnd, a.TrainEndTime())

	out, err := a.Model()
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5}, out.AR)
	assert.Equal(t, []float64{4}, out.History)
}
