package artifact

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/abhinavsaxena123/Customer-Complaints-Forecasting/arima"
	"github.com/abhinavsaxena123/Customer-Complaints-Forecasting/holtwinters"
	"github.com/abhinavsaxena123/Customer-Complaints-Forecasting/score"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHoltWintersModel() holtwinters.Model {
	return holtwinters.Model{
		TrainEndTime: time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC),
		Trend:        holtwinters.TrendAdditive,
		Seasonal:     holtwinters.SeasonalAdditive,
		Period:       7,
		Alpha:        0.3,
		Beta:         0.05,
		Gamma:        0.1,
		Level:        140,
		Slope:        0.4,
		Seasonals:    []float64{-12, 3, 6, 8, 5, -2, -8},
		Scores:       &score.Scores{MSE: 40.1, MAPE: 0.08, R2: 0.81},
	}
}

func testARIMAModel() arima.Model {
	return arima.Model{
		TrainEndTime: time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC),
		Order:        arima.Order{P: 2, D: 1, Q: 1},
		Intercept:    0.2,
		AR:           []float64{0.4, -0.1},
		MA:           []float64{-0.3},
		History:      []float64{131, 150, 142},
		Residuals:    []float64{4.2},
		AIC:          2210.4,
	}
}

func TestSaveLoadModels(t *testing.T) {
	dir := t.TempDir()
	hwPath := filepath.Join(dir, "models", "holt_winters.json")
	arPath := filepath.Join(dir, "models", "auto_arima.json")

	require.NoError(t, Save(hwPath, testHoltWintersModel()))
	require.NoError(t, Save(arPath, testARIMAModel()))

	models, err := LoadModels(hwPath, arPath)
	require.NoError(t, err)

	hwModel, err := models.SeasonalSmoothing.Model()
	require.NoError(t, err)
	assert.Equal(t, testHoltWintersModel(), hwModel)

	arModel, err := models.AutoRegressive.Model()
	require.NoError(t, err)
	assert.Equal(t, testARIMAModel(), arModel)

	res, err := models.SeasonalSmoothing.Forecast(2)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{140.4 - 12, 140.8 + 3}, res, 1e-9)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	badJSON := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(badJSON, []byte("{not json"), 0o644))

	invalidModel := filepath.Join(dir, "invalid.json")
	require.NoError(t, os.WriteFile(invalidModel, []byte(`{"trend":"exponential","seasonal":"none"}`), 0o644))

	testData := map[string]struct {
		path string
		err  error
	}{
		"empty path": {
			path: "",
			err:  ErrNoPath,
		},
		"missing file": {
			path: filepath.Join(dir, "missing.json"),
			err:  os.ErrNotExist,
		},
		"invalid model": {
			path: invalidModel,
			err:  holtwinters.ErrUnknownTrend,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			_, err := LoadHoltWinters(td.path)
			assert.ErrorIs(t, err, td.err)
		})
	}

	t.Run("malformed json", func(t *testing.T) {
		_, err := LoadARIMA(badJSON)
		assert.Error(t, err)
	})
}

func TestLoadModelsFailsOnEitherArtifact(t *testing.T) {
	dir := t.TempDir()
	hwPath := filepath.Join(dir, "hw.json")
	arPath := filepath.Join(dir, "ar.json")
	require.NoError(t, Save(hwPath, testHoltWintersModel()))

	_, err := LoadModels(hwPath, arPath)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = LoadModels("", arPath)
	assert.ErrorIs(t, err, ErrNoPath)

	assert.ErrorIs(t, Save("", testARIMAModel()), ErrNoPath)
}

func TestLoadBundledModels(t *testing.T) {
	models, err := LoadModels(
		filepath.Join("..", "models", "holt_winters.json"),
		filepath.Join("..", "models", "auto_arima.json"),
	)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC), models.SeasonalSmoothing.TrainEndTime())
	assert.Equal(t, arima.Order{P: 2, D: 1, Q: 1}, models.AutoRegressive.Order())

	for _, forecast := range []func(int) ([]float64, error){
		models.SeasonalSmoothing.Forecast,
		models.AutoRegressive.Forecast,
	} {
		res, err := forecast(80)
		require.NoError(t, err)
		assert.Len(t, res, 80)
	}
}
