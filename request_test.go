package forecaster

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	testData := map[string]struct {
		input    string
		expected time.Time
		valid    bool
	}{
		"valid":          {"2024-01-01", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), true},
		"leap day":       {"2024-02-29", time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), true},
		"non leap day":   {"2023-02-29", time.Time{}, false},
		"bad month":      {"2024-13-40", time.Time{}, false},
		"words":          {"not-a-date", time.Time{}, false},
		"empty":          {"", time.Time{}, false},
		"slashes":        {"2024/01/01", time.Time{}, false},
		"us order":       {"01-02-2024", time.Time{}, false},
		"with time":      {"2024-01-01T00:00:00Z", time.Time{}, false},
		"padded":         {" 2024-01-01", time.Time{}, false},
		"no zero padded": {"2024-1-1", time.Time{}, false},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			res, err := ParseDate(td.input)
			if !td.valid {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, td.expected, res)
		})
	}
}

func TestParseRequestValidationOrder(t *testing.T) {
	testData := map[string]struct {
		start string
		end   string
		model string
		kind  error
		field string
	}{
		"start checked first": {"bad", "bad", "bad", ErrInvalidDateFormat, FieldStartDate},
		"end before range":    {"2024-01-02", "bad", "bad", ErrInvalidDateFormat, FieldEndDate},
		"range before model":  {"2024-01-02", "2024-01-01", "bad", ErrInvalidRange, FieldEndDate},
		"model last":          {"2024-01-01", "2024-01-02", "holt_winters", ErrUnknownModel, FieldModel},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			_, err := ParseRequest(true, td.start, td.end, td.model)
			require.ErrorIs(t, err, td.kind)
			fe, ok := AsForecastError(err)
			require.True(t, ok)
			assert.Equal(t, td.field, fe.Field)
		})
	}
}

func TestRequestHorizon(t *testing.T) {
	req, err := ParseRequest(true, "2024-01-01", "2024-03-20", "seasonal_smoothing")
	require.NoError(t, err)
	assert.Equal(t, 80, req.Horizon())
	assert.Equal(t, SeasonalSmoothing, req.Model)
	assert.True(t, req.Trigger)

	req, err = ParseRequest(true, "2024-03-09", "2024-03-11", "auto_regressive")
	require.NoError(t, err)
	assert.Equal(t, 3, req.Horizon())
}
