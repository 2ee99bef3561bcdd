package timedataset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUnivariateDataset(t *testing.T) {
	testData := map[string]struct {
		t        []time.Time
		y        []float64
		expected *TimeDataset
		err      error
	}{
		"no data": {
			err: ErrNoData,
		},
		"length mismatch": {
			y:   []float64{1},
			err: ErrDatasetLenMismatch,
		},
		"non increasing time": {
			t: []time.Time{
				time.Date(1970, 1, 2, 0, 0, 0, 0, time.UTC),
				time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC),
			},
			y:   []float64{1, 2},
			err: ErrNonMontonic,
		},
		"duplicate time": {
			t: []time.Time{
				time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC),
				time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC),
			},
			y:   []float64{1, 2},
			err: ErrNonMontonic,
		},
		"valid": {
			t: []time.Time{
				time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC),
				time.Date(1970, 1, 2, 0, 0, 0, 0, time.UTC),
			},
			y: []float64{1, 2},
			expected: &TimeDataset{
				T: []time.Time{
					time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC),
					time.Date(1970, 1, 2, 0, 0, 0, 0, time.UTC),
				},
				Y: []float64{1, 2},
			},
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			ds, err := NewUnivariateDataset(td.t, td.y)
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, td.expected, ds)
		})
	}
}

func TestNewDailyDataset(t *testing.T) {
	start := time.Date(2024, 2, 28, 15, 30, 0, 0, time.UTC)
	ds, err := NewDailyDataset(start, []float64{1, 2, 3})
	require.NoError(t, err)

	expected := []time.Time{
		time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, expected, ds.T)
	assert.Equal(t, []float64{1, 2, 3}, ds.Y)
	assert.NoError(t, ds.IsDaily())

	_, err = NewDailyDataset(start, nil)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestLen(t *testing.T) {
	ds, err := NewDailyDataset(time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC), []float64{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, 3, ds.Len())

	var nilDs *TimeDataset
	assert.Equal(t, 0, nilDs.Len())
}

func TestIsDaily(t *testing.T) {
	testData := map[string]struct {
		tdset *TimeDataset
		err   error
	}{
		"nil dataset": {err: ErrNoData},
		"single point": {
			tdset: &TimeDataset{T: []time.Time{time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}},
		},
		"consecutive days across year end": {
			tdset: &TimeDataset{T: []time.Time{
				time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC),
				time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
				time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
			}},
		},
		"gap": {
			tdset: &TimeDataset{T: []time.Time{
				time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
				time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC),
			}},
			err: ErrNonDaily,
		},
		"hourly": {
			tdset: &TimeDataset{T: []time.Time{
				time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
				time.Date(2024, 1, 1, 1, 0, 0, 0, time.UTC),
			}},
			err: ErrNonDaily,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			err := td.tdset.IsDaily()
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestDailyT(t *testing.T) {
	assert.Nil(t, DailyT(time.Now(), 0))
	assert.Nil(t, DailyT(time.Now(), -3))

	loc := time.FixedZone("UTC-8", -8*60*60)
	res := DailyT(time.Date(2024, 3, 9, 23, 0, 0, 0, loc), 2)
	expected := []time.Time{
		time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, expected, res)
}

func TestDaysBetween(t *testing.T) {
	testData := map[string]struct {
		start    time.Time
		end      time.Time
		expected int
	}{
		"same day": {
			start:    time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			end:      time.Date(2024, 2, 1, 23, 59, 0, 0, time.UTC),
			expected: 0,
		},
		"leap day": {
			start:    time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC),
			end:      time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			expected: 2,
		},
		"reversed": {
			start:    time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
			end:      time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC),
			expected: -1,
		},
		"full year": {
			start:    time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
			end:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			expected: 365,
		},
		"beyond duration range": {
			start:    time.Date(1700, 1, 1, 0, 0, 0, 0, time.UTC),
			end:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			expected: 118338,
		},
		"beyond duration range reversed": {
			start:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			end:      time.Date(1700, 1, 1, 0, 0, 0, 0, time.UTC),
			expected: -118338,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, td.expected, DaysBetween(td.start, td.end))
		})
	}
}
