package timedataset

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrNoData             = errors.New("no data")
	ErrNonMontonic        = errors.New("time feature is not monotonic")
	ErrDatasetLenMismatch = errors.New("time feature has a different length than observations")
	ErrNonDaily           = errors.New("time feature does not step by exactly one calendar day")
)

const secondsPerDay = 24 * 60 * 60

// TimeDataset represents a time series storing a slice of time points and values.
// Both must be of the same length.
type TimeDataset struct {
	T []time.Time
	Y []float64
}

// NewUnivariateDataset returns an instance of a TimeDataset given a time and value slice.
// Times must be strictly increasing.
func NewUnivariateDataset(t []time.Time, y []float64) (*TimeDataset, error) {
	if len(y) == 0 {
		return nil, ErrNoData
	}
	if len(t) != len(y) {
		return nil, fmt.Errorf(
			"time feature has length of %d, but values has a length of %d, %w",
			len(t), len(y), ErrDatasetLenMismatch,
		)
	}

	var lastT time.Time
	for i := 0; i < len(t); i++ {
		currT := t[i]
		if i > 0 && !currT.After(lastT) {
			return nil, fmt.Errorf("non-monotonic at %d, %w", i, ErrNonMontonic)
		}
		lastT = currT
	}

	tSeries := make([]time.Time, len(t))
	ySeries := make([]float64, len(t))
	copy(tSeries, t)
	copy(ySeries, y)
	td := &TimeDataset{
		T: tSeries,
		Y: ySeries,
	}

	return td, nil
}

// NewDailyDataset zips the values against consecutive calendar days beginning at start.
func NewDailyDataset(start time.Time, y []float64) (*TimeDataset, error) {
	return NewUnivariateDataset(DailyT(start, len(y)), y)
}

// Len returns the number of samples in the dataset
func (td *TimeDataset) Len() int {
	if td == nil {
		return 0
	}
	return len(td.T)
}

// IsDaily verifies every consecutive pair of times is exactly one calendar day apart
func (td *TimeDataset) IsDaily() error {
	if td == nil {
		return ErrNoData
	}
	for i := 1; i < len(td.T); i++ {
		expected := td.T[i-1].AddDate(0, 0, 1)
		if !td.T[i].Equal(expected) {
			return fmt.Errorf("expected %s at %d, but got %s, %w",
				expected.Format(time.DateOnly), i, td.T[i].Format(time.DateOnly), ErrNonDaily)
		}
	}
	return nil
}

// DailyT generates n consecutive calendar days starting at the calendar date of start
func DailyT(start time.Time, n int) []time.Time {
	if n <= 0 {
		return nil
	}
	start = Date(start)
	t := make([]time.Time, 0, n)
	for i := 0; i < n; i++ {
		t = append(t, start.AddDate(0, 0, i))
	}
	return t
}

// Date truncates a time to midnight UTC of its calendar date in its own location
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of whole calendar days from start to end. This is negative
// when end precedes start.
func DaysBetween(start, end time.Time) int {
	return int((Date(end).Unix() - Date(start).Unix()) / secondsPerDay)
}
