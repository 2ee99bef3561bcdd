package forecaster

import (
	"errors"
	"fmt"
	"time"

	"github.com/abhinavsaxena123/Customer-Complaints-Forecasting/timedataset"
)

var (
	ErrEndBeforeStart = errors.New("end date is before start date")
	ErrHorizonTooLong = errors.New("horizon exceeds maximum")
	ErrBeforeTrainEnd = errors.New("start date is not after model training end")
)

// DateLayout is the only accepted textual date format
const DateLayout = time.DateOnly

// Request is a validated forecast request
type Request struct {
	Start   time.Time `json:"start_date"`
	End     time.Time `json:"end_date"`
	Model   ModelID   `json:"model"`
	Trigger bool      `json:"trigger"`
}

// ParseDate parses a YYYY-MM-DD calendar date as midnight UTC. Surrounding whitespace, times and
// alternate layouts are rejected.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// ParseRequest validates the textual inputs in order: start date, end date, range, model.
func ParseRequest(trigger bool, start, end, model string) (Request, error) {
	req := Request{Trigger: trigger}

	var err error
	req.Start, err = ParseDate(start)
	if err != nil {
		return req, newError(ErrInvalidDateFormat, FieldStartDate, err)
	}
	req.End, err = ParseDate(end)
	if err != nil {
		return req, newError(ErrInvalidDateFormat, FieldEndDate, err)
	}
	if req.End.Before(req.Start) {
		return req, newError(ErrInvalidRange, FieldEndDate,
			fmt.Errorf("%s before %s, %w", end, start, ErrEndBeforeStart))
	}
	req.Model, err = ParseModelID(model)
	if err != nil {
		return req, newError(ErrUnknownModel, FieldModel, err)
	}
	return req, nil
}

// Horizon is the number of calendar days covered by the request, inclusive of both ends
func (r Request) Horizon() int {
	return timedataset.DaysBetween(r.Start, r.End) + 1
}
