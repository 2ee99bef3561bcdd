package forecaster

import (
	"errors"
	"strings"
)

var (
	ErrInvalidDateFormat = errors.New("invalid date format, expected YYYY-MM-DD")
	ErrInvalidRange      = errors.New("invalid date range")
	ErrUnknownModel      = errors.New("unknown model")
	ErrModelInvocation   = errors.New("model invocation failed")
)

// Request fields that an error can be attributed to
const (
	FieldStartDate = "start_date"
	FieldEndDate   = "end_date"
	FieldModel     = "model"
)

// ForecastError tags a failed request with its kind and the offending input field so a caller can
// render it next to that field. Both the kind and the underlying cause match with errors.Is.
type ForecastError struct {
	Kind  error
	Field string
	Err   error
}

func newError(kind error, field string, err error) *ForecastError {
	return &ForecastError{
		Kind:  kind,
		Field: field,
		Err:   err,
	}
}

func (e *ForecastError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Kind.Error())
	if e.Field != "" {
		sb.WriteString(" for ")
		sb.WriteString(e.Field)
	}
	if e.Err != nil && e.Err != e.Kind {
		sb.WriteString(", ")
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

func (e *ForecastError) Unwrap() []error {
	errs := make([]error, 0, 2)
	for _, err := range []error{e.Kind, e.Err} {
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// UserCorrectable reports whether the user can fix the request by changing their input
func (e *ForecastError) UserCorrectable() bool {
	return e.Kind == ErrInvalidDateFormat || e.Kind == ErrInvalidRange
}

// UserMessage is the text to display next to the offending field. Failures the user cannot fix get a
// generic message and the detail should be logged instead.
func (e *ForecastError) UserMessage() string {
	switch e.Kind {
	case ErrInvalidDateFormat:
		return "Invalid date format. Use YYYY-MM-DD."
	case ErrInvalidRange:
		if errors.Is(e.Err, ErrHorizonTooLong) {
			return "Date range is too long."
		}
		if errors.Is(e.Err, ErrBeforeTrainEnd) {
			return "Start date must be after the model training period."
		}
		return "End date must be on or after the start date."
	default:
		return "Forecast unavailable"
	}
}

// KindName is a stable machine readable name for the error kind
func (e *ForecastError) KindName() string {
	switch e.Kind {
	case ErrInvalidDateFormat:
		return "invalid_date_format"
	case ErrInvalidRange:
		return "invalid_range"
	case ErrUnknownModel:
		return "unknown_model"
	case ErrModelInvocation:
		return "model_invocation_error"
	default:
		return "unknown"
	}
}

// AsForecastError extracts a *ForecastError from err if present
func AsForecastError(err error) (*ForecastError, bool) {
	var fe *ForecastError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}
