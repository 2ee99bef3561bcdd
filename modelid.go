package forecaster

import (
	"fmt"
)

// ModelID identifies one of the loaded forecasting models
type ModelID int

const (
	ModelUnknown ModelID = iota
	SeasonalSmoothing
	AutoRegressive
)

// ModelIDs lists every model a request may select in display order
var ModelIDs = []ModelID{SeasonalSmoothing, AutoRegressive}

// ParseModelID maps the textual model identifier onto a ModelID. Matching is exact.
func ParseModelID(s string) (ModelID, error) {
	switch s {
	case "seasonal_smoothing":
		return SeasonalSmoothing, nil
	case "auto_regressive":
		return AutoRegressive, nil
	default:
		return ModelUnknown, fmt.Errorf("unknown model identifier %q, %w", s, ErrUnknownModel)
	}
}

func (m ModelID) String() string {
	switch m {
	case SeasonalSmoothing:
		return "seasonal_smoothing"
	case AutoRegressive:
		return "auto_regressive"
	default:
		return "unknown"
	}
}

// Label is the human readable series name used in charts
func (m ModelID) Label() string {
	switch m {
	case SeasonalSmoothing:
		return "Seasonal Smoothing Forecast"
	case AutoRegressive:
		return "Auto Regressive Forecast"
	default:
		return "Unknown Forecast"
	}
}

// DisplayName is the dropdown text for the model
func (m ModelID) DisplayName() string {
	switch m {
	case SeasonalSmoothing:
		return "Seasonal Smoothing (Holt-Winters)"
	case AutoRegressive:
		return "Auto Regressive (ARIMA)"
	default:
		return "Unknown"
	}
}

func (m ModelID) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *ModelID) UnmarshalText(text []byte) error {
	if string(text) == ModelUnknown.String() {
		*m = ModelUnknown
		return nil
	}
	id, err := ParseModelID(string(text))
	if err != nil {
		return err
	}
	*m = id
	return nil
}
