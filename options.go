package forecaster

// DefaultMaxHorizon caps a single request at roughly ten years of daily values
const DefaultMaxHorizon = 3660

// Options configures the forecast request engine
type Options struct {
	// MaxHorizon is the largest number of steps a request may ask a model for. A non-positive
	// value disables the cap.
	MaxHorizon int `json:"max_horizon" mapstructure:"max_horizon"`

	// Anchored aligns model output to calendar dates by skipping the steps between the model's
	// training end and the requested start date. When false the first value is placed on the
	// start date regardless of when the model stopped training.
	Anchored bool `json:"anchored" mapstructure:"anchored"`
}

func NewDefaultOptions() *Options {
	return &Options{
		MaxHorizon: DefaultMaxHorizon,
	}
}
