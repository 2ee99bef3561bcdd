// Package artifact loads and saves the serialized forecasting models. Each model lives in its own
// JSON file; the files are produced by the training pipeline and read once at startup.
package artifact

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/abhinavsaxena123/Customer-Complaints-Forecasting/arima"
	"github.com/abhinavsaxena123/Customer-Complaints-Forecasting/holtwinters"
	"github.com/goccy/go-json"
)

var ErrNoPath = errors.New("no artifact path configured")

// Models holds the two loaded forecasting models
type Models struct {
	SeasonalSmoothing *holtwinters.HoltWinters
	AutoRegressive    *arima.ARIMA
}

// LoadModels loads both model artifacts. Any failure is returned so the caller can abort startup.
func LoadModels(seasonalSmoothingPath, autoRegressivePath string) (*Models, error) {
	hw, err := LoadHoltWinters(seasonalSmoothingPath)
	if err != nil {
		return nil, fmt.Errorf("unable to load seasonal smoothing model, %w", err)
	}
	ar, err := LoadARIMA(autoRegressivePath)
	if err != nil {
		return nil, fmt.Errorf("unable to load auto regressive model, %w", err)
	}
	return &Models{
		SeasonalSmoothing: hw,
		AutoRegressive:    ar,
	}, nil
}

// LoadHoltWinters reads a Holt-Winters model artifact from path
func LoadHoltWinters(path string) (*holtwinters.HoltWinters, error) {
	var m holtwinters.Model
	if err := read(path, &m); err != nil {
		return nil, err
	}
	return holtwinters.NewFromModel(m)
}

// LoadARIMA reads an ARIMA model artifact from path
func LoadARIMA(path string) (*arima.ARIMA, error) {
	var m arima.Model
	if err := read(path, &m); err != nil {
		return nil, err
	}
	return arima.NewFromModel(m)
}

// Save writes a model artifact as indented JSON, creating the parent directory if needed
func Save(path string, model any) error {
	if path == "" {
		return ErrNoPath
	}
	bytes, err := json.MarshalIndent(model, "", "  ")
	if err != nil {
		return fmt.Errorf("unable to marshal model, %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, bytes, 0o644)
}

func read(path string, model any) error {
	if path == "" {
		return ErrNoPath
	}
	bytes, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(bytes, model); err != nil {
		return fmt.Errorf("unable to parse %s, %w", path, err)
	}
	return nil
}
