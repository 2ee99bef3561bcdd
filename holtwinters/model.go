package holtwinters

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/abhinavsaxena123/Customer-Complaints-Forecasting/internal/util"
	"github.com/abhinavsaxena123/Customer-Complaints-Forecasting/score"
)

// TrendType is the form of the trend component
type TrendType string

const (
	TrendNone     TrendType = "none"
	TrendAdditive TrendType = "additive"
	TrendDamped   TrendType = "damped"
)

func (t TrendType) valid() bool {
	switch t {
	case TrendNone, TrendAdditive, TrendDamped:
		return true
	}
	return false
}

// SeasonalType is the form of the seasonal component
type SeasonalType string

const (
	SeasonalNone           SeasonalType = "none"
	SeasonalAdditive       SeasonalType = "additive"
	SeasonalMultiplicative SeasonalType = "multiplicative"
)

func (s SeasonalType) valid() bool {
	switch s {
	case SeasonalNone, SeasonalAdditive, SeasonalMultiplicative:
		return true
	}
	return false
}

// Model represents a serializeable format of a fitted Holt-Winters model storing the smoothing
// parameters and the smoothed state as of the last training sample.
type Model struct {
	TrainEndTime time.Time    `json:"train_end_time"`
	Trend        TrendType    `json:"trend"`
	Seasonal     SeasonalType `json:"seasonal"`
	Period       int          `json:"period"`

	Alpha float64 `json:"alpha"`
	Beta  float64 `json:"beta"`
	Gamma float64 `json:"gamma"`
	Phi   float64 `json:"phi"`

	Level float64 `json:"level"`
	Slope float64 `json:"slope"`

	// Seasonals holds the last Period seasonal terms in chronological order. The first forecast
	// step uses Seasonals[0].
	Seasonals []float64 `json:"seasonals"`

	Scores *score.Scores `json:"scores,omitempty"`
}

// Validate checks the model parameters are consistent with its trend and seasonal types
func (m Model) Validate() error {
	if !m.Trend.valid() {
		return fmt.Errorf("%q, %w", m.Trend, ErrUnknownTrend)
	}
	if !m.Seasonal.valid() {
		return fmt.Errorf("%q, %w", m.Seasonal, ErrUnknownSeasonal)
	}
	if err := checkSmoothing("alpha", m.Alpha); err != nil {
		return err
	}
	if !isFinite(m.Level) {
		return fmt.Errorf("level, %w", ErrNonFinite)
	}

	if m.Trend != TrendNone {
		if err := checkSmoothing("beta", m.Beta); err != nil {
			return err
		}
		if !isFinite(m.Slope) {
			return fmt.Errorf("slope, %w", ErrNonFinite)
		}
	}
	if m.Trend == TrendDamped && (m.Phi <= 0 || m.Phi > 1 || math.IsNaN(m.Phi)) {
		return fmt.Errorf("phi of %.3f, %w", m.Phi, ErrDampingRange)
	}

	if m.Seasonal != SeasonalNone {
		if err := checkSmoothing("gamma", m.Gamma); err != nil {
			return err
		}
		if m.Period < 2 {
			return fmt.Errorf("got %d, %w", m.Period, ErrInvalidPeriod)
		}
		if len(m.Seasonals) != m.Period {
			return fmt.Errorf("expected %d, but got %d, %w", m.Period, len(m.Seasonals), ErrSeasonalLenMismatch)
		}
		for i, s := range m.Seasonals {
			if !isFinite(s) {
				return fmt.Errorf("seasonal term %d, %w", i, ErrNonFinite)
			}
		}
	}
	return nil
}

// Copy returns a deep copy of the model
func (m Model) Copy() Model {
	if m.Seasonals != nil {
		seasonals := make([]float64, len(m.Seasonals))
		copy(seasonals, m.Seasonals)
		m.Seasonals = seasonals
	}
	if m.Scores != nil {
		scores := *m.Scores
		m.Scores = &scores
	}
	return m
}

// TablePrint writes a human readable summary of the model
func (m Model) TablePrint(w io.Writer, prefix, indent string) error {
	if _, err := fmt.Fprintf(w, "%s%sHolt-Winters:\n", prefix, util.IndentExpand(indent, 0)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s%sTraining End Time: %s\n", prefix, util.IndentExpand(indent, 1), m.TrainEndTime); err != nil {
		return err
	}

	trend := string(m.Trend)
	if m.Trend == TrendDamped {
		trend = fmt.Sprintf("%s (phi: %.3f)", m.Trend, m.Phi)
	}
	if _, err := fmt.Fprintf(w, "%s%sTrend: %s\n", prefix, util.IndentExpand(indent, 1), trend); err != nil {
		return err
	}

	seasonal := string(m.Seasonal)
	if m.Seasonal != SeasonalNone {
		seasonal = fmt.Sprintf("%s (period: %d)", m.Seasonal, m.Period)
	}
	if _, err := fmt.Fprintf(w, "%s%sSeasonal: %s\n", prefix, util.IndentExpand(indent, 1), seasonal); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "%s%sSmoothing: alpha: %.3f    beta: %.3f    gamma: %.3f\n",
		prefix, util.IndentExpand(indent, 1), m.Alpha, m.Beta, m.Gamma); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s%sLevel: %.3f    Slope: %.3f\n",
		prefix, util.IndentExpand(indent, 1), m.Level, m.Slope); err != nil {
		return err
	}

	if err := m.Scores.TablePrint(w, prefix, indent, 0); err != nil {
		return err
	}

	if len(m.Seasonals) == 0 {
		_, err := fmt.Fprintf(w, "%s%sSeasonals: None\n", prefix, util.IndentExpand(indent, 0))
		return err
	}
	if _, err := fmt.Fprintf(w, "%s%sSeasonals:\n", prefix, util.IndentExpand(indent, 0)); err != nil {
		return err
	}
	tbl := tabwriter.NewWriter(w, 0, 0, 1, ' ', tabwriter.AlignRight)
	if _, err := fmt.Fprintf(tbl, "%s%sStep\tValue\t\n", prefix, util.IndentExpand(indent, 1)); err != nil {
		return err
	}
	for i, s := range m.Seasonals {
		if _, err := fmt.Fprintf(tbl, "%s%s%s\t%.3f\t\n",
			prefix, util.IndentExpand(indent, 1), strconv.Itoa(i+1), s); err != nil {
			return err
		}
	}
	return tbl.Flush()
}

func checkSmoothing(name string, val float64) error {
	if val < 0 || val > 1 || math.IsNaN(val) {
		return fmt.Errorf("%s of %.3f, %w", name, val, ErrSmoothingRange)
	}
	return nil
}

func isFinite(val float64) bool {
	return !math.IsNaN(val) && !math.IsInf(val, 0)
}
