package arima

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"
	"time"

	"github.com/abhinavsaxena123/Customer-Complaints-Forecasting/internal/util"
	"github.com/abhinavsaxena123/Customer-Complaints-Forecasting/score"
	"github.com/goccy/go-json"
)

// Order is the (p,d,q) order of an ARIMA model: autoregressive lags, differencing passes and
// moving average lags.
type Order struct {
	P int `json:"p"`
	D int `json:"d"`
	Q int `json:"q"`
}

func (o Order) String() string {
	return fmt.Sprintf("ARIMA(%d,%d,%d)", o.P, o.D, o.Q)
}

// Model represents a serializeable format of a fitted ARIMA model. History and Residuals only
// need to hold the tail of the training data that the recursions look back on.
type Model struct {
	TrainEndTime time.Time `json:"train_end_time"`
	Order        Order     `json:"order"`
	Intercept    float64   `json:"intercept"`
	AR           []float64 `json:"ar"`
	MA           []float64 `json:"ma"`

	// History is the tail of the undifferenced training series, oldest first
	History []float64 `json:"history"`

	// Residuals is the tail of the in-sample one step ahead residuals, oldest first
	Residuals []float64 `json:"residuals"`

	AIC    float64       `json:"aic"`
	Scores *score.Scores `json:"scores,omitempty"`
}

// Validate checks the coefficients and stored history are consistent with the model order
func (m Model) Validate() error {
	o := m.Order
	if o.P < 0 || o.D < 0 || o.Q < 0 {
		return fmt.Errorf("%s, %w", o, ErrInvalidOrder)
	}
	if len(m.AR) != o.P {
		return fmt.Errorf("expected %d ar coefficients, but got %d, %w", o.P, len(m.AR), ErrCoefLenMismatch)
	}
	if len(m.MA) != o.Q {
		return fmt.Errorf("expected %d ma coefficients, but got %d, %w", o.Q, len(m.MA), ErrCoefLenMismatch)
	}

	minHistory := max(o.P+o.D, 1)
	if len(m.History) < minHistory {
		return fmt.Errorf("need %d values for %s, but got %d, %w", minHistory, o, len(m.History), ErrInsufficientHistory)
	}
	if len(m.Residuals) < o.Q {
		return fmt.Errorf("need %d residuals for %s, but got %d, %w", o.Q, o, len(m.Residuals), ErrInsufficientResidual)
	}

	if !isFinite(m.Intercept) {
		return fmt.Errorf("intercept, %w", ErrNonFinite)
	}
	for name, vals := range map[string][]float64{
		"ar":        m.AR,
		"ma":        m.MA,
		"history":   m.History,
		"residuals": m.Residuals,
	} {
		for i, v := range vals {
			if !isFinite(v) {
				return fmt.Errorf("%s value %d, %w", name, i, ErrNonFinite)
			}
		}
	}
	return nil
}

// Copy returns a deep copy of the model
func (m Model) Copy() Model {
	m.AR = copySlice(m.AR)
	m.MA = copySlice(m.MA)
	m.History = copySlice(m.History)
	m.Residuals = copySlice(m.Residuals)
	if m.Scores != nil {
		scores := *m.Scores
		m.Scores = &scores
	}
	return m
}

// TablePrint writes a human readable summary of the model
func (m Model) TablePrint(w io.Writer, prefix, indent string) error {
	if _, err := fmt.Fprintf(w, "%s%sARIMA:\n", prefix, util.IndentExpand(indent, 0)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s%sTraining End Time: %s\n", prefix, util.IndentExpand(indent, 1), m.TrainEndTime); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s%sOrder: %s    AIC: %.3f\n", prefix, util.IndentExpand(indent, 1), m.Order, m.AIC); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s%sHistory: %d    Residuals: %d\n",
		prefix, util.IndentExpand(indent, 1), len(m.History), len(m.Residuals)); err != nil {
		return err
	}

	if err := m.Scores.TablePrint(w, prefix, indent, 0); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "%s%sWeights:\n", prefix, util.IndentExpand(indent, 0)); err != nil {
		return err
	}
	tbl := tabwriter.NewWriter(w, 0, 0, 1, ' ', tabwriter.AlignRight)
	if _, err := fmt.Fprintf(tbl, "%s%sType\tLabels\tValue\t\n", prefix, util.IndentExpand(indent, 1)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(tbl, "%s%sIntercept\t\t%.3f\t\n", prefix, util.IndentExpand(indent, 1), m.Intercept); err != nil {
		return err
	}
	for _, group := range []struct {
		name string
		coef []float64
	}{
		{"ar", m.AR},
		{"ma", m.MA},
	} {
		for i, c := range group.coef {
			labelOut, err := json.Marshal(map[string]int{"lag": i + 1})
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintf(tbl, "%s%s%s\t%s\t%.3f\t\n",
				prefix, util.IndentExpand(indent, 1), group.name, string(labelOut), c); err != nil {
				return err
			}
		}
	}
	return tbl.Flush()
}

func copySlice(x []float64) []float64 {
	if x == nil {
		return nil
	}
	out := make([]float64, len(x))
	copy(out, x)
	return out
}

func isFinite(val float64) bool {
	return !math.IsNaN(val) && !math.IsInf(val, 0)
}
