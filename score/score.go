// Package score holds the goodness of fit scores recorded alongside a fitted model artifact
package score

import (
	"fmt"
	"io"

	"github.com/abhinavsaxena123/Customer-Complaints-Forecasting/internal/util"
)

// Scores tracks the fit scores reported by the process that trained the model
type Scores struct {
	MSE  float64 `json:"mean_squared_error"`
	MAPE float64 `json:"mean_average_percent_error"`
	R2   float64 `json:"r_squared"`
}

// TablePrint writes the scores block at the given indent level. A nil Scores prints nothing.
func (s *Scores) TablePrint(w io.Writer, prefix, indent string, indentGrowth int) error {
	if s == nil {
		return nil
	}
	if _, err := fmt.Fprintf(w, "%s%sScores:\n", prefix, util.IndentExpand(indent, indentGrowth)); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%s%sMAPE: %.3f    MSE: %.3f    R2: %.3f\n",
		prefix, util.IndentExpand(indent, indentGrowth+1),
		s.MAPE,
		s.MSE,
		s.R2,
	)
	return err
}
