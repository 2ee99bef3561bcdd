package forecaster

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/abhinavsaxena123/Customer-Complaints-Forecasting/internal/util"
	"github.com/abhinavsaxena123/Customer-Complaints-Forecasting/timedataset"
	"github.com/goccy/go-json"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Point is a single forecasted value on a calendar date
type Point struct {
	Date  time.Time
	Value float64
}

type pointJSON struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal(pointJSON{
		Date:  p.Date.Format(DateLayout),
		Value: p.Value,
	})
}

func (p *Point) UnmarshalJSON(data []byte) error {
	var pj pointJSON
	if err := json.Unmarshal(data, &pj); err != nil {
		return err
	}
	date, err := ParseDate(pj.Date)
	if err != nil {
		return err
	}
	p.Date = date
	p.Value = pj.Value
	return nil
}

// Result is an ordered daily forecast series. The empty result has no points and no model.
type Result struct {
	Model  ModelID `json:"model"`
	Label  string  `json:"label"`
	Points []Point `json:"points"`
}

// EmptyResult is returned for requests that were not triggered
func EmptyResult() *Result {
	return &Result{Points: []Point{}}
}

// NewResult zips a daily dataset into a result for the requested model
func NewResult(req Request, td *timedataset.TimeDataset) *Result {
	points := make([]Point, 0, td.Len())
	for i := range td.T {
		points = append(points, Point{Date: td.T[i], Value: td.Y[i]})
	}
	return &Result{
		Model:  req.Model,
		Label:  req.Model.Label(),
		Points: points,
	}
}

func (r *Result) Empty() bool {
	return r == nil || len(r.Points) == 0
}

// Horizon is the number of days covered
func (r *Result) Horizon() int {
	if r == nil {
		return 0
	}
	return len(r.Points)
}

func (r *Result) Dates() []time.Time {
	if r == nil {
		return nil
	}
	t := make([]time.Time, 0, len(r.Points))
	for _, p := range r.Points {
		t = append(t, p.Date)
	}
	return t
}

func (r *Result) Values() []float64 {
	if r == nil {
		return nil
	}
	y := make([]float64, 0, len(r.Points))
	for _, p := range r.Points {
		y = append(y, p.Value)
	}
	return y
}

// Start returns the first forecasted date or the zero time for an empty result
func (r *Result) Start() time.Time {
	if r.Empty() {
		return time.Time{}
	}
	return r.Points[0].Date
}

// End returns the last forecasted date or the zero time for an empty result
func (r *Result) End() time.Time {
	if r.Empty() {
		return time.Time{}
	}
	return r.Points[len(r.Points)-1].Date
}

func (r *Result) Copy() *Result {
	if r == nil {
		return nil
	}
	points := make([]Point, len(r.Points))
	copy(points, r.Points)
	return &Result{
		Model:  r.Model,
		Label:  r.Label,
		Points: points,
	}
}

// Summary describes the forecasted values
type Summary struct {
	Mean  float64 `json:"mean"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Total float64 `json:"total"`
}

// Summary returns descriptive statistics of the forecast, or nil for an empty result
func (r *Result) Summary() *Summary {
	if r.Empty() {
		return nil
	}
	y := r.Values()
	return &Summary{
		Mean:  stat.Mean(y, nil),
		Min:   floats.Min(y),
		Max:   floats.Max(y),
		Total: floats.Sum(y),
	}
}

// TablePrint writes the summary followed by one row per forecasted day
func (r *Result) TablePrint(w io.Writer, prefix, indent string) error {
	if r.Empty() {
		_, err := fmt.Fprintf(w, "%sForecast: None\n", prefix)
		return err
	}
	s := r.Summary()
	if _, err := fmt.Fprintf(w, "%s%s:\n", prefix, r.Label); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s%sRange: %s to %s    Days: %d\n", prefix, util.IndentExpand(indent, 1),
		r.Start().Format(DateLayout), r.End().Format(DateLayout), r.Horizon()); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s%sMean: %.3f    Min: %.3f    Max: %.3f    Total: %.3f\n", prefix, util.IndentExpand(indent, 1),
		s.Mean, s.Min, s.Max, s.Total); err != nil {
		return err
	}

	tbl := tabwriter.NewWriter(w, 0, 0, 1, ' ', tabwriter.AlignRight)
	if _, err := fmt.Fprintf(tbl, "%s%sDate\tValue\t\n", prefix, util.IndentExpand(indent, 1)); err != nil {
		return err
	}
	for _, p := range r.Points {
		if _, err := fmt.Fprintf(tbl, "%s%s%s\t%.3f\t\n", prefix, util.IndentExpand(indent, 1), p.Date.Format(DateLayout), p.Value); err != nil {
			return err
		}
	}
	return tbl.Flush()
}
