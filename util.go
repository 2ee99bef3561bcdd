package forecaster

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// LineForecast generates an echart line chart of a forecast result with US holidays in the range
// marked as vertical lines.
func LineForecast(res *Result) *charts.Line {
	line := charts.NewLine()

	title := "Forecast"
	subtitle := ""
	if !res.Empty() {
		title = res.Label
		subtitle = fmt.Sprintf("%s to %s", res.Start().Format(DateLayout), res.End().Format(DateLayout))
	}
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
			Width:     "100%",
		}),
		charts.WithTitleOpts(
			opts.Title{
				Title:    title,
				Subtitle: subtitle,
			},
		),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Date"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Forecasted Value"}),
	)

	if res.Empty() {
		return line
	}

	xAxis := make([]string, 0, len(res.Points))
	lineData := make([]opts.LineData, 0, len(res.Points))
	for _, p := range res.Points {
		xAxis = append(xAxis, p.Date.Format(DateLayout))
		lineData = append(lineData, opts.LineData{Value: p.Value})
	}

	seriesOpts := []charts.SeriesOpts{}
	for _, hol := range Holidays(USHolidays, res.Start(), res.End()) {
		seriesOpts = append(seriesOpts, charts.WithMarkLineNameXAxisItemOpts(opts.MarkLineNameXAxisItem{
			Name:  hol.Name,
			XAxis: hol.Date.Format(DateLayout),
		}))
	}

	line.SetXAxis(xAxis).
		AddSeries(res.Label, lineData, seriesOpts...)
	return line
}

// RenderChart writes a standalone html page containing the forecast chart
func RenderChart(w io.Writer, res *Result) error {
	page := components.NewPage()
	page.PageTitle = "Forecast"
	page.AddCharts(LineForecast(res))
	return page.Render(w)
}
