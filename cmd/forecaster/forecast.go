package main

import (
	"fmt"
	"os"
	"time"

	forecaster "github.com/abhinavsaxena123/Customer-Complaints-Forecasting"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

func forecastCmd(a *app) *cobra.Command {
	var (
		start    string
		end      string
		model    string
		asJSON   bool
		htmlPath string
	)

	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Compute a single forecast and print it",
		Long: `Computes a daily forecast between --start and --end inclusive. Dates default to today
and today plus the configured dashboard range.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := a.newEngine()
			if err != nil {
				return err
			}

			today := time.Now()
			if start == "" {
				start = today.Format(forecaster.DateLayout)
			}
			if end == "" {
				end = today.AddDate(0, 0, a.cfg.Dashboard.DefaultRangeDays).Format(forecaster.DateLayout)
			}

			res, err := engine.ComputeForecast(true, start, end, model)
			if err != nil {
				return err
			}

			if htmlPath != "" {
				if err := writeChart(htmlPath, res); err != nil {
					return err
				}
				a.logger.WithField("path", htmlPath).Info("wrote forecast chart")
			}

			out := cmd.OutOrStdout()
			if asJSON {
				bytes, err := json.MarshalIndent(res, "", "  ")
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(out, string(bytes))
				return err
			}
			return res.TablePrint(out, "", "  ")
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "first forecast date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "last forecast date (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&model, "model", "m", forecaster.SeasonalSmoothing.String(), "seasonal_smoothing or auto_regressive")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as json")
	cmd.Flags().StringVar(&htmlPath, "html", "", "also write an html chart to this path")
	return cmd
}

func writeChart(path string, res *forecaster.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := forecaster.RenderChart(file, res); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
