package main

import (
	"fmt"
	"io"

	forecaster "github.com/abhinavsaxena123/Customer-Complaints-Forecasting"
	"github.com/abhinavsaxena123/Customer-Complaints-Forecasting/artifact"
	"github.com/abhinavsaxena123/Customer-Complaints-Forecasting/internal/config"
	"github.com/abhinavsaxena123/Customer-Complaints-Forecasting/internal/logging"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app carries state shared by the subcommands once configuration is loaded
type app struct {
	v          *viper.Viper
	configPath string
	cfg        *config.Config
	logger     *logrus.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:           "forecaster",
		Short:         "Forecast daily customer complaint volumes from pre-fitted models",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd.ErrOrStderr())
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "config file (default ./config.yaml or ./configs/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "", "log format (json, text)")
	rootCmd.PersistentFlags().String("seasonal-smoothing-path", "", "seasonal smoothing model artifact")
	rootCmd.PersistentFlags().String("auto-regressive-path", "", "auto regressive model artifact")

	bindFlag(a.v, rootCmd, "log_level", "log-level")
	bindFlag(a.v, rootCmd, "log_format", "log-format")
	bindFlag(a.v, rootCmd, "models.seasonal_smoothing_path", "seasonal-smoothing-path")
	bindFlag(a.v, rootCmd, "models.auto_regressive_path", "auto-regressive-path")

	rootCmd.AddCommand(serveCmd(a))
	rootCmd.AddCommand(forecastCmd(a))
	rootCmd.AddCommand(inspectCmd(a))
	return rootCmd
}

func bindFlag(v *viper.Viper, cmd *cobra.Command, key, flag string) {
	if err := v.BindPFlag(key, cmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(err)
	}
}

func (a *app) load(logOut io.Writer) error {
	cfg, err := config.Load(a.v, a.configPath)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, logOut)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	return nil
}

func (a *app) loadModels() (*artifact.Models, error) {
	models, err := artifact.LoadModels(a.cfg.Models.SeasonalSmoothingPath, a.cfg.Models.AutoRegressivePath)
	if err != nil {
		return nil, err
	}
	a.logger.WithFields(logrus.Fields{
		"seasonal_smoothing": a.cfg.Models.SeasonalSmoothingPath,
		"auto_regressive":    a.cfg.Models.AutoRegressivePath,
	}).Info("loaded model artifacts")
	return models, nil
}

func (a *app) newEngine() (*forecaster.Engine, error) {
	models, err := a.loadModels()
	if err != nil {
		return nil, err
	}
	engine, err := forecaster.NewEngine(
		models.SeasonalSmoothing,
		models.AutoRegressive,
		&forecaster.Options{
			MaxHorizon: a.cfg.Engine.MaxHorizon,
			Anchored:   a.cfg.Engine.Anchored,
		},
		a.logger,
	)
	if err != nil {
		return nil, fmt.Errorf("unable to create forecast engine, %w", err)
	}
	return engine, nil
}
