package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

var (
	ErrNoModelPath      = errors.New("model artifact path not configured")
	ErrInvalidPort      = errors.New("invalid server port")
	ErrInvalidLogFormat = errors.New("invalid log format")
	ErrNegativeValue    = errors.New("value must not be negative")
)

// EnvPrefix is prepended to every environment override, e.g. FORECASTER_SERVER_PORT
const EnvPrefix = "forecaster"

// Config aggregates all configuration settings for the application.
type Config struct {
	// LogLevel sets the global logging verbosity.
	LogLevel string `mapstructure:"log_level"`
	// LogFormat is either json or text.
	LogFormat string          `mapstructure:"log_format"`
	Models    ModelsConfig    `mapstructure:"models"`
	Engine    EngineConfig    `mapstructure:"engine"`
	Server    ServerConfig    `mapstructure:"server"`
	Dashboard DashboardConfig `mapstructure:"dashboard"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// ModelsConfig points at the serialized model artifacts.
type ModelsConfig struct {
	SeasonalSmoothingPath string `mapstructure:"seasonal_smoothing_path"`
	AutoRegressivePath    string `mapstructure:"auto_regressive_path"`
}

type EngineConfig struct {
	MaxHorizon int  `mapstructure:"max_horizon"`
	Anchored   bool `mapstructure:"anchored"`
}

// ServerConfig defines the HTTP server settings.
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type DashboardConfig struct {
	// DefaultRangeDays is added to today to suggest an end date.
	DefaultRangeDays int `mapstructure:"default_range_days"`
}

type CacheConfig struct {
	// Size is the number of forecast results kept. Zero disables caching.
	Size int `mapstructure:"size"`
}

type TelemetryConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	ServiceName string `mapstructure:"service_name"`
}

// Load reads configuration from the file at path, or from config.yaml in the working directory or
// ./configs when path is empty, applying environment overrides on top. A missing default config file
// is not an error.
func Load(v *viper.Viper, path string) (*Config, error) {
	if v == nil {
		v = viper.New()
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("unable to read config, %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config, %w", err)
	}
	config.LogFormat = strings.ToLower(strings.TrimSpace(config.LogFormat))

	if err := validate(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")

	v.SetDefault("models.seasonal_smoothing_path", "models/holt_winters.json")
	v.SetDefault("models.auto_regressive_path", "models/auto_arima.json")

	v.SetDefault("engine.max_horizon", 3660)
	v.SetDefault("engine.anchored", false)

	v.SetDefault("server.port", 8050)
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "30s")

	v.SetDefault("dashboard.default_range_days", 79)

	v.SetDefault("cache.size", 256)

	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.service_name", "customer-complaints-forecaster")
}

func validate(c *Config) error {
	if c.Models.SeasonalSmoothingPath == "" {
		return fmt.Errorf("models.seasonal_smoothing_path, %w", ErrNoModelPath)
	}
	if c.Models.AutoRegressivePath == "" {
		return fmt.Errorf("models.auto_regressive_path, %w", ErrNoModelPath)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("got %d, %w", c.Server.Port, ErrInvalidPort)
	}
	switch c.LogFormat {
	case "json", "text":
	default:
		return fmt.Errorf("got %q, %w", c.LogFormat, ErrInvalidLogFormat)
	}
	if c.Engine.MaxHorizon < 0 {
		return fmt.Errorf("engine.max_horizon, %w", ErrNegativeValue)
	}
	if c.Dashboard.DefaultRangeDays < 0 {
		return fmt.Errorf("dashboard.default_range_days, %w", ErrNegativeValue)
	}
	if c.Cache.Size < 0 {
		return fmt.Errorf("cache.size, %w", ErrNegativeValue)
	}
	return nil
}
