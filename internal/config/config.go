package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/couchcryptid/weather-mcp-service/internal/domain"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	// Upstream NWS API.
	NWSBaseURL   string
	NWSUserAgent string
	NWSTimeout   time.Duration

	// ForecastPeriods caps how many periods a forecast result carries.
	ForecastPeriods int

	LogLevel  string
	LogFormat string

	// MetricsAddr enables the health/metrics HTTP listener when non-empty.
	// Empty by default: the stdio MCP session is the only external surface.
	MetricsAddr     string
	ShutdownTimeout time.Duration
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	nwsTimeout, err := envDuration("NWS_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}

	shutdownTimeout, err := envDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	forecastPeriods, err := envInt("FORECAST_PERIODS", domain.ForecastPeriodLimit)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		NWSBaseURL:      envOrDefault("NWS_BASE_URL", "https://api.weather.gov"),
		NWSUserAgent:    envOrDefault("NWS_USER_AGENT", "weather-app/1.0"),
		NWSTimeout:      nwsTimeout,
		ForecastPeriods: forecastPeriods,
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		MetricsAddr:     os.Getenv("METRICS_ADDR"),
		ShutdownTimeout: shutdownTimeout,
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.NWSBaseURL == "" {
		return fmt.Errorf("NWS_BASE_URL must not be empty")
	}
	if c.NWSUserAgent == "" {
		return fmt.Errorf("NWS_USER_AGENT must not be empty")
	}
	if c.NWSTimeout <= 0 {
		return fmt.Errorf("NWS_TIMEOUT must be positive, got %s", c.NWSTimeout)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive, got %s", c.ShutdownTimeout)
	}
	// The NWS forecast endpoint never returns more than 14 periods.
	if c.ForecastPeriods < 1 || c.ForecastPeriods > 14 {
		return fmt.Errorf("FORECAST_PERIODS must be between 1 and 14, got %d", c.ForecastPeriods)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid LOG_LEVEL: %s", c.LogLevel)
	}
	if c.LogFormat != "json" && c.LogFormat != "text" {
		return fmt.Errorf("invalid LOG_FORMAT: %s", c.LogFormat)
	}

	return nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, v)
	}
	return n, nil
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, v)
	}
	return d, nil
}
