package config

import (
	"fmt"
	"os"
)

// Config holds all process settings, populated from environment variables.
// The two input file paths are explicit configuration, not ambient state;
// callers pass them on to the loaders.
type Config struct {
	AirQualityFile string
	UHFFile        string
	LogLevel       string
	LogFormat      string

	// HTTPAddr enables the health/metrics endpoint when non-empty. Empty by
	// default: an ad-hoc query session rarely needs one.
	HTTPAddr string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	cfg := &Config{
		AirQualityFile: envOrDefault("AIR_QUALITY_FILE", "air_quality.csv"),
		UHFFile:        envOrDefault("UHF_FILE", "uhf.csv"),
		LogLevel:       envOrDefault("LOG_LEVEL", "info"),
		LogFormat:      envOrDefault("LOG_FORMAT", "text"),
		HTTPAddr:       os.Getenv("HTTP_ADDR"),
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid LOG_LEVEL %q", cfg.LogLevel)
	}
	switch cfg.LogFormat {
	case "text", "json":
	default:
		return nil, fmt.Errorf("invalid LOG_FORMAT %q", cfg.LogFormat)
	}
	if cfg.AirQualityFile == "" {
		return nil, fmt.Errorf("AIR_QUALITY_FILE must not be empty")
	}
	if cfg.UHFFile == "" {
		return nil, fmt.Errorf("UHF_FILE must not be empty")
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
