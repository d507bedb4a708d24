// Package config loads configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Default values for the demo session. The secret is intentionally a
// well-known joke password; this is a didactic simulation, not security.
const (
	DefaultHost       = "folio"
	DefaultActor      = "guest"
	DefaultSudoSecret = "hunter2"
	DefaultLocale     = "en"
)

// Config holds all termfolio configuration.
type Config struct {
	// Prompt
	Host  string
	Actor string

	// Logging
	LogLevel  string
	LogFormat string

	// Metrics (empty = metrics server disabled)
	MetricsAddr string

	// Auth
	SudoSecret      string
	SudoMaxAttempts int

	// Locale
	Locale string

	// Sequencer delay multiplier. 0 collapses all choreography delays,
	// which tests and CI rely on.
	DelayScale float64
}

// Load reads configuration from environment variables with defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Host:            envOr("TERMFOLIO_HOST", DefaultHost),
		Actor:           envOr("TERMFOLIO_ACTOR", DefaultActor),
		LogLevel:        envOr("LOG_LEVEL", "info"),
		LogFormat:       envOr("LOG_FORMAT", "console"),
		MetricsAddr:     envOr("METRICS_ADDR", ""),
		SudoSecret:      envOr("SUDO_SECRET", DefaultSudoSecret),
		SudoMaxAttempts: envInt("SUDO_MAX_ATTEMPTS", 3),
		Locale:          envOr("DEFAULT_LOCALE", DefaultLocale),
		DelayScale:      envFloat("SEQUENCE_DELAY_SCALE", 1.0),
	}

	if cfg.SudoSecret == "" {
		return nil, fmt.Errorf("SUDO_SECRET must not be empty")
	}
	if cfg.SudoMaxAttempts < 1 {
		return nil, fmt.Errorf("SUDO_MAX_ATTEMPTS must be at least 1")
	}
	if cfg.Locale != "en" && cfg.Locale != "zh" {
		return nil, fmt.Errorf("DEFAULT_LOCALE must be en or zh, got %q", cfg.Locale)
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return i
}

func envFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 {
		return fallback
	}
	return f
}
