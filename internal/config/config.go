// Package config turns raw settings from flags, environment and config file
// into a validated runtime configuration.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Default values for configuration.
const (
	DefaultAddr         = ":8080"
	DefaultTimeout      = "10s"
	DefaultRetryDelay   = "1500ms"
	DefaultConcurrency  = 16
	DefaultMaxPages     = 10
	DefaultCacheSeconds = 4 * 60 * 60
	MaxConcurrency      = 100
)

// Config holds the runtime configuration shared by every command.
type Config struct {
	Token        string        // GitHub token, threaded into the gateway
	Addr         string        // Listen address of the serve command
	Timeout      time.Duration // Per-repository fetch timeout
	RetryDelay   time.Duration // Wait before retrying a 202 stats response
	Concurrency  int           // Maximum in-flight repository fetches
	MaxPages     int           // Maximum repository pages read per source
	CacheSeconds int           // max-age sent with successful images
}

// ConfigRawInput holds the raw values as unmarshalled by Viper.
type ConfigRawInput struct {
	Token        string `mapstructure:"token"`
	Addr         string `mapstructure:"addr"`
	Timeout      string `mapstructure:"timeout"`
	RetryDelay   string `mapstructure:"retry-delay"`
	Concurrency  int    `mapstructure:"concurrency"`
	MaxPages     int    `mapstructure:"max-pages"`
	CacheSeconds int    `mapstructure:"cache-seconds"`
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if input.Token == "" {
		return errors.New("a GitHub token is required; set GITHUB_TOKEN")
	}
	cfg.Token = input.Token

	cfg.Addr = input.Addr
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}

	timeout, err := parsePositiveDuration("timeout", input.Timeout, DefaultTimeout)
	if err != nil {
		return err
	}
	cfg.Timeout = timeout

	retryDelay, err := parsePositiveDuration("retry-delay", input.RetryDelay, DefaultRetryDelay)
	if err != nil {
		return err
	}
	cfg.RetryDelay = retryDelay

	if input.Concurrency <= 0 || input.Concurrency > MaxConcurrency {
		return fmt.Errorf("concurrency must be greater than 0 and cannot exceed %d (received %d)", MaxConcurrency, input.Concurrency)
	}
	cfg.Concurrency = input.Concurrency

	if input.MaxPages <= 0 {
		return fmt.Errorf("max-pages must be greater than 0 (received %d)", input.MaxPages)
	}
	cfg.MaxPages = input.MaxPages

	if input.CacheSeconds < 0 {
		return fmt.Errorf("cache-seconds cannot be negative (received %d)", input.CacheSeconds)
	}
	cfg.CacheSeconds = input.CacheSeconds

	return nil
}

func parsePositiveDuration(name, raw, fallback string) (time.Duration, error) {
	if raw == "" {
		raw = fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s '%s': %w", name, raw, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive (received %s)", name, raw)
	}
	return d, nil
}
