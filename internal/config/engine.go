package config

import (
	"fmt"
	"net/url"
	"os"
	"time"
)

const (
	EnvEngineBaseURL = "GRADALYZE_ENGINE_BASE_URL"
	EnvEngineTimeout = "GRADALYZE_ENGINE_TIMEOUT"
)

// EngineConfig holds connection settings for the analysis engine, the
// external service that performs OCR grade extraction, archetype clustering,
// and company matching.
type EngineConfig struct {
	BaseURL string `toml:"base_url"`
	Timeout string `toml:"timeout"`
}

// TimeoutDuration returns Timeout as a time.Duration.
func (c *EngineConfig) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *EngineConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *EngineConfig) Merge(overlay *EngineConfig) {
	if overlay.BaseURL != "" {
		c.BaseURL = overlay.BaseURL
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
}

func (c *EngineConfig) loadDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = "http://localhost:5000"
	}
	if c.Timeout == "" {
		c.Timeout = "2m"
	}
}

func (c *EngineConfig) loadEnv() {
	if v := os.Getenv(EnvEngineBaseURL); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv(EnvEngineTimeout); v != "" {
		c.Timeout = v
	}
}

func (c *EngineConfig) validate() error {
	parsed, err := url.Parse(c.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("invalid base_url: %s", c.BaseURL)
	}
	if _, err := time.ParseDuration(c.Timeout); err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	return nil
}
