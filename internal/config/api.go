package config

import (
	"fmt"
	"os"

	"github.com/mcggEz/gradalyze/pkg/formatting"
	"github.com/mcggEz/gradalyze/pkg/middleware"
	"github.com/mcggEz/gradalyze/pkg/pagination"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "GRADALYZE_CORS_ENABLED",
	Origins:          "GRADALYZE_CORS_ORIGINS",
	AllowedMethods:   "GRADALYZE_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "GRADALYZE_CORS_ALLOWED_HEADERS",
	AllowCredentials: "GRADALYZE_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "GRADALYZE_CORS_MAX_AGE",
}

var paginationEnv = &pagination.ConfigEnv{
	DefaultPageSize: "GRADALYZE_PAGINATION_DEFAULT_PAGE_SIZE",
	MaxPageSize:     "GRADALYZE_PAGINATION_MAX_PAGE_SIZE",
}

// APIConfig holds API routing, CORS, pagination, and upload limit settings.
type APIConfig struct {
	BasePath           string                `toml:"base_path"`
	MaxTranscriptSize  string                `toml:"max_transcript_size"`
	MaxCertificateSize string                `toml:"max_certificate_size"`
	CORS               middleware.CORSConfig `toml:"cors"`
	Pagination         pagination.Config     `toml:"pagination"`
}

func (c *APIConfig) MaxTranscriptSizeBytes() int64 {
	size, err := formatting.ParseBytes(c.MaxTranscriptSize)
	if err != nil {
		return 10 * 1024 * 1024
	}
	return size
}

func (c *APIConfig) MaxCertificateSizeBytes() int64 {
	size, err := formatting.ParseBytes(c.MaxCertificateSize)
	if err != nil {
		return 5 * 1024 * 1024
	}
	return size
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested CORS and pagination configs.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.MaxTranscriptSize != "" {
		c.MaxTranscriptSize = overlay.MaxTranscriptSize
	}
	if overlay.MaxCertificateSize != "" {
		c.MaxCertificateSize = overlay.MaxCertificateSize
	}

	c.CORS.Merge(&overlay.CORS)
	c.Pagination.Merge(&overlay.Pagination)
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if c.MaxTranscriptSize == "" {
		c.MaxTranscriptSize = "10MB"
	}
	if c.MaxCertificateSize == "" {
		c.MaxCertificateSize = "5MB"
	}
}

func (c *APIConfig) loadEnv() {
	if v := os.Getenv("GRADALYZE_API_BASE_PATH"); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv("GRADALYZE_API_MAX_TRANSCRIPT_SIZE"); v != "" {
		c.MaxTranscriptSize = v
	}
	if v := os.Getenv("GRADALYZE_API_MAX_CERTIFICATE_SIZE"); v != "" {
		c.MaxCertificateSize = v
	}
}
