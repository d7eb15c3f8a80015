package config_test

import (
	"testing"
	"time"

	"github.com/mcggEz/gradalyze/internal/config"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv(config.EnvAuthSecret, "test-secret")
	t.Setenv("GRADALYZE_DB_NAME", "gradalyze")
	t.Setenv("GRADALYZE_DB_USER", "gradalyze")
	t.Setenv("GRADALYZE_STORAGE_CONTAINER_NAME", "uploads")
	t.Setenv("GRADALYZE_STORAGE_CONNECTION_STRING", "UseDevelopmentStorage=true")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Server.Addr() != "0.0.0.0:8080" {
		t.Errorf("Addr() = %q, want 0.0.0.0:8080", cfg.Server.Addr())
	}
	if cfg.ShutdownTimeoutDuration() != 30*time.Second {
		t.Errorf("ShutdownTimeoutDuration() = %v, want 30s", cfg.ShutdownTimeoutDuration())
	}
	if cfg.API.BasePath != "/api" {
		t.Errorf("BasePath = %q, want /api", cfg.API.BasePath)
	}
	if cfg.Engine.BaseURL != "http://localhost:5000" {
		t.Errorf("Engine.BaseURL = %q, want http://localhost:5000", cfg.Engine.BaseURL)
	}
	if cfg.Queue.Addr != "localhost:6379" {
		t.Errorf("Queue.Addr = %q, want localhost:6379", cfg.Queue.Addr)
	}
	if cfg.Auth.TokenTTLDuration() != 24*time.Hour {
		t.Errorf("TokenTTLDuration() = %v, want 24h", cfg.Auth.TokenTTLDuration())
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("GRADALYZE_SERVER_PORT", "9090")
	t.Setenv(config.EnvEngineBaseURL, "http://engine.internal:5000")
	t.Setenv(config.EnvGradalyzeVersion, "1.2.3")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Engine.BaseURL != "http://engine.internal:5000" {
		t.Errorf("Engine.BaseURL = %q", cfg.Engine.BaseURL)
	}
	if cfg.Version != "1.2.3" {
		t.Errorf("Version = %q, want 1.2.3", cfg.Version)
	}
}

func TestLoadRequiresAuthSecret(t *testing.T) {
	t.Setenv("GRADALYZE_DB_NAME", "gradalyze")
	t.Setenv("GRADALYZE_DB_USER", "gradalyze")
	t.Setenv("GRADALYZE_STORAGE_CONTAINER_NAME", "uploads")
	t.Setenv("GRADALYZE_STORAGE_CONNECTION_STRING", "UseDevelopmentStorage=true")
	t.Setenv(config.EnvAuthSecret, "")

	if _, err := config.Load(); err == nil {
		t.Error("expected error when auth secret is missing")
	}
}

func TestAPIConfigUploadLimits(t *testing.T) {
	cfg := config.APIConfig{}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if got := cfg.MaxTranscriptSizeBytes(); got != 10*1024*1024 {
		t.Errorf("MaxTranscriptSizeBytes() = %d, want 10MB", got)
	}
	if got := cfg.MaxCertificateSizeBytes(); got != 5*1024*1024 {
		t.Errorf("MaxCertificateSizeBytes() = %d, want 5MB", got)
	}
}

func TestEngineConfigRejectsInvalidURL(t *testing.T) {
	cfg := config.EngineConfig{BaseURL: "not a url"}
	if err := cfg.Finalize(); err == nil {
		t.Error("expected error for invalid base_url")
	}
}

func TestAuthConfigRejectsInvalidTTL(t *testing.T) {
	cfg := config.AuthConfig{Secret: "s", TokenTTL: "yesterday"}
	if err := cfg.Finalize(); err == nil {
		t.Error("expected error for invalid token_ttl")
	}
}

func TestMergeOverlay(t *testing.T) {
	base := config.Config{Version: "1.0.0", ShutdownTimeout: "30s"}
	base.Engine.BaseURL = "http://localhost:5000"

	overlay := config.Config{Version: "2.0.0"}
	overlay.Engine.BaseURL = "http://engine:5000"

	base.Merge(&overlay)

	if base.Version != "2.0.0" {
		t.Errorf("Version = %q, want 2.0.0", base.Version)
	}
	if base.ShutdownTimeout != "30s" {
		t.Errorf("ShutdownTimeout = %q, zero overlay should not overwrite", base.ShutdownTimeout)
	}
	if base.Engine.BaseURL != "http://engine:5000" {
		t.Errorf("Engine.BaseURL = %q", base.Engine.BaseURL)
	}
}
