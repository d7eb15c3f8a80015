package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mcggEz/gradalyze/internal/config"
	"github.com/mcggEz/gradalyze/internal/grades"
	"github.com/mcggEz/gradalyze/pkg/formatting"
)

type client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// New creates an engine System from configuration.
func New(cfg *config.EngineConfig, logger *slog.Logger) System {
	return &client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.TimeoutDuration()},
		logger:  logger.With("system", "engine"),
	}
}

func (c *client) URL(key string) string {
	return c.baseURL + Path(key)
}

func (c *client) ExtractGrades(ctx context.Context, email, storagePath string) (*ExtractResult, error) {
	body := map[string]string{
		"email":        email,
		"storage_path": storagePath,
	}

	var result ExtractResult
	if err := c.post(ctx, EndpointExtractGrades, body, &result); err != nil {
		return nil, err
	}

	// Some engine versions return rows only inside the raw OCR text.
	if len(result.Grades) == 0 && result.Text != "" {
		if salvaged, err := formatting.Parse[[]grades.RawRecord](result.Text); err == nil {
			c.logger.Info("salvaged grade rows from raw extraction text", "rows", len(salvaged))
			result.Grades = salvaged
		}
	}

	return &result, nil
}

func (c *client) ComputeArchetype(ctx context.Context, email string) (*ArchetypeResult, error) {
	var result ArchetypeResult
	if err := c.post(ctx, EndpointComputeArchetype, map[string]string{"email": email}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *client) CompaniesForUser(ctx context.Context, email string) ([]Company, error) {
	var result struct {
		Companies []Company `json:"companies"`
	}
	if err := c.post(ctx, EndpointCompaniesForUser, map[string]string{"email": email}, &result); err != nil {
		return nil, err
	}
	return result.Companies, nil
}

func (c *client) CompleteRecommendations(ctx context.Context, email string) (*RecommendationsResult, error) {
	var result RecommendationsResult
	if err := c.post(ctx, EndpointCompleteRecommendations, map[string]string{"email": email}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *client) ScrapeJobs(ctx context.Context, source string) error {
	return c.post(ctx, EndpointScrapeJobs, map[string]string{"source": source}, nil)
}

// post sends a JSON request to the keyed endpoint and decodes a 2xx response
// into target. Failures are never retried here; callers decide whether the
// operation is worth reissuing.
func (c *client) post(ctx context.Context, key string, body, target any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL(key), bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("engine request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err := responseError(resp)
		c.logger.Error("engine request failed", "endpoint", key, "error", err)
		return err
	}

	if target == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
