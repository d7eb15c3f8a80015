// Package engine is the client for the analysis engine, the external service
// that performs OCR grade extraction, archetype clustering, and company
// matching. The service never computes these results itself; it forwards
// requests and reconciles what comes back.
package engine

import "context"

// System defines analysis engine operations.
type System interface {
	// URL resolves a symbolic endpoint key against the configured base URL.
	URL(key string) string

	// ExtractGrades submits a stored transcript for OCR extraction.
	ExtractGrades(ctx context.Context, email, storagePath string) (*ExtractResult, error)

	// ComputeArchetype runs the clustering step over the user's grades.
	ComputeArchetype(ctx context.Context, email string) (*ArchetypeResult, error)

	// CompaniesForUser fetches employer matches for the user's profile.
	CompaniesForUser(ctx context.Context, email string) ([]Company, error)

	// CompleteRecommendations finalizes the user's career recommendations.
	CompleteRecommendations(ctx context.Context, email string) (*RecommendationsResult, error)

	// ScrapeJobs asks the engine to refresh its job listing corpus.
	ScrapeJobs(ctx context.Context, source string) error
}
