package analysis

import (
	"context"

	"github.com/mcggEz/gradalyze/internal/engine"
	"github.com/mcggEz/gradalyze/internal/users"
)

// System defines the public contract for analysis operations.
type System interface {
	Handler() *Handler

	// CompaniesForUser returns employer matches. An engine failure degrades
	// to an empty list rather than an error; the company panel is a
	// background concern and never blocks the page.
	CompaniesForUser(ctx context.Context, email string) ([]engine.Company, error)

	// ComputeArchetype runs the clustering step and persists the resulting
	// axis scores, primary archetype, and analysis timestamp on the profile.
	ComputeArchetype(ctx context.Context, email string) (*users.User, error)

	// CompleteRecommendations finalizes the user's career recommendations.
	CompleteRecommendations(ctx context.Context, email string) (*engine.RecommendationsResult, error)
}
