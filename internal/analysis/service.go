package analysis

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/mcggEz/gradalyze/internal/engine"
	"github.com/mcggEz/gradalyze/internal/users"
	"github.com/mcggEz/gradalyze/pkg/repository"
)

type service struct {
	db     *sql.DB
	engine engine.System
	users  users.System
	logger *slog.Logger
}

// New creates an analysis System.
func New(db *sql.DB, eng engine.System, usersSys users.System, logger *slog.Logger) System {
	return &service{
		db:     db,
		engine: eng,
		users:  usersSys,
		logger: logger.With("system", "analysis"),
	}
}

func (s *service) Handler() *Handler {
	return NewHandler(s, s.logger)
}

func (s *service) CompaniesForUser(ctx context.Context, email string) ([]engine.Company, error) {
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}

	companies, err := s.engine.CompaniesForUser(ctx, email)
	if err != nil {
		s.logger.Warn("company match fetch failed, serving empty list", "email", email, "error", err)
		return []engine.Company{}, nil
	}
	if companies == nil {
		companies = []engine.Company{}
	}
	return companies, nil
}

func (s *service) ComputeArchetype(ctx context.Context, email string) (*users.User, error) {
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}

	result, err := s.engine.ComputeArchetype(ctx, email)
	if err != nil {
		return nil, err
	}

	q := `
		UPDATE users
		SET archetype_realistic_percentage = $1,
			archetype_investigative_percentage = $2,
			archetype_artistic_percentage = $3,
			archetype_social_percentage = $4,
			archetype_enterprising_percentage = $5,
			archetype_conventional_percentage = $6,
			primary_archetype = $7,
			archetype_analyzed_at = now(),
			updated_at = now()
		WHERE email = $8`

	var primary *string
	if result.Primary != "" {
		primary = &result.Primary
	}

	updateArgs := []any{
		axis(result, "realistic"),
		axis(result, "investigative"),
		axis(result, "artistic"),
		axis(result, "social"),
		axis(result, "enterprising"),
		axis(result, "conventional"),
		primary,
		email,
	}

	_, err = repository.WithTx(ctx, s.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(ctx, tx, q, updateArgs...)
	})
	if err != nil {
		return nil, repository.MapError(err, users.ErrNotFound, users.ErrDuplicate)
	}

	s.logger.Info("archetype persisted", "email", email, "primary", result.Primary)
	return s.users.FindByEmail(ctx, email)
}

func (s *service) CompleteRecommendations(ctx context.Context, email string) (*engine.RecommendationsResult, error) {
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	return s.engine.CompleteRecommendations(ctx, email)
}

func axis(result *engine.ArchetypeResult, name string) *float64 {
	if value, ok := result.Percentages[name]; ok {
		return &value
	}
	return nil
}
