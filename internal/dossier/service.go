package dossier

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mcggEz/gradalyze/internal/analysis"
	"github.com/mcggEz/gradalyze/internal/grades"
	"github.com/mcggEz/gradalyze/internal/users"
	"github.com/mcggEz/gradalyze/internal/workflow"
)

type service struct {
	users    users.System
	analysis analysis.System
	logger   *slog.Logger
}

// New creates a dossier System.
func New(usersSys users.System, analysisSys analysis.System, logger *slog.Logger) System {
	return &service{
		users:    usersSys,
		analysis: analysisSys,
		logger:   logger.With("system", "dossier"),
	}
}

func (s *service) Handler() *Handler {
	return NewHandler(s, s.logger)
}

func (s *service) Build(ctx context.Context, email string) (*Dossier, error) {
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	table, err := s.users.Grades(ctx, email)
	if err != nil {
		return nil, err
	}

	// Company matches are a background concern; the analysis system already
	// degrades an engine failure to an empty list.
	companies, err := s.analysis.CompaniesForUser(ctx, email)
	if err != nil {
		return nil, err
	}

	return &Dossier{
		User:      user,
		Grades:    table,
		Workflow:  workflow.Derive(user),
		Companies: companies,
	}, nil
}

func (s *service) ExportExcel(ctx context.Context, email string) ([]byte, string, error) {
	d, err := s.Build(ctx, email)
	if err != nil {
		return nil, "", err
	}

	data, err := renderExcel(d)
	if err != nil {
		return nil, "", fmt.Errorf("render dossier workbook: %w", err)
	}

	s.logger.Info("dossier exported", "email", email, "bytes", len(data))
	return data, exportFilename(d.User), nil
}

func exportFilename(u *users.User) string {
	name := strings.TrimSpace(u.Name)
	if name == "" {
		name = "student"
	}
	name = strings.ReplaceAll(strings.ToLower(name), " ", "-")
	return fmt.Sprintf("dossier-%s.xlsx", name)
}

func gradeLabel(row grades.Row) string {
	if row.Grade == nil {
		return ""
	}
	return fmt.Sprintf("%.2f", *row.Grade)
}
