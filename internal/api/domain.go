package api

import (
	"github.com/mcggEz/gradalyze/internal/analysis"
	"github.com/mcggEz/gradalyze/internal/auth"
	"github.com/mcggEz/gradalyze/internal/config"
	"github.com/mcggEz/gradalyze/internal/dossier"
	"github.com/mcggEz/gradalyze/internal/jobs"
	"github.com/mcggEz/gradalyze/internal/users"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Users    users.System
	Auth     auth.System
	Jobs     jobs.System
	Analysis analysis.System
	Dossier  dossier.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(cfg *config.Config, runtime *Runtime) *Domain {
	usersSystem := users.New(
		runtime.Database.Connection(),
		runtime.Storage,
		runtime.Engine,
		runtime.Logger,
		runtime.Pagination,
	)

	authSystem := auth.New(
		&cfg.Auth,
		usersSystem,
		runtime.Logger,
	)

	jobsSystem := jobs.New(
		runtime.Database.Connection(),
		runtime.Queue,
		runtime.Engine,
		runtime.Logger,
		runtime.Pagination,
	)

	analysisSystem := analysis.New(
		runtime.Database.Connection(),
		runtime.Engine,
		usersSystem,
		runtime.Logger,
	)

	dossierSystem := dossier.New(
		usersSystem,
		analysisSystem,
		runtime.Logger,
	)

	return &Domain{
		Users:    usersSystem,
		Auth:     authSystem,
		Jobs:     jobsSystem,
		Analysis: analysisSystem,
		Dossier:  dossierSystem,
	}
}
