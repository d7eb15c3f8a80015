package api

import (
	"github.com/mcggEz/gradalyze/internal/config"
	"github.com/mcggEz/gradalyze/internal/engine"
	"github.com/mcggEz/gradalyze/internal/infrastructure"
	"github.com/mcggEz/gradalyze/pkg/pagination"
)

// Runtime extends Infrastructure with API-specific configuration and the
// processing engine client.
type Runtime struct {
	*infrastructure.Infrastructure
	Engine     engine.System
	Pagination pagination.Config
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	logger := infra.Logger.With("module", "api")

	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    logger,
			Database:  infra.Database,
			Storage:   infra.Storage,
			Queue:     infra.Queue,
		},
		Engine:     engine.New(&cfg.Engine, logger),
		Pagination: cfg.API.Pagination,
	}
}
