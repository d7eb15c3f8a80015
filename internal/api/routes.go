package api

import (
	"net/http"

	"github.com/mcggEz/gradalyze/internal/config"
	"github.com/mcggEz/gradalyze/internal/workflow"
	"github.com/mcggEz/gradalyze/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
	runtime *Runtime,
) error {
	routes.Register(
		mux,
		domain.Auth.Handler().Routes(),
		domain.Users.Handler(
			cfg.API.MaxTranscriptSizeBytes(),
			cfg.API.MaxCertificateSizeBytes(),
		).Routes(),
		workflow.NewHandler(domain.Users, runtime.Logger).Routes(),
		domain.Jobs.Handler().Routes(),
		domain.Analysis.Handler().Routes(),
		domain.Dossier.Handler().Routes(),
	)

	doc, err := buildSpec(cfg)
	if err != nil {
		return err
	}
	mux.HandleFunc("GET /openapi.json", doc)

	return nil
}
