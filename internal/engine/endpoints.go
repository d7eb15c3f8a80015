package engine

import "fmt"

// Symbolic endpoint keys for the analysis engine. Handlers reference
// endpoints by key so the path layout lives in exactly one place.
const (
	EndpointExtractGrades           = "extract_grades"
	EndpointComputeArchetype        = "dev_compute_archetype"
	EndpointCompaniesForUser        = "companies_for_user"
	EndpointCompleteRecommendations = "complete_recommendations"
	EndpointScrapeJobs              = "scrape_jobs"
)

var endpoints = map[string]string{
	EndpointExtractGrades:           "/api/process-tor-pdf",
	EndpointComputeArchetype:        "/api/dev/compute-archetype",
	EndpointCompaniesForUser:        "/api/companies-for-user",
	EndpointCompleteRecommendations: "/api/complete-recommendations",
	EndpointScrapeJobs:              "/api/scrape-jobs",
}

// Path returns the engine path for a symbolic endpoint key. An unknown key is
// a programmer error and panics.
func Path(key string) string {
	path, ok := endpoints[key]
	if !ok {
		panic(fmt.Sprintf("engine: unknown endpoint key %q", key))
	}
	return path
}
