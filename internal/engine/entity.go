package engine

import "github.com/mcggEz/gradalyze/internal/grades"

// ExtractResult is the engine's response to a transcript extraction request.
// Grades holds the structured rows; Text carries the raw OCR text the engine
// worked from, which can be mined when the structured rows come back empty.
type ExtractResult struct {
	Grades   []grades.RawRecord `json:"grades"`
	Text     string             `json:"text"`
	Analysis map[string]any     `json:"analysis"`
}

// ArchetypeResult holds the personality axis percentages produced by the
// clustering step, keyed by axis name, plus the dominant axis.
type ArchetypeResult struct {
	Percentages map[string]float64 `json:"percentages"`
	Primary     string             `json:"primary_archetype"`
}

// Company is one recommended employer match.
type Company struct {
	Name            string   `json:"name"`
	Industry        string   `json:"industry"`
	Location        string   `json:"location"`
	MatchPercentage float64  `json:"match_percentage"`
	Careers         []string `json:"careers"`
}

// RecommendationsResult reports the outcome of finalizing a user's career
// recommendations.
type RecommendationsResult struct {
	Status    string `json:"status"`
	Companies int    `json:"companies"`
}
