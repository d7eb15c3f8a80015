// Package workflow derives the transcript-to-archetype workflow stage from a
// profile snapshot. The stage is never stored: every request recomputes it
// from backend truth, so concurrent sessions and page reloads always
// reconcile to the same answer.
package workflow

import (
	"time"

	"github.com/mcggEz/gradalyze/internal/users"
)

// Stage is a step in the transcript-to-archetype workflow.
type Stage string

const (
	// StageUpload awaits a transcript, or a retry of extraction on one
	// already on file.
	StageUpload Stage = "upload"

	// StageValidation has extracted grade rows awaiting review.
	StageValidation Stage = "validation"

	// StageProcessing has a completed archetype analysis.
	StageProcessing Stage = "processing"

	// StageCertificateUpload is entered from processing when the user adds
	// supporting certificates; completion returns to processing.
	StageCertificateUpload Stage = "certificate-upload"
)

// State is the derived workflow position plus the profile facts that
// justify it.
type State struct {
	Stage            Stage      `json:"stage"`
	HasTranscript    bool       `json:"has_transcript"`
	HasAnalysis      bool       `json:"has_analysis"`
	GradeRowCount    int        `json:"grade_row_count"`
	TorUploadedAt    *time.Time `json:"tor_uploaded_at"`
	AnalyzedAt       *time.Time `json:"analyzed_at"`
	PrimaryArchetype *string    `json:"primary_archetype"`
	CertificateCount int        `json:"certificate_count"`
}

// Derive computes the workflow state from a fresh profile snapshot.
//
// A completed analysis (analysis timestamp plus at least one non-null axis
// score) lands directly in processing regardless of anything else. Extracted
// grade rows without an analysis land in validation. Everything else is
// upload; HasTranscript distinguishes a first visit from a retry with an
// existing transcript.
func Derive(u *users.User) State {
	state := State{
		HasTranscript:    u.HasTranscript(),
		HasAnalysis:      u.HasAnalysis(),
		GradeRowCount:    len(u.GradeRows),
		TorUploadedAt:    u.TorUploadedAt,
		AnalyzedAt:       u.ArchetypeAnalyzedAt,
		PrimaryArchetype: u.PrimaryArchetype,
		CertificateCount: len(u.CertificatePaths),
	}

	switch {
	case state.HasAnalysis:
		state.Stage = StageProcessing
	case state.HasTranscript && state.GradeRowCount > 0:
		state.Stage = StageValidation
	default:
		state.Stage = StageUpload
	}

	return state
}

// WithCertificateIntent moves a processing state into certificate-upload. The
// transition is client-signaled; before an analysis completes there is nothing
// to attach certificates to, so other stages are returned unchanged.
func (s State) WithCertificateIntent() State {
	if s.Stage == StageProcessing {
		s.Stage = StageCertificateUpload
	}
	return s
}
