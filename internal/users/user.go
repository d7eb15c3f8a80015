// Package users implements the student profile domain: identity and academic
// metadata, transcript and certificate uploads, extracted grade rows, and the
// archetype analysis snapshot.
package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/mcggEz/gradalyze/internal/grades"
)

// User is a student profile. Archetype percentages are independent match
// scores per axis, not a distribution; they are computed by the analysis
// engine and never recomputed here. PrimaryArchetype is likewise
// engine-designated.
type User struct {
	ID            uuid.UUID `json:"id"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	StudentNumber string    `json:"student_number"`
	Program       string    `json:"program"`
	PasswordHash  string    `json:"-"`

	TorURL         *string    `json:"tor_url"`
	TorStoragePath *string    `json:"tor_storage_path"`
	TorUploadedAt  *time.Time `json:"tor_uploaded_at"`
	TorPageCount   *int       `json:"tor_page_count"`
	TorNotes       *string    `json:"tor_notes"`

	CertificatePaths []string     `json:"certificate_paths"`
	GradeRows        []grades.Row `json:"grade_rows"`

	ArchetypeRealisticPercentage     *float64 `json:"archetype_realistic_percentage"`
	ArchetypeInvestigativePercentage *float64 `json:"archetype_investigative_percentage"`
	ArchetypeArtisticPercentage      *float64 `json:"archetype_artistic_percentage"`
	ArchetypeSocialPercentage        *float64 `json:"archetype_social_percentage"`
	ArchetypeEnterprisingPercentage  *float64 `json:"archetype_enterprising_percentage"`
	ArchetypeConventionalPercentage  *float64 `json:"archetype_conventional_percentage"`
	PrimaryArchetype                 *string  `json:"primary_archetype"`
	ArchetypeAnalyzedAt              *time.Time `json:"archetype_analyzed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasAnalysis reports whether the engine has completed archetype analysis for
// this profile: an analysis timestamp plus at least one non-null axis score.
func (u *User) HasAnalysis() bool {
	if u.ArchetypeAnalyzedAt == nil {
		return false
	}
	axes := []*float64{
		u.ArchetypeRealisticPercentage,
		u.ArchetypeInvestigativePercentage,
		u.ArchetypeArtisticPercentage,
		u.ArchetypeSocialPercentage,
		u.ArchetypeEnterprisingPercentage,
		u.ArchetypeConventionalPercentage,
	}
	for _, axis := range axes {
		if axis != nil {
			return true
		}
	}
	return false
}

// HasTranscript reports whether a transcript is on file.
func (u *User) HasTranscript() bool {
	return u.TorStoragePath != nil && *u.TorStoragePath != ""
}

// CreateCommand carries the data needed to register a new profile. The
// password is already hashed by the caller.
type CreateCommand struct {
	Email         string
	Name          string
	StudentNumber string
	Program       string
	PasswordHash  string
}

// UploadTranscriptCommand carries a validated transcript upload. Progress, if
// set, receives percentage callbacks as the blob streams to storage.
type UploadTranscriptCommand struct {
	Email       string
	Data        []byte
	Filename    string
	ContentType string
	PageCount   *int
	Progress    func(percent int)
}

// TranscriptRef describes a stored transcript.
type TranscriptRef struct {
	URL         string    `json:"tor_url"`
	StoragePath string    `json:"storage_path"`
	Name        string    `json:"name"`
	PageCount   *int      `json:"page_count"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// CertificateFile is one certificate in an upload request.
type CertificateFile struct {
	Data        []byte
	Filename    string
	ContentType string
}

// CertificateRef describes a stored certificate. Refs exist only once the
// blob write and the profile update have both committed; a failed batch
// leaves no refs behind.
type CertificateRef struct {
	URL         string    `json:"url"`
	StoragePath string    `json:"storage_path"`
	Name        string    `json:"name"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// GradeTable is the reconciled grade set served to clients: the editable
// rows, their semester grouping, and the derived aggregates.
type GradeTable struct {
	Rows      []grades.Row           `json:"rows"`
	Semesters []grades.SemesterGroup `json:"semesters"`
	Summary   grades.Summary         `json:"summary"`
}

func buildGradeTable(rows []grades.Row) *GradeTable {
	if rows == nil {
		rows = []grades.Row{}
	}
	return &GradeTable{
		Rows:      rows,
		Semesters: grades.GroupBySemester(rows),
		Summary:   grades.Summarize(rows),
	}
}
