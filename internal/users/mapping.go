package users

import (
	"encoding/json"
	"net/url"

	"github.com/mcggEz/gradalyze/internal/grades"
	"github.com/mcggEz/gradalyze/pkg/query"
	"github.com/mcggEz/gradalyze/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "users", "u").
	Project("id", "ID").
	Project("email", "Email").
	Project("name", "Name").
	Project("student_number", "StudentNumber").
	Project("program", "Program").
	Project("password_hash", "PasswordHash").
	Project("tor_storage_path", "TorStoragePath").
	Project("tor_uploaded_at", "TorUploadedAt").
	Project("tor_page_count", "TorPageCount").
	Project("tor_notes", "TorNotes").
	Project("certificate_paths", "CertificatePaths").
	Project("grade_rows", "GradeRows").
	Project("archetype_realistic_percentage", "ArchetypeRealisticPercentage").
	Project("archetype_investigative_percentage", "ArchetypeInvestigativePercentage").
	Project("archetype_artistic_percentage", "ArchetypeArtisticPercentage").
	Project("archetype_social_percentage", "ArchetypeSocialPercentage").
	Project("archetype_enterprising_percentage", "ArchetypeEnterprisingPercentage").
	Project("archetype_conventional_percentage", "ArchetypeConventionalPercentage").
	Project("primary_archetype", "PrimaryArchetype").
	Project("archetype_analyzed_at", "ArchetypeAnalyzedAt").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for profile queries. Nil
// fields are ignored. HasTranscript and Analyzed only narrow when true.
type Filters struct {
	Email         *string `json:"email,omitempty"`
	Name          *string `json:"name,omitempty"`
	Program       *string `json:"program,omitempty"`
	StudentNumber *string `json:"student_number,omitempty"`
	HasTranscript bool    `json:"has_transcript,omitempty"`
	Analyzed      bool    `json:"analyzed,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("Email", f.Email).
		WhereContains("Name", f.Name).
		WhereContains("Program", f.Program).
		WhereEquals("StudentNumber", f.StudentNumber).
		WhereNotNull("TorStoragePath", f.HasTranscript).
		WhereNotNull("ArchetypeAnalyzedAt", f.Analyzed)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if e := values.Get("email"); e != "" {
		f.Email = &e
	}
	if n := values.Get("name"); n != "" {
		f.Name = &n
	}
	if p := values.Get("program"); p != "" {
		f.Program = &p
	}
	if sn := values.Get("student_number"); sn != "" {
		f.StudentNumber = &sn
	}
	f.HasTranscript = values.Get("has_transcript") == "true"
	f.Analyzed = values.Get("analyzed") == "true"

	return f
}

func scanUser(s repository.Scanner) (User, error) {
	var u User
	var certs, rows []byte

	err := s.Scan(
		&u.ID,
		&u.Email,
		&u.Name,
		&u.StudentNumber,
		&u.Program,
		&u.PasswordHash,
		&u.TorStoragePath,
		&u.TorUploadedAt,
		&u.TorPageCount,
		&u.TorNotes,
		&certs,
		&rows,
		&u.ArchetypeRealisticPercentage,
		&u.ArchetypeInvestigativePercentage,
		&u.ArchetypeArtisticPercentage,
		&u.ArchetypeSocialPercentage,
		&u.ArchetypeEnterprisingPercentage,
		&u.ArchetypeConventionalPercentage,
		&u.PrimaryArchetype,
		&u.ArchetypeAnalyzedAt,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return u, err
	}

	u.CertificatePaths = []string{}
	if len(certs) > 0 {
		if err := json.Unmarshal(certs, &u.CertificatePaths); err != nil {
			return u, err
		}
	}

	u.GradeRows = []grades.Row{}
	if len(rows) > 0 {
		if err := json.Unmarshal(rows, &u.GradeRows); err != nil {
			return u, err
		}
	}

	return u, nil
}
