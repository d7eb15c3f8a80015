// Package grades implements the transcript grade table: normalization of
// extraction engine output into editable rows, cell-level editing, semester
// grouping, and derived aggregates.
//
// Grade values follow the transcript's native convention where lower is
// better: 1.0 is the top mark and anything at or below 1.5 is excellent. This
// is deliberate and must not be normalized to conventional GPA semantics.
package grades

import "strings"

const (
	// UnknownSubject marks a row the extraction engine could not resolve;
	// such rows are discarded during normalization.
	UnknownSubject = "Unknown Subject"

	// UnknownSemester is the grouping bucket for rows without a semester.
	UnknownSemester = "Unknown Semester"

	// MaxUnits is the highest credit-unit value accepted for a row.
	MaxUnits = 10

	// MaxGrade is the highest grade value accepted for a row.
	MaxGrade = 5.0

	subjectDelimiter = " - "
)

// Row is one normalized transcript entry. Grade is nil when the extracted
// value was non-numeric; such rows stay in the table but are excluded from
// GPA computation.
type Row struct {
	ID          int64    `json:"id"`
	Subject     string   `json:"subject"`
	CourseCode  string   `json:"course_code"`
	CourseTitle string   `json:"course_title"`
	Units       int      `json:"units"`
	Grade       *float64 `json:"grade"`
	Semester    string   `json:"semester"`
	Category    string   `json:"category"`
}

// SplitSubject derives the course code and title from a subject string. When
// the delimiter is absent, both equal the full subject.
func SplitSubject(subject string) (code, title string) {
	if before, after, ok := strings.Cut(subject, subjectDelimiter); ok {
		return before, after
	}
	return subject, subject
}

// JoinSubject reconstitutes a subject string from its code and title so that
// splitting the result yields the inputs unchanged.
func JoinSubject(code, title string) string {
	return code + subjectDelimiter + title
}

// Band classifies a grade on the lower-is-better scale.
func Band(grade float64) string {
	switch {
	case grade <= 1.5:
		return "excellent"
	case grade <= 2.0:
		return "good"
	case grade <= 2.5:
		return "fair"
	default:
		return "poor"
	}
}
