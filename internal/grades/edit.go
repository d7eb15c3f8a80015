package grades

import (
	"fmt"
	"math"
	"strings"
	"time"
)

const (
	placeholderCode  = "NEW"
	placeholderTitle = "New Subject"
	placeholderUnits = 3
	placeholderGrade = 2.0
)

// UpdateCell applies a single-field edit to the row with the given id and
// returns the updated slice. Editing the course code or title reconstitutes
// the combined subject so the two representations never diverge. Numeric
// fields are range-checked before anything is written.
func UpdateCell(rows []Row, id int64, field string, value any) ([]Row, error) {
	idx := indexOf(rows, id)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %d", ErrRowNotFound, id)
	}

	row := rows[idx]
	switch field {
	case "course_code":
		row.CourseCode = fmt.Sprint(value)
		row.Subject = JoinSubject(row.CourseCode, row.CourseTitle)
	case "course_title":
		row.CourseTitle = fmt.Sprint(value)
		row.Subject = JoinSubject(row.CourseCode, row.CourseTitle)
	case "units":
		raw, ok := toNumber(value)
		if !ok || raw != math.Trunc(raw) || raw < 0 || raw > MaxUnits {
			return nil, ErrUnitsRange
		}
		row.Units = int(raw)
	case "grade":
		raw, ok := toNumber(value)
		if !ok || raw < 0 || raw > MaxGrade {
			return nil, ErrGradeRange
		}
		row.Grade = &raw
	case "semester":
		row.Semester = fmt.Sprint(value)
	case "category":
		row.Category = fmt.Sprint(value)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownField, field)
	}

	updated := make([]Row, len(rows))
	copy(updated, rows)
	updated[idx] = row
	return updated, nil
}

// ValidateRow range-checks a complete row with the same bounds UpdateCell
// applies to individual edits. Rows arriving over the wire pass through here
// before they are persisted.
func ValidateRow(row Row) error {
	if row.Units < 0 || row.Units > MaxUnits {
		return ErrUnitsRange
	}
	if row.Grade != nil && (*row.Grade < 0 || *row.Grade > MaxGrade) {
		return ErrGradeRange
	}
	return nil
}

// ReconcileSubject keeps the combined subject and its code/title split in
// agreement. A blank subject is rebuilt from the parts; otherwise the parts
// are re-derived from the subject.
func ReconcileSubject(row Row) Row {
	if strings.TrimSpace(row.Subject) == "" {
		row.Subject = JoinSubject(row.CourseCode, row.CourseTitle)
	}
	row.CourseCode, row.CourseTitle = SplitSubject(row.Subject)
	return row
}

// AddRow appends a placeholder row to the given semester. The id is derived
// from the current time so it cannot collide with the sequential ids assigned
// at normalization.
func AddRow(rows []Row, semester string) []Row {
	grade := placeholderGrade
	row := Row{
		ID:          time.Now().UnixMilli(),
		Subject:     JoinSubject(placeholderCode, placeholderTitle),
		CourseCode:  placeholderCode,
		CourseTitle: placeholderTitle,
		Units:       placeholderUnits,
		Grade:       &grade,
		Semester:    semester,
		Category:    defaultCategory,
	}
	updated := make([]Row, len(rows), len(rows)+1)
	copy(updated, rows)
	return append(updated, row)
}

// DeleteRow removes the row with the given id.
func DeleteRow(rows []Row, id int64) ([]Row, error) {
	idx := indexOf(rows, id)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %d", ErrRowNotFound, id)
	}
	updated := make([]Row, 0, len(rows)-1)
	updated = append(updated, rows[:idx]...)
	updated = append(updated, rows[idx+1:]...)
	return updated, nil
}

func indexOf(rows []Row, id int64) int {
	for i, row := range rows {
		if row.ID == id {
			return i
		}
	}
	return -1
}
