package grades

import (
	"log/slog"
	"math"
	"strconv"
	"strings"
)

// RawRecord is one grade entry as returned by the extraction engine. Field
// names and value types vary between engine versions, so records arrive as
// loose maps and are coalesced here.
type RawRecord map[string]any

const (
	defaultUnits    = 3
	defaultCategory = "General"
	defaultSemester = "N/A"
)

// Normalize converts engine output into table rows. Field aliases are
// coalesced (subject|name|course|course_name|description,
// units|credit_units|credits, grade|score|final_grade, semester|term,
// category|type), missing values receive defaults, and rows that fail
// validation are dropped with a warning rather than clamped. Surviving rows
// get sequential 1-based ids.
func Normalize(records []RawRecord, logger *slog.Logger) []Row {
	rows := make([]Row, 0, len(records))
	for i, rec := range records {
		subject := stringField(rec, "subject", "name", "course", "course_name", "description")
		if subject == "" || subject == UnknownSubject {
			logger.Warn("dropping unresolved grade row", "index", i)
			continue
		}

		units := defaultUnits
		if raw, ok := numberField(rec, "units", "credit_units", "credits"); ok {
			units = int(math.Round(raw))
		}
		if units < 0 || units > MaxUnits {
			logger.Warn("dropping grade row with invalid units", "index", i, "subject", subject, "units", units)
			continue
		}

		var grade *float64
		if raw, found := lookup(rec, "grade", "score", "final_grade"); found {
			value, numeric := toNumber(raw)
			if numeric {
				if value < 0 || value > MaxGrade {
					logger.Warn("dropping grade row with out-of-range grade", "index", i, "subject", subject, "grade", value)
					continue
				}
				grade = &value
			}
		}

		semester := stringField(rec, "semester", "term")
		if semester == "" {
			semester = defaultSemester
		}
		category := stringField(rec, "category", "type")
		if category == "" {
			category = defaultCategory
		}

		code, title := SplitSubject(subject)
		rows = append(rows, Row{
			ID:          int64(len(rows) + 1),
			Subject:     subject,
			CourseCode:  code,
			CourseTitle: title,
			Units:       units,
			Grade:       grade,
			Semester:    semester,
			Category:    category,
		})
	}
	return rows
}

func lookup(rec RawRecord, keys ...string) (any, bool) {
	for _, key := range keys {
		if value, ok := rec[key]; ok && value != nil {
			return value, true
		}
	}
	return nil, false
}

func stringField(rec RawRecord, keys ...string) string {
	raw, ok := lookup(rec, keys...)
	if !ok {
		return ""
	}
	if s, ok := raw.(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

func numberField(rec RawRecord, keys ...string) (float64, bool) {
	raw, ok := lookup(rec, keys...)
	if !ok {
		return 0, false
	}
	return toNumber(raw)
}

func toNumber(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case string:
		value, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return value, true
	default:
		return 0, false
	}
}
