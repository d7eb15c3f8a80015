package grades

import (
	"fmt"
	"math"
)

// NoGPA is reported when a scope contains no numerically graded rows.
const NoGPA = "N/A"

// SemesterGroup is the set of rows for one semester together with the
// aggregates derived from them.
type SemesterGroup struct {
	Semester   string `json:"semester"`
	Rows       []Row  `json:"rows"`
	TotalUnits int    `json:"total_units"`
	GPA        string `json:"gpa"`
}

// Summary holds the transcript-wide aggregates.
type Summary struct {
	TotalUnits int    `json:"total_units"`
	GPA        string `json:"gpa"`
	RowCount   int    `json:"row_count"`
}

// GroupBySemester partitions rows into semester groups, preserving the order
// in which each semester first appears. Rows without a semester fall into the
// UnknownSemester bucket.
func GroupBySemester(rows []Row) []SemesterGroup {
	var order []string
	buckets := map[string][]Row{}
	for _, row := range rows {
		semester := row.Semester
		if semester == "" {
			semester = UnknownSemester
		}
		if _, seen := buckets[semester]; !seen {
			order = append(order, semester)
		}
		buckets[semester] = append(buckets[semester], row)
	}

	groups := make([]SemesterGroup, 0, len(order))
	for _, semester := range order {
		scoped := buckets[semester]
		groups = append(groups, SemesterGroup{
			Semester:   semester,
			Rows:       scoped,
			TotalUnits: TotalUnits(scoped),
			GPA:        GPA(scoped),
		})
	}
	return groups
}

// Summarize computes the aggregates for the whole table.
func Summarize(rows []Row) Summary {
	return Summary{
		TotalUnits: TotalUnits(rows),
		GPA:        GPA(rows),
		RowCount:   len(rows),
	}
}

// TotalUnits sums credit units across all rows, graded or not.
func TotalUnits(rows []Row) int {
	total := 0
	for _, row := range rows {
		total += row.Units
	}
	return total
}

// GPA computes the arithmetic mean of the numeric grades. Units play no part
// in the mean. Rows without a numeric grade are excluded from both the
// numerator and the denominator; when no graded rows remain the result is
// NoGPA.
func GPA(rows []Row) string {
	var sum float64
	var graded int
	for _, row := range rows {
		if row.Grade == nil {
			continue
		}
		sum += *row.Grade
		graded++
	}
	if graded == 0 {
		return NoGPA
	}
	mean := sum / float64(graded)
	return fmt.Sprintf("%.2f", math.Round(mean*100)/100)
}
