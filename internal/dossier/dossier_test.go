package dossier

import (
	"bytes"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/mcggEz/gradalyze/internal/engine"
	"github.com/mcggEz/gradalyze/internal/grades"
	"github.com/mcggEz/gradalyze/internal/users"
	"github.com/mcggEz/gradalyze/internal/workflow"
)

func ptr(v float64) *float64 {
	return &v
}

func sampleDossier() *Dossier {
	now := time.Now()
	primary := "investigative"
	rows := []grades.Row{
		{ID: 1, CourseCode: "CS 101", CourseTitle: "Intro to Computing", Units: 3, Grade: ptr(1.25), Semester: "1st Sem 2022", Category: "Major"},
		{ID: 2, CourseCode: "GE 1", CourseTitle: "Ethics", Units: 3, Grade: ptr(2.75), Semester: "1st Sem 2022", Category: "General"},
	}
	user := &users.User{
		Name:                             "Juan dela Cruz",
		Email:                            "student@plm.edu.ph",
		ArchetypeInvestigativePercentage: ptr(72.5),
		PrimaryArchetype:                 &primary,
		ArchetypeAnalyzedAt:              &now,
		GradeRows:                        rows,
	}
	return &Dossier{
		User: user,
		Grades: &users.GradeTable{
			Rows:      rows,
			Semesters: grades.GroupBySemester(rows),
			Summary:   grades.Summarize(rows),
		},
		Workflow: workflow.Derive(user),
		Companies: []engine.Company{
			{Name: "Acme Analytics", Industry: "Software", Location: "Makati", MatchPercentage: 87.5},
		},
	}
}

func TestRenderExcel(t *testing.T) {
	data, err := renderExcel(sampleDossier())
	if err != nil {
		t.Fatal(err)
	}
	if len(data) == 0 {
		t.Fatal("expected workbook bytes")
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("workbook does not open: %v", err)
	}
	defer f.Close()

	for _, sheet := range []string{"Grades", "Archetype", "Companies"} {
		if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
			t.Errorf("missing sheet %q", sheet)
		}
	}

	title, err := f.GetCellValue("Grades", "A1")
	if err != nil {
		t.Fatal(err)
	}
	if title != "Academic Record - Juan dela Cruz" {
		t.Errorf("unexpected title %q", title)
	}

	company, err := f.GetCellValue("Companies", "A2")
	if err != nil {
		t.Fatal(err)
	}
	if company != "Acme Analytics" {
		t.Errorf("unexpected company cell %q", company)
	}
}

func TestExportFilename(t *testing.T) {
	tests := []struct {
		name string
		user users.User
		want string
	}{
		{"normalizes spaces and case", users.User{Name: "Juan dela Cruz"}, "dossier-juan-dela-cruz.xlsx"},
		{"falls back for empty name", users.User{}, "dossier-student.xlsx"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := exportFilename(&tc.user); got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
		})
	}
}
