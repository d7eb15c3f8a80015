package dossier

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/mcggEz/gradalyze/internal/grades"
)

// Fill colors per grade band on the lower-is-better scale.
var bandColors = map[string]string{
	"excellent": "C6EFCE",
	"good":      "DDEBF7",
	"fair":      "FFEB9C",
	"poor":      "FFC7CE",
}

func renderExcel(d *Dossier) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	gradesSheet := "Grades"
	archetypeSheet := "Archetype"
	companiesSheet := "Companies"

	f.SetSheetName("Sheet1", gradesSheet)
	f.NewSheet(archetypeSheet)
	f.NewSheet(companiesSheet)

	if err := buildGradesSheet(f, gradesSheet, d); err != nil {
		return nil, fmt.Errorf("grades sheet: %w", err)
	}
	if err := buildArchetypeSheet(f, archetypeSheet, d); err != nil {
		return nil, fmt.Errorf("archetype sheet: %w", err)
	}
	if err := buildCompaniesSheet(f, companiesSheet, d); err != nil {
		return nil, fmt.Errorf("companies sheet: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func buildGradesSheet(f *excelize.File, sheet string, d *Dossier) error {
	f.SetColWidth(sheet, "A", "A", 15)
	f.SetColWidth(sheet, "B", "B", 45)
	f.SetColWidth(sheet, "C", "E", 12)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	if err != nil {
		return err
	}

	semesterStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"D9D9D9"}, Pattern: 1},
	})
	if err != nil {
		return err
	}

	bandStyles := map[string]int{}
	for band, color := range bandColors {
		style, err := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
		})
		if err != nil {
			return err
		}
		bandStyles[band] = style
	}

	row := 1
	f.SetCellValue(sheet, cell("A", row), fmt.Sprintf("Academic Record - %s", d.User.Name))
	f.SetCellStyle(sheet, cell("A", row), cell("E", row), headerStyle)
	f.MergeCell(sheet, cell("A", row), cell("E", row))
	row++

	f.SetCellValue(sheet, cell("A", row), "Generated:")
	f.SetCellValue(sheet, cell("B", row), time.Now().Format("2006-01-02 15:04:05"))
	row += 2

	for _, group := range d.Grades.Semesters {
		f.SetCellValue(sheet, cell("A", row), group.Semester)
		f.SetCellStyle(sheet, cell("A", row), cell("E", row), semesterStyle)
		f.MergeCell(sheet, cell("A", row), cell("E", row))
		row++

		headers := []string{"Code", "Title", "Units", "Grade", "Category"}
		for i, h := range headers {
			f.SetCellValue(sheet, cell(column(i), row), h)
		}
		f.SetCellStyle(sheet, cell("A", row), cell("E", row), headerStyle)
		row++

		for _, gradeRow := range group.Rows {
			f.SetCellValue(sheet, cell("A", row), gradeRow.CourseCode)
			f.SetCellValue(sheet, cell("B", row), gradeRow.CourseTitle)
			f.SetCellValue(sheet, cell("C", row), gradeRow.Units)
			f.SetCellValue(sheet, cell("D", row), gradeLabel(gradeRow))
			f.SetCellValue(sheet, cell("E", row), gradeRow.Category)

			if gradeRow.Grade != nil {
				band := grades.Band(*gradeRow.Grade)
				f.SetCellStyle(sheet, cell("A", row), cell("E", row), bandStyles[band])
			}
			row++
		}

		f.SetCellValue(sheet, cell("B", row), "Semester totals")
		f.SetCellValue(sheet, cell("C", row), group.TotalUnits)
		f.SetCellValue(sheet, cell("D", row), group.GPA)
		row += 2
	}

	f.SetCellValue(sheet, cell("B", row), "Overall")
	f.SetCellValue(sheet, cell("C", row), d.Grades.Summary.TotalUnits)
	f.SetCellValue(sheet, cell("D", row), d.Grades.Summary.GPA)
	f.SetCellStyle(sheet, cell("A", row), cell("E", row), semesterStyle)

	return nil
}

func buildArchetypeSheet(f *excelize.File, sheet string, d *Dossier) error {
	f.SetColWidth(sheet, "A", "A", 20)
	f.SetColWidth(sheet, "B", "B", 18)

	labelStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return err
	}

	axes := []struct {
		name  string
		value *float64
	}{
		{"Realistic", d.User.ArchetypeRealisticPercentage},
		{"Investigative", d.User.ArchetypeInvestigativePercentage},
		{"Artistic", d.User.ArchetypeArtisticPercentage},
		{"Social", d.User.ArchetypeSocialPercentage},
		{"Enterprising", d.User.ArchetypeEnterprisingPercentage},
		{"Conventional", d.User.ArchetypeConventionalPercentage},
	}

	row := 1
	f.SetCellValue(sheet, cell("A", row), "Axis")
	f.SetCellValue(sheet, cell("B", row), "Match Score")
	f.SetCellStyle(sheet, cell("A", row), cell("B", row), labelStyle)
	row++

	for _, axis := range axes {
		f.SetCellValue(sheet, cell("A", row), axis.name)
		if axis.value != nil {
			f.SetCellValue(sheet, cell("B", row), *axis.value)
		} else {
			f.SetCellValue(sheet, cell("B", row), "N/A")
		}
		row++
	}
	row++

	f.SetCellValue(sheet, cell("A", row), "Primary Archetype:")
	f.SetCellStyle(sheet, cell("A", row), cell("A", row), labelStyle)
	if d.User.PrimaryArchetype != nil {
		f.SetCellValue(sheet, cell("B", row), *d.User.PrimaryArchetype)
	}
	row++

	f.SetCellValue(sheet, cell("A", row), "Analyzed At:")
	f.SetCellStyle(sheet, cell("A", row), cell("A", row), labelStyle)
	if d.User.ArchetypeAnalyzedAt != nil {
		f.SetCellValue(sheet, cell("B", row), d.User.ArchetypeAnalyzedAt.Format("2006-01-02 15:04:05"))
	}

	return nil
}

func buildCompaniesSheet(f *excelize.File, sheet string, d *Dossier) error {
	f.SetColWidth(sheet, "A", "A", 30)
	f.SetColWidth(sheet, "B", "C", 20)
	f.SetColWidth(sheet, "D", "D", 14)

	labelStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return err
	}

	headers := []string{"Company", "Industry", "Location", "Match %"}
	for i, h := range headers {
		f.SetCellValue(sheet, cell(column(i), 1), h)
	}
	f.SetCellStyle(sheet, cell("A", 1), cell("D", 1), labelStyle)

	for i, company := range d.Companies {
		row := i + 2
		f.SetCellValue(sheet, cell("A", row), company.Name)
		f.SetCellValue(sheet, cell("B", row), company.Industry)
		f.SetCellValue(sheet, cell("C", row), company.Location)
		f.SetCellValue(sheet, cell("D", row), company.MatchPercentage)
	}

	return nil
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

func column(i int) string {
	return string(rune('A' + i))
}
