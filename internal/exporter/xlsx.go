package exporter

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"pgcetcli/pkg/contracts/domain"
)

// Workbook sheet names
const (
	SummarySheet = "Summary"
	CoursesSheet = "Courses"
	YearsSheet   = "Years"
)

// rateCell returns the rate as a number, or nil for an undefined rate so
// the cell stays empty
func rateCell(r domain.Rate) interface{} {
	if !r.IsFinite() {
		return nil
	}
	return r.Float64()
}

// BuildWorkbook lays the report out over three sheets
func BuildWorkbook(result *domain.AnalysisResult) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName(f.GetSheetName(0), SummarySheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	for _, name := range []string{CoursesSheet, YearsSheet} {
		if _, err := f.NewSheet(name); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to create sheet %s: %w", name, err)
		}
	}

	summary := [][]interface{}{{"Metric", "Value"}}
	for _, row := range SummaryRows(result) {
		summary = append(summary, []interface{}{row.Metric, row.Value})
	}

	courses := [][]interface{}{{"Course", "Total Seats", "Seats Filled", "Fill %", "Vacancy %"}}
	for _, c := range result.CourseStats {
		courses = append(courses, []interface{}{
			c.Course, c.TotalSeats, c.SeatsFilled, rateCell(c.FillPercentage), rateCell(c.VacancyRate),
		})
	}

	years := [][]interface{}{{"Year", "Total Seats", "Total Filled", "Vacant Seats", "Avg Fill %"}}
	for _, y := range result.YearStats {
		years = append(years, []interface{}{
			y.Year, y.TotalSeats, y.TotalFilled, y.VacantSeats, rateCell(y.AvgFillPercentage),
		})
	}

	for sheet, rows := range map[string][][]interface{}{
		SummarySheet: summary,
		CoursesSheet: courses,
		YearsSheet:   years,
	} {
		if err := writeSheetRows(f, sheet, rows); err != nil {
			f.Close()
			return nil, err
		}
	}

	return f, nil
}

func writeSheetRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := row
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

// WriteXLSX writes the report workbook to w
func WriteXLSX(w io.Writer, result *domain.AnalysisResult) error {
	f, err := BuildWorkbook(result)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
