package exporter

import (
	"errors"
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"pgcetcli/pkg/contracts/domain"
)

// ErrUnknownFormat is returned for an unsupported report format
var ErrUnknownFormat = errors.New("unknown report format")

// CourseRow is one line of the course statistics table
type CourseRow struct {
	Course         string `csv:"course"`
	TotalSeats     int    `csv:"total_seats"`
	SeatsFilled    int    `csv:"seats_filled"`
	FillPercentage string `csv:"fill_percentage"`
	VacancyRate    string `csv:"vacancy_rate"`
}

// YearRow is one line of the year statistics table
type YearRow struct {
	Year              int    `csv:"year"`
	TotalSeats        int    `csv:"total_seats"`
	TotalFilled       int    `csv:"total_filled"`
	VacantSeats       int    `csv:"vacant_seats"`
	AvgFillPercentage string `csv:"avg_fill_percentage"`
}

// SummaryRow is one metric, verdict or finding line
type SummaryRow struct {
	Metric string `csv:"metric"`
	Value  string `csv:"value"`
}

// CourseRows converts course statistics to table rows
func CourseRows(result *domain.AnalysisResult) []CourseRow {
	rows := make([]CourseRow, 0, len(result.CourseStats))
	for _, c := range result.CourseStats {
		rows = append(rows, CourseRow{
			Course:         c.Course,
			TotalSeats:     c.TotalSeats,
			SeatsFilled:    c.SeatsFilled,
			FillPercentage: formatRate(c.FillPercentage),
			VacancyRate:    formatRate(c.VacancyRate),
		})
	}
	return rows
}

// YearRows converts year statistics to table rows
func YearRows(result *domain.AnalysisResult) []YearRow {
	rows := make([]YearRow, 0, len(result.YearStats))
	for _, y := range result.YearStats {
		rows = append(rows, YearRow{
			Year:              y.Year,
			TotalSeats:        y.TotalSeats,
			TotalFilled:       y.TotalFilled,
			VacantSeats:       y.VacantSeats,
			AvgFillPercentage: formatRate(y.AvgFillPercentage),
		})
	}
	return rows
}

// SummaryRows lists the score, verdict, metrics and each finding
func SummaryRows(result *domain.AnalysisResult) []SummaryRow {
	m := result.Metrics
	rows := []SummaryRow{
		{Metric: "efficiency_score", Value: formatFloat(result.EfficiencyScore)},
		{Metric: "verdict", Value: result.Verdict.String()},
		{Metric: "overall_fill_rate", Value: formatRate(m.OverallFillRate)},
		{Metric: "overall_vacancy_rate", Value: formatRate(m.OverallVacancyRate)},
		{Metric: "avg_exam_cost", Value: formatFloat(m.AvgExamCost)},
		{Metric: "avg_stress_index", Value: formatFloat(m.AvgStressIndex)},
		{Metric: "year_over_year_trend", Value: formatRate(m.YearOverYearTrend)},
		{Metric: "record_count", Value: formatInt(result.RecordCount)},
		{Metric: "dropped_rows", Value: formatInt(result.DroppedRows)},
	}
	for _, reason := range result.Reasons {
		rows = append(rows, SummaryRow{Metric: "finding", Value: reason})
	}
	return rows
}

// WriteCSV writes the report as three CSV tables separated by a blank
// line: summary, course statistics, year statistics
func WriteCSV(w io.Writer, result *domain.AnalysisResult) error {
	summary := SummaryRows(result)
	if err := gocsv.Marshal(&summary, w); err != nil {
		return fmt.Errorf("failed to write summary table: %w", err)
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return err
	}

	courses := CourseRows(result)
	if err := gocsv.Marshal(&courses, w); err != nil {
		return fmt.Errorf("failed to write course table: %w", err)
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return err
	}

	years := YearRows(result)
	if err := gocsv.Marshal(&years, w); err != nil {
		return fmt.Errorf("failed to write year table: %w", err)
	}

	return nil
}
