package exporter

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"pgcetcli/pkg/contracts/domain"
)

// SummaryOptions adjusts the plain text summary
type SummaryOptions struct {
	Title string
	// VerdictStyle decorates the verdict label, e.g. with terminal colour
	VerdictStyle func(domain.Verdict) string
}

func rateText(r domain.Rate) string {
	if !r.IsFinite() {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", r.Float64())
}

// WriteSummary renders a human-readable report
func WriteSummary(w io.Writer, result *domain.AnalysisResult, opts SummaryOptions) error {
	title := opts.Title
	if title == "" {
		title = "PGCET Seat Efficiency Report"
	}
	verdict := result.Verdict.String()
	if opts.VerdictStyle != nil {
		verdict = opts.VerdictStyle(result.Verdict)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%s\n\n", title, strings.Repeat("=", len(title)))
	fmt.Fprintf(&b, "Score:    %.1f / 100\n", result.EfficiencyScore)
	fmt.Fprintf(&b, "Verdict:  %s\n", verdict)
	fmt.Fprintf(&b, "Records:  %d", result.RecordCount)
	if result.DroppedRows > 0 {
		fmt.Fprintf(&b, " (%d rows dropped)", result.DroppedRows)
	}
	b.WriteString("\n\n")

	m := result.Metrics
	b.WriteString("Metrics\n")
	fmt.Fprintf(&b, "  Overall fill rate      %s\n", rateText(m.OverallFillRate))
	fmt.Fprintf(&b, "  Overall vacancy rate   %s\n", rateText(m.OverallVacancyRate))
	fmt.Fprintf(&b, "  Avg exam cost          %.0f\n", m.AvgExamCost)
	fmt.Fprintf(&b, "  Avg stress index       %.2f\n", m.AvgStressIndex)
	fmt.Fprintf(&b, "  Year-over-year trend   %s\n\n", rateText(m.YearOverYearTrend))

	b.WriteString("Findings\n")
	if len(result.Reasons) == 0 {
		b.WriteString("  (none)\n")
	}
	for _, reason := range result.Reasons {
		fmt.Fprintf(&b, "  - %s\n", reason)
	}
	b.WriteString("\n")

	if _, err := io.WriteString(w, b.String()); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Course\tTotal\tFilled\tFill\tVacancy")
	for _, c := range result.CourseStats {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%s\n", c.Course, c.TotalSeats, c.SeatsFilled,
			rateText(c.FillPercentage), rateText(c.VacancyRate))
	}
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "Year\tTotal\tFilled\tVacant\tAvg fill")
	for _, y := range result.YearStats {
		fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%s\n", y.Year, y.TotalSeats, y.TotalFilled, y.VacantSeats,
			rateText(y.AvgFillPercentage))
	}

	return tw.Flush()
}
