package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/fatih/color"

	"pgcetcli/internal/exporter"
	"pgcetcli/pkg/contracts/domain"
)

// fileReport is the outcome of analyzing one dataset
type fileReport struct {
	Path    string
	Result  *domain.AnalysisResult
	Exports []string
	Err     error
}

// fileReportJSON is the JSON form of fileReport
type fileReportJSON struct {
	File    string                 `json:"file"`
	Result  *domain.AnalysisResult `json:"result,omitempty"`
	Exports []string               `json:"exports,omitempty"`
	Error   string                 `json:"error,omitempty"`
}

// writeJSON prints the reports as an indented JSON array
func writeJSON(w io.Writer, reports []fileReport) error {
	out := make([]fileReportJSON, 0, len(reports))
	for _, report := range reports {
		item := fileReportJSON{
			File:    report.Path,
			Result:  report.Result,
			Exports: report.Exports,
		}
		if report.Err != nil {
			item.Error = report.Err.Error()
		}
		out = append(out, item)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(out); err != nil {
		return fmt.Errorf("error encoding JSON: %w", err)
	}
	return nil
}

// writeText prints a summary for every analyzed file. Failed files are
// reported separately on stderr.
func writeText(w io.Writer, reports []fileReport) error {
	first := true
	for _, report := range reports {
		if report.Result == nil {
			continue
		}
		if !first {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		first = false

		err := exporter.WriteSummary(w, report.Result, exporter.SummaryOptions{
			Title:        "Seat Efficiency Report: " + filepath.Base(report.Path),
			VerdictStyle: verdictStyle,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// verdictStyle colours the verdict by severity
func verdictStyle(v domain.Verdict) string {
	switch v {
	case domain.VerdictEfficient:
		return color.New(color.FgGreen, color.Bold).Sprint(v.String())
	case domain.VerdictModeratelyEfficient:
		return color.New(color.FgYellow, color.Bold).Sprint(v.String())
	default:
		return color.New(color.FgRed, color.Bold).Sprint(v.String())
	}
}

func errorLabel() string {
	return color.RedString("error:")
}
