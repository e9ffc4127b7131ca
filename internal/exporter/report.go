package exporter

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"pgcetcli/pkg/contracts/domain"
)

// Write renders result in the given format
func Write(w io.Writer, format Format, result *domain.AnalysisResult) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, result)
	case FormatXLSX:
		return WriteXLSX(w, result)
	case FormatText:
		return WriteSummary(w, result, SummaryOptions{})
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// ReportExporter writes report files into a directory
type ReportExporter struct {
	outputDir string
	logger    *slog.Logger
}

// NewReportExporter creates an exporter rooted at outputDir
func NewReportExporter(outputDir string, logger *slog.Logger) *ReportExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportExporter{
		outputDir: outputDir,
		logger:    logger.With(slog.String("component", "report_exporter")),
	}
}

// Export writes one report file named <baseName>_report.<ext> and
// returns its path. CSV files start with a UTF-8 BOM for Excel.
func (e *ReportExporter) Export(baseName string, format Format, result *domain.AnalysisResult) (string, error) {
	if err := os.MkdirAll(e.outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	path := filepath.Join(e.outputDir, fmt.Sprintf("%s_report.%s", baseName, format.Extension()))
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if format == FormatCSV {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return "", fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	if err := Write(file, format, result); err != nil {
		return "", err
	}

	e.logger.Info("Report written",
		slog.String("format", string(format)),
		slog.String("path", path))

	return path, nil
}

// ExportAll writes the report in every format and returns the paths
func (e *ReportExporter) ExportAll(baseName string, result *domain.AnalysisResult) ([]string, error) {
	var paths []string
	for _, format := range []Format{FormatCSV, FormatXLSX, FormatText} {
		path, err := e.Export(baseName, format, result)
		if err != nil {
			return paths, fmt.Errorf("failed to export %s report: %w", format, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
