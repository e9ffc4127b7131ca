package dataprocessing

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"pgcetcli/pkg/contracts/domain"
)

// Parser turns tabular seat data into SeatRecords. A Parser holds no
// per-call state and may be shared between goroutines.
type Parser struct {
	logger *slog.Logger
}

// NewParser creates a parser that reports dropped rows through logger
func NewParser(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{
		logger: logger.With(slog.String("component", "parser")),
	}
}

// Parse reads CSV text with the package default parser
func Parse(text string) (*domain.ParseReport, error) {
	return NewParser(nil).Parse(text)
}

// ParseRecords reads CSV text and returns only the surviving records
func ParseRecords(text string) ([]domain.SeatRecord, error) {
	report, err := Parse(text)
	if err != nil {
		return nil, err
	}
	return report.Records, nil
}

// ParseReader reads all of r and parses it as CSV text
func (p *Parser) ParseReader(r io.Reader) (*domain.ParseReport, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read seat data: %w", err)
	}
	return p.Parse(string(data))
}

// Parse reads CSV text. The first line is the header; every later line is
// split on commas. Fields are not quote-aware.
func (p *Parser) Parse(text string) (*domain.ParseReport, error) {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) < 2 {
		return nil, newTooFewLinesError()
	}

	rows := make([][]string, len(lines))
	for i, line := range lines {
		rows[i] = strings.Split(line, ",")
	}

	return p.ParseRows(rows)
}

// ParseRows applies the header and row contract to pre-tokenized rows.
// rows[0] is the header.
func (p *Parser) ParseRows(rows [][]string) (*domain.ParseReport, error) {
	if len(rows) < 2 {
		return nil, newTooFewLinesError()
	}

	cols, err := discoverColumns(rows[0])
	if err != nil {
		return nil, err
	}

	report := &domain.ParseReport{
		Records: make([]domain.SeatRecord, 0, len(rows)-1),
		Rows:    make([]domain.RowOutcome, 0, len(rows)-1),
	}

	for i := 1; i < len(rows); i++ {
		line := i + 1
		values := trimFields(rows[i])
		if isBlankRow(values) {
			continue
		}

		record, note, err := parseRow(values, cols)
		if err != nil {
			p.logger.Warn("Skipping invalid row",
				slog.Int("line", line),
				slog.String("reason", err.Error()))
			report.Rows = append(report.Rows, domain.RowOutcome{
				Line:   line,
				Kept:   false,
				Reason: err.Error(),
			})
			continue
		}

		report.Records = append(report.Records, record)
		report.Rows = append(report.Rows, domain.RowOutcome{
			Line:   line,
			Kept:   true,
			Reason: note,
		})
	}

	p.logger.Debug("Seat data parsed",
		slog.Int("records", len(report.Records)),
		slog.Int("dropped", report.DroppedCount()))

	return report, nil
}

// parseRow builds one record. Only year, total and filled are fatal to
// the row; note describes a non-fatal correction.
func parseRow(values []string, cols columnMap) (domain.SeatRecord, string, error) {
	year, err := parseLeadingInt(field(values, cols.year))
	if err != nil {
		return domain.SeatRecord{}, "", fmt.Errorf("invalid year %q: %w", field(values, cols.year), err)
	}
	total, err := parseLeadingInt(field(values, cols.total))
	if err != nil {
		return domain.SeatRecord{}, "", fmt.Errorf("invalid total seats %q: %w", field(values, cols.total), err)
	}
	filled, err := parseLeadingInt(field(values, cols.filled))
	if err != nil {
		return domain.SeatRecord{}, "", fmt.Errorf("invalid seats filled %q: %w", field(values, cols.filled), err)
	}

	var note string
	vacant := total - filled
	if cols.vacant >= 0 {
		if v, err := parseLeadingInt(field(values, cols.vacant)); err == nil {
			vacant = v
		} else {
			note = fmt.Sprintf("vacant seats %q unusable (%v), computed as total minus filled", field(values, cols.vacant), err)
		}
	}

	record := domain.SeatRecord{
		Year:        year,
		Course:      field(values, cols.course),
		TotalSeats:  total,
		SeatsFilled: filled,
		VacantSeats: vacant,
	}
	if cols.cost >= 0 {
		record.AvgExamCost = parseLeadingFloat(field(values, cols.cost))
	}
	if cols.stress >= 0 {
		record.StudentStressIndex = parseLeadingFloat(field(values, cols.stress))
	}

	return record, note, nil
}

func trimFields(values []string) []string {
	trimmed := make([]string, len(values))
	for i, v := range values {
		trimmed[i] = strings.TrimSpace(v)
	}
	return trimmed
}

// isBlankRow reports a line holding a single empty token. Workbook rows
// may also arrive with no cells at all.
func isBlankRow(values []string) bool {
	return len(values) == 0 || (len(values) == 1 && values[0] == "")
}
