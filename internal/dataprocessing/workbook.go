package dataprocessing

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"pgcetcli/pkg/contracts/domain"
)

// ParseWorkbook reads the first sheet of an .xlsx workbook
func (p *Parser) ParseWorkbook(filePath string) (*domain.ParseReport, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	return p.parseWorkbook(f)
}

// ParseWorkbookReader reads the first sheet of an .xlsx workbook from r
func (p *Parser) ParseWorkbookReader(r io.Reader) (*domain.ParseReport, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	return p.parseWorkbook(f)
}

func (p *Parser) parseWorkbook(f *excelize.File) (*domain.ParseReport, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, newTooFewLinesError()
	}

	sheetName := sheets[0]
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheetName, err)
	}

	p.logger.Debug("Reading seat data from workbook",
		slog.String("sheet_name", sheetName),
		slog.Int("total_rows", len(rows)))

	return p.ParseRows(rows)
}
