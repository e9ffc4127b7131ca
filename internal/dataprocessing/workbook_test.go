package dataprocessing

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"pgcetcli/internal/shared/testutil"
)

// writeWorkbook builds a single-sheet workbook from CSV text
func writeWorkbook(t *testing.T, csvText string) *excelize.File {
	t.Helper()

	f := excelize.NewFile()
	sheetName := f.GetSheetName(0)
	for i, line := range strings.Split(strings.TrimSpace(csvText), "\n") {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		row := make([]interface{}, 0)
		for _, v := range strings.Split(line, ",") {
			row = append(row, v)
		}
		require.NoError(t, f.SetSheetRow(sheetName, cell, &row))
	}
	return f
}

func TestParseWorkbookMatchesCSV(t *testing.T) {
	f := writeWorkbook(t, testutil.SampleSeatCSV)
	path := filepath.Join(t.TempDir(), "seats.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	fromCSV, err := Parse(testutil.SampleSeatCSV)
	require.NoError(t, err)

	fromWorkbook, err := NewParser(nil).ParseWorkbook(path)
	require.NoError(t, err)

	assert.Equal(t, fromCSV.Records, fromWorkbook.Records)
	assert.Equal(t, fromCSV.Rows, fromWorkbook.Rows)
}

func TestParseWorkbookReader(t *testing.T) {
	f := writeWorkbook(t, "Year,Course,Total_Seats,Seats_Filled\n2023,MBA,50,40\nbad,MCA,60,30")
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	report, err := NewParser(nil).ParseWorkbookReader(&buf)
	require.NoError(t, err)
	require.Len(t, report.Records, 1)
	assert.Equal(t, 10, report.Records[0].VacantSeats)
	assert.Equal(t, 1, report.DroppedCount())
}

func TestParseWorkbookFormatError(t *testing.T) {
	f := writeWorkbook(t, "Year,Course,Total_Seats\n2023,MBA,50")
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	_, err := NewParser(nil).ParseWorkbookReader(&buf)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFormat))
}

func TestParseWorkbookInvalidFile(t *testing.T) {
	path := testutil.WriteTempFile(t, "broken.xlsx", "not a workbook")

	_, err := NewParser(nil).ParseWorkbook(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open workbook")
	assert.False(t, errors.Is(err, ErrFormat))
}
