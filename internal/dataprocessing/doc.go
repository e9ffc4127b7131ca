// Package dataprocessing reads PGCET seat allocation datasets into domain
// records.
//
// # Input Contract
//
// The first row is a header. Columns are located by case-insensitive
// substring match on the trimmed header cell, first match wins:
//
//	year             contains "year"                 (required)
//	course           contains "course"               (required)
//	total seats      contains "total" and "seat"     (required)
//	seats filled     contains "fill"                 (required)
//	vacant seats     contains "vacant"               (optional)
//	exam cost        contains "exam" and "cost"      (optional)
//	stress index     contains "stress"               (optional)
//
// A missing required column, or fewer than two lines, fails the whole
// batch with a *FormatError. Anything wrong inside a single row only drops
// that row; the outcome is recorded in the returned domain.ParseReport.
//
// # Usage
//
//	report, err := dataprocessing.Parse(text)
//	if errors.Is(err, dataprocessing.ErrFormat) {
//	    // header problem
//	}
//	for _, row := range report.Dropped() {
//	    fmt.Println(row.Line, row.Reason)
//	}
//
// Excel workbooks go through the same contract:
//
//	report, err := dataprocessing.NewParser(logger).ParseWorkbook("seats.xlsx")
package dataprocessing
