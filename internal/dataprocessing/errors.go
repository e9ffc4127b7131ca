package dataprocessing

import (
	"errors"
	"fmt"
	"strings"
)

// ErrFormat is the sentinel wrapped by every batch-fatal parse failure
var ErrFormat = errors.New("invalid seat data format")

// FormatError reports an input that cannot be parsed at all.
// Requirement names the unmet condition; Missing lists absent columns.
type FormatError struct {
	Requirement string   `json:"requirement"`
	Missing     []string `json:"missing,omitempty"`
}

// Error implements the error interface
func (e *FormatError) Error() string {
	if e == nil {
		return ErrFormat.Error()
	}
	if len(e.Missing) > 0 {
		return fmt.Sprintf("%s (missing: %s)", e.Requirement, strings.Join(e.Missing, ", "))
	}
	return e.Requirement
}

// Unwrap returns ErrFormat so callers can match with errors.Is
func (e *FormatError) Unwrap() error {
	return ErrFormat
}

func newTooFewLinesError() *FormatError {
	return &FormatError{Requirement: "CSV must have at least a header and one data row"}
}

func newMissingColumnsError(missing []string) *FormatError {
	return &FormatError{
		Requirement: "CSV must contain: Year, Course, Total_Seats, Seats_Filled columns",
		Missing:     missing,
	}
}
