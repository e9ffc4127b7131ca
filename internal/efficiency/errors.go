package efficiency

import "errors"

// ErrEmptyInput is returned when there are no records to analyze, which
// includes a parse in which every row was dropped
var ErrEmptyInput = errors.New("no data to analyze")

// EmptyInputError carries the number of rows dropped before analysis
type EmptyInputError struct {
	DroppedRows int
}

// Error implements the error interface
func (e *EmptyInputError) Error() string {
	if e.DroppedRows > 0 {
		return ErrEmptyInput.Error() + ": every data row was invalid"
	}
	return ErrEmptyInput.Error()
}

// Unwrap returns ErrEmptyInput
func (e *EmptyInputError) Unwrap() error {
	return ErrEmptyInput
}
