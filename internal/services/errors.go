package services

import "errors"

var (
	// ErrInvalidInput reports a request the service cannot act on
	ErrInvalidInput = errors.New("invalid input")
)
