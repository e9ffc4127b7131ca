package dataprocessing

import (
	"errors"
	"regexp"
	"strconv"
)

var (
	errNotInteger   = errors.New("no leading integer")
	errIntegerRange = errors.New("integer out of range")
)

var (
	leadingInteger = regexp.MustCompile(`^[+-]?\d+`)
	leadingDecimal = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)
)

// parseLeadingInt reads the integer prefix of s. Trailing characters are
// ignored, so "2023abc" reads as 2023 and "12.7" as 12. A prefix that does
// not fit in an int reports errIntegerRange.
func parseLeadingInt(s string) (int, error) {
	digits := leadingInteger.FindString(s)
	if digits == "" {
		return 0, errNotInteger
	}
	n, err := strconv.Atoi(digits)
	if errors.Is(err, strconv.ErrRange) {
		return 0, errIntegerRange
	}
	if err != nil {
		return 0, errNotInteger
	}
	return n, nil
}

// parseLeadingFloat reads the longest decimal literal at the start of s,
// so "4500 INR" reads as 4500. Returns nil when nothing numeric leads.
func parseLeadingFloat(s string) *float64 {
	literal := leadingDecimal.FindString(s)
	if literal == "" {
		return nil
	}
	f, err := strconv.ParseFloat(literal, 64)
	if err != nil {
		return nil
	}
	return &f
}
