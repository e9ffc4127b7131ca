package domain

import (
	"math"
	"strconv"
)

// Rate is a percentage-valued figure. Groups with zero seats produce NaN or
// Inf, which encode as JSON null.
type Rate float64

// Float64 returns the underlying value
func (r Rate) Float64() float64 {
	return float64(r)
}

// IsFinite reports whether the rate is neither NaN nor infinite
func (r Rate) IsFinite() bool {
	f := float64(r)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// MarshalJSON implements json.Marshaler
func (r Rate) MarshalJSON() ([]byte, error) {
	if !r.IsFinite() {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, float64(r), 'f', -1, 64), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (r *Rate) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*r = Rate(math.NaN())
		return nil
	}
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return err
	}
	*r = Rate(f)
	return nil
}
