// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"errors"
	"math"
)

// ErrDivisionByZero is returned by SafeDivide for a zero or non-finite divisor.
var ErrDivisionByZero = errors.New("division by zero")

// Round rounds a value to two decimals for presentation and comparisons.
func Round(val float64) float64 {
	return math.Round(val*100) / 100
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// IsFinite reports whether val is neither NaN nor infinite.
func IsFinite(val float64) bool {
	return !math.IsNaN(val) && !math.IsInf(val, 0)
}

// SafeDivide divides numerator by denominator, refusing a divisor that would
// produce NaN or infinity.
func SafeDivide(numerator, denominator float64) (float64, error) {
	if denominator == 0 || !IsFinite(denominator) {
		return 0, ErrDivisionByZero
	}
	return numerator / denominator, nil
}

// Saturate maps a constant daily rate sustained over days to a bounded gain:
// limit * (1 - e^(-|rate|*days/tau)), carrying the sign of rate. The magnitude
// never decreases as days grows and never exceeds limit.
func Saturate(rate, days, tau, limit float64) float64 {
	if tau <= 0 || limit <= 0 || days <= 0 || rate == 0 {
		return 0
	}
	gain := limit * -math.Expm1(-math.Abs(rate)*days/tau)
	if rate < 0 {
		return -gain
	}
	return gain
}
