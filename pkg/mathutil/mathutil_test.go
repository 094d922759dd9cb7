package mathutil

import (
	"errors"
	"math"
	"testing"
)

func TestRound(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"Round down below midpoint", 1.234, 1.23},
		{"No rounding needed", 1.23, 1.23},
		{"Negative number round down", -1.234, -1.23},
		{"Zero", 0.0, 0.0},
		{"Large number", 12345.678, 12345.68},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Round(tt.input)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("Round(%v) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestWithinTolerance(t *testing.T) {
	tests := []struct {
		name      string
		val1      float64
		val2      float64
		tolerance float64
		expected  bool
	}{
		{"Exactly equal", 1.0, 1.0, 0.1, true},
		{"Within tolerance", 1.0, 1.05, 0.1, true},
		{"Outside tolerance", 1.0, 1.15, 0.1, false},
		{"Negative values within tolerance", -1.0, -1.05, 0.1, true},
		{"Zero tolerance exact match", 1.0, 1.0, 0.0, true},
		{"Zero tolerance no match", 1.0, 1.001, 0.0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := WithinTolerance(tt.val1, tt.val2, tt.tolerance)
			if result != tt.expected {
				t.Errorf("WithinTolerance(%v, %v, %v) = %v, expected %v",
					tt.val1, tt.val2, tt.tolerance, result, tt.expected)
			}
		})
	}
}

func TestSafeDivide(t *testing.T) {
	got, err := SafeDivide(3500, 14)
	if err != nil {
		t.Fatalf("SafeDivide() error = %v", err)
	}
	if math.Abs(got-250) > 1e-9 {
		t.Errorf("SafeDivide(3500, 14) = %v, expected 250", got)
	}

	for _, denominator := range []float64{0, math.Inf(1), math.NaN()} {
		if _, err := SafeDivide(1, denominator); !errors.Is(err, ErrDivisionByZero) {
			t.Errorf("SafeDivide(1, %v) error = %v, expected ErrDivisionByZero", denominator, err)
		}
	}
}

func TestSaturate(t *testing.T) {
	tests := []struct {
		name     string
		rate     float64
		days     float64
		tau      float64
		limit    float64
		expected float64
	}{
		{"One time constant", 10, 60, 600, 50, 50 * (1 - math.Exp(-1))},
		{"Zero days", 10, 0, 600, 50, 0},
		{"Zero rate", 0, 90, 600, 50, 0},
		{"Negative rate mirrors", -10, 60, 600, 50, -50 * (1 - math.Exp(-1))},
		{"Invalid tau", 10, 60, 0, 50, 0},
		{"Invalid limit", 10, 60, 600, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Saturate(tt.rate, tt.days, tt.tau, tt.limit)
			if math.Abs(result-tt.expected) > 1e-9 {
				t.Errorf("Saturate() = %v, expected %v", result, tt.expected)
			}
		})
	}
}

func TestSaturateIsBoundedAndMonotonic(t *testing.T) {
	previous := 0.0
	for days := 1.0; days <= 100000; days *= 2 {
		got := Saturate(25, days, 600, 50)
		if got < previous {
			t.Fatalf("Saturate decreased at %v days: %v < %v", days, got, previous)
		}
		if got > 50 {
			t.Fatalf("Saturate exceeded its limit at %v days: %v", days, got)
		}
		previous = got
	}
}

func TestIsFinite(t *testing.T) {
	if !IsFinite(1.5) {
		t.Error("expected 1.5 to be finite")
	}
	if IsFinite(math.NaN()) || IsFinite(math.Inf(-1)) {
		t.Error("expected NaN and -Inf to be non-finite")
	}
}
