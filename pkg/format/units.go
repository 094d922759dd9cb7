// Package format renders numbers for human-readable messages.
package format

import (
	"fmt"
	"math"
	"strings"
)

// Calories returns a whole-calorie string with thousands separators (e.g., "1,250 kcal").
func Calories(amount float64) string {
	return group(fmt.Sprintf("%.0f", math.Abs(amount)), sign(amount, 0)) + " kcal"
}

// Grams returns a one-decimal gram amount (e.g., "18.8 g").
func Grams(amount float64) string {
	return group(fmt.Sprintf("%.1f", math.Abs(amount)), sign(amount, 1)) + " g"
}

// Weight returns a two-decimal weight with its unit (e.g., "-2.00 lb").
func Weight(amount float64, unit string) string {
	return strings.TrimSpace(group(fmt.Sprintf("%.2f", math.Abs(amount)), sign(amount, 2)) + " " + unit)
}

// Signed returns a one-decimal value with an explicit sign (e.g., "+5.0", "-15.0").
func Signed(amount float64) string {
	s := sign(amount, 1)
	if s == "" {
		s = "+"
	}
	return group(fmt.Sprintf("%.1f", math.Abs(amount)), s)
}

// sign returns "-" when amount is negative at the given precision, so values
// that round to zero never print as "-0".
func sign(amount float64, decimals int) string {
	scale := math.Pow(10, float64(decimals))
	if math.Round(amount*scale) < 0 {
		return "-"
	}
	return ""
}

func group(formatted, sign string) string {
	parts := strings.SplitN(formatted, ".", 2)
	intPart := parts[0]

	if len(intPart) > 3 {
		var builder strings.Builder
		for i, digit := range intPart {
			if i > 0 && (len(intPart)-i)%3 == 0 {
				builder.WriteByte(',')
			}
			builder.WriteRune(digit)
		}
		intPart = builder.String()
	}

	if len(parts) == 2 {
		return sign + intPart + "." + parts[1]
	}
	return sign + intPart
}
