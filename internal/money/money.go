// Package money provides decimal arithmetic and formatting for invoice
// amounts. Intermediate values stay unrounded; rounding happens once at
// formatting time, half away from zero to two decimal places.
package money

import (
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Zero is decimal zero
var Zero = decimal.Zero

// FromFloat converts a float amount to a decimal without rounding
func FromFloat(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

// Sum sums a slice of decimals
func Sum(values []decimal.Decimal) decimal.Decimal {
	result := Zero
	for _, v := range values {
		result = result.Add(v)
	}
	return result
}

// Percent computes: amount * (percentage/100), unrounded
func Percent(amount decimal.Decimal, percentage float64) decimal.Decimal {
	return amount.Mul(decimal.NewFromFloat(percentage)).Div(hundred)
}

// Format renders an amount with exactly two fractional digits, rounding
// half away from zero. Trailing zeros are kept, e.g. "171.00".
func Format(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// FormatFloat is shorthand for Format(FromFloat(v))
func FormatFloat(v float64) string {
	return Format(FromFloat(v))
}
