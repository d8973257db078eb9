// Package numeric holds the guarded arithmetic and formatting helpers every
// other package routes through, so a missing or non-finite value never
// reaches a renderer as NaN, Inf or "<nil>".
package numeric

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// NotAvailable is the placeholder rendered for missing values
const NotAvailable = "N/A"

// Ptr returns a pointer to v
func Ptr[T any](v T) *T {
	return &v
}

// IsFinite reports whether v is neither NaN nor ±Inf
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Divide returns num/den, or nil when den is zero or either operand is not finite
func Divide(num, den float64) *float64 {
	if den == 0 || !IsFinite(num) || !IsFinite(den) {
		return nil
	}
	q := num / den
	if !IsFinite(q) {
		return nil
	}
	return &q
}

// DividePtr is Divide for optional operands
func DividePtr(num, den *float64) *float64 {
	if num == nil || den == nil {
		return nil
	}
	return Divide(*num, *den)
}

// Number returns *v, or fallback for nil and non-finite input
func Number(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return Finite(*v, fallback)
}

// Finite returns v, or fallback when v is NaN or ±Inf
func Finite(v, fallback float64) float64 {
	if !IsFinite(v) {
		return fallback
	}
	return v
}

// NonNegative clamps v to [0, +Inf), mapping non-finite input to 0
func NonNegative(v float64) float64 {
	if !IsFinite(v) || v < 0 {
		return 0
	}
	return v
}

// Clamp restricts v to [lo, hi]; non-finite input maps to lo
func Clamp(v, lo, hi float64) float64 {
	if !IsFinite(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// RoundMoney rounds a currency amount to cents
func RoundMoney(v float64) float64 {
	if !IsFinite(v) {
		return 0
	}
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// FormatCurrency renders whole dollars with thousands separators, e.g. "$1,234,567"
// or "-$20,000". Missing or non-finite values render as NotAvailable.
func FormatCurrency(v *float64) string {
	if v == nil || !IsFinite(*v) {
		return NotAvailable
	}
	d := decimal.NewFromFloat(*v).Round(0)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	return sign + "$" + groupThousands(d.StringFixed(0))
}

// FormatCurrencyCents is FormatCurrency with two decimal places
func FormatCurrencyCents(v *float64) string {
	if v == nil || !IsFinite(*v) {
		return NotAvailable
	}
	d := decimal.NewFromFloat(*v).Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	whole, frac, _ := strings.Cut(d.StringFixed(2), ".")
	return sign + "$" + groupThousands(whole) + "." + frac
}

// FormatPercent renders v (already in percent units) with the given places
func FormatPercent(v *float64, places int) string {
	if v == nil || !IsFinite(*v) {
		return NotAvailable
	}
	return decimal.NewFromFloat(*v).StringFixed(int32(places)) + "%"
}

// FormatMonths renders a month count with one decimal place
func FormatMonths(v *float64) string {
	if v == nil || !IsFinite(*v) {
		return NotAvailable
	}
	return fmt.Sprintf("%.1f months", *v)
}

// FormatWeeks renders a week count
func FormatWeeks(v *int) string {
	if v == nil {
		return NotAvailable
	}
	if *v == 1 || *v == -1 {
		return fmt.Sprintf("%d week", *v)
	}
	return fmt.Sprintf("%d weeks", *v)
}

// FormatCount renders an integer with thousands separators
func FormatCount(v int) string {
	if v < 0 {
		return "-" + groupThousands(fmt.Sprintf("%d", -v))
	}
	return groupThousands(fmt.Sprintf("%d", v))
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
