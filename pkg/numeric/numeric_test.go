package numeric

import (
	"math"
	"strings"
	"testing"
)

func TestDivide(t *testing.T) {
	tests := []struct {
		name     string
		num, den float64
		expected *float64
	}{
		{"normal", 10, 4, Ptr(2.5)},
		{"zero denominator", 10, 0, nil},
		{"NaN numerator", math.NaN(), 2, nil},
		{"Inf denominator", 1, math.Inf(1), nil},
		{"overflow", math.MaxFloat64, 1e-300, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Divide(tt.num, tt.den)
			if tt.expected == nil {
				if got != nil {
					t.Errorf("Expected nil, got %v", *got)
				}
				return
			}
			if got == nil || *got != *tt.expected {
				t.Errorf("Expected %v, got %v", *tt.expected, got)
			}
		})
	}
}

func TestDividePtrMissingOperand(t *testing.T) {
	if got := DividePtr(nil, Ptr(2.0)); got != nil {
		t.Errorf("Expected nil for missing numerator, got %v", *got)
	}
	if got := DividePtr(Ptr(2.0), nil); got != nil {
		t.Errorf("Expected nil for missing denominator, got %v", *got)
	}
}

func TestNumberFallback(t *testing.T) {
	if got := Number(nil, 7); got != 7 {
		t.Errorf("Expected fallback 7 for nil, got %v", got)
	}
	if got := Number(Ptr(math.NaN()), 7); got != 7 {
		t.Errorf("Expected fallback 7 for NaN, got %v", got)
	}
	if got := Number(Ptr(math.Inf(-1)), 7); got != 7 {
		t.Errorf("Expected fallback 7 for -Inf, got %v", got)
	}
	if got := Number(Ptr(3.5), 7); got != 3.5 {
		t.Errorf("Expected 3.5, got %v", got)
	}
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		in       *float64
		expected string
	}{
		{nil, "N/A"},
		{Ptr(math.NaN()), "N/A"},
		{Ptr(math.Inf(1)), "N/A"},
		{Ptr(0.0), "$0"},
		{Ptr(999.0), "$999"},
		{Ptr(1234567.4), "$1,234,567"},
		{Ptr(-20000.0), "-$20,000"},
		{Ptr(200000.0), "$200,000"},
	}

	for _, tt := range tests {
		got := FormatCurrency(tt.in)
		if got != tt.expected {
			t.Errorf("Expected %q, got %q", tt.expected, got)
		}
		if strings.Contains(got, "NaN") || strings.Contains(got, "nil") {
			t.Errorf("Formatted value leaked an invalid literal: %q", got)
		}
	}
}

func TestFormatCurrencyCents(t *testing.T) {
	if got := FormatCurrencyCents(Ptr(1234.5)); got != "$1,234.50" {
		t.Errorf("Expected $1,234.50, got %s", got)
	}
	if got := FormatCurrencyCents(nil); got != NotAvailable {
		t.Errorf("Expected N/A, got %s", got)
	}
}

func TestFormatPercentAndWeeks(t *testing.T) {
	if got := FormatPercent(Ptr(-9.090909), 2); got != "-9.09%" {
		t.Errorf("Expected -9.09%%, got %s", got)
	}
	if got := FormatPercent(nil, 1); got != NotAvailable {
		t.Errorf("Expected N/A, got %s", got)
	}
	if got := FormatWeeks(Ptr(-8)); got != "-8 weeks" {
		t.Errorf("Expected -8 weeks, got %s", got)
	}
	if got := FormatWeeks(Ptr(1)); got != "1 week" {
		t.Errorf("Expected 1 week, got %s", got)
	}
	if got := FormatWeeks(nil); got != NotAvailable {
		t.Errorf("Expected N/A, got %s", got)
	}
	if got := FormatMonths(Ptr(13.2)); got != "13.2 months" {
		t.Errorf("Expected 13.2 months, got %s", got)
	}
}

func TestClampAndNonNegative(t *testing.T) {
	if got := NonNegative(-3); got != 0 {
		t.Errorf("Expected 0, got %v", got)
	}
	if got := NonNegative(math.NaN()); got != 0 {
		t.Errorf("Expected 0 for NaN, got %v", got)
	}
	if got := Clamp(1.5, 0, 1); got != 1 {
		t.Errorf("Expected 1, got %v", got)
	}
	if got := Clamp(math.NaN(), 0, 1); got != 0 {
		t.Errorf("Expected 0 for NaN, got %v", got)
	}
}

func TestFormatCount(t *testing.T) {
	if got := FormatCount(2500); got != "2,500" {
		t.Errorf("Expected 2,500, got %s", got)
	}
	if got := FormatCount(-1000000); got != "-1,000,000" {
		t.Errorf("Expected -1,000,000, got %s", got)
	}
}
