package format

import "testing"

func TestCurrency(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		expected string
	}{
		{"Zero", 0, "$0.00"},
		{"Small", 5.5, "$5.50"},
		{"Thousands", 5833.333, "$5,833.33"},
		{"Millions", 1234567.891, "$1,234,567.89"},
		{"Negative", -8000, "-$8,000.00"},
		{"Negative rounds to zero", -0.001, "$0.00"},
		{"Negative cent", -0.01, "-$0.01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Currency(tt.amount); got != tt.expected {
				t.Errorf("Currency(%v) = %q, expected %q", tt.amount, got, tt.expected)
			}
		})
	}
}

func TestNumericCurrency(t *testing.T) {
	if got := NumericCurrency(-1234.5); got != "-1,234.50" {
		t.Errorf("NumericCurrency(-1234.5) = %q", got)
	}
}

func TestAnnualCurrency(t *testing.T) {
	if got := AnnualCurrency(500); got != "$500.00/yr" {
		t.Errorf("AnnualCurrency(500) = %q", got)
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		value    float64
		expected string
	}{
		{25, "25.0%"},
		{33.333, "33.3%"},
		{-20, "-20.0%"},
		{1250, "1,250.0%"},
	}

	for _, tt := range tests {
		if got := Percent(tt.value); got != tt.expected {
			t.Errorf("Percent(%v) = %q, expected %q", tt.value, got, tt.expected)
		}
	}
}
