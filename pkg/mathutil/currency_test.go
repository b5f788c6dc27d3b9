package mathutil

import (
	"math"
	"testing"
)

func TestRound(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"Round up", 833.3333, 833.33},
		{"Round down below midpoint", 1.234, 1.23},
		{"No rounding needed", 1.23, 1.23},
		{"Large number", 5833.3333, 5833.33},
		{"Negative number", -1.236, -1.24},
		{"Zero", 0.0, 0.0},
		{"Very small positive", 0.001, 0.00},
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

func TestIsZero(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected bool
	}{
		{"Exactly zero", 0.0, true},
		{"Very small negative", -0.001, true},
		{"Exactly tolerance", 0.01, true},
		{"Just above tolerance", 0.02, false},
		{"Large negative", -100.0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := IsZero(tt.input); result != tt.expected {
				t.Errorf("IsZero(%v) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestWithinTolerance(t *testing.T) {
	if !WithinTolerance(100.0, 100.005, 0.01) {
		t.Errorf("expected values within tolerance")
	}
	if WithinTolerance(100.0, 100.02, 0.01) {
		t.Errorf("expected values outside tolerance")
	}
}

func TestIsFinitePositive(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected bool
	}{
		{"Positive", 1.5, true},
		{"Tiny positive", 1e-9, true},
		{"Zero", 0.0, false},
		{"Negative", -3.0, false},
		{"NaN", math.NaN(), false},
		{"Positive infinity", math.Inf(1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := IsFinitePositive(tt.input); result != tt.expected {
				t.Errorf("IsFinitePositive(%v) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestCalculatePercentage(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		total    float64
		expected float64
	}{
		{"50% of 100", 50.0, 100.0, 50.0},
		{"25% of 200", 50.0, 200.0, 25.0},
		{"Zero total", 50.0, 0.0, 0.0},
		{"Negative value", -50.0, 100.0, -50.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculatePercentage(tt.value, tt.total)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("CalculatePercentage(%v, %v) = %v, expected %v",
					tt.value, tt.total, result, tt.expected)
			}
		})
	}
}

func TestPercentChange(t *testing.T) {
	tests := []struct {
		name     string
		base     float64
		value    float64
		expected float64
	}{
		{"Speed increase", 50.0, 60.0, 20.0},
		{"Speed decrease", 50.0, 40.0, -20.0},
		{"No change", 50.0, 50.0, 0.0},
		{"Zero base", 0.0, 10.0, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := PercentChange(tt.base, tt.value)
			if math.Abs(result-tt.expected) > 1e-9 {
				t.Errorf("PercentChange(%v, %v) = %v, expected %v", tt.base, tt.value, result, tt.expected)
			}
		})
	}
}

func TestApplyPercentage(t *testing.T) {
	tests := []struct {
		name       string
		value      float64
		percentage float64
		expected   float64
	}{
		{"20% of 5000", 5000.0, 20.0, 1000.0},
		{"100% of value", 100.0, 100.0, 100.0},
		{"0% of value", 100.0, 0.0, 0.0},
		{"Negative percentage", 100.0, -50.0, -50.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ApplyPercentage(tt.value, tt.percentage)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("ApplyPercentage(%v, %v) = %v, expected %v",
					tt.value, tt.percentage, result, tt.expected)
			}
		})
	}
}

func TestMinutesToHours(t *testing.T) {
	if got := MinutesToHours(1000); math.Abs(got-16.6667) > 0.001 {
		t.Errorf("MinutesToHours(1000) = %v, expected ~16.667", got)
	}
	if got := MinutesToHours(0); got != 0 {
		t.Errorf("MinutesToHours(0) = %v, expected 0", got)
	}
}
