// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/iwvelando/flexo-savings/pkg/constants"
)

// Round rounds a value to two decimals, i.e. to represent real currency.
// Used for making logical comparisons.
func Round(val float64) float64 {
	return math.Round(val*constants.DecimalPrecision) / constants.DecimalPrecision
}

// IsZero checks if a value is effectively zero (within tolerance)
func IsZero(val float64) bool {
	return WithinTolerance(val, 0, constants.CurrencyTolerance)
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// IsFinitePositive reports whether val is a usable strictly positive input.
func IsFinitePositive(val float64) bool {
	return val > 0 && !math.IsInf(val, 0) && !math.IsNaN(val)
}

// CalculatePercentage calculates what percentage value is of total
func CalculatePercentage(value, total float64) float64 {
	if total == 0 {
		return 0
	}
	return (value / total) * constants.PercentageMultiplier
}

// PercentChange returns the relative change from base to value as a percentage of base.
// A zero base yields zero.
func PercentChange(base, value float64) float64 {
	if base == 0 {
		return 0
	}
	return (value - base) / base * constants.PercentageMultiplier
}

// ApplyPercentage applies a percentage to a value
func ApplyPercentage(value, percentage float64) float64 {
	return value * (percentage / constants.PercentageMultiplier)
}

// MinutesToHours converts minutes into hours
func MinutesToHours(minutes float64) float64 {
	return minutes / constants.MinutesPerHour
}
