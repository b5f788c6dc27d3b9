// Package format renders monetary and percentage figures for display.
package format

import (
	"math"

	"github.com/iwvelando/flexo-savings/pkg/mathutil"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Currency returns a currency string with a dollar sign and thousands separators (e.g., "-$1,234.56").
func Currency(amount float64) string {
	formatted := NumericCurrency(math.Abs(amount))
	if amount < 0 && mathutil.Round(amount) != 0 {
		return "-$" + formatted
	}
	return "$" + formatted
}

// NumericCurrency returns a currency string without a currency symbol but with separators (e.g., "-1,234.56").
func NumericCurrency(amount float64) string {
	return printer.Sprintf("%.2f", amount)
}

// AnnualCurrency returns a currency string suffixed with the yearly period (e.g., "$1,234.56/yr").
func AnnualCurrency(amount float64) string {
	return Currency(amount) + "/yr"
}

// Percent returns a percentage with one decimal (e.g., "25.0%").
func Percent(value float64) string {
	return printer.Sprintf("%.1f%%", value)
}
