// Package savings implements the annual savings model: six independent
// calculators, the ledger they write to, and aggregation over that ledger.
package savings

import (
	"errors"
	"fmt"
	"strings"
)

// Category identifies one of the six business areas a calculator covers.
type Category int

// The set of categories is closed. The declaration order is the canonical order
// used for ledgers, reports and the API.
const (
	Plates Category = iota
	AdjustmentSpeed
	PrintSpeed
	WhiteInk
	ColoredInk
	PlateStopRatio

	categoryCount
)

// ErrUnknownCategory is returned when a category key does not name one of the six categories.
var ErrUnknownCategory = errors.New("unknown savings category")

var categoryKeys = [categoryCount]string{
	Plates:          "plates",
	AdjustmentSpeed: "adjustment_speed",
	PrintSpeed:      "print_speed",
	WhiteInk:        "white_ink",
	ColoredInk:      "colored_ink",
	PlateStopRatio:  "plate_stop_ratio",
}

var categoryLabels = [categoryCount]string{
	Plates:          "Plate Cost",
	AdjustmentSpeed: "Adjustment Speed",
	PrintSpeed:      "Print Speed",
	WhiteInk:        "White Ink",
	ColoredInk:      "Colored Ink",
	PlateStopRatio:  "Plate-Stop Ratio",
}

// Categories returns all categories in canonical order.
func Categories() []Category {
	all := make([]Category, 0, categoryCount)
	for c := Category(0); c < categoryCount; c++ {
		all = append(all, c)
	}
	return all
}

// Valid reports whether c is one of the six categories.
func (c Category) Valid() bool {
	return c >= 0 && c < categoryCount
}

// String returns the category key, e.g. "plate_stop_ratio".
func (c Category) String() string {
	if !c.Valid() {
		return fmt.Sprintf("category(%d)", int(c))
	}
	return categoryKeys[c]
}

// Label returns the human-readable category name.
func (c Category) Label() string {
	if !c.Valid() {
		return c.String()
	}
	return categoryLabels[c]
}

// ParseCategory converts a category key into a Category. Matching ignores case
// and accepts dashes in place of underscores.
func ParseCategory(key string) (Category, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(key)), "-", "_")
	for c, k := range categoryKeys {
		if k == normalized {
			return Category(c), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, key)
}

// MarshalText encodes the category as its key.
func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownCategory, int(c))
	}
	return []byte(categoryKeys[c]), nil
}

// UnmarshalText decodes a category key.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
