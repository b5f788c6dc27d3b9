package savings

import (
	"errors"
	"fmt"
	"strings"

	"github.com/iwvelando/flexo-savings/pkg/constants"
	"github.com/iwvelando/flexo-savings/pkg/mathutil"
)

// ErrIncompleteInput matches every IncompleteInputError via errors.Is.
var ErrIncompleteInput = errors.New("incomplete input")

// IncompleteInputError reports the fields that kept a calculator from running.
// It is the only failure a calculator has.
type IncompleteInputError struct {
	Category Category
	Fields   []string
}

func (e *IncompleteInputError) Error() string {
	return fmt.Sprintf("%s: %s (%s)", e.Category, ErrIncompleteInput, strings.Join(e.Fields, ", "))
}

// Is makes errors.Is(err, ErrIncompleteInput) hold.
func (e *IncompleteInputError) Is(target error) bool {
	return target == ErrIncompleteInput
}

// Input is the set of figures one calculator consumes. The implementations in
// this package are the only ones; there is one per Category.
type Input interface {
	// Category is the ledger entry the calculator writes.
	Category() Category
	// Missing lists the fields that are absent, zero, or out of range. An empty
	// list means the calculation can run.
	Missing() []string

	compute() Result
}

// Result is the intermediate-results record of one calculation.
type Result interface {
	Category() Category
	// AnnualSavings is the figure written to the ledger.
	AnnualSavings() float64
}

// Calculate runs the calculator for in. Incomplete input yields an
// *IncompleteInputError and no result.
func Calculate(in Input) (Result, error) {
	if err := checkComplete(in); err != nil {
		return nil, err
	}
	return in.compute(), nil
}

func checkComplete(in Input) error {
	if missing := in.Missing(); len(missing) > 0 {
		return &IncompleteInputError{Category: in.Category(), Fields: missing}
	}
	return nil
}

// fieldCheck collects the names of fields that fail their constraint.
type fieldCheck struct {
	missing []string
}

// positive requires a finite value strictly greater than zero.
func (f *fieldCheck) positive(name string, value float64) {
	if !mathutil.IsFinitePositive(value) {
		f.missing = append(f.missing, name)
	}
}

// percentage requires a value in (0, 100].
func (f *fieldCheck) percentage(name string, value float64) {
	if !mathutil.IsFinitePositive(value) || value > constants.MaxPercentage {
		f.missing = append(f.missing, name)
	}
}
