package savings

import "github.com/iwvelando/flexo-savings/pkg/mathutil"

// InkInput holds the ink figures shared by the white and colored ink calculators.
type InkInput struct {
	Consumption  float64 `json:"consumption" yaml:"consumption"` // mass per year
	UnitCost     float64 `json:"unitCost" yaml:"unitCost"`       // per mass unit
	ReductionPct float64 `json:"reductionPct" yaml:"reductionPct"`
}

// WhiteInkInput is the white ink consumption.
type WhiteInkInput InkInput

// ColoredInkInput is the consumption of every other ink, at an average unit cost.
type ColoredInkInput InkInput

// InkResult holds the ink spend comparison for either ink kind.
type InkResult struct {
	Kind           Category `json:"category"`
	CurrentSpend   float64  `json:"currentSpend"`
	Savings        float64  `json:"savings"`
	MassSaved      float64  `json:"massSaved"`
	NewConsumption float64  `json:"newConsumption"`
}

func (in InkInput) missing() []string {
	var f fieldCheck
	f.positive("consumption", in.Consumption)
	f.positive("unitCost", in.UnitCost)
	f.percentage("reductionPct", in.ReductionPct)
	return f.missing
}

func (in InkInput) calculate(kind Category) InkResult {
	currentSpend := in.Consumption * in.UnitCost
	massSaved := mathutil.ApplyPercentage(in.Consumption, in.ReductionPct)
	return InkResult{
		Kind:           kind,
		CurrentSpend:   currentSpend,
		Savings:        mathutil.ApplyPercentage(currentSpend, in.ReductionPct),
		MassSaved:      massSaved,
		NewConsumption: in.Consumption - massSaved,
	}
}

// Category implements Input.
func (in WhiteInkInput) Category() Category { return WhiteInk }

// Missing implements Input.
func (in WhiteInkInput) Missing() []string { return InkInput(in).missing() }

// Calculate computes the white ink savings.
func (in WhiteInkInput) Calculate() (InkResult, error) {
	if err := checkComplete(in); err != nil {
		return InkResult{}, err
	}
	return InkInput(in).calculate(WhiteInk), nil
}

func (in WhiteInkInput) compute() Result { return InkInput(in).calculate(WhiteInk) }

// Category implements Input.
func (in ColoredInkInput) Category() Category { return ColoredInk }

// Missing implements Input.
func (in ColoredInkInput) Missing() []string { return InkInput(in).missing() }

// Calculate computes the colored ink savings.
func (in ColoredInkInput) Calculate() (InkResult, error) {
	if err := checkComplete(in); err != nil {
		return InkResult{}, err
	}
	return InkInput(in).calculate(ColoredInk), nil
}

func (in ColoredInkInput) compute() Result { return InkInput(in).calculate(ColoredInk) }

// Category implements Result.
func (r InkResult) Category() Category { return r.Kind }

// AnnualSavings implements Result.
func (r InkResult) AnnualSavings() float64 { return r.Savings }
