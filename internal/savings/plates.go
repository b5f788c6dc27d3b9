package savings

// PlateInput compares the current plate price per unit area with a target price.
type PlateInput struct {
	AnnualConsumption float64 `json:"annualConsumption" yaml:"annualConsumption"` // plate units per year
	CurrentCost       float64 `json:"currentCost" yaml:"currentCost"`             // per unit area
	TargetCost        float64 `json:"targetCost" yaml:"targetCost"`               // per unit area
}

// PlateResult holds the plate cost comparison.
type PlateResult struct {
	PercentDifference float64 `json:"percentDifference"`
	CurrentSpend      float64 `json:"currentSpend"`
	TargetSpend       float64 `json:"targetSpend"`
	Savings           float64 `json:"savings"`
}

// Category implements Input.
func (in PlateInput) Category() Category { return Plates }

// Missing implements Input.
func (in PlateInput) Missing() []string {
	var f fieldCheck
	f.positive("annualConsumption", in.AnnualConsumption)
	f.positive("currentCost", in.CurrentCost)
	f.positive("targetCost", in.TargetCost)
	return f.missing
}

// Calculate computes the plate spend with the current and the target price.
func (in PlateInput) Calculate() (PlateResult, error) {
	if err := checkComplete(in); err != nil {
		return PlateResult{}, err
	}
	return in.calculate(), nil
}

func (in PlateInput) compute() Result { return in.calculate() }

func (in PlateInput) calculate() PlateResult {
	currentSpend := in.AnnualConsumption * in.CurrentCost
	targetSpend := in.AnnualConsumption * in.TargetCost
	return PlateResult{
		PercentDifference: (in.CurrentCost - in.TargetCost) / in.CurrentCost * 100,
		CurrentSpend:      currentSpend,
		TargetSpend:       targetSpend,
		Savings:           currentSpend - targetSpend,
	}
}

// Category implements Result.
func (r PlateResult) Category() Category { return Plates }

// AnnualSavings implements Result.
func (r PlateResult) AnnualSavings() float64 { return r.Savings }
