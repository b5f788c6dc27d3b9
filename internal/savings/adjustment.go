package savings

import "github.com/iwvelando/flexo-savings/pkg/mathutil"

// AdjustmentInput describes press make-ready: the time it takes per job and the
// material run through the press while adjusting.
type AdjustmentInput struct {
	AnnualJobs           float64 `json:"annualJobs" yaml:"annualJobs"`
	HourlyValue          float64 `json:"hourlyValue" yaml:"hourlyValue"`
	CurrentTime          float64 `json:"currentTime" yaml:"currentTime"`                   // minutes per job
	TimeReduction        float64 `json:"timeReduction" yaml:"timeReduction"`               // minutes per job
	CurrentMaterial      float64 `json:"currentMaterial" yaml:"currentMaterial"`           // length per job
	MaterialCost         float64 `json:"materialCost" yaml:"materialCost"`                 // per length unit
	MaterialReductionPct float64 `json:"materialReductionPct" yaml:"materialReductionPct"` // 0-100
}

// AdjustmentResult holds the time and material figures of the adjustment calculation.
type AdjustmentResult struct {
	TimeAfter            float64 `json:"timeAfter"`
	TimeSavedMinutes     float64 `json:"timeSavedMinutes"`
	TimeSavedHours       float64 `json:"timeSavedHours"`
	TimeValueSavings     float64 `json:"timeValueSavings"`
	MaterialAfter        float64 `json:"materialAfter"`
	MaterialSavedPerYear float64 `json:"materialSavedPerYear"`
	MaterialValueSavings float64 `json:"materialValueSavings"`
	TotalSavings         float64 `json:"totalSavings"`
}

// Category implements Input.
func (in AdjustmentInput) Category() Category { return AdjustmentSpeed }

// Missing implements Input.
func (in AdjustmentInput) Missing() []string {
	var f fieldCheck
	f.positive("annualJobs", in.AnnualJobs)
	f.positive("hourlyValue", in.HourlyValue)
	f.positive("currentTime", in.CurrentTime)
	f.positive("timeReduction", in.TimeReduction)
	f.positive("currentMaterial", in.CurrentMaterial)
	f.positive("materialCost", in.MaterialCost)
	f.percentage("materialReductionPct", in.MaterialReductionPct)
	return f.missing
}

// Calculate computes the value of shorter adjustments plus the material they no longer waste.
func (in AdjustmentInput) Calculate() (AdjustmentResult, error) {
	if err := checkComplete(in); err != nil {
		return AdjustmentResult{}, err
	}
	return in.calculate(), nil
}

func (in AdjustmentInput) compute() Result { return in.calculate() }

func (in AdjustmentInput) calculate() AdjustmentResult {
	timeSavedMinutes := in.TimeReduction * in.AnnualJobs
	timeSavedHours := mathutil.MinutesToHours(timeSavedMinutes)
	timeValue := timeSavedHours * in.HourlyValue

	materialAfter := in.CurrentMaterial * (1 - in.MaterialReductionPct/100)
	materialSaved := (in.CurrentMaterial - materialAfter) * in.AnnualJobs
	materialValue := materialSaved * in.MaterialCost

	return AdjustmentResult{
		TimeAfter:            in.CurrentTime - in.TimeReduction,
		TimeSavedMinutes:     timeSavedMinutes,
		TimeSavedHours:       timeSavedHours,
		TimeValueSavings:     timeValue,
		MaterialAfter:        materialAfter,
		MaterialSavedPerYear: materialSaved,
		MaterialValueSavings: materialValue,
		TotalSavings:         timeValue + materialValue,
	}
}

// Category implements Result.
func (r AdjustmentResult) Category() Category { return AdjustmentSpeed }

// AnnualSavings implements Result.
func (r AdjustmentResult) AnnualSavings() float64 { return r.TotalSavings }
