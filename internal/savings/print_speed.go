package savings

import (
	"github.com/iwvelando/flexo-savings/pkg/constants"
	"github.com/iwvelando/flexo-savings/pkg/mathutil"
)

// PrintSpeedInput compares the current and the new running speed of a press.
type PrintSpeedInput struct {
	AvailableHours float64 `json:"availableHours" yaml:"availableHours"` // press hours per year
	HourlyValue    float64 `json:"hourlyValue" yaml:"hourlyValue"`
	CurrentSpeed   float64 `json:"currentSpeed" yaml:"currentSpeed"` // length per minute
	NewSpeed       float64 `json:"newSpeed" yaml:"newSpeed"`         // length per minute
}

// PrintSpeedResult holds the speed comparison. A slower new speed gives
// negative figures throughout.
type PrintSpeedResult struct {
	ImprovementPct float64 `json:"improvementPct"`
	Savings        float64 `json:"savings"`
	ExtraCapacity  float64 `json:"extraCapacity"` // length per year
	TimeSavedHours float64 `json:"timeSavedHours"`
}

// Category implements Input.
func (in PrintSpeedInput) Category() Category { return PrintSpeed }

// Missing implements Input.
func (in PrintSpeedInput) Missing() []string {
	var f fieldCheck
	f.positive("availableHours", in.AvailableHours)
	f.positive("hourlyValue", in.HourlyValue)
	f.positive("currentSpeed", in.CurrentSpeed)
	f.positive("newSpeed", in.NewSpeed)
	return f.missing
}

// Calculate values the speed change as a share of the press hours.
func (in PrintSpeedInput) Calculate() (PrintSpeedResult, error) {
	if err := checkComplete(in); err != nil {
		return PrintSpeedResult{}, err
	}
	return in.calculate(), nil
}

func (in PrintSpeedInput) compute() Result { return in.calculate() }

func (in PrintSpeedInput) calculate() PrintSpeedResult {
	improvement := mathutil.PercentChange(in.CurrentSpeed, in.NewSpeed)
	return PrintSpeedResult{
		ImprovementPct: improvement,
		Savings:        mathutil.ApplyPercentage(in.AvailableHours*in.HourlyValue, improvement),
		ExtraCapacity:  (in.NewSpeed - in.CurrentSpeed) * in.AvailableHours * constants.MinutesPerHour,
		TimeSavedHours: mathutil.ApplyPercentage(in.AvailableHours, improvement),
	}
}

// Category implements Result.
func (r PrintSpeedResult) Category() Category { return PrintSpeed }

// AnnualSavings implements Result.
func (r PrintSpeedResult) AnnualSavings() float64 { return r.Savings }
