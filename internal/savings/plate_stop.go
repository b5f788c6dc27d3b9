package savings

import "github.com/iwvelando/flexo-savings/pkg/mathutil"

// PlateStopInput describes how often the press stops per job because of plates.
type PlateStopInput struct {
	AnnualJobs     float64 `json:"annualJobs" yaml:"annualJobs"`
	HourlyValue    float64 `json:"hourlyValue" yaml:"hourlyValue"`
	MinutesPerStop float64 `json:"minutesPerStop" yaml:"minutesPerStop"`
	CurrentStops   float64 `json:"currentStops" yaml:"currentStops"` // average stops per job
	NewStops       float64 `json:"newStops" yaml:"newStops"`         // average stops per job
}

// PlateStopResult holds the yearly stop time before and after.
type PlateStopResult struct {
	CurrentStopTime   float64 `json:"currentStopTime"` // minutes per year
	NewStopTime       float64 `json:"newStopTime"`     // minutes per year
	TimeDifference    float64 `json:"timeDifference"`  // minutes per year
	PercentDifference float64 `json:"percentDifference"`
	CurrentStopHours  float64 `json:"currentStopHours"`
	NewStopHours      float64 `json:"newStopHours"`
	Savings           float64 `json:"savings"`
}

// Category implements Input.
func (in PlateStopInput) Category() Category { return PlateStopRatio }

// Missing implements Input.
func (in PlateStopInput) Missing() []string {
	var f fieldCheck
	f.positive("annualJobs", in.AnnualJobs)
	f.positive("hourlyValue", in.HourlyValue)
	f.positive("minutesPerStop", in.MinutesPerStop)
	f.positive("currentStops", in.CurrentStops)
	f.positive("newStops", in.NewStops)
	return f.missing
}

// Calculate values the press time no longer lost to stops.
func (in PlateStopInput) Calculate() (PlateStopResult, error) {
	if err := checkComplete(in); err != nil {
		return PlateStopResult{}, err
	}
	return in.calculate(), nil
}

func (in PlateStopInput) compute() Result { return in.calculate() }

func (in PlateStopInput) calculate() PlateStopResult {
	current := in.MinutesPerStop * in.CurrentStops * in.AnnualJobs
	next := in.MinutesPerStop * in.NewStops * in.AnnualJobs
	diff := current - next
	return PlateStopResult{
		CurrentStopTime:   current,
		NewStopTime:       next,
		TimeDifference:    diff,
		PercentDifference: (in.CurrentStops - in.NewStops) / in.CurrentStops * 100,
		CurrentStopHours:  mathutil.MinutesToHours(current),
		NewStopHours:      mathutil.MinutesToHours(next),
		Savings:           mathutil.MinutesToHours(diff) * in.HourlyValue,
	}
}

// Category implements Result.
func (r PlateStopResult) Category() Category { return PlateStopRatio }

// AnnualSavings implements Result.
func (r PlateStopResult) AnnualSavings() float64 { return r.Savings }
