package projection

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/iwvelando/flexo-savings/internal/config"
	"github.com/iwvelando/flexo-savings/internal/savings"
	"go.uber.org/zap"
)

func TestGetProjections(t *testing.T) {
	logger, _ := zap.NewDevelopment()

	conf, err := config.LoadConfiguration(filepath.Join("..", "..", "test", "test_config.yaml"))
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	results, err := GetProjections(logger, *conf)
	if err != nil {
		t.Fatalf("GetProjections() error = %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("expected 2 active scenarios, got %d", len(results))
	}

	tests := []struct {
		name     string
		index    int
		expected map[savings.Category]float64
		total    float64
		skipped  []savings.Category
	}{
		{
			name:  "baseline",
			index: 0,
			expected: map[savings.Category]float64{
				savings.Plates:          500,
				savings.AdjustmentSpeed: 5833.33,
				savings.PrintSpeed:      8000,
				savings.WhiteInk:        1000,
			},
			total: 15333.33,
		},
		{
			name:  "slower press",
			index: 1,
			expected: map[savings.Category]float64{
				savings.PrintSpeed: -10000,
				savings.ColoredInk: 0,
			},
			total:   -10000,
			skipped: []savings.Category{savings.ColoredInk},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := results[tt.index]
			if result.Name != tt.name {
				t.Fatalf("expected scenario %q, got %q", tt.name, result.Name)
			}
			for category, amount := range tt.expected {
				if math.Abs(result.Ledger.Get(category)-amount) > 0.01 {
					t.Errorf("%v = %.2f, expected %.2f", category, result.Ledger.Get(category), amount)
				}
			}
			if math.Abs(result.Total()-tt.total) > 0.01 {
				t.Errorf("total = %.2f, expected %.2f", result.Total(), tt.total)
			}
			if len(result.Skipped) != len(tt.skipped) {
				t.Errorf("expected %d skipped panels, got %v", len(tt.skipped), result.Skipped)
			}
			for _, category := range tt.skipped {
				if _, ok := result.Skipped[category]; !ok {
					t.Errorf("expected %v to be skipped", category)
				}
				if _, ok := result.Results[category]; ok {
					t.Errorf("expected no result for skipped %v", category)
				}
			}
			if len(result.Notes) != len(tt.skipped) {
				t.Errorf("expected one note per skipped panel, got %v", result.Notes)
			}
		})
	}
}

func TestProjectSkipNote(t *testing.T) {
	result, err := Project(zap.NewNop(), "notes", []savings.Input{
		savings.PlateInput{AnnualConsumption: 1000, CurrentCost: 2.0},
	})
	if err != nil {
		t.Fatalf("Project() error = %v", err)
	}

	if len(result.Notes) != 1 || result.Notes[0] != "plates: incomplete input (targetCost)" {
		t.Errorf("unexpected notes %v", result.Notes)
	}
	if result.Total() != 0 {
		t.Errorf("expected zero total, got %v", result.Total())
	}
}

func TestGetProjectionsNilLogger(t *testing.T) {
	conf := config.Configuration{
		Scenarios: []config.Scenario{
			{Name: "nil logger", Active: true, WhiteInk: &savings.InkInput{Consumption: 500, UnitCost: 10, ReductionPct: 20}},
		},
	}

	results, err := GetProjections(nil, conf)
	if err != nil {
		t.Fatalf("GetProjections() error = %v", err)
	}
	if len(results) != 1 || math.Abs(results[0].Total()-1000) > 1e-9 {
		t.Errorf("unexpected results %+v", results)
	}
}
