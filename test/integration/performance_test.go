package integration

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/iwvelando/flexo-savings/internal/config"
	"github.com/iwvelando/flexo-savings/internal/projection"
	"github.com/iwvelando/flexo-savings/internal/savings"
	"github.com/iwvelando/flexo-savings/internal/session"
	"go.uber.org/zap"
)

// TestPerformance checks that projecting many scenarios stays fast.
func TestPerformance(t *testing.T) {
	conf, err := config.LoadConfiguration("../test_config.yaml")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	template := conf.Scenarios[0]
	conf.Scenarios = nil
	for i := 0; i < 1000; i++ {
		scenario := template
		scenario.Name = fmt.Sprintf("scenario %d", i)
		conf.Scenarios = append(conf.Scenarios, scenario)
	}

	start := time.Now()
	results, err := projection.GetProjections(zap.NewNop(), *conf)
	if err != nil {
		t.Fatalf("GetProjections() error = %v", err)
	}
	elapsed := time.Since(start)

	if len(results) != 1000 {
		t.Fatalf("expected 1000 projections, got %d", len(results))
	}
	if elapsed > 2*time.Second {
		t.Errorf("projecting 1000 scenarios took %v", elapsed)
	}
	t.Logf("projected %d scenarios in %v", len(results), elapsed)
}

// TestConcurrentSessions applies panels to many sessions at once.
func TestConcurrentSessions(t *testing.T) {
	ctx := context.Background()
	svc := session.NewService(zap.NewNop(), session.NewMemoryStore())

	const sessions = 50
	ids := make([]string, sessions)
	for i := range ids {
		created, err := svc.Create(ctx, fmt.Sprintf("press %d", i))
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		ids[i] = created.ID
	}

	var wg sync.WaitGroup
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			in := savings.PlateInput{AnnualConsumption: float64(i + 1), CurrentCost: 2.0, TargetCost: 1.5}
			if _, err := svc.Apply(ctx, id, in); err != nil {
				t.Errorf("Apply() error = %v", err)
			}
		}(i, id)
	}
	wg.Wait()

	for i, id := range ids {
		stored, err := svc.Get(ctx, id)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		expected := float64(i+1) * 0.5
		if stored.Total() != expected {
			t.Errorf("session %d total = %v, expected %v", i, stored.Total(), expected)
		}
	}
}

func BenchmarkProject(b *testing.B) {
	inputs := []savings.Input{
		savings.PlateInput{AnnualConsumption: 1000, CurrentCost: 2.0, TargetCost: 1.5},
		savings.AdjustmentInput{AnnualJobs: 100, HourlyValue: 50, CurrentTime: 30, TimeReduction: 10, CurrentMaterial: 20, MaterialCost: 5, MaterialReductionPct: 50},
		savings.PrintSpeedInput{AvailableHours: 1000, HourlyValue: 40, CurrentSpeed: 50, NewSpeed: 60},
		savings.WhiteInkInput{Consumption: 500, UnitCost: 10, ReductionPct: 20},
		savings.ColoredInkInput{Consumption: 800, UnitCost: 12, ReductionPct: 10},
		savings.PlateStopInput{AnnualJobs: 200, HourlyValue: 60, MinutesPerStop: 15, CurrentStops: 4, NewStops: 1},
	}
	logger := zap.NewNop()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := projection.Project(logger, "bench", inputs); err != nil {
			b.Fatal(err)
		}
	}
}
