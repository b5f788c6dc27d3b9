// Package projection defines the data structures related to a savings
// projection and includes functions for computing projections from the config.
package projection

import (
	"errors"
	"fmt"
	"strings"

	"github.com/iwvelando/flexo-savings/internal/config"
	"github.com/iwvelando/flexo-savings/internal/savings"
	"go.uber.org/zap"
)

// Projection holds the outcome of one scenario.
type Projection struct {
	Name    string                              `json:"name"`
	Ledger  *savings.Ledger                     `json:"ledger"`
	Results map[savings.Category]savings.Result `json:"results,omitempty"`
	Skipped map[savings.Category][]string       `json:"skipped,omitempty"`
	Notes   []string                            `json:"notes,omitempty"`
}

// Total returns the projected annual savings over all categories.
func (p Projection) Total() float64 {
	return p.Ledger.Total()
}

// GetProjections computes the Projections for all active Scenarios.
func GetProjections(logger *zap.Logger, conf config.Configuration) ([]Projection, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var results []Projection
	for _, scenario := range conf.Scenarios {
		if !scenario.Active {
			logger.Debug(fmt.Sprintf("skipping scenario %s because it is inactive", scenario.Name),
				zap.String("op", "projection.GetProjections"),
			)
			continue
		}

		result, err := Project(logger, scenario.Name, scenario.Inputs(conf.Common))
		if err != nil {
			return results, err
		}
		results = append(results, result)
	}

	return results, nil
}

// Project applies inputs to a fresh ledger. Incomplete panels are skipped and
// recorded in Skipped and Notes.
func Project(logger *zap.Logger, name string, inputs []savings.Input) (Projection, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	result := Projection{
		Name:    name,
		Ledger:  savings.NewLedger(),
		Results: make(map[savings.Category]savings.Result),
		Skipped: make(map[savings.Category][]string),
	}

	for _, in := range inputs {
		calculated, err := result.Ledger.Apply(in)
		var incomplete *savings.IncompleteInputError
		switch {
		case errors.As(err, &incomplete):
			logger.Debug("skipping incomplete panel",
				zap.String("op", "projection.Project"),
				zap.String("scenario", name),
				zap.Stringer("category", incomplete.Category),
				zap.Strings("fields", incomplete.Fields),
			)
			result.Skipped[incomplete.Category] = incomplete.Fields
			result.Notes = append(result.Notes, fmt.Sprintf("%s: incomplete input (%s)",
				incomplete.Category, strings.Join(incomplete.Fields, ", ")))
		case err != nil:
			return result, fmt.Errorf("scenario %s: %w", name, err)
		default:
			logger.Debug("panel calculated",
				zap.String("op", "projection.Project"),
				zap.String("scenario", name),
				zap.Stringer("category", in.Category()),
				zap.Float64("savings", calculated.AnnualSavings()),
			)
			result.Results[in.Category()] = calculated
		}
	}

	logger.Info("projection computed",
		zap.String("op", "projection.Project"),
		zap.String("scenario", name),
		zap.Int("calculated", len(result.Results)),
		zap.Int("skipped", len(result.Skipped)),
		zap.Float64("total", result.Total()),
	)

	return result, nil
}
