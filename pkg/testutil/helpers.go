// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/flexo-savings/internal/projection"
)

// FindProjection finds a projection by scenario name in the results slice.
// Returns a pointer to the projection if found, nil otherwise.
func FindProjection(results []projection.Projection, name string) *projection.Projection {
	for i := range results {
		if results[i].Name == name {
			return &results[i]
		}
	}
	return nil
}
