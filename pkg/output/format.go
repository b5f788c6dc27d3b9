// Package output provides utilities for formatting and displaying savings projections.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/iwvelando/flexo-savings/internal/projection"
	"github.com/iwvelando/flexo-savings/internal/savings"
	"github.com/iwvelando/flexo-savings/pkg/constants"
	"github.com/iwvelando/flexo-savings/pkg/format"
	"github.com/iwvelando/flexo-savings/pkg/mathutil"
)

// Write renders results in the named output format.
func Write(w io.Writer, outputFormat string, results []projection.Projection) error {
	switch outputFormat {
	case constants.OutputFormatPretty:
		return PrettyFormat(w, results)
	case constants.OutputFormatCSV:
		return CsvFormat(w, results)
	case constants.OutputFormatJSON:
		return JSONFormat(w, results)
	default:
		return fmt.Errorf("unsupported output format %q", outputFormat)
	}
}

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(w io.Writer, results []projection.Projection) error {
	for i, result := range results {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "--- Savings for scenario %s ---\n", result.Name)

		tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
		fmt.Fprintln(tw, "Category\t| Annual Savings\t| Share\t| Notes")
		fmt.Fprintln(tw, "________\t| ______________\t| _____\t| _____")
		shares := result.Ledger.Shares()
		for _, entry := range result.Ledger.Entries() {
			fmt.Fprintf(tw, "%s\t| %s\t| %s\t| %s\n",
				entry.Label,
				format.AnnualCurrency(entry.Amount),
				format.Percent(shares[entry.Category].Percent),
				skipNote(result, entry.Category),
			)
		}
		fmt.Fprintf(tw, "Total\t| %s\t|\t|\n", format.AnnualCurrency(result.Total()))
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}

func skipNote(result projection.Projection, category savings.Category) string {
	fields, ok := result.Skipped[category]
	if !ok {
		return ""
	}
	return "incomplete: " + strings.Join(fields, ",")
}

// CsvFormat outputs in comma-separated value format, one row per scenario and
// category followed by a total row per scenario.
func CsvFormat(w io.Writer, results []projection.Projection) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"scenario", "category", "label", "savings", "share"}); err != nil {
		return err
	}
	for _, result := range results {
		shares := result.Ledger.Shares()
		for _, entry := range result.Ledger.Entries() {
			row := []string{
				result.Name,
				entry.Category.String(),
				entry.Label,
				csvNumber(entry.Amount),
				csvNumber(shares[entry.Category].Percent),
			}
			if err := writer.Write(row); err != nil {
				return err
			}
		}
		if err := writer.Write([]string{result.Name, "total", "Total", csvNumber(result.Total()), "100.00"}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func csvNumber(v float64) string {
	v = mathutil.Round(v)
	if v == 0 {
		// no "-0.00"
		v = 0
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

type jsonProjection struct {
	Name    string                    `json:"name"`
	Entries []savings.Entry           `json:"entries"`
	Shares  []savings.Share           `json:"shares"`
	Total   float64                   `json:"total"`
	Results map[string]savings.Result `json:"results,omitempty"`
	Skipped map[string][]string       `json:"skipped,omitempty"`
	Notes   []string                  `json:"notes,omitempty"`
}

// JSONFormat outputs the projections as an indented JSON array.
func JSONFormat(w io.Writer, results []projection.Projection) error {
	payload := make([]jsonProjection, 0, len(results))
	for _, result := range results {
		item := jsonProjection{
			Name:    result.Name,
			Entries: result.Ledger.Entries(),
			Shares:  result.Ledger.Shares(),
			Total:   result.Total(),
			Notes:   result.Notes,
		}
		if len(result.Results) > 0 {
			item.Results = make(map[string]savings.Result, len(result.Results))
			for category, calculated := range result.Results {
				item.Results[category.String()] = calculated
			}
		}
		if len(result.Skipped) > 0 {
			item.Skipped = make(map[string][]string, len(result.Skipped))
			for category, fields := range result.Skipped {
				item.Skipped[category.String()] = fields
			}
		}
		payload = append(payload, item)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}
