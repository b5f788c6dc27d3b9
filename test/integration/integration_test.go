package integration

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iwvelando/flexo-savings/internal/config"
	"github.com/iwvelando/flexo-savings/internal/projection"
	"github.com/iwvelando/flexo-savings/internal/savings"
	"github.com/iwvelando/flexo-savings/internal/server"
	"github.com/iwvelando/flexo-savings/internal/session"
	"github.com/iwvelando/flexo-savings/internal/storage"
	"github.com/iwvelando/flexo-savings/pkg/constants"
	"github.com/iwvelando/flexo-savings/pkg/mathutil"
	"github.com/iwvelando/flexo-savings/pkg/output"
	"github.com/iwvelando/flexo-savings/pkg/testutil"
	"go.uber.org/zap"
)

func loadProjections(t *testing.T, path string) []projection.Projection {
	t.Helper()
	conf, err := config.LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	results, err := projection.GetProjections(zap.NewNop(), *conf)
	if err != nil {
		t.Fatalf("GetProjections() error = %v", err)
	}
	return results
}

// TestMainIntegrationBaseline runs the configuration through the same steps as main().
func TestMainIntegrationBaseline(t *testing.T) {
	results := loadProjections(t, "../test_config.yaml")

	expectedScenarios := []string{"baseline", "slower press"}
	if len(results) != len(expectedScenarios) {
		t.Fatalf("Expected %d scenarios, got %d", len(expectedScenarios), len(results))
	}
	for i, expected := range expectedScenarios {
		if results[i].Name != expected {
			t.Errorf("Expected scenario %s, got %s", expected, results[i].Name)
		}
	}

	baselineChecks := []struct {
		scenario    string
		category    savings.Category
		expectedVal float64
	}{
		{"baseline", savings.Plates, 500},
		{"baseline", savings.AdjustmentSpeed, 5833.33},
		{"baseline", savings.PrintSpeed, 8000},
		{"baseline", savings.WhiteInk, 1000},
		{"baseline", savings.ColoredInk, 0},
		{"baseline", savings.PlateStopRatio, 0},
		{"slower press", savings.PrintSpeed, -10000},
		{"slower press", savings.ColoredInk, 0},
	}

	for _, check := range baselineChecks {
		result := testutil.FindProjection(results, check.scenario)
		if result == nil {
			t.Fatalf("Scenario %s not found", check.scenario)
		}
		got := result.Ledger.Get(check.category)
		if !mathutil.WithinTolerance(got, check.expectedVal, constants.CurrencyTolerance) {
			t.Errorf("%s %v = %.2f, expected %.2f", check.scenario, check.category, got, check.expectedVal)
		}
	}
}

func TestExampleConfiguration(t *testing.T) {
	path := filepath.Join("..", "..", constants.ExampleConfigFile)
	conf, err := config.LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if warnings := conf.ValidateConfiguration(); len(warnings) != 0 {
		t.Errorf("expected the example configuration to be clean, got %v", warnings)
	}

	results := loadProjections(t, path)
	if len(results) != 1 {
		t.Fatalf("expected one active scenario, got %d", len(results))
	}
	if !mathutil.WithinTolerance(results[0].Total(), 25293.33, constants.CurrencyTolerance) {
		t.Errorf("expected total 25293.33, got %.2f", results[0].Total())
	}
	if len(results[0].Skipped) != 0 {
		t.Errorf("expected no skipped panels, got %v", results[0].Skipped)
	}
}

func TestConfigurationValidation(t *testing.T) {
	conf, err := config.LoadConfiguration("../test_config.yaml")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	warnings := conf.ValidateConfiguration()
	expected := "Scenario 'slower press' panel 'colored_ink' is incomplete and will be skipped (unitCost)"
	found := false
	for _, warning := range warnings {
		if warning == expected {
			found = true
		}
	}
	if !found {
		t.Errorf("expected warning %q, got %v", expected, warnings)
	}
}

func TestCSVOutputFormat(t *testing.T) {
	results := loadProjections(t, "../test_config.yaml")

	var buf bytes.Buffer
	if err := output.CsvFormat(&buf, results); err != nil {
		t.Fatalf("CsvFormat() error = %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("failed to parse CSV: %v", err)
	}

	// header + two scenarios of six categories and a total each
	if len(records) != 1+2*7 {
		t.Fatalf("expected %d records, got %d", 1+2*7, len(records))
	}

	totals := map[string]string{}
	for _, record := range records[1:] {
		if len(record) != 5 {
			t.Fatalf("expected 5 columns, got %v", record)
		}
		if record[1] == "total" {
			totals[record[0]] = record[3]
		}
	}
	if totals["baseline"] != "15333.33" || totals["slower press"] != "-10000.00" {
		t.Errorf("unexpected totals %v", totals)
	}
}

func TestPrettyOutputFormat(t *testing.T) {
	results := loadProjections(t, "../test_config.yaml")

	var buf bytes.Buffer
	if err := output.PrettyFormat(&buf, results); err != nil {
		t.Fatalf("PrettyFormat() error = %v", err)
	}
	text := buf.String()

	for _, fragment := range []string{
		"--- Savings for scenario baseline ---",
		"--- Savings for scenario slower press ---",
		"$15,333.33/yr",
		"-$10,000.00/yr",
		"incomplete: unitCost",
	} {
		if !strings.Contains(text, fragment) {
			t.Errorf("pretty output missing %q:\n%s", fragment, text)
		}
	}
}

// TestEndToEndServer drives the HTTP API against a SQLite-backed store.
func TestEndToEndServer(t *testing.T) {
	store, err := storage.NewSQLiteStore(zap.NewNop(), filepath.Join(t.TempDir(), "sessions.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	defer store.Close()

	handler := server.NewHandler(zap.NewNop(), session.NewService(zap.NewNop(), store), 0, "test")
	ts := httptest.NewServer(handler)
	defer ts.Close()

	resp := doRequest(t, http.MethodPost, ts.URL+"/api/sessions", `{"name": "end to end"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	var created struct {
		ID string `json:"id"`
	}
	decodeResponse(t, resp, &created)

	panels := map[string]string{
		"plates":           `{"annualConsumption": 1000, "currentCost": 2.0, "targetCost": 1.5}`,
		"adjustment_speed": `{"annualJobs": 100, "hourlyValue": 50, "currentTime": 30, "timeReduction": 10, "currentMaterial": 20, "materialCost": 5, "materialReductionPct": 50}`,
		"print_speed":      `{"availableHours": 1000, "hourlyValue": 40, "currentSpeed": 50, "newSpeed": 60}`,
		"white_ink":        `{"consumption": 500, "unitCost": 10, "reductionPct": 20}`,
		"colored_ink":      `{"consumption": 800, "unitCost": 12, "reductionPct": 10}`,
		"plate_stop_ratio": `{"annualJobs": 200, "hourlyValue": 60, "minutesPerStop": 15, "currentStops": 4, "newStops": 1}`,
	}
	for category, body := range panels {
		resp := doRequest(t, http.MethodPut, ts.URL+"/api/sessions/"+created.ID+"/panels/"+category, body)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("PUT %s expected 200, got %d", category, resp.StatusCode)
		}
		resp.Body.Close()
	}

	resp = doRequest(t, http.MethodGet, ts.URL+"/api/sessions/"+created.ID+"/total", "")
	var total struct {
		Total float64 `json:"total"`
	}
	decodeResponse(t, resp, &total)
	if !mathutil.WithinTolerance(total.Total, 25293.33, constants.CurrencyTolerance) {
		t.Errorf("expected total 25293.33, got %.2f", total.Total)
	}

	reloaded, err := store.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if len(reloaded.Results) != len(panels) {
		t.Errorf("expected %d stored results, got %d", len(panels), len(reloaded.Results))
	}
}

func doRequest(t *testing.T, method, url, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatalf("NewRequest() error = %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s error = %v", method, url, err)
	}
	return resp
}

func decodeResponse(t *testing.T, resp *http.Response, dst interface{}) {
	t.Helper()
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response: %v", err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		t.Fatalf("failed to decode response %q: %v", data, err)
	}
}
