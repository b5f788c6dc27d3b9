// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config.
package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/flexo-savings/internal/savings"
	"github.com/iwvelando/flexo-savings/pkg/constants"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for flexo-savings.
type Configuration struct {
	Common    Common        `yaml:"common,omitempty"`
	Scenarios []Scenario    `yaml:"scenarios"`
	Logging   LoggingConfig `yaml:"logging,omitempty"`
	Output    OutputConfig  `yaml:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv, json
}

// Common holds press figures shared by every scenario. A panel that leaves
// one of these at zero takes the common value.
type Common struct {
	HourlyValue float64 `json:"hourlyValue,omitempty" yaml:"hourlyValue,omitempty"`
	AnnualJobs  float64 `json:"annualJobs,omitempty" yaml:"annualJobs,omitempty"`
}

// Scenario holds the panel inputs of one savings projection. Panels left out
// of the file are not calculated.
type Scenario struct {
	Name            string                   `yaml:"name"`
	Active          bool                     `yaml:"active"`
	Plates          *savings.PlateInput      `yaml:"plates,omitempty"`
	AdjustmentSpeed *savings.AdjustmentInput `yaml:"adjustmentSpeed,omitempty"`
	PrintSpeed      *savings.PrintSpeedInput `yaml:"printSpeed,omitempty"`
	WhiteInk        *savings.InkInput        `yaml:"whiteInk,omitempty"`
	ColoredInk      *savings.InkInput        `yaml:"coloredInk,omitempty"`
	PlateStopRatio  *savings.PlateStopInput  `yaml:"plateStopRatio,omitempty"`
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	return decode(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	return decode(v)
}

// envKeys can be set from FLEXO_* variables even when the file leaves them out,
// e.g. FLEXO_LOGGING_LEVEL or FLEXO_COMMON_HOURLYVALUE.
var envKeys = []string{
	"common.hourlyValue",
	"common.annualJobs",
	"logging.level",
	"logging.format",
	"logging.outputFile",
	"output.format",
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range envKeys {
		// BindEnv only fails without a key
		_ = v.BindEnv(key)
	}
	return v
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	return &configuration, nil
}

// Inputs returns the calculator inputs of every panel present in the scenario,
// in canonical category order, with common figures filled in.
func (s Scenario) Inputs(common Common) []savings.Input {
	var inputs []savings.Input
	if s.Plates != nil {
		inputs = append(inputs, *s.Plates)
	}
	if s.AdjustmentSpeed != nil {
		in := *s.AdjustmentSpeed
		in.HourlyValue = fallback(in.HourlyValue, common.HourlyValue)
		in.AnnualJobs = fallback(in.AnnualJobs, common.AnnualJobs)
		inputs = append(inputs, in)
	}
	if s.PrintSpeed != nil {
		in := *s.PrintSpeed
		in.HourlyValue = fallback(in.HourlyValue, common.HourlyValue)
		inputs = append(inputs, in)
	}
	if s.WhiteInk != nil {
		inputs = append(inputs, savings.WhiteInkInput(*s.WhiteInk))
	}
	if s.ColoredInk != nil {
		inputs = append(inputs, savings.ColoredInkInput(*s.ColoredInk))
	}
	if s.PlateStopRatio != nil {
		in := *s.PlateStopRatio
		in.HourlyValue = fallback(in.HourlyValue, common.HourlyValue)
		in.AnnualJobs = fallback(in.AnnualJobs, common.AnnualJobs)
		inputs = append(inputs, in)
	}
	return inputs
}

// SetPanel stores in as the scenario's panel for its category, replacing any
// panel already there.
func (s *Scenario) SetPanel(in savings.Input) {
	switch v := in.(type) {
	case savings.PlateInput:
		s.Plates = &v
	case savings.AdjustmentInput:
		s.AdjustmentSpeed = &v
	case savings.PrintSpeedInput:
		s.PrintSpeed = &v
	case savings.WhiteInkInput:
		ink := savings.InkInput(v)
		s.WhiteInk = &ink
	case savings.ColoredInkInput:
		ink := savings.InkInput(v)
		s.ColoredInk = &ink
	case savings.PlateStopInput:
		s.PlateStopRatio = &v
	}
}

func fallback(value, common float64) float64 {
	if value == 0 {
		return common
	}
	return value
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if len(c.Scenarios) == 0 {
		return append(warnings, "No scenarios defined")
	}

	active := 0
	seen := make(map[string]bool)
	for _, scenario := range c.Scenarios {
		if seen[scenario.Name] {
			warnings = append(warnings, fmt.Sprintf("Scenario name '%s' is used more than once", scenario.Name))
		}
		seen[scenario.Name] = true

		if !scenario.Active {
			continue
		}
		active++

		inputs := scenario.Inputs(c.Common)
		if len(inputs) == 0 {
			warnings = append(warnings, fmt.Sprintf("Scenario '%s' has no panels", scenario.Name))
			continue
		}
		for _, in := range inputs {
			if missing := in.Missing(); len(missing) > 0 {
				warnings = append(warnings, fmt.Sprintf("Scenario '%s' panel '%s' is incomplete and will be skipped (%s)",
					scenario.Name, in.Category(), strings.Join(missing, ", ")))
			}
		}
	}

	if active == 0 {
		warnings = append(warnings, "No active scenarios")
	}

	return warnings
}
