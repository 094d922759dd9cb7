// Package config defines the data structures related to configuration and
// includes functions for loading, parsing and validating the config.
package config

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/multierr"

	"github.com/iwvelando/fitness-forecast/pkg/configprocessor"
	"github.com/iwvelando/fitness-forecast/pkg/constants"
	"github.com/iwvelando/fitness-forecast/pkg/datetime"
	"github.com/iwvelando/fitness-forecast/pkg/validation"
)

// DateLayout is the format expected in config files and is also the output
// date format.
const DateLayout = constants.DateLayout

// keyDelimiter replaces viper's "." so exercise names such as
// "Walking, 3.5 mph" stay single keys.
const keyDelimiter = "::"

// Configuration holds all configuration for fitness-forecast.
type Configuration struct {
	Common    Common
	Engine    Engine
	Exercises map[string]float64 // kcal per hour, for exercises logged without calories
	Scenarios []Scenario
	Optimizer OptimizerConfig `yaml:"optimizer,omitempty"`
	Logging   LoggingConfig   `yaml:"logging,omitempty"`
	Output    OutputConfig    `yaml:"output,omitempty"`
}

// OptimizerConfig bounds the horizon search run with -optimize.
type OptimizerConfig struct {
	MaxDays       int `yaml:"maxDays,omitempty"`       // longest horizon considered
	MaxIterations int `yaml:"maxIterations,omitempty"` // bisection steps per scenario
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
	MaxSizeMB  int    `yaml:"maxSizeMB,omitempty"`  // rotate the output file at this size
	MaxBackups int    `yaml:"maxBackups,omitempty"` // rotated files to keep
	Compress   bool   `yaml:"compress,omitempty"`   // gzip rotated files
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv, json
}

// Common holds the parameters shared between all scenarios.
type Common struct {
	HistoryFile string
	WindowDays  int
	AsOf        string // last day of the aggregation window; empty means the latest entry
	WeightUnit  string // lb or kg
}

// Engine holds the model constants. Zero values fall back to the built-in
// defaults.
type Engine struct {
	Cardio                Saturation
	Strength              Saturation
	Tolerances            Tolerances
	MacroSplit            MacroSplit
	CategoryWeights       map[string]float64
	DefaultCategoryWeight float64
	KcalPerUnit           float64
	WorkoutVolume         float64
}

// Saturation bounds a projected gain.
type Saturation struct {
	Cap float64
	Tau float64
}

// Tolerances are the differences treated as on track. Unset fields keep the
// defaults; 0 asks for an exact match.
type Tolerances struct {
	Weight *float64
	Cardio *float64
	Muscle *float64
}

// MacroSplit fixes the calorie share of each macronutrient. When unset the
// split is derived from the logged macros.
type MacroSplit struct {
	Protein       float64
	Carbohydrates float64
	Fat           float64
}

// Scenario is one goal to forecast.
type Scenario struct {
	Name          string
	Active        bool
	TimeframeDays int
	Target        Target
}

// Target is a goal in the baseline-relative form (100 = no change).
// Muscle groups left out target 100.
type Target struct {
	Date                    string
	WeightChange            float64
	CardiovascularEndurance *float64
	MuscleStrength          map[string]float64
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.NewWithOptions(viper.KeyDelimiter(keyDelimiter))
	v.SetConfigFile(configPath)
	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %w", err)
	}
	return decode(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := viper.NewWithOptions(viper.KeyDelimiter(keyDelimiter))
	v.SetConfigType("yml")

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %w", err)
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}
	return &configuration, nil
}

// Validate reports configuration errors that make forecasting impossible.
// Every problem is reported.
func (c *Configuration) Validate() error {
	var err error

	if c.Output.Format != "" {
		err = multierr.Append(err, validation.ValidateOutputFormat(c.Output.Format))
	}
	switch c.Common.WeightUnit {
	case "", constants.UnitPound, constants.UnitKilogram:
	default:
		err = multierr.Append(err, fmt.Errorf("common.weightUnit: expected %s or %s, got %s",
			constants.UnitPound, constants.UnitKilogram, c.Common.WeightUnit))
	}
	if c.Common.WindowDays < 0 {
		err = multierr.Append(err, fmt.Errorf("common.windowDays: must not be negative, got %d", c.Common.WindowDays))
	}
	if c.Optimizer.MaxDays < 0 {
		err = multierr.Append(err, fmt.Errorf("optimizer.maxDays: must not be negative, got %d", c.Optimizer.MaxDays))
	}
	for name, tol := range map[string]*float64{
		"weight": c.Engine.Tolerances.Weight,
		"cardio": c.Engine.Tolerances.Cardio,
		"muscle": c.Engine.Tolerances.Muscle,
	} {
		if tol != nil && *tol < 0 {
			err = multierr.Append(err, fmt.Errorf("engine.tolerances.%s: must not be negative, got %v", name, *tol))
		}
	}
	if c.Common.AsOf != "" {
		if _, parseErr := datetime.ParseDate(c.Common.AsOf); parseErr != nil {
			err = multierr.Append(err, fmt.Errorf("common.asOf: %w", parseErr))
		}
	}

	if len(c.Scenarios) == 0 {
		err = multierr.Append(err, fmt.Errorf("scenarios: at least one scenario is required"))
	}
	names := make(map[string]struct{}, len(c.Scenarios))
	for i, scenario := range c.Scenarios {
		name := strings.TrimSpace(scenario.Name)
		if name == "" {
			err = multierr.Append(err, fmt.Errorf("scenarios[%d].name: is required", i))
		} else if _, dup := names[name]; dup {
			err = multierr.Append(err, fmt.Errorf("scenarios[%d].name: duplicate name %q", i, name))
		}
		names[name] = struct{}{}

		if scenario.Target.Date != "" {
			if _, parseErr := datetime.ParseDate(scenario.Target.Date); parseErr != nil {
				err = multierr.Append(err, fmt.Errorf("scenarios[%d].target.date: %w", i, parseErr))
			}
		}
	}

	return err
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	scenarios := make([]configprocessor.ScenarioInfo, 0, len(c.Scenarios))
	for _, scenario := range c.Scenarios {
		scenarios = append(scenarios, configprocessor.ScenarioInfo{
			Name:          scenario.Name,
			Active:        scenario.Active,
			TimeframeDays: scenario.TimeframeDays,
			WeightChange:  scenario.Target.WeightChange,
		})
	}

	processor := configprocessor.NewProcessor()
	return processor.ValidateConfiguration(configprocessor.CommonInfo{
		HistoryFile: c.Common.HistoryFile,
		WindowDays:  c.Common.WindowDays,
		WeightUnit:  c.Common.WeightUnit,
	}, scenarios)
}

// ActiveScenarios returns the active scenarios in file order.
func (c *Configuration) ActiveScenarios() []Scenario {
	var active []Scenario
	for _, scenario := range c.Scenarios {
		if scenario.Active {
			active = append(active, scenario)
		}
	}
	return active
}

// HistoryPath returns the history file path. A relative path is resolved
// against the directory of the configuration file at configPath.
func (c *Configuration) HistoryPath(configPath string) string {
	path := c.Common.HistoryFile
	if path == "" || filepath.IsAbs(path) || configPath == "" {
		return path
	}
	return filepath.Join(filepath.Dir(configPath), path)
}
