// Package configprocessor provides shared configuration processing utilities.
package configprocessor

import (
	"fmt"
	"math"

	"github.com/iwvelando/fitness-forecast/pkg/constants"
)

// minUsefulWindowDays is the shortest window that smooths weekly routines.
const minUsefulWindowDays = 7

// ScenarioInfo represents scenario configuration information
type ScenarioInfo struct {
	Name          string
	Active        bool
	TimeframeDays int
	WeightChange  float64
}

// CommonInfo represents settings shared by every scenario
type CommonInfo struct {
	HistoryFile string
	WindowDays  int
	WeightUnit  string
}

// Processor handles configuration processing and validation
type Processor struct{}

// NewProcessor creates a new configuration processor
func NewProcessor() *Processor {
	return &Processor{}
}

// ValidateConfiguration checks a configuration for settings that are legal
// but likely mistakes and returns them as warnings.
func (p *Processor) ValidateConfiguration(common CommonInfo, scenarios []ScenarioInfo) []string {
	var warnings []string

	if common.HistoryFile == "" {
		warnings = append(warnings, "No history file configured; predictions start from an empty baseline")
	}
	if common.WindowDays > 0 && common.WindowDays < minUsefulWindowDays {
		warnings = append(warnings, fmt.Sprintf("Aggregation window of %d days is shorter than one week", common.WindowDays))
	}

	maxPerWeek := constants.MaxSafePoundsPerWeek
	unit := constants.UnitPound
	if common.WeightUnit == constants.UnitKilogram {
		maxPerWeek = constants.MaxSafePoundsPerWeek / constants.PoundsPerKilogram
		unit = constants.UnitKilogram
	}

	active := 0
	for _, scenario := range scenarios {
		if !scenario.Active {
			continue
		}
		active++

		if scenario.TimeframeDays > constants.MaxHorizonDays {
			warnings = append(warnings, fmt.Sprintf("Scenario '%s' projects %d days ahead; projections beyond %d days are unreliable",
				scenario.Name, scenario.TimeframeDays, constants.MaxHorizonDays))
		}

		if scenario.TimeframeDays > 0 {
			perWeek := math.Abs(scenario.WeightChange) / float64(scenario.TimeframeDays) * 7
			if perWeek > maxPerWeek {
				warnings = append(warnings, fmt.Sprintf("Scenario '%s' targets %.2f %s per week, above the recommended %.2f %s per week",
					scenario.Name, perWeek, unit, maxPerWeek, unit))
			}
		}
	}

	if active == 0 {
		warnings = append(warnings, "No active scenarios; nothing will be forecast")
	}

	if len(warnings) == 0 {
		return nil
	}
	return warnings
}
