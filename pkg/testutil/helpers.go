// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/fitness-forecast/pkg/datetime"
	"github.com/iwvelando/fitness-forecast/pkg/fitness"
)

// ConstantHistory returns days consecutive entries starting at start, each a
// copy of template with its own maps.
func ConstantHistory(start string, days int, template fitness.LogEntry) []fitness.LogEntry {
	first := datetime.MustParseDate(start)
	entries := make([]fitness.LogEntry, 0, days)
	for i := 0; i < days; i++ {
		entry := template
		entry.Date = first.AddDays(i)
		entry.ExerciseMinutes = copyMap(template.ExerciseMinutes)
		entry.MuscleVolume = copyMap(template.MuscleVolume)
		entries = append(entries, entry)
	}
	return entries
}

// DeficitHistory returns days entries with a constant net calorie balance
// (negative for a deficit) and no training.
func DeficitHistory(start string, days int, net float64) []fitness.LogEntry {
	consumed, burned := 2000.0, 2000.0-net
	if net > 0 {
		consumed, burned = 2000.0+net, 2000.0
	}
	return ConstantHistory(start, days, fitness.LogEntry{
		CaloriesConsumed: consumed,
		CaloriesBurned:   burned,
	})
}

// Target returns a TargetSpec with muscle targets kept in the given order.
func Target(timeframeDays int, weightChange, cardioImprovement float64, muscles ...fitness.MuscleTarget) fitness.TargetSpec {
	return fitness.TargetSpec{
		TimeframeDays:     timeframeDays,
		WeightChange:      weightChange,
		CardioImprovement: cardioImprovement,
		MuscleStrength:    muscles,
	}
}

func copyMap(in map[string]float64) map[string]float64 {
	if in == nil {
		return nil
	}
	out := make(map[string]float64, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
