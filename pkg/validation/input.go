package validation

import (
	"fmt"
	"sort"

	"go.uber.org/multierr"

	"github.com/iwvelando/fitness-forecast/pkg/fitness"
	"github.com/iwvelando/fitness-forecast/pkg/mathutil"
	"github.com/iwvelando/fitness-forecast/pkg/muscle"
)

// ValidateTarget checks a target before any computation. Every violation is
// reported; each one unwraps to fitness.ErrInvalidInput.
func ValidateTarget(target fitness.TargetSpec) error {
	var err error

	if target.TimeframeDays <= 0 {
		err = multierr.Append(err, fitness.Invalid("timeframeDays", "must be positive, got %d", target.TimeframeDays))
	}
	if !mathutil.IsFinite(target.WeightChange) {
		err = multierr.Append(err, fitness.Invalid("weightChange", "must be a finite number"))
	}
	err = multierr.Append(err, nonNegative("cardiovascularEndurance", target.CardioTarget()))

	seen := make(map[string]struct{}, len(target.MuscleStrength))
	for _, m := range target.MuscleStrength {
		field := "muscleStrength." + m.Group
		if !muscle.IsValid(m.Group) {
			err = multierr.Append(err, fitness.Invalid(field, "unknown muscle group"))
			continue
		}
		if _, dup := seen[m.Group]; dup {
			err = multierr.Append(err, fitness.Invalid(field, "listed more than once"))
			continue
		}
		seen[m.Group] = struct{}{}

		value, _ := target.MuscleTarget(m.Group)
		err = multierr.Append(err, nonNegative(field, value))
	}

	return err
}

// ValidateEntries checks a log history: every entry needs a date and
// non-negative, finite quantities, and muscle group keys must be known.
func ValidateEntries(entries []fitness.LogEntry) error {
	var err error
	for i, entry := range entries {
		prefix := fmt.Sprintf("entries[%d]", i)
		if entry.Date.IsZero() {
			err = multierr.Append(err, fitness.Invalid(prefix+".date", "is required"))
		}

		err = multierr.Combine(err,
			nonNegative(prefix+".caloriesConsumed", entry.CaloriesConsumed),
			nonNegative(prefix+".caloriesBurned", entry.CaloriesBurned),
			nonNegative(prefix+".macros.fat", entry.Macros.Fat),
			nonNegative(prefix+".macros.protein", entry.Macros.Protein),
			nonNegative(prefix+".macros.carbohydrates", entry.Macros.Carbohydrates),
			nonNegative(prefix+".macros.sugars", entry.Macros.Sugars),
			nonNegative(prefix+".macros.saturatedFats", entry.Macros.SaturatedFats),
		)

		for _, category := range sortedKeys(entry.ExerciseMinutes) {
			err = multierr.Append(err, nonNegative(prefix+".exerciseMinutesByCategory."+category, entry.ExerciseMinutes[category]))
		}
		for _, group := range sortedKeys(entry.MuscleVolume) {
			field := prefix + ".muscleGroupVolume." + group
			if _, ok := muscle.Normalize(group); !ok {
				err = multierr.Append(err, fitness.Invalid(field, "unknown muscle group"))
				continue
			}
			err = multierr.Append(err, nonNegative(field, entry.MuscleVolume[group]))
		}
	}
	return err
}

func nonNegative(field string, value float64) error {
	if !mathutil.IsFinite(value) {
		return fitness.Invalid(field, "must be a finite number")
	}
	if value < 0 {
		return fitness.Invalid(field, "must not be negative, got %g", value)
	}
	return nil
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
