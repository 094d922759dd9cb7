// Package comparison computes signed differences between predicted and
// target end states.
package comparison

import (
	"github.com/iwvelando/fitness-forecast/pkg/fitness"
)

// Targets expands a TargetSpec into baseline-relative end-state values for
// every metric; unlisted muscle groups target the baseline.
func Targets(target fitness.TargetSpec) fitness.Metrics {
	out := fitness.BaselineMetrics()
	out.WeightChange = target.WeightChange
	out.CardiovascularEndurance = target.CardioTarget()
	for group := range out.MuscleStrength {
		out.MuscleStrength[group], _ = target.MuscleTarget(group)
	}
	return out
}

// Compare returns the target end state and predicted minus target for each
// metric. Values are raw; rounding is a presentation concern.
func Compare(predicted fitness.Metrics, target fitness.TargetSpec) (fitness.Metrics, fitness.Metrics) {
	targets := Targets(target)
	differences := fitness.NewDifferenceMetrics()

	differences.WeightChange = predicted.WeightChange - targets.WeightChange
	differences.CardiovascularEndurance = predicted.CardiovascularEndurance - targets.CardiovascularEndurance
	for group, want := range targets.MuscleStrength {
		differences.MuscleStrength[group] = predicted.MuscleStrength[group] - want
	}
	return targets, differences
}
