// Package fitness defines the data structures shared by the goal-projection
// pipeline: daily log entries, targets, aggregated metrics, predictions and
// recommendations.
package fitness

import (
	"github.com/iwvelando/fitness-forecast/pkg/constants"
	"github.com/iwvelando/fitness-forecast/pkg/datetime"
	"github.com/iwvelando/fitness-forecast/pkg/muscle"
)

// Macros holds nutrient totals in grams.
type Macros struct {
	Fat           float64 `json:"fat" yaml:"fat"`
	Protein       float64 `json:"protein" yaml:"protein"`
	Carbohydrates float64 `json:"carbohydrates" yaml:"carbohydrates"`
	Sugars        float64 `json:"sugars" yaml:"sugars"`
	SaturatedFats float64 `json:"saturatedFats" yaml:"saturatedFats"`
}

// Add returns the element-wise sum of m and other.
func (m Macros) Add(other Macros) Macros {
	return Macros{
		Fat:           m.Fat + other.Fat,
		Protein:       m.Protein + other.Protein,
		Carbohydrates: m.Carbohydrates + other.Carbohydrates,
		Sugars:        m.Sugars + other.Sugars,
		SaturatedFats: m.SaturatedFats + other.SaturatedFats,
	}
}

// Scale returns m with every field multiplied by factor.
func (m Macros) Scale(factor float64) Macros {
	return Macros{
		Fat:           m.Fat * factor,
		Protein:       m.Protein * factor,
		Carbohydrates: m.Carbohydrates * factor,
		Sugars:        m.Sugars * factor,
		SaturatedFats: m.SaturatedFats * factor,
	}
}

// LogEntry is one calendar day of a user's log. Dates are unique within a
// history; entries sharing a date are merged.
type LogEntry struct {
	Date             datetime.Date      `json:"date" yaml:"date"`
	CaloriesConsumed float64            `json:"caloriesConsumed" yaml:"caloriesConsumed"`
	CaloriesBurned   float64            `json:"caloriesBurned" yaml:"caloriesBurned"`
	Macros           Macros             `json:"macros" yaml:"macros"`
	ExerciseMinutes  map[string]float64 `json:"exerciseMinutesByCategory,omitempty" yaml:"exerciseMinutesByCategory,omitempty"`
	MuscleVolume     map[string]float64 `json:"muscleGroupVolume,omitempty" yaml:"muscleGroupVolume,omitempty"`
}

// NetCalories is calories consumed minus calories burned.
func (e LogEntry) NetCalories() float64 {
	return e.CaloriesConsumed - e.CaloriesBurned
}

// MuscleTarget is the desired percentage improvement for one muscle group.
type MuscleTarget struct {
	Group       string  `json:"muscle" yaml:"muscle"`
	Improvement float64 `json:"improvement" yaml:"improvement"`
}

// TargetSpec is the user's stated goal over a horizon. MuscleStrength keeps
// the caller's order; groups it omits target a 0% improvement.
type TargetSpec struct {
	TimeframeDays     int
	Date              datetime.Date
	WeightChange      float64
	CardioImprovement float64
	MuscleStrength    []MuscleTarget
}

// CardioTarget is the baseline-relative cardiovascular endurance target.
func (t TargetSpec) CardioTarget() float64 {
	return constants.BaselineScore + t.CardioImprovement
}

// MuscleTarget returns the baseline-relative target for a group and whether
// the group was listed explicitly.
func (t TargetSpec) MuscleTarget(group string) (float64, bool) {
	for _, m := range t.MuscleStrength {
		if m.Group == group {
			return constants.BaselineScore + m.Improvement, true
		}
	}
	return constants.BaselineScore, false
}

// TargetFromBaseline builds a TargetSpec from baseline-relative values
// (100 = no change), the form used by requests and configuration files.
func TargetFromBaseline(timeframeDays int, weightChange, cardio float64, muscles MuscleScores) TargetSpec {
	spec := TargetSpec{
		TimeframeDays:     timeframeDays,
		WeightChange:      weightChange,
		CardioImprovement: cardio - constants.BaselineScore,
	}
	for _, m := range muscles {
		spec.MuscleStrength = append(spec.MuscleStrength, MuscleTarget{
			Group:       m.Group,
			Improvement: m.Value - constants.BaselineScore,
		})
	}
	return spec
}

// AggregatedMetrics are daily averages over a historical window.
type AggregatedMetrics struct {
	WindowDays       int
	DaysLogged       int
	CaloriesConsumed float64
	CaloriesBurned   float64
	NetCalories      float64
	Macros           Macros
	CardioLoad       float64
	MuscleVolume     map[string]float64
}

// NewAggregatedMetrics returns zero metrics with every muscle group present.
func NewAggregatedMetrics(windowDays int) AggregatedMetrics {
	return AggregatedMetrics{
		WindowDays:   windowDays,
		MuscleVolume: zeroMuscles(0),
	}
}

// Metrics is one set of end-state values: predicted, target, or their difference.
type Metrics struct {
	WeightChange            float64            `json:"weightChange"`
	CardiovascularEndurance float64            `json:"cardiovascularEndurance"`
	MuscleStrength          map[string]float64 `json:"muscleStrength"`
}

// BaselineMetrics is the no-change end state.
func BaselineMetrics() Metrics {
	return Metrics{
		CardiovascularEndurance: constants.BaselineScore,
		MuscleStrength:          zeroMuscles(constants.BaselineScore),
	}
}

// NewDifferenceMetrics returns zero differences with every muscle group present.
func NewDifferenceMetrics() Metrics {
	return Metrics{MuscleStrength: zeroMuscles(0)}
}

func zeroMuscles(value float64) map[string]float64 {
	m := make(map[string]float64, muscle.Count)
	for _, g := range muscle.All() {
		m[g] = value
	}
	return m
}

// Kind classifies a recommendation.
type Kind string

const (
	KindDiet   Kind = "diet"
	KindCardio Kind = "cardio"
	KindMuscle Kind = "muscle"
)

// DietAdjustment is a daily intake change; positive values mean eat more.
type DietAdjustment struct {
	Calories      float64 `json:"calorie_adjustment"`
	Protein       float64 `json:"protein_adjustment"`
	Carbohydrates float64 `json:"carbs_adjustment"`
	Fat           float64 `json:"fat_adjustment"`
}

// Recommendation is one actionable adjustment.
type Recommendation struct {
	Kind       Kind            `json:"kind"`
	Muscle     string          `json:"muscle,omitempty"`
	Adjustment float64         `json:"adjustment"`
	Message    string          `json:"recommendation"`
	Diet       *DietAdjustment `json:"diet,omitempty"`
}

// PredictionResult is the engine output for one request.
type PredictionResult struct {
	Aggregated      AggregatedMetrics
	Predicted       Metrics
	Target          Metrics
	Differences     Metrics
	Recommendations []Recommendation
}
