// Package recommend turns predicted-versus-target differences into an
// ordered list of actionable adjustments.
package recommend

import (
	"fmt"
	"math"

	"github.com/iwvelando/fitness-forecast/pkg/constants"
	"github.com/iwvelando/fitness-forecast/pkg/fitness"
	"github.com/iwvelando/fitness-forecast/pkg/format"
	"github.com/iwvelando/fitness-forecast/pkg/mathutil"
)

// Tolerances are the differences treated as on track.
type Tolerances struct {
	Weight float64
	Cardio float64
	Muscle float64
}

// MacroSplit is the share of daily calories from each macronutrient.
type MacroSplit struct {
	Protein       float64
	Carbohydrates float64
	Fat           float64
}

// DefaultMacroSplit is used when the log carries no macronutrient data.
var DefaultMacroSplit = MacroSplit{Protein: 0.30, Carbohydrates: 0.40, Fat: 0.30}

// MacroSplitFrom derives the split from average logged macros. Logs without
// any protein, carbohydrate or fat calories fall back to DefaultMacroSplit.
func MacroSplitFrom(macros fitness.Macros) MacroSplit {
	protein := macros.Protein * constants.KcalPerGramProtein
	carbs := macros.Carbohydrates * constants.KcalPerGramCarbohydrate
	fat := macros.Fat * constants.KcalPerGramFat

	total := protein + carbs + fat
	if total <= 0 || !mathutil.IsFinite(total) {
		return DefaultMacroSplit
	}
	return MacroSplit{Protein: protein / total, Carbohydrates: carbs / total, Fat: fat / total}
}

// Options configure Synthesize.
type Options struct {
	Tolerances  Tolerances
	Split       MacroSplit
	KcalPerUnit float64
	Unit        string
}

// DefaultOptions uses pounds and the built-in tolerances.
func DefaultOptions() Options {
	return Options{
		Tolerances: Tolerances{
			Weight: constants.DefaultWeightTolerance,
			Cardio: constants.DefaultCardioTolerance,
			Muscle: constants.DefaultMuscleTolerance,
		},
		Split:       DefaultMacroSplit,
		KcalPerUnit: constants.KcalPerPound,
		Unit:        constants.UnitPound,
	}
}

// Synthesize maps differences beyond tolerance to recommendations: the diet
// adjustment first, then cardio, then muscle groups in target order. Muscle
// groups absent from the target, or listed with a zero improvement, never
// produce a recommendation. Overshooting cardio or strength targets is not
// penalized.
func Synthesize(diff fitness.Metrics, target fitness.TargetSpec, timeframeDays int, opts Options) ([]fitness.Recommendation, error) {
	var recs []fitness.Recommendation

	if math.Abs(diff.WeightChange) > opts.Tolerances.Weight {
		rec, err := dietRecommendation(diff.WeightChange, timeframeDays, opts)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}

	if shortfall := -diff.CardiovascularEndurance; shortfall > opts.Tolerances.Cardio {
		recs = append(recs, fitness.Recommendation{
			Kind:       fitness.KindCardio,
			Adjustment: shortfall,
			Message:    cardioMessage(shortfall),
		})
	}

	for _, m := range target.MuscleStrength {
		if m.Improvement == 0 {
			continue
		}
		shortfall := -diff.MuscleStrength[m.Group]
		if shortfall <= opts.Tolerances.Muscle {
			continue
		}
		recs = append(recs, fitness.Recommendation{
			Kind:       fitness.KindMuscle,
			Muscle:     m.Group,
			Adjustment: shortfall,
			Message: fmt.Sprintf("Add training volume for %s: projected strength is %.1f points short of the target",
				m.Group, shortfall),
		})
	}

	return recs, nil
}

// dietRecommendation converts the weight gap into a daily calorie change.
// A positive difference (gaining more or losing less than targeted) calls for
// eating less.
func dietRecommendation(weightDiff float64, timeframeDays int, opts Options) (fitness.Recommendation, error) {
	if timeframeDays <= 0 {
		return fitness.Recommendation{}, fmt.Errorf("%w: calorie adjustment over a %d day horizon", fitness.ErrPrecondition, timeframeDays)
	}
	kcalPerUnit := opts.KcalPerUnit
	if kcalPerUnit <= 0 {
		kcalPerUnit = constants.KcalPerPound
	}

	calories, err := mathutil.SafeDivide(-weightDiff*kcalPerUnit, float64(timeframeDays))
	if err != nil {
		return fitness.Recommendation{}, fmt.Errorf("%w: %v", fitness.ErrPrecondition, err)
	}

	adj := fitness.DietAdjustment{
		Calories:      calories,
		Protein:       calories * opts.Split.Protein / constants.KcalPerGramProtein,
		Carbohydrates: calories * opts.Split.Carbohydrates / constants.KcalPerGramCarbohydrate,
		Fat:           calories * opts.Split.Fat / constants.KcalPerGramFat,
	}

	direction := "Increase"
	if calories < 0 {
		direction = "Decrease"
	}
	message := fmt.Sprintf("%s daily intake by %s (protein %s, carbohydrates %s, fat %s); projected weight change is %s off target",
		direction,
		format.Calories(math.Abs(calories)),
		format.Grams(math.Abs(adj.Protein)),
		format.Grams(math.Abs(adj.Carbohydrates)),
		format.Grams(math.Abs(adj.Fat)),
		format.Weight(weightDiff, opts.Unit),
	)

	return fitness.Recommendation{
		Kind:       fitness.KindDiet,
		Adjustment: calories,
		Message:    message,
		Diet:       &adj,
	}, nil
}

func cardioMessage(shortfall float64) string {
	if shortfall > constants.SignificantShortfall {
		return fmt.Sprintf("Significantly increase cardiovascular training: projected endurance is %.1f points short of the target", shortfall)
	}
	return fmt.Sprintf("Add cardiovascular sessions: projected endurance is %.1f points short of the target", shortfall)
}
