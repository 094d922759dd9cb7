// Package adapters converts configuration values into the types consumed by
// the engine and the history loader.
package adapters

import (
	"fmt"
	"sort"

	"github.com/iwvelando/fitness-forecast/internal/config"
	"github.com/iwvelando/fitness-forecast/pkg/aggregate"
	"github.com/iwvelando/fitness-forecast/pkg/constants"
	"github.com/iwvelando/fitness-forecast/pkg/datetime"
	"github.com/iwvelando/fitness-forecast/pkg/engine"
	"github.com/iwvelando/fitness-forecast/pkg/fitness"
	"github.com/iwvelando/fitness-forecast/pkg/history"
	"github.com/iwvelando/fitness-forecast/pkg/muscle"
	"github.com/iwvelando/fitness-forecast/pkg/projection"
	"github.com/iwvelando/fitness-forecast/pkg/recommend"
)

// EngineParams builds engine parameters from the configuration. Unset or
// non-positive values keep the built-in defaults.
func EngineParams(conf config.Configuration) (engine.Params, error) {
	params := engine.DefaultParams()

	if conf.Common.WindowDays > 0 {
		params.WindowDays = conf.Common.WindowDays
	}
	if conf.Common.AsOf != "" {
		asOf, err := datetime.ParseDate(conf.Common.AsOf)
		if err != nil {
			return engine.Params{}, fmt.Errorf("common.asOf: %w", err)
		}
		params.AsOf = asOf
	}

	params.Weights = categoryWeights(conf.Engine)
	params.Model = model(conf)
	params.Recommend = recommendOptions(conf, params.Model.KcalPerUnit)
	return params, nil
}

// WeightUnit returns the configured weight unit, defaulting to pounds.
func WeightUnit(conf config.Configuration) string {
	if conf.Common.WeightUnit == constants.UnitKilogram {
		return constants.UnitKilogram
	}
	return constants.UnitPound
}

// KcalPerUnit returns the energy per weight unit, honoring an explicit
// engine.kcalPerUnit override.
func KcalPerUnit(conf config.Configuration) float64 {
	if conf.Engine.KcalPerUnit > 0 {
		return conf.Engine.KcalPerUnit
	}
	if WeightUnit(conf) == constants.UnitKilogram {
		return constants.KcalPerKilogram
	}
	return constants.KcalPerPound
}

func categoryWeights(e config.Engine) aggregate.Weights {
	weights := aggregate.DefaultWeights()
	for category, weight := range e.CategoryWeights {
		weights.Categories[category] = weight
	}
	if e.DefaultCategoryWeight > 0 {
		weights.Default = e.DefaultCategoryWeight
	}
	return weights
}

func model(conf config.Configuration) projection.Model {
	m := projection.DefaultModel()
	m.KcalPerUnit = KcalPerUnit(conf)
	m.Cardio = saturation(conf.Engine.Cardio, m.Cardio)
	m.Strength = saturation(conf.Engine.Strength, m.Strength)
	return m
}

func saturation(s config.Saturation, fallback projection.Saturation) projection.Saturation {
	if s.Cap > 0 {
		fallback.Cap = s.Cap
	}
	if s.Tau > 0 {
		fallback.Tau = s.Tau
	}
	return fallback
}

func recommendOptions(conf config.Configuration, kcalPerUnit float64) recommend.Options {
	opts := engine.DefaultParams().Recommend
	opts.KcalPerUnit = kcalPerUnit
	opts.Unit = WeightUnit(conf)

	tol := conf.Engine.Tolerances
	if tol.Weight != nil {
		opts.Tolerances.Weight = *tol.Weight
	}
	if tol.Cardio != nil {
		opts.Tolerances.Cardio = *tol.Cardio
	}
	if tol.Muscle != nil {
		opts.Tolerances.Muscle = *tol.Muscle
	}

	split := conf.Engine.MacroSplit
	if total := split.Protein + split.Carbohydrates + split.Fat; total > 0 {
		opts.Split = recommend.MacroSplit{
			Protein:       split.Protein / total,
			Carbohydrates: split.Carbohydrates / total,
			Fat:           split.Fat / total,
		}
	}
	return opts
}

// ScenarioTarget converts a scenario's baseline-relative target into a
// TargetSpec. Muscle keys are restored to their canonical spelling and put in
// canonical order, since the configuration map carries no order. Unknown
// keys are kept as written so validation can reject them.
func ScenarioTarget(scenario config.Scenario) (fitness.TargetSpec, error) {
	cardio := constants.BaselineScore
	if scenario.Target.CardiovascularEndurance != nil {
		cardio = *scenario.Target.CardiovascularEndurance
	}

	scores := make(fitness.MuscleScores, 0, len(scenario.Target.MuscleStrength))
	for name, value := range scenario.Target.MuscleStrength {
		group := name
		if canonical, ok := muscle.Normalize(name); ok {
			group = canonical
		}
		scores = append(scores, fitness.MuscleScore{Group: group, Value: value})
	}
	sort.Slice(scores, func(i, j int) bool {
		return lessGroup(scores[i].Group, scores[j].Group)
	})

	target := fitness.TargetFromBaseline(scenario.TimeframeDays, scenario.Target.WeightChange, cardio, scores)
	if scenario.Target.Date != "" {
		date, err := datetime.ParseDate(scenario.Target.Date)
		if err != nil {
			return fitness.TargetSpec{}, fmt.Errorf("scenario %s target date: %w", scenario.Name, err)
		}
		target.Date = date
	}
	return target, nil
}

// lessGroup orders canonical groups first in canonical order, then unknown
// names alphabetically.
func lessGroup(a, b string) bool {
	ia, ib := muscle.Index(a), muscle.Index(b)
	switch {
	case ia >= 0 && ib >= 0:
		return ia < ib
	case ia >= 0:
		return true
	case ib >= 0:
		return false
	}
	return a < b
}

// DailyLogConverter builds the history converter: the built-in exercise
// table extended by the configured one.
func DailyLogConverter(conf config.Configuration) history.Converter {
	conv := history.DefaultConverter()
	for name, kcal := range conf.Exercises {
		conv.KcalPerHour[name] = kcal
	}
	if conf.Engine.WorkoutVolume > 0 {
		conv.WorkoutVolume = conf.Engine.WorkoutVolume
	}
	return conv
}
