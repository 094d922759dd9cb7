// Package projection extrapolates aggregated daily rates across a horizon.
package projection

import (
	"github.com/iwvelando/fitness-forecast/pkg/constants"
	"github.com/iwvelando/fitness-forecast/pkg/fitness"
	"github.com/iwvelando/fitness-forecast/pkg/mathutil"
)

// Saturation bounds a baseline-relative gain: Cap is the largest gain any
// horizon can produce and Tau is the cumulative load reaching ~63% of Cap.
type Saturation struct {
	Cap float64
	Tau float64
}

// Gain returns the bounded gain for a daily rate sustained over days.
func (s Saturation) Gain(rate float64, days int) float64 {
	return mathutil.Saturate(rate, float64(days), s.Tau, s.Cap)
}

// Model holds the extrapolation constants.
type Model struct {
	// KcalPerUnit converts a calorie balance into the user's weight unit.
	KcalPerUnit float64
	Cardio      Saturation
	Strength    Saturation
}

// DefaultModel projects weight in pounds with the built-in saturation constants.
func DefaultModel() Model {
	return Model{
		KcalPerUnit: constants.KcalPerPound,
		Cardio:      Saturation{Cap: constants.DefaultCardioCap, Tau: constants.DefaultCardioTau},
		Strength:    Saturation{Cap: constants.DefaultStrengthCap, Tau: constants.DefaultStrengthTau},
	}
}

// Project extrapolates the aggregated rates linearly for weight and with
// saturation for cardio and strength. A non-positive horizon yields the
// baseline.
func (m Model) Project(agg fitness.AggregatedMetrics, timeframeDays int) fitness.Metrics {
	predicted := fitness.BaselineMetrics()
	if timeframeDays <= 0 {
		return predicted
	}

	if m.KcalPerUnit > 0 {
		predicted.WeightChange = agg.NetCalories * float64(timeframeDays) / m.KcalPerUnit
	}
	predicted.CardiovascularEndurance += m.Cardio.Gain(agg.CardioLoad, timeframeDays)
	for group, volume := range agg.MuscleVolume {
		if _, ok := predicted.MuscleStrength[group]; !ok {
			continue
		}
		predicted.MuscleStrength[group] += m.Strength.Gain(volume, timeframeDays)
	}
	return predicted
}
