package projection

import (
	"testing"

	"github.com/iwvelando/fitness-forecast/pkg/fitness"
	"github.com/iwvelando/fitness-forecast/pkg/muscle"
	"github.com/stretchr/testify/assert"
)

func sampleAggregate() fitness.AggregatedMetrics {
	agg := fitness.NewAggregatedMetrics(28)
	agg.NetCalories = -500
	agg.CardioLoad = 300
	agg.MuscleVolume[muscle.Biceps] = 10
	agg.MuscleVolume[muscle.Quadriceps] = 20
	return agg
}

func TestProjectZeroHorizonIsBaseline(t *testing.T) {
	for _, days := range []int{0, -7} {
		got := DefaultModel().Project(sampleAggregate(), days)
		assert.Equal(t, fitness.BaselineMetrics(), got)
	}
}

func TestProjectEmptyHistoryIsBaseline(t *testing.T) {
	for _, days := range []int{1, 30, 3650} {
		got := DefaultModel().Project(fitness.NewAggregatedMetrics(0), days)
		assert.Equal(t, fitness.BaselineMetrics(), got, "days %d", days)
	}
}

func TestProjectWeightIsLinear(t *testing.T) {
	agg := fitness.NewAggregatedMetrics(28)
	agg.NetCalories = -500

	got := DefaultModel().Project(agg, 14)
	assert.InDelta(t, -2.0, got.WeightChange, 1e-9)

	agg.NetCalories = 250
	got = DefaultModel().Project(agg, 28)
	assert.InDelta(t, 2.0, got.WeightChange, 1e-9)
}

func TestProjectKilograms(t *testing.T) {
	model := DefaultModel()
	model.KcalPerUnit = 7700
	agg := fitness.NewAggregatedMetrics(28)
	agg.NetCalories = -550

	got := model.Project(agg, 14)
	assert.InDelta(t, -1.0, got.WeightChange, 1e-9)
}

func TestProjectMonotonicAndBounded(t *testing.T) {
	model := DefaultModel()
	agg := sampleAggregate()

	var previous fitness.Metrics
	for days := 1; days <= 100000; days *= 3 {
		got := model.Project(agg, days)
		if days > 1 {
			assert.GreaterOrEqual(t, -got.WeightChange, -previous.WeightChange, "weight magnitude at %d days", days)
			assert.GreaterOrEqual(t, got.CardiovascularEndurance, previous.CardiovascularEndurance)
			assert.GreaterOrEqual(t, got.MuscleStrength[muscle.Biceps], previous.MuscleStrength[muscle.Biceps])
		}
		assert.LessOrEqual(t, got.CardiovascularEndurance, 100+model.Cardio.Cap)
		for group, value := range got.MuscleStrength {
			assert.LessOrEqual(t, value, 100+model.Strength.Cap, group)
		}
		previous = got
	}
}

func TestProjectUntrainedGroupsStayAtBaseline(t *testing.T) {
	got := DefaultModel().Project(sampleAggregate(), 60)

	assert.Greater(t, got.MuscleStrength[muscle.Biceps], 100.0)
	assert.Greater(t, got.MuscleStrength[muscle.Quadriceps], got.MuscleStrength[muscle.Biceps])
	assert.Equal(t, 100.0, got.MuscleStrength[muscle.Chest])
	assert.Len(t, got.MuscleStrength, 17)
}

func TestSaturationGain(t *testing.T) {
	s := Saturation{Cap: 50, Tau: 600}
	assert.InDelta(t, 31.606, s.Gain(10, 60), 1e-3)
	assert.Zero(t, s.Gain(10, 0))
	assert.InDelta(t, -31.606, s.Gain(-10, 60), 1e-3)
}
