package aggregate

import (
	"testing"

	"github.com/iwvelando/fitness-forecast/pkg/datetime"
	"github.com/iwvelando/fitness-forecast/pkg/fitness"
	"github.com/iwvelando/fitness-forecast/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateEmptyHistory(t *testing.T) {
	a := New(DefaultWeights())

	for _, window := range []int{-1, 0, 7} {
		got := a.Aggregate(nil, window)
		assert.Equal(t, fitness.NewAggregatedMetrics(0), got, "window %d", window)
	}
}

func TestAggregateNonPositiveWindow(t *testing.T) {
	a := New(DefaultWeights())
	entries := testutil.DeficitHistory("2024-01-01", 10, -500)

	got := a.Aggregate(entries, 0)
	assert.Zero(t, got.NetCalories)
	assert.Zero(t, got.DaysLogged)
	assert.Len(t, got.MuscleVolume, 17)
}

func TestAggregateConstantDeficit(t *testing.T) {
	a := New(DefaultWeights())
	entries := testutil.DeficitHistory("2024-01-01", 28, -500)

	got := a.Aggregate(entries, 28)
	assert.Equal(t, 28, got.WindowDays)
	assert.Equal(t, 28, got.DaysLogged)
	assert.InDelta(t, -500, got.NetCalories, 1e-9)
	assert.InDelta(t, 2000, got.CaloriesConsumed, 1e-9)
	assert.InDelta(t, 2500, got.CaloriesBurned, 1e-9)
}

func TestAggregateGapsCountAsRestDays(t *testing.T) {
	a := New(DefaultWeights())
	entries := []fitness.LogEntry{
		{Date: datetime.MustParseDate("2024-03-01"), CaloriesConsumed: 2800, CaloriesBurned: 400},
		{Date: datetime.MustParseDate("2024-03-10"), CaloriesConsumed: 2200, CaloriesBurned: 200},
	}

	got := a.Aggregate(entries, 10)
	assert.Equal(t, 2, got.DaysLogged)
	assert.InDelta(t, 500, got.CaloriesConsumed, 1e-9)
	assert.InDelta(t, 60, got.CaloriesBurned, 1e-9)
	assert.InDelta(t, 440, got.NetCalories, 1e-9)
}

func TestAggregateWindowSelectsMostRecentDays(t *testing.T) {
	a := New(DefaultWeights())
	entries := append(
		testutil.DeficitHistory("2024-01-01", 10, +1000),
		testutil.DeficitHistory("2024-01-11", 7, -700)...,
	)

	got := a.Aggregate(entries, 7)
	assert.Equal(t, 7, got.DaysLogged)
	assert.InDelta(t, -700, got.NetCalories, 1e-9)
}

func TestAggregateAsOf(t *testing.T) {
	a := New(DefaultWeights())
	entries := testutil.DeficitHistory("2024-01-01", 20, -300)

	got := a.AggregateAsOf(entries, 10, datetime.MustParseDate("2024-01-05"))
	assert.Equal(t, 5, got.DaysLogged)
	assert.InDelta(t, -150, got.NetCalories, 1e-9)

	future := a.AggregateAsOf(entries, 5, datetime.MustParseDate("2025-01-01"))
	assert.Zero(t, future.DaysLogged)
	assert.Zero(t, future.NetCalories)
}

func TestAggregateCardioLoad(t *testing.T) {
	a := New(Weights{
		Categories: map[string]float64{"Running": 10, "walking": 3},
		Default:    4,
	})
	entries := testutil.ConstantHistory("2024-02-01", 4, fitness.LogEntry{
		ExerciseMinutes: map[string]float64{
			"running, 6 mph": 30,
			"Walking":        20,
			"tai chi":        10,
		},
	})

	got := a.Aggregate(entries, 4)
	assert.InDelta(t, 30*10+20*3+10*4, got.CardioLoad, 1e-9)
}

func TestAggregateMuscleVolume(t *testing.T) {
	a := New(DefaultWeights())
	entries := testutil.ConstantHistory("2024-02-01", 2, fitness.LogEntry{
		MuscleVolume: map[string]float64{"biceps": 12, "lowerback": 6},
	})

	got := a.Aggregate(entries, 4)
	assert.InDelta(t, 6, got.MuscleVolume["biceps"], 1e-9)
	assert.InDelta(t, 3, got.MuscleVolume["lowerBack"], 1e-9)
	assert.Zero(t, got.MuscleVolume["chest"])
	assert.Len(t, got.MuscleVolume, 17)
}

func TestAggregateMacros(t *testing.T) {
	a := New(DefaultWeights())
	entries := testutil.ConstantHistory("2024-02-01", 3, fitness.LogEntry{
		Macros: fitness.Macros{Fat: 60, Protein: 150, Carbohydrates: 210},
	})

	got := a.Aggregate(entries, 3)
	assert.InDelta(t, 60, got.Macros.Fat, 1e-9)
	assert.InDelta(t, 150, got.Macros.Protein, 1e-9)
	assert.InDelta(t, 210, got.Macros.Carbohydrates, 1e-9)
}

func TestAggregateDoesNotMutateInput(t *testing.T) {
	a := New(DefaultWeights())
	entries := testutil.ConstantHistory("2024-02-01", 3, fitness.LogEntry{
		CaloriesConsumed: 2000,
		MuscleVolume:     map[string]float64{"biceps": 10},
	})
	before := testutil.ConstantHistory("2024-02-01", 3, fitness.LogEntry{
		CaloriesConsumed: 2000,
		MuscleVolume:     map[string]float64{"biceps": 10},
	})

	first := a.Aggregate(entries, 3)
	second := a.Aggregate(entries, 3)
	require.Equal(t, before, entries)
	assert.Equal(t, first, second)
}

func TestWeightsFor(t *testing.T) {
	w := DefaultWeights()

	tests := []struct {
		category string
		expected float64
	}{
		{"running", 9.8},
		{"Running, 6 mph (10 min mile)", 9.8},
		{"Weight lifting, light workout", 3.5},
		{"Stair climbing, fast pace", 9.0},
		{"underwater basket weaving", w.Default},
		{"", w.Default},
	}

	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			assert.Equal(t, tt.expected, w.For(tt.category))
		})
	}
}
