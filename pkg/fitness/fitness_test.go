package fitness

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestMuscleScoresJSONKeepsOrder(t *testing.T) {
	var scores MuscleScores
	err := json.Unmarshal([]byte(`{"triceps": 105, "abdominals": 100, "biceps": 110.5}`), &scores)
	require.NoError(t, err)

	require.Len(t, scores, 3)
	assert.Equal(t, MuscleScore{Group: "triceps", Value: 105}, scores[0])
	assert.Equal(t, MuscleScore{Group: "abdominals", Value: 100}, scores[1])
	assert.Equal(t, MuscleScore{Group: "biceps", Value: 110.5}, scores[2])

	out, err := json.Marshal(scores)
	require.NoError(t, err)
	assert.Equal(t, `{"triceps":105,"abdominals":100,"biceps":110.5}`, string(out))
}

func TestMuscleScoresJSONErrors(t *testing.T) {
	tests := map[string]string{
		"not an object":   `[1, 2]`,
		"string value":    `{"biceps": "110"}`,
		"nested object":   `{"biceps": {"value": 110}}`,
		"truncated input": `{"biceps": 110`,
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			var scores MuscleScores
			assert.Error(t, json.Unmarshal([]byte(input), &scores))
		})
	}

	var scores MuscleScores
	require.NoError(t, json.Unmarshal([]byte(`null`), &scores))
	assert.Nil(t, scores)
}

func TestMuscleScoresYAMLKeepsOrder(t *testing.T) {
	var payload struct {
		Muscles MuscleScores `yaml:"muscleStrength"`
	}
	doc := "muscleStrength:\n  quadriceps: 120\n  biceps: 110\n"
	require.NoError(t, yaml.Unmarshal([]byte(doc), &payload))

	require.Len(t, payload.Muscles, 2)
	assert.Equal(t, "quadriceps", payload.Muscles[0].Group)
	assert.Equal(t, "biceps", payload.Muscles[1].Group)
	assert.Equal(t, map[string]float64{"quadriceps": 120, "biceps": 110}, payload.Muscles.Map())

	assert.Error(t, yaml.Unmarshal([]byte("muscleStrength: [1]\n"), &payload))
	assert.Error(t, yaml.Unmarshal([]byte("muscleStrength:\n  biceps: lots\n"), &payload))
}

func TestTargetFromBaseline(t *testing.T) {
	spec := TargetFromBaseline(30, -2, 120, MuscleScores{
		{Group: "biceps", Value: 110},
		{Group: "chest", Value: 100},
	})

	assert.Equal(t, 30, spec.TimeframeDays)
	assert.Equal(t, -2.0, spec.WeightChange)
	assert.Equal(t, 20.0, spec.CardioImprovement)
	assert.Equal(t, 120.0, spec.CardioTarget())
	assert.Equal(t, []MuscleTarget{{Group: "biceps", Improvement: 10}, {Group: "chest", Improvement: 0}}, spec.MuscleStrength)

	target, explicit := spec.MuscleTarget("biceps")
	assert.True(t, explicit)
	assert.Equal(t, 110.0, target)

	target, explicit = spec.MuscleTarget("lats")
	assert.False(t, explicit)
	assert.Equal(t, 100.0, target)
}

func TestBaselineMetricsCoverEveryGroup(t *testing.T) {
	baseline := BaselineMetrics()
	assert.Equal(t, 0.0, baseline.WeightChange)
	assert.Equal(t, 100.0, baseline.CardiovascularEndurance)
	assert.Len(t, baseline.MuscleStrength, 17)
	for group, value := range baseline.MuscleStrength {
		assert.Equal(t, 100.0, value, group)
	}

	agg := NewAggregatedMetrics(14)
	assert.Equal(t, 14, agg.WindowDays)
	assert.Len(t, agg.MuscleVolume, 17)
}

func TestMacrosArithmetic(t *testing.T) {
	a := Macros{Fat: 10, Protein: 20, Carbohydrates: 30, Sugars: 4, SaturatedFats: 2}
	sum := a.Add(a)
	assert.Equal(t, Macros{Fat: 20, Protein: 40, Carbohydrates: 60, Sugars: 8, SaturatedFats: 4}, sum)
	assert.Equal(t, a, sum.Scale(0.5))
}

func TestValidationErrorMatchesSentinel(t *testing.T) {
	err := Invalid("timeframeDays", "must be positive, got %d", 0)
	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.False(t, errors.Is(err, ErrPrecondition))
	assert.Equal(t, "timeframeDays: must be positive, got 0", err.Error())

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "timeframeDays", ve.Field)
}

func TestResponseShapes(t *testing.T) {
	result := PredictionResult{
		Predicted:   BaselineMetrics(),
		Target:      BaselineMetrics(),
		Differences: NewDifferenceMetrics(),
		Recommendations: []Recommendation{
			{Kind: KindDiet, Adjustment: 250, Message: "eat more", Diet: &DietAdjustment{Calories: 250, Protein: 18.75}},
			{Kind: KindCardio, Adjustment: 15, Message: "run more"},
			{Kind: KindMuscle, Muscle: "biceps", Adjustment: 10, Message: "curl more"},
			{Kind: KindMuscle, Muscle: "chest", Adjustment: 5, Message: "press more"},
		},
	}

	predicted := result.Response(ShapePredicted)
	assert.NotNil(t, predicted.Predicted)
	assert.Nil(t, predicted.Differences)
	assert.Nil(t, predicted.RecommendedChanges)

	differences := result.Response(ShapeDifferences)
	assert.NotNil(t, differences.Differences)
	assert.Nil(t, differences.RecommendedChanges)

	full := result.Response(ShapeFull)
	require.NotNil(t, full.RecommendedChanges)
	assert.Equal(t, 250.0, full.RecommendedChanges.Diet.Calories)
	assert.Equal(t, 15.0, full.RecommendedChanges.Exercise.Cardiovascular.AdjustmentNeeded)
	assert.Equal(t, "run more", full.RecommendedChanges.Exercise.Cardiovascular.Recommendation)
	require.Len(t, full.RecommendedChanges.Exercise.MuscleFocus, 2)
	assert.Equal(t, "biceps", full.RecommendedChanges.Exercise.MuscleFocus[0].Muscle)
	assert.Equal(t, "chest", full.RecommendedChanges.Exercise.MuscleFocus[1].Muscle)
	assert.Len(t, full.Recommendations, 4)

	assert.Equal(t, full, result.Response("unknown"))
}

func TestChangesEncodeEmptyMuscleFocusAsArray(t *testing.T) {
	out, err := json.Marshal(PredictionResult{}.Changes())
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"diet": {"calorie_adjustment": 0, "protein_adjustment": 0, "carbs_adjustment": 0, "fat_adjustment": 0},
		"exercise": {"cardiovascular": {"adjustment_needed": 0, "recommendation": ""}, "muscle_focus": []}
	}`, string(out))
}
