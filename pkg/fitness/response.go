package fitness

// Response is the wire form of a PredictionResult.
type Response struct {
	Predicted          *Metrics            `json:"predicted,omitempty"`
	Target             *Metrics            `json:"target,omitempty"`
	Differences        *Metrics            `json:"differences,omitempty"`
	RecommendedChanges *RecommendedChanges `json:"recommendedChanges,omitempty"`
	Recommendations    []Recommendation    `json:"recommendations,omitempty"`
}

// RecommendedChanges groups recommendations by domain.
type RecommendedChanges struct {
	Diet     DietAdjustment  `json:"diet"`
	Exercise ExerciseChanges `json:"exercise"`
}

// ExerciseChanges holds the cardio and per-muscle recommendations.
type ExerciseChanges struct {
	Cardiovascular CardioChange  `json:"cardiovascular"`
	MuscleFocus    []MuscleFocus `json:"muscle_focus"`
}

// CardioChange is the cardio part of RecommendedChanges. AdjustmentNeeded is
// zero and Recommendation empty when cardio is on track.
type CardioChange struct {
	AdjustmentNeeded float64 `json:"adjustment_needed"`
	Recommendation   string  `json:"recommendation"`
}

// MuscleFocus is one muscle-group emphasis.
type MuscleFocus struct {
	Muscle         string  `json:"muscle"`
	Adjustment     float64 `json:"adjustment"`
	Recommendation string  `json:"recommendation"`
}

// Response shapes, from least to most synthesized.
const (
	ShapePredicted   = "predicted"
	ShapeDifferences = "differences"
	ShapeFull        = "full"
)

// Changes folds the ordered recommendation list into RecommendedChanges.
func (r PredictionResult) Changes() RecommendedChanges {
	changes := RecommendedChanges{
		Exercise: ExerciseChanges{MuscleFocus: []MuscleFocus{}},
	}
	for _, rec := range r.Recommendations {
		switch rec.Kind {
		case KindDiet:
			if rec.Diet != nil {
				changes.Diet = *rec.Diet
			}
		case KindCardio:
			changes.Exercise.Cardiovascular = CardioChange{
				AdjustmentNeeded: rec.Adjustment,
				Recommendation:   rec.Message,
			}
		case KindMuscle:
			changes.Exercise.MuscleFocus = append(changes.Exercise.MuscleFocus, MuscleFocus{
				Muscle:         rec.Muscle,
				Adjustment:     rec.Adjustment,
				Recommendation: rec.Message,
			})
		}
	}
	return changes
}

// Response derives the requested shape. Unknown shapes yield the full form.
func (r PredictionResult) Response(shape string) Response {
	predicted := r.Predicted
	resp := Response{Predicted: &predicted}

	switch shape {
	case ShapePredicted:
		return resp
	case ShapeDifferences:
		target, differences := r.Target, r.Differences
		resp.Target = &target
		resp.Differences = &differences
		return resp
	}

	target, differences := r.Target, r.Differences
	changes := r.Changes()
	resp.Target = &target
	resp.Differences = &differences
	resp.RecommendedChanges = &changes
	resp.Recommendations = r.Recommendations
	return resp
}
