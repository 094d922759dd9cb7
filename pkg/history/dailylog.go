package history

import (
	"fmt"
	"strings"

	"github.com/iwvelando/fitness-forecast/pkg/constants"
	"github.com/iwvelando/fitness-forecast/pkg/datetime"
	"github.com/iwvelando/fitness-forecast/pkg/fitness"
	"github.com/iwvelando/fitness-forecast/pkg/muscle"
)

// DailyLog is one day as recorded by the mobile app.
type DailyLog struct {
	Date                  datetime.Date `yaml:"date"`
	TotalCaloriesConsumed float64       `yaml:"totalCaloriesConsumed"`
	TotalCaloriesBurned   float64       `yaml:"totalCaloriesBurned"`
	TotalFat              float64       `yaml:"totalFat"`
	TotalProtein          float64       `yaml:"totalProtein"`
	TotalCarbohydrates    float64       `yaml:"totalCarbohydrates"`
	TotalSugars           float64       `yaml:"totalSugars"`
	TotalSaturatedFats    float64       `yaml:"totalSaturatedFats"`
	Exercises             []Exercise    `yaml:"exercises"`
	Workouts              []Workout     `yaml:"workouts"`
}

// Exercise is a timed activity. CaloriesBurned is zero when the app did not
// estimate it, as for workouts logged through the strength screen.
type Exercise struct {
	Name           string  `yaml:"name"`
	Minutes        float64 `yaml:"minutes"`
	CaloriesBurned float64 `yaml:"caloriesBurned"`
}

// Workout is one strength exercise targeting a body part.
type Workout struct {
	Title    string `yaml:"title"`
	Type     string `yaml:"type"`
	BodyPart string `yaml:"bodyPart"`
}

// Converter maps app daily logs to log entries.
type Converter struct {
	// KcalPerHour estimates calories for exercises logged without them.
	// Keys are matched case-insensitively.
	KcalPerHour map[string]float64

	// WorkoutVolume is the training volume credited per workout.
	WorkoutVolume float64
}

// DefaultExerciseTable holds the app's strength-training intensities.
func DefaultExerciseTable() map[string]float64 {
	return map[string]float64{
		"weight lifting, light workout":           216,
		"weight lifting, body building, vigorous": 630,
	}
}

// DefaultConverter uses the built-in exercise table and workout volume.
func DefaultConverter() Converter {
	return Converter{
		KcalPerHour:   DefaultExerciseTable(),
		WorkoutVolume: constants.WorkoutVolume,
	}
}

// Convert builds a log entry from a daily log. Exercise minutes are keyed by
// exercise name; each workout adds WorkoutVolume to its body part.
func (c Converter) Convert(d DailyLog) (fitness.LogEntry, error) {
	entry := fitness.LogEntry{
		Date:             d.Date,
		CaloriesConsumed: d.TotalCaloriesConsumed,
		Macros: fitness.Macros{
			Fat:           d.TotalFat,
			Protein:       d.TotalProtein,
			Carbohydrates: d.TotalCarbohydrates,
			Sugars:        d.TotalSugars,
			SaturatedFats: d.TotalSaturatedFats,
		},
	}

	logged, estimated := 0.0, 0.0
	for _, ex := range d.Exercises {
		name := strings.TrimSpace(ex.Name)
		if name == "" {
			return fitness.LogEntry{}, fmt.Errorf("%s: exercise without a name", d.Date)
		}
		if entry.ExerciseMinutes == nil {
			entry.ExerciseMinutes = make(map[string]float64)
		}
		entry.ExerciseMinutes[name] += ex.Minutes

		if ex.CaloriesBurned > 0 {
			logged += ex.CaloriesBurned
			continue
		}
		estimated += c.kcalPerHour(name) * ex.Minutes / 60
	}
	// The app's total already includes every exercise it estimated itself.
	if d.TotalCaloriesBurned > logged {
		logged = d.TotalCaloriesBurned
	}
	entry.CaloriesBurned = logged + estimated

	for _, w := range d.Workouts {
		group, ok := muscle.Normalize(w.BodyPart)
		if !ok {
			return fitness.LogEntry{}, fmt.Errorf("%s: workout %q targets unknown body part %q", d.Date, w.Title, w.BodyPart)
		}
		if entry.MuscleVolume == nil {
			entry.MuscleVolume = make(map[string]float64)
		}
		entry.MuscleVolume[group] += c.WorkoutVolume
	}

	return entry, nil
}

func (c Converter) kcalPerHour(name string) float64 {
	if v, ok := c.KcalPerHour[name]; ok {
		return v
	}
	lower := strings.ToLower(name)
	for k, v := range c.KcalPerHour {
		if strings.ToLower(k) == lower {
			return v
		}
	}
	return 0
}
