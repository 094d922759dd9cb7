// Package aggregate reduces a daily log into average daily metrics over a
// historical window.
package aggregate

import (
	"sort"
	"strings"

	"github.com/iwvelando/fitness-forecast/pkg/constants"
	"github.com/iwvelando/fitness-forecast/pkg/datetime"
	"github.com/iwvelando/fitness-forecast/pkg/fitness"
	"github.com/iwvelando/fitness-forecast/pkg/muscle"
)

// Weights maps exercise categories to MET-like intensity factors used for
// the cardio load.
type Weights struct {
	Categories map[string]float64
	Default    float64
}

// DefaultWeights returns the built-in category table.
func DefaultWeights() Weights {
	return Weights{
		Categories: map[string]float64{
			"running":        9.8,
			"jogging":        7.0,
			"cycling":        7.5,
			"bicycling":      7.5,
			"swimming":       8.0,
			"walking":        3.5,
			"rowing":         7.0,
			"elliptical":     5.0,
			"hiking":         6.0,
			"dancing":        5.0,
			"jumping rope":   11.0,
			"stair climbing": 9.0,
			"weight lifting": 3.5,
			"yoga":           2.5,
		},
		Default: constants.DefaultCategoryWeight,
	}
}

// For returns the weight for a category: an exact case-insensitive match,
// else the longest known category the name starts with (so "Running, 6 mph"
// matches "running"), else Default.
func (w Weights) For(category string) float64 {
	name := strings.ToLower(strings.TrimSpace(category))
	if v, ok := w.Categories[name]; ok {
		return v
	}

	best, bestLen := w.Default, 0
	for key, v := range w.Categories {
		if len(key) > bestLen && strings.HasPrefix(name, key) {
			best, bestLen = v, len(key)
		}
	}
	return best
}

// Aggregator computes AggregatedMetrics. The zero value uses no category
// weights and a zero default weight; use New for the built-in table.
type Aggregator struct {
	weights Weights
}

// New returns an Aggregator using the given weights. Category keys are
// lowercased so lookups are case-insensitive.
func New(weights Weights) *Aggregator {
	normalized := Weights{
		Categories: make(map[string]float64, len(weights.Categories)),
		Default:    weights.Default,
	}
	for k, v := range weights.Categories {
		normalized.Categories[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return &Aggregator{weights: normalized}
}

// Aggregate averages the most recent windowDays calendar days ending at the
// latest entry date.
func (a *Aggregator) Aggregate(entries []fitness.LogEntry, windowDays int) fitness.AggregatedMetrics {
	return a.AggregateAsOf(entries, windowDays, datetime.Date{})
}

// AggregateAsOf averages the windowDays calendar days ending at asOf
// (inclusive). A zero asOf means the latest entry date. Days without an
// entry count as zero-activity days. Empty input or a non-positive window
// yields zero metrics.
func (a *Aggregator) AggregateAsOf(entries []fitness.LogEntry, windowDays int, asOf datetime.Date) fitness.AggregatedMetrics {
	if len(entries) == 0 || windowDays <= 0 {
		return fitness.NewAggregatedMetrics(0)
	}

	end := asOf
	if end.IsZero() {
		end = latest(entries)
	}
	start := end.AddDays(-(windowDays - 1))

	result := fitness.NewAggregatedMetrics(windowDays)
	logged := make(map[string]struct{})
	for _, entry := range entries {
		if entry.Date.Before(start) || entry.Date.After(end) {
			continue
		}
		logged[entry.Date.String()] = struct{}{}

		result.CaloriesConsumed += entry.CaloriesConsumed
		result.CaloriesBurned += entry.CaloriesBurned
		result.Macros = result.Macros.Add(entry.Macros)
		result.CardioLoad += a.cardioLoad(entry.ExerciseMinutes)

		for name, volume := range entry.MuscleVolume {
			if group, ok := muscle.Normalize(name); ok {
				result.MuscleVolume[group] += volume
			}
		}
	}
	result.DaysLogged = len(logged)

	days := float64(windowDays)
	result.CaloriesConsumed /= days
	result.CaloriesBurned /= days
	result.NetCalories = result.CaloriesConsumed - result.CaloriesBurned
	result.Macros = result.Macros.Scale(1 / days)
	result.CardioLoad /= days
	for group := range result.MuscleVolume {
		result.MuscleVolume[group] /= days
	}
	return result
}

// cardioLoad sums minutes times category weight. Categories are visited in
// sorted order so float summation is reproducible.
func (a *Aggregator) cardioLoad(minutes map[string]float64) float64 {
	if len(minutes) == 0 {
		return 0
	}
	categories := make([]string, 0, len(minutes))
	for c := range minutes {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	load := 0.0
	for _, c := range categories {
		load += minutes[c] * a.weights.For(c)
	}
	return load
}

func latest(entries []fitness.LogEntry) datetime.Date {
	end := entries[0].Date
	for _, e := range entries[1:] {
		if e.Date.After(end) {
			end = e.Date
		}
	}
	return end
}
