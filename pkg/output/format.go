// Package output provides utilities for formatting and displaying forecast results.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/iwvelando/fitness-forecast/internal/forecast"
	"github.com/iwvelando/fitness-forecast/pkg/constants"
	"github.com/iwvelando/fitness-forecast/pkg/fitness"
	"github.com/iwvelando/fitness-forecast/pkg/muscle"
	"github.com/iwvelando/fitness-forecast/pkg/optimization"
)

// Metric names used in tabular output.
const (
	MetricWeightChange = "weightChange"
	MetricCardio       = "cardiovascularEndurance"
	metricMusclePrefix = "muscleStrength."
)

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(results []forecast.Forecast) {
	WritePretty(os.Stdout, results)
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(results []forecast.Forecast) {
	_ = WriteCSV(os.Stdout, results)
}

// JSONFormat outputs the full response shape of every scenario.
func JSONFormat(results []forecast.Forecast) error {
	return WriteJSON(os.Stdout, results)
}

// CsvString returns the CSV output as a string.
func CsvString(results []forecast.Forecast) string {
	var b strings.Builder
	_ = WriteCSV(&b, results)
	return b.String()
}

// WritePretty writes one table per scenario followed by its recommendations.
// Muscle groups are listed when targeted or when their projection moves off
// the baseline.
func WritePretty(w io.Writer, results []forecast.Forecast) {
	p := message.NewPrinter(language.English)
	for i, result := range results {
		res := result.Result
		_, _ = fmt.Fprintf(w, "--- Results for scenario %s (%d days) ---\n", result.Name, result.Target.TimeframeDays)
		_, _ = fmt.Fprintf(w, "%-26s | %10s | %10s | %10s\n", "Metric", "Predicted", "Target", "Difference")
		_, _ = fmt.Fprintf(w, "%-26s | %10s | %10s | %10s\n", "______", "_________", "______", "__________")

		_, _ = p.Fprintf(w, "%-26s | %10.2f | %10.2f | %+10.2f\n",
			fmt.Sprintf("weight change (%s)", result.Unit),
			res.Predicted.WeightChange, res.Target.WeightChange, res.Differences.WeightChange)
		_, _ = p.Fprintf(w, "%-26s | %10.1f | %10.1f | %+10.1f\n",
			"cardiovascular endurance",
			res.Predicted.CardiovascularEndurance, res.Target.CardiovascularEndurance, res.Differences.CardiovascularEndurance)

		for _, group := range muscle.All() {
			_, targeted := result.Target.MuscleTarget(group)
			predicted := res.Predicted.MuscleStrength[group]
			if !targeted && predicted == constants.BaselineScore {
				continue
			}
			_, _ = p.Fprintf(w, "%-26s | %10.1f | %10.1f | %+10.1f\n",
				group, predicted, res.Target.MuscleStrength[group], res.Differences.MuscleStrength[group])
		}

		if len(res.Recommendations) == 0 {
			_, _ = fmt.Fprintf(w, "On track: no changes recommended\n")
		} else {
			_, _ = fmt.Fprintf(w, "Recommendations:\n")
			for n, rec := range res.Recommendations {
				_, _ = fmt.Fprintf(w, "  %d. %s\n", n+1, rec.Message)
			}
		}
		for _, summary := range result.Optimizations {
			for _, note := range summary.Notes {
				_, _ = fmt.Fprintf(w, "Horizon: %s\n", note)
			}
		}
		if i < len(results)-1 {
			_, _ = fmt.Fprintf(w, "\n")
		}
	}
}

// WriteCSV writes one row per scenario and metric. A recommendation is
// attached to the row of the metric it addresses.
func WriteCSV(w io.Writer, results []forecast.Forecast) error {
	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"scenario", "metric", "predicted", "target", "difference", "recommendation"})

	for _, result := range results {
		res := result.Result
		notes := recommendationsByMetric(res.Recommendations)

		_ = cw.Write(row(result.Name, MetricWeightChange, res.Predicted.WeightChange, res.Target.WeightChange,
			res.Differences.WeightChange, notes[MetricWeightChange]))
		_ = cw.Write(row(result.Name, MetricCardio, res.Predicted.CardiovascularEndurance, res.Target.CardiovascularEndurance,
			res.Differences.CardiovascularEndurance, notes[MetricCardio]))
		for _, group := range muscle.All() {
			metric := metricMusclePrefix + group
			_ = cw.Write(row(result.Name, metric, res.Predicted.MuscleStrength[group], res.Target.MuscleStrength[group],
				res.Differences.MuscleStrength[group], notes[metric]))
		}
	}

	cw.Flush()
	return cw.Error()
}

func row(scenario, metric string, predicted, target, difference float64, note string) []string {
	return []string{
		scenario,
		metric,
		strconv.FormatFloat(predicted, 'f', 2, 64),
		strconv.FormatFloat(target, 'f', 2, 64),
		strconv.FormatFloat(difference, 'f', 2, 64),
		note,
	}
}

func recommendationsByMetric(recs []fitness.Recommendation) map[string]string {
	notes := make(map[string]string, len(recs))
	for _, rec := range recs {
		switch rec.Kind {
		case fitness.KindDiet:
			notes[MetricWeightChange] = rec.Message
		case fitness.KindCardio:
			notes[MetricCardio] = rec.Message
		case fitness.KindMuscle:
			notes[metricMusclePrefix+rec.Muscle] = rec.Message
		}
	}
	return notes
}

// ScenarioResponse is the JSON form of one scenario forecast.
type ScenarioResponse struct {
	Scenario      string                 `json:"scenario"`
	Unit          string                 `json:"unit"`
	TimeframeDays int                    `json:"timeframe_days"`
	Optimizations []optimization.Summary `json:"optimizations,omitempty"`
	fitness.Response
}

// Responses converts forecasts into their JSON form using the given shape.
func Responses(results []forecast.Forecast, shape string) []ScenarioResponse {
	out := make([]ScenarioResponse, 0, len(results))
	for _, result := range results {
		out = append(out, ScenarioResponse{
			Scenario:      result.Name,
			Unit:          result.Unit,
			TimeframeDays: result.Target.TimeframeDays,
			Optimizations: result.Optimizations,
			Response:      result.Result.Response(shape),
		})
	}
	return out
}

// WriteJSON writes the full response shape of every scenario as an indented
// JSON array.
func WriteJSON(w io.Writer, results []forecast.Forecast) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Responses(results, fitness.ShapeFull))
}
