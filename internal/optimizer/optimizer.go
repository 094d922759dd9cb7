// Package optimizer searches, per scenario, for the shortest horizon over
// which current habits reach the scenario's target.
package optimizer

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/iwvelando/fitness-forecast/internal/config"
	"github.com/iwvelando/fitness-forecast/internal/forecast"
	"github.com/iwvelando/fitness-forecast/pkg/adapters"
	"github.com/iwvelando/fitness-forecast/pkg/constants"
	"github.com/iwvelando/fitness-forecast/pkg/engine"
	"github.com/iwvelando/fitness-forecast/pkg/fitness"
	"github.com/iwvelando/fitness-forecast/pkg/optimization"
	"github.com/iwvelando/fitness-forecast/pkg/recommend"
)

// Defaults for the horizon search.
const (
	DefaultMaxIterations = 32
	scopeScenario        = "scenario"
)

// Runner evaluates horizons with a shared engine.
type Runner struct {
	logger        *zap.Logger
	conf          *config.Configuration
	engine        *engine.Engine
	maxDays       int
	maxIterations int
}

type evaluation struct {
	days  int
	unmet []string
}

func (e evaluation) feasible() bool {
	return len(e.unmet) == 0
}

// Result summarizes optimizer findings keyed by scenario name.
type Result struct {
	Summaries map[string][]optimization.Summary
}

// Empty indicates whether any optimizer summaries were produced.
func (r Result) Empty() bool {
	return len(r.Summaries) == 0
}

// Apply attaches optimizer summaries to the provided forecast results.
func (r Result) Apply(forecasts []forecast.Forecast) {
	if len(r.Summaries) == 0 {
		return
	}
	for i := range forecasts {
		summaries, ok := r.Summaries[forecasts[i].Name]
		if !ok {
			continue
		}
		forecasts[i].Optimizations = append(forecasts[i].Optimizations, summaries...)
	}
}

// NewRunner constructs a Runner for the provided configuration.
func NewRunner(logger *zap.Logger, conf *config.Configuration) (*Runner, error) {
	if conf == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	params, err := adapters.EngineParams(*conf)
	if err != nil {
		return nil, err
	}

	maxDays := conf.Optimizer.MaxDays
	if maxDays <= 0 {
		maxDays = constants.MaxHorizonDays
	}
	maxIterations := conf.Optimizer.MaxIterations
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}

	return &Runner{
		logger:        logger,
		conf:          conf,
		engine:        engine.New(logger, params),
		maxDays:       maxDays,
		maxIterations: maxIterations,
	}, nil
}

// Run searches every active scenario against the same history.
func (r *Runner) Run(ctx context.Context, entries []fitness.LogEntry) (*Result, error) {
	summaries := make(map[string][]optimization.Summary)

	for _, scenario := range r.conf.ActiveScenarios() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		target, err := adapters.ScenarioTarget(scenario)
		if err != nil {
			return nil, err
		}
		summary, err := r.optimizeScenario(ctx, scenario.Name, target, entries)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
		}

		r.logger.Debug("horizon search finished",
			zap.String("op", "optimizer.Run"),
			zap.String("scenario", scenario.Name),
			zap.Float64("days", summary.Value),
			zap.Int("iterations", summary.Iterations),
			zap.Bool("converged", summary.Converged),
		)
		summaries[scenario.Name] = append(summaries[scenario.Name], summary)
	}

	return &Result{Summaries: summaries}, nil
}

// optimizeScenario bisects for the earliest day at which every targeted
// metric is reached. Reaching a target is monotone in the horizon because
// projected rates are constant, so the earliest feasible day is unique.
func (r *Runner) optimizeScenario(ctx context.Context, name string, target fitness.TargetSpec, entries []fitness.LogEntry) (optimization.Summary, error) {
	// Reject the scenario as configured before searching.
	if _, err := r.engine.Run(entries, target); err != nil {
		return optimization.Summary{}, err
	}

	summary := optimization.Summary{
		Scope:      scopeScenario,
		TargetName: name,
		Field:      optimization.FieldTimeframeDays,
		Original:   float64(target.TimeframeDays),
	}

	upperEval, err := r.evaluate(target, entries, r.maxDays)
	if err != nil {
		return optimization.Summary{}, err
	}
	if !upperEval.feasible() {
		summary.Value = float64(r.maxDays)
		summary.Unmet = upperEval.unmet
		summary.Notes = []string{fmt.Sprintf("target not reached within %d days at current habits (%s)",
			r.maxDays, strings.Join(upperEval.unmet, ", "))}
		return summary, nil
	}

	lowerEval, err := r.evaluate(target, entries, 1)
	if err != nil {
		return optimization.Summary{}, err
	}
	finalEval := upperEval
	if lowerEval.feasible() {
		finalEval = lowerEval
		summary.Converged = true
	} else {
		lower, upper := lowerEval.days, upperEval.days
		for summary.Iterations < r.maxIterations && upper-lower > 1 {
			if err := ctx.Err(); err != nil {
				return optimization.Summary{}, err
			}
			mid := lower + (upper-lower)/2
			evalMid, err := r.evaluate(target, entries, mid)
			if err != nil {
				return optimization.Summary{}, err
			}
			summary.Iterations++
			if evalMid.feasible() {
				finalEval = evalMid
				upper = mid
			} else {
				lower = mid
			}
		}
		summary.Converged = upper-lower <= 1
	}

	summary.Value = float64(finalEval.days)
	summary.Notes = []string{horizonNote(finalEval.days, target.TimeframeDays)}
	return summary, nil
}

func horizonNote(days, timeframe int) string {
	switch {
	case days < timeframe:
		return fmt.Sprintf("target reached in %d days, %d days ahead of the %d-day timeframe", days, timeframe-days, timeframe)
	case days > timeframe:
		return fmt.Sprintf("target needs %d days, %d days beyond the %d-day timeframe", days, days-timeframe, timeframe)
	}
	return fmt.Sprintf("target reached in exactly the %d-day timeframe", timeframe)
}

func (r *Runner) evaluate(target fitness.TargetSpec, entries []fitness.LogEntry, days int) (evaluation, error) {
	target.TimeframeDays = days
	result, err := r.engine.Run(entries, target)
	if err != nil {
		return evaluation{}, err
	}
	return evaluation{
		days:  days,
		unmet: unmetMetrics(result.Differences, target, r.engine.Params().Recommend.Tolerances),
	}, nil
}

// unmetMetrics lists the targeted metrics not yet reached. A weight target
// is reached once the projection has moved at least as far in its
// direction; a zero weight target does not constrain the horizon. Cardio and
// strength targets are reached once the shortfall is within tolerance.
func unmetMetrics(diff fitness.Metrics, target fitness.TargetSpec, tol recommend.Tolerances) []string {
	var unmet []string

	switch {
	case target.WeightChange < 0 && diff.WeightChange > tol.Weight:
		unmet = append(unmet, "weightChange")
	case target.WeightChange > 0 && diff.WeightChange < -tol.Weight:
		unmet = append(unmet, "weightChange")
	}
	if diff.CardiovascularEndurance < -tol.Cardio {
		unmet = append(unmet, "cardiovascularEndurance")
	}
	for _, m := range target.MuscleStrength {
		if m.Improvement == 0 {
			continue
		}
		if diff.MuscleStrength[m.Group] < -tol.Muscle {
			unmet = append(unmet, m.Group)
		}
	}
	return unmet
}
