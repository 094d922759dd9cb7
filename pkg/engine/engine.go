// Package engine wires the aggregation, projection, comparison and
// recommendation stages into a single prediction pipeline.
package engine

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/iwvelando/fitness-forecast/pkg/aggregate"
	"github.com/iwvelando/fitness-forecast/pkg/comparison"
	"github.com/iwvelando/fitness-forecast/pkg/constants"
	"github.com/iwvelando/fitness-forecast/pkg/datetime"
	"github.com/iwvelando/fitness-forecast/pkg/fitness"
	"github.com/iwvelando/fitness-forecast/pkg/projection"
	"github.com/iwvelando/fitness-forecast/pkg/recommend"
	"github.com/iwvelando/fitness-forecast/pkg/validation"
)

// Params configure an Engine.
type Params struct {
	// WindowDays is the number of calendar days aggregated.
	WindowDays int

	// AsOf is the last day of the window; zero means the latest entry.
	AsOf datetime.Date

	Weights aggregate.Weights
	Model   projection.Model

	// Recommend.Split is derived from the logged macros when left zero.
	Recommend recommend.Options
}

// DefaultParams returns pound-based parameters with the built-in constants.
func DefaultParams() Params {
	opts := recommend.DefaultOptions()
	opts.Split = recommend.MacroSplit{}
	return Params{
		WindowDays: constants.DefaultWindowDays,
		Weights:    aggregate.DefaultWeights(),
		Model:      projection.DefaultModel(),
		Recommend:  opts,
	}
}

// Engine runs predictions. It holds no per-request state and is safe for
// concurrent use.
type Engine struct {
	logger     *zap.Logger
	params     Params
	aggregator *aggregate.Aggregator
}

// New creates an engine with the given logger and parameters.
// If logger is nil, it will use a no-op logger to prevent panics.
func New(logger *zap.Logger, params Params) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if params.WindowDays <= 0 {
		params.WindowDays = constants.DefaultWindowDays
	}
	return &Engine{
		logger:     logger,
		params:     params,
		aggregator: aggregate.New(params.Weights),
	}
}

// Params returns the parameters the engine was built with.
func (e *Engine) Params() Params {
	return e.params
}

// Run validates the inputs and produces predicted metrics, target metrics,
// their differences and the recommendations closing the gap. Invalid input
// is rejected before any computation.
func (e *Engine) Run(entries []fitness.LogEntry, target fitness.TargetSpec) (fitness.PredictionResult, error) {
	if err := validation.ValidateTarget(target); err != nil {
		return fitness.PredictionResult{}, fmt.Errorf("invalid target: %w", err)
	}
	if err := validation.ValidateEntries(entries); err != nil {
		return fitness.PredictionResult{}, fmt.Errorf("invalid log entries: %w", err)
	}

	agg := e.aggregator.AggregateAsOf(entries, e.params.WindowDays, e.params.AsOf)
	e.logger.Debug("aggregated history",
		zap.String("op", "engine.Run"),
		zap.Int("entries", len(entries)),
		zap.Int("window_days", agg.WindowDays),
		zap.Int("days_logged", agg.DaysLogged),
		zap.Float64("net_calories", agg.NetCalories),
		zap.Float64("cardio_load", agg.CardioLoad),
	)

	predicted := e.params.Model.Project(agg, target.TimeframeDays)
	targets, differences := comparison.Compare(predicted, target)

	opts := e.params.Recommend
	if opts.Split == (recommend.MacroSplit{}) {
		opts.Split = recommend.MacroSplitFrom(agg.Macros)
	}
	recs, err := recommend.Synthesize(differences, target, target.TimeframeDays, opts)
	if err != nil {
		return fitness.PredictionResult{}, fmt.Errorf("failed to synthesize recommendations: %w", err)
	}

	e.logger.Debug("prediction complete",
		zap.String("op", "engine.Run"),
		zap.Int("timeframe_days", target.TimeframeDays),
		zap.Float64("predicted_weight_change", predicted.WeightChange),
		zap.Float64("weight_difference", differences.WeightChange),
		zap.Int("recommendations", len(recs)),
	)

	return fitness.PredictionResult{
		Aggregated:      agg,
		Predicted:       predicted,
		Target:          targets,
		Differences:     differences,
		Recommendations: recs,
	}, nil
}
