// Package forecast defines the data structures related to a given forecast and
// includes functions for computing the forecasts.
package forecast

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/iwvelando/fitness-forecast/internal/config"
	"github.com/iwvelando/fitness-forecast/pkg/adapters"
	"github.com/iwvelando/fitness-forecast/pkg/engine"
	"github.com/iwvelando/fitness-forecast/pkg/fitness"
	"github.com/iwvelando/fitness-forecast/pkg/optimization"
)

// Forecast holds all information related to a specific scenario forecast.
type Forecast struct {
	Name          string
	Unit          string
	Target        fitness.TargetSpec
	Result        fitness.PredictionResult
	Optimizations []optimization.Summary
}

// GetForecast runs every active scenario against the same history. Scenarios
// run concurrently; results keep the configuration order. The first failing
// scenario cancels the rest.
func GetForecast(ctx context.Context, logger *zap.Logger, conf config.Configuration, entries []fitness.LogEntry) ([]Forecast, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	params, err := adapters.EngineParams(conf)
	if err != nil {
		return nil, err
	}
	eng := engine.New(logger, params)
	unit := adapters.WeightUnit(conf)

	for _, scenario := range conf.Scenarios {
		if !scenario.Active {
			logger.Debug(fmt.Sprintf("skipping scenario %s because it is inactive", scenario.Name),
				zap.String("op", "forecast.GetForecast"),
			)
		}
	}
	active := conf.ActiveScenarios()
	results := make([]Forecast, len(active))

	g, ctx := errgroup.WithContext(ctx)
	for i, scenario := range active {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			target, err := adapters.ScenarioTarget(scenario)
			if err != nil {
				return err
			}
			result, err := eng.Run(entries, target)
			if err != nil {
				return fmt.Errorf("scenario %s: %w", scenario.Name, err)
			}

			logger.Debug("scenario forecast computed",
				zap.String("op", "forecast.GetForecast"),
				zap.String("scenario", scenario.Name),
				zap.Int("recommendations", len(result.Recommendations)),
			)
			results[i] = Forecast{
				Name:   scenario.Name,
				Unit:   unit,
				Target: target,
				Result: result,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Find returns the forecast with the given scenario name.
func Find(results []Forecast, name string) (Forecast, bool) {
	for _, f := range results {
		if f.Name == name {
			return f, true
		}
	}
	return Forecast{}, false
}
