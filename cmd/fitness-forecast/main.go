package main

import (
	"context"
	"flag"
	"fmt"

	"go.uber.org/zap"

	"github.com/iwvelando/fitness-forecast/internal/config"
	"github.com/iwvelando/fitness-forecast/internal/forecast"
	"github.com/iwvelando/fitness-forecast/internal/logging"
	"github.com/iwvelando/fitness-forecast/internal/optimizer"
	"github.com/iwvelando/fitness-forecast/pkg/adapters"
	"github.com/iwvelando/fitness-forecast/pkg/constants"
	"github.com/iwvelando/fitness-forecast/pkg/fitness"
	"github.com/iwvelando/fitness-forecast/pkg/history"
	"github.com/iwvelando/fitness-forecast/pkg/output"
	"github.com/iwvelando/fitness-forecast/pkg/validation"
)

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	historyLocation := flag.String("history", "", "path to the log history file, overriding common.historyFile")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv, json")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	optimize := flag.Bool("optimize", false, "search each scenario for the shortest horizon that reaches its target")
	flag.Parse()

	// Load the config file to get logging configuration
	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		return
	}

	logger, err := logging.New(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	historyPath := conf.HistoryPath(*configLocation)
	if *historyLocation != "" {
		historyPath = *historyLocation
		conf.Common.HistoryFile = *historyLocation
	}

	if err := conf.Validate(); err != nil {
		logger.Fatal("invalid configuration",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	var entries []fitness.LogEntry
	if historyPath != "" {
		entries, err = history.LoadFile(historyPath, adapters.DailyLogConverter(*conf))
		if err != nil {
			logger.Fatal("failed to load history",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		logger.Debug("history loaded",
			zap.String("op", "main"),
			zap.String("path", historyPath),
			zap.Int("days", len(entries)),
		)
	}

	results, err := forecast.GetForecast(context.Background(), logger, *conf, entries)
	if err != nil {
		logger.Fatal("failed to compute forecast",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	if *optimize {
		runner, err := optimizer.NewRunner(logger, conf)
		if err != nil {
			logger.Fatal("failed to prepare optimizer",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		optResult, err := runner.Run(context.Background(), entries)
		if err != nil {
			logger.Fatal("failed to optimize horizons",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		optResult.Apply(results)
	}

	// Handle output.
	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(results)
	case constants.OutputFormatCSV:
		output.CsvFormat(results)
	case constants.OutputFormatJSON:
		if err := output.JSONFormat(results); err != nil {
			logger.Fatal("failed to write JSON output",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
	}
}
