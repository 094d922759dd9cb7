package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/iwvelando/fitness-forecast/internal/config"
	"github.com/iwvelando/fitness-forecast/internal/logging"
	"github.com/iwvelando/fitness-forecast/internal/server"
	"github.com/iwvelando/fitness-forecast/pkg/adapters"
	"github.com/iwvelando/fitness-forecast/pkg/constants"
	"github.com/iwvelando/fitness-forecast/pkg/fitness"
	"github.com/iwvelando/fitness-forecast/pkg/history"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

const shutdownTimeout = 10 * time.Second

func main() {
	configLocation := flag.String("config", constants.DefaultServerConfigFile, "path to server configuration file")
	showVersion := flag.Bool("version", false, "print the version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version)
		return
	}

	// A missing .env file is fine; the environment may be set directly.
	_ = godotenv.Load()

	cfg, err := server.LoadConfig(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load server configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		return
	}
	cfg.ApplyEnvironment(os.LookupEnv)

	logger, err := logging.New(cfg.Logging, "")
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	opts := server.Options{
		MaxUploadSize:  cfg.UploadSizeBytes(),
		Version:        version,
		AllowedOrigins: cfg.Origins(),
	}
	if cfg.ForecastConfig != "" {
		forecastPath := cfg.ForecastConfig
		if !filepath.IsAbs(forecastPath) {
			forecastPath = filepath.Join(filepath.Dir(*configLocation), forecastPath)
		}
		opts.Forecast, opts.History, err = loadForecast(logger, forecastPath)
		if err != nil {
			logger.Fatal("failed to load forecast configuration",
				zap.String("op", "main"),
				zap.String("path", forecastPath),
				zap.Error(err),
			)
		}
		logger.Info("forecast configuration loaded",
			zap.String("op", "main"),
			zap.String("path", forecastPath),
			zap.Int("historyDays", len(opts.History)),
		)
	}

	handler, err := server.NewHandler(logger, opts)
	if err != nil {
		logger.Fatal("failed to build handler",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	httpServer := &http.Server{
		Addr:              cfg.Address,
		Handler:           handler,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server listening",
			zap.String("op", "main"),
			zap.String("address", cfg.Address),
			zap.String("version", version),
		)
		serveErr <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
	case <-ctx.Done():
		logger.Warn("shutdown signal received",
			zap.String("op", "main"),
		)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to gracefully shut down http server",
			zap.String("op", "main"),
			zap.Error(err),
		)
		return
	}
	logger.Info("server shut down",
		zap.String("op", "main"),
	)
}

// loadForecast reads and validates the engine configuration and its history
// file. Configuration warnings are logged.
func loadForecast(logger *zap.Logger, path string) (*config.Configuration, []fitness.LogEntry, error) {
	conf, err := config.LoadConfiguration(path)
	if err != nil {
		return nil, nil, err
	}
	if err := conf.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}
	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main.loadForecast"),
			zap.String("path", path),
		)
	}
	historyPath := conf.HistoryPath(path)
	if historyPath == "" {
		return conf, nil, nil
	}
	entries, err := history.LoadFile(historyPath, adapters.DailyLogConverter(*conf))
	if err != nil {
		return nil, nil, err
	}
	return conf, entries, nil
}
