// Package logging builds the zap loggers used by the command line tool and
// the HTTP server.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/iwvelando/fitness-forecast/internal/config"
)

// Defaults for rotated log files.
const (
	defaultMaxSizeMB  = 100
	defaultMaxBackups = 3
)

// ParseLevel converts a level name into a zap level.
func ParseLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "info":
		return zapcore.InfoLevel, nil
	case "debug":
		return zapcore.DebugLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	}
	return zapcore.InfoLevel, fmt.Errorf("invalid log level: %s", level)
}

// New creates a zap logger based on configuration and CLI override. Without
// an output file the logger writes to stderr; with one, output goes to a
// size-rotated file.
func New(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	zapLevel, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	format := loggingConfig.Format
	if format == "" {
		format = "json"
	}

	var zapConfig zap.Config
	switch format {
	case "console":
		zapConfig = zap.NewDevelopmentConfig()
	case "json":
		zapConfig = zap.NewProductionConfig()
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}
	zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)

	if loggingConfig.OutputFile == "" {
		return zapConfig.Build()
	}

	if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
		}
	}
	writer, err := rotatingWriter(loggingConfig)
	if err != nil {
		return nil, err
	}

	var encoder zapcore.Encoder
	if format == "console" {
		encoder = zapcore.NewConsoleEncoder(zapConfig.EncoderConfig)
	} else {
		encoder = zapcore.NewJSONEncoder(zapConfig.EncoderConfig)
	}
	core := zapcore.NewCore(encoder, writer, zapConfig.Level)
	return zap.New(core, zap.AddCaller(), zap.ErrorOutput(writer)), nil
}

func rotatingWriter(loggingConfig config.LoggingConfig) (zapcore.WriteSyncer, error) {
	// Fail early on an unwritable path; lumberjack only opens on first write.
	file, err := os.OpenFile(loggingConfig.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", loggingConfig.OutputFile, err)
	}
	_ = file.Close()

	maxSize := loggingConfig.MaxSizeMB
	if maxSize <= 0 {
		maxSize = defaultMaxSizeMB
	}
	maxBackups := loggingConfig.MaxBackups
	if maxBackups <= 0 {
		maxBackups = defaultMaxBackups
	}

	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   loggingConfig.OutputFile,
		MaxSize:    maxSize,
		MaxBackups: maxBackups,
		Compress:   loggingConfig.Compress,
	}), nil
}
