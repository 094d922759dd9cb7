package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoadForecast(t *testing.T) {
	conf, entries, err := loadForecast(zap.NewNop(), filepath.Join("..", "..", "test", "test_config.yaml"))
	require.NoError(t, err)
	assert.Len(t, conf.Scenarios, 3)
	assert.Len(t, entries, 14)
}

func TestLoadForecastRejectsInvalidConfiguration(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"bad weight unit", "common:\n  weightUnit: stone\nscenarios:\n  - name: a\n    active: true\n    timeframeDays: 30\n", "common.weightUnit"},
		{"negative optimizer horizon", "optimizer:\n  maxDays: -1\nscenarios:\n  - name: a\n    active: true\n    timeframeDays: 30\n", "optimizer.maxDays"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "forecast.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0600))

			_, _, err := loadForecast(zap.NewNop(), path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadForecastLogsWarnings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "forecast.yaml")
	require.NoError(t, os.WriteFile(path, []byte("scenarios:\n  - name: parked\n    active: false\n    timeframeDays: 30\n"), 0600))

	core, logs := observer.New(zap.WarnLevel)
	_, entries, err := loadForecast(zap.New(core), path)
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.NotZero(t, logs.Len())
}
