package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sh3r4rd/survey_submissions/internal/config"
)

const endpoint = "https://script.google.com/macros/s/example/exec"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SURVEY_DELIVERY_ENDPOINT", endpoint)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Env)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, endpoint, cfg.Delivery.Endpoint)
	assert.Zero(t, cfg.Delivery.Timeout)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "8888", cfg.Server.Port)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SURVEY_ENV", "development")
	t.Setenv("SURVEY_DELIVERY_ENDPOINT", endpoint)
	t.Setenv("SURVEY_DELIVERY_TIMEOUT", "8s")
	t.Setenv("SURVEY_LOGGING_LEVEL", "debug")
	t.Setenv("SURVEY_LOGGING_FORMAT", "console")
	t.Setenv("SURVEY_SERVER_PORT", "9999")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, 8*time.Second, cfg.Delivery.Timeout)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, "9999", cfg.Server.Port)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{
			name: "missing endpoint",
			env:  map[string]string{},
		},
		{
			name: "endpoint is not a url",
			env:  map[string]string{"SURVEY_DELIVERY_ENDPOINT": "sheets"},
		},
		{
			name: "unknown log level",
			env: map[string]string{
				"SURVEY_DELIVERY_ENDPOINT": endpoint,
				"SURVEY_LOGGING_LEVEL":     "verbose",
			},
		},
		{
			name: "unknown log format",
			env: map[string]string{
				"SURVEY_DELIVERY_ENDPOINT": endpoint,
				"SURVEY_LOGGING_FORMAT":    "xml",
			},
		},
		{
			name: "non numeric port",
			env: map[string]string{
				"SURVEY_DELIVERY_ENDPOINT": endpoint,
				"SURVEY_SERVER_PORT":       "http",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SURVEY_DELIVERY_ENDPOINT", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}
