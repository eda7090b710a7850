// Package config loads the function configuration from the environment.
//
// Variables use the SURVEY_ prefix; the first underscore after the prefix
// separates the section from the key, e.g. SURVEY_DELIVERY_ENDPOINT maps to
// delivery.endpoint. A .env file in the working directory is loaded first
// when present.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "SURVEY_"

// Config is the root configuration object.
type Config struct {
	Env      string         `koanf:"env" validate:"required"`
	Delivery DeliveryConfig `koanf:"delivery" validate:"required"`
	Logging  LoggingConfig  `koanf:"logging" validate:"required"`
	Server   ServerConfig   `koanf:"server"`
}

// DeliveryConfig points at the spreadsheet collaborator.
type DeliveryConfig struct {
	Endpoint string        `koanf:"endpoint" validate:"required,url"`
	Timeout  time.Duration `koanf:"timeout" validate:"min=0"`
}

// LoggingConfig selects the log level and output format.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"required,oneof=debug info warn error"`
	Format string `koanf:"format" validate:"required,oneof=json console"`
}

// ServerConfig is only read by the local dev server.
type ServerConfig struct {
	Port string `koanf:"port" validate:"required,numeric"`
}

// Default returns the configuration used for every key the environment
// leaves unset. The delivery endpoint has no default.
func Default() *Config {
	return &Config{
		Env: "production",
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Server: ServerConfig{
			Port: "8888",
		},
	}
}

// Load reads SURVEY_* variables over the defaults and validates the result.
func Load() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_", ".", 1)
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// IsProduction reports whether Env is "production".
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
