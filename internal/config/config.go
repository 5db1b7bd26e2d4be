// Package config loads layerpaint settings from the environment.
//
// Command-line flags take precedence; the CLI only consults a field when
// the matching flag was not set.
package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"

	"github.com/roach88/layerpaint/internal/fault"
	"github.com/roach88/layerpaint/internal/history"
	"github.com/roach88/layerpaint/internal/replay"
)

// Config holds environment-provided settings.
type Config struct {
	HistoryCapacity int        `env:"LAYERPAINT_HISTORY_CAPACITY" envDefault:"10000"`
	ReplayCapacity  int        `env:"LAYERPAINT_REPLAY_CAPACITY"  envDefault:"10000"`
	Catalog         string     `env:"LAYERPAINT_CATALOG"`
	LogLevel        slog.Level `env:"LAYERPAINT_LOG_LEVEL"        envDefault:"INFO"`
}

// Default returns the configuration used when the environment is empty.
func Default() Config {
	return Config{
		HistoryCapacity: history.DefaultCapacity,
		ReplayCapacity:  replay.DefaultCapacity,
		LogLevel:        slog.LevelInfo,
	}
}

// Load reads the process environment.
func Load() (Config, error) {
	return parse(env.Options{})
}

// LoadFrom reads vars instead of the process environment.
func LoadFrom(vars map[string]string) (Config, error) {
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects negative capacities.
func (c Config) Validate() error {
	if c.HistoryCapacity < 0 {
		return fault.InvalidArgument("history capacity must be non-negative, got %d", c.HistoryCapacity)
	}
	if c.ReplayCapacity < 0 {
		return fault.InvalidArgument("replay capacity must be non-negative, got %d", c.ReplayCapacity)
	}
	return nil
}
