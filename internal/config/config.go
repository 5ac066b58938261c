// Package config provides configuration for the pattern catalog.
//
// Configuration is layered: built-in defaults, then an optional TOML or
// YAML file, then PATTERNS_* environment variables.
package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/dshills/patterns/internal/command"
	"github.com/dshills/patterns/internal/keymap"
	"github.com/dshills/patterns/internal/logging"
	"github.com/dshills/patterns/internal/strategy"
)

// Config holds all settings.
type Config struct {
	Log       LogConfig       `toml:"log" yaml:"log"`
	Catalog   CatalogConfig   `toml:"catalog" yaml:"catalog"`
	Command   CommandConfig   `toml:"command" yaml:"command"`
	Decorator DecoratorConfig `toml:"decorator" yaml:"decorator"`
	Strategy  StrategyConfig  `toml:"strategy" yaml:"strategy"`
}

// LogConfig configures diagnostics.
type LogConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
}

// CatalogConfig selects which demos run.
type CatalogConfig struct {
	// Demos lists demo names to run in order. Empty means all.
	Demos []string `toml:"demos" yaml:"demos"`
}

// CommandConfig configures the command demo.
type CommandConfig struct {
	// Sequence lists trigger names or key specifications to activate.
	Sequence []string `toml:"sequence" yaml:"sequence"`
	// Script is a Lua file that drives the demo instead of Sequence.
	Script string `toml:"script" yaml:"script"`
}

// DecoratorConfig configures the decorator demo.
type DecoratorConfig struct {
	Message  string         `toml:"message" yaml:"message"`
	Services ServicesConfig `toml:"services" yaml:"services"`
}

// ServicesConfig enables notification services.
type ServicesConfig struct {
	SMS      bool `toml:"sms" yaml:"sms"`
	Facebook bool `toml:"facebook" yaml:"facebook"`
	Slack    bool `toml:"slack" yaml:"slack"`
}

// StrategyConfig configures the strategy demo.
type StrategyConfig struct {
	// Initial is the strategy the navigator starts with.
	Initial string `toml:"initial" yaml:"initial"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: string(logging.FormatText),
		},
		Command: CommandConfig{
			Sequence: slices.Clone(command.DefaultSequence),
		},
		Decorator: DecoratorConfig{
			Message: "Hello!",
			Services: ServicesConfig{
				SMS:      true,
				Facebook: false,
				Slack:    true,
			},
		},
		Strategy: StrategyConfig{
			Initial: strategy.NameRoad,
		},
	}
}

// Validate checks every setting and returns all failures joined.
func (c *Config) Validate() error {
	var errs []error

	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, &ValidationError{Path: "log.level", Value: c.Log.Level, Message: err.Error()})
	}
	if _, err := logging.ParseFormat(c.Log.Format); err != nil {
		errs = append(errs, &ValidationError{Path: "log.format", Value: c.Log.Format, Message: err.Error()})
	}

	km := keymap.Default()
	for i, step := range c.Command.Sequence {
		if _, err := km.Resolve(step); err != nil {
			errs = append(errs, &ValidationError{
				Path:    fmt.Sprintf("command.sequence[%d]", i),
				Value:   step,
				Message: err.Error(),
			})
		}
	}

	if _, err := strategy.Parse(c.Strategy.Initial); err != nil {
		errs = append(errs, &ValidationError{Path: "strategy.initial", Value: c.Strategy.Initial, Message: err.Error()})
	}

	return errors.Join(errs...)
}

// LoggingConfig converts the log settings for the logging package.
func (c *Config) LoggingConfig() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = c.Log.Level
	cfg.Format = logging.Format(c.Log.Format)
	return cfg
}
