package config

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
)

// EnvPrefix is the prefix of every recognized environment variable.
const EnvPrefix = "PATTERNS_"

// EnvLoader applies environment variable overrides.
type EnvLoader struct {
	prefix string
	lookup func(string) (string, bool)
}

// NewEnvLoader creates a loader reading variables with the given prefix.
// The prefix should include the trailing underscore.
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{prefix: prefix, lookup: os.LookupEnv}
}

// NewEnvLoaderWithLookup creates a loader with a custom variable source.
func NewEnvLoaderWithLookup(prefix string, lookup func(string) (string, bool)) *EnvLoader {
	return &EnvLoader{prefix: prefix, lookup: lookup}
}

// envSetters maps variable names (without prefix) to config fields.
var envSetters = map[string]func(c *Config, v string) error{
	"LOG_LEVEL": func(c *Config, v string) error {
		c.Log.Level = v
		return nil
	},
	"LOG_FORMAT": func(c *Config, v string) error {
		c.Log.Format = v
		return nil
	},
	"DEMOS": func(c *Config, v string) error {
		c.Catalog.Demos = splitList(v)
		return nil
	},
	"COMMAND_SEQUENCE": func(c *Config, v string) error {
		c.Command.Sequence = splitList(v)
		return nil
	},
	"COMMAND_SCRIPT": func(c *Config, v string) error {
		c.Command.Script = v
		return nil
	},
	"DECORATOR_MESSAGE": func(c *Config, v string) error {
		c.Decorator.Message = v
		return nil
	},
	"DECORATOR_SMS":      boolSetter(func(c *Config) *bool { return &c.Decorator.Services.SMS }),
	"DECORATOR_FACEBOOK": boolSetter(func(c *Config) *bool { return &c.Decorator.Services.Facebook }),
	"DECORATOR_SLACK":    boolSetter(func(c *Config) *bool { return &c.Decorator.Services.Slack }),
	"STRATEGY_INITIAL": func(c *Config, v string) error {
		c.Strategy.Initial = v
		return nil
	},
}

func boolSetter(field func(c *Config) *bool) func(c *Config, v string) error {
	return func(c *Config, v string) error {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return err
		}
		*field(c) = b
		return nil
	}
}

// Variables returns the recognized variable names, sorted.
func (l *EnvLoader) Variables() []string {
	names := make([]string, 0, len(envSetters))
	for name := range envSetters {
		names = append(names, l.prefix+name)
	}
	sort.Strings(names)
	return names
}

// Apply overrides cfg with every variable that is set. Empty values are
// treated as set.
func (l *EnvLoader) Apply(cfg *Config) error {
	for name, set := range envSetters {
		v, ok := l.lookup(l.prefix + name)
		if !ok {
			continue
		}
		if err := set(cfg, v); err != nil {
			return fmt.Errorf("environment %s%s: %w", l.prefix, name, err)
		}
	}
	return nil
}

// splitList splits a comma separated list, dropping empty items.
func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
