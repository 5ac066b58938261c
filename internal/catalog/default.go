package catalog

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/dshills/patterns/internal/command"
	"github.com/dshills/patterns/internal/config"
	"github.com/dshills/patterns/internal/decorator"
	"github.com/dshills/patterns/internal/keymap"
	"github.com/dshills/patterns/internal/logging"
	"github.com/dshills/patterns/internal/observer"
	"github.com/dshills/patterns/internal/script"
	"github.com/dshills/patterns/internal/singleton"
	"github.com/dshills/patterns/internal/strategy"
	"github.com/dshills/patterns/internal/visitor"
)

type defaultOptions struct {
	diag io.Writer
}

// Option configures Default.
type Option func(*defaultOptions)

// WithDiagnostics sets where demos report recoverable problems, such as a
// duplicate singleton item. Unset, they go to the demo output.
func WithDiagnostics(w io.Writer) Option {
	return func(o *defaultOptions) { o.diag = w }
}

// Default builds the catalog from cfg in the order Singleton, Decorator,
// Command, Observer, Strategy, Visitor. A nil cfg means config.Default.
func Default(cfg *config.Config, logger *slog.Logger, opts ...Option) (*Catalog, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = logging.Discard()
	}
	var o defaultOptions
	for _, opt := range opts {
		opt(&o)
	}

	initial, err := strategy.Parse(cfg.Strategy.Initial)
	if err != nil {
		return nil, err
	}

	cmdOpts := []command.DemoOption{
		command.WithSequence(cfg.Command.Sequence),
		command.WithResolver(keymap.Default().Resolve),
		command.WithLogger(logging.WithComponent(logger, "command")),
	}
	if cfg.Command.Script != "" {
		cmdOpts = append(cmdOpts, command.WithDriver(script.FileDriver(cfg.Command.Script)))
	}

	services := decorator.Services{
		SMS:      cfg.Decorator.Services.SMS,
		Facebook: cfg.Decorator.Services.Facebook,
		Slack:    cfg.Decorator.Services.Slack,
	}

	demos := []Demo{
		singleton.NewDemo(singleton.Instance, o.diag, logging.WithComponent(logger, "singleton")),
		decorator.NewDemo(cfg.Decorator.Message, services, logging.WithComponent(logger, "decorator")),
		command.NewDemo(cmdOpts...),
		observer.NewDemo(logging.WithComponent(logger, "observer")),
		strategy.NewDemo(initial, logging.WithComponent(logger, "strategy")),
		visitor.NewDemo(logging.WithComponent(logger, "visitor")),
	}

	c := New()
	for _, d := range demos {
		if err := c.Register(d); err != nil {
			return nil, fmt.Errorf("register %s: %w", d.Name(), err)
		}
	}
	return c, nil
}
