package command

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// DefaultSequence is the scripted activation sequence of the demo.
var DefaultSequence = []string{"Copy", "Paste", "Undo", "Cut", "Paste"}

// Driver drives an application instead of the scripted sequence.
type Driver func(ctx context.Context, inv *Invoker, out io.Writer) error

// Resolver maps a sequence step to a trigger.
type Resolver func(step string) (Trigger, error)

// Demo runs the Copy/Cut/Paste/Undo application.
type Demo struct {
	steps   []string
	resolve Resolver
	driver  Driver
	logger  *slog.Logger
}

// DemoOption configures a Demo.
type DemoOption func(*Demo)

// WithSequence replaces the scripted activation sequence.
func WithSequence(steps []string) DemoOption {
	return func(d *Demo) {
		d.steps = steps
	}
}

// WithResolver sets how sequence steps are mapped to triggers.
func WithResolver(r Resolver) DemoOption {
	return func(d *Demo) {
		if r != nil {
			d.resolve = r
		}
	}
}

// WithDriver runs fn against the application instead of the sequence.
func WithDriver(fn Driver) DemoOption {
	return func(d *Demo) {
		d.driver = fn
	}
}

// WithLogger sets the logger used for failure diagnostics.
func WithLogger(logger *slog.Logger) DemoOption {
	return func(d *Demo) {
		d.logger = logger
	}
}

// NewDemo creates the command demo.
func NewDemo(opts ...DemoOption) *Demo {
	d := &Demo{
		steps:   DefaultSequence,
		resolve: ParseTrigger,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Name implements the catalog demo contract.
func (d *Demo) Name() string {
	return "Command"
}

// Run builds a fresh application and drives it. Contained command failures
// do not stop the run; unresolvable steps and driver errors do.
func (d *Demo) Run(ctx context.Context, out io.Writer) error {
	inv := NewApplication(out, NewLogReporter(out, d.logger))

	if d.driver != nil {
		return d.driver(ctx, inv, out)
	}

	for _, step := range d.steps {
		t, err := d.resolve(step)
		if err != nil {
			return fmt.Errorf("resolve step %q: %w", step, err)
		}
		inv.Activate(ctx, t)
	}
	return nil
}
