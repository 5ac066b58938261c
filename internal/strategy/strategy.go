// Package strategy implements interchangeable route building strategies
// selected at runtime by a Navigator.
package strategy

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
)

// ErrUnknownStrategy indicates a strategy name could not be parsed.
var ErrUnknownStrategy = errors.New("unknown route strategy")

// Strategy names accepted by Parse.
const (
	NameRoad            = "road"
	NameWalking         = "walking"
	NamePublicTransport = "public-transport"
)

// RouteStrategy builds a route description between two points.
type RouteStrategy interface {
	Name() string
	BuildRoute(a, b string) string
}

// Road builds roads.
type Road struct{}

// Name returns "road".
func (Road) Name() string { return NameRoad }

// BuildRoute describes a road between a and b.
func (Road) BuildRoute(a, b string) string {
	return fmt.Sprintf("Building road from %s to %s...", a, b)
}

// Walking builds sidewalks.
type Walking struct{}

// Name returns "walking".
func (Walking) Name() string { return NameWalking }

// BuildRoute describes a sidewalk between a and b.
func (Walking) BuildRoute(a, b string) string {
	return fmt.Sprintf("Building sidewalk from %s to %s...", a, b)
}

// PublicTransport builds train tracks.
type PublicTransport struct{}

// Name returns "public-transport".
func (PublicTransport) Name() string { return NamePublicTransport }

// BuildRoute describes train tracks between a and b.
func (PublicTransport) BuildRoute(a, b string) string {
	return fmt.Sprintf("Building train tracks from %s to %s...", a, b)
}

// Names returns the accepted strategy names.
func Names() []string {
	return []string{NameRoad, NameWalking, NamePublicTransport}
}

// Parse returns the strategy for name. Case, surrounding space and the
// separator between "public" and "transport" are ignored.
func Parse(name string) (RouteStrategy, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.NewReplacer("_", "", "-", "", " ", "").Replace(n)
	switch n {
	case "road":
		return Road{}, nil
	case "walking":
		return Walking{}, nil
	case "publictransport":
		return PublicTransport{}, nil
	default:
		return nil, fmt.Errorf("%w: %q (must be one of %s)", ErrUnknownStrategy, name, strings.Join(Names(), ", "))
	}
}

// Navigator delegates route building to its current strategy.
type Navigator struct {
	mu       sync.RWMutex
	strategy RouteStrategy
	out      io.Writer
}

// NewNavigator creates a navigator that starts with the road strategy and
// prints routes to out.
func NewNavigator(out io.Writer) *Navigator {
	if out == nil {
		out = io.Discard
	}
	return &Navigator{strategy: Road{}, out: out}
}

// SetStrategy replaces the current strategy. A nil strategy is ignored.
func (n *Navigator) SetStrategy(s RouteStrategy) {
	if s == nil {
		return
	}
	n.mu.Lock()
	n.strategy = s
	n.mu.Unlock()
}

// Strategy returns the current strategy.
func (n *Navigator) Strategy() RouteStrategy {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.strategy
}

// BuildRoute prints the route produced by the current strategy.
func (n *Navigator) BuildRoute(a, b string) error {
	_, err := fmt.Fprintln(n.out, n.Strategy().BuildRoute(a, b))
	return err
}

// Demo builds one route with the initial strategy, then switches to public
// transport.
type Demo struct {
	initial RouteStrategy
	logger  *slog.Logger
}

// NewDemo creates the strategy demo. A nil initial strategy means road.
func NewDemo(initial RouteStrategy, logger *slog.Logger) *Demo {
	if initial == nil {
		initial = Road{}
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Demo{initial: initial, logger: logger}
}

// Name implements the catalog demo contract.
func (d *Demo) Name() string {
	return "Strategy"
}

// Run executes the demo.
func (d *Demo) Run(_ context.Context, out io.Writer) error {
	nav := NewNavigator(out)
	nav.SetStrategy(d.initial)
	d.logger.Debug("route strategy selected", "strategy", d.initial.Name())

	if err := nav.BuildRoute("45 chemin Bates", "50 chemin Bates"); err != nil {
		return err
	}

	nav.SetStrategy(PublicTransport{})
	d.logger.Debug("route strategy selected", "strategy", NamePublicTransport)

	return nav.BuildRoute("Montréal", "Toronto")
}
