// Package catalog registers the pattern demos and runs them in order.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

// Errors returned by the catalog.
var (
	// ErrDuplicateDemo is returned when a demo name is registered twice.
	ErrDuplicateDemo = errors.New("demo already registered")

	// ErrUnknownDemo is returned when a requested demo is not registered.
	ErrUnknownDemo = errors.New("unknown demo")

	// ErrNilDemo is returned when registering a nil demo.
	ErrNilDemo = errors.New("demo cannot be nil")
)

// Demo is one runnable pattern illustration.
type Demo interface {
	Name() string
	Run(ctx context.Context, out io.Writer) error
}

// DemoError wraps a failure of one demo.
type DemoError struct {
	Demo string
	Err  error
}

// Error implements the error interface.
func (e *DemoError) Error() string {
	return fmt.Sprintf("%s demo: %v", e.Demo, e.Err)
}

// Unwrap returns the underlying error.
func (e *DemoError) Unwrap() error {
	return e.Err
}

// Catalog keeps demos in registration order. It is safe for concurrent use.
type Catalog struct {
	mu    sync.RWMutex
	demos []Demo
	index map[string]int
}

// New creates an empty catalog.
func New() *Catalog {
	return &Catalog{index: make(map[string]int)}
}

func key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Register appends d. Names are compared ignoring case.
func (c *Catalog) Register(d Demo) error {
	if d == nil {
		return ErrNilDemo
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	k := key(d.Name())
	if _, ok := c.index[k]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateDemo, d.Name())
	}
	c.index[k] = len(c.demos)
	c.demos = append(c.demos, d)
	return nil
}

// Names returns the registered demo names in order.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, len(c.demos))
	for i, d := range c.demos {
		names[i] = d.Name()
	}
	return names
}

// Get returns the demo registered under name.
func (c *Catalog) Get(name string) (Demo, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	i, ok := c.index[key(name)]
	if !ok {
		return nil, false
	}
	return c.demos[i], true
}

// Len returns the number of registered demos.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.demos)
}

// selectDemos resolves names, or every demo when names is empty. All names
// are resolved before anything runs.
func (c *Catalog) selectDemos(names []string) ([]Demo, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if len(names) == 0 {
		return append([]Demo(nil), c.demos...), nil
	}

	selected := make([]Demo, 0, len(names))
	var unknown []string
	for _, name := range names {
		i, ok := c.index[key(name)]
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		selected = append(selected, c.demos[i])
	}
	if len(unknown) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDemo, strings.Join(unknown, ", "))
	}
	return selected, nil
}

// Header returns the banner printed before a demo.
func Header(name string) string {
	return fmt.Sprintf("/*************** %s Test ***************/", name)
}

// Run runs the named demos, or all of them, writing each one's banner,
// output and a trailing blank line to out. It stops at the first failing
// demo.
func (c *Catalog) Run(ctx context.Context, out io.Writer, names ...string) error {
	demos, err := c.selectDemos(names)
	if err != nil {
		return err
	}

	for _, d := range demos {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(out, Header(d.Name())); err != nil {
			return err
		}
		if err := d.Run(ctx, out); err != nil {
			return &DemoError{Demo: d.Name(), Err: err}
		}
		if _, err := fmt.Fprintln(out); err != nil {
			return err
		}
	}
	return nil
}
