package keymap

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/patterns/internal/command"
)

// ErrUnboundKey indicates a key has no trigger bound to it.
var ErrUnboundKey = errors.New("key not bound")

// Binding represents a single key-to-trigger mapping.
type Binding struct {
	// Keys is the key specification, e.g. "Ctrl+C" or "<S-Insert>".
	Keys string

	// Trigger is the command trigger fired by the key.
	Trigger command.Trigger

	// Description documents the binding.
	Description string
}

// Keymap holds key bindings. It is safe for concurrent use.
type Keymap struct {
	// Name is the keymap identifier.
	Name string

	mu       sync.RWMutex
	bindings []Binding
	strokes  map[stroke]command.Trigger
}

// New creates an empty keymap.
func New(name string) *Keymap {
	return &Keymap{
		Name:    name,
		strokes: make(map[stroke]command.Trigger),
	}
}

// Default returns the conventional clipboard bindings.
func Default() *Keymap {
	km := New("default")
	for _, b := range []Binding{
		{Keys: "Ctrl+C", Trigger: command.TriggerCopy, Description: "Copy selection"},
		{Keys: "Ctrl+X", Trigger: command.TriggerCut, Description: "Cut selection"},
		{Keys: "Ctrl+V", Trigger: command.TriggerPaste, Description: "Paste clipboard"},
		{Keys: "Ctrl+Z", Trigger: command.TriggerUndo, Description: "Undo last command"},
		{Keys: "Ctrl+Insert", Trigger: command.TriggerCopy, Description: "Copy selection"},
		{Keys: "Shift+Delete", Trigger: command.TriggerCut, Description: "Cut selection"},
		{Keys: "Shift+Insert", Trigger: command.TriggerPaste, Description: "Paste clipboard"},
	} {
		km.mustAdd(b)
	}
	return km
}

// mustAdd is like Add but panics on error. It is meant for built-in
// bindings only.
func (km *Keymap) mustAdd(b Binding) {
	if err := km.Add(b); err != nil {
		panic(fmt.Sprintf("keymap %s: %v", km.Name, err))
	}
}

// Add registers a binding. A later binding for the same key replaces the
// earlier one.
func (km *Keymap) Add(b Binding) error {
	if b.Trigger == "" {
		return fmt.Errorf("binding %q: empty trigger", b.Keys)
	}
	ev, err := ParseKey(b.Keys)
	if err != nil {
		return fmt.Errorf("binding %q: %w", b.Keys, err)
	}

	km.mu.Lock()
	defer km.mu.Unlock()
	km.strokes[strokeOf(ev)] = b.Trigger
	km.bindings = append(km.bindings, b)
	return nil
}

// Bind is shorthand for Add with no description.
func (km *Keymap) Bind(keys string, t command.Trigger) error {
	return km.Add(Binding{Keys: keys, Trigger: t})
}

// Bindings returns the registered bindings in registration order.
func (km *Keymap) Bindings() []Binding {
	km.mu.RLock()
	defer km.mu.RUnlock()
	result := make([]Binding, len(km.bindings))
	copy(result, km.bindings)
	return result
}

// Lookup returns the trigger bound to a key event.
func (km *Keymap) Lookup(ev *tcell.EventKey) (command.Trigger, bool) {
	if ev == nil {
		return "", false
	}
	km.mu.RLock()
	defer km.mu.RUnlock()
	t, ok := km.strokes[strokeOf(ev)]
	return t, ok
}

// Resolve maps a sequence step to a trigger. A step is either a trigger
// name ("Copy") or a key specification ("Ctrl+C").
func (km *Keymap) Resolve(step string) (command.Trigger, error) {
	if t, err := command.ParseTrigger(step); err == nil {
		return t, nil
	}

	ev, err := ParseKey(step)
	if err != nil {
		return "", fmt.Errorf("step %q is neither a trigger nor a key: %w", step, err)
	}
	t, ok := km.Lookup(ev)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnboundKey, step)
	}
	return t, nil
}

// Feed activates the trigger of each key event in order. Unbound keys are
// skipped and yield no outcome.
func (km *Keymap) Feed(ctx context.Context, inv *command.Invoker, events ...*tcell.EventKey) []command.Outcome {
	var outcomes []command.Outcome
	for _, ev := range events {
		t, ok := km.Lookup(ev)
		if !ok {
			continue
		}
		outcomes = append(outcomes, inv.Activate(ctx, t))
	}
	return outcomes
}
