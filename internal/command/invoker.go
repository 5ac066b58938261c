package command

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
)

// OutcomeKind classifies the result of an activation.
type OutcomeKind uint8

const (
	// OutcomeExecuted means the bound command ran and was recorded.
	OutcomeExecuted OutcomeKind = iota
	// OutcomeUndone means the most recent command was popped and undone.
	OutcomeUndone
	// OutcomeNoOp means there was nothing to do.
	OutcomeNoOp
	// OutcomeFailed means Execute or Undo failed. History was not grown.
	OutcomeFailed
)

// String returns a string representation of the outcome kind.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeExecuted:
		return "executed"
	case OutcomeUndone:
		return "undone"
	case OutcomeNoOp:
		return "no-op"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome is the explicit result of Activate.
type Outcome struct {
	// Trigger is the activated trigger.
	Trigger Trigger

	// Kind classifies the outcome.
	Kind OutcomeKind

	// Command is the name of the command involved, if any.
	Command string

	// Result is set only for OutcomeExecuted.
	Result *Result

	// Err is the contained failure, or the reason for a no-op.
	Err error
}

// OK returns true unless the activation failed.
func (o Outcome) OK() bool {
	return o.Kind != OutcomeFailed
}

// Invoker binds commands to triggers and owns the undo history.
type Invoker struct {
	mu       sync.RWMutex
	bindings map[Trigger]Command

	history  *History
	reporter Reporter
}

// NewInvoker creates an invoker. A nil history or reporter gets a default.
func NewInvoker(history *History, reporter Reporter) *Invoker {
	if history == nil {
		history = NewHistory()
	}
	if reporter == nil {
		reporter = NopReporter()
	}
	return &Invoker{
		bindings: make(map[Trigger]Command),
		history:  history,
		reporter: reporter,
	}
}

// NewApplication creates an invoker with the Copy, Cut and Paste triggers
// bound to their own command instances, all reporting to out.
func NewApplication(out io.Writer, reporter Reporter) *Invoker {
	inv := NewInvoker(NewHistory(), reporter)
	inv.bindings[TriggerCopy] = NewCopy(Argument{}, out)
	inv.bindings[TriggerCut] = NewCut(Argument{}, out)
	inv.bindings[TriggerPaste] = NewPaste(Argument{}, out)
	return inv
}

// History returns the history owned by the invoker.
func (inv *Invoker) History() *History {
	return inv.history
}

// Bind associates a trigger with a command, replacing any prior binding.
// Already recorded history entries are not affected.
func (inv *Invoker) Bind(t Trigger, cmd Command) error {
	if t.IsUndo() {
		return fmt.Errorf("bind %s: %w", t, ErrReservedTrigger)
	}
	if cmd == nil {
		return fmt.Errorf("bind %s: %w", t, ErrNilCommand)
	}

	inv.mu.Lock()
	defer inv.mu.Unlock()
	inv.bindings[t] = cmd
	return nil
}

// Unbind removes a trigger binding. Returns false if it was not bound.
func (inv *Invoker) Unbind(t Trigger) bool {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	if _, ok := inv.bindings[t]; !ok {
		return false
	}
	delete(inv.bindings, t)
	return true
}

// Lookup returns the command bound to a trigger.
func (inv *Invoker) Lookup(t Trigger) (Command, bool) {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	cmd, ok := inv.bindings[t]
	return cmd, ok
}

// Bound returns all bound triggers sorted by name.
func (inv *Invoker) Bound() []Trigger {
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	result := make([]Trigger, 0, len(inv.bindings))
	for t := range inv.bindings {
		result = append(result, t)
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

// Activate fires a trigger. Failures are reported and returned in the
// Outcome; Activate itself never panics on behalf of a command or a
// reporter.
func (inv *Invoker) Activate(ctx context.Context, t Trigger) Outcome {
	if err := ctx.Err(); err != nil {
		out := Outcome{Trigger: t, Kind: OutcomeFailed, Err: err}
		inv.report(Event{Type: EventFailed, Trigger: t, Err: err})
		return out
	}

	if t.IsUndo() {
		return inv.undo(ctx, t)
	}

	cmd, ok := inv.Lookup(t)
	if !ok {
		err := fmt.Errorf("%w: %s", ErrTriggerNotBound, t)
		inv.report(Event{Type: EventSkipped, Trigger: t, Err: err})
		return Outcome{Trigger: t, Kind: OutcomeNoOp, Err: err}
	}

	return inv.execute(ctx, t, cmd)
}

// ActivateAll fires triggers in order, continuing past failures.
func (inv *Invoker) ActivateAll(ctx context.Context, triggers ...Trigger) []Outcome {
	outcomes := make([]Outcome, 0, len(triggers))
	for _, t := range triggers {
		outcomes = append(outcomes, inv.Activate(ctx, t))
	}
	return outcomes
}

// execute runs cmd and records it only after confirmed success.
func (inv *Invoker) execute(ctx context.Context, t Trigger, cmd Command) Outcome {
	name := cmd.Name()

	res, err := safeExecute(ctx, cmd)
	if err != nil {
		err = &ExecutionError{Command: name, Err: err}
		inv.report(Event{Type: EventFailed, Trigger: t, Command: name, Err: err})
		return Outcome{Trigger: t, Kind: OutcomeFailed, Command: name, Err: err}
	}

	inv.history.Push(cmd)
	inv.report(Event{Type: EventExecuted, Trigger: t, Command: name})
	return Outcome{Trigger: t, Kind: OutcomeExecuted, Command: name, Result: &res}
}

// undo pops the most recent command and reverses it. The popped entry is
// not restored when Undo fails.
func (inv *Invoker) undo(ctx context.Context, t Trigger) Outcome {
	cmd, ok := inv.history.Pop()
	if !ok {
		inv.report(Event{Type: EventSkipped, Trigger: t})
		return Outcome{Trigger: t, Kind: OutcomeNoOp}
	}

	name := cmd.Name()
	if err := safeUndo(ctx, cmd); err != nil {
		err = &UndoError{Command: name, Err: err}
		inv.report(Event{Type: EventFailed, Trigger: t, Command: name, Err: err})
		return Outcome{Trigger: t, Kind: OutcomeFailed, Command: name, Err: err}
	}

	inv.report(Event{Type: EventUndone, Trigger: t, Command: name})
	return Outcome{Trigger: t, Kind: OutcomeUndone, Command: name}
}

// report delivers ev. A panicking reporter loses the event; the outcome
// and history are unaffected.
func (inv *Invoker) report(ev Event) {
	defer func() {
		_ = recover()
	}()
	inv.reporter.Report(ev)
}

func safeExecute(ctx context.Context, cmd Command) (res Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			res, err = Result{}, recovered(r)
		}
	}()
	return cmd.Execute(ctx)
}

func safeUndo(ctx context.Context, cmd Command) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = recovered(r)
		}
	}()
	return cmd.Undo(ctx)
}
