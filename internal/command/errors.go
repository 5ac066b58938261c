package command

import (
	"errors"
	"fmt"
)

// Command errors.
var (
	// ErrExecutionFailed matches every *ExecutionError.
	ErrExecutionFailed = errors.New("command execution failed")

	// ErrUndoFailed matches every *UndoError.
	ErrUndoFailed = errors.New("command undo failed")

	// ErrPanic indicates a command panicked and was recovered.
	ErrPanic = errors.New("command panicked")

	// ErrTriggerNotBound indicates a trigger has no command bound to it.
	ErrTriggerNotBound = errors.New("trigger not bound")

	// ErrReservedTrigger indicates an attempt to bind the undo trigger.
	ErrReservedTrigger = errors.New("trigger is reserved")

	// ErrUnknownTrigger indicates a trigger name could not be parsed.
	ErrUnknownTrigger = errors.New("unknown trigger")

	// ErrNilCommand indicates a nil command was bound.
	ErrNilCommand = errors.New("nil command")
)

// ExecutionError reports a failed Execute.
type ExecutionError struct {
	Command string // Command name
	Err     error  // Underlying error
}

func (e *ExecutionError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("execute %s: %v", e.Command, e.Err)
}

func (e *ExecutionError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches ErrExecutionFailed as well as the wrapped error.
func (e *ExecutionError) Is(target error) bool {
	return target == ErrExecutionFailed
}

// UndoError reports a failed Undo.
type UndoError struct {
	Command string // Command name
	Err     error  // Underlying error
}

func (e *UndoError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("undo %s: %v", e.Command, e.Err)
}

func (e *UndoError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches ErrUndoFailed as well as the wrapped error.
func (e *UndoError) Is(target error) bool {
	return target == ErrUndoFailed
}

// recovered converts a recovered panic value into an error.
func recovered(r any) error {
	if err, ok := r.(error); ok {
		return fmt.Errorf("%w: %w", ErrPanic, err)
	}
	return fmt.Errorf("%w: %v", ErrPanic, r)
}
