package command

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// Command represents an action that can be executed and undone.
type Command interface {
	// Name returns the display name of the command.
	Name() string

	// Kind returns the variant of the command.
	Kind() Kind

	// Execute performs the command and returns its result.
	// A non-nil error means the effect was not performed.
	Execute(ctx context.Context) (Result, error)

	// Undo reverses a prior Execute. It degrades to a no-op when there is
	// nothing to reverse.
	Undo(ctx context.Context) error

	// Result returns the result of the last successful Execute, if any.
	Result() (Result, bool)
}

// Kind identifies a command variant.
type Kind uint8

const (
	// KindCustom is any command outside the built-in set.
	KindCustom Kind = iota
	// KindCopy copies the selection.
	KindCopy
	// KindCut cuts the selection.
	KindCut
	// KindPaste pastes the clipboard.
	KindPaste
)

// String returns the display name of the kind.
func (k Kind) String() string {
	switch k {
	case KindCopy:
		return "Copy"
	case KindCut:
		return "Cut"
	case KindPaste:
		return "Paste"
	default:
		return "Custom"
	}
}

// Argument is the immutable input of a built-in command.
type Argument struct {
	// Label overrides the display name when set.
	Label string

	// Text is the optional payload the command acts upon.
	Text string
}

// base holds the state shared by the built-in commands.
type base struct {
	kind Kind
	arg  Argument
	out  io.Writer

	mu     sync.Mutex
	result *Result
}

func (b *base) init(kind Kind, arg Argument, out io.Writer) {
	if out == nil {
		out = io.Discard
	}
	b.kind = kind
	b.arg = arg
	b.out = out
}

// Name returns the label or the kind name.
func (b *base) Name() string {
	if b.arg.Label != "" {
		return b.arg.Label
	}
	return b.kind.String()
}

// Kind returns the command variant.
func (b *base) Kind() Kind {
	return b.kind
}

// Argument returns the command's argument.
func (b *base) Argument() Argument {
	return b.arg
}

// Result returns the stored result.
func (b *base) Result() (Result, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.result == nil {
		return Result{}, false
	}
	return *b.result, true
}

// execute reports the effect and records a successful result.
func (b *base) execute(ctx context.Context) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if err := b.report("Executing"); err != nil {
		return Result{}, err
	}

	res := Success()
	b.mu.Lock()
	if b.result == nil {
		b.result = &res
	}
	b.mu.Unlock()
	return res, nil
}

// undo reports the reversal.
func (b *base) undo(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return b.report("Undoing")
}

func (b *base) report(verb string) error {
	var err error
	if b.arg.Text != "" {
		_, err = fmt.Fprintf(b.out, "%s %s command (%q)...\n", verb, b.Name(), b.arg.Text)
	} else {
		_, err = fmt.Fprintf(b.out, "%s %s command...\n", verb, b.Name())
	}
	if err != nil {
		return fmt.Errorf("report %s: %w", b.Name(), err)
	}
	return nil
}

// CopyCommand copies the current selection.
type CopyCommand struct {
	base
}

// NewCopy creates a copy command reporting to out.
func NewCopy(arg Argument, out io.Writer) *CopyCommand {
	c := &CopyCommand{}
	c.init(KindCopy, arg, out)
	return c
}

// Execute performs the copy.
func (c *CopyCommand) Execute(ctx context.Context) (Result, error) {
	return c.execute(ctx)
}

// Undo reverses the copy.
func (c *CopyCommand) Undo(ctx context.Context) error {
	return c.undo(ctx)
}

// CutCommand cuts the current selection.
type CutCommand struct {
	base
}

// NewCut creates a cut command reporting to out.
func NewCut(arg Argument, out io.Writer) *CutCommand {
	c := &CutCommand{}
	c.init(KindCut, arg, out)
	return c
}

// Execute performs the cut.
func (c *CutCommand) Execute(ctx context.Context) (Result, error) {
	return c.execute(ctx)
}

// Undo reverses the cut.
func (c *CutCommand) Undo(ctx context.Context) error {
	return c.undo(ctx)
}

// PasteCommand pastes the clipboard content.
type PasteCommand struct {
	base
}

// NewPaste creates a paste command reporting to out.
func NewPaste(arg Argument, out io.Writer) *PasteCommand {
	c := &PasteCommand{}
	c.init(KindPaste, arg, out)
	return c
}

// Execute performs the paste.
func (c *PasteCommand) Execute(ctx context.Context) (Result, error) {
	return c.execute(ctx)
}

// Undo reverses the paste.
func (c *PasteCommand) Undo(ctx context.Context) error {
	return c.undo(ctx)
}

// New creates a built-in command of the given kind.
func New(kind Kind, arg Argument, out io.Writer) (Command, error) {
	switch kind {
	case KindCopy:
		return NewCopy(arg, out), nil
	case KindCut:
		return NewCut(arg, out), nil
	case KindPaste:
		return NewPaste(arg, out), nil
	default:
		return nil, fmt.Errorf("no built-in command for kind %s", kind)
	}
}
