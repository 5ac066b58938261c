package command

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCommand records calls and can be told to fail.
type fakeCommand struct {
	name       string
	execErr    error
	undoErr    error
	panicOnRun bool

	executed int
	undone   int
	log      *[]string
}

func (c *fakeCommand) Name() string { return c.name }
func (c *fakeCommand) Kind() Kind   { return KindCustom }

func (c *fakeCommand) Execute(ctx context.Context) (Result, error) {
	if c.panicOnRun {
		panic("boom")
	}
	c.executed++
	if c.log != nil {
		*c.log = append(*c.log, "exec "+c.name)
	}
	if c.execErr != nil {
		return Result{}, c.execErr
	}
	return Success(), nil
}

func (c *fakeCommand) Undo(ctx context.Context) error {
	c.undone++
	if c.log != nil {
		*c.log = append(*c.log, "undo "+c.name)
	}
	return c.undoErr
}

func (c *fakeCommand) Result() (Result, bool) { return Result{}, false }

func TestBuiltinCommandExecute(t *testing.T) {
	tests := []struct {
		name string
		cmd  func(out *bytes.Buffer) Command
		kind Kind
		want string
	}{
		{"copy", func(out *bytes.Buffer) Command { return NewCopy(Argument{}, out) }, KindCopy, "Executing Copy command...\n"},
		{"cut", func(out *bytes.Buffer) Command { return NewCut(Argument{}, out) }, KindCut, "Executing Cut command...\n"},
		{"paste", func(out *bytes.Buffer) Command { return NewPaste(Argument{}, out) }, KindPaste, "Executing Paste command...\n"},
		{"label and text", func(out *bytes.Buffer) Command {
			return NewCopy(Argument{Label: "Yank", Text: "hello"}, out)
		}, KindCopy, "Executing Yank command (\"hello\")...\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			cmd := tt.cmd(&out)
			assert.Equal(t, tt.kind, cmd.Kind())

			_, ok := cmd.Result()
			assert.False(t, ok, "result must be absent before execution")

			res, err := cmd.Execute(context.Background())
			require.NoError(t, err)
			assert.True(t, res.IsOK())
			assert.Equal(t, 0, res.Code)
			assert.Equal(t, tt.want, out.String())

			stored, ok := cmd.Result()
			require.True(t, ok)
			assert.Equal(t, res, stored)
		})
	}
}

func TestBuiltinCommandUndoWithoutExecute(t *testing.T) {
	var out bytes.Buffer
	cmd := NewCut(Argument{}, &out)

	require.NoError(t, cmd.Undo(context.Background()))
	assert.Equal(t, "Undoing Cut command...\n", out.String())

	_, ok := cmd.Result()
	assert.False(t, ok)
}

func TestBuiltinCommandCancelledContext(t *testing.T) {
	var out bytes.Buffer
	cmd := NewPaste(Argument{}, &out)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := cmd.Execute(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, out.String())

	_, ok := cmd.Result()
	assert.False(t, ok)
}

func TestNewByKind(t *testing.T) {
	for _, kind := range []Kind{KindCopy, KindCut, KindPaste} {
		cmd, err := New(kind, Argument{}, nil)
		require.NoError(t, err)
		assert.Equal(t, kind, cmd.Kind())
		assert.Equal(t, kind.String(), cmd.Name())
	}

	_, err := New(KindCustom, Argument{}, nil)
	assert.Error(t, err)
}

func TestResultStatus(t *testing.T) {
	assert.Equal(t, "ok", StatusOK.String())
	assert.Equal(t, "failed", StatusFailed.String())
	assert.Equal(t, "unknown", ResultStatus(42).String())

	f := Failure(0)
	assert.False(t, f.IsOK())
	assert.Equal(t, 1, f.Code)
	assert.Equal(t, 7, Failure(7).Code)
}

func TestParseTrigger(t *testing.T) {
	tests := []struct {
		in      string
		want    Trigger
		wantErr bool
	}{
		{"Copy", TriggerCopy, false},
		{"cut", TriggerCut, false},
		{" PASTE ", TriggerPaste, false},
		{"undo", TriggerUndo, false},
		{"redo", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTrigger(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownTrigger)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestErrorsMatchSentinels(t *testing.T) {
	cause := errors.New("disk full")

	execErr := &ExecutionError{Command: "Copy", Err: cause}
	assert.ErrorIs(t, execErr, ErrExecutionFailed)
	assert.ErrorIs(t, execErr, cause)
	assert.NotErrorIs(t, execErr, ErrUndoFailed)
	assert.Equal(t, "execute Copy: disk full", execErr.Error())

	undoErr := &UndoError{Command: "Paste", Err: cause}
	assert.ErrorIs(t, undoErr, ErrUndoFailed)
	assert.ErrorIs(t, undoErr, cause)
	assert.Equal(t, "undo Paste: disk full", undoErr.Error())

	var nilErr *ExecutionError
	assert.Equal(t, "", nilErr.Error())
	assert.Nil(t, nilErr.Unwrap())
}
