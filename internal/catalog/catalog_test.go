package catalog

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/patterns/internal/config"
)

type stubDemo struct {
	name string
	out  string
	err  error
	ran  *[]string
}

func (s *stubDemo) Name() string { return s.name }

func (s *stubDemo) Run(_ context.Context, out io.Writer) error {
	if s.ran != nil {
		*s.ran = append(*s.ran, s.name)
	}
	if s.out != "" {
		io.WriteString(out, s.out)
	}
	return s.err
}

func TestRegister(t *testing.T) {
	c := New()
	require.NoError(t, c.Register(&stubDemo{name: "One"}))
	require.NoError(t, c.Register(&stubDemo{name: "Two"}))

	assert.ErrorIs(t, c.Register(&stubDemo{name: "one"}), ErrDuplicateDemo)
	assert.ErrorIs(t, c.Register(nil), ErrNilDemo)

	assert.Equal(t, []string{"One", "Two"}, c.Names())
	assert.Equal(t, 2, c.Len())

	d, ok := c.Get(" TWO ")
	require.True(t, ok)
	assert.Equal(t, "Two", d.Name())
	_, ok = c.Get("three")
	assert.False(t, ok)
}

func TestRunFormatsEachDemo(t *testing.T) {
	var buf bytes.Buffer
	c := New()
	require.NoError(t, c.Register(&stubDemo{name: "One", out: "first\n"}))
	require.NoError(t, c.Register(&stubDemo{name: "Two", out: "second\n"}))

	require.NoError(t, c.Run(context.Background(), &buf))
	assert.Equal(t,
		"/*************** One Test ***************/\nfirst\n\n"+
			"/*************** Two Test ***************/\nsecond\n\n",
		buf.String())
}

func TestRunSelected(t *testing.T) {
	var ran []string
	c := New()
	for _, n := range []string{"A", "B", "C"} {
		require.NoError(t, c.Register(&stubDemo{name: n, ran: &ran}))
	}

	require.NoError(t, c.Run(context.Background(), io.Discard, "c", "A"))
	assert.Equal(t, []string{"C", "A"}, ran)
}

func TestRunUnknownRunsNothing(t *testing.T) {
	var ran []string
	c := New()
	require.NoError(t, c.Register(&stubDemo{name: "A", ran: &ran}))

	err := c.Run(context.Background(), io.Discard, "A", "Nope", "Other")
	assert.ErrorIs(t, err, ErrUnknownDemo)
	assert.Contains(t, err.Error(), "Nope, Other")
	assert.Empty(t, ran)
}

func TestRunStopsAtFirstError(t *testing.T) {
	var ran []string
	boom := errors.New("boom")
	c := New()
	require.NoError(t, c.Register(&stubDemo{name: "A", ran: &ran}))
	require.NoError(t, c.Register(&stubDemo{name: "B", ran: &ran, err: boom}))
	require.NoError(t, c.Register(&stubDemo{name: "C", ran: &ran}))

	err := c.Run(context.Background(), io.Discard)
	assert.ErrorIs(t, err, boom)

	var de *DemoError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "B", de.Demo)
	assert.Equal(t, []string{"A", "B"}, ran)
}

func TestRunCancelled(t *testing.T) {
	var ran []string
	c := New()
	require.NoError(t, c.Register(&stubDemo{name: "A", ran: &ran}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, c.Run(ctx, io.Discard), context.Canceled)
	assert.Empty(t, ran)
}

func TestDefaultOrder(t *testing.T) {
	c, err := Default(nil, nil)
	require.NoError(t, err)
	assert.Equal(t,
		[]string{"Singleton", "Decorator", "Command", "Observer", "Strategy", "Visitor"},
		c.Names())
}

func TestDefaultRunAll(t *testing.T) {
	var buf bytes.Buffer
	c, err := Default(config.Default(), nil)
	require.NoError(t, err)

	require.NoError(t, c.Run(context.Background(), &buf))
	out := buf.String()

	for _, name := range c.Names() {
		assert.Contains(t, out, Header(name)+"\n")
	}
	assert.Contains(t, out, "SMS sent: Hello!\nSlack message sent: Hello!\n")
	assert.Contains(t, out, "Executing Copy command...\nExecuting Paste command...\nUndoing Paste command...\n")
	assert.Contains(t, out, "E-mail notification: EmailTest.\n")
	assert.Contains(t, out, "Building train tracks from Montréal to Toronto...\n")
	assert.True(t, strings.HasSuffix(out, "Exporting dot as XML: <Dot id={DotID}>\n\n"))
}

func TestDefaultUsesConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Decorator.Message = "Salut"
	cfg.Decorator.Services = config.ServicesConfig{Facebook: true}
	cfg.Command.Sequence = []string{"<C-x>", "Ctrl+Z"}
	cfg.Strategy.Initial = "walking"

	c, err := Default(cfg, nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, c.Run(context.Background(), &buf, "Decorator", "Command", "Strategy"))
	assert.Equal(t,
		Header("Decorator")+"\nFacebook message sent: Salut\n\n"+
			Header("Command")+"\nExecuting Cut command...\nUndoing Cut command...\n\n"+
			Header("Strategy")+"\nBuilding sidewalk from 45 chemin Bates to 50 chemin Bates...\n"+
			"Building train tracks from Montréal to Toronto...\n\n",
		buf.String())
}

func TestDefaultScriptDriver(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.lua")
	require.NoError(t, os.WriteFile(path, []byte(`app.click("Paste")
app.undo()
`), 0o644))

	cfg := config.Default()
	cfg.Command.Script = path

	c, err := Default(cfg, nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, c.Run(context.Background(), &buf, "command"))
	assert.Equal(t,
		Header("Command")+"\nExecuting Paste command...\nUndoing Paste command...\n\n",
		buf.String())
}

func TestDefaultDiagnostics(t *testing.T) {
	var out, diag bytes.Buffer
	c, err := Default(nil, nil, WithDiagnostics(&diag))
	require.NoError(t, err)

	require.NoError(t, c.Run(context.Background(), &out, "singleton"))
	assert.Contains(t, diag.String(), "Item '1' already exists in database!\n")
	assert.NotContains(t, out.String(), "already exists")
	assert.Contains(t, out.String(), "Added item 1\n")
}

func TestDefaultInvalidStrategy(t *testing.T) {
	cfg := config.Default()
	cfg.Strategy.Initial = "flying"

	_, err := Default(cfg, nil)
	assert.Error(t, err)
}
