package strategy

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRoute(t *testing.T) {
	tests := []struct {
		strategy RouteStrategy
		want     string
	}{
		{Road{}, "Building road from A to B..."},
		{Walking{}, "Building sidewalk from A to B..."},
		{PublicTransport{}, "Building train tracks from A to B..."},
	}
	for _, tt := range tests {
		t.Run(tt.strategy.Name(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.strategy.BuildRoute("A", "B"))
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want RouteStrategy
	}{
		{"road", Road{}},
		{" Road ", Road{}},
		{"WALKING", Walking{}},
		{"public-transport", PublicTransport{}},
		{"public_transport", PublicTransport{}},
		{"PublicTransport", PublicTransport{}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"", "flying", "train"} {
		_, err := Parse(bad)
		assert.ErrorIs(t, err, ErrUnknownStrategy, bad)
	}
}

func TestParseNamesRoundTrip(t *testing.T) {
	for _, name := range Names() {
		s, err := Parse(name)
		require.NoError(t, err)
		assert.Equal(t, name, s.Name())
	}
}

func TestNavigator(t *testing.T) {
	var buf bytes.Buffer
	nav := NewNavigator(&buf)
	assert.Equal(t, Road{}, nav.Strategy())

	require.NoError(t, nav.BuildRoute("A", "B"))
	nav.SetStrategy(Walking{})
	require.NoError(t, nav.BuildRoute("B", "C"))
	nav.SetStrategy(nil)
	require.NoError(t, nav.BuildRoute("C", "D"))

	assert.Equal(t,
		"Building road from A to B...\n"+
			"Building sidewalk from B to C...\n"+
			"Building sidewalk from C to D...\n",
		buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestNavigatorWriteError(t *testing.T) {
	nav := NewNavigator(failingWriter{})
	assert.Error(t, nav.BuildRoute("A", "B"))
}

func TestDemo(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		var buf bytes.Buffer
		d := NewDemo(nil, nil)
		assert.Equal(t, "Strategy", d.Name())

		require.NoError(t, d.Run(context.Background(), &buf))
		assert.Equal(t,
			"Building road from 45 chemin Bates to 50 chemin Bates...\n"+
				"Building train tracks from Montréal to Toronto...\n",
			buf.String())
	})

	t.Run("configured initial", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewDemo(Walking{}, nil).Run(context.Background(), &buf))
		assert.Contains(t, buf.String(), "Building sidewalk from 45 chemin Bates to 50 chemin Bates...\n")
	})
}
