package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"Warning", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseLevel("verbose")
	assert.ErrorIs(t, err, ErrInvalidLevel)
}

func TestParseFormat(t *testing.T) {
	got, err := ParseFormat("JSON")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, got)

	got, err = ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatText, got)

	_, err = ParseFormat("xml")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestNew(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := New(Config{Level: "info", Format: FormatText, Output: &buf})
		require.NoError(t, err)

		logger.Info("test message", "key", "value")
		assert.Contains(t, buf.String(), "test message")
		assert.Contains(t, buf.String(), "key=value")
	})

	t.Run("json with component", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := New(Config{Level: "debug", Format: FormatJSON, Output: &buf})
		require.NoError(t, err)

		WithComponent(logger, "command").Debug("executed")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "executed", entry["msg"])
		assert.Equal(t, "command", entry["component"])
	})

	t.Run("respects level", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := New(Config{Level: "warn", Output: &buf})
		require.NoError(t, err)

		logger.Info("hidden")
		assert.Empty(t, buf.String())
		logger.Warn("shown")
		assert.Contains(t, buf.String(), "shown")
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := New(Config{Level: "loud"})
		assert.ErrorIs(t, err, ErrInvalidLevel)
		_, err = New(Config{Level: "info", Format: "yaml"})
		assert.ErrorIs(t, err, ErrInvalidFormat)
	})
}

func TestWithComponentNilLogger(t *testing.T) {
	assert.NotPanics(t, func() {
		WithComponent(nil, "x").Info("dropped")
	})
}
