package logging

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.input))
		})
	}
}

func TestNew(t *testing.T) {
	logger := New("debug")
	require.NotNil(t, logger)
	require.NotNil(t, logger.Logger)
}

func TestWith(t *testing.T) {
	logger := Default()
	child := logger.With("component", "test")
	require.NotNil(t, child)
	assert.NotSame(t, logger, child)
}
