package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"":      slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestNew_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "warn")
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown", "op", "list")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "op=list")
}

func TestForTUI_NoPathDiscards(t *testing.T) {
	logger, closer, err := ForTUI("", "debug")
	require.NoError(t, err)
	assert.False(t, logger.Enabled(t.Context(), slog.LevelError))
	assert.NoError(t, closer.Close())
}

func TestForTUI_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todo.log")
	logger, closer, err := ForTUI(path, "info")
	require.NoError(t, err)

	logger.Info("todos loaded", "count", 2)
	require.NoError(t, closer.Close())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "todos loaded")
	assert.Contains(t, string(b), "count=2")
}
