package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/pokedex/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"WARNING", slog.LevelWarn},
		{" error ", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestNew_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "WARN")

	logger.Info("hidden")
	logger.Warn("fetch failed", "id", "999999")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &rec))
	assert.Equal(t, "fetch failed", rec["msg"])
	assert.Equal(t, "999999", rec["id"])
	assert.Equal(t, "WARN", rec["level"])
}

func TestSetupLogger_CreatesFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	logger, closer, err := SetupLogger(&config.LoggingConfig{
		File:  "~/logs/pokedex.log",
		Level: "DEBUG",
	})
	require.NoError(t, err)
	logger.Debug("hello")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(filepath.Join(home, "logs", "pokedex.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
}

func TestNullLogger(t *testing.T) {
	logger := NullLogger()
	require.NotNil(t, logger)
	assert.NotPanics(t, func() { logger.Error("dropped", "id", "25") })
}
