package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter(t *testing.T) {
	t.Parallel()

	t.Run("text output includes message and attributes", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		logger := NewWithWriter(&buf, Config{Level: slog.LevelDebug})

		logger.Info("token acquired", "cached", true)

		out := buf.String()
		assert.Contains(t, out, "token acquired")
		assert.Contains(t, out, "cached=true")
	})

	t.Run("json output is structured", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		logger := NewWithWriter(&buf, Config{JSON: true})

		logger.Warn("date normalization failed", "input", "not-a-date")

		out := buf.String()
		require.True(t, strings.HasPrefix(out, "{"))
		assert.Contains(t, out, `"msg":"date normalization failed"`)
		assert.Contains(t, out, `"input":"not-a-date"`)
	})

	t.Run("level filters records", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		logger := NewWithWriter(&buf, Config{Level: slog.LevelWarn})

		logger.Info("hidden")
		logger.Warn("visible")

		out := buf.String()
		assert.NotContains(t, out, "hidden")
		assert.Contains(t, out, "visible")
	})
}

func TestNewNop(t *testing.T) {
	t.Parallel()

	logger := NewNop()
	require.NotNil(t, logger)
	logger.Error("goes nowhere")
}
