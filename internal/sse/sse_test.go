package sse

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// noFlushWriter hides the recorder's Flusher implementation.
type noFlushWriter struct {
	http.ResponseWriter
}

func TestNewWriter(t *testing.T) {
	t.Parallel()

	t.Run("sets stream headers", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		_, err := NewWriter(rec)
		require.NoError(t, err)

		assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
		assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))
		assert.Equal(t, "no", rec.Header().Get("X-Accel-Buffering"))
	})

	t.Run("rejects writers that cannot flush", func(t *testing.T) {
		t.Parallel()

		_, err := NewWriter(noFlushWriter{httptest.NewRecorder()})
		assert.ErrorIs(t, err, ErrStreamingUnsupported)
	})
}

func TestWriterSend(t *testing.T) {
	t.Parallel()

	t.Run("frames a single-line chunk", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		sw, err := NewWriter(rec)
		require.NoError(t, err)

		require.NoError(t, sw.Send("Your flight is booked."))
		assert.Equal(t, "data: Your flight is booked.\n\n", rec.Body.String())
		assert.True(t, rec.Flushed)
	})

	t.Run("splits multi-line chunks into data lines", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		sw, err := NewWriter(rec)
		require.NoError(t, err)

		require.NoError(t, sw.Send("Option 1: LOS -> LHR\nOption 2: LOS -> LGW"))
		assert.Equal(t, "data: Option 1: LOS -> LHR\ndata: Option 2: LOS -> LGW\n\n", rec.Body.String())
	})

	t.Run("sequential events stay separated", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		sw, err := NewWriter(rec)
		require.NoError(t, err)

		require.NoError(t, sw.Send("first"))
		require.NoError(t, sw.Send("[DONE]"))
		assert.Equal(t, "data: first\n\ndata: [DONE]\n\n", rec.Body.String())
	})
}
