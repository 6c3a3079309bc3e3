// Package sse implements the server-sent events wire format used by the
// streaming chat endpoint.
package sse

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// ErrStreamingUnsupported indicates the response writer cannot flush, so
// SSE delivery is impossible.
var ErrStreamingUnsupported = errors.New("response writer does not support streaming")

// Writer frames text chunks as SSE events on an HTTP response.
type Writer struct {
	w       io.Writer
	flusher http.Flusher
}

// NewWriter prepares the response for SSE delivery: it sets the stream
// headers and verifies the writer can flush.
func NewWriter(w http.ResponseWriter) (*Writer, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, ErrStreamingUnsupported
	}

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")

	return &Writer{w: w, flusher: flusher}, nil
}

// Send writes one event and flushes it to the client. Multi-line payloads
// become one data line per line so the event survives framing intact.
func (sw *Writer) Send(text string) error {
	var b strings.Builder
	for _, line := range strings.Split(text, "\n") {
		b.WriteString("data: ")
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')

	if _, err := io.WriteString(sw.w, b.String()); err != nil {
		return fmt.Errorf("write event: %w", err)
	}
	sw.flusher.Flush()
	return nil
}
