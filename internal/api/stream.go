package api

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/viazuri/concierge/internal/log"
	"github.com/viazuri/concierge/internal/session"
	"github.com/viazuri/concierge/internal/sse"
)

// streamHandler serves the conversational endpoint.
//
//	GET /stream?prompt=...&session_id=...&history=...
//
// prompt is required. session_id is an opaque correlation value; a fresh
// UUID is assigned when absent. history is optional client-supplied
// conversation state.
type streamHandler struct {
	manager *session.Manager
	logger  log.Logger
}

func (h *streamHandler) stream(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	prompt := q.Get("prompt")
	if prompt == "" {
		writeError(w, http.StatusBadRequest, "missing_prompt", "prompt is required")
		return
	}

	sessionID := q.Get("session_id")
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	writer, err := sse.NewWriter(w)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "streaming_unsupported", "streaming not supported")
		return
	}

	ctx := r.Context()
	h.logger.Debug("stream started", "session_id", sessionID, "request_id", requestIDFromContext(ctx))

	for chunk := range h.manager.Stream(ctx, prompt, sessionID, q.Get("history")) {
		select {
		case <-ctx.Done():
			h.logger.Info("client disconnected", "session_id", sessionID)
			return
		default:
		}

		if err := writer.Send(chunk.Text); err != nil {
			// Write failure usually means connection closed.
			h.logger.Error("failed to write chunk", "session_id", sessionID, "error", err)
			return
		}
	}

	h.logger.Debug("stream completed", "session_id", sessionID)
}
