package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viazuri/concierge/internal/log"
	"github.com/viazuri/concierge/internal/session"
)

// runnerFunc adapts a function to the session.Runner interface.
type runnerFunc func(ctx context.Context, input string, history []session.Message, emit func(string) error) error

func (f runnerFunc) Run(ctx context.Context, input string, history []session.Message, emit func(string) error) error {
	return f(ctx, input, history, emit)
}

func newTestServer(t *testing.T, r session.Runner, opts ...func(*ServerConfig)) *Server {
	t.Helper()

	manager, err := session.NewManager(session.Config{Runner: r, Logger: log.NewNop()})
	require.NoError(t, err)

	cfg := ServerConfig{Logger: log.NewNop(), Manager: manager}
	for _, opt := range opts {
		opt(&cfg)
	}

	srv, err := NewServer(cfg)
	require.NoError(t, err)
	return srv
}

func echoRunner() session.Runner {
	return runnerFunc(func(_ context.Context, input string, _ []session.Message, emit func(string) error) error {
		return emit("echo: " + input)
	})
}

func TestNewServerRequiresManager(t *testing.T) {
	t.Parallel()

	_, err := NewServer(ServerConfig{Logger: log.NewNop()})
	assert.Error(t, err)
}

func TestHealth(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, echoRunner())

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestChatPage(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, echoRunner())

	t.Run("served at root", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
		assert.Contains(t, w.Body.String(), "Viazuri Travel")
	})

	t.Run("unknown paths are 404", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestStreamEndpoint(t *testing.T) {
	t.Parallel()

	t.Run("missing prompt is rejected", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t, echoRunner())

		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/stream", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "missing_prompt")
	})

	t.Run("streams chunks and terminal marker", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t, echoRunner())

		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/stream?prompt=hi", nil))

		assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))
		assert.Equal(t, "data: echo: hi\n\ndata: [DONE]\n\n", w.Body.String())
	})

	t.Run("history reaches the runner", func(t *testing.T) {
		t.Parallel()

		var seen []session.Message
		srv := newTestServer(t, runnerFunc(func(_ context.Context, _ string, history []session.Message, emit func(string) error) error {
			seen = history
			return emit("ok")
		}))

		raw := `[{"sender":"user","content":"hotels in Paris"},{"sender":"ai","content":"Found 3."}]`
		target := "/stream?prompt=next&history=" + strings.ReplaceAll(raw, " ", "%20")

		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))

		require.Len(t, seen, 2)
		assert.Equal(t, "hotels in Paris", seen[0].Content)
	})

	t.Run("turn failure is delivered in-stream", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t, runnerFunc(func(context.Context, string, []session.Message, func(string) error) error {
			return errors.New("model unavailable")
		}))

		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/stream?prompt=hi", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "data: ⚠️ Error: model unavailable\n\n")
		assert.True(t, strings.HasSuffix(w.Body.String(), "data: [DONE]\n\n"))
	})
}

func TestRequestIDMiddleware(t *testing.T) {
	t.Parallel()

	handler := requestIDMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("generates an ID", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		got := w.Header().Get("X-Request-ID")
		require.NotEmpty(t, got)
		_, err := uuid.Parse(got)
		assert.NoError(t, err)
	})

	t.Run("reuses a valid ID", func(t *testing.T) {
		t.Parallel()

		want := uuid.New().String()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("X-Request-ID", want)

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)

		assert.Equal(t, want, w.Header().Get("X-Request-ID"))
	})

	t.Run("replaces an invalid ID", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("X-Request-ID", "not-a-valid-uuid")

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)

		got := w.Header().Get("X-Request-ID")
		assert.NotEqual(t, "not-a-valid-uuid", got)
		_, err := uuid.Parse(got)
		assert.NoError(t, err)
	})

	t.Run("ID is available in context", func(t *testing.T) {
		t.Parallel()

		want := uuid.New().String()
		var got string
		inner := requestIDMiddleware()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			got = requestIDFromContext(r.Context())
		}))

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("X-Request-ID", want)
		inner.ServeHTTP(httptest.NewRecorder(), r)

		assert.Equal(t, want, got)
	})
}

func TestRecoveryMiddleware(t *testing.T) {
	t.Parallel()

	handler := recoveryMiddleware(log.NewNop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestCORSMiddleware(t *testing.T) {
	t.Parallel()

	handler := corsMiddleware([]string{"http://localhost:4200"})(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("allowed origin gets headers", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Origin", "http://localhost:4200")

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)

		assert.Equal(t, "http://localhost:4200", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("unknown origin gets none", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Origin", "http://evil.example")

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)

		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight short-circuits", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodOptions, "/", nil)
		r.Header.Set("Origin", "http://localhost:4200")

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}
