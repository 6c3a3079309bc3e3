package session

import (
	"context"
	"errors"
	"iter"

	"github.com/viazuri/concierge/internal/log"
)

// DoneMarker is the terminal chunk text every stream ends with.
const DoneMarker = "[DONE]"

// errorPrefix makes failures visible in the reply stream itself, so a
// client that only renders chunks still shows the user something.
const errorPrefix = "⚠️ Error: "

// Chunk is one element of a reply stream. Done is true exactly once, on
// the final chunk.
type Chunk struct {
	Text string
	Done bool
}

// Runner executes one conversational turn, emitting text deltas as they
// arrive. Implemented by the agent.
type Runner interface {
	Run(ctx context.Context, input string, history []Message, emit func(chunk string) error) error
}

// Config configures a Manager.
type Config struct {
	Runner Runner
	Logger log.Logger

	// HistoryLimit caps how many trailing client-supplied messages are
	// replayed into the model context.
	HistoryLimit int
}

// Manager shapes agent output into the reply-stream contract.
type Manager struct {
	runner       Runner
	logger       log.Logger
	historyLimit int
}

// NewManager creates a manager from the given config.
func NewManager(cfg Config) (*Manager, error) {
	if cfg.Runner == nil {
		return nil, errors.New("runner is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = log.NewNop()
	}
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = 10
	}
	return &Manager{
		runner:       cfg.Runner,
		logger:       cfg.Logger,
		historyLimit: cfg.HistoryLimit,
	}, nil
}

// Stream runs one turn and yields reply chunks.
//
// Guarantees, regardless of how the turn ends:
//   - consecutive identical chunks are collapsed to one
//   - a turn failure yields a single error chunk, never a broken stream
//   - the last chunk, and only the last, has Done set
//
// A consumer that stops early simply stops receiving; the runner sees the
// abort through its emit callback.
func (m *Manager) Stream(ctx context.Context, prompt, sessionID, rawHistory string) iter.Seq[Chunk] {
	return func(yield func(Chunk) bool) {
		history := ParseHistory(rawHistory, m.historyLimit)
		m.logger.Debug("turn started", "session_id", sessionID, "history_len", len(history))

		var (
			last    string
			stopped bool
		)
		emit := func(chunk string) error {
			if chunk == "" || chunk == last {
				return nil
			}
			last = chunk
			if !yield(Chunk{Text: chunk}) {
				stopped = true
				return errors.New("stream consumer gone")
			}
			return nil
		}

		err := m.runner.Run(ctx, prompt, history, emit)
		if stopped {
			return
		}
		if err != nil {
			m.logger.Error("turn failed", "session_id", sessionID, "error", err)
			if !yield(Chunk{Text: errorPrefix + err.Error()}) {
				return
			}
		}

		yield(Chunk{Text: DoneMarker, Done: true})
		m.logger.Debug("turn completed", "session_id", sessionID)
	}
}
