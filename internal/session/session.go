// Package session turns one conversational request into a stream of reply
// chunks. It parses client-supplied history, hands the turn to the agent,
// and shapes the agent's output into the chunk contract the transport
// relies on: no consecutive duplicate chunks, errors surfaced as a visible
// chunk, and exactly one terminal done marker.
package session

import (
	"encoding/json"
	"strings"
)

// Sender values accepted in client-supplied history.
const (
	SenderUser = "user"
	SenderAI   = "ai"
)

// Message is one prior conversation message as the client stores it.
type Message struct {
	Sender  string `json:"sender"`
	Content string `json:"content"`
}

// ParseHistory decodes client-supplied history JSON. History is a
// convenience, never a requirement: malformed or absent input yields an
// empty slice, not an error. Only the last limit messages with a known
// sender are kept.
func ParseHistory(raw string, limit int) []Message {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	var all []Message
	if err := json.Unmarshal([]byte(raw), &all); err != nil {
		return nil
	}

	kept := make([]Message, 0, len(all))
	for _, m := range all {
		if m.Sender == SenderUser || m.Sender == SenderAI {
			kept = append(kept, m)
		}
	}

	if limit > 0 && len(kept) > limit {
		kept = kept[len(kept)-limit:]
	}
	return kept
}
