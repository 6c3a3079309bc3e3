package agent

import (
	"context"
	"iter"

	"google.golang.org/genai"
)

// EventType classifies a streamed model event.
type EventType int

const (
	EventText EventType = iota
	EventToolCall
)

// ToolCall is a model-issued request to run one registered tool.
type ToolCall struct {
	Name string
	Args map[string]any
}

// Event is one element of a model response stream: either a text delta or
// a tool call.
type Event struct {
	Type      EventType
	TextChunk string
	Call      *ToolCall
}

// Model produces a streamed response for a conversation. The returned
// sequence yields events until the response is complete; a non-nil error
// terminates the stream.
type Model interface {
	Generate(ctx context.Context, contents []*genai.Content, tools []*genai.Tool, system string) iter.Seq2[Event, error]
}
