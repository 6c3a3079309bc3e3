package agent

import (
	"context"
	"fmt"
	"iter"

	"google.golang.org/genai"
)

// GeminiConfig carries the model settings from the application config.
type GeminiConfig struct {
	APIKey      string
	Model       string
	Temperature float32
	MaxTokens   int
}

// Gemini is the production Model backed by the Gemini API.
type Gemini struct {
	client      *genai.Client
	model       string
	temperature float32
	maxTokens   int32
}

// NewGemini creates a Gemini-backed model.
func NewGemini(ctx context.Context, cfg GeminiConfig) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: cfg.APIKey})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = 0.7
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 1024
	}
	return &Gemini{
		client:      client,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   int32(cfg.MaxTokens),
	}, nil
}

// Generate streams one model response, translating SDK parts into events.
// Text arrives as deltas; function calls are yielded as they appear so the
// caller can collect them for the tool turn.
func (g *Gemini) Generate(ctx context.Context, contents []*genai.Content, tools []*genai.Tool, system string) iter.Seq2[Event, error] {
	return func(yield func(Event, error) bool) {
		cfg := &genai.GenerateContentConfig{
			Temperature:     genai.Ptr(g.temperature),
			MaxOutputTokens: g.maxTokens,
			Tools:           tools,
		}
		if system != "" {
			cfg.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
		}

		for resp, err := range g.client.Models.GenerateContentStream(ctx, g.model, contents, cfg) {
			if err != nil {
				yield(Event{}, err)
				return
			}

			for _, cand := range resp.Candidates {
				if cand.Content == nil {
					continue
				}
				for _, part := range cand.Content.Parts {
					if part.FunctionCall != nil {
						call := &ToolCall{Name: part.FunctionCall.Name, Args: part.FunctionCall.Args}
						if !yield(Event{Type: EventToolCall, Call: call}, nil) {
							return
						}
					}
					if part.Text != "" {
						if !yield(Event{Type: EventText, TextChunk: part.Text}, nil) {
							return
						}
					}
				}
			}
		}
	}
}
