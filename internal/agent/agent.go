// Package agent runs the conversational turn loop: it streams a model
// response, executes any tool calls the model issues, feeds the results
// back, and repeats until the model answers in plain text or the turn
// budget runs out.
package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/viazuri/concierge/internal/log"
	"github.com/viazuri/concierge/internal/session"
	"github.com/viazuri/concierge/internal/tools"
)

// ErrTurnLimit indicates the model kept issuing tool calls past the
// configured turn budget.
var ErrTurnLimit = errors.New("tool loop exceeded turn limit")

// Config configures an Agent.
type Config struct {
	Model  Model
	Router *tools.Router
	Logger log.Logger

	// MaxTurns bounds the number of model rounds in one conversational
	// turn. Each round may issue tool calls whose results start the next
	// round.
	MaxTurns int

	// ReferenceDate anchors "today" in the persona prompt.
	ReferenceDate time.Time

	// AlwaysInjectPersona sends the system prompt on every request instead
	// of only when the conversation has no history.
	AlwaysInjectPersona bool
}

// Agent drives the model/tool loop for one conversational turn at a time.
type Agent struct {
	model         Model
	router        *tools.Router
	logger        log.Logger
	tools         []*genai.Tool
	maxTurns      int
	refDate       time.Time
	alwaysPersona bool
}

// New creates an agent from the given config.
func New(cfg Config) (*Agent, error) {
	if cfg.Model == nil {
		return nil, errors.New("model is required")
	}
	if cfg.Router == nil {
		return nil, errors.New("router is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = log.NewNop()
	}
	if cfg.MaxTurns <= 0 {
		cfg.MaxTurns = 8
	}

	return &Agent{
		model:         cfg.Model,
		router:        cfg.Router,
		logger:        cfg.Logger,
		tools:         cfg.Router.Registry().GenaiTools(),
		maxTurns:      cfg.MaxTurns,
		refDate:       cfg.ReferenceDate,
		alwaysPersona: cfg.AlwaysInjectPersona,
	}, nil
}

// Run executes one conversational turn. Text deltas are forwarded to emit
// as they arrive; an emit error aborts the turn (the client is gone).
//
// The persona prompt is injected only on the first exchange of a
// conversation, unless configured to always inject: resending it on every
// request makes the model reintroduce itself mid-conversation.
func (a *Agent) Run(ctx context.Context, input string, history []session.Message, emit func(chunk string) error) error {
	contents := contentsFromHistory(history)
	contents = append(contents, genai.NewContentFromText(input, genai.RoleUser))

	system := ""
	if len(history) == 0 || a.alwaysPersona {
		system = SystemPrompt(a.refDate)
	}

	for turn := 0; turn < a.maxTurns; turn++ {
		var (
			calls    []*ToolCall
			turnText strings.Builder
		)

		for ev, err := range a.model.Generate(ctx, contents, a.tools, system) {
			if err != nil {
				return fmt.Errorf("model stream: %w", err)
			}

			switch ev.Type {
			case EventText:
				turnText.WriteString(ev.TextChunk)
				if err := emit(ev.TextChunk); err != nil {
					return err
				}
			case EventToolCall:
				calls = append(calls, ev.Call)
			}
		}

		if len(calls) == 0 {
			return nil
		}

		contents = append(contents, modelTurn(turnText.String(), calls))
		contents = append(contents, a.executeCalls(ctx, calls))
	}

	return fmt.Errorf("%w (%d)", ErrTurnLimit, a.maxTurns)
}

// executeCalls runs each tool call and packages the results as a single
// user turn of function responses. Tool failures are not fatal: the error
// text goes back to the model, which can correct its call or tell the user.
func (a *Agent) executeCalls(ctx context.Context, calls []*ToolCall) *genai.Content {
	parts := make([]*genai.Part, 0, len(calls))
	for _, call := range calls {
		response := map[string]any{}

		result, err := a.router.Execute(ctx, call.Name, call.Args)
		if err != nil {
			a.logger.Warn("tool call failed", "tool", call.Name, "error", err)
			response["error"] = err.Error()
		} else {
			response["result"] = result
		}

		parts = append(parts, &genai.Part{
			FunctionResponse: &genai.FunctionResponse{Name: call.Name, Response: response},
		})
	}
	return &genai.Content{Role: string(genai.RoleUser), Parts: parts}
}

// modelTurn records what the model produced this round so the next round
// sees its own text and calls in context.
func modelTurn(text string, calls []*ToolCall) *genai.Content {
	parts := make([]*genai.Part, 0, len(calls)+1)
	if text != "" {
		parts = append(parts, &genai.Part{Text: text})
	}
	for _, call := range calls {
		parts = append(parts, &genai.Part{
			FunctionCall: &genai.FunctionCall{Name: call.Name, Args: call.Args},
		})
	}
	return &genai.Content{Role: string(genai.RoleModel), Parts: parts}
}

// contentsFromHistory maps stored messages onto model roles.
func contentsFromHistory(history []session.Message) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history)+1)
	for _, m := range history {
		role := genai.Role(genai.RoleUser)
		if m.Sender == session.SenderAI {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Content, role))
	}
	return contents
}
