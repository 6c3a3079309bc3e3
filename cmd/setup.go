package cmd

import (
	"context"
	"fmt"

	"github.com/viazuri/concierge/internal/agent"
	"github.com/viazuri/concierge/internal/amadeus"
	"github.com/viazuri/concierge/internal/config"
	"github.com/viazuri/concierge/internal/log"
	"github.com/viazuri/concierge/internal/session"
	"github.com/viazuri/concierge/internal/tools"
)

// buildManager wires the full conversational stack: supplier client, tool
// router, Gemini model, agent loop, and session manager. Shared by the
// serve and chat commands.
func buildManager(ctx context.Context, cfg *config.Config, logger log.Logger) (*session.Manager, error) {
	client := amadeus.NewClient(amadeus.Config{
		BaseURL:       cfg.AmadeusBaseURL,
		ClientID:      cfg.AmadeusClientID,
		ClientSecret:  cfg.AmadeusClientSecret,
		ReferenceDate: cfg.ReferenceTime(),
	}, logger.With("component", "amadeus"))

	router := tools.NewRouter(tools.NewRegistry(), client, logger.With("component", "tools"))

	model, err := agent.NewGemini(ctx, agent.GeminiConfig{
		APIKey:      cfg.GeminiAPIKey,
		Model:       cfg.ModelName,
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("creating model: %w", err)
	}

	ag, err := agent.New(agent.Config{
		Model:               model,
		Router:              router,
		Logger:              logger.With("component", "agent"),
		MaxTurns:            cfg.MaxTurns,
		ReferenceDate:       cfg.ReferenceTime(),
		AlwaysInjectPersona: cfg.AlwaysInjectPersona,
	})
	if err != nil {
		return nil, fmt.Errorf("creating agent: %w", err)
	}

	manager, err := session.NewManager(session.Config{
		Runner:       ag,
		Logger:       logger.With("component", "session"),
		HistoryLimit: cfg.MaxHistoryMessages,
	})
	if err != nil {
		return nil, fmt.Errorf("creating session manager: %w", err)
	}

	return manager, nil
}
