// Package cmd provides the CLI commands for the concierge.
//
// Commands:
//   - serve: HTTP server with the SSE chat stream and embedded chat page
//   - chat: interactive terminal conversation
//   - version: build information
package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/viazuri/concierge/internal/log"
)

var rootCmd = &cobra.Command{
	Use:   "concierge",
	Short: "Viazuri Travel concierge",
	Long: `A conversational travel concierge: natural-language flight and hotel
search and booking, streamed over SSE or used interactively in the
terminal.`,
	SilenceUsage: true,
	RunE:         runChat,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// newLogger builds the process logger. DEBUG in the environment lowers
// the level, matching local development habits.
func newLogger() log.Logger {
	level := slog.LevelInfo
	if os.Getenv("DEBUG") != "" {
		level = slog.LevelDebug
	}
	return log.New(log.Config{Level: level, JSON: true})
}
