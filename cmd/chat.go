package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/viazuri/concierge/internal/config"
	"github.com/viazuri/concierge/internal/session"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive terminal conversation",
	RunE:  runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validating config: %w", err)
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger := newLogger()
	manager, err := buildManager(ctx, cfg, logger)
	if err != nil {
		return err
	}

	sessionID := uuid.New().String()
	var history []session.Message

	fmt.Println("Viazuri Travel concierge. Type /exit to quit.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			return scanner.Err()
		}

		input := strings.TrimSpace(scanner.Text())
		switch input {
		case "":
			continue
		case "/exit", "/quit":
			return nil
		case "/clear":
			history = nil
			fmt.Println("History cleared.")
			continue
		}

		rawHistory, err := json.Marshal(history)
		if err != nil {
			return fmt.Errorf("encoding history: %w", err)
		}

		var reply strings.Builder
		for chunk := range manager.Stream(ctx, input, sessionID, string(rawHistory)) {
			if chunk.Done {
				break
			}
			reply.WriteString(chunk.Text)
			fmt.Print(chunk.Text)
		}
		fmt.Println()

		history = append(history,
			session.Message{Sender: session.SenderUser, Content: input},
			session.Message{Sender: session.SenderAI, Content: reply.String()},
		)
		if len(history) > cfg.MaxHistoryMessages {
			history = history[len(history)-cfg.MaxHistoryMessages:]
		}

		if ctx.Err() != nil {
			return nil
		}
	}
}
