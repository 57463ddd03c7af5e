package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/mpereira/moneymap/internal/domain/assistant"
	"github.com/mpereira/moneymap/internal/storage"
	"github.com/mpereira/moneymap/pkg/config"
	"github.com/mpereira/moneymap/pkg/kvstore"
)

var (
	cfg    *config.Config
	logger *slog.Logger

	rootCmd = &cobra.Command{
		Use:   "assistant",
		Short: "MoneyMap assistant: chat, guided transaction entry and budget forecasting",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// .env is optional; missing files are fine.
			_ = godotenv.Load()

			cfg = config.Load()
			logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: parseLogLevel(cfg.Log.Level),
			}))
		},
	}
)

func init() {
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(forecastCmd)
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// newSession wires the assistant with its file-backed store and the CSV
// transaction source.
func newSession() (*assistant.Session, assistant.AuthContext, error) {
	store, err := kvstore.NewFileStore(cfg.Assistant.DataDir)
	if err != nil {
		return nil, assistant.AuthContext{}, fmt.Errorf("failed to open data dir: %w", err)
	}

	source := storage.NewCSVSource(cfg.Assistant.TransactionsCSV)

	session := assistant.NewSession(assistant.NewRouter(), store, source, logger)
	session.SetLookbackDays(cfg.Assistant.LookbackDays)
	session.SetRoute(cfg.Assistant.CurrentRoute)

	auth := assistant.AuthContext{
		Authenticated: cfg.User.ID != "",
		UserID:        cfg.User.ID,
		Email:         cfg.User.Email,
	}
	return session, auth, nil
}

// printMessage renders an assistant turn to the terminal.
func printMessage(msg *assistant.Message) {
	if msg == nil {
		return
	}
	fmt.Println(msg.Text)
	for _, a := range msg.Actions {
		fmt.Printf("  [%s -> %s]\n", a.Label, a.Route)
	}
	if len(msg.Chips) > 0 {
		fmt.Printf("  (%s)\n", strings.Join(msg.Chips, " | "))
	}
}
