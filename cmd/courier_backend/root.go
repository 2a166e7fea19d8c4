package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/SscSPs/courier_ledger/internal/platform/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "courier_backend",
	Short: "Courier booking and expense ledger service",
	Long: `courier_backend runs the courier ledger HTTP API and its maintenance tasks.

Configuration is read from the environment and an optional .env file
(PGSQL_URL, PORT, JWT_SECRET, REDIS_URL, LEDGER_AUDIT_INTERVAL, ...).`,
	SilenceUsage: true,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

// newLogger builds the process logger at the configured level.
func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

// loadRuntime loads config and the logger shared by every subcommand.
func loadRuntime() (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, newLogger(cfg), nil
}
