package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/refspan/refspan/internal/server"
	"github.com/refspan/refspan/pkg/types"
)

// newServeCmd creates the "serve" command.
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the MCP tools over stdio",
		Long: "Serve starts gopls against the workspace root and speaks MCP on " +
			"stdin/stdout until the stream closes.",
		RunE: runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	config := types.Config{
		GoplsPath:     viper.GetString("gopls-path"),
		WorkspaceRoot: viper.GetString("workspace-root"),
		HistoryPath:   viper.GetString("history-path"),
		LogLevel:      viper.GetString("log-level"),
	}

	setupLogging(config.LogLevel)

	if stat, err := os.Stat(config.WorkspaceRoot); err != nil || !stat.IsDir() {
		return fmt.Errorf("invalid workspace root: %s", config.WorkspaceRoot)
	}
	if absPath, err := filepath.Abs(config.WorkspaceRoot); err == nil {
		config.WorkspaceRoot = absPath
	}

	s, err := server.NewRefspanServer(config)
	if err != nil {
		return fmt.Errorf("failed to create refspan server: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	return s.Serve(ctx)
}

// setupLogging sends slog output to stderr; stdout carries the MCP stream.
func setupLogging(level string) {
	handler := tint.NewHandler(os.Stderr, &tint.Options{
		Level:      parseLevel(level),
		TimeFormat: time.TimeOnly,
	})
	slog.SetDefault(slog.New(handler))
}

func parseLevel(level string) slog.Level {
	switch level {
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
