// package main is the entry point for the merge-gate tool
package main

import (
	"log/slog"
	"os"

	"github.com/alan/merge-gate/cmd/approve"
	configcmd "github.com/alan/merge-gate/cmd/config"
	"github.com/alan/merge-gate/cmd/merge"
	"github.com/alan/merge-gate/cmd/retry"
	"github.com/alan/merge-gate/cmd/status"
	"github.com/alan/merge-gate/internal/config"
	"github.com/spf13/cobra"
)

func main() {
	var logLevel string
	var logFormat string

	rootCmd := &cobra.Command{
		Use:   "merge-gate",
		Short: "A CLI tool for approving and merging GitHub PRs behind a CI gate",
		Long: `merge-gate is a CLI tool that approves and merges GitHub pull requests
behind a deterministic CI gate: it inspects repository merge settings,
PR mergeability and check-run results, picks an auto-merge, manual-merge
or blocked outcome, then executes it.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			setupLogger(logLevel, logFormat)
		},
	}

	// Add global flags
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVarP(&logFormat, "log-format", "f", "text", "Log format (text, json)")

	// Create commands with access to the shared config loader
	rootCmd.AddCommand(configcmd.NewConfigCmd(config.LoadConfig, config.SaveConfig))
	rootCmd.AddCommand(approve.NewApproveCmd(config.LoadConfig))
	rootCmd.AddCommand(merge.NewMergeCmd(config.LoadConfig))
	rootCmd.AddCommand(status.NewStatusCmd(config.LoadConfig))
	rootCmd.AddCommand(retry.NewRetryCmd(config.LoadConfig))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupLogger(level, format string) {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
	} else {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
	}

	slog.SetDefault(slog.New(handler))
}
