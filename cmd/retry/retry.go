// Package retry implements the retry command for re-running failed CI
// workflow runs on a PR, typically after the merge gate blocked on them.
package retry

import (
	"fmt"
	"log/slog"

	"github.com/alan/merge-gate/cmd"
	"github.com/alan/merge-gate/internal/commands"
	"github.com/spf13/cobra"
)

// RetryCommand encapsulates the retry command with common functionality
type RetryCommand struct {
	commands.BaseCommand
	PRNumber int
}

// NewRetryCmd creates the retry command
func NewRetryCmd(loadConfig func(string) (*cmd.Config, error)) *cobra.Command {
	retryCmd := &RetryCommand{}
	var configFile string
	var repoOverride string

	cobraCmd := &cobra.Command{
		Use:   "retry <pr-number>",
		Short: "Re-run failed CI workflow runs for a PR",
		Long: `Re-run failed CI workflow runs for a PR.

Triggers a re-run of all failed, cancelled or timed-out workflow runs on
the PR's head commit. Useful when the merge gate blocked on checks that
look flaky.

Examples:
  merge-gate retry 123
  merge-gate retry 123 --repo org/name`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			number, err := commands.ParsePRNumber(args)
			if err != nil {
				return err
			}
			retryCmd.PRNumber = number

			retryCmd.ConfigFile = &configFile
			retryCmd.LoadConfig = loadConfig
			retryCmd.RepoOverride = repoOverride
			if err := retryCmd.Init(cobraCmd.Context()); err != nil {
				return err
			}

			return retryCmd.Run(cobraCmd)
		},
	}

	cobraCmd.Flags().StringVar(&configFile, "config", cmd.DefaultConfigFile, "Path to configuration file")
	cobraCmd.Flags().StringVar(&repoOverride, "repo", "", "Repository qualifier (owner/name), overrides the config")

	return cobraCmd
}

// Run executes the retry command
func (rc *RetryCommand) Run(cobraCmd *cobra.Command) error {
	slog.Info("Retrying failed CI workflow runs", "pr", rc.PRNumber)

	if err := rc.GitHubClient.RetryFailedWorkflows(cobraCmd.Context(), rc.PRNumber); err != nil {
		return fmt.Errorf("failed to retry CI for PR #%d: %w", rc.PRNumber, err)
	}

	fmt.Printf("✅ Triggered retry of failed CI runs for PR #%d\n", rc.PRNumber)
	return nil
}
