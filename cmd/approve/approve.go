// Package approve implements the batch approve command: approve one or more
// PRs, optionally pushing each through the merge gate afterwards.
package approve

import (
	"fmt"
	"os"

	"github.com/alan/merge-gate/cmd"
	"github.com/alan/merge-gate/internal/commands"
	"github.com/spf13/cobra"
)

// ApproveCommand encapsulates the approve command with common functionality
type ApproveCommand struct {
	commands.BaseCommand
	PRNumbers  []int
	Merge      bool
	JSONOutput bool
}

// NewApproveCmd creates the approve command
func NewApproveCmd(loadConfig func(string) (*cmd.Config, error)) *cobra.Command {
	approveCmd := &ApproveCommand{}
	var configFile string
	var repoOverride string

	cobraCmd := &cobra.Command{
		Use:   "approve <pr-number> [pr-number...]",
		Short: "Approve PRs and optionally merge them through the CI gate",
		Long: `Approve one or more pull requests.

PRs already approved by the current user are skipped (idempotent). With
--merge, each approved PR is pushed through the merge gate: repository
settings and check-run results decide between auto-merge, a direct merge,
or a blocked outcome with an explanation.

PRs are processed sequentially to avoid bursting the GitHub API; a failure
on one PR does not stop the rest of the batch.

Examples:
  merge-gate approve 123                   # Approve PR #123
  merge-gate approve 123 124 125 --merge   # Approve and merge a batch
  merge-gate approve 7 --repo org/name     # Override the configured repo`,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			numbers, err := commands.ParsePRNumbers(args)
			if err != nil {
				return err
			}
			approveCmd.PRNumbers = numbers

			approveCmd.ConfigFile = &configFile
			approveCmd.LoadConfig = loadConfig
			approveCmd.RepoOverride = repoOverride
			if err := approveCmd.Init(cobraCmd.Context()); err != nil {
				return err
			}

			return approveCmd.Run(cobraCmd)
		},
	}

	cobraCmd.Flags().StringVar(&configFile, "config", cmd.DefaultConfigFile, "Path to configuration file")
	cobraCmd.Flags().StringVar(&repoOverride, "repo", "", "Repository qualifier (owner/name), overrides the config")
	cobraCmd.Flags().BoolVarP(&approveCmd.Merge, "merge", "m", false, "Run the merge gate after approving")
	cobraCmd.Flags().BoolVar(&approveCmd.JSONOutput, "json", false, "Emit the batch result as JSON")

	return cobraCmd
}

// Run executes the approve command
func (ac *ApproveCommand) Run(cobraCmd *cobra.Command) error {
	processor := &commands.Processor{
		API:               ac.GitHubClient,
		ApprovalMessage:   ac.Config.ApprovalMessage,
		MergeAfterApprove: ac.Merge,
		Timeout:           ac.Timeout(),
	}

	batch, err := processor.ProcessPRs(cobraCmd.Context(), ac.PRNumbers)
	if err != nil {
		return err
	}

	if ac.JSONOutput {
		if err := commands.PrintJSON(os.Stdout, batch); err != nil {
			return err
		}
	} else {
		commands.PrintBatchResult(os.Stdout, batch)
	}

	// Non-zero exit when any PR errored or was blocked
	if batch.Blocked() {
		return fmt.Errorf("%d of %d PR(s) failed or were blocked", batch.Failed, batch.Total)
	}

	return nil
}
