// Package merge implements the agent-driven merge command: update the head
// branch against its base, then run the merge gate.
package merge

import (
	"fmt"
	"os"

	"github.com/alan/merge-gate/cmd"
	"github.com/alan/merge-gate/internal/commands"
	"github.com/spf13/cobra"
)

// MergeCommand encapsulates the merge command with common functionality
type MergeCommand struct {
	commands.BaseCommand
	PRNumber   int
	JSONOutput bool
}

// NewMergeCmd creates the merge command
func NewMergeCmd(loadConfig func(string) (*cmd.Config, error)) *cobra.Command {
	mergeCmd := &MergeCommand{}
	var configFile string
	var repoOverride string

	cobraCmd := &cobra.Command{
		Use:   "merge <pr-number>",
		Short: "Rebase a PR onto its base branch, then merge it through the CI gate",
		Long: `Rebase a PR onto its base branch, then merge it through the CI gate.

The branch update is a hard precondition: the gate never runs against an
out-of-date head. When the update hits a conflict, the command stops with a
recommendation to resolve the conflicts manually; the gate is not consulted.

Examples:
  merge-gate merge 123                   # Rebase and merge PR #123
  merge-gate merge 123 --repo org/name   # Override the configured repo`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			number, err := commands.ParsePRNumber(args)
			if err != nil {
				return err
			}
			mergeCmd.PRNumber = number

			mergeCmd.ConfigFile = &configFile
			mergeCmd.LoadConfig = loadConfig
			mergeCmd.RepoOverride = repoOverride
			if err := mergeCmd.Init(cobraCmd.Context()); err != nil {
				return err
			}

			return mergeCmd.Run(cobraCmd)
		},
	}

	cobraCmd.Flags().StringVar(&configFile, "config", cmd.DefaultConfigFile, "Path to configuration file")
	cobraCmd.Flags().StringVar(&repoOverride, "repo", "", "Repository qualifier (owner/name), overrides the config")
	cobraCmd.Flags().BoolVar(&mergeCmd.JSONOutput, "json", false, "Emit the result as JSON")

	return cobraCmd
}

// Run executes the merge command
func (mc *MergeCommand) Run(cobraCmd *cobra.Command) error {
	processor := &commands.Processor{
		API:     mc.GitHubClient,
		Timeout: mc.Timeout(),
	}

	result, err := processor.MergeWithRebase(cobraCmd.Context(), mc.PRNumber)
	if err != nil {
		return err
	}

	if mc.JSONOutput {
		if err := commands.PrintJSON(os.Stdout, result); err != nil {
			return err
		}
	} else {
		commands.PrintPRResult(os.Stdout, result)
	}

	if !result.Success {
		return fmt.Errorf("PR #%d was not merged: %s", mc.PRNumber, result.Error)
	}

	return nil
}
