// Package status implements the status command: a dry run of the merge gate
// that prints the decision without executing it.
package status

import (
	"os"

	"github.com/alan/merge-gate/cmd"
	"github.com/alan/merge-gate/internal/commands"
	"github.com/spf13/cobra"
)

// StatusCommand encapsulates the status command with common functionality
type StatusCommand struct {
	commands.BaseCommand
	PRNumber   int
	JSONOutput bool
}

// decisionReport is the JSON shape of a dry-run evaluation
type decisionReport struct {
	PR                 *cmd.PRStatus           `json:"pr"`
	RepositorySettings *cmd.RepositorySettings `json:"repository_settings"`
	CIStatus           cmd.CIStatus            `json:"ci_status"`
	Decision           cmd.MergeDecision       `json:"decision"`
}

// NewStatusCmd creates the status command
func NewStatusCmd(loadConfig func(string) (*cmd.Config, error)) *cobra.Command {
	statusCmd := &StatusCommand{}
	var configFile string
	var repoOverride string

	cobraCmd := &cobra.Command{
		Use:   "status <pr-number>",
		Short: "Show the merge decision for a PR without executing it",
		Long: `Show what the merge gate would decide for a PR.

Fetches repository settings, PR mergeability and check-run results, prints
the check buckets and the resulting decision. Nothing is approved, merged
or modified.

Examples:
  merge-gate status 123
  merge-gate status 123 --json`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			number, err := commands.ParsePRNumber(args)
			if err != nil {
				return err
			}
			statusCmd.PRNumber = number

			statusCmd.ConfigFile = &configFile
			statusCmd.LoadConfig = loadConfig
			statusCmd.RepoOverride = repoOverride
			if err := statusCmd.Init(cobraCmd.Context()); err != nil {
				return err
			}

			return statusCmd.Run(cobraCmd)
		},
	}

	cobraCmd.Flags().StringVar(&configFile, "config", cmd.DefaultConfigFile, "Path to configuration file")
	cobraCmd.Flags().StringVar(&repoOverride, "repo", "", "Repository qualifier (owner/name), overrides the config")
	cobraCmd.Flags().BoolVar(&statusCmd.JSONOutput, "json", false, "Emit the decision as JSON")

	return cobraCmd
}

// Run executes the status command
func (sc *StatusCommand) Run(cobraCmd *cobra.Command) error {
	processor := &commands.Processor{
		API:     sc.GitHubClient,
		Timeout: sc.Timeout(),
	}

	pr, settings, ci, decision, err := processor.Evaluate(cobraCmd.Context(), sc.PRNumber)
	if err != nil {
		return err
	}

	if sc.JSONOutput {
		return commands.PrintJSON(os.Stdout, decisionReport{
			PR:                 pr,
			RepositorySettings: settings,
			CIStatus:           ci,
			Decision:           decision,
		})
	}

	commands.PrintDecision(os.Stdout, pr, settings, ci, decision)
	return nil
}
