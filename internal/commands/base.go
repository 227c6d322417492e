// Package commands provides shared plumbing for merge-gate commands:
// initialization, argument parsing, the sequential batch processor and
// result display.
package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/alan/merge-gate/cmd"
	"github.com/alan/merge-gate/internal/github"
)

// BaseCommand provides common fields and initialization for all commands
type BaseCommand struct {
	ConfigFile *string
	LoadConfig func(string) (*cmd.Config, error)
	// RepoOverride is an optional "owner/name" qualifier that takes
	// precedence over the configured repository.
	RepoOverride string

	GitHubClient *github.Client
	Config       *cmd.Config
}

// Init loads configuration and builds the repository-bound GitHub client
func (bc *BaseCommand) Init(ctx context.Context) error {
	config, err := bc.LoadConfig(*bc.ConfigFile)
	if err != nil {
		return err
	}
	bc.Config = config

	org, repo := config.Org, config.Repo
	if bc.RepoOverride != "" {
		org, repo, err = SplitRepoQualifier(bc.RepoOverride)
		if err != nil {
			return err
		}
	}
	if org == "" || repo == "" {
		return fmt.Errorf("repository is not configured (set org/repo in %s or pass --repo owner/name)", *bc.ConfigFile)
	}

	token, err := getGitHubToken()
	if err != nil {
		return err
	}
	bc.GitHubClient = github.NewClient(ctx, token).WithRepository(org, repo)

	return nil
}

// Timeout returns the per-PR timeout from config, falling back to the default
func (bc *BaseCommand) Timeout() time.Duration {
	seconds := cmd.DefaultTimeoutSeconds
	if bc.Config != nil && bc.Config.RequestTimeoutSeconds > 0 {
		seconds = bc.Config.RequestTimeoutSeconds
	}
	return time.Duration(seconds) * time.Second
}

// getGitHubToken retrieves and validates the GitHub token
func getGitHubToken() (string, error) {
	token := os.Getenv("GITHUB_TOKEN")
	if token == "" {
		return "", fmt.Errorf("GITHUB_TOKEN environment variable is required")
	}
	return token, nil
}
