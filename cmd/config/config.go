// Package config implements the config command for initializing and updating merge-gate configuration.
package config

import (
	"fmt"

	"os/exec"
	"regexp"
	"strings"

	"github.com/alan/merge-gate/cmd"
	"github.com/spf13/cobra"
)

// NewConfigCmd creates and returns the config command
func NewConfigCmd(loadConfig func(string) (*cmd.Config, error), saveConfig func(string, *cmd.Config) error) *cobra.Command {
	var (
		configFile      string
		org             string
		repo            string
		approvalMessage string
		timeoutSeconds  int
	)

	cobraCmd := &cobra.Command{
		Use:   "config",
		Short: "Initialize a new merge-gate.yaml configuration file",
		Long: `Config creates or updates a merge-gate.yaml file with the organization
and repository the gate operates on.

When run from a git repository root, the organization and repository are
auto-detected from the git remote origin.`,
		SilenceUsage: true,
		RunE: func(cobraCmd *cobra.Command, _ []string) error {
			timeoutChanged := cobraCmd.Flags().Changed("timeout")
			return runConfig(configFile, org, repo, approvalMessage, timeoutSeconds, timeoutChanged, loadConfig, saveConfig)
		},
	}

	cobraCmd.Flags().StringVar(&configFile, "config", cmd.DefaultConfigFile, "Path to configuration file")
	cobraCmd.Flags().StringVarP(&org, "org", "o", "", "GitHub organization or username (auto-detected from git if available)")
	cobraCmd.Flags().StringVarP(&repo, "repo", "r", "", "GitHub repository name (auto-detected from git if available)")
	cobraCmd.Flags().StringVarP(&approvalMessage, "approval-message", "a", "", "Review body used when approving PRs")
	cobraCmd.Flags().IntVarP(&timeoutSeconds, "timeout", "t", 0, "Per-PR request timeout in seconds")

	return cobraCmd
}

// runConfig merges flag values, existing config and git detection, then saves
func runConfig(configFile, org, repo, approvalMessage string, timeoutSeconds int, timeoutChanged bool, loadConfig func(string) (*cmd.Config, error), saveConfig func(string, *cmd.Config) error) error {
	config, isUpdate := loadOrCreateConfig(configFile, loadConfig)

	if org != "" {
		config.Org = org
	}
	if repo != "" {
		config.Repo = repo
	}
	if approvalMessage != "" {
		config.ApprovalMessage = approvalMessage
	}
	if timeoutChanged {
		config.RequestTimeoutSeconds = timeoutSeconds
	}

	// Fill still-missing repository identity from the git remote
	if config.Org == "" || config.Repo == "" {
		if detectedOrg, detectedRepo, err := detectGitRemote(); err == nil {
			if config.Org == "" {
				config.Org = detectedOrg
			}
			if config.Repo == "" {
				config.Repo = detectedRepo
			}
		}
	}

	if config.Org == "" {
		return fmt.Errorf("organization is required (use --org flag or run from a git repository)")
	}
	if config.Repo == "" {
		return fmt.Errorf("repository is required (use --repo flag or run from a git repository)")
	}

	if err := saveConfig(configFile, config); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	displayConfigSuccess(configFile, config, isUpdate)
	return nil
}

// displayConfigSuccess shows the configuration success message
func displayConfigSuccess(configFile string, config *cmd.Config, isUpdate bool) {
	action := "initialized"
	if isUpdate {
		action = "updated"
	}
	fmt.Printf("Successfully %s %s with:\n", action, configFile)
	fmt.Printf("  Organization: %s\n", config.Org)
	fmt.Printf("  Repository: %s\n", config.Repo)
	if config.ApprovalMessage != "" {
		fmt.Printf("  Approval message: %s\n", config.ApprovalMessage)
	}
	if config.RequestTimeoutSeconds > 0 {
		fmt.Printf("  Request timeout: %ds\n", config.RequestTimeoutSeconds)
	}
}

// loadOrCreateConfig loads existing config or creates a new one
func loadOrCreateConfig(configFile string, loadConfig func(string) (*cmd.Config, error)) (*cmd.Config, bool) {
	if config, err := loadConfig(configFile); err == nil {
		return config, true
	}
	return &cmd.Config{}, false
}

// detectGitRemote extracts org and repo from the git remote origin
func detectGitRemote() (string, string, error) {
	gitCmd := exec.Command("git", "remote", "get-url", "origin")
	output, err := gitCmd.Output()
	if err != nil {
		return "", "", err
	}

	remoteURL := strings.TrimSpace(string(output))
	return parseRemoteURL(remoteURL)
}

// parseRemoteURL extracts org and repo from various GitHub URL formats
func parseRemoteURL(remoteURL string) (string, string, error) {
	// Handle SSH format: git@github.com:org/repo.git
	sshRegex := regexp.MustCompile(`git@github\.com:([^/]+)/([^/]+?)(?:\.git)?$`)
	if matches := sshRegex.FindStringSubmatch(remoteURL); len(matches) == 3 {
		return matches[1], matches[2], nil
	}

	// Handle HTTPS format: https://github.com/org/repo.git
	httpsRegex := regexp.MustCompile(`https://github\.com/([^/]+)/([^/]+?)(?:\.git)?/?$`)
	if matches := httpsRegex.FindStringSubmatch(remoteURL); len(matches) == 3 {
		return matches[1], matches[2], nil
	}

	return "", "", fmt.Errorf("unable to parse GitHub remote URL: %s", remoteURL)
}
