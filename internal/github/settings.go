package github

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alan/merge-gate/cmd"
)

// GetRepositorySettings fetches the repository merge-capability flags.
// Linear history is not part of the repository payload; it comes from the
// branch protection of the given base branch (the repository default branch
// when baseRef is empty). A 404 on protection means no protection and
// therefore no linear-history requirement.
func (c *Client) GetRepositorySettings(ctx context.Context, baseRef string) (*cmd.RepositorySettings, error) {
	slog.Debug("GitHub API: Getting repository", "org", c.org, "repo", c.repo)
	repo, _, err := c.client.Repositories.Get(ctx, c.org, c.repo)
	if err != nil {
		return nil, wrapAuth(fmt.Errorf("failed to fetch repository %s/%s: %w", c.org, c.repo, err))
	}

	settings := &cmd.RepositorySettings{
		AllowAutoMerge:   repo.GetAllowAutoMerge(),
		AllowMergeCommit: repo.GetAllowMergeCommit(),
		AllowRebaseMerge: repo.GetAllowRebaseMerge(),
		AllowSquashMerge: repo.GetAllowSquashMerge(),
	}

	if baseRef == "" {
		baseRef = repo.GetDefaultBranch()
	}

	linear, err := c.requiresLinearHistory(ctx, baseRef)
	if err != nil {
		return nil, err
	}
	settings.LinearHistory = linear

	return settings, nil
}

// requiresLinearHistory reads the linear-history flag from branch protection
func (c *Client) requiresLinearHistory(ctx context.Context, branch string) (bool, error) {
	slog.Debug("GitHub API: Getting branch protection", "org", c.org, "repo", c.repo, "branch", branch)
	protection, _, err := c.client.Repositories.GetBranchProtection(ctx, c.org, c.repo, branch)
	if err != nil {
		if isNotFound(err) {
			// Unprotected branch
			return false, nil
		}
		return false, fmt.Errorf("failed to fetch branch protection for %s: %w", branch, err)
	}

	if rlh := protection.GetRequireLinearHistory(); rlh != nil {
		return rlh.Enabled, nil
	}
	return false, nil
}
