package github

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alan/merge-gate/cmd"
	"github.com/google/go-github/v57/github"
)

// ListCheckRuns fetches all check runs for a commit SHA as flat snapshots.
// Aggregation into a CIStatus is left to the gate package.
func (c *Client) ListCheckRuns(ctx context.Context, sha string) ([]cmd.CheckRun, error) {
	runs, err := paginatedList(func(page int) ([]*github.CheckRun, *github.Response, error) {
		opts := &github.ListCheckRunsOptions{
			ListOptions: github.ListOptions{
				PerPage: 100,
				Page:    page,
			},
		}
		slog.Debug("GitHub API: Listing check runs", "org", c.org, "repo", c.repo, "sha", sha, "page", page)
		results, resp, err := c.client.Checks.ListCheckRunsForRef(ctx, c.org, c.repo, sha, opts)
		if err != nil {
			return nil, resp, err
		}
		return results.CheckRuns, resp, nil
	})
	if err != nil {
		return nil, wrapAuth(fmt.Errorf("failed to list check runs for commit %s: %w", sha, err))
	}

	return convertCheckRuns(runs), nil
}

// convertCheckRuns maps API check runs to the gate's snapshot type
func convertCheckRuns(runs []*github.CheckRun) []cmd.CheckRun {
	converted := make([]cmd.CheckRun, 0, len(runs))
	for _, run := range runs {
		converted = append(converted, cmd.CheckRun{
			Name:       run.GetName(),
			Status:     run.GetStatus(),
			Conclusion: run.GetConclusion(),
		})
	}
	return converted
}
