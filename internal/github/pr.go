package github

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/alan/merge-gate/cmd"
	"github.com/google/go-github/v57/github"
	"github.com/shurcooL/githubv4"
)

// GetPRStatus fetches the live state of a pull request. Mergeable stays nil
// while GitHub is still computing mergeability; callers must treat that as
// unknown, not as a blocker.
func (c *Client) GetPRStatus(ctx context.Context, number int) (*cmd.PRStatus, error) {
	slog.Debug("GitHub API: Getting PR", "org", c.org, "repo", c.repo, "pr", number)
	pr, _, err := c.client.PullRequests.Get(ctx, c.org, c.repo, number)
	if err != nil {
		return nil, wrapAuth(fmt.Errorf("failed to fetch PR #%d: %w", number, err))
	}

	return &cmd.PRStatus{
		Number:         pr.GetNumber(),
		Title:          pr.GetTitle(),
		URL:            pr.GetHTMLURL(),
		NodeID:         pr.GetNodeID(),
		HeadSHA:        pr.GetHead().GetSHA(),
		BaseRef:        pr.GetBase().GetRef(),
		HeadRef:        pr.GetHead().GetRef(),
		Mergeable:      pr.Mergeable,
		MergeableState: pr.GetMergeableState(),
		Merged:         pr.GetMerged(),
		State:          pr.GetState(),
	}, nil
}

// UpdateBranch asks GitHub to update the PR's head branch with its base
// branch. A 202 Accepted is success: the update runs asynchronously upstream.
// A conflict is wrapped with cmd.ErrRebaseConflict so callers can route it to
// manual resolution instead of retrying.
func (c *Client) UpdateBranch(ctx context.Context, number int) error {
	slog.Debug("GitHub API: Updating PR branch", "org", c.org, "repo", c.repo, "pr", number)
	_, _, err := c.client.PullRequests.UpdateBranch(ctx, c.org, c.repo, number, nil)
	if err != nil {
		var accepted *github.AcceptedError
		if errors.As(err, &accepted) {
			return nil
		}
		if isConflictError(err) {
			return fmt.Errorf("%w: %v", cmd.ErrRebaseConflict, err)
		}
		return fmt.Errorf("failed to update branch for PR #%d: %w", number, err)
	}

	return nil
}

// MergePR merges a pull request directly using the specified merge method
func (c *Client) MergePR(ctx context.Context, number int, method cmd.MergeMethod) error {
	slog.Debug("GitHub API: Getting PR for merge", "org", c.org, "repo", c.repo, "pr", number)
	pr, _, err := c.client.PullRequests.Get(ctx, c.org, c.repo, number)
	if err != nil {
		return fmt.Errorf("failed to get PR #%d: %w", number, err)
	}

	// Mergeable can be nil (still computing), true, or false
	if pr.Mergeable != nil && !*pr.Mergeable {
		return fmt.Errorf("PR #%d is not mergeable (conflicts may exist)", number)
	}

	commitTitle := fmt.Sprintf("%s (#%d)", pr.GetTitle(), number)
	mergeOptions := &github.PullRequestOptions{
		CommitTitle: commitTitle,
		MergeMethod: string(method),
	}

	slog.Debug("GitHub API: Merging PR", "org", c.org, "repo", c.repo, "pr", number, "method", method)
	mergeResult, _, err := c.client.PullRequests.Merge(ctx, c.org, c.repo, number, "", mergeOptions)
	if err != nil {
		return fmt.Errorf("failed to merge PR #%d: %w", number, err)
	}

	if !mergeResult.GetMerged() {
		return fmt.Errorf("PR #%d merge was not successful: %s", number, mergeResult.GetMessage())
	}

	return nil
}

// EnableAutoMerge turns on GitHub's native auto-merge for a PR so it merges
// once all requirements are satisfied. Auto-merge enablement is only exposed
// through the GraphQL API.
func (c *Client) EnableAutoMerge(ctx context.Context, nodeID string, method cmd.MergeMethod) error {
	var mutation struct {
		EnablePullRequestAutoMerge struct {
			PullRequest struct {
				Number githubv4.Int
			}
		} `graphql:"enablePullRequestAutoMerge(input: $input)"`
	}

	mergeMethod := toV4MergeMethod(method)
	input := githubv4.EnablePullRequestAutoMergeInput{
		PullRequestID: githubv4.ID(nodeID),
		MergeMethod:   &mergeMethod,
	}

	slog.Debug("GitHub API: Enabling auto-merge", "org", c.org, "repo", c.repo, "node_id", nodeID, "method", method)
	if err := c.v4.Mutate(ctx, &mutation, input, nil); err != nil {
		return fmt.Errorf("failed to enable auto-merge: %w", err)
	}

	return nil
}

// toV4MergeMethod maps a merge method to its GraphQL enum value
func toV4MergeMethod(method cmd.MergeMethod) githubv4.PullRequestMergeMethod {
	switch method {
	case cmd.MethodRebase:
		return githubv4.PullRequestMergeMethodRebase
	case cmd.MethodSquash:
		return githubv4.PullRequestMergeMethodSquash
	default:
		return githubv4.PullRequestMergeMethodMerge
	}
}
