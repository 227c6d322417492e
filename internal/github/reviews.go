package github

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/go-github/v57/github"
)

// HasApproved reports whether the given user already has an APPROVED review
// on the PR. Used for idempotent batch approval: an already-approved PR is
// skipped rather than re-approved.
func (c *Client) HasApproved(ctx context.Context, number int, login string) (bool, error) {
	reviews, err := paginatedList(func(page int) ([]*github.PullRequestReview, *github.Response, error) {
		opts := &github.ListOptions{
			PerPage: 100,
			Page:    page,
		}
		slog.Debug("GitHub API: Listing PR reviews", "org", c.org, "repo", c.repo, "pr", number, "page", page)
		return c.client.PullRequests.ListReviews(ctx, c.org, c.repo, number, opts)
	})
	if err != nil {
		return false, wrapAuth(fmt.Errorf("failed to list reviews for PR #%d: %w", number, err))
	}

	// Later reviews supersede earlier ones, so scan newest-last and keep the
	// final state left by this user.
	approved := false
	for _, review := range reviews {
		if review.GetUser().GetLogin() != login {
			continue
		}
		switch review.GetState() {
		case "APPROVED":
			approved = true
		case "CHANGES_REQUESTED", "DISMISSED":
			approved = false
		}
	}

	return approved, nil
}

// ApprovePR submits an approving review on the PR
func (c *Client) ApprovePR(ctx context.Context, number int, body string) error {
	review := &github.PullRequestReviewRequest{
		Event: github.String("APPROVE"),
	}
	if body != "" {
		review.Body = github.String(body)
	}

	slog.Debug("GitHub API: Approving PR", "org", c.org, "repo", c.repo, "pr", number)
	_, _, err := c.client.PullRequests.CreateReview(ctx, c.org, c.repo, number, review)
	if err != nil {
		return wrapAuth(fmt.Errorf("failed to approve PR #%d: %w", number, err))
	}

	return nil
}
