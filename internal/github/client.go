// Package github wraps the GitHub REST and GraphQL APIs behind the narrow
// surface the merge gate needs: repository settings, PR state, check runs,
// reviews and merge execution.
package github

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/alan/merge-gate/cmd"
	"github.com/google/go-github/v57/github"
	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"
)

// Client wraps the GitHub API clients, bound to a single repository
type Client struct {
	client *github.Client
	v4     *githubv4.Client
	org    string
	repo   string

	// login caches the current user lookup for prior-approval checks
	login string
}

// NewClient creates a new GitHub client with token authentication.
// The GraphQL client shares the same authenticated transport; it is needed
// for auto-merge enablement, which has no REST endpoint.
func NewClient(ctx context.Context, token string) *Client {
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)

	return &Client{
		client: github.NewClient(tc),
		v4:     githubv4.NewClient(tc),
	}
}

// WithRepository binds the client to an org/repo pair
func (c *Client) WithRepository(org, repo string) *Client {
	c.org = org
	c.repo = repo
	return c
}

// CurrentUserLogin returns the authenticated user's login, cached after the
// first successful lookup. Auth rejections are wrapped with cmd.ErrUnauthorized
// so callers can fall back to the approve-anyway path.
func (c *Client) CurrentUserLogin(ctx context.Context) (string, error) {
	if c.login != "" {
		return c.login, nil
	}

	slog.Debug("GitHub API: Getting authenticated user")
	user, _, err := c.client.Users.Get(ctx, "")
	if err != nil {
		return "", wrapAuth(fmt.Errorf("failed to get authenticated user: %w", err))
	}

	c.login = user.GetLogin()
	return c.login, nil
}

// paginatedList drains all pages of a list endpoint
func paginatedList[T any](list func(page int) ([]T, *github.Response, error)) ([]T, error) {
	var all []T
	page := 0

	for {
		items, resp, err := list(page)
		if err != nil {
			return nil, err
		}
		all = append(all, items...)

		if resp.NextPage == 0 {
			return all, nil
		}
		page = resp.NextPage
	}
}

// wrapAuth tags 401/403 responses with cmd.ErrUnauthorized
func wrapAuth(err error) error {
	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		code := ghErr.Response.StatusCode
		if code == http.StatusUnauthorized || code == http.StatusForbidden {
			return fmt.Errorf("%w: %v", cmd.ErrUnauthorized, err)
		}
	}
	return err
}

// isNotFound reports whether err is a 404 from the API
func isNotFound(err error) bool {
	var ghErr *github.ErrorResponse
	return errors.As(err, &ghErr) && ghErr.Response != nil && ghErr.Response.StatusCode == http.StatusNotFound
}

// isConflictError recognizes the conflict shape of branch-update failures.
// GitHub reports it as a 422 whose message mentions a merge conflict; the
// string match mirrors what the API actually returns.
func isConflictError(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "conflict")
}
