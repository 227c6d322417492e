package commands

import (
	"context"

	"github.com/alan/merge-gate/cmd"
)

// GitHubAPI is the collaborator surface the batch processor depends on.
// *github.Client satisfies it; tests substitute a fake.
type GitHubAPI interface {
	GetRepositorySettings(ctx context.Context, baseRef string) (*cmd.RepositorySettings, error)
	GetPRStatus(ctx context.Context, number int) (*cmd.PRStatus, error)
	ListCheckRuns(ctx context.Context, sha string) ([]cmd.CheckRun, error)
	CurrentUserLogin(ctx context.Context) (string, error)
	HasApproved(ctx context.Context, number int, login string) (bool, error)
	ApprovePR(ctx context.Context, number int, body string) error
	MergePR(ctx context.Context, number int, method cmd.MergeMethod) error
	EnableAutoMerge(ctx context.Context, nodeID string, method cmd.MergeMethod) error
	UpdateBranch(ctx context.Context, number int) error
}
