package cmd

import "errors"

// ErrRebaseConflict marks a branch update that failed because the head
// branch conflicts with its base. Callers route this to a manual
// conflict-resolution recommendation instead of retrying.
var ErrRebaseConflict = errors.New("rebase conflict")

// ErrUnauthorized marks a collaborator call rejected for missing or
// insufficient credentials.
var ErrUnauthorized = errors.New("unauthorized")

// RepositorySettings holds the repository merge-capability flags.
// Fetched once per invocation and immutable for the duration of the decision.
type RepositorySettings struct {
	AllowAutoMerge   bool `json:"allow_auto_merge"`
	LinearHistory    bool `json:"linear_history"`
	AllowMergeCommit bool `json:"allow_merge_commit"`
	AllowRebaseMerge bool `json:"allow_rebase_merge"`
	AllowSquashMerge bool `json:"allow_squash_merge"`
}

// PRStatus reflects GitHub's live view of a pull request. Mergeable is nil
// while GitHub is still computing mergeability asynchronously.
type PRStatus struct {
	Number         int    `json:"number"`
	Title          string `json:"title"`
	URL            string `json:"url"`
	NodeID         string `json:"-"`
	HeadSHA        string `json:"head_sha"`
	BaseRef        string `json:"base_ref"`
	HeadRef        string `json:"head_ref"`
	Mergeable      *bool  `json:"mergeable,omitempty"`
	MergeableState string `json:"mergeable_state,omitempty"`
	Merged         bool   `json:"merged"`
	State          string `json:"state"`
}

// CheckRun is a single CI job's reported status/conclusion against a commit
type CheckRun struct {
	Name       string `json:"name"`
	Status     string `json:"status"`     // "queued", "in_progress", "completed"
	Conclusion string `json:"conclusion"` // "success", "failure", "cancelled", ...
}

// CIStatus is the aggregate over all check runs for a head commit,
// partitioned into buckets of check names.
type CIStatus struct {
	Required     []string     `json:"required,omitempty"`
	Optional     []string     `json:"optional,omitempty"`
	StillRunning []string     `json:"still_running,omitempty"`
	Errors       []string     `json:"errors,omitempty"`
	Overall      CheckOverall `json:"overall"`
	CanMerge     bool         `json:"can_merge"`
}

// MergeDecision is the outcome of the gate policy. It is a pure function of
// (RepositorySettings, CIStatus): no hidden state, reproducible given the
// same inputs. Method is empty when Strategy is blocked.
type MergeDecision struct {
	Strategy MergeStrategy `json:"strategy"`
	Method   MergeMethod   `json:"method,omitempty"`
	Message  string        `json:"message"`
}

// MergeOutcome records what the gate decided and did for one PR
type MergeOutcome struct {
	Strategy         MergeStrategy `json:"strategy"`
	Method           MergeMethod   `json:"method,omitempty"`
	Message          string        `json:"message"`
	Merged           bool          `json:"merged"`
	AutoMergeEnabled bool          `json:"auto_merge_enabled"`
	Recommendation   string        `json:"recommendation,omitempty"`
}

// PRResult is the per-PR entry of a batch invocation
type PRResult struct {
	Number      int           `json:"number"`
	Success     bool          `json:"success"`
	Output      string        `json:"output,omitempty"`
	Skipped     bool          `json:"skipped,omitempty"`
	AuthWarning string        `json:"auth_warning,omitempty"`
	MergeResult *MergeOutcome `json:"merge_result,omitempty"`
	Error       string        `json:"error,omitempty"`
}

// BatchResult aggregates per-PR results for one invocation. Errors holds
// both technical failures and policy-blocked outcomes for summary purposes;
// a non-empty Errors slice means the invocation exits non-zero.
type BatchResult struct {
	Total              int                 `json:"total"`
	Successful         int                 `json:"successful"`
	Failed             int                 `json:"failed"`
	RepositorySettings *RepositorySettings `json:"repository_settings,omitempty"`
	Results            []PRResult          `json:"results"`
	Errors             []string            `json:"errors,omitempty"`
}

// Blocked reports whether any per-PR entry ended in an error or a policy block
func (b *BatchResult) Blocked() bool {
	return len(b.Errors) > 0 || b.Failed > 0
}
