// Package cmd defines core data structures for merge-gate configuration and merge decisions.
package cmd

// DefaultConfigFile is the config file name looked up in the working directory.
const DefaultConfigFile = "merge-gate.yaml"

// DefaultTimeoutSeconds bounds each PR's collaborator calls when the config does not set one.
const DefaultTimeoutSeconds = 120

// Config represents the structure of merge-gate.yaml
type Config struct {
	Org                   string `yaml:"org"`
	Repo                  string `yaml:"repo"`
	ApprovalMessage       string `yaml:"approval_message,omitempty"`
	RequestTimeoutSeconds int    `yaml:"request_timeout_seconds,omitempty"`
}

// MergeStrategy represents the outcome class of a merge decision
type MergeStrategy string

const (
	// StrategyAutoMerge indicates the PR should be merged via GitHub's auto-merge feature
	StrategyAutoMerge MergeStrategy = "auto-merge"
	// StrategyManualMerge indicates the PR should be merged directly via the merge API
	StrategyManualMerge MergeStrategy = "manual-merge"
	// StrategyBlocked indicates the PR must not be merged; Message carries the reason
	StrategyBlocked MergeStrategy = "blocked"
)

// MergeMethod represents a concrete GitHub merge method
type MergeMethod string

const (
	// MethodMerge creates a merge commit
	MethodMerge MergeMethod = "merge"
	// MethodRebase rebases the head commits onto the base branch
	MethodRebase MergeMethod = "rebase"
	// MethodSquash squashes the head commits into a single commit
	MethodSquash MergeMethod = "squash"
)

// CheckOverall represents the aggregate outcome of all check runs for a commit
type CheckOverall string

const (
	// OverallSuccess indicates at least one check passed and none failed or are running
	OverallSuccess CheckOverall = "success"
	// OverallPending indicates one or more checks are still queued or in progress
	OverallPending CheckOverall = "pending"
	// OverallFailure indicates one or more checks concluded failure or cancelled
	OverallFailure CheckOverall = "failure"
	// OverallNoChecks indicates no check runs were reported for the commit
	OverallNoChecks CheckOverall = "no_checks"
)

// ParseCheckOverall converts a string to CheckOverall
func ParseCheckOverall(s string) CheckOverall {
	switch s {
	case "success":
		return OverallSuccess
	case "pending":
		return OverallPending
	case "failure":
		return OverallFailure
	default:
		return OverallNoChecks
	}
}
