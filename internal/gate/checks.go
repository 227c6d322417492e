// Package gate implements the merge-gate decision procedure: check-run
// aggregation and the policy that maps repository settings plus CI state
// to an auto-merge, manual-merge or blocked outcome. The package performs
// no I/O; everything here is a pure function over value types.
package gate

import "github.com/alan/merge-gate/cmd"

// AggregateCheckRuns partitions a flat list of check runs into the CIStatus
// buckets and derives the overall outcome. Classification uses the current
// status/conclusion snapshot only, no history tracking; a failed or
// cancelled conclusion takes precedence over a queued status.
func AggregateCheckRuns(runs []cmd.CheckRun) cmd.CIStatus {
	status := cmd.CIStatus{CanMerge: true}

	for _, run := range runs {
		switch {
		case run.Conclusion == "failure" || run.Conclusion == "cancelled":
			status.Errors = append(status.Errors, run.Name)
			status.CanMerge = false
		case run.Status == "in_progress" || run.Status == "queued":
			status.StillRunning = append(status.StillRunning, run.Name)
			status.CanMerge = false
		case run.Conclusion == "success":
			status.Required = append(status.Required, run.Name)
		default:
			status.Optional = append(status.Optional, run.Name)
		}
	}

	// Priority: failure > pending > success > no_checks
	switch {
	case len(status.Errors) > 0:
		status.Overall = cmd.OverallFailure
	case len(status.StillRunning) > 0:
		status.Overall = cmd.OverallPending
	case len(status.Required) > 0:
		status.Overall = cmd.OverallSuccess
	default:
		status.Overall = cmd.OverallNoChecks
	}

	return status
}
