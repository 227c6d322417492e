package gate

import (
	"fmt"
	"strings"

	"github.com/alan/merge-gate/cmd"
)

// Decide applies the merge policy to repository settings and aggregated CI
// status. Rules are evaluated in order and the first match wins:
//
//  1. Linear history required: auto-merge if the repository allows it,
//     otherwise blocked (a rebase is the only way forward).
//  2. Otherwise branch on the overall CI outcome.
//
// The failure branch deliberately lets auto-merge proceed when at least one
// check has already passed; the failing names are surfaced in the message.
func Decide(settings cmd.RepositorySettings, ci cmd.CIStatus) cmd.MergeDecision {
	if settings.LinearHistory {
		if settings.AllowAutoMerge {
			return withMethod(settings, cmd.MergeDecision{
				Strategy: cmd.StrategyAutoMerge,
				Message:  "Linear history required, using auto-merge",
			})
		}
		return cmd.MergeDecision{
			Strategy: cmd.StrategyBlocked,
			Message:  "Linear history required but auto-merge disabled. Rebase required.",
		}
	}

	switch ci.Overall {
	case cmd.OverallSuccess:
		return withMethod(settings, cmd.MergeDecision{
			Strategy: strategyFor(settings),
			Message:  "All checks passed, proceeding with merge",
		})

	case cmd.OverallPending:
		names := strings.Join(ci.StillRunning, ", ")
		if settings.AllowAutoMerge {
			return withMethod(settings, cmd.MergeDecision{
				Strategy: cmd.StrategyAutoMerge,
				Message:  fmt.Sprintf("Auto-merge enabled, waiting for: %s", names),
			})
		}
		return cmd.MergeDecision{
			Strategy: cmd.StrategyBlocked,
			Message:  fmt.Sprintf("Manual merge blocked, waiting for: %s", names),
		}

	case cmd.OverallFailure:
		names := strings.Join(ci.Errors, ", ")
		if len(ci.Required) > 0 && settings.AllowAutoMerge {
			return withMethod(settings, cmd.MergeDecision{
				Strategy: cmd.StrategyAutoMerge,
				Message:  fmt.Sprintf("Warning: checks failed (%s) but required checks passed, proceeding with auto-merge", names),
			})
		}
		return cmd.MergeDecision{
			Strategy: cmd.StrategyBlocked,
			Message:  fmt.Sprintf("Checks failed: %s", names),
		}

	default: // no_checks
		return withMethod(settings, cmd.MergeDecision{
			Strategy: strategyFor(settings),
			Message:  "No CI checks found, proceeding with merge",
		})
	}
}

// strategyFor picks auto-merge when the repository supports it, manual otherwise
func strategyFor(settings cmd.RepositorySettings) cmd.MergeStrategy {
	if settings.AllowAutoMerge {
		return cmd.StrategyAutoMerge
	}
	return cmd.StrategyManualMerge
}

// SelectMergeMethod picks the concrete merge method by repository capability
// precedence: merge commit > rebase > squash. ok is false when the repository
// enables none of the three.
func SelectMergeMethod(settings cmd.RepositorySettings) (method cmd.MergeMethod, ok bool) {
	switch {
	case settings.AllowMergeCommit:
		return cmd.MethodMerge, true
	case settings.AllowRebaseMerge:
		return cmd.MethodRebase, true
	case settings.AllowSquashMerge:
		return cmd.MethodSquash, true
	default:
		return "", false
	}
}

// withMethod resolves the concrete merge method for a non-blocked decision.
// When no merge method is enabled at all, an auto-merge strategy falls back
// to a direct manual merge with the default method.
func withMethod(settings cmd.RepositorySettings, decision cmd.MergeDecision) cmd.MergeDecision {
	method, ok := SelectMergeMethod(settings)
	if !ok {
		if decision.Strategy == cmd.StrategyAutoMerge {
			decision.Strategy = cmd.StrategyManualMerge
		}
		decision.Method = cmd.MethodMerge
		return decision
	}
	decision.Method = method
	return decision
}
