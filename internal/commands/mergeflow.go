package commands

import (
	"errors"
	"fmt"
	"log/slog"

	"context"

	"github.com/alan/merge-gate/cmd"
)

// MergeWithRebase runs the agent-driven merge flow for a single PR: update
// the head branch against its base first, and only consult the merge gate
// once the head is current. The returned error is reserved for up-front
// collaborator failures (repository settings); everything else lands in the
// PRResult.
func (p *Processor) MergeWithRebase(ctx context.Context, number int) (*cmd.PRResult, error) {
	prCtx, cancel := p.prContext(ctx)
	defer cancel()

	result := &cmd.PRResult{Number: number}

	pr, err := p.API.GetPRStatus(prCtx, number)
	if err != nil {
		result.Error = p.describeError(err)
		return result, nil
	}

	if pr.Merged {
		result.Success = true
		result.Skipped = true
		result.Output = fmt.Sprintf("PR #%d is already merged", number)
		return result, nil
	}

	settings, err := p.API.GetRepositorySettings(ctx, pr.BaseRef)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch repository settings: %w", err)
	}

	slog.Info("Updating PR branch before merge", "pr", number, "base", pr.BaseRef, "head", pr.HeadRef)
	if err := p.API.UpdateBranch(prCtx, number); err != nil {
		result.Error = p.describeError(err)
		if errors.Is(err, cmd.ErrRebaseConflict) {
			// Hard stop: the gate must never run against a conflicted head.
			result.MergeResult = &cmd.MergeOutcome{
				Strategy: cmd.StrategyBlocked,
				Message:  fmt.Sprintf("Head branch %s has conflicts with %s", pr.HeadRef, pr.BaseRef),
				Recommendation: fmt.Sprintf(
					"Check out %s, rebase onto %s, resolve the conflicts and push, then rerun the merge.",
					pr.HeadRef, pr.BaseRef),
			}
		}
		return result, nil
	}

	outcome, err := p.runGate(prCtx, number, settings)
	result.MergeResult = outcome
	switch {
	case err != nil:
		result.Error = p.describeError(err)
	case outcome.Strategy == cmd.StrategyBlocked:
		result.Error = outcome.Message
	default:
		result.Success = true
		result.Output = outcome.Message
	}

	return result, nil
}
