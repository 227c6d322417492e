package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/alan/merge-gate/cmd"
	"github.com/alan/merge-gate/internal/gate"
)

// Processor runs the approve/merge workflow over a batch of PRs.
// PRs are processed sequentially on purpose: bursting the upstream API with
// parallel calls is what this tool is meant to avoid.
type Processor struct {
	API               GitHubAPI
	ApprovalMessage   string
	MergeAfterApprove bool
	// Timeout bounds each PR's collaborator calls; a hang in one PR must not
	// stall the rest of the batch forever. Zero disables the bound.
	Timeout time.Duration
}

// ProcessPRs approves (and optionally merges) each PR in order. The
// repository settings fetch is the up-front availability check: if it fails
// the whole invocation fails. Everything after that is recovered per PR.
func (p *Processor) ProcessPRs(ctx context.Context, numbers []int) (*cmd.BatchResult, error) {
	settings, err := p.API.GetRepositorySettings(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch repository settings: %w", err)
	}

	// A failed current-user lookup is not fatal: the prior-approval check is
	// skipped and approval attempted anyway, with a warning on each result.
	var authWarning string
	login, err := p.API.CurrentUserLogin(ctx)
	if err != nil {
		authWarning = fmt.Sprintf("could not resolve current user (%v); skipping prior-approval check", err)
		slog.Warn("Current user lookup failed, approving without prior-approval check", "error", err)
		login = ""
	}

	batch := &cmd.BatchResult{
		Total:              len(numbers),
		RepositorySettings: settings,
		Results:            make([]cmd.PRResult, 0, len(numbers)),
	}

	for _, number := range numbers {
		result := p.processPR(ctx, number, settings, login, authWarning)

		batch.Results = append(batch.Results, result)
		if result.Success {
			batch.Successful++
		} else {
			batch.Failed++
			batch.Errors = append(batch.Errors, fmt.Sprintf("PR #%d: %s", number, result.Error))
		}
	}

	return batch, nil
}

// processPR handles a single PR: idempotent approval, then the merge gate
// when requested. Failures are captured in the result, never propagated, so
// one PR cannot abort the rest of the batch.
func (p *Processor) processPR(ctx context.Context, number int, settings *cmd.RepositorySettings, login, authWarning string) cmd.PRResult {
	prCtx, cancel := p.prContext(ctx)
	defer cancel()

	result := cmd.PRResult{Number: number, AuthWarning: authWarning}

	approved := false
	if login != "" {
		var err error
		approved, err = p.API.HasApproved(prCtx, number, login)
		if err != nil {
			if !errors.Is(err, cmd.ErrUnauthorized) {
				result.Error = p.describeError(err)
				return result
			}
			// Best-effort check: on auth failure treat as not yet approved and
			// let the (idempotent) approval call proceed.
			result.AuthWarning = fmt.Sprintf("prior-approval check failed (%v); attempting approval anyway", err)
			slog.Warn("Prior-approval check failed, attempting approval anyway", "pr", number, "error", err)
		}
	}

	if approved {
		result.Skipped = true
		result.Success = true
		result.Output = fmt.Sprintf("PR #%d already approved", number)
		slog.Info("Skipping already-approved PR", "pr", number)
	} else {
		if err := p.API.ApprovePR(prCtx, number, p.ApprovalMessage); err != nil {
			result.Error = p.describeError(err)
			return result
		}
		result.Success = true
		result.Output = fmt.Sprintf("PR #%d approved", number)
		slog.Info("Approved PR", "pr", number)
	}

	if !p.MergeAfterApprove {
		return result
	}

	outcome, err := p.runGate(prCtx, number, settings)
	result.MergeResult = outcome
	switch {
	case err != nil:
		result.Success = false
		result.Error = p.describeError(err)
	case outcome.Strategy == cmd.StrategyBlocked:
		// Policy block, not a technical failure; still counts toward the
		// batch error summary and a non-zero exit.
		result.Success = false
		result.Error = outcome.Message
	}

	return result
}

// runGate collects PR state and check runs, applies the decision policy and
// executes the chosen action. A blocked decision is returned without error.
func (p *Processor) runGate(ctx context.Context, number int, settings *cmd.RepositorySettings) (*cmd.MergeOutcome, error) {
	pr, err := p.API.GetPRStatus(ctx, number)
	if err != nil {
		return nil, err
	}

	if pr.Merged {
		return &cmd.MergeOutcome{
			Strategy: cmd.StrategyManualMerge,
			Message:  fmt.Sprintf("PR #%d is already merged", number),
			Merged:   true,
		}, nil
	}

	runs, err := p.API.ListCheckRuns(ctx, pr.HeadSHA)
	if err != nil {
		return nil, err
	}

	ci := gate.AggregateCheckRuns(runs)
	decision := gate.Decide(*settings, ci)
	slog.Info("Merge decision", "pr", number, "strategy", decision.Strategy, "method", decision.Method, "message", decision.Message)

	outcome := &cmd.MergeOutcome{
		Strategy: decision.Strategy,
		Method:   decision.Method,
		Message:  decision.Message,
	}

	switch decision.Strategy {
	case cmd.StrategyBlocked:
		return outcome, nil

	case cmd.StrategyAutoMerge:
		if err := p.API.EnableAutoMerge(ctx, pr.NodeID, decision.Method); err != nil {
			// GitHub rejects auto-merge enablement for PRs already in a clean
			// mergeable state; merge those directly instead.
			if ci.Overall == cmd.OverallSuccess || ci.Overall == cmd.OverallNoChecks {
				if mergeErr := p.API.MergePR(ctx, number, decision.Method); mergeErr == nil {
					outcome.Merged = true
					slog.Info("Merged PR directly after auto-merge enablement was rejected", "pr", number, "method", decision.Method)
					return outcome, nil
				}
			}
			return outcome, err
		}
		outcome.AutoMergeEnabled = true
		slog.Info("Enabled auto-merge", "pr", number, "method", decision.Method)

	case cmd.StrategyManualMerge:
		if err := p.API.MergePR(ctx, number, decision.Method); err != nil {
			return outcome, err
		}
		outcome.Merged = true
		slog.Info("Merged PR", "pr", number, "method", decision.Method)
	}

	return outcome, nil
}

// Evaluate computes the merge decision for a PR without executing anything
func (p *Processor) Evaluate(ctx context.Context, number int) (*cmd.PRStatus, *cmd.RepositorySettings, cmd.CIStatus, cmd.MergeDecision, error) {
	var ci cmd.CIStatus
	var decision cmd.MergeDecision

	prCtx, cancel := p.prContext(ctx)
	defer cancel()

	pr, err := p.API.GetPRStatus(prCtx, number)
	if err != nil {
		return nil, nil, ci, decision, err
	}

	settings, err := p.API.GetRepositorySettings(prCtx, pr.BaseRef)
	if err != nil {
		return nil, nil, ci, decision, err
	}

	runs, err := p.API.ListCheckRuns(prCtx, pr.HeadSHA)
	if err != nil {
		return nil, nil, ci, decision, err
	}

	ci = gate.AggregateCheckRuns(runs)
	decision = gate.Decide(*settings, ci)
	return pr, settings, ci, decision, nil
}

// prContext derives the per-PR timeout context
func (p *Processor) prContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if p.Timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, p.Timeout)
}

// describeError turns a timeout into a retryable per-PR message instead of
// surfacing a bare context error
func (p *Processor) describeError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Sprintf("timed out after %s", p.Timeout)
	}
	return err.Error()
}
