package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/alan/merge-gate/cmd"
)

// PrintJSON writes any result as indented JSON for machine consumption
func PrintJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// PrintBatchResult writes a human-readable batch summary
func PrintBatchResult(w io.Writer, batch *cmd.BatchResult) {
	for i := range batch.Results {
		PrintPRResult(w, &batch.Results[i])
	}

	fmt.Fprintf(w, "\n📊 Processed %d PR(s): %d successful, %d failed\n", batch.Total, batch.Successful, batch.Failed)
	if len(batch.Errors) > 0 {
		fmt.Fprintf(w, "⚠️  Errors:\n")
		for _, e := range batch.Errors {
			fmt.Fprintf(w, "  - %s\n", e)
		}
	}
}

// PrintPRResult writes a human-readable line (or few) for one PR
func PrintPRResult(w io.Writer, result *cmd.PRResult) {
	switch {
	case result.Skipped:
		fmt.Fprintf(w, "⏭️  %s\n", result.Output)
	case result.Success:
		fmt.Fprintf(w, "✅ %s\n", result.Output)
	default:
		fmt.Fprintf(w, "❌ PR #%d: %s\n", result.Number, result.Error)
	}

	if result.AuthWarning != "" {
		fmt.Fprintf(w, "⚠️  PR #%d: %s\n", result.Number, result.AuthWarning)
	}

	if mr := result.MergeResult; mr != nil {
		switch {
		case mr.Merged:
			fmt.Fprintf(w, "   🔀 merged (%s): %s\n", mr.Method, mr.Message)
		case mr.AutoMergeEnabled:
			fmt.Fprintf(w, "   🔀 auto-merge enabled (%s): %s\n", mr.Method, mr.Message)
		case mr.Strategy == cmd.StrategyBlocked:
			fmt.Fprintf(w, "   🚫 blocked: %s\n", mr.Message)
		}
		if mr.Recommendation != "" {
			fmt.Fprintf(w, "   💡 %s\n", mr.Recommendation)
		}
	}
}

// PrintDecision writes a dry-run decision report for the status command
func PrintDecision(w io.Writer, pr *cmd.PRStatus, settings *cmd.RepositorySettings, ci cmd.CIStatus, decision cmd.MergeDecision) {
	fmt.Fprintf(w, "PR #%d: %s\n", pr.Number, pr.Title)
	fmt.Fprintf(w, "  %s <- %s (head %s)\n", pr.BaseRef, pr.HeadRef, shortSHA(pr.HeadSHA))

	mergeable := "unknown"
	if pr.Mergeable != nil {
		mergeable = fmt.Sprintf("%t", *pr.Mergeable)
	}
	fmt.Fprintf(w, "  mergeable: %s (%s)\n", mergeable, pr.MergeableState)

	fmt.Fprintf(w, "  repository: auto-merge=%t linear-history=%t methods=%s\n",
		settings.AllowAutoMerge, settings.LinearHistory, enabledMethods(settings))

	fmt.Fprintf(w, "  checks: %s", ci.Overall)
	if len(ci.Required) > 0 {
		fmt.Fprintf(w, " passed=[%s]", strings.Join(ci.Required, ", "))
	}
	if len(ci.StillRunning) > 0 {
		fmt.Fprintf(w, " running=[%s]", strings.Join(ci.StillRunning, ", "))
	}
	if len(ci.Errors) > 0 {
		fmt.Fprintf(w, " failed=[%s]", strings.Join(ci.Errors, ", "))
	}
	fmt.Fprintln(w)

	if decision.Strategy == cmd.StrategyBlocked {
		fmt.Fprintf(w, "  🚫 %s: %s\n", decision.Strategy, decision.Message)
	} else {
		fmt.Fprintf(w, "  ✅ %s (%s): %s\n", decision.Strategy, decision.Method, decision.Message)
	}
}

// enabledMethods lists the repository's enabled merge methods in precedence order
func enabledMethods(settings *cmd.RepositorySettings) string {
	var methods []string
	if settings.AllowMergeCommit {
		methods = append(methods, string(cmd.MethodMerge))
	}
	if settings.AllowRebaseMerge {
		methods = append(methods, string(cmd.MethodRebase))
	}
	if settings.AllowSquashMerge {
		methods = append(methods, string(cmd.MethodSquash))
	}
	if len(methods) == 0 {
		return "none"
	}
	return strings.Join(methods, ",")
}

func shortSHA(sha string) string {
	if len(sha) > 8 {
		return sha[:8]
	}
	return sha
}
