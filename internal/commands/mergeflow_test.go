package commands

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/alan/merge-gate/cmd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeWithRebase_UpdatesBranchBeforeGate(t *testing.T) {
	api := newFakeAPI()
	api.addPR(7, "sha7", passingChecks)
	processor := &Processor{API: api}

	result, err := processor.MergeWithRebase(context.Background(), 7)
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, []int{7}, api.updateCalls)
	require.NotNil(t, result.MergeResult)
	assert.Equal(t, cmd.StrategyAutoMerge, result.MergeResult.Strategy)
	assert.Equal(t, 1, api.checksCalls, "gate runs exactly once, after the update")
}

func TestMergeWithRebase_ConflictStopsBeforeGate(t *testing.T) {
	api := newFakeAPI()
	api.addPR(7, "sha7", passingChecks)
	api.updateErrs[7] = fmt.Errorf("%w: merge conflict between base and head", cmd.ErrRebaseConflict)
	processor := &Processor{API: api}

	result, err := processor.MergeWithRebase(context.Background(), 7)
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Error)
	require.NotNil(t, result.MergeResult)
	assert.Equal(t, cmd.StrategyBlocked, result.MergeResult.Strategy)
	assert.Contains(t, result.MergeResult.Message, "conflicts")
	assert.Contains(t, result.MergeResult.Recommendation, "feature-7")
	assert.Contains(t, result.MergeResult.Recommendation, "main")

	// The gate must never run against a conflicted head
	assert.Equal(t, 0, api.checksCalls)
	assert.Empty(t, api.mergeCalls)
	assert.Empty(t, api.autoMergeCalls)
}

func TestMergeWithRebase_OtherUpdateFailure(t *testing.T) {
	api := newFakeAPI()
	api.addPR(7, "sha7", passingChecks)
	api.updateErrs[7] = errors.New("502 bad gateway")
	processor := &Processor{API: api}

	result, err := processor.MergeWithRebase(context.Background(), 7)
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "502")
	assert.Nil(t, result.MergeResult, "no recommendation for non-conflict failures")
	assert.Equal(t, 0, api.checksCalls)
}

func TestMergeWithRebase_AlreadyMergedSkips(t *testing.T) {
	api := newFakeAPI()
	api.addPR(7, "sha7", passingChecks)
	api.prs[7].Merged = true
	processor := &Processor{API: api}

	result, err := processor.MergeWithRebase(context.Background(), 7)
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.True(t, result.Skipped)
	assert.Empty(t, api.updateCalls)
	assert.Equal(t, 0, api.checksCalls)
}

func TestMergeWithRebase_SettingsFailureIsFatal(t *testing.T) {
	api := newFakeAPI()
	api.addPR(7, "sha7", passingChecks)
	api.settingsErr = errors.New("boom")
	processor := &Processor{API: api}

	_, err := processor.MergeWithRebase(context.Background(), 7)
	require.Error(t, err)
	assert.Empty(t, api.updateCalls)
}

func TestMergeWithRebase_BlockedGateOutcome(t *testing.T) {
	api := newFakeAPI()
	api.settings = &cmd.RepositorySettings{AllowMergeCommit: true}
	api.addPR(7, "sha7", []cmd.CheckRun{{Name: "e2e", Status: "in_progress"}})
	processor := &Processor{API: api}

	result, err := processor.MergeWithRebase(context.Background(), 7)
	require.NoError(t, err)

	assert.False(t, result.Success)
	require.NotNil(t, result.MergeResult)
	assert.Equal(t, cmd.StrategyBlocked, result.MergeResult.Strategy)
	assert.Contains(t, result.Error, "e2e")
	assert.Equal(t, []int{7}, api.updateCalls)
}
