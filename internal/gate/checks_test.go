package gate

import (
	"testing"

	"github.com/alan/merge-gate/cmd"
	"github.com/stretchr/testify/assert"
)

func TestAggregateCheckRuns_Buckets(t *testing.T) {
	tests := []struct {
		name             string
		runs             []cmd.CheckRun
		expectedOverall  cmd.CheckOverall
		expectedCanMerge bool
		expectedRequired []string
		expectedOptional []string
		expectedRunning  []string
		expectedErrors   []string
	}{
		{
			name:             "no check runs",
			runs:             nil,
			expectedOverall:  cmd.OverallNoChecks,
			expectedCanMerge: true,
		},
		{
			name: "all passing",
			runs: []cmd.CheckRun{
				{Name: "build", Status: "completed", Conclusion: "success"},
				{Name: "test", Status: "completed", Conclusion: "success"},
			},
			expectedOverall:  cmd.OverallSuccess,
			expectedCanMerge: true,
			expectedRequired: []string{"build", "test"},
		},
		{
			name: "failure forces failure overall",
			runs: []cmd.CheckRun{
				{Name: "build", Status: "completed", Conclusion: "success"},
				{Name: "lint", Status: "completed", Conclusion: "failure"},
			},
			expectedOverall:  cmd.OverallFailure,
			expectedCanMerge: false,
			expectedRequired: []string{"build"},
			expectedErrors:   []string{"lint"},
		},
		{
			name: "cancelled counts as error",
			runs: []cmd.CheckRun{
				{Name: "e2e", Status: "completed", Conclusion: "cancelled"},
			},
			expectedOverall:  cmd.OverallFailure,
			expectedCanMerge: false,
			expectedErrors:   []string{"e2e"},
		},
		{
			name: "in progress forces pending",
			runs: []cmd.CheckRun{
				{Name: "build", Status: "completed", Conclusion: "success"},
				{Name: "deploy", Status: "in_progress"},
			},
			expectedOverall:  cmd.OverallPending,
			expectedCanMerge: false,
			expectedRequired: []string{"build"},
			expectedRunning:  []string{"deploy"},
		},
		{
			name: "queued forces pending",
			runs: []cmd.CheckRun{
				{Name: "build", Status: "queued"},
			},
			expectedOverall:  cmd.OverallPending,
			expectedCanMerge: false,
			expectedRunning:  []string{"build"},
		},
		{
			name: "failure beats pending",
			runs: []cmd.CheckRun{
				{Name: "lint", Status: "completed", Conclusion: "failure"},
				{Name: "build", Status: "queued"},
			},
			expectedOverall:  cmd.OverallFailure,
			expectedCanMerge: false,
			expectedRunning:  []string{"build"},
			expectedErrors:   []string{"lint"},
		},
		{
			name: "requeued run with stale failure conclusion stays an error",
			runs: []cmd.CheckRun{
				{Name: "flaky", Status: "queued", Conclusion: "failure"},
			},
			expectedOverall:  cmd.OverallFailure,
			expectedCanMerge: false,
			expectedErrors:   []string{"flaky"},
		},
		{
			name: "neutral and skipped conclusions are optional",
			runs: []cmd.CheckRun{
				{Name: "codecov", Status: "completed", Conclusion: "neutral"},
				{Name: "docs", Status: "completed", Conclusion: "skipped"},
			},
			expectedOverall:  cmd.OverallNoChecks,
			expectedCanMerge: true,
			expectedOptional: []string{"codecov", "docs"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := AggregateCheckRuns(tt.runs)

			assert.Equal(t, tt.expectedOverall, status.Overall)
			assert.Equal(t, tt.expectedCanMerge, status.CanMerge)
			assert.Equal(t, tt.expectedRequired, status.Required)
			assert.Equal(t, tt.expectedOptional, status.Optional)
			assert.Equal(t, tt.expectedRunning, status.StillRunning)
			assert.Equal(t, tt.expectedErrors, status.Errors)
		})
	}
}

func TestAggregateCheckRuns_AnyFailureMeansNoMerge(t *testing.T) {
	// For every set containing at least one failure or cancellation the
	// overall outcome is failure and the merge is off the table.
	base := []cmd.CheckRun{
		{Name: "build", Status: "completed", Conclusion: "success"},
		{Name: "deploy", Status: "in_progress"},
	}

	for _, conclusion := range []string{"failure", "cancelled"} {
		runs := append([]cmd.CheckRun{{Name: "bad", Status: "completed", Conclusion: conclusion}}, base...)
		status := AggregateCheckRuns(runs)

		assert.Equal(t, cmd.OverallFailure, status.Overall, "conclusion %s", conclusion)
		assert.False(t, status.CanMerge, "conclusion %s", conclusion)
	}
}
