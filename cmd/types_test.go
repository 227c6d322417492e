package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCheckOverall(t *testing.T) {
	assert.Equal(t, OverallSuccess, ParseCheckOverall("success"))
	assert.Equal(t, OverallPending, ParseCheckOverall("pending"))
	assert.Equal(t, OverallFailure, ParseCheckOverall("failure"))
	assert.Equal(t, OverallNoChecks, ParseCheckOverall("no_checks"))
	assert.Equal(t, OverallNoChecks, ParseCheckOverall("something else"))
}

func TestBatchResultBlocked(t *testing.T) {
	assert.False(t, (&BatchResult{Total: 2, Successful: 2}).Blocked())
	assert.True(t, (&BatchResult{Total: 2, Successful: 1, Failed: 1}).Blocked())
	assert.True(t, (&BatchResult{Errors: []string{"PR #2: checks failed"}}).Blocked())
}
