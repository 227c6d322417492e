package github

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/alan/merge-gate/cmd"
	"github.com/google/go-github/v57/github"
	"github.com/stretchr/testify/assert"
)

func errorResponse(statusCode int) *github.ErrorResponse {
	return &github.ErrorResponse{
		Response: &http.Response{
			StatusCode: statusCode,
			Request:    &http.Request{},
		},
	}
}

func TestWrapAuth(t *testing.T) {
	t.Run("401 is tagged unauthorized", func(t *testing.T) {
		err := wrapAuth(fmt.Errorf("call failed: %w", errorResponse(http.StatusUnauthorized)))
		assert.ErrorIs(t, err, cmd.ErrUnauthorized)
	})

	t.Run("403 is tagged unauthorized", func(t *testing.T) {
		err := wrapAuth(fmt.Errorf("call failed: %w", errorResponse(http.StatusForbidden)))
		assert.ErrorIs(t, err, cmd.ErrUnauthorized)
	})

	t.Run("other status codes pass through", func(t *testing.T) {
		original := fmt.Errorf("call failed: %w", errorResponse(http.StatusNotFound))
		err := wrapAuth(original)
		assert.NotErrorIs(t, err, cmd.ErrUnauthorized)
		assert.Equal(t, original, err)
	})

	t.Run("non-API errors pass through", func(t *testing.T) {
		original := errors.New("connection refused")
		assert.Equal(t, original, wrapAuth(original))
	})
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, isNotFound(fmt.Errorf("wrapped: %w", errorResponse(http.StatusNotFound))))
	assert.False(t, isNotFound(errorResponse(http.StatusUnauthorized)))
	assert.False(t, isNotFound(errors.New("plain error")))
	assert.False(t, isNotFound(nil))
}

func TestIsConflictError(t *testing.T) {
	assert.True(t, isConflictError(errors.New("422 merge conflict between base and head")))
	assert.True(t, isConflictError(errors.New("Merge Conflict")))
	assert.False(t, isConflictError(errors.New("422 validation failed")))
	assert.False(t, isConflictError(nil))
}

func TestConvertCheckRuns(t *testing.T) {
	runs := []*github.CheckRun{
		{
			Name:       github.String("build"),
			Status:     github.String("completed"),
			Conclusion: github.String("success"),
		},
		{
			Name:   github.String("e2e"),
			Status: github.String("in_progress"),
		},
	}

	converted := convertCheckRuns(runs)

	assert.Equal(t, []cmd.CheckRun{
		{Name: "build", Status: "completed", Conclusion: "success"},
		{Name: "e2e", Status: "in_progress", Conclusion: ""},
	}, converted)
}

func TestConvertCheckRuns_Empty(t *testing.T) {
	assert.Empty(t, convertCheckRuns(nil))
}
