package retry

import (
	"testing"

	"github.com/alan/merge-gate/cmd"
	"github.com/stretchr/testify/assert"
)

func stubLoadConfig(string) (*cmd.Config, error) {
	return &cmd.Config{Org: "acme", Repo: "widgets"}, nil
}

func TestNewRetryCmd(t *testing.T) {
	cobraCmd := NewRetryCmd(stubLoadConfig)

	assert.Equal(t, "retry <pr-number>", cobraCmd.Use)
	assert.NotEmpty(t, cobraCmd.Short)
	assert.NotNil(t, cobraCmd.Flags().Lookup("config"))
	assert.NotNil(t, cobraCmd.Flags().Lookup("repo"))
}

func TestRetryCmd_RequiresExactlyOneArgument(t *testing.T) {
	cobraCmd := NewRetryCmd(stubLoadConfig)

	assert.Error(t, cobraCmd.Args(cobraCmd, nil))
	assert.NoError(t, cobraCmd.Args(cobraCmd, []string{"1"}))
	assert.Error(t, cobraCmd.Args(cobraCmd, []string{"1", "2"}))
}
