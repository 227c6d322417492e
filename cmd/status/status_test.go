package status

import (
	"testing"

	"github.com/alan/merge-gate/cmd"
	"github.com/stretchr/testify/assert"
)

func stubLoadConfig(string) (*cmd.Config, error) {
	return &cmd.Config{Org: "acme", Repo: "widgets"}, nil
}

func TestNewStatusCmd(t *testing.T) {
	cobraCmd := NewStatusCmd(stubLoadConfig)

	assert.Equal(t, "status <pr-number>", cobraCmd.Use)
	assert.NotEmpty(t, cobraCmd.Short)

	for _, flag := range []string{"config", "repo", "json"} {
		assert.NotNil(t, cobraCmd.Flags().Lookup(flag), "flag %s", flag)
	}
}

func TestStatusCmd_RequiresExactlyOneArgument(t *testing.T) {
	cobraCmd := NewStatusCmd(stubLoadConfig)

	assert.Error(t, cobraCmd.Args(cobraCmd, nil))
	assert.NoError(t, cobraCmd.Args(cobraCmd, []string{"1"}))
	assert.Error(t, cobraCmd.Args(cobraCmd, []string{"1", "2"}))
}
