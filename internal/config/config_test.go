package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alan/merge-gate/cmd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "merge-gate.yaml")

	original := &cmd.Config{
		Org:                   "acme",
		Repo:                  "widgets",
		ApprovalMessage:       "Approved by the release gate",
		RequestTimeoutSeconds: 30,
	}
	require.NoError(t, SaveConfig(path, original))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, original, loaded)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "merge-gate.yaml")
	require.NoError(t, os.WriteFile(path, []byte("org: [unclosed"), 0600))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadConfig_OmittedFieldsDefaultToZero(t *testing.T) {
	path := filepath.Join(t.TempDir(), "merge-gate.yaml")
	require.NoError(t, os.WriteFile(path, []byte("org: acme\nrepo: widgets\n"), 0600))

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "acme", config.Org)
	assert.Equal(t, "widgets", config.Repo)
	assert.Empty(t, config.ApprovalMessage)
	assert.Zero(t, config.RequestTimeoutSeconds)
}
