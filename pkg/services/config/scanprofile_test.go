package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadScanProfile_Full(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	content := `
workers: 4
include_content: true
content_limit_bytes: 65536
rules_path: /etc/privacy-atlas/rules.yaml
keywords:
  - data
  - retention
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	profile, err := LoadScanProfile(path)
	require.NoError(t, err)

	assert.Equal(t, 4, profile.Workers)
	assert.True(t, profile.IncludeContent)
	assert.Equal(t, int64(65536), profile.ContentLimitBytes)
	assert.Equal(t, "/etc/privacy-atlas/rules.yaml", profile.RulesPath)
	assert.Equal(t, []string{"data", "retention"}, profile.Keywords)
}

func TestLoadScanProfile_DefaultsApply(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rules_path: rules.yaml\n"), 0o600))

	profile, err := LoadScanProfile(path)
	require.NoError(t, err)

	assert.Equal(t, 1, profile.Workers)
	assert.Equal(t, int64(1<<20), profile.ContentLimitBytes)
	assert.False(t, profile.IncludeContent)
}

func TestLoadScanProfile_RejectsZeroWorkers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workers: -1\n"), 0o600))

	_, err := LoadScanProfile(path)
	assert.Error(t, err)
}

func TestLoadScanProfile_MissingFile(t *testing.T) {
	_, err := LoadScanProfile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
