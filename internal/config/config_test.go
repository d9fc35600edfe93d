package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cgrep.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 0, cfg.Workers)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.NoColor)
	assert.Empty(t, cfg.ExcludeDirs)
	assert.Empty(t, cfg.Include)
	assert.Empty(t, cfg.Exclude)
}

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
workers: 4
log_level: debug
no_color: true
exclude_dirs:
  - .git
  - node_modules
include:
  - "**/*.go"
exclude:
  - "**/*_test.go"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.NoColor)
	assert.Equal(t, []string{".git", "node_modules"}, cfg.ExcludeDirs)
	assert.Equal(t, []string{"**/*.go"}, cfg.Include)
	assert.Equal(t, []string{"**/*_test.go"}, cfg.Exclude)
}

func TestLoadConfigPartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "workers: 2\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadConfigMalformedYAML(t *testing.T) {
	path := writeConfig(t, "workers: [not a number\n")

	cfg, err := LoadConfig(path)
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadConfigNegativeWorkers(t *testing.T) {
	path := writeConfig(t, "workers: -3\n")

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "workers must not be negative")
}
