package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "tern.toml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	assert.Equal(t, DefaultMaxCallDepth, config.MaxCallDepth)
	assert.False(t, config.StrictTypes)
	assert.Empty(t, config.Preludes)
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
max_call_depth = 64
strict_types = true
preludes = ["math"]
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 64, config.MaxCallDepth)
	assert.True(t, config.StrictTypes)
	assert.Equal(t, []string{"math"}, config.Preludes)
}

func TestLoadConfigKeepsDefaults(t *testing.T) {
	config, err := LoadConfig(writeConfig(t, "strict_types = true\n"))
	require.NoError(t, err)
	assert.Equal(t, DefaultMaxCallDepth, config.MaxCallDepth)
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name     string
		contents string
		message  string
	}{
		{"unknown key", "max_depth = 3\n", "unknown key max_depth"},
		{"non-positive depth", "max_call_depth = 0\n", "max_call_depth must be positive"},
		{"malformed", "max_call_depth = \n", "parsing"},
		{"wrong type", "strict_types = \"yes\"\n", "parsing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.contents))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
	assert.True(t, os.IsNotExist(errors.Cause(err)))
}
