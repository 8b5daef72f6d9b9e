package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDriverConfig(t *testing.T) {
	configDir := t.TempDir()
	configYAML := `description: test fingerprinting tool
tool:
  name: whatweb
  command: whatweb
  flags:
    - flag: "--log-json"
      option: "OutputFile"
      required: true
    - option: "Target"
      required: true
      is_positional: true
`
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "whatweb.yaml"), []byte(configYAML), 0644))
	t.Setenv("WEBPRINT_CONFIG_PATH", configDir)

	cfg, err := LoadDriverConfig("whatweb")
	require.NoError(t, err)

	assert.Equal(t, "test fingerprinting tool", cfg.Description)
	assert.Equal(t, "whatweb", cfg.Tool.Command)
	require.Len(t, cfg.Tool.Flags, 2)
	assert.Equal(t, "--log-json", cfg.Tool.Flags[0].Flag)
	assert.True(t, cfg.Tool.Flags[1].IsPositional)
}

func TestLoadDriverConfig_MissingCommand(t *testing.T) {
	configDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "broken.yaml"),
		[]byte("description: no tool section\n"), 0644))
	t.Setenv("WEBPRINT_CONFIG_PATH", configDir)

	_, err := LoadDriverConfig("broken")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tool command not set")
}

func TestLoadDriverConfig_NotFound(t *testing.T) {
	t.Setenv("WEBPRINT_CONFIG_PATH", t.TempDir())

	_, err := LoadDriverConfig("nonexistent")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestEnsureDirectoryExists(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "scans")

	require.NoError(t, EnsureDirectoryExists(dir))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// Idempotent on an existing directory
	require.NoError(t, EnsureDirectoryExists(dir))
}
