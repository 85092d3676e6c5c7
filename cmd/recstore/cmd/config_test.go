package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ssargent/recstore/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recstore", "config.yaml")

	out, err := executeCommand(t, "config", "init", "--path", path, "--report", "/tmp/out.txt")
	require.NoError(t, err)
	assert.Equal(t, "Configuration written to "+path+"\n", out)

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/out.txt", cfg.Report.Path)
	assert.Equal(t, config.DefaultCeilingBytes, cfg.Store.CeilingBytes)
}

func TestConfigInit_RefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	_, err := executeCommand(t, "config", "init", "--path", path)
	require.NoError(t, err)

	_, err = executeCommand(t, "config", "init", "--path", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = executeCommand(t, "config", "init", "--path", path, "--force")
	assert.NoError(t, err)
}

func TestConfigShow(t *testing.T) {
	configPath := writeFile(t, "config.yaml", "store:\n  growth: doubling\n")

	out, err := executeCommand(t, "--config", configPath, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "growth: doubling")
	assert.Contains(t, out, "ceiling_bytes: 104857600")
	// --log-level from executeCommand is applied on top of the file
	assert.Contains(t, out, "level: error")
}

func TestInvalidLogLevel(t *testing.T) {
	_, err := executeCommand(t, "--log-level", "loud", "config", "show")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestConfigInit_ForceRepairsBrokenDefaultConfig(t *testing.T) {
	home := t.TempDir()
	path := filepath.Join(home, ".config", "recstore", "config.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0750))
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: loud\n"), 0600))

	// Commands that read the config refuse the broken file
	_, err := executeCommandWithHome(t, home, "config", "show")
	require.Error(t, err)

	out, err := executeCommandWithHome(t, home, "config", "init", "--force")
	require.NoError(t, err)
	assert.Equal(t, "Configuration written to "+path+"\n", out)

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Logging.Level)

	_, err = executeCommandWithHome(t, home, "config", "show")
	assert.NoError(t, err)
}

func TestConfigInit_IgnoresBrokenConfigFlag(t *testing.T) {
	path := writeFile(t, "config.yaml", "store:\n  growth: sideways\n")

	_, err := executeCommand(t, "--config", path, "config", "init", "--path", path, "--force")
	require.NoError(t, err)

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "exact", cfg.Store.Growth)
}
