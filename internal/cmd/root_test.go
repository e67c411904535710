package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/findex/internal/config"
)

// isolate keeps config, .env and environment from leaking into a test
func isolate(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	for _, key := range []string{config.EnvDBPath, config.EnvModelPath, config.EnvLogLevel, config.EnvTopK, config.EnvWorkers, config.EnvCacheSize, config.EnvNoColor} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

// runCommand executes the root command with args and returns stdout
func runCommand(t *testing.T, args ...string) (string, error) {
	root := NewRootCommand()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), err
}

func TestRootCommand_Subcommands(t *testing.T) {
	root := NewRootCommand()

	names := []string{}
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"index", "search", "similar", "status", "serve"} {
		assert.Contains(t, names, want)
	}

	for _, flag := range []string{"config", "db", "model", "log-level", "no-color"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(flag), flag)
	}
}

func TestRootCommand_Version(t *testing.T) {
	isolate(t)

	out, err := runCommand(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, Version)
}

func TestRootCommand_InvalidLogLevel(t *testing.T) {
	isolate(t)

	_, err := runCommand(t, "status", "--db", filepath.Join(t.TempDir(), "c.db"), "--log-level", "loud")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log_level")
}

func TestRootCommand_ConfigFile(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "from-config.db")
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("db_path: "+dbPath+"\n"), 0644))

	out, err := runCommand(t, "status", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, dbPath)

	_, err = os.Stat(dbPath)
	assert.NoError(t, err, "catalog should be created at the configured path")
}

func TestRootCommand_DBFlagBeatsEnv(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	t.Setenv(config.EnvDBPath, filepath.Join(dir, "env.db"))
	flagDB := filepath.Join(dir, "flag.db")

	out, err := runCommand(t, "status", "--db", flagDB)
	require.NoError(t, err)
	assert.True(t, strings.Contains(out, flagDB), out)
}
