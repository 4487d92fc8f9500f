package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePaths_Default(t *testing.T) {
	t.Setenv("AGENTDEX_HOME", "")

	paths, err := ResolvePaths()
	require.NoError(t, err)
	assert.Contains(t, paths.Base, defaultBaseDir)
	assert.Equal(t, filepath.Join(paths.Base, "config.yaml"), paths.Config)
	assert.Equal(t, filepath.Join(paths.Base, "catalog.md"), paths.Catalog)
}

func TestResolvePaths_HomeOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("AGENTDEX_HOME", dir)

	paths, err := ResolvePaths()
	require.NoError(t, err)
	assert.Equal(t, dir, paths.Base)
}

func TestEnsureDirs(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("AGENTDEX_HOME", filepath.Join(dir, "home"))

	paths, err := ResolvePaths()
	require.NoError(t, err)
	require.NoError(t, paths.EnsureDirs())

	assert.DirExists(t, paths.Base)
	assert.DirExists(t, paths.Logs)
}

func TestParseConfigPath(t *testing.T) {
	path, err := ParseConfigPath("server.auth.mode")
	require.NoError(t, err)
	assert.Equal(t, []string{"server", "auth", "mode"}, path)
}

func TestParseConfigPath_Errors(t *testing.T) {
	for _, raw := range []string{"", "server..port", "__proto__.x"} {
		t.Run(raw, func(t *testing.T) {
			_, err := ParseConfigPath(raw)
			assert.Error(t, err)
		})
	}
}

func TestGetSetUnsetValueAtPath(t *testing.T) {
	root := map[string]any{}

	SetValueAtPath(root, []string{"server", "port"}, 9000)
	val, ok := GetValueAtPath(root, []string{"server", "port"})
	require.True(t, ok)
	assert.Equal(t, 9000, val)

	_, ok = GetValueAtPath(root, []string{"server", "bind"})
	assert.False(t, ok)

	assert.True(t, UnsetValueAtPath(root, []string{"server", "port"}))
	assert.False(t, UnsetValueAtPath(root, []string{"server", "port"}))
}
