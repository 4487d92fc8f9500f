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
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	assert.Equal(t, "table", cfg.Catalog.Format)
	assert.Equal(t, 18790, cfg.Server.Port)
	assert.Equal(t, "loopback", cfg.Server.Bind)
	assert.Equal(t, "token", cfg.Server.Auth.Mode)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "pretty", cfg.Logging.ConsoleStyle)
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

func TestLoad_Basic(t *testing.T) {
	path := writeConfig(t, `
catalog:
  path: /tmp/agents.md
server:
  port: 9000
  bind: lan
logging:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/agents.md", cfg.Catalog.Path)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "lan", cfg.Server.Bind)
	assert.Equal(t, "debug", cfg.Logging.Level)
	// Unset fields still get defaults
	assert.Equal(t, "table", cfg.Catalog.Format)
	assert.Equal(t, "token", cfg.Server.Auth.Mode)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "catalog: [unclosed")

	_, err := Load(path)
	require.Error(t, err)
	var cfgErr *ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("AGENTDEX_SERVER_PORT", "12345")
	t.Setenv("AGENTDEX_LOG_LEVEL", "WARN")
	t.Setenv("AGENTDEX_CATALOG_PATH", "/data/catalog.md")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 12345, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "/data/catalog.md", cfg.Catalog.Path)
}

func TestLoad_ExpandsAuthSecrets(t *testing.T) {
	t.Setenv("MY_TOKEN", "secret-123")
	path := writeConfig(t, `
server:
  auth:
    mode: token
    token: ${MY_TOKEN}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "secret-123", cfg.Server.Auth.Token)
}

func TestExpandEnvVars_UnsetLeftAlone(t *testing.T) {
	assert.Equal(t, "${DEFINITELY_NOT_SET_XYZ}", expandEnvVars("${DEFINITELY_NOT_SET_XYZ}"))
}

func TestLoadRawSaveRaw_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	raw := map[string]any{
		"server": map[string]any{"port": 9000},
	}
	require.NoError(t, SaveRaw(path, raw))

	loaded, err := LoadRaw(path)
	require.NoError(t, err)
	val, ok := GetValueAtPath(loaded, []string{"server", "port"})
	require.True(t, ok)
	assert.Equal(t, 9000, val)
}
