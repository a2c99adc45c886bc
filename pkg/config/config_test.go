package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Server.MaxLimit = 0
	cfg.Server.MinPrefix = 5
	cfg.Server.MaxPrefix = 2
	cfg.Cache.MaxPrefixes = 0

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.max_limit")
	assert.Contains(t, err.Error(), "server.max_prefix")
	assert.Contains(t, err.Error(), "cache.max_prefixes")

	cfg.Cache.Enabled = false
	cfg.Server.MaxLimit = 10
	cfg.Server.MaxPrefix = 10
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
[server]
max_limit = 12

[dict]
dir = "/srv/words"
min_score = 40

[cache]
enabled = false
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Server.MaxLimit)
	assert.Equal(t, 60, cfg.Server.MaxPrefix, "unset keys keep defaults")
	assert.Equal(t, "/srv/words", cfg.Dict.Dir)
	assert.Equal(t, int64(40), cfg.Dict.MinScore)
	assert.False(t, cfg.Cache.Enabled)
}

func TestLoadConfigPartialRecovery(t *testing.T) {
	path := writeConfig(t, `
[server]
max_limit = "lots"
max_prefix = 30

[cli]
default_limit = 5
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.Server.MaxLimit, "bad type falls back to default")
	assert.Equal(t, 30, cfg.Server.MaxPrefix)
	assert.Equal(t, 5, cfg.CLI.DefaultLimit)
}

func TestLoadConfigSyntaxError(t *testing.T) {
	path := writeConfig(t, "[server\nmax_limit = 3")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigInvalidValues(t *testing.T) {
	path := writeConfig(t, "[server]\nmax_limit = -1\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestInitConfigCreatesDefaultFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg, err := InitConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.FileExists(t, path)

	again, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}

func TestLoadConfigWithPriorityCustomPath(t *testing.T) {
	path := writeConfig(t, "[cli]\ndefault_limit = 3\n")

	cfg, used, err := LoadConfigWithPriority(path)
	require.NoError(t, err)
	assert.Equal(t, path, used)
	assert.Equal(t, 3, cfg.CLI.DefaultLimit)
}
