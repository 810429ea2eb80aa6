package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ".notenav", filepath.Base(cfg.Store.DataDir))
	assert.True(t, cfg.Store.SeedBuiltins)
	assert.Equal(t, 1000, cfg.Query.MaxResults)
	assert.False(t, cfg.Log.JSON)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notenav.toml")
	content := `
[store]
data_dir = "` + filepath.ToSlash(dir) + `/graph"
seed_builtins = false

[query]
max_results = 25

[log]
level = "debug"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "graph"), filepath.Clean(cfg.Store.DataDir))
	assert.False(t, cfg.Store.SeedBuiltins)
	assert.Equal(t, 25, cfg.Query.MaxResults)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.False(t, cfg.Log.JSON)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notenav.toml")
	require.NoError(t, os.WriteFile(path, []byte("[query]\nmax_results = 25\n"), 0o600))

	t.Setenv("NOTENAV_QUERY_MAX_RESULTS", "7")
	t.Setenv("NOTENAV_LOG_JSON", "true")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Query.MaxResults)
	assert.True(t, cfg.Log.JSON)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("NOTENAV_QUERY_MAX_RESULTS", "-1")
	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_results")
}

func TestLoad_ExpandsHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("NOTENAV_STORE_DATA_DIR", "~/graphs")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "graphs"), cfg.Store.DataDir)
	assert.Equal(t, cfg.Store.DataDir, cfg.StoreConfig().DataDir)
}

func TestValidate(t *testing.T) {
	cfg := &Config{Store: StoreConfig{DataDir: " "}}
	assert.Error(t, cfg.Validate())

	cfg = &Config{Store: StoreConfig{DataDir: "/tmp/x"}, Query: QueryConfig{MaxResults: 0}}
	assert.NoError(t, cfg.Validate())
}
