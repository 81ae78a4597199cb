package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsAreValid(t *testing.T) {
	cfg := Defaults()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "serve", cfg.Mode)
	assert.Equal(t, "memory", cfg.Cache.Backend)
}

func TestLoadMergesFileOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
mode = "loop"
log_level = "debug"

[ledger]
base_url = "https://ledger.example.com"

[providers]
odds_api_key = "k123"

[reconcile]
loop_interval = "90s"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "loop", cfg.Mode)
	assert.Equal(t, "https://ledger.example.com", cfg.Ledger.BaseURL)
	assert.Equal(t, "k123", cfg.Providers.OddsAPIKey)
	assert.Equal(t, 90*time.Second, cfg.Reconcile.LoopInterval.Duration)
	// Untouched sections keep their defaults.
	assert.Equal(t, "https://site.api.espn.com", cfg.Providers.ESPNBaseURL)
	assert.Equal(t, 8000, cfg.Server.Port)
}

func TestEnvOverridesWinOverFile(t *testing.T) {
	t.Setenv("SPORTSETTLE_MODE", "once")
	t.Setenv("SPORTSETTLE_ODDS_API_KEY", "env-key")
	t.Setenv("SPORTSETTLE_CACHE_BACKEND", "redis")
	t.Setenv("SPORTSETTLE_REDIS_ADDR", "redis.internal:6379")
	t.Setenv("SPORTSETTLE_SERVER_PORT", "9001")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "once", cfg.Mode)
	assert.Equal(t, "env-key", cfg.Providers.OddsAPIKey)
	assert.Equal(t, "redis", cfg.Cache.Backend)
	assert.Equal(t, "redis.internal:6379", cfg.Cache.Redis.Addr)
	assert.Equal(t, 9001, cfg.Server.Port)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := Defaults()
	cfg.Mode = "turbo"
	cfg.Cache.Backend = "memcached"
	cfg.Ledger.BaseURL = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown mode")
	assert.Contains(t, err.Error(), "unknown backend")
	assert.Contains(t, err.Error(), "base_url")
}

func TestValidateLoopNeedsInterval(t *testing.T) {
	cfg := Defaults()
	cfg.Mode = "loop"
	cfg.Reconcile.LoopInterval.Duration = 0
	require.Error(t, cfg.Validate())

	cfg.Reconcile.LoopInterval.Duration = time.Minute
	require.NoError(t, cfg.Validate())
}

func TestValidatePostgresWhenEnabled(t *testing.T) {
	cfg := Defaults()
	cfg.Postgres.Enabled = true
	err := cfg.Validate()
	require.Error(t, err, "enabled postgres without host or dsn must fail")

	cfg.Postgres.DSN = "postgres://u:p@localhost:5432/runs"
	require.NoError(t, cfg.Validate())
}
