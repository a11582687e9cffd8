package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_FileAndEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	yaml := `
server:
  addr: ":9000"
  read_timeout: 5s
  query_cache_ttl: 0s
  allowed_origins:
    - https://dash.example.com
store:
  driver: postgres
database:
  host: db.internal
  port: 6543
state:
  driver: sqlite
  path: /var/lib/clientdesk/state.db
features:
  beta_filters: true
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))
	t.Setenv("CLIENTDESK_DATABASE_PASSWORD", "s3cret")
	t.Setenv("CLIENTDESK_CLIENT_TIMEOUT", "3s")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 15*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, []string{"https://dash.example.com"}, cfg.Server.AllowedOrigins)
	assert.Zero(t, cfg.Server.QueryCacheTTL)
	assert.Equal(t, StorePostgres, cfg.Store.Driver)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.Equal(t, "s3cret", cfg.Database.Password)
	assert.Equal(t, "clientdesk", cfg.Database.DBName)
	assert.Equal(t, "sqlite", cfg.State.Driver)
	assert.True(t, cfg.Features.BetaFilters)
	assert.Equal(t, 3*time.Second, cfg.Client.Timeout)
}

func TestLoad_RejectsUnknownDrivers(t *testing.T) {
	t.Setenv("CLIENTDESK_STORE_DRIVER", "mongo")
	_, err := Load(t.TempDir())
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.State = StateConfig{Driver: "file"}
	assert.Error(t, cfg.Validate())

	cfg.State = StateConfig{Driver: "memory"}
	assert.NoError(t, cfg.Validate())
}

func TestLoadDBConfig(t *testing.T) {
	t.Setenv("CLIENTDESK_DATABASE_SSLMODE", "require")
	cfg, err := LoadDBConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "require", cfg.SSLMode)
	assert.Equal(t, "localhost", cfg.Host)
}
