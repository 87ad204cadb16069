package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "4000", cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "conomy", cfg.MongoDB.Database)
	assert.Equal(t, 24*time.Hour, cfg.JWT.TTL())
	assert.Equal(t, "info", cfg.LogLevel)
	require.Len(t, cfg.Products, 4)
	assert.Equal(t, "starter", cfg.Products[0].ID)
	assert.Equal(t, int64(20000), cfg.Products[0].Price)
	assert.Equal(t, 30, cfg.Products[0].CycleDays)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("MONGODB_DATABASE", "conomy_test")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("SERVER_ALLOWEDORIGINS", "https://a.example,https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "conomy_test", cfg.MongoDB.Database)
	assert.Equal(t, "s3cret", cfg.JWT.Secret)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, t.TempDir())
	yaml := `
logLevel: debug
products:
  - id: basic
    name: Basic
    price: 5000
    cycleDays: 10
    dailyIncome: 600
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	require.Len(t, cfg.Products, 1)
	assert.Equal(t, "basic", cfg.Products[0].ID)
	assert.Equal(t, int64(6000), cfg.Products[0].TotalIncome())
}

func TestLoadReconcileSettings(t *testing.T) {
	dir := t.TempDir()
	chdir(t, t.TempDir())
	yaml := `
mongodb:
  uri: mongodb://db.internal:27017/?replicaSet=rs0
reconcile:
  timeout: 90s
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))
	t.Setenv("MONGODB_DATABASE", "conomy_reconcile")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "mongodb://db.internal:27017/?replicaSet=rs0", cfg.MongoDB.URI)
	assert.Equal(t, "conomy_reconcile", cfg.MongoDB.Database)
	assert.Equal(t, 90*time.Second, cfg.Reconcile.Timeout)

	t.Setenv("RECONCILE_TIMEOUT", "2m")
	cfg, err = Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 2*time.Minute, cfg.Reconcile.Timeout)
}

func TestLoadTrustedProxiesAndLimiterIdle(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.Server.TrustedProxies)
	assert.Equal(t, 10*time.Minute, cfg.RateLimit.IdleTimeout)

	t.Setenv("SERVER_TRUSTEDPROXIES", "10.0.0.0/8,192.168.1.1")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.0/8", "192.168.1.1"}, cfg.Server.TrustedProxies)
}

// chdir moves into dir for the duration of the test so no config.yaml from
// the working tree is picked up.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
