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
	store, err := Load(t.TempDir())
	require.NoError(t, err)

	cfg := store.Get()
	assert.Equal(t, "helpdesk", cfg.App.Name)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, time.Minute, cfg.Redis.SnapshotTTL)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	content := []byte(`
server:
  port: 9090
database:
  name: helpdesk_test
auth:
  jwt_secret: unit-test-secret
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), content, 0o644))

	store, err := Load(dir)
	require.NoError(t, err)

	cfg := store.Get()
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "helpdesk_test", cfg.Database.Name)
	assert.Equal(t, "unit-test-secret", cfg.Auth.JWTSecret)
	// Unset keys fall back to defaults.
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
}

func TestDatabaseDSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", Name: "n", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=n sslmode=disable", d.DSN())
}
