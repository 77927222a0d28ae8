package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, "development", cfg.AppEnv)
	require.Equal(t, ":8080", cfg.AppAddr)
	require.Equal(t, 30*time.Second, cfg.AppRequestTimeout)
	require.Equal(t, BackendRedis, cfg.StorageBackend)
	require.Equal(t, "data/invoices.json", cfg.SnapshotFile)
	require.Equal(t, "127.0.0.1:6379", cfg.RedisAddr)
	require.False(t, cfg.IsProduction())
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("STORAGE_BACKEND", "file")
	t.Setenv("SNAPSHOT_FILE", "/var/lib/dashboard/invoices.json")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.True(t, cfg.IsProduction())
	require.Equal(t, BackendFile, cfg.StorageBackend)
	require.Equal(t, "/var/lib/dashboard/invoices.json", cfg.SnapshotFile)
}

func TestLoadConfigRejectsUnknownBackend(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "sqlite")

	_, err := LoadConfig()
	require.Error(t, err)
}
