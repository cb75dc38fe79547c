package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"SERVER_PORT", "DB_DRIVER", "REDIS_ADDR", "CACHE_TTL_SECONDS", "CORS_ALLOWED_ORIGINS", "CLASS_RETENTION_DAYS"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.ServerPort)
	assert.Equal(t, ":8000", cfg.Addr())
	assert.Equal(t, "postgres", cfg.DB.Driver)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Equal(t, time.Minute, cfg.CacheTTL)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.Zero(t, cfg.ClassRetentionDays)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("CLASS_RETENTION_DAYS", "30")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 30, cfg.ClassRetentionDays)
}

func TestLoadInvalidInteger(t *testing.T) {
	t.Setenv("SERVER_PORT", "eighty")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid SERVER_PORT")
}

func TestLoadDotEnvSkippedWhenFlagSet(t *testing.T) {
	t.Setenv("ENV_CHEK", "1")

	loaded, err := LoadDotEnv("does-not-exist.env")
	require.NoError(t, err)
	assert.False(t, loaded)
}

func TestLoadDotEnvMissingFile(t *testing.T) {
	t.Setenv("ENV_CHEK", "")

	loaded, err := LoadDotEnv(t.TempDir() + "/missing.env")
	require.NoError(t, err)
	assert.False(t, loaded)
}
