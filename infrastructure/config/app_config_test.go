package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadAppConfigFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{
		"HTTP_ADDR", "DB_PATH", "DB_MAX_OPEN_CONNS", "DB_CONN_MAX_LIFETIME",
		"DB_BUSY_TIMEOUT_MS", "DB_ENABLE_FOREIGN_KEYS", "DB_ENABLE_WAL",
		"LOG_LEVEL", "LOG_FORMAT", "LOG_OUTPUT",
	} {
		t.Setenv(key, "")
	}

	cfg := LoadAppConfigFromEnv()

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "./spscan.db", cfg.Database.Path)
	assert.Equal(t, 10, cfg.Database.MaxOpenConns)
	assert.Equal(t, time.Hour, cfg.Database.ConnMaxLifetime)
	assert.Equal(t, 5000, cfg.Database.BusyTimeoutMs)
	assert.True(t, cfg.Database.EnableForeignKeys)
	assert.True(t, cfg.Database.EnableWAL)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "stderr", cfg.Logging.Output)
}

func TestLoadAppConfigFromEnv_Overrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("DB_PATH", "/var/lib/spscan/history.db")
	t.Setenv("DB_MAX_OPEN_CONNS", "2")
	t.Setenv("DB_CONN_MAX_LIFETIME", "30m")
	t.Setenv("DB_ENABLE_WAL", "off")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")

	cfg := LoadAppConfigFromEnv()

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "/var/lib/spscan/history.db", cfg.Database.Path)
	assert.Equal(t, 2, cfg.Database.MaxOpenConns)
	assert.Equal(t, 30*time.Minute, cfg.Database.ConnMaxLifetime)
	assert.False(t, cfg.Database.EnableWAL)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestLoadAppConfigFromEnv_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("DB_MAX_OPEN_CONNS", "not-a-number")
	t.Setenv("DB_CONN_MAX_LIFETIME", "soon")
	t.Setenv("DB_ENABLE_WAL", "maybe")

	cfg := LoadAppConfigFromEnv()

	assert.Equal(t, 10, cfg.Database.MaxOpenConns)
	assert.Equal(t, time.Hour, cfg.Database.ConnMaxLifetime)
	assert.True(t, cfg.Database.EnableWAL)
}

func TestParseBool(t *testing.T) {
	assert.True(t, parseBool("yes", false))
	assert.True(t, parseBool("1", false))
	assert.True(t, parseBool("ON", false))
	assert.False(t, parseBool("no", true))
	assert.False(t, parseBool("0", true))
	assert.True(t, parseBool("garbage", true))
	assert.False(t, parseBool("garbage", false))
}
