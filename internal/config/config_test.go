package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"DATABASE_URL", "API_PORT", "PORT", "LOG_LEVEL", "CORS_ALLOW_ORIGINS",
		"RATE_LIMIT_ENABLED", "MAINTENANCE_INTERVAL_MINUTES", "REDIS_URL", "MAX_UPLOAD_MB"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "cogscore.db", cfg.DatabaseURL)
	assert.False(t, cfg.IsPostgres())
	assert.Equal(t, "cogscore.db", cfg.SQLitePath())
	assert.Equal(t, 8000, cfg.APIPort)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.True(t, cfg.RateLimitEnabled)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
	assert.Equal(t, 30*time.Minute, cfg.MaintenanceInterval)
	assert.Equal(t, 16, cfg.MaxUploadMB)
	assert.Len(t, cfg.CORSAllowOrigins, 3)
	assert.Empty(t, cfg.RedisURL)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://user@localhost/cogscore")
	t.Setenv("API_PORT", "")
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CORS_ALLOW_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	t.Setenv("MAINTENANCE_INTERVAL_MINUTES", "0")
	t.Setenv("ENVIRONMENT", "production")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsPostgres())
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 9090, cfg.APIPort)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowOrigins)
	assert.False(t, cfg.RateLimitEnabled)
	assert.Zero(t, cfg.MaintenanceInterval)
}

func TestEnvHelpersFallBackOnGarbage(t *testing.T) {
	t.Setenv("X_INT", "ten")
	t.Setenv("X_BOOL", "maybe")
	t.Setenv("X_LEVEL", "loud")
	t.Setenv("X_LIST", " , ")

	assert.Equal(t, 7, envInt("X_INT", 7))
	assert.True(t, envBool("X_BOOL", true))
	assert.Equal(t, slog.LevelWarn, envLevel("X_LEVEL", slog.LevelWarn))
	assert.Equal(t, []string{"z"}, envList("X_LIST", []string{"z"}))
	assert.Equal(t, "fallback", envOr("X_MISSING_KEY_FOR_TEST", "fallback"))
}

func TestSQLitePathStripsScheme(t *testing.T) {
	cfg := &Config{DatabaseURL: "sqlite:///var/lib/cogscore.db"}
	assert.Equal(t, "/var/lib/cogscore.db", cfg.SQLitePath())
}
