package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAppConfig_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "secret")

	cfg, warnings, err := LoadAppConfig()
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, "5000", cfg.ServerPort)
	assert.Equal(t, int64(720), cfg.JWTExpirationHours)
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
	assert.Equal(t, 2*time.Second, cfg.ChatReplyDelay)
	assert.Equal(t, int64(5), cfg.LoginMaxAttempts)
	assert.Equal(t, 15*time.Minute, cfg.LoginWindow)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.TracingEnabled)
	assert.False(t, cfg.SeedDemoData)
	assert.False(t, cfg.IsProduction())
}

func TestLoadAppConfig_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "")

	_, _, err := LoadAppConfig()
	assert.Error(t, err)
}

func TestLoadAppConfig_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("JWT_EXPIRATION_HOURS", "abc")
	t.Setenv("CHAT_REPLY_DELAY", "soon")
	t.Setenv("LOGIN_WINDOW", "-1m")

	cfg, warnings, err := LoadAppConfig()
	require.NoError(t, err)
	assert.Len(t, warnings, 3)
	assert.Equal(t, int64(720), cfg.JWTExpirationHours)
	assert.Equal(t, 2*time.Second, cfg.ChatReplyDelay)
	assert.Equal(t, 15*time.Minute, cfg.LoginWindow)
}

func TestLoadAppConfig_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("APP_ENV", "production")
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("SEED_DEMO_DATA", "true")

	cfg, _, err := LoadAppConfig()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.SeedDemoData)
}

func TestLoadDBConfig(t *testing.T) {
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_USER", "krishi")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("DB_NAME", "krishiconnect")

	cfg, err := LoadDBConfig()
	require.NoError(t, err)
	assert.Equal(t, "host=localhost port=5432 user=krishi password=pw dbname=krishiconnect sslmode=disable", cfg.DSN)
}

func TestLoadDBConfig_Missing(t *testing.T) {
	t.Setenv("DB_HOST", "")

	_, err := LoadDBConfig()
	assert.Error(t, err)
}
