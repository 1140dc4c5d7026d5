package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromMap_Defaults(t *testing.T) {
	cfg, err := LoadFromMap(map[string]string{
		"SESSION_SECRET": "test-secret",
	})
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "litboard", cfg.Database.Postgres.Database)
	assert.Equal(t, "localhost:6379", cfg.Redis.Address)
	assert.Equal(t, "qid", cfg.Session.CookieName)
	assert.Equal(t, 720*time.Hour, cfg.Session.TTL)
	assert.Equal(t, 72*time.Hour, cfg.Session.ResetTokenTTL)
	assert.False(t, cfg.Session.Secure)
	assert.Equal(t, "http://localhost:3000", cfg.App.WebDomain)
}

func TestLoadFromMap_Overrides(t *testing.T) {
	cfg, err := LoadFromMap(map[string]string{
		"SESSION_SECRET":      "test-secret",
		"SERVER_PORT":         "9090",
		"SESSION_COOKIE_NAME": "sid",
		"SESSION_TTL":         "24h",
		"SESSION_SECURE":      "true",
		"WEB_DOMAIN":          "https://litboard.dev",
	})
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "sid", cfg.Session.CookieName)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.True(t, cfg.Session.Secure)
	assert.Equal(t, "https://litboard.dev", cfg.App.WebDomain)
}

func TestLoadFromMap_MissingSecret(t *testing.T) {
	_, err := LoadFromMap(map[string]string{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SESSION_SECRET is required")
}

func TestLoadFromMap_InvalidValuesFallBack(t *testing.T) {
	cfg, err := LoadFromMap(map[string]string{
		"SESSION_SECRET": "test-secret",
		"SERVER_PORT":    "not-a-number",
		"SESSION_TTL":    "garbage",
	})
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 720*time.Hour, cfg.Session.TTL)
}
