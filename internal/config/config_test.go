package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CLIENT_SESSION_STORE", "")
	t.Setenv("CLIENT_TIMEOUT_SECONDS", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	assert.Equal(t, "file", cfg.Client.SessionStore)
	assert.Equal(t, 30*time.Second, cfg.Client.Timeout())
	assert.Equal(t, "@swift_app", cfg.Client.SessionNS)
	assert.Equal(t, 7*24*time.Hour, cfg.Scheduler.InvitationTTL())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("CLIENT_USE_MOCK", "true")
	t.Setenv("CLIENT_MOCK_DELAY_MS", "0")
	t.Setenv("CLIENT_SESSION_STORE", "REDIS")
	t.Setenv("INVITATION_EXPIRY_INTERVAL_MINUTES", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.True(t, cfg.Client.UseMock)
	assert.Zero(t, cfg.Client.MockDelay())
	assert.Equal(t, "redis", cfg.Client.SessionStore)
	assert.Equal(t, 15*time.Minute, cfg.Scheduler.ExpiryInterval())
}

func TestLoadRejectsUnknownSessionStore(t *testing.T) {
	t.Setenv("CLIENT_SESSION_STORE", "keychain")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CLIENT_SESSION_STORE")
}

func TestLoadRejectsBadRedisDB(t *testing.T) {
	t.Setenv("REDIS_DB", "one")

	_, err := Load()
	require.Error(t, err)
}
