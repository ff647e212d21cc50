package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "identity-service", cfg.App.Name)
	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	assert.Equal(t, 60, cfg.Auth.TokenTTLMinutes)
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL())
	assert.Equal(t, 10, cfg.Auth.LoginAttemptLimit)
	assert.Equal(t, 5*time.Minute, cfg.Auth.LoginWindow())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("AUTH_TOKEN_TTL_MINUTES", "15")
	t.Setenv("APP_PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0123456789abcdef0123456789abcdef", cfg.Auth.JWTSecret)
	assert.Equal(t, 15*time.Minute, cfg.Auth.TokenTTL())
	assert.Equal(t, "9090", cfg.App.Port)
}

func TestTTLFallbacks(t *testing.T) {
	auth := AuthConfig{TokenTTLMinutes: 0, LoginWindowSeconds: 0}
	assert.Equal(t, time.Hour, auth.TokenTTL())
	assert.Equal(t, 5*time.Minute, auth.LoginWindow())
}
