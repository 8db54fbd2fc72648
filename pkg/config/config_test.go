package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("JWT_EXPIRY", "")
	t.Setenv("FRONTEND_URL", "http://front.example/")
	t.Setenv("GOOGLE_CLIENT_ID", "")

	cfg := Load()

	assert.Equal(t, defaultJWTSecret, cfg.JWTSecret)
	assert.Equal(t, 30*24*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, "http://front.example", cfg.FrontendURL)
	assert.False(t, cfg.Google.Enabled())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_EXPIRY", "2h")
	t.Setenv("LOGIN_RATE_LIMIT", "3")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("FACEBOOK_CLIENT_ID", "fb-id")
	t.Setenv("FACEBOOK_CLIENT_SECRET", "fb-secret")

	cfg := Load()

	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, 2*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, 3, cfg.LoginRateLimit)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	assert.True(t, cfg.Facebook.Enabled())
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("BCRYPT_COST", "lots")
	t.Setenv("LOGIN_RATE_WINDOW", "soon")

	cfg := Load()

	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, time.Minute, cfg.LoginRateWindow)
}

func TestValidate(t *testing.T) {
	base := Config{Env: "production", JWTSecret: "x", JWTExpiry: time.Hour, DatabaseURL: "dsn"}
	require.NoError(t, base.Validate())

	defaultSecret := base
	defaultSecret.JWTSecret = defaultJWTSecret
	assert.Error(t, defaultSecret.Validate())

	defaultSecret.Env = "development"
	assert.NoError(t, defaultSecret.Validate())

	noExpiry := base
	noExpiry.JWTExpiry = 0
	assert.Error(t, noExpiry.Validate())

	noDB := base
	noDB.DatabaseURL = ""
	assert.Error(t, noDB.Validate())
}
