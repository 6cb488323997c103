package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "DB_PATH", "JWT_EXPIRES_DAYS", "NODE_ENV", "COOKIE_NAME", "SESSION_IDLE_MINUTES"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	assert.Equal(t, "5175", cfg.Port)
	assert.Equal(t, "./data/freecell.db", cfg.DBPath)
	assert.Equal(t, 14*24*time.Hour, cfg.JWTExpiry)
	assert.Equal(t, "freecell_token", cfg.CookieName)
	assert.Equal(t, 2*time.Hour, cfg.SessionIdle)
	assert.False(t, cfg.Production)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("JWT_EXPIRES_DAYS", "3")
	t.Setenv("NODE_ENV", "production")
	t.Setenv("DAILY_SALT", "pepper")
	t.Setenv("SESSION_IDLE_MINUTES", "30")

	cfg := Load()
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 3*24*time.Hour, cfg.JWTExpiry)
	assert.True(t, cfg.Production)
	assert.Equal(t, "pepper", cfg.DailySalt)
	assert.Equal(t, 30*time.Minute, cfg.SessionIdle)
}

func TestLoad_InvalidExpiryFallsBack(t *testing.T) {
	t.Setenv("JWT_EXPIRES_DAYS", "soon")
	assert.Equal(t, 14*24*time.Hour, Load().JWTExpiry)
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("FREECELL_TEST_VALUE=from-dotenv\n"), 0o600))
	t.Setenv("FREECELL_TEST_VALUE", "")
	require.NoError(t, os.Unsetenv("FREECELL_TEST_VALUE"))

	LoadDotEnv(path)
	assert.Equal(t, "from-dotenv", os.Getenv("FREECELL_TEST_VALUE"))
}
