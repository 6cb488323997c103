// internal/config/config.go
//
// Environment configuration for the Freecell server.
// Values come from the process environment; main loads a .env file first
// through godotenv so development setups need no exported variables.
//
// Environment variables:
//   PORT             listen port (default 5175)
//   LOG_LEVEL        zerolog level name (default info)
//   DB_PATH          SQLite file (default ./data/freecell.db)
//   JWT_SECRET       HS256 signing secret (default dev_secret_change_me)
//   JWT_EXPIRES_DAYS token lifetime in days (default 14)
//   COOKIE_NAME      auth cookie name (default freecell_token)
//   CLIENT_ORIGIN    CORS origin (default http://localhost:5173)
//   DAILY_SALT       daily deal HMAC salt (default local_dev_salt)
//   SESSION_IDLE_MINUTES  drop live games unused this long (default 120)
//   NODE_ENV         "production" enables Secure cookies

package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Port         string
	LogLevel     string
	DBPath       string
	JWTSecret    string
	JWTExpiry    time.Duration
	CookieName   string
	ClientOrigin string
	DailySalt    string
	SessionIdle  time.Duration
	Production   bool
}

// Load reads the configuration from the environment.
func Load() Config {
	days := 14
	if v := os.Getenv("JWT_EXPIRES_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			days = n
		} else {
			log.Warn().Str("JWT_EXPIRES_DAYS", v).Msg("ignoring invalid value")
		}
	}
	idle := 120
	if v := os.Getenv("SESSION_IDLE_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			idle = n
		} else {
			log.Warn().Str("SESSION_IDLE_MINUTES", v).Msg("ignoring invalid value")
		}
	}
	return Config{
		Port:         getEnv("PORT", "5175"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		DBPath:       getEnv("DB_PATH", "./data/freecell.db"),
		JWTSecret:    getEnv("JWT_SECRET", "dev_secret_change_me"),
		JWTExpiry:    time.Duration(days) * 24 * time.Hour,
		CookieName:   getEnv("COOKIE_NAME", "freecell_token"),
		ClientOrigin: getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		DailySalt:    getEnv("DAILY_SALT", "local_dev_salt"),
		SessionIdle:  time.Duration(idle) * time.Minute,
		Production:   os.Getenv("NODE_ENV") == "production",
	}
}

// LoadDotEnv loads .env files into the environment. Missing files are fine.
func LoadDotEnv(files ...string) {
	_ = godotenv.Load(files...)
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
