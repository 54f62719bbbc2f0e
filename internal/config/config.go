// Package config reads server settings from the environment.
// main loads .env (godotenv) before calling Load.
package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port         string
	LogLevel     string
	LogFormat    string // "json" or "console"
	DBPath       string
	WordsFile    string // empty → embedded dictionary
	WordLength   int    // default length for new games
	JWTSecret    string
	JWTTTL       time.Duration
	CookieName   string
	ClientOrigin string
	DailySalt    string
	SessionTTL   time.Duration
	Production   bool
}

func Load() Config {
	return Config{
		Port:         envStr("PORT", "5175"),
		LogLevel:     envStr("LOG_LEVEL", "info"),
		LogFormat:    envStr("LOG_FORMAT", "json"),
		DBPath:       envStr("DB_PATH", "./data/absurdle.db"),
		WordsFile:    envStr("WORDS_FILE", ""),
		WordLength:   envInt("WORD_LENGTH", 5),
		JWTSecret:    envStr("JWT_SECRET", "dev_secret_change_me"),
		JWTTTL:       time.Duration(envInt("JWT_EXPIRES_DAYS", 14)) * 24 * time.Hour,
		CookieName:   envStr("COOKIE_NAME", "absurdle_token"),
		ClientOrigin: envStr("CLIENT_ORIGIN", "http://localhost:5173"),
		DailySalt:    envStr("DAILY_SALT", "local_dev_salt"),
		SessionTTL:   time.Duration(envInt("SESSION_TTL_HOURS", 24)) * time.Hour,
		Production:   os.Getenv("NODE_ENV") == "production",
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
