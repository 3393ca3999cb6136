package config

import (
	"os"
	"strconv"
)

// Config holds everything the server reads from the environment.
// Loaded once in main and handed to constructors; nothing else
// touches os.Getenv.
type Config struct {
	Port        string
	Env         string
	DatabaseURL string

	JWTSecret     string
	JWTExpiresHrs int
	CookieName    string

	CORSOrigin string

	AdminEmail    string
	AdminPassword string
}

// Load reads the environment with defaults suitable for local development.
func Load() Config {
	return Config{
		Port:        getEnv("PORT", "3001"),
		Env:         getEnv("ENV", "development"),
		DatabaseURL: getEnv("DATABASE_URL", ""),

		JWTSecret:     getEnv("JWT_SECRET", "dev_secret"),
		JWTExpiresHrs: getEnvInt("JWT_EXPIRES_HOURS", 24),
		CookieName:    getEnv("COOKIE_NAME", "access_token"),

		CORSOrigin: getEnv("CORS_ORIGIN", "http://localhost:3000"),

		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@admin.com"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "admin123"),
	}
}

// Addr returns the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}

// Production reports whether the server runs in release mode.
func (c Config) Production() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
