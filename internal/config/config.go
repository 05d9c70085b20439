package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port      string
	APIURL    string
	JWTSecret string
	StateDB   string
	LogLevel  string
	UIOrigin  string
}

// Load reads configuration from a .env file (if present) and the
// environment. Missing values fall back to local-development defaults.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:      getEnv("PORT", "8090"),
		APIURL:    apiURL(),
		JWTSecret: getEnv("JWT_SECRET", "dev-secret-change-in-production"),
		StateDB:   getEnv("STATE_DB", "terminal.db"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		UIOrigin:  getEnv("UI_ORIGIN", "http://localhost:5173"),
	}
}

// apiURL resolves the back-office base URL. VITE_API_URL is honored as a
// fallback alias so env files from the old front-end deployment keep
// working.
func apiURL() string {
	if v := os.Getenv("API_URL"); v != "" {
		return v
	}
	if v := os.Getenv("VITE_API_URL"); v != "" {
		return v
	}
	return "http://localhost:8000/api"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
