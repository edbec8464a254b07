package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort    string
	SessionSecret string
	SessionMaxAge int // seconds
	DBDSN         string
	AdminUsername string
	AdminPassword string
}

// Load reads configuration from the environment (and an optional .env
// file). An empty DB_DSN selects the in-memory sqlite store.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		ServerPort:    getEnv("SERVER_PORT", "8080"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		DBDSN:         os.Getenv("DB_DSN"),
		AdminUsername: getEnv("ADMIN_USERNAME", "superadmin"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "admin123"),
	}

	maxAge, err := getEnvInt("SESSION_MAX_AGE", 86400)
	if err != nil {
		return nil, err
	}
	cfg.SessionMaxAge = maxAge

	if cfg.SessionSecret == "" {
		return nil, fmt.Errorf("SESSION_SECRET is not set")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) (int, error) {
	if value, exists := os.LookupEnv(key); exists {
		intVal, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid integer for %s: %w", key, err)
		}
		return intVal, nil
	}
	return defaultVal, nil
}
