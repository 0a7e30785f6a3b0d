package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Runtime
	Env string

	// Server
	Host string
	Port string

	// Database
	DBDriver     string
	DatabasePath string
	DBHost       string
	DBPort       string
	DBUser       string
	DBPassword   string
	DBName       string
	DBSSLMode    string

	// Access
	APIKey             string
	CORSAllowedOrigins []string
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Env: getEnv("ENV", "development"),

		Host: getEnv("HOST", "127.0.0.1"),
		Port: getEnv("PORT", "8000"),

		DBDriver:     strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
		DatabasePath: getEnv("DATABASE_PATH", "./data/budget.db"),
		DBHost:       getEnv("DB_HOST", "localhost"),
		DBPort:       getEnv("DB_PORT", "5432"),
		DBUser:       getEnv("DB_USER", "budget"),
		DBPassword:   getEnv("DB_PASSWORD", "budget"),
		DBName:       getEnv("DB_NAME", "budget"),
		DBSSLMode:    getEnv("DB_SSLMODE", "disable"),

		APIKey:             os.Getenv("API_KEY"),
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173,http://127.0.0.1:5173,tauri://localhost")),
	}

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// Addr returns the host:port the HTTP server listens on.
func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
