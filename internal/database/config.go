package database

import (
	"fmt"
	"net/url"

	"budgetplaner/internal/config"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds database configuration
type Config struct {
	Driver   string
	Path     string
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// NewConfig creates a database configuration from the application configuration
func NewConfig(cfg *config.Config) (*Config, error) {
	dbConfig := &Config{
		Driver:   cfg.DBDriver,
		Path:     cfg.DatabasePath,
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		DBName:   cfg.DBName,
		SSLMode:  cfg.DBSSLMode,
	}

	switch dbConfig.Driver {
	case DriverSQLite:
		if dbConfig.Path == "" {
			return nil, fmt.Errorf("DATABASE_PATH must be set for the sqlite driver")
		}
	case DriverPostgres:
	default:
		return nil, fmt.Errorf("unsupported database driver %q (use %s or %s)", dbConfig.Driver, DriverSQLite, DriverPostgres)
	}

	return dbConfig, nil
}

// DSN returns the connection string understood by the GORM driver.
func (c *Config) DSN() string {
	if c.Driver == DriverPostgres {
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
	}
	// Foreign keys are off by default in SQLite; cascades depend on them.
	return fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", c.Path)
}

// MigrationURL returns the database URL for golang-migrate.
func (c *Config) MigrationURL() string {
	if c.Driver == DriverPostgres {
		return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
			url.QueryEscape(c.User), url.QueryEscape(c.Password), c.Host, c.Port, c.DBName, c.SSLMode)
	}
	return fmt.Sprintf("sqlite3://%s?_foreign_keys=on", c.Path)
}
