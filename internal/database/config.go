package database

import (
	"fmt"

	"fundledger/internal/config"
)

// Supported database drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds database configuration
type Config struct {
	Driver        string
	Host          string
	Port          string
	User          string
	Password      string
	DBName        string
	SSLMode       string
	Path          string
	MigrationsDir string
}

// NewConfig creates a database configuration from the application configuration
func NewConfig(app *config.Config) (*Config, error) {
	switch app.DBDriver {
	case DriverPostgres, DriverSQLite:
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (use postgres or sqlite)", app.DBDriver)
	}

	return &Config{
		Driver:        app.DBDriver,
		Host:          app.DBHost,
		Port:          app.DBPort,
		User:          app.DBUser,
		Password:      app.DBPassword,
		DBName:        app.DBName,
		SSLMode:       app.DBSSLMode,
		Path:          app.DBPath,
		MigrationsDir: app.MigrationsDir,
	}, nil
}

// DSN returns the PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// URL returns the PostgreSQL URL form used by golang-migrate
func (c *Config) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}
