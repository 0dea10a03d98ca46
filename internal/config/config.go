package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultFundSources are seeded for every new period unless DEFAULT_FUNDS overrides them.
var DefaultFundSources = []string{
	"Allocation from University Admin",
	"Membership Fees",
	"Voluntary Contribution",
	"Donations",
	"Sponsorship",
	"IGP Proceeds",
}

// Config holds application configuration
type Config struct {
	// Server
	Port string
	Env  string

	// Database
	DBDriver      string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSSLMode     string
	DBPath        string
	MigrationsDir string

	// JWT
	JWTSecret        string
	JWTExpirationDur time.Duration

	// Ledger
	AttachmentDir      string
	MaxAttachmentBytes int64
	DefaultFunds       []string

	// MaintenanceAPIKey guards the fund repair endpoint. Empty disables it.
	MaintenanceAPIKey string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// Get values from environment variables with defaults
	config := &Config{
		// Server
		Port: getEnv("PORT", "5000"),
		Env:  getEnv("ENV", "development"),

		// Database
		DBDriver:      getEnv("DB_DRIVER", "postgres"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "fundledger"),
		DBPassword:    getEnv("DB_PASSWORD", "fundledger"),
		DBName:        getEnv("DB_NAME", "fundledger"),
		DBSSLMode:     getEnv("DB_SSLMODE", "disable"),
		DBPath:        getEnv("DB_PATH", "fundledger.db"),
		MigrationsDir: getEnv("MIGRATIONS_DIR", "migrations"),

		// JWT
		JWTSecret: getEnv("JWT_SECRET", "fallback-secret-key-for-dev-only"),

		// Ledger
		AttachmentDir: getEnv("ATTACHMENT_DIR", "uploads"),
		DefaultFunds:  parseList(getEnv("DEFAULT_FUNDS", ""), DefaultFundSources),

		MaintenanceAPIKey: os.Getenv("MAINTENANCE_API_KEY"),
	}

	// Parse JWT expiration duration
	expStr := getEnv("JWT_EXPIRES_IN", "24h")
	expDur, err := time.ParseDuration(expStr)
	if err != nil {
		log.Printf("Warning: invalid JWT_EXPIRES_IN value '%s', falling back to 24h\n", expStr)
		expDur = 24 * time.Hour
	}
	config.JWTExpirationDur = expDur

	maxStr := getEnv("MAX_ATTACHMENT_BYTES", "5242880")
	maxBytes, err := strconv.ParseInt(maxStr, 10, 64)
	if err != nil || maxBytes <= 0 {
		log.Printf("Warning: invalid MAX_ATTACHMENT_BYTES value '%s', falling back to 5MB\n", maxStr)
		maxBytes = 5 << 20
	}
	config.MaxAttachmentBytes = maxBytes

	return config, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parseList splits a comma separated value, dropping blanks. An empty
// result yields fallback.
func parseList(raw string, fallback []string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return append([]string(nil), fallback...)
	}
	return out
}
