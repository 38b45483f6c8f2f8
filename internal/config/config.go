package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Storage drivers
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config holds all application configuration
type Config struct {
	BotToken       string
	StorageDriver  string
	MigrationsPath string
	LogLevel       string
	PollTimeout    time.Duration
	StudyDelay     time.Duration
	StateTTL       time.Duration
	Database       DatabaseConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	cfg := &Config{
		BotToken:       os.Getenv("BOT_TOKEN"),
		StorageDriver:  getEnv("STORAGE_DRIVER", DriverPostgres),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "file://migrations"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "wordtrainer"),
			User:     getEnv("DB_USER", "wordtrainer"),
			Password: os.Getenv("DB_PASSWORD"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
	}

	var err error
	if cfg.PollTimeout, err = getDuration("POLL_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.StudyDelay, err = getDuration("STUDY_DELAY", 2*time.Second); err != nil {
		return nil, err
	}
	if cfg.StateTTL, err = getDuration("STATE_TTL", 24*time.Hour); err != nil {
		return nil, err
	}

	// Validate required fields
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN is required")
	}
	switch cfg.StorageDriver {
	case DriverPostgres:
		if cfg.Database.Password == "" {
			return nil, fmt.Errorf("DB_PASSWORD is required")
		}
	case DriverMemory:
	default:
		return nil, fmt.Errorf("STORAGE_DRIVER must be %q or %q, got %q", DriverPostgres, DriverMemory, cfg.StorageDriver)
	}
	if cfg.StateTTL <= 0 {
		return nil, fmt.Errorf("STATE_TTL must be positive")
	}

	return cfg, nil
}

// DSN returns PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q: %w", key, value, err)
	}
	return d, nil
}
