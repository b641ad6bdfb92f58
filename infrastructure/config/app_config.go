package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"spscan/database"
	"spscan/logging"
)

// AppConfig holds application-wide system configuration.
// This is infrastructure configuration, not scan parameters.
type AppConfig struct {
	HTTPAddr string
	Database *database.Config
	Logging  *logging.Config
}

// LoadAppConfigFromEnv loads complete application configuration from environment variables.
func LoadAppConfigFromEnv() *AppConfig {
	return &AppConfig{
		HTTPAddr: getEnvWithDefault("HTTP_ADDR", ":8080"),
		Database: LoadDatabaseConfigFromEnv(),
		Logging:  LoadLoggingConfigFromEnv(),
	}
}

// LoadDatabaseConfigFromEnv loads database configuration from environment variables.
func LoadDatabaseConfigFromEnv() *database.Config {
	return &database.Config{
		Path:              getEnvWithDefault("DB_PATH", "./spscan.db"),
		MaxOpenConns:      getEnvIntWithDefault("DB_MAX_OPEN_CONNS", 10),
		ConnMaxLifetime:   getEnvDurationWithDefault("DB_CONN_MAX_LIFETIME", time.Hour),
		BusyTimeoutMs:     getEnvIntWithDefault("DB_BUSY_TIMEOUT_MS", 5000),
		EnableForeignKeys: getEnvBoolWithDefault("DB_ENABLE_FOREIGN_KEYS", true),
		EnableWAL:         getEnvBoolWithDefault("DB_ENABLE_WAL", true),
	}
}

// LoadLoggingConfigFromEnv loads logging configuration from environment variables.
func LoadLoggingConfigFromEnv() *logging.Config {
	return &logging.Config{
		Level:  getEnvWithDefault("LOG_LEVEL", "info"),
		Format: getEnvWithDefault("LOG_FORMAT", "json"),
		Output: getEnvWithDefault("LOG_OUTPUT", "stderr"),
	}
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseBool(v string, def bool) bool {
	v = strings.TrimSpace(strings.ToLower(v))
	switch v {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

func getEnvIntWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBoolWithDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return parseBool(value, defaultValue)
	}
	return defaultValue
}

func getEnvDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
