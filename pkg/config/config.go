// Package config loads application configuration from environment
// variables.
package config

import (
	"os"
	"strconv"
)

// Config holds all application configuration.
type Config struct {
	Assistant AssistantConfig
	User      UserConfig
	Log       LogConfig
}

// AssistantConfig configures the assistant core and its local shell.
type AssistantConfig struct {
	DataDir         string // where session state is persisted
	TransactionsCSV string // storage-collaborator stand-in for forecasting
	LookbackDays    int    // trailing window for the spend projection
	CurrentRoute    string // route reported by /status
}

// UserConfig is the local stand-in for the authentication collaborator.
// An empty ID means no authenticated session.
type UserConfig struct {
	ID    string
	Email string
}

// LogConfig configures logging.
type LogConfig struct {
	Level string // debug, info, warn, error
}

// Load reads configuration from environment variables.
func Load() *Config {
	return &Config{
		Assistant: AssistantConfig{
			DataDir:         getEnv("MONEYMAP_DATA_DIR", "./data"),
			TransactionsCSV: getEnv("MONEYMAP_TRANSACTIONS_CSV", "./data/transactions.csv"),
			LookbackDays:    getEnvAsInt("MONEYMAP_LOOKBACK_DAYS", 90),
			CurrentRoute:    getEnv("MONEYMAP_ROUTE", "/"),
		},
		User: UserConfig{
			ID:    getEnv("MONEYMAP_USER_ID", ""),
			Email: getEnv("MONEYMAP_USER_EMAIL", ""),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
