package config

import (
	"os"
	"strconv"

	"likertlab/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Survey   SurveyConfig
	Database DatabaseConfig
	Report   ReportConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// SurveyConfig holds synthetic dataset generation settings
type SurveyConfig struct {
	Seed        int64
	Respondents int
}

// DatabaseConfig holds database connection settings. URL is optional:
// without it the app runs purely in memory.
type DatabaseConfig struct {
	URL string
}

// ReportConfig holds report output settings
type ReportConfig struct {
	Title     string
	ExcelFile string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
		Survey: SurveyConfig{
			Seed:        getEnvInt64OrDefault("SURVEY_SEED", 42),
			Respondents: getEnvIntOrDefault("SURVEY_RESPONDENTS", 1000),
		},
		Database: DatabaseConfig{
			URL: getEnvOrDefault("DATABASE_URL", ""),
		},
		Report: ReportConfig{
			Title:     getEnvOrDefault("REPORT_TITLE", "Survey Response Frequencies"),
			ExcelFile: getEnvOrDefault("EXCEL_FILE", "report.xlsx"),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
	}
	if config.Survey.Respondents <= 0 {
		return errors.ConfigInvalid("SURVEY_RESPONDENTS must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
