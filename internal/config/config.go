package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/dvloznov/partner-ledger/internal/logger"
)

// Store backends.
const (
	BackendMemory   = "memory"
	BackendBigQuery = "bigquery"
	BackendPostgres = "postgres"
)

// Summary providers.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

type Config struct {
	// HTTP
	Port string

	// Storage
	StoreBackend       string
	GoogleCloudProject string
	BigQueryDataset    string
	DatabaseDSN        string

	// Backups
	GCSBucket string

	// AI summaries
	SummaryProvider string
	GeminiModel     string
	OpenAIAPIKey    string
	OpenAIModel     string

	// Notion mirror
	NotionToken      string
	NotionDatabaseID string

	// Fallback USD to PKR rate for entries without one
	USDToPKRRate float64

	// Logging Configuration
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

func Load() (*Config, error) {
	config := &Config{
		Port:               getEnv("PORT", "8080"),
		StoreBackend:       getEnv("STORE_BACKEND", BackendMemory),
		GoogleCloudProject: getEnv("GOOGLE_CLOUD_PROJECT", ""),
		BigQueryDataset:    getEnv("BIGQUERY_DATASET", "partner_ledger"),
		DatabaseDSN:        getEnv("DB_DSN", ""),
		GCSBucket:          getEnv("GCS_BUCKET", ""),
		SummaryProvider:    getEnv("SUMMARY_PROVIDER", ProviderGemini),
		GeminiModel:        getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		OpenAIAPIKey:       getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:        getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		NotionToken:        getEnv("NOTION_TOKEN", ""),
		NotionDatabaseID:   getEnv("NOTION_DB_ID", ""),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFormat:          getEnv("LOG_FORMAT", "console"),
		LogTimeFormat:      getEnv("LOG_TIME_FORMAT", "2006-01-02T15:04:05Z07:00"),
		LogOutput:          getEnv("LOG_OUTPUT", "stdout"),
	}

	rate, err := strconv.ParseFloat(getEnv("USD_PKR_RATE", "0"), 64)
	if err != nil {
		return nil, fmt.Errorf("USD_PKR_RATE must be a number: %w", err)
	}
	config.USDToPKRRate = rate

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

func (c *Config) validate() error {
	switch c.StoreBackend {
	case BackendMemory:
	case BackendBigQuery:
		if c.GoogleCloudProject == "" {
			return fmt.Errorf("GOOGLE_CLOUD_PROJECT is required for the bigquery backend")
		}
		if c.BigQueryDataset == "" {
			return fmt.Errorf("BIGQUERY_DATASET is required for the bigquery backend")
		}
	case BackendPostgres:
		if c.DatabaseDSN == "" {
			return fmt.Errorf("DB_DSN is required for the postgres backend")
		}
	default:
		return fmt.Errorf("STORE_BACKEND must be one of memory, bigquery, postgres (got %q)", c.StoreBackend)
	}

	switch c.SummaryProvider {
	case ProviderGemini, ProviderOpenAI:
	default:
		return fmt.Errorf("SUMMARY_PROVIDER must be gemini or openai (got %q)", c.SummaryProvider)
	}

	if c.USDToPKRRate < 0 {
		return fmt.Errorf("USD_PKR_RATE must not be negative")
	}
	return nil
}

// RequireSummary checks the settings the configured summary provider needs.
func (c *Config) RequireSummary() error {
	switch c.SummaryProvider {
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required for the openai summary provider")
		}
	case ProviderGemini:
		if c.GoogleCloudProject == "" {
			return fmt.Errorf("GOOGLE_CLOUD_PROJECT is required for the gemini summary provider")
		}
	}
	return nil
}

// RequireBackups checks the settings needed for GCS backups.
func (c *Config) RequireBackups() error {
	if c.GCSBucket == "" {
		return fmt.Errorf("GCS_BUCKET is required")
	}
	return nil
}

// RequireNotion checks the settings needed for the Notion mirror.
func (c *Config) RequireNotion() error {
	if c.NotionToken == "" {
		return fmt.Errorf("NOTION_TOKEN is required")
	}
	if c.NotionDatabaseID == "" {
		return fmt.Errorf("NOTION_DB_ID is required")
	}
	return nil
}

// GetLoggerConfig returns a logger configuration from the main config
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
