// Package config loads service configuration from the environment, with
// optional .env support for local development.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds everything the service needs at startup. Gemini credentials
// are not listed here: the genai SDK reads GEMINI_API_KEY itself.
type Config struct {
	Port             string
	GeminiModel      string
	PipelineMode     string
	NotionAPIKey     string
	NotionDatabaseID string
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present; missing .env is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:             getenv("PORT", "8080"),
		GeminiModel:      os.Getenv("GEMINI_MODEL"),
		PipelineMode:     getenv("PIPELINE_MODE", "standard"),
		NotionAPIKey:     os.Getenv("NOTION_API_KEY"),
		NotionDatabaseID: os.Getenv("NOTION_EXPENSE_DATABASE_ID"),
	}

	if cfg.NotionAPIKey == "" {
		return nil, fmt.Errorf("Load: NOTION_API_KEY is required")
	}
	if cfg.NotionDatabaseID == "" {
		return nil, fmt.Errorf("Load: NOTION_EXPENSE_DATABASE_ID is required")
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
