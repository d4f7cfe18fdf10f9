package config

import (
	"os"
	"strconv"
	"strings"

	"autoeda/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	AI       AIConfig
	CORS     CORSConfig
	Analysis AnalysisConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// AIConfig holds AI/LLM related settings
type AIConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	MaxTokens   int
	TimeoutMS   int
}

// CORSConfig holds cross-origin settings for the frontend
type CORSConfig struct {
	AllowedOrigins []string
}

// AnalysisConfig holds analysis pipeline settings
type AnalysisConfig struct {
	// SampleLimit caps how many rows are analyzed per request.
	SampleLimit int
	// MaxConcurrent bounds how many analyses may run at once.
	MaxConcurrent int64
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8000"),
			GinMode: getEnvOrDefault("GIN_MODE", "release"),
		},
		AI: AIConfig{
			APIKey:      os.Getenv("OPENAI_API_KEY"),
			BaseURL:     getEnvOrDefault("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			Model:       getEnvOrDefault("OPENAI_MODEL", "gpt-4o-mini"),
			Temperature: getEnvFloatOrDefault("OPENAI_TEMPERATURE", 0.2),
			MaxTokens:   getEnvIntOrDefault("OPENAI_MAX_TOKENS", 2048),
			TimeoutMS:   getEnvIntOrDefault("OPENAI_TIMEOUT_MS", 120000),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitAndTrim(getEnvOrDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
		},
		Analysis: AnalysisConfig{
			SampleLimit:   getEnvIntOrDefault("ANALYSIS_SAMPLE_LIMIT", 5000),
			MaxConcurrent: int64(getEnvIntOrDefault("MAX_CONCURRENT_ANALYSES", 4)),
		},
	}

	if err := validate(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validate(config *Config) error {
	if config.AI.APIKey == "" {
		return errors.ConfigInvalid("OPENAI_API_KEY is required")
	}
	if config.Analysis.SampleLimit <= 0 {
		return errors.ConfigInvalid("ANALYSIS_SAMPLE_LIMIT must be positive")
	}
	if config.Analysis.MaxConcurrent <= 0 {
		return errors.ConfigInvalid("MAX_CONCURRENT_ANALYSES must be positive")
	}
	return nil
}

func splitAndTrim(value string) []string {
	parts := strings.Split(value, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}
