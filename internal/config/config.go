package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	APIPort  string `yaml:"api_port"`
	LogLevel string `yaml:"log_level"`

	GeminiAPIKey  string  `yaml:"gemini_api_key"`
	GeminiBaseURL string  `yaml:"gemini_base_url"`
	GeminiModel   string  `yaml:"gemini_model"`
	GeminiTimeout int     `yaml:"gemini_timeout_seconds"`
	GeminiRPS     float64 `yaml:"gemini_rps"`

	MaxUploadBytes int64 `yaml:"max_upload_bytes"`

	RetryMaxAttempts int  `yaml:"retry_max_attempts"`
	BreakerEnabled   bool `yaml:"breaker_enabled"`
}

// Load builds the configuration from an optional YAML file (path taken
// from LEXISCAN_CONFIG) overlaid by environment variables. Environment
// always wins so container deployments can override a baked-in file.
func Load() (Config, error) {
	cfg := defaults()

	if path := os.Getenv("LEXISCAN_CONFIG"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	}

	cfg.APIPort = env("API_PORT", cfg.APIPort)
	cfg.LogLevel = env("LOG_LEVEL", cfg.LogLevel)

	cfg.GeminiAPIKey = env("GEMINI_API_KEY", cfg.GeminiAPIKey)
	cfg.GeminiBaseURL = env("GEMINI_BASE_URL", cfg.GeminiBaseURL)
	cfg.GeminiModel = env("GEMINI_MODEL", cfg.GeminiModel)
	cfg.GeminiTimeout = envInt("GEMINI_TIMEOUT_SECONDS", cfg.GeminiTimeout)
	cfg.GeminiRPS = envFloat("GEMINI_RPS", cfg.GeminiRPS)

	cfg.MaxUploadBytes = int64(envInt("MAX_UPLOAD_BYTES", int(cfg.MaxUploadBytes)))

	cfg.RetryMaxAttempts = envInt("RETRY_MAX_ATTEMPTS", cfg.RetryMaxAttempts)
	cfg.BreakerEnabled = envBool("BREAKER_ENABLED", cfg.BreakerEnabled)

	return cfg, nil
}

func defaults() Config {
	return Config{
		APIPort:  "8080",
		LogLevel: "info",

		GeminiBaseURL: "https://generativelanguage.googleapis.com",
		GeminiModel:   "gemini-1.5-flash",
		GeminiTimeout: 60,
		GeminiRPS:     2,

		MaxUploadBytes: 10 << 20,

		RetryMaxAttempts: 2,
		BreakerEnabled:   true,
	}
}

func env(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}
