package config

import (
	"encoding/json"
	"errors"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	// Server
	Host        string `json:"host"`
	Port        int    `json:"port"`
	Environment string `json:"environment"`
	LogLevel    string `json:"log_level"`

	// CORS
	CORSOrigins []string `json:"cors_origins"`

	// Auth
	APIKeyHeader string   `json:"api_key_header"`
	APIKeys      []string `json:"api_keys"`
	EnableAuth   bool     `json:"enable_auth"`

	// Rate Limiting
	RateLimitPerMinute int `json:"rate_limit_per_minute"`

	// Database
	DatabaseURL    string `json:"database_url"`
	DBMaxOpenConns int    `json:"db_max_open_conns"`
	DBMaxIdleConns int    `json:"db_max_idle_conns"`

	// AI / LLM
	AnthropicAPIKey  string `json:"anthropic_api_key"`
	AnthropicBaseURL string `json:"anthropic_base_url"` // override for compatible providers / proxies
	LLMModel         string `json:"llm_model"`

	// Result handling
	EnableDataMasking  bool     `json:"enable_data_masking"`
	SensitiveColumns   []string `json:"sensitive_columns"`
	EnableAuditLogging bool     `json:"enable_audit_logging"`
}

func Load() (*Config, error) {
	cfg := &Config{
		Host:               DefaultHost,
		Port:               DefaultPort,
		Environment:        DefaultEnvironment,
		LogLevel:           DefaultLogLevel,
		CORSOrigins:        DefaultCORSOrigins,
		APIKeyHeader:       "X-API-Key",
		RateLimitPerMinute: DefaultRateLimitPerMinute,
		DBMaxOpenConns:     DefaultDBMaxOpenConns,
		DBMaxIdleConns:     DefaultDBMaxIdleConns,
		LLMModel:           DefaultLLMModel,
		SensitiveColumns:   DefaultSensitiveColumns,
		EnableAuditLogging: true,
	}

	// Load from JSON config file if specified
	if path := getEnv("VANNAAI_CONFIG", ""); path != "" {
		if err := loadJSON(path, cfg); err != nil {
			return nil, err
		}
	}

	// Environment overrides
	applyEnvOverrides(cfg)

	return cfg, nil
}

// Validate checks the settings the process cannot start without.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL environment variable is required")
	}
	if c.AnthropicAPIKey == "" {
		return errors.New("ANTHROPIC_API_KEY environment variable is required")
	}
	return nil
}

func loadJSON(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, cfg)
}

func applyEnvOverrides(cfg *Config) {
	if v := getEnv("VANNAAI_HOST", ""); v != "" {
		cfg.Host = v
	}
	if v := getEnv("PORT", ""); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Port = p
		}
	}
	if v := getEnv("VANNAAI_ENV", ""); v != "" {
		cfg.Environment = v
	}
	if v := getEnv("VANNAAI_LOG_LEVEL", ""); v != "" {
		cfg.LogLevel = v
	}
	if v := getEnv("VANNAAI_API_KEYS", ""); v != "" {
		cfg.APIKeys = strings.Split(v, ",")
	}
	if v := getEnv("DATABASE_URL", ""); v != "" {
		cfg.DatabaseURL = v
	}
	if v := getEnv("DB_MAX_OPEN_CONNS", ""); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.DBMaxOpenConns = n
		}
	}
	if v := getEnv("DB_MAX_IDLE_CONNS", ""); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.DBMaxIdleConns = n
		}
	}
	if v := getEnv("ANTHROPIC_API_KEY", ""); v != "" {
		cfg.AnthropicAPIKey = v
	}
	if v := getEnv("ANTHROPIC_BASE_URL", ""); v != "" {
		cfg.AnthropicBaseURL = v
	}
	if v := getEnv("LLM_MODEL", ""); v != "" {
		cfg.LLMModel = v
	}
	if v := getEnv("RATE_LIMIT_PER_MINUTE", ""); v != "" {
		if r, err := strconv.Atoi(v); err == nil {
			cfg.RateLimitPerMinute = r
		}
	}
	if v := getEnv("ENABLE_AUTH", ""); v != "" {
		cfg.EnableAuth = v == "true" || v == "1"
	}
	if v := getEnv("ENABLE_DATA_MASKING", ""); v != "" {
		cfg.EnableDataMasking = v == "true" || v == "1"
	}
	if v := getEnv("ENABLE_AUDIT_LOGGING", ""); v != "" {
		cfg.EnableAuditLogging = v == "true" || v == "1"
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
