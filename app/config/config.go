package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the auth service
type Config struct {
	// Server
	Port     string `yaml:"port"`
	Host     string `yaml:"host"`
	LogLevel string `yaml:"log_level"`

	// Database
	DatabaseURL      string `yaml:"database_url"`
	DatabaseHost     string `yaml:"db_host"`
	DatabasePort     string `yaml:"db_port"`
	DatabaseName     string `yaml:"db_name"`
	DatabaseUser     string `yaml:"db_user"`
	DatabasePassword string `yaml:"db_password"`
	DatabaseSSLMode  string `yaml:"db_ssl_mode"`

	// Kratos
	KratosPublicURL string `yaml:"kratos_public_url"`

	// SMTP
	SMTPHost     string `yaml:"smtp_host"`
	SMTPPort     int    `yaml:"smtp_port"`
	SMTPUser     string `yaml:"smtp_user"`
	SMTPPassword string `yaml:"smtp_password"`
	SMTPFrom     string `yaml:"smtp_from"`

	// Session cache
	SessionCacheTTL time.Duration `yaml:"session_cache_ttl"`
}

// Load reads configuration from environment variables. When
// CONFIG_FILE points at a YAML file, its values are applied first and
// the environment overrides them.
func Load() (*Config, error) {
	config := &Config{}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := config.applyFile(path); err != nil {
			return nil, err
		}
	}

	// Server configuration
	config.Port = getEnvOrDefault("PORT", defaultString(config.Port, "9600"))
	config.Host = getEnvOrDefault("HOST", defaultString(config.Host, "0.0.0.0"))
	config.LogLevel = getEnvOrDefault("LOG_LEVEL", defaultString(config.LogLevel, "info"))

	// Database configuration
	config.DatabaseURL = getEnvOrDefault("DATABASE_URL", config.DatabaseURL)
	config.DatabaseHost = getEnvOrDefault("DB_HOST", defaultString(config.DatabaseHost, "willvault-postgres"))
	config.DatabasePort = getEnvOrDefault("DB_PORT", defaultString(config.DatabasePort, "5432"))
	config.DatabaseName = getEnvOrDefault("DB_NAME", defaultString(config.DatabaseName, "willvault_db"))
	config.DatabaseUser = getEnvOrDefault("DB_USER", defaultString(config.DatabaseUser, "willvault_user"))
	config.DatabasePassword = getEnvOrDefault("DB_PASSWORD", config.DatabasePassword)
	if config.DatabasePassword == "" {
		return nil, fmt.Errorf("DB_PASSWORD is required")
	}
	config.DatabaseSSLMode = getEnvOrDefault("DB_SSL_MODE", defaultString(config.DatabaseSSLMode, "require"))

	// Kratos configuration
	config.KratosPublicURL = getEnvOrDefault("KRATOS_PUBLIC_URL", config.KratosPublicURL)
	if config.KratosPublicURL == "" {
		return nil, fmt.Errorf("KRATOS_PUBLIC_URL is required")
	}

	// SMTP configuration
	config.SMTPHost = getEnvOrDefault("SMTP_HOST", config.SMTPHost)
	if config.SMTPHost == "" {
		return nil, fmt.Errorf("SMTP_HOST is required")
	}

	smtpPortStr := getEnvOrDefault("SMTP_PORT", "")
	if smtpPortStr != "" {
		port, err := strconv.Atoi(smtpPortStr)
		if err != nil {
			return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
		}
		config.SMTPPort = port
	}
	if config.SMTPPort == 0 {
		config.SMTPPort = 587
	}

	config.SMTPUser = getEnvOrDefault("SMTP_USER", config.SMTPUser)
	config.SMTPPassword = getEnvOrDefault("SMTP_PASSWORD", config.SMTPPassword)
	config.SMTPFrom = getEnvOrDefault("SMTP_FROM", defaultString(config.SMTPFrom, "no-reply@willvault.example"))

	// Session cache configuration
	cacheTTLStr := getEnvOrDefault("SESSION_CACHE_TTL", "")
	if cacheTTLStr != "" {
		ttl, err := time.ParseDuration(cacheTTLStr)
		if err != nil {
			return nil, fmt.Errorf("invalid SESSION_CACHE_TTL: %w", err)
		}
		config.SessionCacheTTL = ttl
	}
	if config.SessionCacheTTL == 0 {
		config.SessionCacheTTL = 30 * time.Minute
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// applyFile overlays values from a YAML configuration file
func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil {
		return fmt.Errorf("invalid port: %s", c.Port)
	}
	if port < 1 || port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535: %s", c.Port)
	}

	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, strings.ToLower(c.LogLevel)) {
		return fmt.Errorf("invalid log level: %s (must be one of: %s)", c.LogLevel, strings.Join(validLogLevels, ", "))
	}

	if c.SMTPPort < 1 || c.SMTPPort > 65535 {
		return fmt.Errorf("smtp port must be between 1 and 65535: %d", c.SMTPPort)
	}

	if c.SessionCacheTTL < time.Minute {
		return fmt.Errorf("session cache TTL must be at least 1 minute, got: %v", c.SessionCacheTTL)
	}

	return nil
}

// Helper functions

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func defaultString(current, fallback string) string {
	if current != "" {
		return current
	}
	return fallback
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
