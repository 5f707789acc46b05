package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"willvault-auth/app/config"
)

// requiredEnv is the minimal environment a successful Load needs.
var requiredEnv = map[string]string{
	"DB_PASSWORD":       "test_password",
	"KRATOS_PUBLIC_URL": "http://kratos-public:4433",
	"SMTP_HOST":         "smtp.example.com",
}

func setEnv(t *testing.T, envVars map[string]string) {
	t.Helper()
	for key, value := range envVars {
		t.Setenv(key, value)
	}
}

func clearEnv(t *testing.T) {
	t.Helper()
	keys := []string{
		"PORT", "HOST", "LOG_LEVEL", "CONFIG_FILE",
		"DATABASE_URL", "DB_HOST", "DB_PORT", "DB_NAME", "DB_USER", "DB_PASSWORD", "DB_SSL_MODE",
		"KRATOS_PUBLIC_URL",
		"SMTP_HOST", "SMTP_PORT", "SMTP_USER", "SMTP_PASSWORD", "SMTP_FROM",
		"SESSION_CACHE_TTL",
	}
	for _, key := range keys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestConfig_Load(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
		wantErr string
		check   func(*testing.T, *config.Config)
	}{
		{
			name:    "defaults with required environment",
			envVars: requiredEnv,
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, "9600", cfg.Port)
				assert.Equal(t, "0.0.0.0", cfg.Host)
				assert.Equal(t, "info", cfg.LogLevel)
				assert.Equal(t, "willvault-postgres", cfg.DatabaseHost)
				assert.Equal(t, "willvault_db", cfg.DatabaseName)
				assert.Equal(t, "require", cfg.DatabaseSSLMode)
				assert.Equal(t, 587, cfg.SMTPPort)
				assert.Equal(t, "no-reply@willvault.example", cfg.SMTPFrom)
				assert.Equal(t, 30*time.Minute, cfg.SessionCacheTTL)
			},
		},
		{
			name: "custom configuration",
			envVars: map[string]string{
				"PORT":              "8080",
				"HOST":              "127.0.0.1",
				"LOG_LEVEL":         "debug",
				"DB_PASSWORD":       "custom_pass",
				"KRATOS_PUBLIC_URL": "http://kratos:4433",
				"SMTP_HOST":         "mail.internal",
				"SMTP_PORT":         "2525",
				"SMTP_FROM":         "codes@willvault.example",
				"SESSION_CACHE_TTL": "5m",
			},
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, "8080", cfg.Port)
				assert.Equal(t, "127.0.0.1", cfg.Host)
				assert.Equal(t, "debug", cfg.LogLevel)
				assert.Equal(t, 2525, cfg.SMTPPort)
				assert.Equal(t, "codes@willvault.example", cfg.SMTPFrom)
				assert.Equal(t, 5*time.Minute, cfg.SessionCacheTTL)
			},
		},
		{
			name: "missing database password",
			envVars: map[string]string{
				"KRATOS_PUBLIC_URL": "http://kratos:4433",
				"SMTP_HOST":         "smtp.example.com",
			},
			wantErr: "DB_PASSWORD is required",
		},
		{
			name: "missing kratos URL",
			envVars: map[string]string{
				"DB_PASSWORD": "test_password",
				"SMTP_HOST":   "smtp.example.com",
			},
			wantErr: "KRATOS_PUBLIC_URL is required",
		},
		{
			name: "missing SMTP host",
			envVars: map[string]string{
				"DB_PASSWORD":       "test_password",
				"KRATOS_PUBLIC_URL": "http://kratos:4433",
			},
			wantErr: "SMTP_HOST is required",
		},
		{
			name: "invalid port rejected",
			envVars: map[string]string{
				"PORT":              "70000",
				"DB_PASSWORD":       "test_password",
				"KRATOS_PUBLIC_URL": "http://kratos:4433",
				"SMTP_HOST":         "smtp.example.com",
			},
			wantErr: "port must be between",
		},
		{
			name: "invalid cache TTL rejected",
			envVars: map[string]string{
				"SESSION_CACHE_TTL": "10s",
				"DB_PASSWORD":       "test_password",
				"KRATOS_PUBLIC_URL": "http://kratos:4433",
				"SMTP_HOST":         "smtp.example.com",
			},
			wantErr: "session cache TTL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			setEnv(t, tt.envVars)

			cfg, err := config.Load()

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Nil(t, cfg)
				return
			}

			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestConfig_Load_YAMLOverlay(t *testing.T) {
	clearEnv(t)

	configYAML := `
port: "9700"
log_level: warn
db_password: from_file
kratos_public_url: http://kratos-file:4433
smtp_host: smtp.file.example
smtp_port: 465
session_cache_ttl: 10m
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(configYAML), 0o600))

	t.Setenv("CONFIG_FILE", path)
	// Environment beats the file.
	t.Setenv("LOG_LEVEL", "error")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "9700", cfg.Port)
	assert.Equal(t, "error", cfg.LogLevel)
	assert.Equal(t, "from_file", cfg.DatabasePassword)
	assert.Equal(t, "http://kratos-file:4433", cfg.KratosPublicURL)
	assert.Equal(t, "smtp.file.example", cfg.SMTPHost)
	assert.Equal(t, 465, cfg.SMTPPort)
	assert.Equal(t, 10*time.Minute, cfg.SessionCacheTTL)
}
