package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		Server:  ServerConfig{Port: 4000},
		Storage: StorageConfig{DataDir: "./data"},
		Auth: AuthConfig{
			JWTSecret:        strings.Repeat("s", 32),
			TokenTTL:         168 * time.Hour,
			PasswordHashCost: 10,
		},
		RateLimit: RateLimitConfig{Enabled: true, MaxPerMinute: 300},
	}
}

func TestValidate_OK(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}
}

func TestValidate_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"short jwt secret", func(c *Config) { c.Auth.JWTSecret = "short" }},
		{"zero token ttl", func(c *Config) { c.Auth.TokenTTL = 0 }},
		{"bcrypt cost too high", func(c *Config) { c.Auth.PasswordHashCost = 99 }},
		{"empty data dir", func(c *Config) { c.Storage.DataDir = "" }},
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }},
		{"rate limit enabled without budget", func(c *Config) { c.RateLimit.MaxPerMinute = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
