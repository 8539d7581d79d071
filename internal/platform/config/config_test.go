package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "trade_analysis.db", cfg.DatabaseURL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
	assert.Equal(t, 2020, cfg.StartYear)
	assert.Equal(t, 2023, cfg.EndYear)
	require.NoError(t, cfg.Validate())
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/trade")
	t.Setenv("DASHBOARD_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("FRED_API_KEY", "abc123")
	t.Setenv("START_YEAR", "2018")

	cfg := FromEnv()

	assert.Equal(t, "postgres://localhost/trade", cfg.DatabaseURL)
	assert.Equal(t, "0.0.0.0:9090", cfg.Addr())
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "abc123", cfg.Keys.FRED)
	assert.Equal(t, 2018, cfg.StartYear)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid defaults", func(c *Config) {}, ""},
		{"empty database url", func(c *Config) { c.DatabaseURL = "" }, "database_url"},
		{"bad port", func(c *Config) { c.DashboardPort = "http" }, "dashboard_port"},
		{"port out of range", func(c *Config) { c.DashboardPort = "70000" }, "dashboard_port"},
		{"bad log level", func(c *Config) { c.LogLevel = "verbose" }, "log_level"},
		{"inverted year range", func(c *Config) { c.StartYear = 2025; c.EndYear = 2020 }, "start_year"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
