package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Validate checks high-impact runtime configuration constraints.
func (c Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("database_url must not be empty")
	}
	if c.DashboardPort != "" {
		port, err := strconv.Atoi(c.DashboardPort)
		if err != nil || port < 1 || port > 65535 {
			return fmt.Errorf("dashboard_port must be a valid port, got %q", c.DashboardPort)
		}
	}
	level := strings.ToLower(strings.TrimSpace(c.LogLevel))
	switch level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be debug, info, warn or error, got %q", c.LogLevel)
	}
	if c.StartYear > c.EndYear {
		return fmt.Errorf("start_year %d must not be after end_year %d", c.StartYear, c.EndYear)
	}
	if c.StartYear < 1900 || c.EndYear > 2200 {
		return fmt.Errorf("year range %d-%d out of bounds", c.StartYear, c.EndYear)
	}
	return nil
}
