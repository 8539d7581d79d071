package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config carries everything the server and setup CLIs need. Values come from
// Default, then an optional YAML file, then environment variables, in that
// order of precedence.
type Config struct {
	DatabaseURL   string `yaml:"database_url"`
	LogLevel      string `yaml:"log_level"`
	LogFile       string `yaml:"log_file"`
	DashboardHost string `yaml:"dashboard_host"`
	DashboardPort string `yaml:"dashboard_port"`
	StaticDir     string `yaml:"static_dir"`
	OutputDir     string `yaml:"output_dir"`

	StartYear int `yaml:"start_year"`
	EndYear   int `yaml:"end_year"`

	Keys APIKeys `yaml:"api_keys"`
}

// APIKeys holds credentials for external data sources. All optional; sample
// data generation never needs them.
type APIKeys struct {
	WorldBank    string `yaml:"world_bank"`
	IMF          string `yaml:"imf"`
	OECD         string `yaml:"oecd"`
	FRED         string `yaml:"fred"`
	AlphaVantage string `yaml:"alpha_vantage"`
}

func Default() Config {
	return Config{
		DatabaseURL:   "trade_analysis.db",
		LogLevel:      "info",
		DashboardHost: "0.0.0.0",
		DashboardPort: "8080",
		OutputDir:     ".",
		StartYear:     2020,
		EndYear:       2023,
	}
}

// LoadFile overlays a YAML config file on top of the defaults.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from environment variables.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.DatabaseURL = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("LOG_FILE"); v != "" {
		c.LogFile = v
	}
	if v := os.Getenv("DASHBOARD_HOST"); v != "" {
		c.DashboardHost = v
	}
	if v := os.Getenv("DASHBOARD_PORT"); v != "" {
		c.DashboardPort = v
	}
	if v := os.Getenv("STATIC_DIR"); v != "" {
		c.StaticDir = v
	}
	if v := os.Getenv("OUTPUT_DIR"); v != "" {
		c.OutputDir = v
	}
	if v := os.Getenv("START_YEAR"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.StartYear = n
		}
	}
	if v := os.Getenv("END_YEAR"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.EndYear = n
		}
	}
	if v := os.Getenv("WORLD_BANK_API_KEY"); v != "" {
		c.Keys.WorldBank = v
	}
	if v := os.Getenv("IMF_API_KEY"); v != "" {
		c.Keys.IMF = v
	}
	if v := os.Getenv("OECD_API_KEY"); v != "" {
		c.Keys.OECD = v
	}
	if v := os.Getenv("FRED_API_KEY"); v != "" {
		c.Keys.FRED = v
	}
	if v := os.Getenv("ALPHA_VANTAGE_API_KEY"); v != "" {
		c.Keys.AlphaVantage = v
	}
}

// FromEnv builds a config from defaults plus environment so main stays lean.
func FromEnv() Config {
	cfg := Default()
	cfg.ApplyEnv()
	return cfg
}

// Addr returns the dashboard listen address.
func (c Config) Addr() string {
	return c.DashboardHost + ":" + c.DashboardPort
}
