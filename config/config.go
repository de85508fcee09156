// Package config loads the application configuration from a YAML file with
// environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration. The pure engine packages take
// their inputs explicitly; this only wires the I/O layers and the engine
// defaults used by the CLI.
type Config struct {
	FRED struct {
		BaseURL string `yaml:"base_url"`
		Start   string `yaml:"start"` // YYYY-MM-DD; observations before it are dropped
	} `yaml:"fred"`
	Database struct {
		DSN          string        `yaml:"dsn"`
		QueryTimeout time.Duration `yaml:"query_timeout"`
	} `yaml:"database"`
	Engine struct {
		BumpBP        float64 `yaml:"bump_bp"`
		Interpolation string  `yaml:"interpolation"`
	} `yaml:"engine"`
	Schedule struct {
		FetchCron string `yaml:"fetch_cron"`
	} `yaml:"schedule"`
}

// Load reads config from a YAML file (a missing file is fine), then applies
// environment variable overrides and defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("CURVELAB_FRED_BASE_URL"); v != "" {
		cfg.FRED.BaseURL = v
	}
	if v := os.Getenv("CURVELAB_FRED_START"); v != "" {
		cfg.FRED.Start = v
	}
	if v := os.Getenv("CURVELAB_PG_DSN"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("CURVELAB_BUMP_BP"); v != "" {
		bump, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("CURVELAB_BUMP_BP: %w", err)
		}
		cfg.Engine.BumpBP = bump
	}
	if v := os.Getenv("CURVELAB_FETCH_CRON"); v != "" {
		cfg.Schedule.FetchCron = v
	}

	// Defaults
	if cfg.FRED.Start == "" {
		cfg.FRED.Start = "2000-01-01"
	}
	if cfg.Database.QueryTimeout == 0 {
		cfg.Database.QueryTimeout = 30 * time.Second
	}
	if cfg.Engine.BumpBP == 0 {
		cfg.Engine.BumpBP = 1.0
	}
	if cfg.Engine.Interpolation == "" {
		cfg.Engine.Interpolation = "linear"
	}
	if cfg.Schedule.FetchCron == "" {
		// Weekday evenings, after FRED posts the day's H.15 yields.
		cfg.Schedule.FetchCron = "0 30 18 * * 1-5"
	}

	return cfg, nil
}

// StartDate parses the configured FRED start date.
func (c *Config) StartDate() (time.Time, error) {
	t, err := time.Parse("2006-01-02", c.FRED.Start)
	if err != nil {
		return time.Time{}, fmt.Errorf("fred.start: %w", err)
	}
	return t, nil
}
