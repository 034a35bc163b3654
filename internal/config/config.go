// Package config loads desk settings from a YAML file and the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds everything main needs to wire the application.
type Config struct {
	DatabasePath string        `yaml:"database_path"`
	LogLevel     string        `yaml:"log_level"`
	Timezone     string        `yaml:"timezone"`
	HistoryDays  int           `yaml:"history_days"`
	TickInterval time.Duration `yaml:"tick_interval"`
}

// Dir is the per-user state directory, ~/.projectdesk.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".projectdesk"), nil
}

// DefaultConfig returns the settings used when neither the file nor the
// environment say otherwise. DatabasePath is left empty when the home
// directory cannot be determined.
func DefaultConfig() Config {
	cfg := Config{
		LogLevel:     "warn",
		Timezone:     "Local",
		HistoryDays:  14,
		TickInterval: time.Second,
	}
	if dir, err := Dir(); err == nil {
		cfg.DatabasePath = filepath.Join(dir, "desk.db")
	}
	return cfg
}

// Path returns the config file location: DESK_CONFIG or
// ~/.projectdesk/config.yaml.
func Path() (string, error) {
	if v := os.Getenv("DESK_CONFIG"); v != "" {
		return v, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the YAML file at path on top of the defaults, then applies
// environment overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("DESK_DB"); v != "" {
		cfg.DatabasePath = v
	}
	if v := os.Getenv("DESK_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("DESK_TIMEZONE"); v != "" {
		cfg.Timezone = v
	}
	if v := os.Getenv("DESK_HISTORY_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.HistoryDays = n
		}
	}
	if v := os.Getenv("DESK_TICK"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.TickInterval = d
		}
	}
}

// Validate rejects settings the application cannot run with.
func (c Config) Validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("database_path is required (set DESK_DB)")
	}
	if c.HistoryDays <= 0 {
		return fmt.Errorf("history_days must be positive, got %d", c.HistoryDays)
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("tick_interval must be positive, got %s", c.TickInterval)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves Timezone. "Local" and "" mean the machine's zone.
func (c Config) Location() (*time.Location, error) {
	switch strings.TrimSpace(c.Timezone) {
	case "", "Local", "local":
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
