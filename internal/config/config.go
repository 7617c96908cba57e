// Package config loads the optional .reflint.yaml configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Level is the configured reporting level of a check.
type Level string

const (
	LevelWarn  Level = "warn"
	LevelError Level = "error"
	LevelOff   Level = "off"
)

// Config is the top-level .reflint.yaml configuration.
type Config struct {
	// Checks maps check names to reporting levels. Known checks:
	// needless-lifetimes (default: warn).
	Checks map[string]Level `yaml:"checks,omitempty"`

	// Exclude lists path glob patterns (matched with filepath.Match
	// against the cleaned path) that are skipped entirely.
	Exclude []string `yaml:"exclude,omitempty"`

	// Cache configures the persistent result cache.
	Cache CacheConfig `yaml:"cache,omitempty"`
}

// CacheConfig configures the sqlite-backed result cache.
type CacheConfig struct {
	// Enabled defaults to true; the CLI's -no-cache flag overrides it.
	Enabled *bool `yaml:"enabled,omitempty"`

	// Path is the cache database location. Empty means
	// <user cache dir>/reflint/cache.db.
	Path string `yaml:"path,omitempty"`
}

var knownChecks = map[string]bool{
	CheckNeedlessLifetimes: true,
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Checks: map[string]Level{CheckNeedlessLifetimes: LevelWarn},
	}
}

// Load reads and validates a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault loads path when it exists and falls back to defaults when
// it does not.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}

func (c *Config) Validate() error {
	for name, level := range c.Checks {
		if !knownChecks[name] {
			return fmt.Errorf("unknown check %q", name)
		}
		switch level {
		case LevelWarn, LevelError, LevelOff:
		default:
			return fmt.Errorf("check %q: unknown level %q (want warn, error or off)", name, level)
		}
	}
	return nil
}

// CheckLevel returns the configured level for a check, defaulting to warn.
func (c *Config) CheckLevel(name string) Level {
	if level, ok := c.Checks[name]; ok {
		return level
	}
	return LevelWarn
}

// CacheEnabled reports whether the result cache should be used.
func (c *Config) CacheEnabled() bool {
	if c.Cache.Enabled == nil {
		return true
	}
	return *c.Cache.Enabled
}
