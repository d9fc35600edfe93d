// Package config loads cgrep's optional YAML configuration file and
// supplies defaults for everything it does not set. Command-line flags
// always override configuration file values.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is where LoadConfig looks when no explicit path is
// given.
const DefaultConfigPath = ".cgrep.yaml"

// Config represents cgrep configuration options.
type Config struct {
	// Workers is the worker pool size (0 = one worker per CPU).
	Workers int `yaml:"workers"`

	// LogLevel sets diagnostic verbosity (debug, info, warn, error).
	LogLevel string `yaml:"log_level"`

	// NoColor disables colorized output even on a terminal.
	NoColor bool `yaml:"no_color"`

	// ExcludeDirs lists directory names skipped during the walk.
	ExcludeDirs []string `yaml:"exclude_dirs"`

	// Include lists glob patterns; when set, only matching files are
	// searched.
	Include []string `yaml:"include"`

	// Exclude lists glob patterns for files to skip.
	Exclude []string `yaml:"exclude"`
}

// DefaultConfig returns a Config with sensible default values: every
// file under the root is searched, with one worker per CPU.
func DefaultConfig() *Config {
	return &Config{
		Workers:  0,
		LogLevel: "info",
	}
}

// LoadConfig loads configuration from the specified file path, merging
// it over the defaults. A missing file is not an error and yields the
// defaults; a file that exists but cannot be read or parsed is.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	// Apply non-zero values from the file over the defaults.
	if fileCfg.Workers != 0 {
		cfg.Workers = fileCfg.Workers
	}
	if fileCfg.LogLevel != "" {
		cfg.LogLevel = fileCfg.LogLevel
	}
	if fileCfg.NoColor {
		cfg.NoColor = true
	}
	if len(fileCfg.ExcludeDirs) > 0 {
		cfg.ExcludeDirs = fileCfg.ExcludeDirs
	}
	if len(fileCfg.Include) > 0 {
		cfg.Include = fileCfg.Include
	}
	if len(fileCfg.Exclude) > 0 {
		cfg.Exclude = fileCfg.Exclude
	}

	if cfg.Workers < 0 {
		return nil, fmt.Errorf("workers must not be negative, got %d", cfg.Workers)
	}

	return cfg, nil
}
