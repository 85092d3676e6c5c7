/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultCeilingBytes is the default arena ceiling (100 MiB)
const DefaultCeilingBytes = 100 * 1024 * 1024

// Config represents the recstore configuration
type Config struct {
	Store   Store   `yaml:"store"`
	Report  Report  `yaml:"report"`
	Logging Logging `yaml:"logging"`
	Metrics Metrics `yaml:"metrics"`
}

// Store contains arena settings shared by both record stores
type Store struct {
	CeilingBytes int    `yaml:"ceiling_bytes"`
	Growth       string `yaml:"growth"`
}

// Report contains calculation report settings
type Report struct {
	Path string `yaml:"path"`
}

// Logging contains logging configuration
type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Metrics contains metrics export configuration
type Metrics struct {
	File string `yaml:"file"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Store: Store{
			CeilingBytes: DefaultCeilingBytes,
			Growth:       "exact",
		},
		Report: Report{
			Path: "results.txt",
		},
		Logging: Logging{
			Level:  "info",
			Format: "json",
		},
	}
}

// Validate checks that every setting holds a usable value
func (c *Config) Validate() error {
	if c.Store.CeilingBytes <= 0 {
		return fmt.Errorf("store.ceiling_bytes must be positive, got %d", c.Store.CeilingBytes)
	}
	switch c.Store.Growth {
	case "exact", "doubling":
	default:
		return fmt.Errorf("store.growth must be exact or doubling, got %q", c.Store.Growth)
	}
	if c.Report.Path == "" {
		return fmt.Errorf("report.path must not be empty")
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}
	return nil
}

// LoadConfig loads configuration from the specified path. Settings missing
// from the file keep their defaults.
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	if !filepath.IsAbs(configPath) {
		absPath, err := filepath.Abs(configPath)
		if err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		configPath = absPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file: %w", err)
	}

	return config, nil
}

// SaveConfig saves the configuration to the specified path
func SaveConfig(config *Config, configPath string) error {
	// Ensure config directory exists
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// BootstrapConfig writes a default configuration to configPath. reportPath,
// when set, replaces the default report location.
func BootstrapConfig(configPath string, reportPath string) (*Config, error) {
	config := DefaultConfig()
	if reportPath != "" {
		config.Report.Path = reportPath
	}

	if err := SaveConfig(config, configPath); err != nil {
		return nil, fmt.Errorf("failed to save bootstrap config: %w", err)
	}

	return config, nil
}

// GetDefaultConfigPath returns the default configuration path for the current platform
func GetDefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./recstore.yaml"
	}

	// For Linux/macOS, use ~/.config/recstore/config.yaml
	configDir := filepath.Join(homeDir, ".config", "recstore")
	return filepath.Join(configDir, "config.yaml")
}

// ConfigExists checks if a configuration file exists
func ConfigExists(configPath string) bool {
	_, err := os.Stat(configPath)
	return !os.IsNotExist(err)
}
