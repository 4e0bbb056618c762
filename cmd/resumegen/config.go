package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	envparse "github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/natefinch/atomic"
)

// Config holds the tool-level settings persisted in the JSON config file.
// Every field can also be overridden through a RESUMEGEN_* environment
// variable, loaded after the file so the environment wins.
type Config struct {
	LogLevel       string `json:"log_level" env:"RESUMEGEN_LOG_LEVEL"`
	TemplatePath   string `json:"template_path" env:"RESUMEGEN_TEMPLATE"`
	HistoryEnabled bool   `json:"history_enabled" env:"RESUMEGEN_HISTORY"`
	HistoryDBPath  string `json:"history_database_path" env:"RESUMEGEN_HISTORY_DB"`
}

// DefaultConfig creates a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:       "info",
		TemplatePath:   "templates/resume_base.mustache.html",
		HistoryEnabled: true,
		HistoryDBPath:  "./data/resumegen_history.db?_journal_mode=WAL&_busy_timeout=5000",
	}
}

// LoadConfig reads the configuration from a JSON file at the given path and
// applies environment overrides. If the file doesn't exist, it is created
// with default values. A .env file in the working directory, when present,
// is loaded before the environment is read.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	file, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			var data []byte
			data, err = json.MarshalIndent(config, "", "  ")
			if err != nil {
				return nil, fmt.Errorf("failed to marshal default config: %w", err)
			}
			if err = atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
				// The tool can still run with defaults, so warn instead of failing.
				fmt.Printf("warning: failed to write default config file: %v\n", err)
			}
			return config, applyEnv(config)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err = json.Unmarshal(file, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, applyEnv(config)
}

func applyEnv(config *Config) error {
	// Missing .env is the normal case, not an error.
	_ = godotenv.Load()
	if err := envparse.Parse(config); err != nil {
		return fmt.Errorf("failed to parse environment overrides: %w", err)
	}
	return nil
}
