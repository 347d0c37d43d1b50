package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds user preferences
type Config struct {
	DefaultView     string `yaml:"default_view" json:"default_view"`         // Starting view: day, week, month
	DefaultDuration int    `yaml:"default_duration" json:"default_duration"` // New appointment length in minutes
	DefaultColor    string `yaml:"default_color" json:"default_color"`       // New appointment color
	ConfirmDelete   bool   `yaml:"confirm_delete" json:"confirm_delete"`     // Require confirmation for delete

	// Server configuration
	ListenAddr    string `yaml:"listen_addr" json:"listen_addr"`         // agenda-server bind address
	APITokenHash  string `yaml:"api_token_hash" json:"api_token_hash"`   // bcrypt hash; empty disables auth
	BackupCron    string `yaml:"backup_cron" json:"backup_cron"`         // cron schedule for JSON backups
	BackupPath    string `yaml:"backup_path" json:"backup_path"`         // backup file destination

	// Logging configuration
	LogLevel   string `yaml:"log_level" json:"log_level"`     // Log level: DEBUG, INFO, WARN, ERROR
	LogFile    string `yaml:"log_file" json:"log_file"`       // Path to log file
	LogConsole bool   `yaml:"log_console" json:"log_console"` // Enable console logging
}

// Dir returns the agenda config/data directory (~/.agenda).
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".agenda"), nil
}

// DefaultConfig returns default settings
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	logPath := ""
	backupPath := ""
	if home != "" {
		logPath = filepath.Join(home, ".agenda", "logs", "agenda.log")
		backupPath = filepath.Join(home, ".agenda", "backups", "appointments.json")
	}

	return &Config{
		DefaultView:     getEnv("AGENDA_VIEW", "month"),
		DefaultDuration: 60,
		DefaultColor:    "#4285F4",
		ConfirmDelete:   true,
		ListenAddr:      getEnv("AGENDA_LISTEN", ":8080"),
		BackupCron:      "0 3 * * *",
		BackupPath:      backupPath,
		LogLevel:        getEnv("AGENDA_LOG_LEVEL", "INFO"),
		LogFile:         getEnv("AGENDA_LOG_FILE", logPath),
		LogConsole:      getEnv("AGENDA_LOG_CONSOLE", "false") == "true",
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Load loads config from ~/.agenda/config.yaml
func Load() (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}

	configPath := filepath.Join(dir, "config.yaml")

	// Check if exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		// Return defaults if no config
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// Save saves config to ~/.agenda/config.yaml
func (c *Config) Save() error {
	dir, err := Dir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath := filepath.Join(dir, "config.yaml")
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
