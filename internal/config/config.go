package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultServerURL is the local development API
const DefaultServerURL = "http://localhost:5000"

// Config holds user preferences
type Config struct {
	ServerURL      string        `yaml:"server_url" json:"server_url"`           // Base URL of the todo API
	ConfirmDelete  bool          `yaml:"confirm_delete" json:"confirm_delete"`   // Require confirmation for delete
	RequestTimeout time.Duration `yaml:"request_timeout" json:"request_timeout"` // HTTP client timeout
	ToastDuration  time.Duration `yaml:"toast_duration" json:"toast_duration"`   // How long notifications stay on screen
	DataDir        string        `yaml:"data_dir" json:"data_dir"`               // Token storage and lock file

	// Logging configuration
	LogLevel   string `yaml:"log_level" json:"log_level"`     // Log level: DEBUG, INFO, WARN, ERROR
	LogFile    string `yaml:"log_file" json:"log_file"`       // Path to log file
	LogConsole bool   `yaml:"log_console" json:"log_console"` // Enable console logging

	path string
}

// DefaultDir returns ~/.irontodo, or .irontodo when no home is available
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".irontodo"
	}
	return filepath.Join(home, ".irontodo")
}

// DefaultPath returns the config file location
func DefaultPath() string {
	return filepath.Join(DefaultDir(), "config.yaml")
}

// DefaultConfig returns default settings
func DefaultConfig() *Config {
	dataDir := getEnv("IRONTODO_DATA_DIR", DefaultDir())

	return &Config{
		ServerURL:      getEnv("IRONTODO_SERVER_URL", DefaultServerURL),
		ConfirmDelete:  true,
		RequestTimeout: 30 * time.Second,
		ToastDuration:  4 * time.Second,
		DataDir:        dataDir,
		LogLevel:       getEnv("IRONTODO_LOG_LEVEL", "INFO"),
		LogFile:        getEnv("IRONTODO_LOG_FILE", filepath.Join(dataDir, "logs", "irontodo.log")),
		LogConsole:     getEnv("IRONTODO_LOG_CONSOLE", "false") == "true",
		path:           DefaultPath(),
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Load loads config from ~/.irontodo/config.yaml
func Load() (*Config, error) {
	return LoadFrom(DefaultPath())
}

// LoadFrom loads config from path. A missing file yields the defaults.
// Environment variables win over the file.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.path = path

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.applyEnv()

	return cfg, nil
}

func (c *Config) applyEnv() {
	c.ServerURL = getEnv("IRONTODO_SERVER_URL", c.ServerURL)
	c.DataDir = getEnv("IRONTODO_DATA_DIR", c.DataDir)
	c.LogLevel = getEnv("IRONTODO_LOG_LEVEL", c.LogLevel)
	c.LogFile = getEnv("IRONTODO_LOG_FILE", c.LogFile)
	if v := os.Getenv("IRONTODO_LOG_CONSOLE"); v != "" {
		c.LogConsole = v == "true"
	}
}

// Path returns the file this config is saved to
func (c *Config) Path() string {
	if c.path == "" {
		return DefaultPath()
	}
	return c.path
}

// DBPath returns the token storage database path
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, "irontodo.db")
}

// LockPath returns the single-instance lock file path
func (c *Config) LockPath() string {
	return filepath.Join(c.DataDir, "irontodo.lock")
}

// Validate checks the settings that would otherwise fail late
func (c *Config) Validate() error {
	u, err := url.Parse(c.ServerURL)
	if err != nil {
		return fmt.Errorf("invalid server_url %q: %w", c.ServerURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid server_url %q: scheme must be http or https", c.ServerURL)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid server_url %q: missing host", c.ServerURL)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request_timeout must not be negative")
	}
	if c.DataDir == "" {
		return fmt.Errorf("data_dir must be set")
	}
	return nil
}

// SetServer normalizes and stores the API base URL
func (c *Config) SetServer(raw string) error {
	prev := c.ServerURL
	c.ServerURL = strings.TrimRight(strings.TrimSpace(raw), "/")
	if err := c.Validate(); err != nil {
		c.ServerURL = prev
		return err
	}
	return nil
}

// Save saves config to its path
func (c *Config) Save() error {
	path := c.Path()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
