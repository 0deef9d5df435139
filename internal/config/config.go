package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Store backends
const (
	StoreFile   = "file"
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// Config represents the guidemark configuration
type Config struct {
	Store     string        `json:"store"`
	StorePath string        `json:"store_path"`
	RedisURL  string        `json:"redis_url,omitempty"`
	CacheTTL  time.Duration `json:"-"` // Custom JSON handling below
	LogFile   string        `json:"log_file,omitempty"`
	LogLevel  string        `json:"log_level,omitempty"`
	WordWrap  int           `json:"word_wrap,omitempty"`
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Store:     StoreFile,
		StorePath: StoreFilePath(),
		LogLevel:  "info",
		WordWrap:  100,
	}
}

// ConfigPath returns the path to the config file
// Uses ~/.config on all platforms for consistency
// Can be overridden for testing
var ConfigPath = func() string {
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to XDG if home dir unavailable
		return filepath.Join(xdg.ConfigHome, "guidemark", "config.json")
	}
	return filepath.Join(home, ".config", "guidemark", "config.json")
}

// StoreFilePath returns the default location of the file store
// Uses platform-specific XDG data directory
// Can be overridden for testing
var StoreFilePath = func() string {
	return filepath.Join(xdg.DataHome, "guidemark", "guides.json")
}

// rawConfig is the on-disk form, with the cache TTL as a duration string
type rawConfig struct {
	Store     string `json:"store"`
	StorePath string `json:"store_path"`
	RedisURL  string `json:"redis_url,omitempty"`
	CacheTTL  string `json:"cache_ttl,omitempty"`
	LogFile   string `json:"log_file,omitempty"`
	LogLevel  string `json:"log_level,omitempty"`
	WordWrap  int    `json:"word_wrap,omitempty"`
}

// Load reads configuration from the config directory
func Load() (*Config, error) {
	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		// Return default config if file doesn't exist
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	var raw rawConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg := DefaultConfig()
	if raw.Store != "" {
		cfg.Store = raw.Store
	}
	if raw.StorePath != "" {
		cfg.StorePath = raw.StorePath
	}
	if raw.LogLevel != "" {
		cfg.LogLevel = raw.LogLevel
	}
	if raw.WordWrap != 0 {
		cfg.WordWrap = raw.WordWrap
	}
	cfg.RedisURL = raw.RedisURL
	cfg.LogFile = raw.LogFile

	if raw.CacheTTL != "" {
		ttl, err := time.ParseDuration(raw.CacheTTL)
		if err != nil {
			return nil, fmt.Errorf("invalid cache_ttl format '%s': %w", raw.CacheTTL, err)
		}
		cfg.CacheTTL = ttl
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := cfg.ExpandPaths(); err != nil {
		return nil, fmt.Errorf("failed to expand paths: %w", err)
	}

	return cfg, nil
}

// Save writes configuration to the config directory
func (c *Config) Save() error {
	configPath := ConfigPath()

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	raw := rawConfig{
		Store:     c.Store,
		StorePath: c.StorePath,
		RedisURL:  c.RedisURL,
		LogFile:   c.LogFile,
		LogLevel:  c.LogLevel,
		WordWrap:  c.WordWrap,
	}
	if c.CacheTTL > 0 {
		raw.CacheTTL = c.CacheTTL.String()
	}

	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.Store {
	case StoreFile:
		if c.StorePath == "" {
			return fmt.Errorf("store_path cannot be empty for the file store")
		}
	case StoreRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("redis_url cannot be empty for the redis store")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("invalid store '%s': must be one of: file, memory, redis", c.Store)
	}

	if c.CacheTTL < 0 {
		return fmt.Errorf("cache_ttl cannot be negative")
	}
	if c.WordWrap < 0 {
		return fmt.Errorf("word_wrap cannot be negative")
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if c.LogLevel != "" && !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level '%s': must be one of: debug, info, warn, error", c.LogLevel)
	}

	return nil
}

// ExpandPaths expands any ~ or relative paths to absolute paths
func (c *Config) ExpandPaths() error {
	var err error

	c.StorePath, err = expandPath(c.StorePath)
	if err != nil {
		return fmt.Errorf("failed to expand store_path: %w", err)
	}

	c.LogFile, err = expandPath(c.LogFile)
	if err != nil {
		return fmt.Errorf("failed to expand log_file: %w", err)
	}

	return nil
}

// expandPath expands ~ to home directory and converts to absolute path
func expandPath(path string) (string, error) {
	if path == "" {
		return path, nil
	}

	// Expand ~ to home directory
	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		if len(path) == 1 {
			return homeDir, nil
		}
		path = filepath.Join(homeDir, path[1:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	return absPath, nil
}
