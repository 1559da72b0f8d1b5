// Package config loads holocron's YAML configuration and applies
// environment overrides on top of built-in defaults.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rshade/holocron/internal/catalog"
)

// Environment variables recognised by Load.
const (
	EnvHome       = "HOLOCRON_HOME"
	EnvConfig     = "HOLOCRON_CONFIG"
	EnvBaseURL    = "HOLOCRON_API_BASE_URL"
	EnvPageLimit  = "HOLOCRON_API_PAGE_LIMIT"
	EnvLogLevel   = "HOLOCRON_LOG_LEVEL"
	EnvLogFormat  = "HOLOCRON_LOG_FORMAT"
	configFile    = "config.yaml"
	configDirName = ".holocron"
	configDirPerm = 0o700
	configPerm    = 0o600
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the full holocron configuration.
type Config struct {
	API     APIConfig     `yaml:"api"`
	UI      UIConfig      `yaml:"ui"`
	Logging LoggingConfig `yaml:"logging"`
}

// APIConfig controls how the remote API is reached.
type APIConfig struct {
	BaseURL   string `yaml:"base_url"`
	PageLimit int    `yaml:"page_limit"`
	// Timeout bounds each request; zero means no timeout.
	Timeout time.Duration `yaml:"timeout"`
}

// UIConfig controls the interactive browser.
type UIConfig struct {
	DefaultCategory string `yaml:"default_category"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	File       string `yaml:"file,omitempty"`
	MaxSizeMB  int    `yaml:"max_size_mb,omitempty"`
	MaxBackups int    `yaml:"max_backups,omitempty"`
}

// New returns the built-in defaults.
func New() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:   catalog.DefaultBaseURL,
			PageLimit: catalog.DefaultPageLimit,
		},
		UI: UIConfig{
			DefaultCategory: string(catalog.Films),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load builds a Config from defaults, the YAML file at path (skipped when it
// does not exist) and environment overrides, then validates it.
func Load(path string) (*Config, error) {
	cfg := New()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if mergeErr := ShallowMergeYAML(cfg, path); mergeErr != nil {
				return nil, mergeErr
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("checking config file %s: %w", path, err)
		}
	}

	cfg.ApplyEnv(os.LookupEnv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from environment variables.
func (c *Config) ApplyEnv(lookupEnv func(string) (string, bool)) {
	if v, ok := lookupEnv(EnvBaseURL); ok && v != "" {
		c.API.BaseURL = v
	}
	if v, ok := lookupEnv(EnvPageLimit); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.API.PageLimit = n
		}
	}
	if v, ok := lookupEnv(EnvLogLevel); ok && v != "" {
		c.Logging.Level = v
	}
	if v, ok := lookupEnv(EnvLogFormat); ok && v != "" {
		c.Logging.Format = v
	}
}

// Validate checks the configuration for values that would make the client unusable.
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: api.base_url %q must be an http(s) URL", ErrInvalidConfig, c.API.BaseURL)
	}
	if c.API.PageLimit <= 0 {
		return fmt.Errorf("%w: api.page_limit must be > 0, got %d", ErrInvalidConfig, c.API.PageLimit)
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("%w: api.timeout must be >= 0, got %s", ErrInvalidConfig, c.API.Timeout)
	}
	if _, err := catalog.ParseCategory(c.UI.DefaultCategory); err != nil {
		return fmt.Errorf("%w: ui.default_category: %w", ErrInvalidConfig, err)
	}
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("%w: logging.format must be console or json, got %q", ErrInvalidConfig, c.Logging.Format)
	}
	return nil
}

// Save writes the configuration as YAML to path, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), configDirPerm); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err = os.WriteFile(path, data, configPerm); err != nil {
		return fmt.Errorf("writing config file %s: %w", path, err)
	}
	return nil
}

// GetConfigDir returns the holocron configuration directory.
func GetConfigDir() (string, error) {
	if home := os.Getenv(EnvHome); home != "" {
		return home, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, configDirName), nil
}

// ResolvePath returns the config file to use: flagValue, then
// HOLOCRON_CONFIG, then config.yaml in the config directory.
func ResolvePath(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if env := os.Getenv(EnvConfig); env != "" {
		return env, nil
	}
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFile), nil
}

// DefaultLogFile returns the log path used when the TUI needs file logging
// and none is configured.
func DefaultLogFile() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "logs", "holocron.log"), nil
}
