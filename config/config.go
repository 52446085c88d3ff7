// Package config resolves console configuration from defaults, an optional
// YAML file, environment variables and CLI overrides, in that order of
// increasing precedence.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultAPIBaseURL mirrors the dev proxy target the console grew up
	// against; deployments override it via file, env or flag.
	DefaultAPIBaseURL = "http://localhost:8002/api"

	defaultTimeout         = 30 * time.Second
	defaultNotificationTTL = 5 * time.Second
	defaultLogLevel        = "info"

	// EnvAPIBaseURL overrides the API base URL.
	EnvAPIBaseURL = "CUSTODY_API_URL"
	// EnvLogLevel overrides the log level.
	EnvLogLevel = "CUSTODY_LOG_LEVEL"
)

// Config is the resolved console configuration.
type Config struct {
	APIBaseURL      string
	Timeout         time.Duration
	NotificationTTL time.Duration
	LogLevel        string
}

type configTmp struct {
	APIBaseURL         string `yaml:"api_base_url"`
	TimeoutStr         string `yaml:"timeout,omitempty"`
	NotificationTTLStr string `yaml:"notification_ttl,omitempty"`
	LogLevel           string `yaml:"log_level,omitempty"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		APIBaseURL:      DefaultAPIBaseURL,
		Timeout:         defaultTimeout,
		NotificationTTL: defaultNotificationTTL,
		LogLevel:        defaultLogLevel,
	}
}

// Load resolves the configuration. path may be empty (no file).
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		fileCfg, err := fromYaml(path)
		if err != nil {
			return Config{}, err
		}
		cfg = cfg.merge(fileCfg)
	}

	if v := os.Getenv(EnvAPIBaseURL); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func fromYaml(path string) (Config, error) {
	f, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	var tmp configTmp
	if err := yaml.Unmarshal(f, &tmp); err != nil {
		return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
	}

	var out Config
	out.APIBaseURL = tmp.APIBaseURL
	out.LogLevel = tmp.LogLevel

	if tmp.TimeoutStr != "" {
		d, err := time.ParseDuration(tmp.TimeoutStr)
		if err != nil {
			return Config{}, fmt.Errorf("incorrect 'timeout' param in yaml config (example: 30s): %w", err)
		}
		out.Timeout = d
	}
	if tmp.NotificationTTLStr != "" {
		d, err := time.ParseDuration(tmp.NotificationTTLStr)
		if err != nil {
			return Config{}, fmt.Errorf("incorrect 'notification_ttl' param in yaml config (example: 5s): %w", err)
		}
		out.NotificationTTL = d
	}
	return out, nil
}

// merge overlays non-zero fields of other on c.
func (c Config) merge(other Config) Config {
	if other.APIBaseURL != "" {
		c.APIBaseURL = other.APIBaseURL
	}
	if other.Timeout != 0 {
		c.Timeout = other.Timeout
	}
	if other.NotificationTTL != 0 {
		c.NotificationTTL = other.NotificationTTL
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
	return c
}

func (c Config) validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("api_base_url must not be empty")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.NotificationTTL <= 0 {
		return fmt.Errorf("notification_ttl must be positive, got %s", c.NotificationTTL)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q (expected debug, info, warn or error)", c.LogLevel)
	}
	return nil
}
