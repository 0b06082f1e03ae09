package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultTimeout bounds every outbound API call unless overridden.
const DefaultTimeout = 30 * time.Second

// Config holds the connection and auth settings shared by every tool
// invocation. It is resolved once at startup and never mutated afterwards.
type Config struct {
	Host     string
	Token    string
	Timeout  time.Duration
	LogLevel string
}

// fileConfig is the YAML shape of an optional config file.
type fileConfig struct {
	Host     string `yaml:"host"`
	Token    string `yaml:"token"`
	Timeout  string `yaml:"timeout"`
	LogLevel string `yaml:"log_level"`
}

// Load resolves configuration from an optional YAML file layered under
// environment variables (DATABRICKS_HOST, DATABRICKS_TOKEN,
// DATABRICKS_TIMEOUT, LOG_LEVEL). Env vars win. path may be empty.
// Missing host or token is a startup error, not a per-call one.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Timeout:  DefaultTimeout,
		LogLevel: "info",
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		var fc fileConfig
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
		cfg.Host = fc.Host
		cfg.Token = fc.Token
		cfg.LogLevel = firstNonEmpty(fc.LogLevel, cfg.LogLevel)
		if fc.Timeout != "" {
			d, err := time.ParseDuration(fc.Timeout)
			if err != nil {
				return nil, fmt.Errorf("invalid timeout %q in %s: %w", fc.Timeout, path, err)
			}
			cfg.Timeout = d
		}
	}

	cfg.Host = firstNonEmpty(os.Getenv("DATABRICKS_HOST"), cfg.Host)
	cfg.Token = firstNonEmpty(os.Getenv("DATABRICKS_TOKEN"), cfg.Token)
	cfg.LogLevel = firstNonEmpty(os.Getenv("LOG_LEVEL"), cfg.LogLevel)
	if v := os.Getenv("DATABRICKS_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid DATABRICKS_TIMEOUT %q: %w", v, err)
		}
		cfg.Timeout = d
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Host == "" {
		return fmt.Errorf("databricks host is required (set DATABRICKS_HOST)")
	}
	if !strings.HasPrefix(c.Host, "https://") && !strings.HasPrefix(c.Host, "http://") {
		return fmt.Errorf("databricks host %q must start with http:// or https://", c.Host)
	}
	if c.Token == "" {
		return fmt.Errorf("databricks token is required (set DATABRICKS_TOKEN)")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
