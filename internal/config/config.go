// ABOUTME: Configuration loading and parsing for tollgate
// ABOUTME: Supports YAML and TOML files with environment variable expansion and duration parsing

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Default cooldowns applied when the config leaves them unset.
const (
	DefaultAddressCooldown   = 5 * time.Second
	DefaultPrincipalCooldown = 3 * time.Second
)

// Config represents the complete tollgate configuration
type Config struct {
	Server    ServerConfig    `yaml:"server" toml:"server"`
	Database  DatabaseConfig  `yaml:"database" toml:"database"`
	Auth      AuthConfig      `yaml:"auth" toml:"auth"`
	RateLimit RateLimitConfig `yaml:"rate_limit" toml:"rate_limit"`
	Logging   LoggingConfig   `yaml:"logging" toml:"logging"`
	Metrics   MetricsConfig   `yaml:"metrics" toml:"metrics"`
}

// ServerConfig holds server address configuration
type ServerConfig struct {
	HTTPAddr string `yaml:"http_addr" toml:"http_addr"`
	// TrustForwardedFor keys the address limiter on X-Forwarded-For.
	// Only enable behind a proxy that overwrites the header.
	TrustForwardedFor bool `yaml:"trust_forwarded_for" toml:"trust_forwarded_for"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Path string `yaml:"path" toml:"path"`
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret" toml:"jwt_secret"`
}

// RateLimitConfig holds the cooldown for each limiter
type RateLimitConfig struct {
	AddressCooldown   time.Duration `yaml:"-" toml:"-"`
	PrincipalCooldown time.Duration `yaml:"-" toml:"-"`
	SweepInterval     time.Duration `yaml:"-" toml:"-"`

	// Raw string values for YAML/TOML unmarshaling
	AddressCooldownRaw   string `yaml:"address_cooldown" toml:"address_cooldown"`
	PrincipalCooldownRaw string `yaml:"principal_cooldown" toml:"principal_cooldown"`
	SweepIntervalRaw     string `yaml:"sweep_interval" toml:"sweep_interval"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"`
}

// MetricsConfig holds metrics endpoint configuration
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" toml:"enabled"`
	Path    string `yaml:"path" toml:"path"`
}

// Load reads a configuration file from the given path and returns a parsed Config.
// Files ending in .toml are decoded as TOML, everything else as YAML.
// Environment variables in the format ${VAR_NAME} are expanded.
// Duration strings are parsed into time.Duration values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the raw content
	expandedData := expandEnvVars(string(data))

	var cfg Config
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.Decode(expandedData, &cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	} else {
		if err := yaml.Unmarshal([]byte(expandedData), &cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := parseDurations(&cfg); err != nil {
		return nil, fmt.Errorf("parsing durations: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// expandEnvVars replaces ${VAR_NAME} patterns with the corresponding environment variable values.
// If the environment variable is not set, it is replaced with an empty string.
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)

	return re.ReplaceAllStringFunc(s, func(match string) string {
		varName := re.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}

func (c *Config) applyDefaults() {
	if c.RateLimit.AddressCooldownRaw == "" {
		c.RateLimit.AddressCooldown = DefaultAddressCooldown
	}
	if c.RateLimit.PrincipalCooldownRaw == "" {
		c.RateLimit.PrincipalCooldown = DefaultPrincipalCooldown
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
}

// Validate checks that all required configuration fields are present and valid.
// Returns an error describing the first validation failure encountered.
func (c *Config) Validate() error {
	if c.Server.HTTPAddr == "" {
		return fmt.Errorf("server.http_addr is required")
	}

	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret is required")
	}
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 bytes")
	}

	if c.RateLimit.AddressCooldown <= 0 {
		return fmt.Errorf("rate_limit.address_cooldown must be positive")
	}
	if c.RateLimit.PrincipalCooldown <= 0 {
		return fmt.Errorf("rate_limit.principal_cooldown must be positive")
	}
	if c.RateLimit.SweepInterval < 0 {
		return fmt.Errorf("rate_limit.sweep_interval must not be negative")
	}

	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("metrics.path must start with /")
	}

	return nil
}

// parseDurations converts the raw duration strings into time.Duration values
func parseDurations(cfg *Config) error {
	var err error

	if cfg.RateLimit.AddressCooldownRaw != "" {
		cfg.RateLimit.AddressCooldown, err = time.ParseDuration(cfg.RateLimit.AddressCooldownRaw)
		if err != nil {
			return fmt.Errorf("parsing address_cooldown %q: %w", cfg.RateLimit.AddressCooldownRaw, err)
		}
	}

	if cfg.RateLimit.PrincipalCooldownRaw != "" {
		cfg.RateLimit.PrincipalCooldown, err = time.ParseDuration(cfg.RateLimit.PrincipalCooldownRaw)
		if err != nil {
			return fmt.Errorf("parsing principal_cooldown %q: %w", cfg.RateLimit.PrincipalCooldownRaw, err)
		}
	}

	if cfg.RateLimit.SweepIntervalRaw != "" {
		cfg.RateLimit.SweepInterval, err = time.ParseDuration(cfg.RateLimit.SweepIntervalRaw)
		if err != nil {
			return fmt.Errorf("parsing sweep_interval %q: %w", cfg.RateLimit.SweepIntervalRaw, err)
		}
	}

	return nil
}
