// Package config loads the settings of a conversion: a YAML file with
// defaults applied, overridden by XSD_BINDER_* environment variables.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "XSD_BINDER_"

// Config holds the settings shared by all commands.
type Config struct {
	// Fetching
	AllowLocal  bool          `yaml:"allow_local"`
	ForceHost   string        `yaml:"force_host,omitempty"`
	ForcePort   int           `yaml:"force_port,omitempty"`
	CacheDir    string        `yaml:"cache_dir,omitempty"`
	Concurrency int           `yaml:"concurrency"`
	Timeout     time.Duration `yaml:"timeout"`

	// Model
	Duplicates      string `yaml:"duplicates"`
	IncludeBuiltins bool   `yaml:"include_builtins"`

	// Output
	OutDir string `yaml:"out_dir"`
	Format string `yaml:"format"`

	// Server
	Listen string `yaml:"listen"`

	LogLevel string `yaml:"log_level"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)

	return cfg
}

// Load reads path (when non-empty) and applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		var err error

		cfg, err = LoadFile(path)
		if err != nil {
			return nil, err
		}
	}

	ApplyEnv(cfg)

	return cfg, nil
}

// LoadFile loads and parses a YAML config file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	applyDefaults(&cfg)

	return &cfg, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(cfg *Config) {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 4
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	if cfg.Duplicates == "" {
		cfg.Duplicates = "overwrite"
	}

	if cfg.OutDir == "" {
		cfg.OutDir = "out"
	}

	if cfg.Format == "" {
		cfg.Format = "yaml"
	}

	if cfg.Listen == "" {
		cfg.Listen = ":8090"
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
}

// ApplyEnv overrides cfg from XSD_BINDER_* variables. Unparseable values
// are ignored.
func ApplyEnv(cfg *Config) {
	cfg.AllowLocal = envBool("ALLOW_LOCAL", cfg.AllowLocal)
	cfg.ForceHost = envOr("FORCE_HOST", cfg.ForceHost)
	cfg.ForcePort = envInt("FORCE_PORT", cfg.ForcePort)
	cfg.CacheDir = envOr("CACHE_DIR", cfg.CacheDir)
	cfg.Concurrency = envInt("CONCURRENCY", cfg.Concurrency)
	cfg.Timeout = envDuration("TIMEOUT", cfg.Timeout)
	cfg.Duplicates = envOr("DUPLICATES", cfg.Duplicates)
	cfg.IncludeBuiltins = envBool("INCLUDE_BUILTINS", cfg.IncludeBuiltins)
	cfg.OutDir = envOr("OUT_DIR", cfg.OutDir)
	cfg.Format = envOr("FORMAT", cfg.Format)
	cfg.Listen = envOr("LISTEN", cfg.Listen)
	cfg.LogLevel = envOr("LOG_LEVEL", cfg.LogLevel)
}

// Validate checks the settings that have a closed set of values.
func (c *Config) Validate() error {
	if c.Concurrency <= 0 {
		return fmt.Errorf("concurrency must be positive, got %d", c.Concurrency)
	}

	if c.ForcePort < 0 || c.ForcePort > 65535 {
		return fmt.Errorf("force_port out of range: %d", c.ForcePort)
	}

	if c.ForcePort != 0 && c.ForceHost == "" {
		return fmt.Errorf("force_port requires force_host")
	}

	switch strings.ToLower(c.Format) {
	case "yaml", "yml", "json":
	default:
		return fmt.Errorf("unknown format %q", c.Format)
	}

	switch strings.ToLower(c.Duplicates) {
	case "overwrite", "warn", "reject":
	default:
		return fmt.Errorf("unknown duplicates policy %q", c.Duplicates)
	}

	if _, err := c.Level(); err != nil {
		return err
	}

	return nil
}

// Level returns the slog level named by LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return level, fmt.Errorf("unknown log level %q: %w", c.LogLevel, err)
	}

	return level, nil
}

// Marshal serializes a Config to YAML.
func Marshal(cfg *Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(EnvPrefix + key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(EnvPrefix + key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(EnvPrefix + key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(EnvPrefix + key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
