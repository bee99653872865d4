// Package config holds the sigwait CLI configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Signals to manage, by canonical short name (HUP, ALRM, USR1).
	Signals []string `yaml:"signals"`

	// ExtraFlags is ORed into the installed handler's sa_flags where the
	// platform supports it.
	ExtraFlags uint64 `yaml:"extra_flags"`

	// QuitSignal ends the wait loop when consumed.
	QuitSignal string `yaml:"quit_signal"`

	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig configures structured log output.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`

	// Format is text or json.
	Format string `yaml:"format"`
}

// Load reads and validates a YAML config file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return LoadFromBytes(b)
}

// LoadFromBytes parses configuration from bytes.
func LoadFromBytes(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	applyDefaults(&cfg)
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration used when no config file is given.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.QuitSignal == "" {
		cfg.QuitSignal = "TERM"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
}

func validateConfig(cfg *Config) error {
	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging level: %q", cfg.Logging.Level)
	}
	switch cfg.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid logging format: %q", cfg.Logging.Format)
	}
	return nil
}
