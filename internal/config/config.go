// Package config loads producthouse configuration from a YAML file with
// environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// Config is the full application configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	LLM      LLMConfig      `koanf:"llm"`
	Versions VersionsConfig `koanf:"versions"`
}

type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Path string `koanf:"path"`
}

type LLMConfig struct {
	Endpoint    string  `koanf:"endpoint"`
	APIKey      string  `koanf:"api_key"`
	Model       string  `koanf:"model"`
	MaxTokens   int     `koanf:"max_tokens"`
	Temperature float64 `koanf:"temperature"`
	TimeoutMs   int     `koanf:"timeout_ms"`
	LogCalls    bool    `koanf:"log_calls"`
}

type VersionsConfig struct {
	// RecordEmpty controls whether saves with no section changes still
	// append a version record.
	RecordEmpty *bool `koanf:"record_empty"`
}

// envPrefix namespaces the override variables, e.g.
// PRODUCTHOUSE_SERVER_PORT -> server.port.
const envPrefix = "PRODUCTHOUSE_"

// Load reads the YAML file at path (skipped when path is empty or the
// file does not exist), applies PRODUCTHOUSE_* environment overrides and
// fills in defaults.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		content, err := os.ReadFile(path)
		if err == nil {
			if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("parsing config file %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	// PRODUCTHOUSE_SERVER_SHUTDOWN_TIMEOUT -> server.shutdown_timeout:
	// the first underscore after the prefix separates section from
	// field, later underscores stay in the field name.
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		trimmed := strings.ToLower(strings.TrimPrefix(s, envPrefix))
		parts := strings.SplitN(trimmed, "_", 2)
		if len(parts) == 1 {
			return trimmed
		}
		return parts[0] + "." + parts[1]
	}), nil); err != nil {
		return nil, fmt.Errorf("loading environment overrides: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return &cfg, nil
}

// RecordEmptyVersions resolves the version policy, defaulting to true so
// every explicit save stays observable in the history.
func (c *Config) RecordEmptyVersions() bool {
	if c.Versions.RecordEmpty == nil {
		return true
	}
	return *c.Versions.RecordEmpty
}

func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path must not be empty")
	}
	if c.LLM.TimeoutMs <= 0 {
		return fmt.Errorf("llm.timeout_ms must be positive")
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "127.0.0.1"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10 * time.Second
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "producthouse.db"
	}
	if cfg.LLM.Endpoint == "" {
		cfg.LLM.Endpoint = "https://api.anthropic.com"
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = "claude-3-opus-20240229"
	}
	if cfg.LLM.MaxTokens == 0 {
		cfg.LLM.MaxTokens = 4000
	}
	if cfg.LLM.Temperature == 0 {
		cfg.LLM.Temperature = 0.7
	}
	if cfg.LLM.TimeoutMs == 0 {
		cfg.LLM.TimeoutMs = 60000
	}
}
