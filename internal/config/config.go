// Package config loads the server configuration from an optional YAML
// file overlaid with environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Backend names for the storage selection.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
)

// Config is the full server configuration.
type Config struct {
	Addr    string        `yaml:"addr"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
}

// StorageConfig selects and parameterises the persistence backend.
type StorageConfig struct {
	Backend     string `yaml:"backend"`
	PostgresDSN string `yaml:"postgres_dsn"`
}

// LogConfig controls logger output.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file or environment
// overrides are present: an in-memory store on :8000.
func Default() *Config {
	return &Config{
		Addr: ":8000",
		Storage: StorageConfig{
			Backend: BackendMemory,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads config/server.yaml when present, overlays STOREFRONT_*
// environment variables and validates the result.
func Load() (*Config, error) {
	return LoadFromPath(filepath.Join("config", "server.yaml"))
}

// LoadFromPath is Load with an explicit file location. A missing file is
// not an error; defaults apply.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse server config: %w", err)
		}
	case !os.IsNotExist(err):
		return nil, fmt.Errorf("failed to read server config: %w", err)
	}

	overlayEnv(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func overlayEnv(cfg *Config) {
	if v := os.Getenv("STOREFRONT_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("STOREFRONT_STORAGE_BACKEND"); v != "" {
		cfg.Storage.Backend = v
	}
	if v := os.Getenv("STOREFRONT_POSTGRES_DSN"); v != "" {
		cfg.Storage.PostgresDSN = v
	}
	if v := os.Getenv("STOREFRONT_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("STOREFRONT_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
}

func (c *Config) validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr is required")
	}
	switch c.Storage.Backend {
	case BackendMemory:
	case BackendPostgres:
		if c.Storage.PostgresDSN == "" {
			return fmt.Errorf("storage backend %q requires postgres_dsn", c.Storage.Backend)
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	return nil
}
