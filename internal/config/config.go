// Package config loads server configuration from a YAML file with
// environment variable overrides. Flags in cmd/ take final precedence.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all server configuration.
type Config struct {
	Server struct {
		Addr        string `yaml:"addr"`         // HTTP API listen address
		MetricsAddr string `yaml:"metrics_addr"` // Prometheus listen address
	} `yaml:"server"`

	Storage struct {
		PostgresDSN   string `yaml:"postgres_dsn"`
		ClickhouseDSN string `yaml:"clickhouse_dsn"`
		UseMemory     bool   `yaml:"use_memory"`
	} `yaml:"storage"`

	Reporting struct {
		OutputDir string `yaml:"output_dir"`
	} `yaml:"reporting"`
}

// Default returns the configuration used when no file or overrides are given.
func Default() Config {
	var cfg Config
	cfg.Server.Addr = ":8080"
	cfg.Server.MetricsAddr = ":9090"
	cfg.Storage.UseMemory = false
	cfg.Reporting.OutputDir = "output"
	return cfg
}

// Load reads configuration in precedence order: defaults, then the YAML file
// at path (skipped when path is empty or the file does not exist), then
// environment variables.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return cfg, fmt.Errorf("read config file %s: %w", path, err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config file %s: %w", path, err)
			}
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyEnv overlays environment variables onto the configuration.
func applyEnv(cfg *Config) {
	if v := os.Getenv("SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("METRICS_ADDR"); v != "" {
		cfg.Server.MetricsAddr = v
	}
	if v := os.Getenv("POSTGRES_DSN"); v != "" {
		cfg.Storage.PostgresDSN = v
	}
	if v := os.Getenv("CLICKHOUSE_DSN"); v != "" {
		cfg.Storage.ClickhouseDSN = v
	}
	if v := os.Getenv("USE_MEMORY"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Storage.UseMemory = b
		}
	}
	if v := os.Getenv("OUTPUT_DIR"); v != "" {
		cfg.Reporting.OutputDir = v
	}
}

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("config: server.addr must not be empty")
	}
	if !c.Storage.UseMemory {
		if c.Storage.PostgresDSN == "" {
			return fmt.Errorf("config: storage.postgres_dsn is required unless storage.use_memory is set")
		}
		if c.Storage.ClickhouseDSN == "" {
			return fmt.Errorf("config: storage.clickhouse_dsn is required unless storage.use_memory is set")
		}
	}
	return nil
}
