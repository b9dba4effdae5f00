// Package config loads connection configuration for tabular from a
// YAML file with environment-variable overrides.
//
// The file holds one "connection" block:
//
//	connection:
//	  type: postgres
//	  host: localhost
//	  database: app
//
// Any key can be overridden through the environment, e.g.
// TABULAR_CONNECTION_TYPE=sqlite.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/leapstack-labs/tabular/pkg/core"
)

// ConfigFileName is the name of the config file.
const ConfigFileName = "tabular.yaml"

// ConfigFileNameAlt is the alternate name of the config file.
const ConfigFileNameAlt = "tabular.yml"

// EnvPrefix is the prefix for environment overrides.
const EnvPrefix = "TABULAR_"

// Load reads the config file at path (optional, "" skips it), applies
// environment overrides, and fills in per-type defaults.
func Load(path string) (*core.ConnConfig, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]any{
		"connection.type": "sqlite",
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment overrides: %w", err)
	}

	var cfg core.ConnConfig
	if err := k.Unmarshal("connection", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal connection config: %w", err)
	}

	ApplyDefaults(&cfg)
	return &cfg, nil
}

// LoadFromDir loads configuration from tabular.yaml (or .yml) in the
// given directory. A missing file is not an error; defaults and
// environment overrides still apply.
func LoadFromDir(dir string) (*core.ConnConfig, error) {
	for _, name := range []string{ConfigFileName, ConfigFileNameAlt} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	return Load("")
}

// ApplyDefaults applies per-type default values to a ConnConfig.
func ApplyDefaults(cfg *core.ConnConfig) {
	if cfg == nil {
		return
	}
	switch cfg.Type {
	case "postgres":
		if cfg.Port == 0 {
			cfg.Port = 5432
		}
		if cfg.Schema == "" {
			cfg.Schema = "public"
		}
	case "mysql":
		if cfg.Port == 0 {
			cfg.Port = 3306
		}
	case "sqlite", "duckdb":
		if cfg.Schema == "" {
			cfg.Schema = "main"
		}
	}
}
