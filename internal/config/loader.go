package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"contactd/internal/common/fsutil"
	"contactd/pkg/types"
)

// CORS holds the opt-in CORS settings for the HTTP layer.
type CORS struct {
	Enabled        bool     `json:"enabled" yaml:"enabled" toml:"enabled"`
	AllowedOrigins []string `json:"allowed_origins" yaml:"allowed_origins" toml:"allowed_origins"`
	AllowedMethods []string `json:"allowed_methods" yaml:"allowed_methods" toml:"allowed_methods"`
	AllowedHeaders []string `json:"allowed_headers" yaml:"allowed_headers" toml:"allowed_headers"`
}

// Config holds runtime parameters for the service.
// Zero values mean "unspecified" and will be replaced by defaults in main.
type Config struct {
	Addr string `json:"addr" yaml:"addr" toml:"addr"`
	// Seed entries loaded into the directory at startup. Empty means the
	// built-in default seed.
	Seed []types.Contact `json:"seed" yaml:"seed" toml:"seed"`
	// Webhook URLs subscribed as observers at startup.
	Observers []string `json:"observers" yaml:"observers" toml:"observers"`
	// Per-delivery notification timeout in seconds (0 = default).
	ObserverTimeoutSeconds int `json:"observer_timeout_seconds" yaml:"observer_timeout_seconds" toml:"observer_timeout_seconds"`
	// Logical name the directory servant is registered under (empty = default).
	DirectoryName string `json:"directory_name" yaml:"directory_name" toml:"directory_name"`
	LogLevel      string `json:"log_level" yaml:"log_level" toml:"log_level"`
	MaxBodyBytes  int64  `json:"max_body_bytes" yaml:"max_body_bytes" toml:"max_body_bytes"`
	CORS          CORS   `json:"cors" yaml:"cors" toml:"cors"`
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	path, err := fsutil.ExpandHome(path)
	if err != nil {
		return cfg, err
	}
	if !fsutil.PathExists(path) {
		return cfg, fmt.Errorf("config file not found: %s", path)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}
