package config

import (
	"errors"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
)

// Config holds the runtime configuration for the backend.
type Config struct {
	// Port the HTTP server listens on.
	Port string `yaml:"port"`

	// DataDir is the directory holding the JSON collection files.
	DataDir string `yaml:"data_dir"`

	// TokenSecret signs session tokens. Required.
	TokenSecret string `yaml:"token_secret"`

	// AdminEmail / AdminPassword seed the bootstrap administrator when the
	// user store is empty. When AdminPassword is empty a random one is
	// generated at startup and logged once.
	AdminEmail    string `yaml:"admin_email"`
	AdminPassword string `yaml:"admin_password"`

	// AllowedOrigins is the CORS allow-list. "*" allows any origin.
	AllowedOrigins []string `yaml:"allowed_origins"`
}

var ErrMissingTokenSecret = errors.New("config: JWT_SECRET is required")

// Load builds the configuration from an optional YAML file (CONFIG_FILE,
// default config.yaml, skipped when absent) with environment variables
// taking precedence.
//
// Environment variables:
//   - PORT: HTTP listen port (default: 3000)
//   - DATA_DIR: collection file directory (default: database)
//   - JWT_SECRET: token signing secret (required)
//   - ADMIN_EMAIL: bootstrap admin email (default: admin@localhost)
//   - ADMIN_PASSWORD: bootstrap admin password (default: generated)
//   - ALLOWED_ORIGINS: comma-separated CORS allow-list (default: *)
func Load() (Config, error) {
	var cfg Config

	path := os.Getenv("CONFIG_FILE")
	if path == "" {
		path = "config.yaml"
	}
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, err
		}
	}

	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.TokenSecret = v
	}
	if v := os.Getenv("ADMIN_EMAIL"); v != "" {
		cfg.AdminEmail = v
	}
	if v := os.Getenv("ADMIN_PASSWORD"); v != "" {
		cfg.AdminPassword = v
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		cfg.AllowedOrigins = nil
		for _, origin := range strings.Split(v, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
			}
		}
	}

	if cfg.Port == "" {
		cfg.Port = "3000"
	}
	if cfg.DataDir == "" {
		cfg.DataDir = "database"
	}
	if cfg.AdminEmail == "" {
		cfg.AdminEmail = "admin@localhost"
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"*"}
	}

	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.TokenSecret == "" {
		return ErrMissingTokenSecret
	}
	return nil
}
