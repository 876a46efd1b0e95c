package config

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the path checked for YAML configuration.
const DefaultConfigFile = "hr.yaml"

// Load returns a Config using the hierarchy: defaults < YAML < ENV.
// The YAML path comes from HR_CONFIG when set.
func Load() (*Config, error) {
	path := DefaultConfigFile
	if p := os.Getenv("HR_CONFIG"); p != "" {
		path = p
	}
	return LoadFrom(path)
}

// LoadFrom returns a Config loaded from the given YAML path using the
// hierarchy: defaults < YAML < ENV. A missing file is not an error.
func LoadFrom(yamlPath string) (*Config, error) {
	cfg := Defaults()

	if err := loadYAML(&cfg, yamlPath); err != nil {
		return nil, fmt.Errorf("config yaml: %w", err)
	}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("config env: %w", err)
	}
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validate: %w", err)
	}
	return &cfg, nil
}

// loadYAML reads the YAML file and unmarshals it over cfg.
func loadYAML(cfg *Config, path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from operator config
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// validate checks required fields and fills the dev-only JWT secret.
func validate(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.New("server.port is required")
	}
	if !slices.Contains([]string{DriverPostgres, DriverSQLite}, cfg.Database.Driver) {
		return fmt.Errorf("database.driver %q is not supported", cfg.Database.Driver)
	}
	if cfg.Database.Driver == DriverSQLite && cfg.Database.DSN == "" {
		return errors.New("database.dsn is required for sqlite")
	}
	switch cfg.Database.Migrations {
	case MigrationsAuto, MigrationsOff:
	case MigrationsSQL:
		if cfg.Database.Driver != DriverPostgres {
			return errors.New("database.migrations=sql requires the postgres driver")
		}
	default:
		return fmt.Errorf("database.migrations %q is not supported", cfg.Database.Migrations)
	}
	if cfg.Auth.JWTSecret == "" {
		if !cfg.App.Dev {
			return errors.New("auth.jwt_secret is required outside dev mode")
		}
		cfg.Auth.JWTSecret = devJWTSecret
	}
	if cfg.Auth.TokenTTL <= 0 {
		return errors.New("auth.token_ttl must be positive")
	}
	return nil
}
