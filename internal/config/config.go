// Package config provides application configuration.
// Precedence: defaults < YAML file < environment variables.
package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	App      AppConfig      `yaml:"app"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            string        `yaml:"port"             env:"PORT"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT"`
}

// Migration modes.
const (
	MigrationsAuto = "auto" // gorm AutoMigrate
	MigrationsSQL  = "sql"  // embedded goose migrations, postgres only
	MigrationsOff  = "off"
)

// Database drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// DatabaseConfig holds connection settings. DSN takes precedence over the
// discrete postgres fields when set.
type DatabaseConfig struct {
	Driver       string `yaml:"driver"         env:"DB_DRIVER"`
	DSN          string `yaml:"dsn"            env:"DATABASE_DSN"`
	Host         string `yaml:"host"           env:"DB_HOST"`
	Port         int    `yaml:"port"           env:"DB_PORT"`
	User         string `yaml:"user"           env:"DB_USER"`
	Password     string `yaml:"password"       env:"DB_PASSWORD"`
	DBName       string `yaml:"dbname"         env:"DB_NAME"`
	SSLMode      string `yaml:"sslmode"        env:"DB_SSLMODE"`
	Migrations   string `yaml:"migrations"     env:"MIGRATIONS"`
	Debug        bool   `yaml:"debug"          env:"DB_DEBUG"`
	MaxOpenConns int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
	Retries      int    `yaml:"retries"        env:"DB_CONNECT_RETRIES"`
}

// AuthConfig holds token and credential settings.
type AuthConfig struct {
	JWTSecret        string        `yaml:"jwt_secret"         env:"JWT_SECRET"`
	TokenTTL         time.Duration `yaml:"token_ttl"          env:"JWT_TTL"`
	BcryptCost       int           `yaml:"bcrypt_cost"        env:"BCRYPT_COST"`
	IdentityCacheTTL time.Duration `yaml:"identity_cache_ttl" env:"IDENTITY_CACHE_TTL"`
}

// AppConfig holds application-level settings.
// EmailFoldCase lower-cases emails before they are stored or looked up,
// which makes email uniqueness case-insensitive.
type AppConfig struct {
	Dev             bool `yaml:"dev"              env:"DEV"`
	EmailFoldCase   bool `yaml:"email_fold_case"  env:"EMAIL_FOLD_CASE"`
	SeedDepartments bool `yaml:"seed_departments" env:"SEED_DEPARTMENTS"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"   env:"LOG_LEVEL"`
	Service string `yaml:"service" env:"LOG_SERVICE"`
}

// devJWTSecret is used only when App.Dev is set and no secret is configured.
const devJWTSecret = "dev-jwt-secret"

// UsesDevSecret reports whether tokens are signed with the public dev secret.
func (a AuthConfig) UsesDevSecret() bool {
	return a.JWTSecret == devJWTSecret
}

// Defaults returns the base configuration. Dev mode is off, so a JWT secret
// must be configured unless DEV=true.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Port:            "8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			Driver:     DriverPostgres,
			Host:       "localhost",
			Port:       5432,
			User:       "hr",
			Password:   "hr123",
			DBName:     "hr",
			SSLMode:    "disable",
			Migrations: MigrationsAuto,
			Retries:    5,
		},
		Auth: AuthConfig{
			TokenTTL:         24 * time.Hour,
			BcryptCost:       10,
			IdentityCacheTTL: time.Minute,
		},
		App: AppConfig{
			Dev:             false,
			SeedDepartments: true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			Service: "go-hr",
		},
	}
}

// ConnString returns the DSN if set, otherwise builds a postgres key=value string.
func (d DatabaseConfig) ConnString() string {
	if d.DSN != "" || d.Driver == DriverSQLite {
		return d.DSN
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}
