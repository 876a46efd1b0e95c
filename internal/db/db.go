// Package db opens the gorm connection, applies schema migrations and seeds
// reference data.
package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/diewo77/go-hr/internal/config"
)

// Open connects to the configured database, retrying postgres connections
// while the server starts up.
func Open(ctx context.Context, cfg config.DatabaseConfig, log *slog.Logger) (*gorm.DB, error) {
	logLevel := logger.Silent
	if cfg.Debug {
		logLevel = logger.Info
	}
	gcfg := &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	}

	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.DriverSQLite:
		dialector = sqlite.Open(cfg.ConnString())
	default:
		dialector = postgres.Open(NormalizeDSN(cfg.ConnString()))
	}

	attempts := max(cfg.Retries, 1)
	var conn *gorm.DB
	var err error
	for i := 1; i <= attempts; i++ {
		conn, err = gorm.Open(dialector, gcfg)
		if err == nil {
			break
		}
		log.Warn("database connection failed", "attempt", i, "of", attempts, "err", err)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(2 * time.Second):
		}
	}
	if err != nil {
		return nil, fmt.Errorf("connect database after %d attempts: %w", attempts, err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, fmt.Errorf("database handle: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("db ping failed: %w", err)
	}

	log.Info("database connected", "driver", cfg.Driver, "dsn", MaskDSN(cfg.ConnString()))
	return conn, nil
}

// IsPostgres reports whether conn talks to postgres.
func IsPostgres(conn *gorm.DB) bool {
	return conn.Dialector.Name() == "postgres"
}
