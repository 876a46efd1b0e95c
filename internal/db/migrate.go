package db

import (
	"context"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"

	"github.com/diewo77/go-hr/internal/config"
	"github.com/diewo77/go-hr/internal/models"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate runs AutoMigrate for all models.
func Migrate(conn *gorm.DB) error {
	for _, m := range models.All() {
		if err := conn.AutoMigrate(m); err != nil {
			return fmt.Errorf("automigrate %T: %w", m, err)
		}
	}
	return nil
}

// MigrateSQL applies the embedded goose migrations. Postgres only.
func MigrateSQL(ctx context.Context, conn *gorm.DB) error {
	sqlDB, err := conn.DB()
	if err != nil {
		return fmt.Errorf("database handle: %w", err)
	}
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}
	if err := goose.UpContext(ctx, sqlDB, "migrations"); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

// Run applies migrations according to mode (see config.Migrations*).
func Run(ctx context.Context, conn *gorm.DB, mode string) error {
	switch mode {
	case config.MigrationsOff:
		return nil
	case config.MigrationsSQL:
		return MigrateSQL(ctx, conn)
	default:
		return Migrate(conn)
	}
}
