package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/diewo77/go-hr/internal/config"
	"github.com/diewo77/go-hr/internal/db"
	"github.com/diewo77/go-hr/internal/logger"
	"github.com/diewo77/go-hr/internal/policy"
)

var (
	migrateOnlyFlag = flag.Bool("migrate-only", false, "Run DB migrations and exit")
	seedOnlyFlag    = flag.Bool("seed-only", false, "Seed default departments and exit")
)

func main() {
	flag.Parse()

	// Load environment variables from .env file
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Logging)
	if cfg.Auth.UsesDevSecret() {
		log.Warn("signing tokens with the built-in dev secret; set JWT_SECRET outside local development")
	}

	if err := run(cfg, log); err != nil {
		log.Error("server exited", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbConn, err := db.Open(ctx, cfg.Database, log)
	if err != nil {
		return err
	}

	if *migrateOnlyFlag {
		mode := cfg.Database.Migrations
		if mode == config.MigrationsOff {
			mode = config.MigrationsAuto
		}
		if err := db.Run(ctx, dbConn, mode); err != nil {
			return err
		}
		log.Info("migrations completed")
		return nil
	}
	if *seedOnlyFlag {
		if err := db.SeedDepartments(ctx, dbConn); err != nil {
			return err
		}
		log.Info("seeding completed")
		return nil
	}

	if err := db.Run(ctx, dbConn, cfg.Database.Migrations); err != nil {
		return err
	}
	if cfg.App.SeedDepartments {
		if err := db.SeedDepartments(ctx, dbConn); err != nil {
			return err
		}
	}

	routerCfg, err := policy.NewRouterConfig(dbConn, cfg, log)
	if err != nil {
		return err
	}
	defer routerCfg.AuthGate.Close()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      NewApp(dbConn, routerCfg, log),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", "port", cfg.Server.Port, "dev", cfg.App.Dev)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	log.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info("server stopped gracefully")
	return nil
}
