// Package database opens the order store. PostgreSQL is used when a DSN is
// configured, SQLite otherwise.
package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Config selects the backend. PostgresDSN wins over SQLitePath.
type Config struct {
	PostgresDSN string
	SQLitePath  string
}

// Driver reports which backend Config selects.
func (c Config) Driver() string {
	if strings.TrimSpace(c.PostgresDSN) != "" {
		return "postgres"
	}
	if strings.TrimSpace(c.SQLitePath) != "" {
		return "sqlite"
	}
	return ""
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	}
}

// Connect opens the configured backend and verifies connectivity.
func Connect(ctx context.Context, cfg Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver() {
	case "postgres":
		dialector = postgres.Open(strings.TrimSpace(cfg.PostgresDSN))
	case "sqlite":
		path := strings.TrimSpace(cfg.SQLitePath)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite directory: %w", err)
		}
		dialector = sqlite.Open(path)
	default:
		return nil, errors.New("database not configured")
	}
	db, err := gorm.Open(dialector, gormConfig())
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if cfg.Driver() == "sqlite" {
		// one writer at a time keeps SQLite free of "database is locked"
		sqlDB.SetMaxOpenConns(1)
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// ConnectWithFallback opens the configured backend and returns the DB plus a
// cleanup function. When nothing is configured or the connection fails, it
// logs and returns nil so the caller can fall back to in-memory repositories.
func ConnectWithFallback(ctx context.Context, cfg Config, logger *slog.Logger) (*gorm.DB, func()) {
	if cfg.Driver() == "" {
		if logger != nil {
			logger.Warn("no database configured, falling back to in-memory repositories")
		}
		return nil, func() {}
	}
	db, err := Connect(ctx, cfg)
	if err != nil {
		if logger != nil {
			logger.Warn("failed to connect to database, falling back to in-memory repositories",
				slog.String("driver", cfg.Driver()), slog.String("error", err.Error()))
		}
		return nil, func() {}
	}
	sqlDB, err := db.DB()
	if err != nil {
		if logger != nil {
			logger.Warn("failed to unwrap database connection, falling back to in-memory repositories", slog.String("error", err.Error()))
		}
		return nil, func() {}
	}
	if logger != nil {
		logger.Info("database connection established", slog.String("driver", cfg.Driver()))
	}
	return db, func() { _ = sqlDB.Close() }
}
