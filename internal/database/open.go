package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/lfpcrew/lfp-admin/internal/config"
	"github.com/lfpcrew/lfp-admin/internal/observability"
)

const sqlitePrefix = "sqlite:"

// Open connects to postgres, or to a sqlite file when DATABASE_URL starts
// with "sqlite:".
func Open(cfg *config.Config) (*gorm.DB, error) {
	start := time.Now()
	ctx := context.Background()
	defer func() {
		observability.RecordDatabaseStartupDuration(ctx, "connect", time.Since(start))
	}()

	dialector, driver := dialectorFor(cfg.DatabaseURL)
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		observability.RecordDatabaseStartupEvent(ctx, "connect", "error")
		return nil, fmt.Errorf("open %s database: %w", driver, err)
	}
	if driver == "sqlite" {
		// sqlite serializes writers; one connection avoids SQLITE_BUSY.
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.SetMaxOpenConns(1)
		}
		if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			observability.RecordDatabaseStartupEvent(ctx, "connect", "error")
			return nil, fmt.Errorf("enable sqlite foreign keys: %w", err)
		}
	}
	observability.RecordDatabaseStartupEvent(ctx, "connect", "success")
	return db, nil
}

func dialectorFor(dsn string) (gorm.Dialector, string) {
	if path, ok := strings.CutPrefix(dsn, sqlitePrefix); ok {
		return sqlite.Open(path), "sqlite"
	}
	return postgres.Open(dsn), "postgres"
}
