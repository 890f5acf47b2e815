package common

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/lfpcrew/lfp-admin/internal/config"
	"github.com/lfpcrew/lfp-admin/internal/database"
	"github.com/lfpcrew/lfp-admin/internal/tools/ui"
)

// LoadEnvFile loads KEY=VALUE pairs into the environment without
// overriding variables that are already set.
func LoadEnvFile(path string) error {
	return config.LoadDotEnv(path)
}

// OpenConfigDB loads the env file and config, then opens the configured
// database. The returned close func is safe to call once.
func OpenConfigDB(envFile string) (*config.Config, *gorm.DB, func(), error) {
	if err := LoadEnvFile(envFile); err != nil {
		return nil, nil, nil, err
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}
	db, err := database.Open(cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	closeFn := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return cfg, db, closeFn, nil
}

// Run executes fn directly in CI mode and behind the progress UI otherwise.
func Run(ci bool, timeout time.Duration, title string, fn func(context.Context) ([]string, error)) ([]string, error) {
	if ci {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return fn(ctx)
	}
	return ui.Run(title, timeout, fn)
}
