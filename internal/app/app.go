package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/lfpcrew/lfp-admin/internal/config"
	"github.com/lfpcrew/lfp-admin/internal/health"
	"github.com/lfpcrew/lfp-admin/internal/observability"
	"github.com/lfpcrew/lfp-admin/internal/service"
)

type App struct {
	Config        *config.Config
	Logger        *slog.Logger
	Server        *http.Server
	Observability *observability.Runtime
	DB            *gorm.DB
	Redis         redis.UniversalClient
	Readiness     *health.ProbeRunner
	Sweeper       *service.TokenSweeper
}

func New(
	cfg *config.Config,
	logger *slog.Logger,
	server *http.Server,
	runtime *observability.Runtime,
	db *gorm.DB,
	redisClient redis.UniversalClient,
	readiness *health.ProbeRunner,
	sweeper *service.TokenSweeper,
) *App {
	return &App{
		Config:        cfg,
		Logger:        logger,
		Server:        server,
		Observability: runtime,
		DB:            db,
		Redis:         redisClient,
		Readiness:     readiness,
		Sweeper:       sweeper,
	}
}

// Start launches background jobs and blocks serving HTTP until the server
// is shut down.
func (a *App) Start() error {
	if a.Sweeper != nil {
		a.Sweeper.Start()
	}
	a.Logger.Info("server starting", "addr", a.Server.Addr, "env", a.Config.Env)
	if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains HTTP first, then stops the sweeper, telemetry and the
// backing stores. Every stage runs even when an earlier one fails.
func (a *App) Shutdown(ctx context.Context) error {
	var errs []error

	httpCtx, cancel := context.WithTimeout(ctx, a.Config.ShutdownHTTPDrainTimeout)
	if err := a.Server.Shutdown(httpCtx); err != nil {
		errs = append(errs, fmt.Errorf("http drain: %w", err))
	}
	cancel()

	if a.Sweeper != nil {
		if err := a.Sweeper.Stop(ctx); err != nil {
			errs = append(errs, fmt.Errorf("token sweeper: %w", err))
		}
	}

	if a.Observability != nil {
		obsCtx, obsCancel := context.WithTimeout(ctx, a.Config.ShutdownObservabilityTimeout)
		if err := a.Observability.Shutdown(obsCtx); err != nil {
			errs = append(errs, fmt.Errorf("observability: %w", err))
		}
		obsCancel()
	}

	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("redis: %w", err))
		}
	}
	if a.DB != nil {
		if sqlDB, err := a.DB.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				errs = append(errs, fmt.Errorf("database: %w", err))
			}
		}
	}
	return errors.Join(errs...)
}
