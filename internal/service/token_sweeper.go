package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// TokenSweeper periodically clears expired setup tokens.
type TokenSweeper struct {
	credentials *CredentialService
	cron        *cron.Cron
	logger      *slog.Logger
	timeout     time.Duration
}

func NewTokenSweeper(credentials *CredentialService, schedule string, logger *slog.Logger) (*TokenSweeper, error) {
	s := &TokenSweeper{
		credentials: credentials,
		logger:      logger,
		timeout:     30 * time.Second,
		cron: cron.New(
			cron.WithLocation(time.UTC),
			cron.WithChain(cron.SkipIfStillRunning(cronLogger{logger})),
		),
	}
	if _, err := s.cron.AddFunc(schedule, s.runOnce); err != nil {
		return nil, fmt.Errorf("token sweep schedule %q: %w", schedule, err)
	}
	return s, nil
}

func (s *TokenSweeper) Start() {
	s.cron.Start()
	s.logger.Info("token sweeper started", "entries", len(s.cron.Entries()))
}

// Stop waits for a running sweep to finish or ctx to expire.
func (s *TokenSweeper) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *TokenSweeper) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	n, err := s.credentials.SweepExpired(ctx)
	if err != nil {
		s.logger.Warn("token sweep failed", "error", err)
		return
	}
	if n > 0 {
		s.logger.Info("expired setup tokens cleared", "count", n)
	}
}

type cronLogger struct{ logger *slog.Logger }

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error("cron: "+msg, append([]any{"error", err}, keysAndValues...)...)
}
