package health

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// PingChecker adapts any dependency exposing a context-aware ping.
type PingChecker struct {
	name string
	ping func(ctx context.Context) error
}

func NewPingChecker(name string, ping func(ctx context.Context) error) *PingChecker {
	return &PingChecker{name: name, ping: ping}
}

func (c *PingChecker) Check(ctx context.Context) CheckResult {
	res := CheckResult{Name: c.name, Healthy: true}
	if c.ping == nil {
		res.Healthy = false
		res.Error = c.name + " not configured"
		return res
	}
	if err := c.ping(ctx); err != nil {
		res.Healthy = false
		res.Error = err.Error()
	}
	return res
}

// NewDBChecker returns nil when db is nil so the probe skips it.
func NewDBChecker(db *gorm.DB) Checker {
	if db == nil {
		return nil
	}
	return NewPingChecker("db", func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	})
}

func NewRedisChecker(client redis.UniversalClient) Checker {
	if client == nil {
		return nil
	}
	return NewPingChecker("redis", func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	})
}

type storagePinger interface {
	Ping(ctx context.Context) error
}

// NewStorageChecker probes the photo bucket. A disabled storage backend
// pings as healthy.
func NewStorageChecker(storage storagePinger) Checker {
	if storage == nil {
		return nil
	}
	return NewPingChecker("storage", func(ctx context.Context) error {
		if err := storage.Ping(ctx); err != nil {
			return errors.Join(errors.New("photo bucket unreachable"), err)
		}
		return nil
	})
}
