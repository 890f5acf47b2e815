package database

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/lfpcrew/lfp-admin/internal/domain"
	"github.com/lfpcrew/lfp-admin/internal/observability"
)

// models is listed in foreign key order.
func models() []any {
	return []any{
		&domain.Role{},
		&domain.Member{},
		&domain.Car{},
		&domain.Event{},
		&domain.User{},
		&domain.AuditLog{},
	}
}

func Migrate(db *gorm.DB) error {
	start := time.Now()
	ctx := context.Background()
	defer func() {
		observability.RecordDatabaseStartupDuration(ctx, "migrate", time.Since(start))
	}()
	if err := db.AutoMigrate(models()...); err != nil {
		observability.RecordDatabaseStartupEvent(ctx, "migrate", "error")
		return fmt.Errorf("auto migrate: %w", err)
	}
	observability.RecordDatabaseStartupEvent(ctx, "migrate", "success")
	return nil
}

// TableStatus reports whether a model's table exists.
type TableStatus struct {
	Table   string `json:"table"`
	Present bool   `json:"present"`
}

func MigrationStatus(db *gorm.DB) ([]TableStatus, error) {
	out := make([]TableStatus, 0, len(models()))
	for _, m := range models() {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(m); err != nil {
			return nil, fmt.Errorf("parse model %T: %w", m, err)
		}
		out = append(out, TableStatus{
			Table:   stmt.Schema.Table,
			Present: db.Migrator().HasTable(m),
		})
	}
	return out, nil
}
