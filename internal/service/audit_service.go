package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"

	"github.com/lfpcrew/lfp-admin/internal/domain"
	"github.com/lfpcrew/lfp-admin/internal/observability"
	"github.com/lfpcrew/lfp-admin/internal/repository"
)

// Actor identifies who performs a mutation and from where.
type Actor struct {
	UserID    uint
	IP        string
	UserAgent string
}

type AuditEntry struct {
	Actor    Actor
	Action   domain.AuditAction
	Entity   domain.AuditEntity
	EntityID uint
	Details  any
}

// AuditTrail appends entries to the persistent audit log. Recording is
// fail-open: a failed write is logged and never surfaces to the caller.
type AuditTrail struct {
	repo   repository.AuditLogRepository
	logger *slog.Logger
}

func NewAuditTrail(repo repository.AuditLogRepository, logger *slog.Logger) *AuditTrail {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditTrail{repo: repo, logger: logger}
}

func (t *AuditTrail) Record(ctx context.Context, entry AuditEntry) {
	row := &domain.AuditLog{
		UserID: entry.Actor.UserID,
		Action: entry.Action,
		Entity: entry.Entity,
	}
	if entry.EntityID != 0 {
		id := strconv.FormatUint(uint64(entry.EntityID), 10)
		row.EntityID = &id
	}
	if entry.Details != nil {
		if raw, err := json.Marshal(entry.Details); err == nil {
			details := string(raw)
			row.Details = &details
		} else {
			t.logger.WarnContext(ctx, "audit details dropped", "error", err, "action", entry.Action)
		}
	}
	if entry.Actor.IP != "" {
		row.IPAddress = &entry.Actor.IP
	}
	if entry.Actor.UserAgent != "" {
		row.UserAgent = &entry.Actor.UserAgent
	}

	t.logger.InfoContext(ctx, "audit",
		"actor_user_id", entry.Actor.UserID,
		"actor_ip", entry.Actor.IP,
		"action", entry.Action,
		"entity", entry.Entity,
		"entity_id", entry.EntityID,
	)

	if err := t.repo.Create(ctx, row); err != nil {
		observability.RecordAuditWrite(ctx, "error")
		t.logger.WarnContext(ctx, "audit write failed", "error", err, "action", entry.Action, "entity", entry.Entity)
		return
	}
	observability.RecordAuditWrite(ctx, "success")
}

func (t *AuditTrail) List(ctx context.Context, req repository.PageRequest) (repository.PageResult[domain.AuditLogView], error) {
	return t.repo.ListPaged(ctx, req)
}
