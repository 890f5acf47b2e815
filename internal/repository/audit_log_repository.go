package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/lfpcrew/lfp-admin/internal/domain"
)

// AuditLogRepository has no update or delete: the trail is append-only.
type AuditLogRepository interface {
	Create(ctx context.Context, entry *domain.AuditLog) error
	ListPaged(ctx context.Context, req PageRequest) (PageResult[domain.AuditLogView], error)
}

type GormAuditLogRepository struct{ db *gorm.DB }

func NewAuditLogRepository(db *gorm.DB) AuditLogRepository {
	return &GormAuditLogRepository{db: db}
}

func (r *GormAuditLogRepository) Create(ctx context.Context, entry *domain.AuditLog) error {
	err := r.db.WithContext(ctx).Create(entry).Error
	recordOp(ctx, "audit_log", "create", err)
	return err
}

func (r *GormAuditLogRepository) ListPaged(ctx context.Context, req PageRequest) (PageResult[domain.AuditLogView], error) {
	page := req.normalized()
	var total int64
	if err := r.db.WithContext(ctx).Model(&domain.AuditLog{}).Count(&total).Error; err != nil {
		recordOp(ctx, "audit_log", "list_paged", err)
		return PageResult[domain.AuditLogView]{}, err
	}
	var items []domain.AuditLogView
	err := r.db.WithContext(ctx).
		Table("audit_logs").
		Select("audit_logs.*, users.name AS user_name, users.email AS user_email").
		Joins("LEFT JOIN users ON users.id = audit_logs.user_id").
		Order("audit_logs.created_at desc, audit_logs.id desc").
		Scopes(page.window).
		Scan(&items).Error
	recordOp(ctx, "audit_log", "list_paged", err)
	if err != nil {
		return PageResult[domain.AuditLogView]{}, err
	}
	return newPageResult(page, total, items), nil
}
