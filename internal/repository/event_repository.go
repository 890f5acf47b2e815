package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/lfpcrew/lfp-admin/internal/domain"
)

var ErrEventNotFound = errors.New("event not found")

type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) error
	FindByID(ctx context.Context, id uint) (*domain.Event, error)
	List(ctx context.Context, activeOnly bool) ([]domain.Event, error)
	Update(ctx context.Context, id uint, updates map[string]any) error
	CountActive(ctx context.Context) (int64, error)
}

type GormEventRepository struct{ db *gorm.DB }

func NewEventRepository(db *gorm.DB) EventRepository { return &GormEventRepository{db: db} }

func (r *GormEventRepository) Create(ctx context.Context, event *domain.Event) error {
	err := r.db.WithContext(ctx).Create(event).Error
	recordOp(ctx, "event", "create", err)
	return err
}

func (r *GormEventRepository) FindByID(ctx context.Context, id uint) (*domain.Event, error) {
	var event domain.Event
	err := r.db.WithContext(ctx).First(&event, id).Error
	recordOp(ctx, "event", "find_by_id", err)
	if err != nil {
		return nil, translateNotFound(err, ErrEventNotFound)
	}
	return &event, nil
}

// List orders events newest first.
func (r *GormEventRepository) List(ctx context.Context, activeOnly bool) ([]domain.Event, error) {
	q := r.db.WithContext(ctx)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var events []domain.Event
	err := q.Order("date desc, id desc").Find(&events).Error
	recordOp(ctx, "event", "list", err)
	return events, err
}

func (r *GormEventRepository) Update(ctx context.Context, id uint, updates map[string]any) error {
	res := r.db.WithContext(ctx).Model(&domain.Event{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		recordOp(ctx, "event", "update", res.Error)
		return res.Error
	}
	if res.RowsAffected == 0 {
		recordNotFound(ctx, "event", "update")
		return ErrEventNotFound
	}
	recordOp(ctx, "event", "update", nil)
	return nil
}

func (r *GormEventRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Event{}).Where("is_active = ?", true).Count(&count).Error
	recordOp(ctx, "event", "count_active", err)
	return count, err
}
