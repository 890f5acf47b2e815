package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/lfpcrew/lfp-admin/internal/domain"
)

var ErrCarNotFound = errors.New("car not found")

type CarFilter struct {
	MemberID   *uint
	ActiveOnly bool
}

type CarRepository interface {
	Create(ctx context.Context, car *domain.Car) error
	FindByID(ctx context.Context, id uint) (*domain.Car, error)
	List(ctx context.Context, filter CarFilter) ([]domain.Car, error)
	Update(ctx context.Context, id uint, updates map[string]any) error
	DeleteByID(ctx context.Context, id uint) error
	CountActive(ctx context.Context) (int64, error)
}

type GormCarRepository struct{ db *gorm.DB }

func NewCarRepository(db *gorm.DB) CarRepository { return &GormCarRepository{db: db} }

func (r *GormCarRepository) Create(ctx context.Context, car *domain.Car) error {
	err := r.db.WithContext(ctx).Omit("Member").Create(car).Error
	recordOp(ctx, "car", "create", err)
	return err
}

func (r *GormCarRepository) FindByID(ctx context.Context, id uint) (*domain.Car, error) {
	var car domain.Car
	err := r.db.WithContext(ctx).Preload("Member").First(&car, id).Error
	recordOp(ctx, "car", "find_by_id", err)
	if err != nil {
		return nil, translateNotFound(err, ErrCarNotFound)
	}
	return &car, nil
}

func (r *GormCarRepository) List(ctx context.Context, filter CarFilter) ([]domain.Car, error) {
	q := r.db.WithContext(ctx).Preload("Member")
	if filter.MemberID != nil {
		q = q.Where("member_id = ?", *filter.MemberID)
	}
	if filter.ActiveOnly {
		q = q.Where("is_active = ?", true).Order("sort_order asc")
	}
	var cars []domain.Car
	err := q.Order("created_at asc, id asc").Find(&cars).Error
	recordOp(ctx, "car", "list", err)
	return cars, err
}

func (r *GormCarRepository) Update(ctx context.Context, id uint, updates map[string]any) error {
	res := r.db.WithContext(ctx).Model(&domain.Car{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		recordOp(ctx, "car", "update", res.Error)
		return res.Error
	}
	if res.RowsAffected == 0 {
		recordNotFound(ctx, "car", "update")
		return ErrCarNotFound
	}
	recordOp(ctx, "car", "update", nil)
	return nil
}

func (r *GormCarRepository) DeleteByID(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&domain.Car{}, id)
	if res.Error != nil {
		recordOp(ctx, "car", "delete_by_id", res.Error)
		return res.Error
	}
	if res.RowsAffected == 0 {
		recordNotFound(ctx, "car", "delete_by_id")
		return ErrCarNotFound
	}
	recordOp(ctx, "car", "delete_by_id", nil)
	return nil
}

func (r *GormCarRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Car{}).Where("is_active = ?", true).Count(&count).Error
	recordOp(ctx, "car", "count_active", err)
	return count, err
}
