package repository

import (
	"context"
	"database/sql"
	"errors"

	"gorm.io/gorm"

	"github.com/lfpcrew/lfp-admin/internal/domain"
)

var ErrMemberNotFound = errors.New("member not found")

type MemberRepository interface {
	Create(ctx context.Context, member *domain.Member) error
	FindByID(ctx context.Context, id uint) (*domain.Member, error)
	List(ctx context.Context) ([]domain.Member, error)
	ListPublic(ctx context.Context) ([]domain.Member, error)
	Update(ctx context.Context, id uint, updates map[string]any) error
	DeleteWithCars(ctx context.Context, id uint) error
	NextOrder(ctx context.Context) (int, error)
	CountActive(ctx context.Context) (int64, error)
}

type GormMemberRepository struct{ db *gorm.DB }

func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &GormMemberRepository{db: db}
}

func (r *GormMemberRepository) Create(ctx context.Context, member *domain.Member) error {
	err := r.db.WithContext(ctx).Omit("Cars").Create(member).Error
	recordOp(ctx, "member", "create", err)
	return err
}

func (r *GormMemberRepository) FindByID(ctx context.Context, id uint) (*domain.Member, error) {
	var member domain.Member
	err := r.db.WithContext(ctx).
		Preload("Cars", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order asc, id asc") }).
		First(&member, id).Error
	recordOp(ctx, "member", "find_by_id", err)
	if err != nil {
		return nil, translateNotFound(err, ErrMemberNotFound)
	}
	return &member, nil
}

func (r *GormMemberRepository) List(ctx context.Context) ([]domain.Member, error) {
	var members []domain.Member
	err := r.db.WithContext(ctx).
		Preload("Cars", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order asc, id asc") }).
		Order("sort_order asc, id asc").
		Find(&members).Error
	recordOp(ctx, "member", "list", err)
	return members, err
}

// ListPublic returns active members with their active cars only.
func (r *GormMemberRepository) ListPublic(ctx context.Context) ([]domain.Member, error) {
	var members []domain.Member
	err := r.db.WithContext(ctx).
		Preload("Cars", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_active = ?", true).Order("sort_order asc, id asc")
		}).
		Where("is_active = ?", true).
		Order("sort_order asc, id asc").
		Find(&members).Error
	recordOp(ctx, "member", "list_public", err)
	return members, err
}

func (r *GormMemberRepository) Update(ctx context.Context, id uint, updates map[string]any) error {
	res := r.db.WithContext(ctx).Model(&domain.Member{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		recordOp(ctx, "member", "update", res.Error)
		return res.Error
	}
	if res.RowsAffected == 0 {
		recordNotFound(ctx, "member", "update")
		return ErrMemberNotFound
	}
	recordOp(ctx, "member", "update", nil)
	return nil
}

// DeleteWithCars removes the member and every car it owns in one transaction.
// Admin accounts linked to the member are unlinked, not deleted.
func (r *GormMemberRepository) DeleteWithCars(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("member_id = ?", id).Delete(&domain.Car{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&domain.User{}).Where("member_id = ?", id).Update("member_id", nil).Error; err != nil {
			return err
		}
		res := tx.Delete(&domain.Member{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrMemberNotFound
		}
		return nil
	})
	if errors.Is(err, ErrMemberNotFound) {
		recordNotFound(ctx, "member", "delete_with_cars")
		return err
	}
	recordOp(ctx, "member", "delete_with_cars", err)
	return err
}

func (r *GormMemberRepository) NextOrder(ctx context.Context) (int, error) {
	var maxOrder sql.NullInt64
	err := r.db.WithContext(ctx).Model(&domain.Member{}).Select("MAX(sort_order)").Row().Scan(&maxOrder)
	recordOp(ctx, "member", "next_order", err)
	if err != nil {
		return 0, err
	}
	if !maxOrder.Valid {
		return 0, nil
	}
	return int(maxOrder.Int64) + 1, nil
}

func (r *GormMemberRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Member{}).Where("is_active = ?", true).Count(&count).Error
	recordOp(ctx, "member", "count_active", err)
	return count, err
}
