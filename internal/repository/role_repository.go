package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/lfpcrew/lfp-admin/internal/domain"
)

var (
	ErrRoleNotFound = errors.New("role not found")
	ErrRoleInUse    = errors.New("role is assigned to users")
)

type RoleRepository interface {
	FindByID(ctx context.Context, id uint) (*domain.Role, error)
	FindByName(ctx context.Context, name string) (*domain.Role, error)
	List(ctx context.Context) ([]domain.Role, error)
	Create(ctx context.Context, role *domain.Role) error
	Update(ctx context.Context, id uint, updates map[string]any) error
	CountUsers(ctx context.Context, roleID uint) (int64, error)
	DeleteUnassigned(ctx context.Context, id uint) error
}

type GormRoleRepository struct{ db *gorm.DB }

func NewRoleRepository(db *gorm.DB) RoleRepository { return &GormRoleRepository{db: db} }

func (r *GormRoleRepository) FindByID(ctx context.Context, id uint) (*domain.Role, error) {
	var role domain.Role
	if err := r.db.WithContext(ctx).First(&role, id).Error; err != nil {
		recordOp(ctx, "role", "find_by_id", err)
		return nil, translateNotFound(err, ErrRoleNotFound)
	}
	count, err := r.CountUsers(ctx, role.ID)
	if err != nil {
		return nil, err
	}
	role.UserCount = count
	recordOp(ctx, "role", "find_by_id", nil)
	return &role, nil
}

func (r *GormRoleRepository) FindByName(ctx context.Context, name string) (*domain.Role, error) {
	var role domain.Role
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&role).Error
	recordOp(ctx, "role", "find_by_name", err)
	if err != nil {
		return nil, translateNotFound(err, ErrRoleNotFound)
	}
	return &role, nil
}

type roleUserCount struct {
	RoleID uint
	Total  int64
}

func (r *GormRoleRepository) List(ctx context.Context) ([]domain.Role, error) {
	var roles []domain.Role
	if err := r.db.WithContext(ctx).Order("id asc").Find(&roles).Error; err != nil {
		recordOp(ctx, "role", "list", err)
		return nil, err
	}
	var counts []roleUserCount
	if err := r.db.WithContext(ctx).Model(&domain.User{}).
		Select("role_id, count(*) as total").
		Group("role_id").
		Scan(&counts).Error; err != nil {
		recordOp(ctx, "role", "list", err)
		return nil, err
	}
	byRole := make(map[uint]int64, len(counts))
	for _, c := range counts {
		byRole[c.RoleID] = c.Total
	}
	for i := range roles {
		roles[i].UserCount = byRole[roles[i].ID]
	}
	recordOp(ctx, "role", "list", nil)
	return roles, nil
}

func (r *GormRoleRepository) Create(ctx context.Context, role *domain.Role) error {
	err := r.db.WithContext(ctx).Create(role).Error
	recordOp(ctx, "role", "create", err)
	return err
}

func (r *GormRoleRepository) Update(ctx context.Context, id uint, updates map[string]any) error {
	res := r.db.WithContext(ctx).Model(&domain.Role{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		recordOp(ctx, "role", "update", res.Error)
		return res.Error
	}
	if res.RowsAffected == 0 {
		recordNotFound(ctx, "role", "update")
		return ErrRoleNotFound
	}
	recordOp(ctx, "role", "update", nil)
	return nil
}

func (r *GormRoleRepository) CountUsers(ctx context.Context, roleID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.User{}).Where("role_id = ?", roleID).Count(&count).Error
	recordOp(ctx, "role", "count_users", err)
	return count, err
}

// DeleteUnassigned removes the role only while no user references it, so a
// user assigned between the service check and the delete blocks the delete.
func (r *GormRoleRepository) DeleteUnassigned(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND NOT EXISTS (SELECT 1 FROM users WHERE users.role_id = roles.id)", id).
		Delete(&domain.Role{})
	if res.Error != nil {
		recordOp(ctx, "role", "delete", res.Error)
		return res.Error
	}
	if res.RowsAffected > 0 {
		recordOp(ctx, "role", "delete", nil)
		return nil
	}
	var exists int64
	if err := r.db.WithContext(ctx).Model(&domain.Role{}).Where("id = ?", id).Count(&exists).Error; err != nil {
		recordOp(ctx, "role", "delete", err)
		return err
	}
	if exists == 0 {
		recordNotFound(ctx, "role", "delete")
		return ErrRoleNotFound
	}
	recordOp(ctx, "role", "delete", ErrRoleInUse)
	return ErrRoleInUse
}
