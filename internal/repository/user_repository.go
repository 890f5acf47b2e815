package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/lfpcrew/lfp-admin/internal/domain"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrSetupTokenNotFound = errors.New("setup token not found")
)

type UserRepository interface {
	FindByID(ctx context.Context, id uint) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, id uint, updates map[string]any) error
	DeleteByID(ctx context.Context, id uint) error
	EmailTaken(ctx context.Context, email string, excludeID uint) (bool, error)
	CountActive(ctx context.Context) (int64, error)
	TouchLastLogin(ctx context.Context, id uint, at time.Time) error

	SetSetupToken(ctx context.Context, userID uint, token string, expiresAt time.Time) error
	FindBySetupToken(ctx context.Context, token string, now time.Time) (*domain.User, error)
	ConsumeSetupToken(ctx context.Context, token string, now time.Time, passwordHash string) error
	ClearExpiredSetupTokens(ctx context.Context, now time.Time) (int64, error)
}

type GormUserRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) UserRepository { return &GormUserRepository{db: db} }

// NormalizeEmail is the canonical form used for storage and lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *GormUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).Preload("Role").Preload("Member").First(&u, id).Error
	recordOp(ctx, "user", "find_by_id", err)
	if err != nil {
		return nil, translateNotFound(err, ErrUserNotFound)
	}
	return &u, nil
}

func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).Preload("Role").Where("email = ?", NormalizeEmail(email)).First(&u).Error
	recordOp(ctx, "user", "find_by_email", err)
	if err != nil {
		return nil, translateNotFound(err, ErrUserNotFound)
	}
	return &u, nil
}

func (r *GormUserRepository) List(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	err := r.db.WithContext(ctx).Preload("Role").Preload("Member").Order("created_at desc, id desc").Find(&users).Error
	recordOp(ctx, "user", "list", err)
	return users, err
}

func (r *GormUserRepository) Create(ctx context.Context, user *domain.User) error {
	user.Email = NormalizeEmail(user.Email)
	err := r.db.WithContext(ctx).Omit("Role", "Member").Create(user).Error
	recordOp(ctx, "user", "create", err)
	return err
}

func (r *GormUserRepository) Update(ctx context.Context, id uint, updates map[string]any) error {
	if email, ok := updates["email"].(string); ok {
		updates["email"] = NormalizeEmail(email)
	}
	res := r.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		recordOp(ctx, "user", "update", res.Error)
		return res.Error
	}
	if res.RowsAffected == 0 {
		recordNotFound(ctx, "user", "update")
		return ErrUserNotFound
	}
	recordOp(ctx, "user", "update", nil)
	return nil
}

func (r *GormUserRepository) DeleteByID(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&domain.User{}, id)
	if res.Error != nil {
		recordOp(ctx, "user", "delete_by_id", res.Error)
		return res.Error
	}
	if res.RowsAffected == 0 {
		recordNotFound(ctx, "user", "delete_by_id")
		return ErrUserNotFound
	}
	recordOp(ctx, "user", "delete_by_id", nil)
	return nil
}

func (r *GormUserRepository) EmailTaken(ctx context.Context, email string, excludeID uint) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&domain.User{}).Where("email = ?", NormalizeEmail(email))
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&count).Error
	recordOp(ctx, "user", "email_taken", err)
	return count > 0, err
}

func (r *GormUserRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.User{}).Where("is_active = ?", true).Count(&count).Error
	recordOp(ctx, "user", "count_active", err)
	return count, err
}

func (r *GormUserRepository) TouchLastLogin(ctx context.Context, id uint, at time.Time) error {
	err := r.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).Update("last_login", at).Error
	recordOp(ctx, "user", "touch_last_login", err)
	return err
}

// SetSetupToken overwrites any previous token, which invalidates it.
func (r *GormUserRepository) SetSetupToken(ctx context.Context, userID uint, token string, expiresAt time.Time) error {
	res := r.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", userID).
		Updates(map[string]any{"setup_token": token, "setup_token_expiry": expiresAt})
	if res.Error != nil {
		recordOp(ctx, "user", "set_setup_token", res.Error)
		return res.Error
	}
	if res.RowsAffected == 0 {
		recordNotFound(ctx, "user", "set_setup_token")
		return ErrUserNotFound
	}
	recordOp(ctx, "user", "set_setup_token", nil)
	return nil
}

func (r *GormUserRepository) FindBySetupToken(ctx context.Context, token string, now time.Time) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).
		Where("setup_token = ? AND setup_token_expiry > ?", token, now).
		First(&u).Error
	recordOp(ctx, "user", "find_by_setup_token", err)
	if err != nil {
		return nil, translateNotFound(err, ErrSetupTokenNotFound)
	}
	return &u, nil
}

// ConsumeSetupToken stores the credential and clears the token in a single
// conditional UPDATE. Of two concurrent calls with the same token only one
// matches the WHERE clause; the other gets ErrSetupTokenNotFound.
func (r *GormUserRepository) ConsumeSetupToken(ctx context.Context, token string, now time.Time, passwordHash string) error {
	res := r.db.WithContext(ctx).Model(&domain.User{}).
		Where("setup_token = ? AND setup_token_expiry > ?", token, now).
		Updates(map[string]any{
			"password_hash":      passwordHash,
			"setup_token":        nil,
			"setup_token_expiry": nil,
			"email_verified_at":  now,
		})
	if res.Error != nil {
		recordOp(ctx, "user", "consume_setup_token", res.Error)
		return res.Error
	}
	if res.RowsAffected == 0 {
		recordNotFound(ctx, "user", "consume_setup_token")
		return ErrSetupTokenNotFound
	}
	recordOp(ctx, "user", "consume_setup_token", nil)
	return nil
}

func (r *GormUserRepository) ClearExpiredSetupTokens(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&domain.User{}).
		Where("setup_token IS NOT NULL AND setup_token_expiry <= ?", now).
		Updates(map[string]any{"setup_token": nil, "setup_token_expiry": nil})
	recordOp(ctx, "user", "clear_expired_setup_tokens", res.Error)
	return res.RowsAffected, res.Error
}
