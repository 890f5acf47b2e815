package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/lfpcrew/lfp-admin/internal/domain"
	"github.com/lfpcrew/lfp-admin/internal/observability"
	"github.com/lfpcrew/lfp-admin/internal/security"
)

var ErrBootstrapPasswordRequired = errors.New("bootstrap admin password is required to create the account")

type BootstrapAdmin struct {
	Email    string
	Name     string
	Password string
}

type SeedReport struct {
	CreatedRoles   int    `json:"created_roles"`
	BootstrapAdmin string `json:"bootstrap_admin"`
	Noop           bool   `json:"noop"`
}

// SeedRoles creates the built-in roles that are missing. Existing roles
// keep whatever permission set an administrator gave them.
func SeedRoles(ctx context.Context, db *gorm.DB) error {
	_, err := seedRoles(ctx, db)
	return err
}

// Seed creates missing built-in roles and, when admin.Email is set, the
// first super_admin account.
func Seed(ctx context.Context, db *gorm.DB, admin BootstrapAdmin) (*SeedReport, error) {
	start := time.Now()
	defer func() {
		observability.RecordDatabaseStartupDuration(ctx, "seed", time.Since(start))
	}()

	report := &SeedReport{BootstrapAdmin: "skipped"}
	created, err := seedRoles(ctx, db)
	if err != nil {
		observability.RecordDatabaseStartupEvent(ctx, "seed", "error")
		return nil, err
	}
	report.CreatedRoles = created

	state, err := seedBootstrapAdmin(ctx, db, admin)
	if err != nil {
		observability.RecordDatabaseStartupEvent(ctx, "seed", "error")
		return nil, err
	}
	report.BootstrapAdmin = state
	report.Noop = report.CreatedRoles == 0 && state != "created"
	observability.RecordDatabaseStartupEvent(ctx, "seed", "success")
	return report, nil
}

func seedRoles(ctx context.Context, db *gorm.DB) (int, error) {
	created := 0
	for _, def := range domain.DefaultRoles() {
		role := domain.Role{
			Name:        def.Name,
			Description: def.Description,
			Permissions: domain.StringList(domain.PermissionStrings(def.Permissions)),
		}
		res := db.WithContext(ctx).Where("name = ?", role.Name).FirstOrCreate(&role)
		if res.Error != nil {
			return created, fmt.Errorf("seed role %s: %w", def.Name, res.Error)
		}
		if res.RowsAffected > 0 {
			created++
		}
	}
	return created, nil
}

func seedBootstrapAdmin(ctx context.Context, db *gorm.DB, admin BootstrapAdmin) (string, error) {
	email := strings.TrimSpace(strings.ToLower(admin.Email))
	if email == "" {
		return "skipped", nil
	}
	var existing domain.User
	err := db.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	if err == nil {
		return "exists", nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("lookup bootstrap admin: %w", err)
	}
	if admin.Password == "" {
		return "", ErrBootstrapPasswordRequired
	}
	if len(admin.Password) > security.MaxPasswordLength {
		return "", security.ErrPasswordTooLong
	}

	var role domain.Role
	if err := db.WithContext(ctx).Where("name = ?", domain.RoleSuperAdmin).First(&role).Error; err != nil {
		return "", fmt.Errorf("lookup super_admin role: %w", err)
	}
	hash, err := security.HashPassword(admin.Password)
	if err != nil {
		return "", fmt.Errorf("hash bootstrap password: %w", err)
	}
	name := strings.TrimSpace(admin.Name)
	if name == "" {
		name = "Admin"
	}
	now := time.Now().UTC()
	user := domain.User{
		Name:            name,
		Email:           email,
		PasswordHash:    &hash,
		RoleID:          role.ID,
		IsActive:        true,
		EmailVerifiedAt: &now,
	}
	if err := db.WithContext(ctx).Create(&user).Error; err != nil {
		return "", fmt.Errorf("create bootstrap admin: %w", err)
	}
	return "created", nil
}

// ResetRolePermissions rewrites the description and permission set of every
// built-in role back to its default and returns the number of roles touched.
// Missing built-in roles are created.
func ResetRolePermissions(ctx context.Context, db *gorm.DB) (int, error) {
	touched := 0
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, def := range domain.DefaultRoles() {
			perms := domain.StringList(domain.PermissionStrings(def.Permissions))
			role := domain.Role{Name: def.Name}
			if err := tx.Where("name = ?", def.Name).
				Assign(domain.Role{Description: def.Description, Permissions: perms}).
				FirstOrCreate(&role).Error; err != nil {
				return fmt.Errorf("reset role %s: %w", def.Name, err)
			}
			touched++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return touched, nil
}
