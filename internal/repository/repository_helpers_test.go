package repository

import (
	"fmt"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/lfpcrew/lfp-admin/internal/domain"
)

func newRepositoryDBForTest(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err := db.AutoMigrate(&domain.Role{}, &domain.Member{}, &domain.Car{}, &domain.Event{}, &domain.User{}, &domain.AuditLog{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedRoleForTest(t *testing.T, db *gorm.DB, name string, perms ...domain.Permission) *domain.Role {
	t.Helper()
	role := &domain.Role{Name: name, Permissions: domain.StringList(domain.PermissionStrings(perms))}
	if err := db.Create(role).Error; err != nil {
		t.Fatalf("create role %s: %v", name, err)
	}
	return role
}

func seedUserForTest(t *testing.T, db *gorm.DB, email string, roleID uint) *domain.User {
	t.Helper()
	u := &domain.User{Name: strings.Split(email, "@")[0], Email: email, RoleID: roleID, IsActive: true}
	if err := db.Omit("Role", "Member").Create(u).Error; err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return u
}
