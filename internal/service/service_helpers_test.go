package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/lfpcrew/lfp-admin/internal/database"
	"github.com/lfpcrew/lfp-admin/internal/domain"
)

func newServiceDBForTest(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", name)
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
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := database.SeedRoles(context.Background(), db); err != nil {
		t.Fatalf("seed roles: %v", err)
	}
	return db
}

func roleByNameForTest(t *testing.T, db *gorm.DB, name string) *domain.Role {
	t.Helper()
	var role domain.Role
	if err := db.Where("name = ?", name).First(&role).Error; err != nil {
		t.Fatalf("find role %s: %v", name, err)
	}
	return &role
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type sentEmail struct {
	Kind  EmailKind
	To    string
	Name  string
	Token string
}

type recordingMailer struct {
	mu     sync.Mutex
	ok     bool
	emails []sentEmail
}

func newRecordingMailer(ok bool) *recordingMailer { return &recordingMailer{ok: ok} }

func (m *recordingMailer) Send(_ context.Context, kind EmailKind, to, name, token string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.emails = append(m.emails, sentEmail{Kind: kind, To: to, Name: name, Token: token})
	return m.ok
}

func (m *recordingMailer) last(t *testing.T) sentEmail {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.emails) == 0 {
		t.Fatal("expected an email to be sent")
	}
	return m.emails[len(m.emails)-1]
}

func entityIDString(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
