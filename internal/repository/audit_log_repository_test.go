package repository

import (
	"context"
	"testing"
	"time"

	"github.com/lfpcrew/lfp-admin/internal/domain"
)

func TestAuditLogRepositoryListsNewestFirstWithAuthor(t *testing.T) {
	db := newRepositoryDBForTest(t)
	repo := NewAuditLogRepository(db)
	ctx := context.Background()
	role := seedRoleForTest(t, db, domain.RoleAdmin)
	author := seedUserForTest(t, db, "admin@x.com", role.ID)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, action := range []domain.AuditAction{domain.AuditActionCreate, domain.AuditActionUpdate, domain.AuditActionDelete} {
		entry := &domain.AuditLog{
			UserID:    author.ID,
			Action:    action,
			Entity:    domain.AuditEntityMember,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := repo.Create(ctx, entry); err != nil {
			t.Fatalf("create entry: %v", err)
		}
	}

	page, err := repo.ListPaged(ctx, PageRequest{Page: 1, PageSize: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Total != 3 || page.TotalPages != 2 || len(page.Items) != 2 {
		t.Fatalf("unexpected page: %+v", page)
	}
	if page.Items[0].Action != domain.AuditActionDelete {
		t.Fatalf("expected newest entry first, got %s", page.Items[0].Action)
	}
	if page.Items[0].UserEmail != "admin@x.com" {
		t.Fatalf("expected joined author email, got %q", page.Items[0].UserEmail)
	}

	if err := db.Delete(&domain.User{}, author.ID).Error; err != nil {
		t.Fatalf("delete author: %v", err)
	}
	page, err = repo.ListPaged(ctx, PageRequest{})
	if err != nil {
		t.Fatalf("list after author delete: %v", err)
	}
	if page.Total != 3 {
		t.Fatalf("expected history to survive author deletion, got %d", page.Total)
	}
	if page.PageSize != DefaultPageSize {
		t.Fatalf("expected default page size, got %d", page.PageSize)
	}
}

func TestPageRequestNormalized(t *testing.T) {
	cases := []struct {
		in   PageRequest
		want PageRequest
	}{
		{PageRequest{}, PageRequest{Page: 1, PageSize: DefaultPageSize}},
		{PageRequest{Page: -3, PageSize: 500}, PageRequest{Page: 1, PageSize: MaxPageSize}},
		{PageRequest{Page: 4, PageSize: 10}, PageRequest{Page: 4, PageSize: 10}},
	}
	for _, tc := range cases {
		if got := tc.in.normalized(); got != tc.want {
			t.Fatalf("normalized(%+v) = %+v, want %+v", tc.in, got, tc.want)
		}
	}
	if got := newPageResult(PageRequest{Page: 1, PageSize: 20}, 41, []int{}); got.TotalPages != 3 {
		t.Fatalf("expected 3 pages, got %d", got.TotalPages)
	}
}
