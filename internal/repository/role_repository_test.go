package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/lfpcrew/lfp-admin/internal/domain"
)

func TestRoleRepositoryListIncludesUserCounts(t *testing.T) {
	db := newRepositoryDBForTest(t)
	repo := NewRoleRepository(db)
	ctx := context.Background()
	editor := seedRoleForTest(t, db, domain.RoleEditor, domain.PermMembersView)
	viewer := seedRoleForTest(t, db, domain.RoleViewer)
	seedUserForTest(t, db, "a@x.com", editor.ID)
	seedUserForTest(t, db, "b@x.com", editor.ID)

	roles, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	counts := map[uint]int64{}
	for _, r := range roles {
		counts[r.ID] = r.UserCount
	}
	if counts[editor.ID] != 2 || counts[viewer.ID] != 0 {
		t.Fatalf("unexpected counts: %+v", counts)
	}

	loaded, err := repo.FindByID(ctx, editor.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if loaded.UserCount != 2 || len(loaded.Permissions) != 1 || loaded.Permissions[0] != string(domain.PermMembersView) {
		t.Fatalf("unexpected role: %+v", loaded)
	}
}

func TestRoleRepositoryDeleteUnassigned(t *testing.T) {
	db := newRepositoryDBForTest(t)
	repo := NewRoleRepository(db)
	ctx := context.Background()
	used := seedRoleForTest(t, db, "moderator")
	unused := seedRoleForTest(t, db, "guest")
	seedUserForTest(t, db, "mod@x.com", used.ID)

	if err := repo.DeleteUnassigned(ctx, used.ID); !errors.Is(err, ErrRoleInUse) {
		t.Fatalf("expected ErrRoleInUse, got %v", err)
	}
	if err := repo.DeleteUnassigned(ctx, unused.ID); err != nil {
		t.Fatalf("delete unused: %v", err)
	}
	if err := repo.DeleteUnassigned(ctx, unused.ID); !errors.Is(err, ErrRoleNotFound) {
		t.Fatalf("expected ErrRoleNotFound, got %v", err)
	}
	if _, err := repo.FindByID(ctx, used.ID); err != nil {
		t.Fatalf("expected in-use role to survive: %v", err)
	}
}

func TestRoleRepositoryUpdatePermissions(t *testing.T) {
	db := newRepositoryDBForTest(t)
	repo := NewRoleRepository(db)
	ctx := context.Background()
	role := seedRoleForTest(t, db, "moderator", domain.PermMembersView)

	next := domain.StringList{string(domain.PermCarsView), string(domain.PermEventsView)}
	if err := repo.Update(ctx, role.ID, map[string]any{"permissions": next}); err != nil {
		t.Fatalf("update: %v", err)
	}
	loaded, err := repo.FindByName(ctx, "moderator")
	if err != nil {
		t.Fatalf("find by name: %v", err)
	}
	if len(loaded.Permissions) != 2 || loaded.HasPermission(domain.PermMembersView) {
		t.Fatalf("unexpected permissions: %v", loaded.Permissions)
	}
	if err := repo.Update(ctx, 999, map[string]any{"name": "x"}); !errors.Is(err, ErrRoleNotFound) {
		t.Fatalf("expected ErrRoleNotFound, got %v", err)
	}
}
