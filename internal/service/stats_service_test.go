package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/lfpcrew/lfp-admin/internal/domain"
	"github.com/lfpcrew/lfp-admin/internal/repository"
	repogomock "github.com/lfpcrew/lfp-admin/internal/repository/gomock"
)

func TestStatsServiceCountsActiveRows(t *testing.T) {
	db := newServiceDBForTest(t)
	ctx := context.Background()
	members := repository.NewMemberRepository(db)
	cars := repository.NewCarRepository(db)
	events := repository.NewEventRepository(db)
	users := repository.NewUserRepository(db)

	m := &domain.Member{Name: "Max", Instagram: "@max", Photo: "x", IsActive: true}
	if err := members.Create(ctx, m); err != nil {
		t.Fatalf("member: %v", err)
	}
	off := &domain.Member{Name: "Off", Instagram: "@off", Photo: "x", IsActive: true}
	if err := members.Create(ctx, off); err != nil {
		t.Fatalf("member: %v", err)
	}
	if err := members.Update(ctx, off.ID, map[string]any{"is_active": false}); err != nil {
		t.Fatalf("suspend: %v", err)
	}
	if err := cars.Create(ctx, &domain.Car{Model: "Supra", Year: "1998", MemberID: m.ID, IsActive: true}); err != nil {
		t.Fatalf("car: %v", err)
	}
	editor := roleByNameForTest(t, db, domain.RoleEditor)
	if err := users.Create(ctx, &domain.User{Name: "Jane", Email: "jane@x.com", RoleID: editor.ID, IsActive: true}); err != nil {
		t.Fatalf("user: %v", err)
	}

	stats, err := NewStatsService(members, cars, events, users).Dashboard(ctx)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if stats != (DashboardStats{Members: 1, Cars: 1, Events: 0, Users: 1}) {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestStatsServicePropagatesFailure(t *testing.T) {
	db := newServiceDBForTest(t)
	ctrl := gomock.NewController(t)
	users := repogomock.NewMockUserRepository(ctrl)
	boom := errors.New("db down")
	users.EXPECT().CountActive(gomock.Any()).Return(int64(0), boom)

	svc := NewStatsService(repository.NewMemberRepository(db), repository.NewCarRepository(db), repository.NewEventRepository(db), users)
	if _, err := svc.Dashboard(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected %v, got %v", boom, err)
	}
}
