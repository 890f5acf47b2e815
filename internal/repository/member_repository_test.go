package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/lfpcrew/lfp-admin/internal/domain"
)

func TestMemberRepositoryOrderingAndPublicListing(t *testing.T) {
	db := newRepositoryDBForTest(t)
	members := NewMemberRepository(db)
	cars := NewCarRepository(db)
	ctx := context.Background()

	next, err := members.NextOrder(ctx)
	if err != nil || next != 0 {
		t.Fatalf("expected first order 0, got %d err=%v", next, err)
	}
	alice := &domain.Member{Name: "Alice", Instagram: "@alice", Photo: domain.DefaultMemberPhoto, Order: 0, IsActive: true}
	bob := &domain.Member{Name: "Bob", Instagram: "@bob", Photo: domain.DefaultMemberPhoto, Order: 1, IsActive: true}
	for _, m := range []*domain.Member{alice, bob} {
		if err := members.Create(ctx, m); err != nil {
			t.Fatalf("create member: %v", err)
		}
	}
	next, err = members.NextOrder(ctx)
	if err != nil || next != 2 {
		t.Fatalf("expected next order 2, got %d err=%v", next, err)
	}

	active := &domain.Car{Model: "GT86", Year: "2014", MemberID: alice.ID, IsActive: true, Photos: domain.StringList{"/a.jpg"}}
	hidden := &domain.Car{Model: "S2000", Year: "2001", MemberID: alice.ID, IsActive: true}
	for _, c := range []*domain.Car{active, hidden} {
		if err := cars.Create(ctx, c); err != nil {
			t.Fatalf("create car: %v", err)
		}
	}
	if err := cars.Update(ctx, hidden.ID, map[string]any{"is_active": false}); err != nil {
		t.Fatalf("hide car: %v", err)
	}
	if err := members.Update(ctx, bob.ID, map[string]any{"is_active": false}); err != nil {
		t.Fatalf("suspend member: %v", err)
	}

	public, err := members.ListPublic(ctx)
	if err != nil {
		t.Fatalf("list public: %v", err)
	}
	if len(public) != 1 || public[0].ID != alice.ID {
		t.Fatalf("expected only alice, got %+v", public)
	}
	if len(public[0].Cars) != 1 || public[0].Cars[0].ID != active.ID {
		t.Fatalf("expected only active car, got %+v", public[0].Cars)
	}
	if len(public[0].Cars[0].Photos) != 1 {
		t.Fatalf("expected photos round trip, got %v", public[0].Cars[0].Photos)
	}

	count, err := members.CountActive(ctx)
	if err != nil || count != 1 {
		t.Fatalf("expected one active member, got %d err=%v", count, err)
	}
}

func TestMemberRepositoryDeleteWithCars(t *testing.T) {
	db := newRepositoryDBForTest(t)
	members := NewMemberRepository(db)
	cars := NewCarRepository(db)
	ctx := context.Background()

	m := &domain.Member{Name: "Carl", Instagram: "@carl", Photo: domain.DefaultMemberPhoto, IsActive: true}
	if err := members.Create(ctx, m); err != nil {
		t.Fatalf("create member: %v", err)
	}
	if err := cars.Create(ctx, &domain.Car{Model: "Supra", Year: "1998", MemberID: m.ID, IsActive: true}); err != nil {
		t.Fatalf("create car: %v", err)
	}

	if err := members.DeleteWithCars(ctx, m.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	remaining, err := cars.List(ctx, CarFilter{MemberID: &m.ID})
	if err != nil {
		t.Fatalf("list cars: %v", err)
	}
	if len(remaining) != 0 {
		t.Fatalf("expected cars removed with member, got %d", len(remaining))
	}
	if err := members.DeleteWithCars(ctx, m.ID); !errors.Is(err, ErrMemberNotFound) {
		t.Fatalf("expected ErrMemberNotFound, got %v", err)
	}
}
