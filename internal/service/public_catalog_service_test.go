package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/lfpcrew/lfp-admin/internal/domain"
	"github.com/lfpcrew/lfp-admin/internal/repository"
)

func newCatalogForTest(t *testing.T) (*PublicCatalogService, *MemberService, *gorm.DB) {
	t.Helper()
	db := newServiceDBForTest(t)
	memberRepo := repository.NewMemberRepository(db)
	catalog := NewPublicCatalogService(
		memberRepo,
		repository.NewCarRepository(db),
		repository.NewEventRepository(db),
		NewLRUCatalogCacheStore(16, time.Minute),
		time.Minute,
		discardLogger(),
	)
	audit := NewAuditTrail(repository.NewAuditLogRepository(db), discardLogger())
	return catalog, NewMemberService(memberRepo, audit, catalog), db
}

func TestPublicCatalogServedFromCacheUntilMutation(t *testing.T) {
	catalog, members, db := newCatalogForTest(t)
	ctx := context.Background()
	actor := Actor{UserID: 1}

	if _, err := members.Create(ctx, actor, CreateMemberInput{Name: "Max", Instagram: "@max"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	first, err := catalog.Members(ctx)
	if err != nil || len(first) != 1 {
		t.Fatalf("expected one member, got %d err=%v", len(first), err)
	}

	// A write that bypasses the services is not seen until invalidation.
	if err := db.Create(&domain.Member{Name: "Ghost", Instagram: "@ghost", Photo: "x", IsActive: true}).Error; err != nil {
		t.Fatalf("direct insert: %v", err)
	}
	cached, err := catalog.Members(ctx)
	if err != nil || len(cached) != 1 {
		t.Fatalf("expected cached view with one member, got %d err=%v", len(cached), err)
	}

	if _, err := members.Create(ctx, actor, CreateMemberInput{Name: "Léa", Instagram: "@lea"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	fresh, err := catalog.Members(ctx)
	if err != nil || len(fresh) != 3 {
		t.Fatalf("expected invalidated view with three members, got %d err=%v", len(fresh), err)
	}
}

func TestPublicCatalogHidesInactiveContent(t *testing.T) {
	catalog, members, db := newCatalogForTest(t)
	ctx := context.Background()
	actor := Actor{UserID: 1}

	active, err := members.Create(ctx, actor, CreateMemberInput{Name: "Max", Instagram: "@max"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	hidden, err := members.Create(ctx, actor, CreateMemberInput{Name: "Old", Instagram: "@old"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := members.Delete(ctx, actor, hidden.ID, false); err != nil {
		t.Fatalf("suspend: %v", err)
	}
	cars := repository.NewCarRepository(db)
	for _, c := range []*domain.Car{
		{Model: "Supra", Year: "1998", MemberID: active.ID, IsActive: true, Order: 2},
		{Model: "Civic", Year: "2001", MemberID: active.ID, IsActive: true, Order: 1},
	} {
		if err := cars.Create(ctx, c); err != nil {
			t.Fatalf("create car: %v", err)
		}
	}
	if err := db.Create(&domain.Car{Model: "Hidden", Year: "2000", MemberID: active.ID, IsActive: true}).Error; err != nil {
		t.Fatalf("create car: %v", err)
	}
	if err := db.Model(&domain.Car{}).Where("model = ?", "Hidden").Update("is_active", false).Error; err != nil {
		t.Fatalf("hide car: %v", err)
	}
	catalog.Invalidate(ctx)

	list, err := catalog.Members(ctx)
	if err != nil {
		t.Fatalf("members: %v", err)
	}
	if len(list) != 1 || list[0].Name != "Max" || len(list[0].Cars) != 2 {
		t.Fatalf("unexpected public members: %+v", list)
	}
	publicCars, err := catalog.Cars(ctx)
	if err != nil {
		t.Fatalf("cars: %v", err)
	}
	if len(publicCars) != 2 || publicCars[0].Model != "Civic" || publicCars[0].Owner != "Max" || publicCars[0].OwnerInstagram != "@max" {
		t.Fatalf("unexpected public cars: %+v", publicCars)
	}
}

func TestPublicCatalogEventStatus(t *testing.T) {
	catalog, _, db := newCatalogForTest(t)
	ctx := context.Background()
	now := time.Date(2026, 6, 15, 20, 0, 0, 0, time.UTC)
	catalog.now = func() time.Time { return now }

	events := repository.NewEventRepository(db)
	for _, e := range []*domain.Event{
		{Title: "Past", Date: now.AddDate(0, 0, -1), Location: "A", IsActive: true},
		{Title: "Today", Date: time.Date(2026, 6, 15, 8, 0, 0, 0, time.UTC), Location: "B", IsActive: true},
		{Title: "Next", Date: now.AddDate(0, 1, 0), Location: "C", IsActive: true},
	} {
		if err := events.Create(ctx, e); err != nil {
			t.Fatalf("create event: %v", err)
		}
	}

	list, err := catalog.Events(ctx)
	if err != nil {
		t.Fatalf("events: %v", err)
	}
	status := map[string]domain.EventStatus{}
	for _, e := range list {
		status[e.Title] = e.Status
	}
	if status["Past"] != domain.EventStatusPast || status["Today"] != domain.EventStatusUpcoming || status["Next"] != domain.EventStatusUpcoming {
		t.Fatalf("unexpected statuses: %v", status)
	}
}

type countingMemberRepo struct {
	repository.MemberRepository
	mu    sync.Mutex
	calls int
	gate  chan struct{}
}

func (r *countingMemberRepo) ListPublic(ctx context.Context) ([]domain.Member, error) {
	r.mu.Lock()
	r.calls++
	r.mu.Unlock()
	<-r.gate
	return []domain.Member{{ID: 1, Name: "Max", Instagram: "@max", IsActive: true}}, nil
}

func TestPublicCatalogCollapsesConcurrentMisses(t *testing.T) {
	repo := &countingMemberRepo{gate: make(chan struct{})}
	catalog := NewPublicCatalogService(repo, nil, nil, NewLRUCatalogCacheStore(4, time.Minute), time.Minute, discardLogger())
	ctx := context.Background()

	const callers = 8
	var wg sync.WaitGroup
	started := make(chan struct{}, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			started <- struct{}{}
			if list, err := catalog.Members(ctx); err != nil || len(list) != 1 {
				t.Errorf("members: %d err=%v", len(list), err)
			}
		}()
	}
	for i := 0; i < callers; i++ {
		<-started
	}
	time.Sleep(50 * time.Millisecond)
	close(repo.gate)
	wg.Wait()

	repo.mu.Lock()
	defer repo.mu.Unlock()
	if repo.calls != 1 {
		t.Fatalf("expected one database read, got %d", repo.calls)
	}
}

func TestInvalidationDuringFillDropsStaleResult(t *testing.T) {
	store := NewLRUCatalogCacheStore(16, time.Minute)
	catalog := NewPublicCatalogService(nil, nil, nil, store, time.Minute, discardLogger())
	ctx := context.Background()

	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		var out []string
		done <- catalog.cached(ctx, "members", &out, func(context.Context) (any, error) {
			close(started)
			<-release
			return []string{"before"}, nil
		})
	}()

	<-started
	catalog.Invalidate(ctx)
	close(release)
	if err := <-done; err != nil {
		t.Fatalf("stale fill: %v", err)
	}
	if _, ok, _ := store.Get(ctx, catalogNamespace, "members"); ok {
		t.Fatal("a fill that raced an invalidation must not be cached")
	}

	var out []string
	if err := catalog.cached(ctx, "members", &out, func(context.Context) (any, error) {
		return []string{"after"}, nil
	}); err != nil {
		t.Fatalf("fresh fill: %v", err)
	}
	if len(out) != 1 || out[0] != "after" {
		t.Fatalf("expected fresh view, got %v", out)
	}
	if _, ok, _ := store.Get(ctx, catalogNamespace, "members"); !ok {
		t.Fatal("expected the fresh fill to be cached")
	}
}
