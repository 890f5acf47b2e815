package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/singleflight"

	"github.com/lfpcrew/lfp-admin/internal/domain"
	"github.com/lfpcrew/lfp-admin/internal/observability"
	"github.com/lfpcrew/lfp-admin/internal/repository"
)

const catalogNamespace = "public.catalog"

var catalogViews = []string{"members", "cars", "events"}

type PublicCar struct {
	ID             uint     `json:"id"`
	Model          string   `json:"model"`
	Year           string   `json:"year"`
	Photos         []string `json:"photos"`
	ContainPhotos  []int    `json:"containPhotos"`
	Engine         string   `json:"engine"`
	Power          string   `json:"power"`
	Modifications  string   `json:"modifications"`
	Story          string   `json:"story"`
	Owner          string   `json:"owner"`
	OwnerInstagram string   `json:"ownerInstagram"`
}

type PublicMember struct {
	ID        uint        `json:"id"`
	Name      string      `json:"name"`
	Instagram string      `json:"instagram"`
	Photo     string      `json:"photo"`
	Bio       string      `json:"bio"`
	Cars      []PublicCar `json:"cars"`
	CreatedAt time.Time   `json:"createdAt"`
}

type PublicEvent struct {
	ID          uint               `json:"id"`
	Title       string             `json:"title"`
	Date        time.Time          `json:"date"`
	Location    string             `json:"location"`
	Description string             `json:"description"`
	Photo       *string            `json:"photo"`
	Status      domain.EventStatus `json:"status"`
}

// CatalogInvalidator drops cached public views after a content change.
type CatalogInvalidator interface {
	Invalidate(ctx context.Context)
}

// PublicCatalogService renders the unauthenticated catalog. Renders are
// cached; concurrent misses for the same view share one database read.
// A fill that started before an invalidation never writes its result.
type PublicCatalogService struct {
	members repository.MemberRepository
	cars    repository.CarRepository
	events  repository.EventRepository
	store   CatalogCacheStore
	ttl     time.Duration
	group   singleflight.Group
	logger  *slog.Logger
	now     func() time.Time

	genMu      sync.RWMutex
	generation uint64
}

func NewPublicCatalogService(members repository.MemberRepository, cars repository.CarRepository, events repository.EventRepository, store CatalogCacheStore, ttl time.Duration, logger *slog.Logger) *PublicCatalogService {
	if store == nil {
		store = NewNoopCatalogCacheStore()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PublicCatalogService{members: members, cars: cars, events: events, store: store, ttl: ttl, logger: logger, now: time.Now}
}

func (s *PublicCatalogService) Members(ctx context.Context) ([]PublicMember, error) {
	var out []PublicMember
	err := s.cached(ctx, "members", &out, func(ctx context.Context) (any, error) {
		members, err := s.members.ListPublic(ctx)
		if err != nil {
			return nil, err
		}
		res := make([]PublicMember, 0, len(members))
		for _, m := range members {
			pm := PublicMember{ID: m.ID, Name: m.Name, Instagram: m.Instagram, Photo: m.Photo, Bio: m.Bio, CreatedAt: m.CreatedAt, Cars: make([]PublicCar, 0, len(m.Cars))}
			for _, c := range m.Cars {
				pm.Cars = append(pm.Cars, publicCar(c, m))
			}
			res = append(res, pm)
		}
		return res, nil
	})
	return out, err
}

func (s *PublicCatalogService) Cars(ctx context.Context) ([]PublicCar, error) {
	var out []PublicCar
	err := s.cached(ctx, "cars", &out, func(ctx context.Context) (any, error) {
		cars, err := s.cars.List(ctx, repository.CarFilter{ActiveOnly: true})
		if err != nil {
			return nil, err
		}
		sort.SliceStable(cars, func(i, j int) bool { return cars[i].Order < cars[j].Order })
		res := make([]PublicCar, 0, len(cars))
		for _, c := range cars {
			var owner domain.Member
			if c.Member != nil {
				owner = *c.Member
			}
			res = append(res, publicCar(c, owner))
		}
		return res, nil
	})
	return out, err
}

// Events computes status at render time, so a cached view can lag a day
// boundary by at most the cache TTL.
func (s *PublicCatalogService) Events(ctx context.Context) ([]PublicEvent, error) {
	var out []PublicEvent
	err := s.cached(ctx, "events", &out, func(ctx context.Context) (any, error) {
		events, err := s.events.List(ctx, true)
		if err != nil {
			return nil, err
		}
		now := s.now()
		res := make([]PublicEvent, 0, len(events))
		for _, e := range events {
			res = append(res, PublicEvent{
				ID: e.ID, Title: e.Title, Date: e.Date, Location: e.Location,
				Description: e.Description, Photo: e.Photo, Status: e.StatusAt(now),
			})
		}
		return res, nil
	})
	return out, err
}

func (s *PublicCatalogService) Invalidate(ctx context.Context) {
	s.genMu.Lock()
	s.generation++
	s.genMu.Unlock()
	for _, view := range catalogViews {
		s.group.Forget(view)
	}
	if err := s.store.InvalidateNamespace(ctx, catalogNamespace); err != nil {
		observability.RecordPublicCacheEvent(ctx, "all", "invalidate_error")
		s.logger.WarnContext(ctx, "public catalog invalidation failed", "error", err)
		return
	}
	observability.RecordPublicCacheEvent(ctx, "all", "invalidate")
}

func (s *PublicCatalogService) cached(ctx context.Context, view string, dst any, load func(context.Context) (any, error)) error {
	if raw, ok, err := s.store.Get(ctx, catalogNamespace, view); err != nil {
		observability.RecordPublicCacheEvent(ctx, view, "error")
		s.logger.WarnContext(ctx, "public catalog cache read failed", "view", view, "error", err)
	} else if ok {
		if err := json.Unmarshal(raw, dst); err == nil {
			observability.RecordPublicCacheEvent(ctx, view, "hit")
			return nil
		}
	}
	observability.RecordPublicCacheEvent(ctx, view, "miss")

	gen := s.currentGeneration()
	raw, err, shared := s.group.Do(view, func() (any, error) {
		// Shared by every waiter, so it must outlive the first caller.
		fillCtx, span := observability.StartSpan(context.WithoutCancel(ctx), "public_catalog.fill", attribute.String("catalog.view", view))
		defer span.End()
		value, err := load(fillCtx)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		payload, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		s.storeFill(fillCtx, view, gen, payload)
		return payload, nil
	})
	if err != nil {
		return err
	}
	if shared {
		observability.RecordPublicCacheEvent(ctx, view, "shared")
	}
	return json.Unmarshal(raw.([]byte), dst)
}

func (s *PublicCatalogService) currentGeneration() uint64 {
	s.genMu.RLock()
	defer s.genMu.RUnlock()
	return s.generation
}

// storeFill caches payload only if no invalidation happened since gen was
// read. The read lock keeps Invalidate from bumping between check and Set.
func (s *PublicCatalogService) storeFill(ctx context.Context, view string, gen uint64, payload []byte) {
	s.genMu.RLock()
	defer s.genMu.RUnlock()
	if s.generation != gen {
		observability.RecordPublicCacheEvent(ctx, view, "stale_fill_dropped")
		return
	}
	if err := s.store.Set(ctx, catalogNamespace, view, payload, s.ttl); err != nil {
		s.logger.WarnContext(ctx, "public catalog cache write failed", "view", view, "error", err)
	}
}

func publicCar(c domain.Car, owner domain.Member) PublicCar {
	photos := []string(c.Photos)
	if photos == nil {
		photos = []string{}
	}
	contain := []int(c.ContainPhotos)
	if contain == nil {
		contain = []int{}
	}
	return PublicCar{
		ID: c.ID, Model: c.Model, Year: c.Year, Photos: photos, ContainPhotos: contain,
		Engine: c.Engine, Power: c.Power, Modifications: c.Modifications, Story: c.Story,
		Owner: owner.Name, OwnerInstagram: owner.Instagram,
	}
}
