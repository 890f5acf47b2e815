package service

import (
	"context"
	"strings"
	"time"

	"github.com/lfpcrew/lfp-admin/internal/domain"
	"github.com/lfpcrew/lfp-admin/internal/observability"
	"github.com/lfpcrew/lfp-admin/internal/repository"
)

var (
	ErrEventFieldsRequired = invalid("title, date and location are required")
	ErrInvalidEventDate    = invalid("date must be RFC3339 or YYYY-MM-DD")
)

type CreateEventInput struct {
	Title       string
	Date        string
	Location    string
	Description string
	Photo       *string
	Order       *int
}

type UpdateEventInput struct {
	Title       *string
	Date        *string
	Location    *string
	Description *string
	Photo       *string
	ClearPhoto  bool
	Order       *int
	IsActive    *bool
}

type EventService struct {
	events  repository.EventRepository
	audit   *AuditTrail
	catalog CatalogInvalidator
}

func NewEventService(events repository.EventRepository, audit *AuditTrail, catalog CatalogInvalidator) *EventService {
	return &EventService{events: events, audit: audit, catalog: catalog}
}

func (s *EventService) List(ctx context.Context) ([]domain.Event, error) {
	return s.events.List(ctx, false)
}

func (s *EventService) Get(ctx context.Context, id uint) (*domain.Event, error) {
	return s.events.FindByID(ctx, id)
}

func (s *EventService) Create(ctx context.Context, actor Actor, in CreateEventInput) (event *domain.Event, err error) {
	defer func() { observability.RecordAdminMutation(ctx, "event", "create", outcomeOf(err)) }()

	title := strings.TrimSpace(in.Title)
	location := strings.TrimSpace(in.Location)
	if title == "" || location == "" || strings.TrimSpace(in.Date) == "" {
		return nil, ErrEventFieldsRequired
	}
	date, err := ParseEventDate(in.Date)
	if err != nil {
		return nil, err
	}
	event = &domain.Event{
		Title:       title,
		Date:        date,
		Location:    location,
		Description: in.Description,
		Photo:       blankToNil(in.Photo),
		IsActive:    true,
	}
	if in.Order != nil {
		event.Order = *in.Order
	}
	if err := s.events.Create(ctx, event); err != nil {
		return nil, err
	}
	s.audit.Record(ctx, AuditEntry{
		Actor: actor, Action: domain.AuditActionCreate, Entity: domain.AuditEntityEvent, EntityID: event.ID,
		Details: map[string]any{"title": title},
	})
	s.catalog.Invalidate(ctx)
	return event, nil
}

func (s *EventService) Update(ctx context.Context, actor Actor, id uint, in UpdateEventInput) (event *domain.Event, err error) {
	defer func() { observability.RecordAdminMutation(ctx, "event", "update", outcomeOf(err)) }()

	updates := map[string]any{}
	setTrimmed(updates, "title", in.Title)
	setTrimmed(updates, "location", in.Location)
	if in.Date != nil && strings.TrimSpace(*in.Date) != "" {
		date, err := ParseEventDate(*in.Date)
		if err != nil {
			return nil, err
		}
		updates["date"] = date
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	switch {
	case in.ClearPhoto:
		updates["photo"] = nil
	case in.Photo != nil:
		updates["photo"] = blankToNil(in.Photo)
	}
	if in.Order != nil {
		updates["sort_order"] = *in.Order
	}
	if in.IsActive != nil {
		updates["is_active"] = *in.IsActive
	}
	if len(updates) == 0 {
		return nil, ErrNoUpdates
	}
	if err := s.events.Update(ctx, id, updates); err != nil {
		return nil, err
	}
	s.audit.Record(ctx, AuditEntry{
		Actor: actor, Action: domain.AuditActionUpdate, Entity: domain.AuditEntityEvent, EntityID: id,
		Details: updates,
	})
	s.catalog.Invalidate(ctx)
	return s.events.FindByID(ctx, id)
}

// Delete hides the event from the public catalog. The row is kept.
func (s *EventService) Delete(ctx context.Context, actor Actor, id uint) (err error) {
	defer func() { observability.RecordAdminMutation(ctx, "event", "delete", outcomeOf(err)) }()

	event, err := s.events.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.events.Update(ctx, id, map[string]any{"is_active": false}); err != nil {
		return err
	}
	s.audit.Record(ctx, AuditEntry{
		Actor: actor, Action: domain.AuditActionDelete, Entity: domain.AuditEntityEvent, EntityID: id,
		Details: map[string]any{"title": event.Title},
	})
	s.catalog.Invalidate(ctx)
	return nil
}

// ParseEventDate accepts a full RFC3339 timestamp or a bare calendar day,
// which is read as midnight UTC.
func ParseEventDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return t, nil
	}
	return time.Time{}, ErrInvalidEventDate
}

func blankToNil(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	if t == "" {
		return nil
	}
	return &t
}
