package service

import (
	"context"
	"strings"

	"github.com/lfpcrew/lfp-admin/internal/domain"
	"github.com/lfpcrew/lfp-admin/internal/observability"
	"github.com/lfpcrew/lfp-admin/internal/repository"
)

var ErrCarFieldsRequired = invalid("model, year and member are required")

type CreateCarInput struct {
	Model         string
	Year          string
	Photos        []string
	ContainPhotos []int
	Engine        string
	Power         string
	Modifications string
	Story         string
	MemberID      uint
	Order         *int
}

type UpdateCarInput struct {
	Model         *string
	Year          *string
	Photos        []string
	ContainPhotos []int
	Engine        *string
	Power         *string
	Modifications *string
	Story         *string
	MemberID      *uint
	Order         *int
	IsActive      *bool
}

type CarService struct {
	cars    repository.CarRepository
	members repository.MemberRepository
	audit   *AuditTrail
	catalog CatalogInvalidator
}

func NewCarService(cars repository.CarRepository, members repository.MemberRepository, audit *AuditTrail, catalog CatalogInvalidator) *CarService {
	return &CarService{cars: cars, members: members, audit: audit, catalog: catalog}
}

func (s *CarService) List(ctx context.Context, memberID *uint) ([]domain.Car, error) {
	return s.cars.List(ctx, repository.CarFilter{MemberID: memberID})
}

func (s *CarService) Get(ctx context.Context, id uint) (*domain.Car, error) {
	return s.cars.FindByID(ctx, id)
}

func (s *CarService) Create(ctx context.Context, actor Actor, in CreateCarInput) (car *domain.Car, err error) {
	defer func() { observability.RecordAdminMutation(ctx, "car", "create", outcomeOf(err)) }()

	model := strings.TrimSpace(in.Model)
	year := strings.TrimSpace(in.Year)
	if model == "" || year == "" || in.MemberID == 0 {
		return nil, ErrCarFieldsRequired
	}
	if _, err := s.members.FindByID(ctx, in.MemberID); err != nil {
		return nil, err
	}
	car = &domain.Car{
		Model:         model,
		Year:          year,
		Photos:        domain.StringList(nonNilStrings(in.Photos)),
		ContainPhotos: domain.IntList(nonNilInts(in.ContainPhotos)),
		Engine:        in.Engine,
		Power:         in.Power,
		Modifications: in.Modifications,
		Story:         in.Story,
		MemberID:      in.MemberID,
		IsActive:      true,
	}
	if in.Order != nil {
		car.Order = *in.Order
	}
	if err := s.cars.Create(ctx, car); err != nil {
		return nil, err
	}
	s.audit.Record(ctx, AuditEntry{
		Actor: actor, Action: domain.AuditActionCreate, Entity: domain.AuditEntityCar, EntityID: car.ID,
		Details: map[string]any{"model": model, "memberId": in.MemberID},
	})
	s.catalog.Invalidate(ctx)
	return car, nil
}

func (s *CarService) Update(ctx context.Context, actor Actor, id uint, in UpdateCarInput) (car *domain.Car, err error) {
	defer func() { observability.RecordAdminMutation(ctx, "car", "update", outcomeOf(err)) }()

	updates := map[string]any{}
	setTrimmed(updates, "model", in.Model)
	setTrimmed(updates, "year", in.Year)
	if in.Photos != nil {
		updates["photos"] = domain.StringList(in.Photos)
	}
	if in.ContainPhotos != nil {
		updates["contain_photos"] = domain.IntList(in.ContainPhotos)
	}
	for column, v := range map[string]*string{"engine": in.Engine, "power": in.Power, "modifications": in.Modifications, "story": in.Story} {
		if v != nil {
			updates[column] = *v
		}
	}
	if in.MemberID != nil {
		if _, err := s.members.FindByID(ctx, *in.MemberID); err != nil {
			return nil, err
		}
		updates["member_id"] = *in.MemberID
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
	if err := s.cars.Update(ctx, id, updates); err != nil {
		return nil, err
	}
	s.audit.Record(ctx, AuditEntry{
		Actor: actor, Action: domain.AuditActionUpdate, Entity: domain.AuditEntityCar, EntityID: id,
		Details: updates,
	})
	s.catalog.Invalidate(ctx)
	return s.cars.FindByID(ctx, id)
}

func (s *CarService) Delete(ctx context.Context, actor Actor, id uint) (err error) {
	defer func() { observability.RecordAdminMutation(ctx, "car", "delete", outcomeOf(err)) }()

	car, err := s.cars.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.cars.DeleteByID(ctx, id); err != nil {
		return err
	}
	s.audit.Record(ctx, AuditEntry{
		Actor: actor, Action: domain.AuditActionDelete, Entity: domain.AuditEntityCar, EntityID: id,
		Details: map[string]any{"model": car.Model},
	})
	s.catalog.Invalidate(ctx)
	return nil
}

func nonNilStrings(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}

func nonNilInts(v []int) []int {
	if v == nil {
		return []int{}
	}
	return v
}
