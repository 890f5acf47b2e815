package service

import (
	"context"
	"strings"

	"github.com/lfpcrew/lfp-admin/internal/domain"
	"github.com/lfpcrew/lfp-admin/internal/observability"
	"github.com/lfpcrew/lfp-admin/internal/repository"
)

var ErrMemberFieldsRequired = invalid("name and instagram are required")

type CreateMemberInput struct {
	Name      string
	Instagram string
	Photo     string
	Bio       string
	Order     *int
}

type UpdateMemberInput struct {
	Name      *string
	Instagram *string
	Photo     *string
	Bio       *string
	Order     *int
	IsActive  *bool
}

type MemberService struct {
	members repository.MemberRepository
	audit   *AuditTrail
	catalog CatalogInvalidator
}

func NewMemberService(members repository.MemberRepository, audit *AuditTrail, catalog CatalogInvalidator) *MemberService {
	return &MemberService{members: members, audit: audit, catalog: catalog}
}

func (s *MemberService) List(ctx context.Context) ([]domain.Member, error) {
	return s.members.List(ctx)
}

func (s *MemberService) Get(ctx context.Context, id uint) (*domain.Member, error) {
	return s.members.FindByID(ctx, id)
}

func (s *MemberService) Create(ctx context.Context, actor Actor, in CreateMemberInput) (member *domain.Member, err error) {
	defer func() { observability.RecordAdminMutation(ctx, "member", "create", outcomeOf(err)) }()

	name := strings.TrimSpace(in.Name)
	instagram := strings.TrimSpace(in.Instagram)
	if name == "" || instagram == "" {
		return nil, ErrMemberFieldsRequired
	}
	photo := strings.TrimSpace(in.Photo)
	if photo == "" {
		photo = domain.DefaultMemberPhoto
	}
	var order int
	if in.Order != nil {
		order = *in.Order
	} else if order, err = s.members.NextOrder(ctx); err != nil {
		return nil, err
	}

	member = &domain.Member{Name: name, Instagram: instagram, Photo: photo, Bio: in.Bio, Order: order, IsActive: true}
	if err := s.members.Create(ctx, member); err != nil {
		return nil, err
	}
	s.audit.Record(ctx, AuditEntry{
		Actor: actor, Action: domain.AuditActionCreate, Entity: domain.AuditEntityMember, EntityID: member.ID,
		Details: map[string]any{"name": name},
	})
	s.catalog.Invalidate(ctx)
	return member, nil
}

func (s *MemberService) Update(ctx context.Context, actor Actor, id uint, in UpdateMemberInput) (member *domain.Member, err error) {
	defer func() { observability.RecordAdminMutation(ctx, "member", "update", outcomeOf(err)) }()

	updates := map[string]any{}
	setTrimmed(updates, "name", in.Name)
	setTrimmed(updates, "instagram", in.Instagram)
	setTrimmed(updates, "photo", in.Photo)
	if in.Bio != nil {
		updates["bio"] = *in.Bio
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
	if err := s.members.Update(ctx, id, updates); err != nil {
		return nil, err
	}
	s.audit.Record(ctx, AuditEntry{
		Actor: actor, Action: domain.AuditActionUpdate, Entity: domain.AuditEntityMember, EntityID: id,
		Details: updates,
	})
	s.catalog.Invalidate(ctx)
	return s.members.FindByID(ctx, id)
}

// Delete suspends the member unless permanent is set, in which case the
// member and its cars are removed together.
func (s *MemberService) Delete(ctx context.Context, actor Actor, id uint, permanent bool) (err error) {
	op := "suspend"
	if permanent {
		op = "delete"
	}
	defer func() { observability.RecordAdminMutation(ctx, "member", op, outcomeOf(err)) }()

	member, err := s.members.FindByID(ctx, id)
	if err != nil {
		return err
	}
	entry := AuditEntry{Actor: actor, Entity: domain.AuditEntityMember, EntityID: id}
	if permanent {
		if err := s.members.DeleteWithCars(ctx, id); err != nil {
			return err
		}
		entry.Action = domain.AuditActionDelete
		entry.Details = map[string]any{"name": member.Name, "permanent": true, "cars": len(member.Cars)}
	} else {
		if err := s.members.Update(ctx, id, map[string]any{"is_active": false}); err != nil {
			return err
		}
		entry.Action = domain.AuditActionSuspend
		entry.Details = map[string]any{"name": member.Name}
	}
	s.audit.Record(ctx, entry)
	s.catalog.Invalidate(ctx)
	return nil
}

func (s *MemberService) Reactivate(ctx context.Context, actor Actor, id uint) (member *domain.Member, err error) {
	defer func() { observability.RecordAdminMutation(ctx, "member", "reactivate", outcomeOf(err)) }()

	if err := s.members.Update(ctx, id, map[string]any{"is_active": true}); err != nil {
		return nil, err
	}
	member, err = s.members.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.audit.Record(ctx, AuditEntry{
		Actor: actor, Action: domain.AuditActionReactivate, Entity: domain.AuditEntityMember, EntityID: id,
		Details: map[string]any{"name": member.Name},
	})
	s.catalog.Invalidate(ctx)
	return member, nil
}

// setTrimmed copies a non-blank value into updates. Blank strings mean
// "keep the current value" for required text fields.
func setTrimmed(updates map[string]any, column string, v *string) {
	if v == nil {
		return
	}
	if t := strings.TrimSpace(*v); t != "" {
		updates[column] = t
	}
}
