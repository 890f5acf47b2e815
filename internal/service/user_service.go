package service

import (
	"context"
	"net/mail"
	"strings"

	"github.com/lfpcrew/lfp-admin/internal/domain"
	"github.com/lfpcrew/lfp-admin/internal/observability"
	"github.com/lfpcrew/lfp-admin/internal/repository"
)

var (
	ErrUserFieldsRequired = invalid("name, email and role are required")
	ErrInvalidEmail       = invalid("invalid email address")
	ErrEmailTaken         = invalid("email is already in use")
	ErrNoUpdates          = invalid("no updates provided")
)

type CreateUserInput struct {
	Name     string
	Email    string
	RoleID   uint
	MemberID *uint
}

// UpdateUserInput is a partial update. SetMember distinguishes an explicit
// unlink (MemberID nil) from an absent field.
type UpdateUserInput struct {
	Name          *string
	Email         *string
	RoleID        *uint
	MemberID      *uint
	SetMember     bool
	IsActive      *bool
	ResendInvite  bool
	ResetPassword bool
}

type UserMutationResult struct {
	User      *domain.UserSummary
	EmailSent *bool
}

type UserService struct {
	users       repository.UserRepository
	roles       repository.RoleRepository
	members     repository.MemberRepository
	credentials *CredentialService
	audit       *AuditTrail
}

func NewUserService(users repository.UserRepository, roles repository.RoleRepository, members repository.MemberRepository, credentials *CredentialService, audit *AuditTrail) *UserService {
	return &UserService{users: users, roles: roles, members: members, credentials: credentials, audit: audit}
}

func (s *UserService) List(ctx context.Context) ([]domain.UserSummary, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.UserSummary, 0, len(users))
	for _, u := range users {
		out = append(out, u.Summary())
	}
	return out, nil
}

func (s *UserService) Get(ctx context.Context, id uint) (*domain.UserSummary, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	summary := u.Summary()
	return &summary, nil
}

// Create stores a pending account and sends its invitation. The account has
// no credential until the invitation token is consumed.
func (s *UserService) Create(ctx context.Context, actor Actor, in CreateUserInput) (result UserMutationResult, err error) {
	defer func() { observability.RecordAdminMutation(ctx, "user", "create", outcomeOf(err)) }()

	name := strings.TrimSpace(in.Name)
	email := repository.NormalizeEmail(in.Email)
	if name == "" || email == "" || in.RoleID == 0 {
		return result, ErrUserFieldsRequired
	}
	if _, perr := mail.ParseAddress(email); perr != nil {
		return result, ErrInvalidEmail
	}
	taken, err := s.users.EmailTaken(ctx, email, 0)
	if err != nil {
		return result, err
	}
	if taken {
		return result, ErrEmailTaken
	}
	if _, err := s.roles.FindByID(ctx, in.RoleID); err != nil {
		return result, err
	}
	if in.MemberID != nil {
		if _, err := s.members.FindByID(ctx, *in.MemberID); err != nil {
			return result, err
		}
	}

	user := &domain.User{Name: name, Email: email, RoleID: in.RoleID, MemberID: in.MemberID, IsActive: true}
	if err := s.users.Create(ctx, user); err != nil {
		return result, err
	}
	issued, err := s.credentials.IssueInvitation(ctx, user)
	if err != nil {
		return result, err
	}

	s.audit.Record(ctx, AuditEntry{
		Actor:    actor,
		Action:   domain.AuditActionCreate,
		Entity:   domain.AuditEntityUser,
		EntityID: user.ID,
		Details:  map[string]any{"name": name, "email": email},
	})

	summary, err := s.Get(ctx, user.ID)
	if err != nil {
		return result, err
	}
	return UserMutationResult{User: summary, EmailSent: &issued.EmailSent}, nil
}

func (s *UserService) Update(ctx context.Context, actor Actor, id uint, in UpdateUserInput) (result UserMutationResult, err error) {
	action := "update"
	defer func() { observability.RecordAdminMutation(ctx, "user", action, outcomeOf(err)) }()

	existing, err := s.users.FindByID(ctx, id)
	if err != nil {
		return result, err
	}

	switch {
	case in.ResendInvite:
		action = "resend_invite"
		issued, err := s.credentials.IssueInvitation(ctx, existing)
		if err != nil {
			return result, err
		}
		s.audit.Record(ctx, AuditEntry{
			Actor: actor, Action: domain.AuditActionUpdate, Entity: domain.AuditEntityUser, EntityID: id,
			Details: map[string]any{"action": "invitation_resent", "email": existing.Email},
		})
		return UserMutationResult{EmailSent: &issued.EmailSent}, nil
	case in.ResetPassword:
		action = "reset_password"
		issued, err := s.credentials.IssueReset(ctx, existing)
		if err != nil {
			return result, err
		}
		s.audit.Record(ctx, AuditEntry{
			Actor: actor, Action: domain.AuditActionUpdate, Entity: domain.AuditEntityUser, EntityID: id,
			Details: map[string]any{"action": "password_reset", "email": existing.Email},
		})
		return UserMutationResult{EmailSent: &issued.EmailSent}, nil
	}

	updates := map[string]any{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return result, invalid("name must not be empty")
		}
		updates["name"] = name
	}
	if in.Email != nil {
		email := repository.NormalizeEmail(*in.Email)
		if _, perr := mail.ParseAddress(email); perr != nil {
			return result, ErrInvalidEmail
		}
		if email != existing.Email {
			taken, err := s.users.EmailTaken(ctx, email, id)
			if err != nil {
				return result, err
			}
			if taken {
				return result, ErrEmailTaken
			}
		}
		updates["email"] = email
	}
	if in.RoleID != nil {
		if _, err := s.roles.FindByID(ctx, *in.RoleID); err != nil {
			return result, err
		}
		updates["role_id"] = *in.RoleID
	}
	if in.SetMember {
		if in.MemberID != nil {
			if _, err := s.members.FindByID(ctx, *in.MemberID); err != nil {
				return result, err
			}
			updates["member_id"] = *in.MemberID
		} else {
			updates["member_id"] = nil
		}
	}
	if in.IsActive != nil {
		updates["is_active"] = *in.IsActive
	}
	if len(updates) == 0 {
		return result, ErrNoUpdates
	}

	if err := s.users.Update(ctx, id, updates); err != nil {
		return result, err
	}

	auditAction := domain.AuditActionUpdate
	if in.IsActive != nil && *in.IsActive != existing.IsActive {
		if *in.IsActive {
			auditAction = domain.AuditActionReactivate
		} else {
			auditAction = domain.AuditActionSuspend
		}
	}
	s.audit.Record(ctx, AuditEntry{
		Actor: actor, Action: auditAction, Entity: domain.AuditEntityUser, EntityID: id,
		Details: updates,
	})

	summary, err := s.Get(ctx, id)
	if err != nil {
		return result, err
	}
	return UserMutationResult{User: summary}, nil
}

// Delete refuses self-deletion before touching storage.
func (s *UserService) Delete(ctx context.Context, actor Actor, id uint) (err error) {
	defer func() { observability.RecordAdminMutation(ctx, "user", "delete", outcomeOf(err)) }()

	if err := EnsureNotSelf(actor.UserID, id); err != nil {
		return err
	}
	existing, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.users.DeleteByID(ctx, id); err != nil {
		return err
	}
	s.audit.Record(ctx, AuditEntry{
		Actor: actor, Action: domain.AuditActionDelete, Entity: domain.AuditEntityUser, EntityID: id,
		Details: map[string]any{"email": existing.Email},
	})
	return nil
}
