package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/lfpcrew/lfp-admin/internal/domain"
	"github.com/lfpcrew/lfp-admin/internal/observability"
	"github.com/lfpcrew/lfp-admin/internal/repository"
)

var (
	ErrRoleFieldsRequired = invalid("name and permissions are required")
	ErrRoleNameTaken      = invalid("role name already exists")
)

type CreateRoleInput struct {
	Name        string
	Description string
	Permissions []string
}

// UpdateRoleInput leaves a field unchanged when it is nil.
type UpdateRoleInput struct {
	Name        *string
	Description *string
	Permissions []string
}

type RoleService struct {
	roles repository.RoleRepository
}

func NewRoleService(roles repository.RoleRepository) *RoleService {
	return &RoleService{roles: roles}
}

func (s *RoleService) List(ctx context.Context) ([]domain.Role, error) {
	return s.roles.List(ctx)
}

func (s *RoleService) Get(ctx context.Context, id uint) (*domain.Role, error) {
	return s.roles.FindByID(ctx, id)
}

func (s *RoleService) PermissionCatalog() []domain.PermissionGroup {
	return domain.PermissionGroups()
}

func (s *RoleService) Create(ctx context.Context, in CreateRoleInput) (role *domain.Role, err error) {
	defer func() { observability.RecordAdminMutation(ctx, "role", "create", outcomeOf(err)) }()

	name := strings.TrimSpace(in.Name)
	if name == "" || len(in.Permissions) == 0 {
		return nil, ErrRoleFieldsRequired
	}
	perms, err := normalizePermissions(in.Permissions)
	if err != nil {
		return nil, err
	}
	if err := s.ensureNameFree(ctx, name); err != nil {
		return nil, err
	}
	role = &domain.Role{Name: name, Description: strings.TrimSpace(in.Description), Permissions: perms}
	if err := s.roles.Create(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}

func (s *RoleService) Update(ctx context.Context, id uint, in UpdateRoleInput) (role *domain.Role, err error) {
	defer func() { observability.RecordAdminMutation(ctx, "role", "update", outcomeOf(err)) }()

	existing, err := s.roles.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := EnsureRoleEditable(existing, in.Name); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, invalid("name must not be empty")
		}
		if name != existing.Name {
			if err := s.ensureNameFree(ctx, name); err != nil {
				return nil, err
			}
			updates["name"] = name
		}
	}
	if in.Description != nil {
		updates["description"] = strings.TrimSpace(*in.Description)
	}
	if in.Permissions != nil {
		if len(in.Permissions) == 0 {
			return nil, invalid("a role needs at least one permission")
		}
		perms, err := normalizePermissions(in.Permissions)
		if err != nil {
			return nil, err
		}
		updates["permissions"] = perms
	}
	if len(updates) == 0 {
		return existing, nil
	}
	if err := s.roles.Update(ctx, id, updates); err != nil {
		return nil, err
	}
	return s.roles.FindByID(ctx, id)
}

func (s *RoleService) Delete(ctx context.Context, id uint) (err error) {
	defer func() { observability.RecordAdminMutation(ctx, "role", "delete", outcomeOf(err)) }()

	role, err := s.roles.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := EnsureRoleDeletable(role, role.UserCount); err != nil {
		return err
	}
	if err := s.roles.DeleteUnassigned(ctx, id); err != nil {
		if errors.Is(err, repository.ErrRoleInUse) {
			count, cerr := s.roles.CountUsers(ctx, id)
			if cerr != nil {
				return cerr
			}
			return &RoleInUseError{Role: role.Name, Count: count}
		}
		return err
	}
	return nil
}

func (s *RoleService) ensureNameFree(ctx context.Context, name string) error {
	_, err := s.roles.FindByName(ctx, name)
	switch {
	case err == nil:
		return ErrRoleNameTaken
	case errors.Is(err, repository.ErrRoleNotFound):
		return nil
	default:
		return err
	}
}

// normalizePermissions rejects unknown tags and drops duplicates, keeping
// the caller's order.
func normalizePermissions(in []string) (domain.StringList, error) {
	seen := make(map[string]struct{}, len(in))
	out := make(domain.StringList, 0, len(in))
	for _, p := range in {
		if !domain.IsKnownPermission(p) {
			return nil, invalid(fmt.Sprintf("unknown permission %q", p))
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out, nil
}
