package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/lfpcrew/lfp-admin/internal/domain"
	"github.com/lfpcrew/lfp-admin/internal/observability"
	"github.com/lfpcrew/lfp-admin/internal/security"
)

var (
	ErrAuthenticationRequired = errors.New("authentication required")
	ErrPermissionDenied       = errors.New("insufficient permission")
	ErrProtectedRole          = errors.New("protected role")
	ErrSelfDelete             = errors.New("you cannot delete your own account")
)

// RoleInUseError refuses a role deletion while users still hold the role.
type RoleInUseError struct {
	Role  string
	Count int64
}

func (e *RoleInUseError) Error() string {
	return fmt.Sprintf("role %q is used by %d user(s)", e.Role, e.Count)
}

// AccessControl answers permission questions from the snapshot carried by a
// session. It never consults the database, so a role edit only reaches a
// user on their next login.
type AccessControl struct{}

func NewAccessControl() *AccessControl { return &AccessControl{} }

func (a *AccessControl) ResolvePermissions(claims *security.Claims) []string {
	if claims == nil {
		return nil
	}
	return claims.Permissions
}

func (a *AccessControl) HasPermission(permissions []string, required string) bool {
	return slices.Contains(permissions, required)
}

func (a *AccessControl) Authorize(ctx context.Context, claims *security.Claims, required domain.Permission) error {
	if claims == nil {
		observability.RecordRBACAuthorization(ctx, string(required), "unauthenticated")
		return ErrAuthenticationRequired
	}
	if required == "" {
		return nil
	}
	if !a.HasPermission(a.ResolvePermissions(claims), string(required)) {
		observability.RecordRBACAuthorization(ctx, string(required), "denied")
		return ErrPermissionDenied
	}
	observability.RecordRBACAuthorization(ctx, string(required), "allowed")
	return nil
}

func (a *AccessControl) AuthorizeRoleManagement(ctx context.Context, claims *security.Claims) error {
	if claims == nil {
		observability.RecordRBACAuthorization(ctx, "ROLE_MANAGEMENT", "unauthenticated")
		return ErrAuthenticationRequired
	}
	if claims.Role != domain.RoleSuperAdmin {
		observability.RecordRBACAuthorization(ctx, "ROLE_MANAGEMENT", "denied")
		return ErrPermissionDenied
	}
	observability.RecordRBACAuthorization(ctx, "ROLE_MANAGEMENT", "allowed")
	return nil
}

func EnsureRoleDeletable(role *domain.Role, userCount int64) error {
	if domain.IsProtectedRole(role.Name) {
		return fmt.Errorf("%w: system roles cannot be deleted", ErrProtectedRole)
	}
	if userCount > 0 {
		return &RoleInUseError{Role: role.Name, Count: userCount}
	}
	return nil
}

// EnsureRoleEditable rejects any change to super_admin and renames of the
// other system roles. Their permission sets stay editable.
func EnsureRoleEditable(role *domain.Role, newName *string) error {
	if role.Name == domain.RoleSuperAdmin {
		return fmt.Errorf("%w: the super_admin role cannot be modified", ErrProtectedRole)
	}
	if newName != nil && domain.IsProtectedRole(role.Name) && strings.TrimSpace(*newName) != role.Name {
		return fmt.Errorf("%w: system roles cannot be renamed", ErrProtectedRole)
	}
	return nil
}

func EnsureNotSelf(actorID, targetID uint) error {
	if actorID != 0 && actorID == targetID {
		return ErrSelfDelete
	}
	return nil
}
