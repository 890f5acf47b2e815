package service

import (
	"context"
	"time"

	"github.com/lfpcrew/lfp-admin/internal/domain"
	"github.com/lfpcrew/lfp-admin/internal/repository"
	"github.com/lfpcrew/lfp-admin/internal/security"
)

// Authenticator is the session surface used by the auth handler and the
// session middleware.
type Authenticator interface {
	Login(ctx context.Context, email, password string, client Actor) (*LoginResult, error)
	Logout(ctx context.Context, actor Actor)
	ParseSession(raw string) (*security.Claims, error)
	SessionTTL() time.Duration
}

type Authorizer interface {
	Authorize(ctx context.Context, claims *security.Claims, required domain.Permission) error
	AuthorizeRoleManagement(ctx context.Context, claims *security.Claims) error
}

type CredentialLifecycle interface {
	VerifyToken(ctx context.Context, token string) (TokenSubject, error)
	ConsumeToken(ctx context.Context, token, password, confirm string) error
}

type UserAdmin interface {
	List(ctx context.Context) ([]domain.UserSummary, error)
	Get(ctx context.Context, id uint) (*domain.UserSummary, error)
	Create(ctx context.Context, actor Actor, in CreateUserInput) (UserMutationResult, error)
	Update(ctx context.Context, actor Actor, id uint, in UpdateUserInput) (UserMutationResult, error)
	Delete(ctx context.Context, actor Actor, id uint) error
}

type RoleAdmin interface {
	List(ctx context.Context) ([]domain.Role, error)
	Get(ctx context.Context, id uint) (*domain.Role, error)
	PermissionCatalog() []domain.PermissionGroup
	Create(ctx context.Context, in CreateRoleInput) (*domain.Role, error)
	Update(ctx context.Context, id uint, in UpdateRoleInput) (*domain.Role, error)
	Delete(ctx context.Context, id uint) error
}

type MemberAdmin interface {
	List(ctx context.Context) ([]domain.Member, error)
	Get(ctx context.Context, id uint) (*domain.Member, error)
	Create(ctx context.Context, actor Actor, in CreateMemberInput) (*domain.Member, error)
	Update(ctx context.Context, actor Actor, id uint, in UpdateMemberInput) (*domain.Member, error)
	Delete(ctx context.Context, actor Actor, id uint, permanent bool) error
	Reactivate(ctx context.Context, actor Actor, id uint) (*domain.Member, error)
}

type CarAdmin interface {
	List(ctx context.Context, memberID *uint) ([]domain.Car, error)
	Get(ctx context.Context, id uint) (*domain.Car, error)
	Create(ctx context.Context, actor Actor, in CreateCarInput) (*domain.Car, error)
	Update(ctx context.Context, actor Actor, id uint, in UpdateCarInput) (*domain.Car, error)
	Delete(ctx context.Context, actor Actor, id uint) error
}

type EventAdmin interface {
	List(ctx context.Context) ([]domain.Event, error)
	Get(ctx context.Context, id uint) (*domain.Event, error)
	Create(ctx context.Context, actor Actor, in CreateEventInput) (*domain.Event, error)
	Update(ctx context.Context, actor Actor, id uint, in UpdateEventInput) (*domain.Event, error)
	Delete(ctx context.Context, actor Actor, id uint) error
}

type StatsReader interface {
	Dashboard(ctx context.Context) (DashboardStats, error)
}

type AuditReader interface {
	List(ctx context.Context, req repository.PageRequest) (repository.PageResult[domain.AuditLogView], error)
}

type PublicCatalog interface {
	Members(ctx context.Context) ([]PublicMember, error)
	Cars(ctx context.Context) ([]PublicCar, error)
	Events(ctx context.Context) ([]PublicEvent, error)
}

var (
	_ Authenticator       = (*AuthService)(nil)
	_ Authorizer          = (*AccessControl)(nil)
	_ CredentialLifecycle = (*CredentialService)(nil)
	_ UserAdmin           = (*UserService)(nil)
	_ RoleAdmin           = (*RoleService)(nil)
	_ MemberAdmin         = (*MemberService)(nil)
	_ CarAdmin            = (*CarService)(nil)
	_ EventAdmin          = (*EventService)(nil)
	_ StatsReader         = (*StatsService)(nil)
	_ AuditReader         = (*AuditTrail)(nil)
	_ PublicCatalog       = (*PublicCatalogService)(nil)
	_ CatalogInvalidator  = (*PublicCatalogService)(nil)
	_ PhotoStorage        = (*MinIOPhotoStorage)(nil)
	_ PhotoStorage        = DisabledPhotoStorage{}
	_ LoginGuard          = (*MemoryLoginGuard)(nil)
	_ LoginGuard          = (*RedisLoginGuard)(nil)
	_ CatalogCacheStore   = (*RedisCatalogCacheStore)(nil)
	_ CatalogCacheStore   = (*LRUCatalogCacheStore)(nil)
	_ EmailSender         = (*SMTPEmailSender)(nil)
	_ EmailSender         = (*LogEmailSender)(nil)
)
