package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/lfpcrew/lfp-admin/internal/domain"
	"github.com/lfpcrew/lfp-admin/internal/observability"
	"github.com/lfpcrew/lfp-admin/internal/repository"
	"github.com/lfpcrew/lfp-admin/internal/security"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account disabled")
	ErrLoginFieldsMissing = invalid("email and password are required")
)

// LoginThrottledError is returned while the login guard holds a cooldown
// for the email or the client address.
type LoginThrottledError struct {
	RetryAfter time.Duration
}

func (e *LoginThrottledError) Error() string {
	return fmt.Sprintf("too many failed attempts, retry in %s", e.RetryAfter.Round(time.Second))
}

type LoginResult struct {
	User        domain.UserSummary `json:"user"`
	Permissions []string           `json:"permissions"`
	ExpiresAt   time.Time          `json:"expiresAt"`
	Tokens      SessionTokens      `json:"-"`
}

type AuthService struct {
	users  repository.UserRepository
	tokens *TokenService
	guard  LoginGuard
	audit  *AuditTrail
	logger *slog.Logger
	now    func() time.Time
}

func NewAuthService(users repository.UserRepository, tokens *TokenService, guard LoginGuard, audit *AuditTrail, logger *slog.Logger) *AuthService {
	if guard == nil {
		guard = NoopLoginGuard{}
	}
	return &AuthService{users: users, tokens: tokens, guard: guard, audit: audit, logger: logger, now: time.Now}
}

// Login checks the credential and signs a session carrying the role's
// current permissions. Unknown, pending and mismatched accounts are
// indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string, client Actor) (result *LoginResult, err error) {
	defer func() { observability.RecordAuthLogin(ctx, loginOutcome(err)) }()

	email = repository.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrLoginFieldsMissing
	}
	if wait, gerr := s.guard.Cooldown(ctx, email, client.IP); gerr != nil {
		s.logger.WarnContext(ctx, "login guard unavailable", "error", gerr)
	} else if wait > 0 {
		return nil, &LoginThrottledError{RetryAfter: wait}
	}

	user, err := s.users.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, repository.ErrUserNotFound):
		security.BurnPasswordCompare(password)
		return nil, s.failed(ctx, email, client.IP)
	case err != nil:
		return nil, err
	case user.IsPending():
		security.BurnPasswordCompare(password)
		return nil, s.failed(ctx, email, client.IP)
	}

	ok, err := security.VerifyPassword(*user.PasswordHash, password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, s.failed(ctx, email, client.IP)
	}
	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	if err := s.guard.Clear(ctx, email, client.IP); err != nil {
		s.logger.WarnContext(ctx, "login guard clear failed", "error", err)
	}
	now := s.now()
	if err := s.users.TouchLastLogin(ctx, user.ID, now); err != nil {
		return nil, err
	}
	user.LastLogin = &now

	tokens, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	client.UserID = user.ID
	s.audit.Record(ctx, AuditEntry{
		Actor: client, Action: domain.AuditActionLogin, Entity: domain.AuditEntityUser, EntityID: user.ID,
	})
	return &LoginResult{
		User:        user.Summary(),
		Permissions: append([]string{}, user.Role.Permissions...),
		ExpiresAt:   tokens.ExpiresAt,
		Tokens:      tokens,
	}, nil
}

func (s *AuthService) Logout(ctx context.Context, actor Actor) {
	observability.RecordAuthLogout(ctx, "success")
	s.audit.Record(ctx, AuditEntry{
		Actor: actor, Action: domain.AuditActionLogout, Entity: domain.AuditEntityUser, EntityID: actor.UserID,
	})
}

// ParseSession validates a session token without touching the database.
func (s *AuthService) ParseSession(raw string) (*security.Claims, error) {
	return s.tokens.Parse(raw)
}

func (s *AuthService) SessionTTL() time.Duration { return s.tokens.TTL() }

func (s *AuthService) failed(ctx context.Context, email, ip string) error {
	if _, err := s.guard.RecordFailure(ctx, email, ip); err != nil {
		s.logger.WarnContext(ctx, "login guard unavailable", "error", err)
	}
	return ErrInvalidCredentials
}

func loginOutcome(err error) string {
	var throttled *LoginThrottledError
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, ErrAccountDisabled):
		return "disabled"
	case errors.As(err, &throttled):
		return "throttled"
	case IsValidation(err):
		return "bad_request"
	default:
		return "error"
	}
}
