package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lfpcrew/lfp-admin/internal/domain"
	"github.com/lfpcrew/lfp-admin/internal/observability"
	"github.com/lfpcrew/lfp-admin/internal/repository"
	"github.com/lfpcrew/lfp-admin/internal/security"
)

const (
	InvitationTokenTTL = 24 * time.Hour
	ResetTokenTTL      = time.Hour
)

var (
	ErrCredentialAlreadySet = errors.New("user already has a password")
	ErrCredentialNotSet     = errors.New("user has not set a password yet")
	ErrInvalidSetupToken    = errors.New("invalid or expired link")
	ErrSetupFieldsRequired  = errors.New("token, password and confirmation are required")
	ErrPasswordMismatch     = errors.New("passwords do not match")
	ErrPasswordTooShort     = fmt.Errorf("password must be at least %d characters", security.MinPasswordLength)
	ErrPasswordTooLong      = security.ErrPasswordTooLong
)

type IssuedToken struct {
	Token     string
	ExpiresAt time.Time
	EmailSent bool
}

// TokenSubject is the non-sensitive identity revealed by a valid token.
type TokenSubject struct {
	UserID uint   `json:"-"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

// CredentialService issues and redeems single-use setup tokens. One token
// slot per user serves both invitations and resets; issuing overwrites it.
type CredentialService struct {
	users    repository.UserRepository
	mailer   EmailSender
	now      func() time.Time
	newToken func() (string, error)
}

func NewCredentialService(users repository.UserRepository, mailer EmailSender) *CredentialService {
	return &CredentialService{
		users:    users,
		mailer:   mailer,
		now:      time.Now,
		newToken: security.NewSetupToken,
	}
}

func (s *CredentialService) IssueInvitation(ctx context.Context, user *domain.User) (IssuedToken, error) {
	if !user.IsPending() {
		observability.RecordCredentialTokenEvent(ctx, "issue_invitation", "rejected", 1)
		return IssuedToken{}, ErrCredentialAlreadySet
	}
	return s.issue(ctx, user, EmailInvitation, InvitationTokenTTL)
}

func (s *CredentialService) IssueReset(ctx context.Context, user *domain.User) (IssuedToken, error) {
	if user.IsPending() {
		observability.RecordCredentialTokenEvent(ctx, "issue_reset", "rejected", 1)
		return IssuedToken{}, ErrCredentialNotSet
	}
	return s.issue(ctx, user, EmailPasswordReset, ResetTokenTTL)
}

func (s *CredentialService) issue(ctx context.Context, user *domain.User, kind EmailKind, ttl time.Duration) (IssuedToken, error) {
	action := "issue_" + string(kind)
	token, err := s.newToken()
	if err != nil {
		observability.RecordCredentialTokenEvent(ctx, action, "error", 1)
		return IssuedToken{}, fmt.Errorf("generate setup token: %w", err)
	}
	expiresAt := s.now().UTC().Add(ttl)
	if err := s.users.SetSetupToken(ctx, user.ID, token, expiresAt); err != nil {
		observability.RecordCredentialTokenEvent(ctx, action, "error", 1)
		return IssuedToken{}, err
	}
	observability.RecordCredentialTokenEvent(ctx, action, "success", 1)

	// A failed delivery keeps the token; an admin can resend.
	sent := s.mailer.Send(ctx, kind, user.Email, user.Name, token)
	return IssuedToken{Token: token, ExpiresAt: expiresAt, EmailSent: sent}, nil
}

// VerifyToken never tells an expired token from an unknown one.
func (s *CredentialService) VerifyToken(ctx context.Context, token string) (TokenSubject, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		observability.RecordCredentialTokenEvent(ctx, "verify", "invalid", 1)
		return TokenSubject{}, ErrInvalidSetupToken
	}
	user, err := s.users.FindBySetupToken(ctx, token, s.now().UTC())
	if err != nil {
		if errors.Is(err, repository.ErrSetupTokenNotFound) || errors.Is(err, repository.ErrUserNotFound) {
			observability.RecordCredentialTokenEvent(ctx, "verify", "invalid", 1)
			return TokenSubject{}, ErrInvalidSetupToken
		}
		observability.RecordCredentialTokenEvent(ctx, "verify", "error", 1)
		return TokenSubject{}, err
	}
	observability.RecordCredentialTokenEvent(ctx, "verify", "valid", 1)
	return TokenSubject{UserID: user.ID, Name: user.Name, Email: user.Email}, nil
}

// ConsumeToken sets the password and burns the token in one conditional
// write. Validation failures leave the stored state untouched.
func (s *CredentialService) ConsumeToken(ctx context.Context, token, password, confirm string) error {
	token = strings.TrimSpace(token)
	switch {
	case token == "" || password == "" || confirm == "":
		observability.RecordCredentialTokenEvent(ctx, "consume", "bad_request", 1)
		return ErrSetupFieldsRequired
	case password != confirm:
		observability.RecordCredentialTokenEvent(ctx, "consume", "bad_request", 1)
		return ErrPasswordMismatch
	case len(password) < security.MinPasswordLength:
		observability.RecordCredentialTokenEvent(ctx, "consume", "bad_request", 1)
		return ErrPasswordTooShort
	case len(password) > security.MaxPasswordLength:
		observability.RecordCredentialTokenEvent(ctx, "consume", "bad_request", 1)
		return ErrPasswordTooLong
	}

	now := s.now().UTC()
	if _, err := s.users.FindBySetupToken(ctx, token, now); err != nil {
		if errors.Is(err, repository.ErrSetupTokenNotFound) || errors.Is(err, repository.ErrUserNotFound) {
			observability.RecordCredentialTokenEvent(ctx, "consume", "invalid", 1)
			return ErrInvalidSetupToken
		}
		observability.RecordCredentialTokenEvent(ctx, "consume", "error", 1)
		return err
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		observability.RecordCredentialTokenEvent(ctx, "consume", "error", 1)
		return err
	}
	if err := s.users.ConsumeSetupToken(ctx, token, now, hash); err != nil {
		if errors.Is(err, repository.ErrSetupTokenNotFound) {
			observability.RecordCredentialTokenEvent(ctx, "consume", "invalid", 1)
			return ErrInvalidSetupToken
		}
		observability.RecordCredentialTokenEvent(ctx, "consume", "error", 1)
		return err
	}
	observability.RecordCredentialTokenEvent(ctx, "consume", "success", 1)
	return nil
}

// SweepExpired clears tokens whose expiry has passed. Live tokens are left
// alone, so sweeping never changes what VerifyToken answers.
func (s *CredentialService) SweepExpired(ctx context.Context) (int64, error) {
	n, err := s.users.ClearExpiredSetupTokens(ctx, s.now().UTC())
	if err != nil {
		observability.RecordCredentialTokenEvent(ctx, "sweep", "error", 1)
		return 0, err
	}
	observability.RecordCredentialTokenEvent(ctx, "sweep", "success", n)
	return n, nil
}
