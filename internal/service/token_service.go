package service

import (
	"time"

	"github.com/lfpcrew/lfp-admin/internal/domain"
	"github.com/lfpcrew/lfp-admin/internal/security"
)

type SessionTokens struct {
	AccessToken string
	CSRFToken   string
	ExpiresAt   time.Time
}

// TokenService signs session tokens. The role's permission list is copied
// into the token at signing time and is not re-read while it lives.
type TokenService struct {
	jwt *security.JWTManager
	ttl time.Duration
	now func() time.Time
}

func NewTokenService(jwt *security.JWTManager, ttl time.Duration) *TokenService {
	return &TokenService{jwt: jwt, ttl: ttl, now: time.Now}
}

func (s *TokenService) TTL() time.Duration { return s.ttl }

func (s *TokenService) Issue(user *domain.User) (SessionTokens, error) {
	access, err := s.jwt.SignAccessToken(security.SessionSubject{
		UserID:      user.ID,
		Name:        user.Name,
		Email:       user.Email,
		Role:        user.Role.Name,
		Permissions: []string(user.Role.Permissions),
		MemberID:    user.MemberID,
	}, s.ttl)
	if err != nil {
		return SessionTokens{}, err
	}
	csrf, err := security.NewRandomString(32)
	if err != nil {
		return SessionTokens{}, err
	}
	return SessionTokens{AccessToken: access, CSRFToken: csrf, ExpiresAt: s.now().Add(s.ttl)}, nil
}

func (s *TokenService) Parse(raw string) (*security.Claims, error) {
	return s.jwt.ParseAccessToken(raw)
}
