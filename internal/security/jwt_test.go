package security

import (
	"errors"
	"testing"
	"time"
)

func TestJWTManagerRoundTripKeepsPermissionSnapshot(t *testing.T) {
	mgr := NewJWTManager("lfp-admin", "lfp-admin-ui", "0123456789abcdef0123456789abcdef")
	memberID := uint(7)
	perms := []string{"MEMBERS_VIEW", "CARS_VIEW"}
	token, err := mgr.SignAccessToken(SessionSubject{
		UserID:      42,
		Name:        "Jane",
		Email:       "jane@x.com",
		Role:        "editor",
		Permissions: perms,
		MemberID:    &memberID,
	}, time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	perms[0] = "USERS_DELETE"

	claims, err := mgr.ParseAccessToken(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	id, err := claims.UserID()
	if err != nil || id != 42 {
		t.Fatalf("unexpected subject id=%d err=%v", id, err)
	}
	if claims.Role != "editor" || len(claims.Permissions) != 2 || claims.Permissions[0] != "MEMBERS_VIEW" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.MemberID == nil || *claims.MemberID != 7 {
		t.Fatalf("unexpected member id: %v", claims.MemberID)
	}
}

func TestJWTManagerRejectsExpiredAndForeignTokens(t *testing.T) {
	mgr := NewJWTManager("lfp-admin", "lfp-admin-ui", "0123456789abcdef0123456789abcdef")
	issuedAt := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	mgr.now = func() time.Time { return issuedAt }
	token, err := mgr.SignAccessToken(SessionSubject{UserID: 1, Role: "viewer"}, time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	mgr.now = func() time.Time { return issuedAt.Add(2 * time.Hour) }
	if _, err := mgr.ParseAccessToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected expired token rejection, got %v", err)
	}

	other := NewJWTManager("lfp-admin", "lfp-admin-ui", "ffffffffffffffffffffffffffffffff")
	other.now = func() time.Time { return issuedAt }
	if _, err := other.ParseAccessToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected signature rejection, got %v", err)
	}
}
