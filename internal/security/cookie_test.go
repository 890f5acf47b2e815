package security

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNewCookieManagerPolicy(t *testing.T) {
	cases := []struct {
		sameSite   string
		secure     bool
		wantMode   http.SameSite
		wantSecure bool
	}{
		{"strict", false, http.SameSiteStrictMode, false},
		{" LAX ", true, http.SameSiteLaxMode, true},
		{"none", false, http.SameSiteNoneMode, true},
		{"bogus", false, http.SameSiteLaxMode, false},
	}
	for _, tc := range cases {
		m := NewCookieManager("", tc.secure, tc.sameSite)
		if m.SameSite != tc.wantMode || m.Secure != tc.wantSecure {
			t.Fatalf("%q/secure=%v: got mode=%v secure=%v", tc.sameSite, tc.secure, m.SameSite, m.Secure)
		}
	}
}

func cookiesByName(rr *httptest.ResponseRecorder) map[string]*http.Cookie {
	out := map[string]*http.Cookie{}
	for _, c := range rr.Result().Cookies() {
		out[c.Name] = c
	}
	return out
}

func TestSessionCookiesShareLifetimeButNotVisibility(t *testing.T) {
	rr := httptest.NewRecorder()
	NewCookieManager("admin.lfp.example", true, "strict").SetSessionCookies(rr, "jwt", "csrf", 8*time.Hour)

	got := cookiesByName(rr)
	session, csrf := got[AccessTokenCookie], got[CSRFTokenCookie]
	if session == nil || csrf == nil {
		t.Fatalf("expected both session cookies, got %v", got)
	}
	if !session.HttpOnly || csrf.HttpOnly {
		t.Fatal("session cookie must be HttpOnly and the csrf cookie script readable")
	}
	for _, c := range []*http.Cookie{session, csrf} {
		if c.MaxAge != 8*3600 || c.Path != "/" || c.Domain != "admin.lfp.example" || !c.Secure {
			t.Fatalf("unexpected cookie attributes: %#v", c)
		}
	}
}

func TestClearSessionCookiesExpiresBoth(t *testing.T) {
	rr := httptest.NewRecorder()
	NewCookieManager("", false, "lax").ClearSessionCookies(rr)

	got := cookiesByName(rr)
	if len(got) != 2 {
		t.Fatalf("expected 2 cleared cookies, got %d", len(got))
	}
	for name, c := range got {
		if c.MaxAge >= 0 || c.Value != "" {
			t.Fatalf("cookie %q not cleared: value=%q max_age=%d", name, c.Value, c.MaxAge)
		}
	}
}

func TestGetCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.AddCookie(&http.Cookie{Name: CSRFTokenCookie, Value: "x"})

	if got := GetCookie(req, CSRFTokenCookie); got != "x" {
		t.Fatalf("unexpected cookie value %q", got)
	}
	if got := GetCookie(req, AccessTokenCookie); got != "" {
		t.Fatalf("expected empty value for a missing cookie, got %q", got)
	}
}
