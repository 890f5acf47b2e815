package security

import (
	"net/http"
	"strings"
	"time"
)

const (
	AccessTokenCookie = "access_token"
	CSRFTokenCookie   = "csrf_token"
)

type CookieManager struct {
	Domain   string
	Secure   bool
	SameSite http.SameSite
}

// NewCookieManager maps the configured SameSite policy, defaulting to lax.
// Browsers drop SameSite=None cookies that are not Secure, so that mode
// forces the flag on.
func NewCookieManager(domain string, secure bool, sameSite string) *CookieManager {
	mode := http.SameSiteLaxMode
	switch strings.ToLower(strings.TrimSpace(sameSite)) {
	case "strict":
		mode = http.SameSiteStrictMode
	case "none":
		mode = http.SameSiteNoneMode
		secure = true
	}
	return &CookieManager{Domain: strings.TrimSpace(domain), Secure: secure, SameSite: mode}
}

// SetSessionCookies writes the HttpOnly session cookie and the script
// readable CSRF cookie with the same lifetime.
func (m *CookieManager) SetSessionCookies(w http.ResponseWriter, accessToken, csrfToken string, ttl time.Duration) {
	maxAge := int(ttl.Seconds())
	http.SetCookie(w, m.cookie(AccessTokenCookie, accessToken, maxAge, true))
	http.SetCookie(w, m.cookie(CSRFTokenCookie, csrfToken, maxAge, false))
}

func (m *CookieManager) ClearSessionCookies(w http.ResponseWriter) {
	http.SetCookie(w, m.cookie(AccessTokenCookie, "", -1, true))
	http.SetCookie(w, m.cookie(CSRFTokenCookie, "", -1, false))
}

func (m *CookieManager) cookie(name, value string, maxAge int, httpOnly bool) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   m.Domain,
		MaxAge:   maxAge,
		HttpOnly: httpOnly,
		Secure:   m.Secure,
		SameSite: m.SameSite,
	}
}

func GetCookie(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}
