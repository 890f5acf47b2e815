package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/lfpcrew/lfp-admin/internal/http/middleware"
	"github.com/lfpcrew/lfp-admin/internal/http/response"
	"github.com/lfpcrew/lfp-admin/internal/observability"
	"github.com/lfpcrew/lfp-admin/internal/security"
	"github.com/lfpcrew/lfp-admin/internal/service"
)

type AuthHandler struct {
	authSvc     service.Authenticator
	credentials service.CredentialLifecycle
	cookieMgr   *security.CookieManager
}

func NewAuthHandler(authSvc service.Authenticator, credentials service.CredentialLifecycle, cookieMgr *security.CookieManager) *AuthHandler {
	return &AuthHandler{authSvc: authSvc, credentials: credentials, cookieMgr: cookieMgr}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	status := "success"
	defer func() {
		observability.RecordAuthRequestDuration(r.Context(), "login", status, time.Since(start))
	}()

	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &body); err != nil {
		status = "failure"
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}

	result, err := h.authSvc.Login(r.Context(), body.Email, body.Password, actorFromRequest(r))
	if err != nil {
		status = "failure"
		var throttled *service.LoginThrottledError
		switch {
		case errors.As(err, &throttled):
			observability.Audit(r, "auth.login.failed", "reason", "throttled")
			w.Header().Set("Retry-After", strconv.Itoa(max(int(throttled.RetryAfter.Seconds()), 1)))
			response.Error(w, r, http.StatusTooManyRequests, "RATE_LIMITED", throttled.Error(), nil)
		case service.IsValidation(err):
			response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
		case errors.Is(err, service.ErrInvalidCredentials):
			observability.Audit(r, "auth.login.failed", "reason", "invalid_credentials")
			response.Error(w, r, http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid credentials", nil)
		case errors.Is(err, service.ErrAccountDisabled):
			observability.Audit(r, "auth.login.failed", "reason", "account_disabled")
			response.Error(w, r, http.StatusForbidden, "ACCOUNT_DISABLED", "account disabled", nil)
		default:
			writeServiceError(w, r, err, "login failed")
		}
		return
	}

	h.cookieMgr.SetSessionCookies(w, result.Tokens.AccessToken, result.Tokens.CSRFToken, h.authSvc.SessionTTL())
	observability.Audit(r, "auth.login.success", "user_id", result.User.ID, "role", result.User.RoleName)
	response.JSON(w, r, http.StatusOK, map[string]any{
		"user":        result.User,
		"permissions": result.Permissions,
		"expiresAt":   result.ExpiresAt,
		"csrfToken":   result.Tokens.CSRFToken,
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	defer func() {
		observability.RecordAuthRequestDuration(r.Context(), "logout", "success", time.Since(start))
	}()

	actor := actorFromRequest(r)
	h.authSvc.Logout(r.Context(), actor)
	h.cookieMgr.ClearSessionCookies(w)
	observability.Audit(r, "auth.logout.success", "user_id", actor.UserID)
	response.JSON(w, r, http.StatusOK, map[string]string{"message": "logged out"})
}

// Me echoes the session snapshot, which is what every permission check
// sees until the next login.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		response.Error(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required", nil)
		return
	}
	id, err := claims.UserID()
	if err != nil {
		response.Error(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "invalid session subject", nil)
		return
	}
	out := map[string]any{
		"id":          id,
		"name":        claims.Name,
		"email":       claims.Email,
		"role":        claims.Role,
		"permissions": claims.Permissions,
		"memberId":    claims.MemberID,
	}
	if claims.ExpiresAt != nil {
		out["expiresAt"] = claims.ExpiresAt.Time
	}
	response.JSON(w, r, http.StatusOK, out)
}

// VerifySetupToken always answers 200 so the page can render either the
// form or a generic expired-link message.
func (h *AuthHandler) VerifySetupToken(w http.ResponseWriter, r *http.Request) {
	subject, err := h.credentials.VerifyToken(r.Context(), r.URL.Query().Get("token"))
	if err != nil {
		if !errors.Is(err, service.ErrInvalidSetupToken) {
			writeServiceError(w, r, err, "failed to verify link")
			return
		}
		response.JSON(w, r, http.StatusOK, map[string]any{"valid": false, "error": service.ErrInvalidSetupToken.Error()})
		return
	}
	response.JSON(w, r, http.StatusOK, map[string]any{"valid": true, "user": subject})
}

func (h *AuthHandler) SetupPassword(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Token           string `json:"token"`
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirmPassword"`
	}
	if err := decodeJSON(r, &body); err != nil {
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	err := h.credentials.ConsumeToken(r.Context(), body.Token, body.Password, body.ConfirmPassword)
	switch {
	case err == nil:
		observability.Audit(r, "auth.password.setup.success")
		response.JSON(w, r, http.StatusOK, map[string]string{"message": "password set, you can now sign in"})
	case errors.Is(err, service.ErrInvalidSetupToken):
		observability.Audit(r, "auth.password.setup.failed", "reason", "invalid_token")
		response.Error(w, r, http.StatusBadRequest, "INVALID_TOKEN", service.ErrInvalidSetupToken.Error(), nil)
	case errors.Is(err, service.ErrSetupFieldsRequired),
		errors.Is(err, service.ErrPasswordMismatch),
		errors.Is(err, service.ErrPasswordTooShort),
		errors.Is(err, service.ErrPasswordTooLong):
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
	default:
		writeServiceError(w, r, err, "failed to set password")
	}
}
