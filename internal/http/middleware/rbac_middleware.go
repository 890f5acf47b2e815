package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/lfpcrew/lfp-admin/internal/domain"
	"github.com/lfpcrew/lfp-admin/internal/http/response"
	"github.com/lfpcrew/lfp-admin/internal/security"
	"github.com/lfpcrew/lfp-admin/internal/service"
)

func RequirePermission(authz service.Authorizer, permission domain.Permission) func(http.Handler) http.Handler {
	return guard(func(r *http.Request, claims *security.Claims) error {
		return authz.Authorize(r.Context(), claims, permission)
	}, map[string]string{"required": string(permission)})
}

// RequireAuthenticated admits any valid session.
func RequireAuthenticated(authz service.Authorizer) func(http.Handler) http.Handler {
	return RequirePermission(authz, "")
}

func RequireRoleManagement(authz service.Authorizer) func(http.Handler) http.Handler {
	return guard(func(r *http.Request, claims *security.Claims) error {
		return authz.AuthorizeRoleManagement(r.Context(), claims)
	}, map[string]string{"required": domain.RoleSuperAdmin})
}

func guard(check func(*http.Request, *security.Claims) error, details map[string]string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, _ := ClaimsFromContext(r.Context())
			err := check(r, claims)
			switch {
			case err == nil:
				next.ServeHTTP(w, r)
			case errors.Is(err, service.ErrAuthenticationRequired):
				response.Error(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required", nil)
			case errors.Is(err, service.ErrPermissionDenied):
				slog.DebugContext(r.Context(), "permission denied",
					"path", r.URL.Path,
					"required", details["required"],
					"role", claims.Role,
				)
				response.Error(w, r, http.StatusForbidden, "FORBIDDEN", "insufficient permission", details)
			default:
				response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "authorization failed", nil)
			}
		})
	}
}
