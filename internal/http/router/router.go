package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/lfpcrew/lfp-admin/internal/domain"
	"github.com/lfpcrew/lfp-admin/internal/health"
	"github.com/lfpcrew/lfp-admin/internal/http/handler"
	"github.com/lfpcrew/lfp-admin/internal/http/middleware"
	"github.com/lfpcrew/lfp-admin/internal/http/response"
	"github.com/lfpcrew/lfp-admin/internal/service"
)

// uploadBodyLimit leaves room for the base64 encoding of a 5 MiB picture.
const uploadBodyLimit = 7 << 20

type Dependencies struct {
	AuthHandler   *handler.AuthHandler
	UserHandler   *handler.UserHandler
	RoleHandler   *handler.RoleHandler
	MemberHandler *handler.MemberHandler
	CarHandler    *handler.CarHandler
	EventHandler  *handler.EventHandler
	AdminHandler  *handler.AdminHandler
	UploadHandler *handler.UploadHandler
	PublicHandler *handler.PublicHandler

	Sessions   middleware.SessionParser
	Authorizer service.Authorizer

	CORSOrigins       []string
	LoginRateLimitRPM int
	APIRateLimitRPM   int
	APIRateLimiter    RateLimiterFunc
	LoginRateLimiter  LoginRateLimiterFunc
	Readiness         *health.ProbeRunner
	EnableOTelHTTP    bool
}

type RateLimiterFunc func(http.Handler) http.Handler

// LoginRateLimiterFunc guards the login and setup-password endpoints.
type LoginRateLimiterFunc func(http.Handler) http.Handler

func NewRouter(dep Dependencies) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.StructuredRequestLogger)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.CORS(dep.CORSOrigins))

	apiLimiter := dep.APIRateLimiter
	if apiLimiter == nil {
		apiLimiter = middleware.NewRateLimiter(dep.APIRateLimitRPM, time.Minute, "api").Middleware()
	}
	loginLimiter := dep.LoginRateLimiter
	if loginLimiter == nil {
		loginLimiter = middleware.NewRateLimiter(dep.LoginRateLimitRPM, time.Minute, "login").Middleware()
	}
	authenticated := middleware.AuthMiddleware(dep.Sessions)
	can := func(p domain.Permission) func(http.Handler) http.Handler {
		return middleware.RequirePermission(dep.Authorizer, p)
	}

	r.Get("/health/live", func(w http.ResponseWriter, r *http.Request) {
		response.JSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		if dep.Readiness == nil {
			response.JSON(w, r, http.StatusOK, map[string]any{"status": "ready", "checks": []any{}})
			return
		}
		ready, results := dep.Readiness.Ready(r.Context())
		if ready {
			response.JSON(w, r, http.StatusOK, map[string]any{"status": "ready", "checks": results})
			return
		}
		response.Error(w, r, http.StatusServiceUnavailable, "DEPENDENCY_UNREADY", "dependencies are not ready", map[string]any{"checks": results})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(apiLimiter)

		r.Route("/auth", func(r chi.Router) {
			r.Use(middleware.BodyLimit(1 << 20))
			r.With(loginLimiter).Post("/login", dep.AuthHandler.Login)
			r.Get("/setup-password", dep.AuthHandler.VerifySetupToken)
			r.With(loginLimiter).Post("/setup-password", dep.AuthHandler.SetupPassword)
			r.With(authenticated, middleware.CSRFMiddleware).Post("/logout", dep.AuthHandler.Logout)
		})

		r.With(authenticated).Get("/me", dep.AuthHandler.Me)

		r.Route("/public", func(r chi.Router) {
			r.Get("/members", dep.PublicHandler.Members)
			r.Get("/cars", dep.PublicHandler.Cars)
			r.Get("/events", dep.PublicHandler.Events)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(authenticated)
			r.Use(middleware.CSRFMiddleware)

			r.With(middleware.RequireAuthenticated(dep.Authorizer)).Get("/stats", dep.AdminHandler.Stats)
			r.With(can(domain.PermLogsView)).Get("/logs", dep.AdminHandler.AuditLogs)

			r.Route("/uploads", func(r chi.Router) {
				r.With(can(domain.PermPhotosUpload), middleware.BodyLimit(uploadBodyLimit)).Post("/", dep.UploadHandler.Upload)
				r.With(can(domain.PermPhotosDelete)).Delete("/", dep.UploadHandler.Delete)
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.BodyLimit(1 << 20))

				r.Route("/users", func(r chi.Router) {
					r.With(can(domain.PermUsersView)).Get("/", dep.UserHandler.List)
					r.With(can(domain.PermUsersCreate)).Post("/", dep.UserHandler.Create)
					r.With(can(domain.PermUsersView)).Get("/{id}", dep.UserHandler.Get)
					r.With(can(domain.PermUsersEdit)).Put("/{id}", dep.UserHandler.Update)
					r.With(can(domain.PermUsersDelete)).Delete("/{id}", dep.UserHandler.Delete)
				})

				r.With(can(domain.PermUsersView)).Get("/permissions", dep.RoleHandler.Permissions)
				r.Route("/roles", func(r chi.Router) {
					r.With(can(domain.PermUsersView)).Get("/", dep.RoleHandler.List)
					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireRoleManagement(dep.Authorizer))
						r.Post("/", dep.RoleHandler.Create)
						r.Get("/{id}", dep.RoleHandler.Get)
						r.Put("/{id}", dep.RoleHandler.Update)
						r.Delete("/{id}", dep.RoleHandler.Delete)
					})
				})

				r.Route("/members", func(r chi.Router) {
					r.With(can(domain.PermMembersView)).Get("/", dep.MemberHandler.List)
					r.With(can(domain.PermMembersCreate)).Post("/", dep.MemberHandler.Create)
					r.With(can(domain.PermMembersView)).Get("/{id}", dep.MemberHandler.Get)
					r.With(can(domain.PermMembersEdit)).Put("/{id}", dep.MemberHandler.Update)
					r.With(can(domain.PermMembersEdit)).Post("/{id}/reactivate", dep.MemberHandler.Reactivate)
					r.With(can(domain.PermMembersDelete)).Delete("/{id}", dep.MemberHandler.Delete)
				})

				r.Route("/cars", func(r chi.Router) {
					r.With(can(domain.PermCarsView)).Get("/", dep.CarHandler.List)
					r.With(can(domain.PermCarsCreate)).Post("/", dep.CarHandler.Create)
					r.With(can(domain.PermCarsView)).Get("/{id}", dep.CarHandler.Get)
					r.With(can(domain.PermCarsEdit)).Put("/{id}", dep.CarHandler.Update)
					r.With(can(domain.PermCarsDelete)).Delete("/{id}", dep.CarHandler.Delete)
				})

				r.Route("/events", func(r chi.Router) {
					r.With(can(domain.PermEventsView)).Get("/", dep.EventHandler.List)
					r.With(can(domain.PermEventsCreate)).Post("/", dep.EventHandler.Create)
					r.With(can(domain.PermEventsView)).Get("/{id}", dep.EventHandler.Get)
					r.With(can(domain.PermEventsEdit)).Put("/{id}", dep.EventHandler.Update)
					r.With(can(domain.PermEventsDelete)).Delete("/{id}", dep.EventHandler.Delete)
				})
			})
		})
	})

	var h http.Handler = r
	if dep.EnableOTelHTTP {
		h = otelhttp.NewHandler(r, "http.server")
	}
	return h
}
