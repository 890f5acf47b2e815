package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/lfpcrew/lfp-admin/internal/observability"
)

const actorContextKey contextKey = "request_actor"

// requestActor is filled by WithClaims further down the chain so the access
// log can name the back-office user behind a request.
type requestActor struct {
	userID string
	role   string
}

func noteActor(ctx context.Context, userID, role string) {
	if a, ok := ctx.Value(actorContextKey).(*requestActor); ok {
		a.userID, a.role = userID, role
	}
}

// StructuredRequestLogger writes one slog line per request: error for 5xx,
// warn for 4xx, debug for health probes, info otherwise.
func StructuredRequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		actor := &requestActor{}
		r = r.WithContext(context.WithValue(r.Context(), actorContextKey, actor))
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		route := ""
		if rc := chi.RouteContext(r.Context()); rc != nil {
			route = rc.RoutePattern()
		}
		attrs := []any{
			"method", r.Method,
			"route", route,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration_ms", float64(time.Since(start).Microseconds()) / 1000.0,
			"request_id", chimiddleware.GetReqID(r.Context()),
			"client_ip", observability.ClientIP(r),
		}
		if actor.userID != "" {
			attrs = append(attrs, "user_id", actor.userID, "role", actor.role)
		}
		if ua := r.UserAgent(); ua != "" {
			attrs = append(attrs, "user_agent", ua)
		}

		level := slog.LevelInfo
		switch {
		case status >= http.StatusInternalServerError:
			level = slog.LevelError
		case status >= http.StatusBadRequest:
			level = slog.LevelWarn
		case strings.HasPrefix(r.URL.Path, "/health/"):
			level = slog.LevelDebug
		}
		slog.Log(r.Context(), level, "http.request", attrs...)
	})
}
