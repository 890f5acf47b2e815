package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"

	"github.com/lfpcrew/lfp-admin/internal/security"
)

type recordingHandler struct {
	mu      sync.Mutex
	records []slog.Record
}

func (h *recordingHandler) Enabled(context.Context, slog.Level) bool { return true }
func (h *recordingHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, r)
	return nil
}
func (h *recordingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *recordingHandler) WithGroup(string) slog.Handler      { return h }

func captureDefaultLogger(t *testing.T) *recordingHandler {
	t.Helper()
	orig := slog.Default()
	rec := &recordingHandler{}
	slog.SetDefault(slog.New(rec))
	t.Cleanup(func() { slog.SetDefault(orig) })
	return rec
}

func recordAttrs(rec slog.Record) map[string]string {
	out := map[string]string{}
	rec.Attrs(func(a slog.Attr) bool {
		out[a.Key] = a.Value.String()
		return true
	})
	return out
}

func TestStructuredRequestLoggerLevelsFollowStatus(t *testing.T) {
	rec := captureDefaultLogger(t)

	r := chi.NewRouter()
	r.Use(StructuredRequestLogger)
	r.Get("/api/v1/public/members", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/api/v1/admin/members/{id}", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNotFound) })
	r.Get("/api/v1/admin/stats", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusInternalServerError) })
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {})

	for _, path := range []string{"/api/v1/public/members", "/api/v1/admin/members/9", "/api/v1/admin/stats", "/health/live"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.RemoteAddr = "198.51.100.10:3456"
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	want := []slog.Level{slog.LevelInfo, slog.LevelWarn, slog.LevelError, slog.LevelDebug}
	if len(rec.records) != len(want) {
		t.Fatalf("expected %d records, got %d", len(want), len(rec.records))
	}
	for i, level := range want {
		if rec.records[i].Level != level {
			t.Fatalf("record %d: level %v, want %v", i, rec.records[i].Level, level)
		}
	}
	attrs := recordAttrs(rec.records[1])
	if attrs["route"] != "/api/v1/admin/members/{id}" || attrs["status"] != "404" {
		t.Fatalf("expected route pattern and status, got %+v", attrs)
	}
	if attrs := recordAttrs(rec.records[3]); attrs["status"] != "200" {
		t.Fatalf("expected implicit 200, got %q", attrs["status"])
	}
}

func TestStructuredRequestLoggerNamesSessionUser(t *testing.T) {
	rec := captureDefaultLogger(t)

	claims := &security.Claims{Role: "editor", RegisteredClaims: jwt.RegisteredClaims{Subject: "42"}}
	withSession := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
	h := StructuredRequestLogger(withSession(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/cars", nil)
	req.RemoteAddr = "10.0.0.2:443"
	req.Header.Set("X-Forwarded-For", "198.51.100.7, 10.0.0.2")
	h.ServeHTTP(httptest.NewRecorder(), req)

	attrs := recordAttrs(rec.records[0])
	if attrs["user_id"] != "42" || attrs["role"] != "editor" {
		t.Fatalf("expected session user in access log, got %+v", attrs)
	}
	if attrs["client_ip"] != "198.51.100.7" || attrs["status"] != "201" {
		t.Fatalf("unexpected attrs %+v", attrs)
	}
}

func TestStructuredRequestLoggerOmitsAnonymousUser(t *testing.T) {
	rec := captureDefaultLogger(t)
	h := StructuredRequestLogger(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/me", nil))

	if _, ok := recordAttrs(rec.records[0])["user_id"]; ok {
		t.Fatal("anonymous requests must not carry a user id")
	}
}
