package obscheck

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newGrafanaStub(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user, pass, ok := r.BasicAuth(); !ok || user != "admin" || pass != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		switch {
		case strings.HasPrefix(r.URL.Path, "/api/datasources/proxy/1/api/v1/query_exemplars"):
			_, _ = w.Write([]byte(`{"data":[{"exemplars":[{"labels":{"trace_id":"short"}},{"labels":{"trace_id":"0123456789abcdef0123456789abcdef"}}]}]}`))
		case strings.HasPrefix(r.URL.Path, "/api/datasources/proxy/3/api/traces/"):
			_, _ = w.Write([]byte(`{"batches":[{}]}`))
		case strings.HasPrefix(r.URL.Path, "/api/datasources/proxy/2/loki/api/v1/query_range"):
			if !strings.Contains(r.URL.Query().Get("query"), `service_name="lfp-admin"`) {
				_, _ = w.Write([]byte(`{"data":{"result":[]}}`))
				return
			}
			_, _ = w.Write([]byte(`{"data":{"result":[{}]}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestGrafanaExemplarToTraceToLogs(t *testing.T) {
	srv := newGrafanaStub(t)
	defer srv.Close()
	g := grafana{baseURL: srv.URL, user: "admin", password: "secret", client: srv.Client()}
	ctx := context.Background()

	traceID, err := g.exemplarTraceID(ctx, "auth_request_duration_seconds_bucket", time.Minute)
	if err != nil {
		t.Fatalf("exemplar: %v", err)
	}
	if traceID != "0123456789abcdef0123456789abcdef" {
		t.Fatalf("unexpected trace id %q", traceID)
	}
	if err := g.verifyTrace(ctx, traceID); err != nil {
		t.Fatalf("trace: %v", err)
	}
	if err := g.verifyTraceLogs(ctx, "lfp-admin", traceID); err != nil {
		t.Fatalf("logs: %v", err)
	}
	if err := g.verifyTraceLogs(ctx, "other-service", traceID); err == nil {
		t.Fatal("expected missing logs for another service")
	}
}

func TestGrafanaRejectsBadCredentials(t *testing.T) {
	srv := newGrafanaStub(t)
	defer srv.Close()
	g := grafana{baseURL: srv.URL, user: "admin", password: "nope", client: srv.Client()}
	if _, err := g.exemplarTraceID(context.Background(), "m", time.Minute); err == nil {
		t.Fatal("expected auth failure")
	}
}
