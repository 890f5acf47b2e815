package observability

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/lfpcrew/lfp-admin/internal/config"
)

// installManualMetrics swaps in meters backed by a manual reader and
// restores the uninitialized state when the test ends.
func installManualMetrics(t *testing.T) *sdkmetric.ManualReader {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	m, err := newAppMetrics(provider.Meter("lfp-admin-test"))
	if err != nil {
		t.Fatalf("new app metrics: %v", err)
	}
	metricsMu.Lock()
	appMetrics = m
	metricsMu.Unlock()
	t.Cleanup(func() {
		metricsMu.Lock()
		appMetrics = nil
		metricsMu.Unlock()
		_ = provider.Shutdown(context.Background())
	})
	return reader
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("collect metrics: %v", err)
	}
	out := map[string]metricdata.Metrics{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func recordEveryMetric(ctx context.Context) {
	RecordAuthLogin(ctx, "success")
	RecordAuthLogout(ctx, "success")
	RecordAuthRequestDuration(ctx, "login", "success", 10*time.Millisecond)
	RecordAccessTokenValidation(ctx, "ok", "cookie")
	RecordCSRFValidation(ctx, "ok")
	RecordMiddlewareValidationEvent(ctx, "cors", "preflight")
	RecordRBACAuthorization(ctx, "USERS_EDIT", "allow")
	RecordCredentialTokenEvent(ctx, "consume", "success", 1)
	RecordAdminMutation(ctx, "role", "update", "success")
	RecordAuditWrite(ctx, "error")
	RecordEmailDispatch(ctx, "invite", "smtp", "success")
	RecordStorageOperation(ctx, "upload", "success")
	RecordPublicCacheEvent(ctx, "members", "hit")
	RecordRateLimitDecision(ctx, "login", "allow", "distributed")
	RecordLoginGuardEvent(ctx, "check", "ok")
	RecordLoginGuardCooldown(ctx, time.Second)
	RecordHealthCheckResult(ctx, "db", "ready")
	RecordHealthCheckDuration(ctx, "db", 5*time.Millisecond)
	RecordDatabaseStartupEvent(ctx, "connect", "success")
	RecordDatabaseStartupDuration(ctx, "migrate", 15*time.Millisecond)
	RecordRepositoryOperation(ctx, "user", "list", "success")
}

func TestRecordHelpersAreSafeBeforeInit(t *testing.T) {
	metricsMu.Lock()
	appMetrics = nil
	metricsMu.Unlock()

	recordEveryMetric(context.Background())
}

func TestRecordHelpersLabelSets(t *testing.T) {
	reader := installManualMetrics(t)
	recordEveryMetric(context.Background())
	observed := collect(t, reader)

	labels := map[string]int{
		"auth.login.attempts":                 1,
		"auth.logout.attempts":                1,
		"auth.request.duration":               2,
		"auth.access_token.validation.events": 2,
		"security.csrf.validation.events":     1,
		"http.middleware.validation.events":   2,
		"auth.rbac.authorization.events":      2,
		"credential.token.events":             2,
		"admin.mutations":                     3,
		"audit.log.writes":                    1,
		"email.dispatch.events":               3,
		"storage.operation.events":            2,
		"public.catalog.cache.events":         2,
		"http.rate_limit.decisions":           3,
		"auth.login_guard.events":             2,
		"auth.login_guard.cooldown":           0,
		"health.check.results":                2,
		"health.check.duration":               1,
		"database.startup.events":             2,
		"database.startup.duration":           1,
		"repository.operations":               3,
	}
	for name, want := range labels {
		m, ok := observed[name]
		if !ok {
			t.Fatalf("no datapoint for %s", name)
		}
		var got int
		switch data := m.Data.(type) {
		case metricdata.Sum[int64]:
			got = data.DataPoints[0].Attributes.Len()
		case metricdata.Histogram[float64]:
			got = data.DataPoints[0].Attributes.Len()
		default:
			t.Fatalf("%s: unexpected data type %T", name, m.Data)
		}
		if got != want {
			t.Fatalf("%s: got %d labels want %d", name, got, want)
		}
	}
}

func TestCredentialTokenEventsAddBatchSize(t *testing.T) {
	reader := installManualMetrics(t)
	ctx := context.Background()
	RecordCredentialTokenEvent(ctx, "sweep", "success", 7)
	RecordCredentialTokenEvent(ctx, "sweep", "success", 3)
	RecordCredentialTokenEvent(ctx, "consume", "invalid", 1)

	sum, ok := collect(t, reader)["credential.token.events"].Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatal("credential.token.events is not an int64 sum")
	}
	byAction := map[string]int64{}
	for _, dp := range sum.DataPoints {
		action, _ := dp.Attributes.Value(attribute.Key("action"))
		byAction[action.AsString()] += dp.Value
	}
	if byAction["sweep"] != 10 || byAction["consume"] != 1 {
		t.Fatalf("unexpected token event totals: %v", byAction)
	}
}

func TestLoginGuardCooldownRecordedInSeconds(t *testing.T) {
	reader := installManualMetrics(t)
	RecordLoginGuardCooldown(context.Background(), 1500*time.Millisecond)

	hist, ok := collect(t, reader)["auth.login_guard.cooldown"].Data.(metricdata.Histogram[float64])
	if !ok || len(hist.DataPoints) != 1 {
		t.Fatalf("unexpected cooldown histogram: %+v", hist)
	}
	if dp := hist.DataPoints[0]; dp.Count != 1 || dp.Sum != 1.5 {
		t.Fatalf("expected one 1.5s sample, got count=%d sum=%v", dp.Count, dp.Sum)
	}
}

func TestInitMetricsDisabledReturnsProvider(t *testing.T) {
	ctx := context.Background()
	mp, err := InitMetrics(ctx, &config.Config{OTELMetricsEnabled: false}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("init metrics disabled: %v", err)
	}
	if mp == nil {
		t.Fatal("expected non-nil meter provider")
	}
	_ = mp.Shutdown(ctx)
}
