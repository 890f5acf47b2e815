package observability

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/lfpcrew/lfp-admin/internal/config"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/exemplar"
)

const meterName = "lfp-admin"

type AppMetrics struct {
	authLoginCounter             metric.Int64Counter
	authLogoutCounter            metric.Int64Counter
	authReqDuration              metric.Float64Histogram
	accessTokenValidationCounter metric.Int64Counter
	csrfValidationCounter        metric.Int64Counter
	middlewareValidationCounter  metric.Int64Counter
	rbacAuthorizationCounter     metric.Int64Counter
	credentialTokenCounter       metric.Int64Counter
	adminMutationCounter         metric.Int64Counter
	auditWriteCounter            metric.Int64Counter
	emailDispatchCounter         metric.Int64Counter
	storageOperationCounter      metric.Int64Counter
	publicCacheCounter           metric.Int64Counter
	rateLimitDecisionCounter     metric.Int64Counter
	loginGuardCounter            metric.Int64Counter
	loginGuardCooldown           metric.Float64Histogram
	healthCheckResultCounter     metric.Int64Counter
	healthCheckDuration          metric.Float64Histogram
	databaseStartupCounter       metric.Int64Counter
	databaseStartupDuration      metric.Float64Histogram
	repositoryOpsCounter         metric.Int64Counter
}

var (
	metricsMu  sync.RWMutex
	appMetrics *AppMetrics
)

func InitMetrics(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*sdkmetric.MeterProvider, error) {
	if !cfg.OTELMetricsEnabled {
		mp := sdkmetric.NewMeterProvider()
		otel.SetMeterProvider(mp)
		logger.Info("otel metrics disabled")
		return mp, nil
	}

	opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithEndpoint(cfg.OTELExporterOTLPEndpoint)}
	if cfg.OTELExporterOTLPInsecure {
		opts = append(opts, otlpmetricgrpc.WithInsecure())
	}
	exporter, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create otlp metric exporter: %w", err)
	}

	res, err := serviceResource(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create metric resource: %w", err)
	}

	reader := sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(cfg.OTELMetricsExportInterval))
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(reader),
		sdkmetric.WithExemplarFilter(exemplar.TraceBasedFilter),
		sdkmetric.WithView(sdkmetric.NewView(
			sdkmetric.Instrument{Name: "auth.request.duration"},
			sdkmetric.Stream{
				Aggregation: sdkmetric.AggregationExplicitBucketHistogram{
					Boundaries: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
				},
			},
		)),
	)
	otel.SetMeterProvider(mp)

	m, err := newAppMetrics(mp.Meter(meterName))
	if err != nil {
		return nil, err
	}
	metricsMu.Lock()
	appMetrics = m
	metricsMu.Unlock()

	logger.Info("otel metrics initialized", "endpoint", cfg.OTELExporterOTLPEndpoint, "interval", cfg.OTELMetricsExportInterval.String())
	return mp, nil
}

func newAppMetrics(meter metric.Meter) (*AppMetrics, error) {
	var firstErr error
	counter := func(name, desc string) metric.Int64Counter {
		c, err := meter.Int64Counter(name, metric.WithDescription(desc))
		if err != nil && firstErr == nil {
			firstErr = fmt.Errorf("create counter %s: %w", name, err)
		}
		return c
	}
	hist := func(name, unit, desc string) metric.Float64Histogram {
		h, err := meter.Float64Histogram(name, metric.WithUnit(unit), metric.WithDescription(desc))
		if err != nil && firstErr == nil {
			firstErr = fmt.Errorf("create histogram %s: %w", name, err)
		}
		return h
	}

	m := &AppMetrics{
		authLoginCounter:             counter("auth.login.attempts", "Login attempts by outcome"),
		authLogoutCounter:            counter("auth.logout.attempts", "Logout requests"),
		authReqDuration:              hist("auth.request.duration", "s", "Duration of auth endpoint requests"),
		accessTokenValidationCounter: counter("auth.access_token.validation.events", "Session token validation outcomes"),
		csrfValidationCounter:        counter("security.csrf.validation.events", "CSRF double-submit checks"),
		middlewareValidationCounter:  counter("http.middleware.validation.events", "CORS and body limit decisions"),
		rbacAuthorizationCounter:     counter("auth.rbac.authorization.events", "Permission checks by outcome"),
		credentialTokenCounter:       counter("credential.token.events", "Setup token issue, verify and consume outcomes"),
		adminMutationCounter:         counter("admin.mutations", "Back-office mutations"),
		auditWriteCounter:            counter("audit.log.writes", "Audit trail write outcomes"),
		emailDispatchCounter:         counter("email.dispatch.events", "Transactional email sends"),
		storageOperationCounter:      counter("storage.operation.events", "Photo storage operations"),
		publicCacheCounter:           counter("public.catalog.cache.events", "Public catalog cache lookups"),
		rateLimitDecisionCounter:     counter("http.rate_limit.decisions", "Rate limiter decisions"),
		loginGuardCounter:            counter("auth.login_guard.events", "Login guard checks and failures"),
		loginGuardCooldown:           hist("auth.login_guard.cooldown", "s", "Login guard cooldown lengths"),
		healthCheckResultCounter:     counter("health.check.results", "Readiness check outcomes"),
		healthCheckDuration:          hist("health.check.duration", "s", "Readiness check latency"),
		databaseStartupCounter:       counter("database.startup.events", "Database connect, migrate and seed outcomes"),
		databaseStartupDuration:      hist("database.startup.duration", "s", "Database startup phase latency"),
		repositoryOpsCounter:         counter("repository.operations", "Repository calls by outcome"),
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return m, nil
}

func currentMetrics() *AppMetrics {
	metricsMu.RLock()
	defer metricsMu.RUnlock()
	return appMetrics
}

func RecordAuthLogin(ctx context.Context, status string) {
	if m := currentMetrics(); m != nil {
		m.authLoginCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("status", status)))
	}
}

func RecordAuthLogout(ctx context.Context, status string) {
	if m := currentMetrics(); m != nil {
		m.authLogoutCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("status", status)))
	}
}

func RecordAuthRequestDuration(ctx context.Context, endpoint, status string, duration time.Duration) {
	if m := currentMetrics(); m != nil {
		m.authReqDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
			attribute.String("endpoint", endpoint),
			attribute.String("status", status),
		))
	}
}

func RecordAccessTokenValidation(ctx context.Context, outcome, source string) {
	if m := currentMetrics(); m != nil {
		m.accessTokenValidationCounter.Add(ctx, 1, metric.WithAttributes(
			attribute.String("outcome", outcome),
			attribute.String("source", source),
		))
	}
}

func RecordCSRFValidation(ctx context.Context, outcome string) {
	if m := currentMetrics(); m != nil {
		m.csrfValidationCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
	}
}

func RecordMiddlewareValidationEvent(ctx context.Context, middleware, outcome string) {
	if m := currentMetrics(); m != nil {
		m.middlewareValidationCounter.Add(ctx, 1, metric.WithAttributes(
			attribute.String("middleware", middleware),
			attribute.String("outcome", outcome),
		))
	}
}

func RecordRBACAuthorization(ctx context.Context, permission, outcome string) {
	if m := currentMetrics(); m != nil {
		m.rbacAuthorizationCounter.Add(ctx, 1, metric.WithAttributes(
			attribute.String("permission", permission),
			attribute.String("outcome", outcome),
		))
	}
}

// RecordCredentialTokenEvent counts setup token activity. action is one of
// issue_invite, issue_reset, verify, consume, sweep.
func RecordCredentialTokenEvent(ctx context.Context, action, outcome string, n int64) {
	if m := currentMetrics(); m != nil {
		m.credentialTokenCounter.Add(ctx, n, metric.WithAttributes(
			attribute.String("action", action),
			attribute.String("outcome", outcome),
		))
	}
}

func RecordAdminMutation(ctx context.Context, entity, action, status string) {
	if m := currentMetrics(); m != nil {
		m.adminMutationCounter.Add(ctx, 1, metric.WithAttributes(
			attribute.String("entity", entity),
			attribute.String("action", action),
			attribute.String("status", status),
		))
	}
}

func RecordAuditWrite(ctx context.Context, outcome string) {
	if m := currentMetrics(); m != nil {
		m.auditWriteCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
	}
}

func RecordEmailDispatch(ctx context.Context, kind, transport, outcome string) {
	if m := currentMetrics(); m != nil {
		m.emailDispatchCounter.Add(ctx, 1, metric.WithAttributes(
			attribute.String("kind", kind),
			attribute.String("transport", transport),
			attribute.String("outcome", outcome),
		))
	}
}

func RecordStorageOperation(ctx context.Context, op, outcome string) {
	if m := currentMetrics(); m != nil {
		m.storageOperationCounter.Add(ctx, 1, metric.WithAttributes(
			attribute.String("operation", op),
			attribute.String("outcome", outcome),
		))
	}
}

func RecordPublicCacheEvent(ctx context.Context, resource, outcome string) {
	if m := currentMetrics(); m != nil {
		m.publicCacheCounter.Add(ctx, 1, metric.WithAttributes(
			attribute.String("resource", resource),
			attribute.String("outcome", outcome),
		))
	}
}

func RecordRateLimitDecision(ctx context.Context, scope, outcome, mode string) {
	if m := currentMetrics(); m != nil {
		m.rateLimitDecisionCounter.Add(ctx, 1, metric.WithAttributes(
			attribute.String("scope", scope),
			attribute.String("outcome", outcome),
			attribute.String("mode", mode),
		))
	}
}

func RecordLoginGuardEvent(ctx context.Context, action, outcome string) {
	if m := currentMetrics(); m != nil {
		m.loginGuardCounter.Add(ctx, 1, metric.WithAttributes(
			attribute.String("action", action),
			attribute.String("outcome", outcome),
		))
	}
}

func RecordLoginGuardCooldown(ctx context.Context, cooldown time.Duration) {
	if m := currentMetrics(); m != nil {
		m.loginGuardCooldown.Record(ctx, cooldown.Seconds())
	}
}

func RecordHealthCheckResult(ctx context.Context, check, outcome string) {
	if m := currentMetrics(); m != nil {
		m.healthCheckResultCounter.Add(ctx, 1, metric.WithAttributes(
			attribute.String("check", check),
			attribute.String("outcome", outcome),
		))
	}
}

func RecordHealthCheckDuration(ctx context.Context, check string, duration time.Duration) {
	if m := currentMetrics(); m != nil {
		m.healthCheckDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attribute.String("check", check)))
	}
}

func RecordDatabaseStartupEvent(ctx context.Context, phase, outcome string) {
	if m := currentMetrics(); m != nil {
		m.databaseStartupCounter.Add(ctx, 1, metric.WithAttributes(
			attribute.String("phase", phase),
			attribute.String("outcome", outcome),
		))
	}
}

func RecordDatabaseStartupDuration(ctx context.Context, phase string, duration time.Duration) {
	if m := currentMetrics(); m != nil {
		m.databaseStartupDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attribute.String("phase", phase)))
	}
}

func RecordRepositoryOperation(ctx context.Context, entity, op, outcome string) {
	if m := currentMetrics(); m != nil {
		m.repositoryOpsCounter.Add(ctx, 1, metric.WithAttributes(
			attribute.String("entity", entity),
			attribute.String("operation", op),
			attribute.String("outcome", outcome),
		))
	}
}
