package di

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/lfpcrew/lfp-admin/internal/app"
	"github.com/lfpcrew/lfp-admin/internal/config"
	"github.com/lfpcrew/lfp-admin/internal/database"
	"github.com/lfpcrew/lfp-admin/internal/health"
	"github.com/lfpcrew/lfp-admin/internal/http/handler"
	"github.com/lfpcrew/lfp-admin/internal/http/middleware"
	"github.com/lfpcrew/lfp-admin/internal/http/router"
	"github.com/lfpcrew/lfp-admin/internal/observability"
	"github.com/lfpcrew/lfp-admin/internal/repository"
	"github.com/lfpcrew/lfp-admin/internal/security"
	"github.com/lfpcrew/lfp-admin/internal/service"
)

var ConfigSet = wire.NewSet(config.Load)

var ObservabilitySet = wire.NewSet(
	provideObservabilityRuntime,
	provideAppLogger,
)

// InfraSet holds the process-wide clients: database, Redis and the photo
// bucket, plus the readiness probes that watch them.
var InfraSet = wire.NewSet(
	provideRuntimeDB,
	provideRedisClient,
	providePhotoStorage,
	provideReadinessProbeRunner,
)

var RepositorySet = wire.NewSet(
	repository.NewUserRepository,
	repository.NewRoleRepository,
	repository.NewMemberRepository,
	repository.NewCarRepository,
	repository.NewEventRepository,
	repository.NewAuditLogRepository,
)

var SecuritySet = wire.NewSet(
	provideJWTManager,
	provideCookieManager,
)

// AccessSet covers sessions, credentials and the back-office accounts.
var AccessSet = wire.NewSet(
	service.NewAccessControl,
	provideTokenService,
	provideLoginGuard,
	provideEmailSender,
	service.NewAuditTrail,
	service.NewCredentialService,
	provideTokenSweeper,
	service.NewAuthService,
	service.NewUserService,
	service.NewRoleService,
	wire.Bind(new(service.Authorizer), new(*service.AccessControl)),
	wire.Bind(new(service.Authenticator), new(*service.AuthService)),
	wire.Bind(new(service.CredentialLifecycle), new(*service.CredentialService)),
	wire.Bind(new(service.UserAdmin), new(*service.UserService)),
	wire.Bind(new(service.RoleAdmin), new(*service.RoleService)),
	wire.Bind(new(service.AuditReader), new(*service.AuditTrail)),
)

// ContentSet covers the club catalog: members, cars, events and the cached
// public view over them.
var ContentSet = wire.NewSet(
	provideCatalogCacheStore,
	providePublicCatalog,
	service.NewMemberService,
	service.NewCarService,
	service.NewEventService,
	service.NewStatsService,
	wire.Bind(new(service.MemberAdmin), new(*service.MemberService)),
	wire.Bind(new(service.CarAdmin), new(*service.CarService)),
	wire.Bind(new(service.EventAdmin), new(*service.EventService)),
	wire.Bind(new(service.StatsReader), new(*service.StatsService)),
	wire.Bind(new(service.PublicCatalog), new(*service.PublicCatalogService)),
	wire.Bind(new(service.CatalogInvalidator), new(*service.PublicCatalogService)),
)

var HTTPSet = wire.NewSet(
	handler.NewAuthHandler,
	handler.NewUserHandler,
	handler.NewRoleHandler,
	handler.NewMemberHandler,
	handler.NewCarHandler,
	handler.NewEventHandler,
	handler.NewAdminHandler,
	handler.NewUploadHandler,
	handler.NewPublicHandler,
	provideAPIRateLimiter,
	provideLoginRateLimiter,
	provideRouterDependencies,
	router.NewRouter,
	provideHTTPServer,
)

var AppSet = wire.NewSet(app.New)

// MigrationRunner applies the schema and seeds system roles plus the
// optional bootstrap admin.
type MigrationRunner struct {
	cfg *config.Config
	db  *gorm.DB
}

func NewMigrationRunner(cfg *config.Config, db *gorm.DB) *MigrationRunner {
	return &MigrationRunner{cfg: cfg, db: db}
}

func (m *MigrationRunner) Run(ctx context.Context) (*database.SeedReport, error) {
	if err := database.Migrate(m.db); err != nil {
		return nil, err
	}
	return database.Seed(ctx, m.db, bootstrapAdmin(m.cfg))
}

func bootstrapAdmin(cfg *config.Config) database.BootstrapAdmin {
	return database.BootstrapAdmin{
		Email:    cfg.BootstrapAdminEmail,
		Name:     cfg.BootstrapAdminName,
		Password: cfg.BootstrapAdminPassword,
	}
}

func provideObservabilityRuntime(cfg *config.Config) (*observability.Runtime, error) {
	bootstrapLogger := observability.NewBootstrapLogger(cfg)
	return observability.InitRuntime(context.Background(), cfg, bootstrapLogger)
}

func provideAppLogger(cfg *config.Config, runtime *observability.Runtime) *slog.Logger {
	return observability.InitLogger(cfg, runtime.LoggerProvider)
}

func provideOpenDB(cfg *config.Config) (*gorm.DB, error) {
	return database.Open(cfg)
}

func provideRuntimeDB(cfg *config.Config, logger *slog.Logger) (*gorm.DB, error) {
	db, err := database.Open(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, err
	}
	report, err := database.Seed(context.Background(), db, bootstrapAdmin(cfg))
	if err != nil {
		return nil, err
	}
	logger.Info("database ready", "created_roles", report.CreatedRoles, "bootstrap_admin", report.BootstrapAdmin)
	return db, nil
}

// provideRedisClient returns nil when Redis is disabled; every consumer
// then falls back to its in-process implementation.
func provideRedisClient(cfg *config.Config, logger *slog.Logger) redis.UniversalClient {
	if !cfg.RedisEnabled {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	observability.InstrumentRedisClient(client, composeRedisPrefix(cfg.RedisKeyPrefix, ""), logger)
	return client
}

func composeRedisPrefix(base, scope string) string {
	base = strings.Trim(base, ":")
	if base == "" {
		base = "lfp"
	}
	if scope == "" {
		return base
	}
	return base + ":" + scope
}

func provideJWTManager(cfg *config.Config) *security.JWTManager {
	return security.NewJWTManager(cfg.JWTIssuer, cfg.JWTAudience, cfg.JWTSecret)
}

func provideCookieManager(cfg *config.Config) *security.CookieManager {
	return security.NewCookieManager(cfg.CookieDomain, cfg.CookieSecure, cfg.CookieSameSite)
}

func provideTokenService(cfg *config.Config, jwt *security.JWTManager) *service.TokenService {
	return service.NewTokenService(jwt, cfg.SessionTTL)
}

func provideLoginGuard(cfg *config.Config, redisClient redis.UniversalClient) service.LoginGuard {
	policy := service.LoginGuardPolicy{
		Threshold:    cfg.LoginGuardThreshold,
		BaseCooldown: cfg.LoginGuardBaseCooldown,
		MaxCooldown:  cfg.LoginGuardMaxCooldown,
		Window:       cfg.LoginGuardWindow,
	}
	if redisClient != nil {
		return service.NewRedisLoginGuard(redisClient, composeRedisPrefix(cfg.RedisKeyPrefix, "login_guard"), policy)
	}
	return service.NewMemoryLoginGuard(policy)
}

// provideEmailSender logs links instead of mailing them while SMTP_HOST is
// unset.
func provideEmailSender(cfg *config.Config, logger *slog.Logger) (service.EmailSender, error) {
	if cfg.SMTPHost == "" {
		logger.Warn("SMTP_HOST not set, credential emails are logged only")
		return service.NewLogEmailSender(logger, cfg.AppURL), nil
	}
	sender, err := service.NewSMTPEmailSender(service.SMTPSettings{
		Host:        cfg.SMTPHost,
		Port:        cfg.SMTPPort,
		Username:    cfg.SMTPUser,
		Password:    cfg.SMTPPassword,
		From:        cfg.SMTPFrom,
		ImplicitTLS: cfg.SMTPSecure,
		Timeout:     10 * time.Second,
	}, cfg.AppURL, logger)
	if err != nil {
		return nil, fmt.Errorf("smtp sender: %w", err)
	}
	return sender, nil
}

func provideTokenSweeper(cfg *config.Config, credentials *service.CredentialService, logger *slog.Logger) (*service.TokenSweeper, error) {
	return service.NewTokenSweeper(credentials, cfg.TokenSweepSchedule, logger)
}

func provideCatalogCacheStore(cfg *config.Config, redisClient redis.UniversalClient) service.CatalogCacheStore {
	switch {
	case !cfg.PublicCacheEnabled:
		return service.NewNoopCatalogCacheStore()
	case redisClient != nil:
		return service.NewRedisCatalogCacheStore(redisClient, composeRedisPrefix(cfg.RedisKeyPrefix, "catalog"))
	default:
		return service.NewLRUCatalogCacheStore(cfg.PublicCacheSize, cfg.PublicCacheTTL)
	}
}

func providePublicCatalog(
	cfg *config.Config,
	members repository.MemberRepository,
	cars repository.CarRepository,
	events repository.EventRepository,
	store service.CatalogCacheStore,
	logger *slog.Logger,
) *service.PublicCatalogService {
	return service.NewPublicCatalogService(members, cars, events, store, cfg.PublicCacheTTL, logger)
}

func providePhotoStorage(cfg *config.Config, logger *slog.Logger) (service.PhotoStorage, error) {
	if !cfg.StorageEnabled {
		logger.Warn("STORAGE_ENABLED=false, photo uploads are disabled")
		return service.DisabledPhotoStorage{}, nil
	}
	storage, err := service.NewMinIOPhotoStorage(service.MinIOPhotoStorageConfig{
		Endpoint:      cfg.StorageEndpoint,
		AccessKey:     cfg.StorageAccessKey,
		SecretKey:     cfg.StorageSecretKey,
		Bucket:        cfg.StorageBucket,
		UseSSL:        cfg.StorageUseSSL,
		PublicBaseURL: cfg.StoragePublicBaseURL,
		MaxBytes:      cfg.StorageMaxUploadBytes,
	})
	if err != nil {
		return nil, fmt.Errorf("photo storage: %w", err)
	}
	return storage, nil
}

func failureMode(cfg *config.Config) middleware.FailureMode {
	if cfg.RateLimitFailureMode == "closed" {
		return middleware.FailClosed
	}
	return middleware.FailOpen
}

// provideAPIRateLimiter keys signed-in callers by subject so several admins
// behind one NAT do not share a bucket.
func provideAPIRateLimiter(cfg *config.Config, redisClient redis.UniversalClient, sessions service.Authenticator) router.RateLimiterFunc {
	var limiter middleware.Limiter = middleware.NewLocalTokenBucketLimiter()
	mode := middleware.FailClosed
	if redisClient != nil {
		limiter = middleware.NewRedisSlidingWindowLimiter(redisClient, composeRedisPrefix(cfg.RedisKeyPrefix, "rl:api"))
		mode = failureMode(cfg)
	}
	return middleware.NewDistributedRateLimiterWithKey(
		limiter,
		cfg.APIRateLimitPerMin,
		time.Minute,
		mode,
		"api",
		middleware.SubjectOrIPKeyFunc(sessions),
	).Middleware()
}

func provideLoginRateLimiter(cfg *config.Config, redisClient redis.UniversalClient) router.LoginRateLimiterFunc {
	if redisClient != nil {
		limiter := middleware.NewRedisSlidingWindowLimiter(redisClient, composeRedisPrefix(cfg.RedisKeyPrefix, "rl:login"))
		return middleware.NewDistributedRateLimiter(limiter, cfg.LoginRateLimitPerMin, time.Minute, failureMode(cfg), "login").Middleware()
	}
	return middleware.NewRateLimiter(cfg.LoginRateLimitPerMin, time.Minute, "login").Middleware()
}

func provideRouterDependencies(
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	roleHandler *handler.RoleHandler,
	memberHandler *handler.MemberHandler,
	carHandler *handler.CarHandler,
	eventHandler *handler.EventHandler,
	adminHandler *handler.AdminHandler,
	uploadHandler *handler.UploadHandler,
	publicHandler *handler.PublicHandler,
	sessions service.Authenticator,
	authz service.Authorizer,
	apiLimiter router.RateLimiterFunc,
	loginLimiter router.LoginRateLimiterFunc,
	readiness *health.ProbeRunner,
	cfg *config.Config,
) router.Dependencies {
	return router.Dependencies{
		AuthHandler:       authHandler,
		UserHandler:       userHandler,
		RoleHandler:       roleHandler,
		MemberHandler:     memberHandler,
		CarHandler:        carHandler,
		EventHandler:      eventHandler,
		AdminHandler:      adminHandler,
		UploadHandler:     uploadHandler,
		PublicHandler:     publicHandler,
		Sessions:          sessions,
		Authorizer:        authz,
		CORSOrigins:       cfg.CORSAllowedOrigins,
		LoginRateLimitRPM: cfg.LoginRateLimitPerMin,
		APIRateLimitRPM:   cfg.APIRateLimitPerMin,
		APIRateLimiter:    apiLimiter,
		LoginRateLimiter:  loginLimiter,
		Readiness:         readiness,
		EnableOTelHTTP:    cfg.OTELMetricsEnabled || cfg.OTELTracingEnabled,
	}
}

func provideHTTPServer(cfg *config.Config, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           h,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func provideReadinessProbeRunner(cfg *config.Config, db *gorm.DB, redisClient redis.UniversalClient, photos service.PhotoStorage) *health.ProbeRunner {
	checkers := []health.Checker{health.NewDBChecker(db)}
	if redisClient != nil {
		checkers = append(checkers, health.NewRedisChecker(redisClient))
	}
	if cfg.StorageEnabled {
		checkers = append(checkers, health.NewStorageChecker(photos))
	}
	return health.NewProbeRunner(cfg.ReadinessProbeTimeout, cfg.ServerStartGracePeriod, checkers...)
}
