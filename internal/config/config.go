package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/lfpcrew/lfp-admin/internal/security"
)

type Config struct {
	Env      string
	HTTPPort string
	AppURL   string

	DatabaseURL string

	JWTIssuer          string
	JWTAudience        string
	JWTSecret          string
	SessionTTL         time.Duration
	CookieDomain       string
	CookieSecure       bool
	CookieSameSite     string
	CORSAllowedOrigins []string

	BootstrapAdminEmail    string
	BootstrapAdminName     string
	BootstrapAdminPassword string

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string
	SMTPSecure   bool

	StorageEnabled        bool
	StorageEndpoint       string
	StorageAccessKey      string
	StorageSecretKey      string
	StorageBucket         string
	StorageUseSSL         bool
	StoragePublicBaseURL  string
	StorageMaxUploadBytes int64

	RedisEnabled   bool
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	RedisKeyPrefix string

	LoginRateLimitPerMin int
	APIRateLimitPerMin   int
	RateLimitFailureMode string

	LoginGuardThreshold    int
	LoginGuardBaseCooldown time.Duration
	LoginGuardMaxCooldown  time.Duration
	LoginGuardWindow       time.Duration

	PublicCacheEnabled bool
	PublicCacheTTL     time.Duration
	PublicCacheSize    int

	TokenSweepSchedule string

	ReadinessProbeTimeout        time.Duration
	ServerStartGracePeriod       time.Duration
	ShutdownTimeout              time.Duration
	ShutdownHTTPDrainTimeout     time.Duration
	ShutdownObservabilityTimeout time.Duration

	OTELServiceName           string
	OTELEnvironment           string
	OTELExporterOTLPEndpoint  string
	OTELExporterOTLPInsecure  bool
	OTELMetricsExportInterval time.Duration
	OTELTraceSamplingRatio    float64
	OTELMetricsEnabled        bool
	OTELTracingEnabled        bool
	OTELLogsEnabled           bool
	LogLevel                  string
}

// LoadDotEnv reads KEY=VALUE pairs from path into the process environment
// without overriding variables that are already set. A missing file is not
// an error.
func LoadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

func Load() (*Config, error) {
	env := getEnv("APP_ENV", "development")
	cfg := &Config{
		Env:                    env,
		HTTPPort:               getEnv("HTTP_PORT", "8080"),
		AppURL:                 strings.TrimRight(getEnv("APP_URL", "http://localhost:3002"), "/"),
		DatabaseURL:            os.Getenv("DATABASE_URL"),
		JWTIssuer:              getEnv("JWT_ISSUER", "lfp-admin"),
		JWTAudience:            getEnv("JWT_AUDIENCE", "lfp-admin-ui"),
		JWTSecret:              os.Getenv("JWT_SECRET"),
		CookieDomain:           os.Getenv("COOKIE_DOMAIN"),
		CookieSecure:           getEnvBool("COOKIE_SECURE", true),
		CookieSameSite:         strings.ToLower(getEnv("COOKIE_SAMESITE", "lax")),
		CORSAllowedOrigins:     splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3002")),
		BootstrapAdminEmail:    strings.TrimSpace(strings.ToLower(os.Getenv("BOOTSTRAP_ADMIN_EMAIL"))),
		BootstrapAdminName:     getEnv("BOOTSTRAP_ADMIN_NAME", "LFP Admin"),
		BootstrapAdminPassword: os.Getenv("BOOTSTRAP_ADMIN_PASSWORD"),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPUser:     os.Getenv("SMTP_USER"),
		SMTPPassword: os.Getenv("SMTP_PASS"),
		SMTPFrom:     getEnv("SMTP_FROM", "LFP Admin <noreply@laforetperformance.fr>"),
		SMTPSecure:   getEnvBool("SMTP_SECURE", false),

		StorageEnabled:        getEnvBool("STORAGE_ENABLED", false),
		StorageEndpoint:       getEnv("STORAGE_ENDPOINT", "localhost:9000"),
		StorageAccessKey:      os.Getenv("STORAGE_ACCESS_KEY"),
		StorageSecretKey:      os.Getenv("STORAGE_SECRET_KEY"),
		StorageBucket:         getEnv("STORAGE_BUCKET", "lfp-photos"),
		StorageUseSSL:         getEnvBool("STORAGE_USE_SSL", false),
		StoragePublicBaseURL:  strings.TrimRight(os.Getenv("STORAGE_PUBLIC_BASE_URL"), "/"),
		StorageMaxUploadBytes: int64(getEnvInt("STORAGE_MAX_UPLOAD_BYTES", 5<<20)),

		RedisEnabled:   getEnvBool("REDIS_ENABLED", false),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RedisDB:        getEnvInt("REDIS_DB", 0),
		RedisKeyPrefix: getEnv("REDIS_KEY_PREFIX", "lfp"),

		LoginRateLimitPerMin: getEnvInt("RATE_LIMIT_LOGIN_PER_MIN", 10),
		APIRateLimitPerMin:   getEnvInt("RATE_LIMIT_API_PER_MIN", 300),
		RateLimitFailureMode: strings.ToLower(getEnv("RATE_LIMIT_FAILURE_MODE", "open")),

		LoginGuardThreshold: getEnvInt("LOGIN_GUARD_THRESHOLD", 5),
		PublicCacheEnabled:  getEnvBool("PUBLIC_CACHE_ENABLED", true),
		PublicCacheSize:     getEnvInt("PUBLIC_CACHE_SIZE", 64),
		TokenSweepSchedule:  getEnv("TOKEN_SWEEP_SCHEDULE", "@every 15m"),

		OTELServiceName:          getEnv("OTEL_SERVICE_NAME", "lfp-admin"),
		OTELEnvironment:          getEnv("OTEL_ENVIRONMENT", env),
		OTELExporterOTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		OTELExporterOTLPInsecure: getEnvBool("OTEL_EXPORTER_OTLP_INSECURE", true),
		OTELTraceSamplingRatio:   getEnvFloat("OTEL_TRACE_SAMPLING_RATIO", 1.0),
		OTELMetricsEnabled:       getEnvBool("OTEL_METRICS_ENABLED", false),
		OTELTracingEnabled:       getEnvBool("OTEL_TRACING_ENABLED", false),
		OTELLogsEnabled:          getEnvBool("OTEL_LOGS_ENABLED", false),
		LogLevel:                 strings.ToLower(getEnv("LOG_LEVEL", "info")),
	}

	durations := []struct {
		key string
		def string
		dst *time.Duration
	}{
		{"SESSION_TTL", "24h", &cfg.SessionTTL},
		{"LOGIN_GUARD_BASE_COOLDOWN", "30s", &cfg.LoginGuardBaseCooldown},
		{"LOGIN_GUARD_MAX_COOLDOWN", "15m", &cfg.LoginGuardMaxCooldown},
		{"LOGIN_GUARD_WINDOW", "15m", &cfg.LoginGuardWindow},
		{"PUBLIC_CACHE_TTL", "60s", &cfg.PublicCacheTTL},
		{"READINESS_PROBE_TIMEOUT", "1s", &cfg.ReadinessProbeTimeout},
		{"SERVER_START_GRACE_PERIOD", "2s", &cfg.ServerStartGracePeriod},
		{"SHUTDOWN_TIMEOUT", "20s", &cfg.ShutdownTimeout},
		{"SHUTDOWN_HTTP_DRAIN_TIMEOUT", "10s", &cfg.ShutdownHTTPDrainTimeout},
		{"SHUTDOWN_OBSERVABILITY_TIMEOUT", "5s", &cfg.ShutdownObservabilityTimeout},
		{"OTEL_METRICS_EXPORT_INTERVAL", "10s", &cfg.OTELMetricsExportInterval},
	}
	for _, d := range durations {
		v, err := time.ParseDuration(getEnv(d.key, d.def))
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", d.key, err)
		}
		*d.dst = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []string
	if c.DatabaseURL == "" {
		errs = append(errs, "DATABASE_URL is required")
	}
	if len(c.JWTSecret) < 32 {
		errs = append(errs, "JWT_SECRET must be at least 32 chars")
	}
	if c.SessionTTL <= 0 || c.SessionTTL > 24*time.Hour {
		errs = append(errs, "SESSION_TTL must be between 1s and 24h")
	}
	if u, err := url.Parse(c.AppURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, "APP_URL must be an absolute URL")
	}
	if c.SMTPHost != "" && (c.SMTPPort <= 0 || c.SMTPPort > 65535) {
		errs = append(errs, "SMTP_PORT must be a valid port")
	}
	if c.StorageEnabled {
		if c.StorageEndpoint == "" || c.StorageBucket == "" {
			errs = append(errs, "STORAGE_ENDPOINT and STORAGE_BUCKET are required when STORAGE_ENABLED=true")
		}
		if c.StorageAccessKey == "" || c.StorageSecretKey == "" {
			errs = append(errs, "STORAGE_ACCESS_KEY and STORAGE_SECRET_KEY are required when STORAGE_ENABLED=true")
		}
	}
	if c.StorageMaxUploadBytes <= 0 {
		errs = append(errs, "STORAGE_MAX_UPLOAD_BYTES must be > 0")
	}
	if c.RedisEnabled && c.RedisAddr == "" {
		errs = append(errs, "REDIS_ADDR is required when REDIS_ENABLED=true")
	}
	if c.LoginRateLimitPerMin <= 0 {
		errs = append(errs, "RATE_LIMIT_LOGIN_PER_MIN must be > 0")
	}
	if c.APIRateLimitPerMin <= 0 {
		errs = append(errs, "RATE_LIMIT_API_PER_MIN must be > 0")
	}
	if c.RateLimitFailureMode != "open" && c.RateLimitFailureMode != "closed" {
		errs = append(errs, "RATE_LIMIT_FAILURE_MODE must be open or closed")
	}
	if c.LoginGuardThreshold <= 0 {
		errs = append(errs, "LOGIN_GUARD_THRESHOLD must be > 0")
	}
	if c.LoginGuardBaseCooldown <= 0 || c.LoginGuardMaxCooldown < c.LoginGuardBaseCooldown {
		errs = append(errs, "LOGIN_GUARD_MAX_COOLDOWN must be >= LOGIN_GUARD_BASE_COOLDOWN > 0")
	}
	if c.LoginGuardWindow <= 0 {
		errs = append(errs, "LOGIN_GUARD_WINDOW must be > 0")
	}
	if c.PublicCacheEnabled && (c.PublicCacheTTL <= 0 || c.PublicCacheSize <= 0) {
		errs = append(errs, "PUBLIC_CACHE_TTL and PUBLIC_CACHE_SIZE must be > 0 when the cache is enabled")
	}
	if strings.TrimSpace(c.TokenSweepSchedule) == "" {
		errs = append(errs, "TOKEN_SWEEP_SCHEDULE is required")
	}
	if c.ReadinessProbeTimeout <= 0 {
		errs = append(errs, "READINESS_PROBE_TIMEOUT must be > 0")
	}
	if c.ShutdownTimeout <= 0 || c.ShutdownHTTPDrainTimeout <= 0 || c.ShutdownObservabilityTimeout <= 0 {
		errs = append(errs, "shutdown timeouts must be > 0")
	}
	if c.ShutdownHTTPDrainTimeout > c.ShutdownTimeout {
		errs = append(errs, "SHUTDOWN_HTTP_DRAIN_TIMEOUT must not exceed SHUTDOWN_TIMEOUT")
	}
	if (c.OTELMetricsEnabled || c.OTELTracingEnabled || c.OTELLogsEnabled) && c.OTELExporterOTLPEndpoint == "" {
		errs = append(errs, "OTEL_EXPORTER_OTLP_ENDPOINT is required when OTel is enabled")
	}
	if c.OTELTraceSamplingRatio < 0 || c.OTELTraceSamplingRatio > 1 {
		errs = append(errs, "OTEL_TRACE_SAMPLING_RATIO must be between 0 and 1")
	}
	if c.OTELMetricsExportInterval <= 0 {
		errs = append(errs, "OTEL_METRICS_EXPORT_INTERVAL must be > 0")
	}
	if len(c.BootstrapAdminPassword) > security.MaxPasswordLength {
		errs = append(errs, fmt.Sprintf("BOOTSTRAP_ADMIN_PASSWORD must be at most %d bytes", security.MaxPasswordLength))
	}
	if !isValidLogLevel(c.LogLevel) {
		errs = append(errs, "LOG_LEVEL must be one of debug, info, warn, error")
	}
	if c.IsProduction() {
		errs = append(errs, c.validateProduction()...)
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func (c *Config) validateProduction() []string {
	var errs []string
	if !c.CookieSecure {
		errs = append(errs, "COOKIE_SECURE must be true in production")
	}
	if c.SMTPHost == "" {
		errs = append(errs, "SMTP_HOST is required in production")
	}
	if !strings.HasPrefix(c.AppURL, "https://") {
		errs = append(errs, "APP_URL must use https in production")
	}
	if c.BootstrapAdminPassword != "" && len(c.BootstrapAdminPassword) < 12 {
		errs = append(errs, "BOOTSTRAP_ADMIN_PASSWORD must be at least 12 chars in production")
	}
	return errs
}

func (c *Config) IsProduction() bool {
	switch strings.ToLower(strings.TrimSpace(c.Env)) {
	case "production", "prod":
		return true
	default:
		return false
	}
}

func isValidLogLevel(v string) bool {
	switch strings.ToLower(v) {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

func getEnv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getEnvFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		trim := strings.TrimSpace(p)
		if trim != "" {
			out = append(out, trim)
		}
	}
	return out
}
