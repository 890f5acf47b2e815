package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/lfpcrew/lfp-admin/internal/config"
	"github.com/lfpcrew/lfp-admin/internal/database"
	"github.com/lfpcrew/lfp-admin/internal/domain"
	"github.com/lfpcrew/lfp-admin/internal/http/handler"
	"github.com/lfpcrew/lfp-admin/internal/http/router"
	"github.com/lfpcrew/lfp-admin/internal/repository"
	"github.com/lfpcrew/lfp-admin/internal/security"
	"github.com/lfpcrew/lfp-admin/internal/service"
)

const (
	adminEmail    = "admin@lfp.test"
	adminPassword = "bootstrap-pass-1"
)

type apiEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string          `json:"code"`
		Message string          `json:"message"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
}

func (e apiEnvelope) code() string {
	if e.Error == nil {
		return ""
	}
	return e.Error.Code
}

// captureSender records the last token mailed to each address.
type captureSender struct {
	mu     sync.Mutex
	tokens map[string]string
	kinds  map[string]service.EmailKind
}

func newCaptureSender() *captureSender {
	return &captureSender{tokens: map[string]string{}, kinds: map[string]service.EmailKind{}}
}

func (c *captureSender) Send(_ context.Context, kind service.EmailKind, to, _ string, token string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tokens[strings.ToLower(to)] = token
	c.kinds[strings.ToLower(to)] = kind
	return true
}

func (c *captureSender) tokenFor(t *testing.T, email string) string {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	token := c.tokens[strings.ToLower(email)]
	if token == "" {
		t.Fatalf("no setup email captured for %s", email)
	}
	return token
}

func (c *captureSender) kindFor(email string) service.EmailKind {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.kinds[strings.ToLower(email)]
}

type testEnv struct {
	server *httptest.Server
	db     *gorm.DB
	mail   *captureSender
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	cfg := &config.Config{
		Env:                  "test",
		AppURL:               "http://admin.lfp.test",
		DatabaseURL:          "sqlite:" + filepath.Join(t.TempDir(), "lfp.db"),
		JWTIssuer:            "lfp-admin",
		JWTAudience:          "lfp-admin-ui",
		JWTSecret:            "integration-secret-0123456789abcdef",
		SessionTTL:           time.Hour,
		CookieSecure:         false,
		CookieSameSite:       "lax",
		LoginRateLimitPerMin: 1000,
		APIRateLimitPerMin:   1000,
	}
	db, err := database.Open(cfg)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if _, err := database.Seed(context.Background(), db, database.BootstrapAdmin{
		Email: adminEmail, Name: "Admin LFP", Password: adminPassword,
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mail := newCaptureSender()

	users := repository.NewUserRepository(db)
	roles := repository.NewRoleRepository(db)
	members := repository.NewMemberRepository(db)
	cars := repository.NewCarRepository(db)
	events := repository.NewEventRepository(db)
	auditTrail := service.NewAuditTrail(repository.NewAuditLogRepository(db), logger)

	tokens := service.NewTokenService(security.NewJWTManager(cfg.JWTIssuer, cfg.JWTAudience, cfg.JWTSecret), cfg.SessionTTL)
	guard := service.NewMemoryLoginGuard(service.LoginGuardPolicy{Threshold: 50})
	authSvc := service.NewAuthService(users, tokens, guard, auditTrail, logger)
	creds := service.NewCredentialService(users, mail)
	catalog := service.NewPublicCatalogService(members, cars, events, service.NewLRUCatalogCacheStore(64, time.Minute), time.Minute, logger)

	h := router.NewRouter(router.Dependencies{
		AuthHandler:       handler.NewAuthHandler(authSvc, creds, security.NewCookieManager("", false, "lax")),
		UserHandler:       handler.NewUserHandler(service.NewUserService(users, roles, members, creds, auditTrail)),
		RoleHandler:       handler.NewRoleHandler(service.NewRoleService(roles)),
		MemberHandler:     handler.NewMemberHandler(service.NewMemberService(members, auditTrail, catalog)),
		CarHandler:        handler.NewCarHandler(service.NewCarService(cars, members, auditTrail, catalog)),
		EventHandler:      handler.NewEventHandler(service.NewEventService(events, auditTrail, catalog)),
		AdminHandler:      handler.NewAdminHandler(service.NewStatsService(members, cars, events, users), auditTrail),
		UploadHandler:     handler.NewUploadHandler(service.DisabledPhotoStorage{}),
		PublicHandler:     handler.NewPublicHandler(catalog),
		Sessions:          authSvc,
		Authorizer:        service.NewAccessControl(),
		LoginRateLimitRPM: cfg.LoginRateLimitPerMin,
		APIRateLimitRPM:   cfg.APIRateLimitPerMin,
	})
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return &testEnv{server: srv, db: db, mail: mail}
}

type apiClient struct {
	t    *testing.T
	base string
	http *http.Client
	csrf string
}

func (e *testEnv) newClient(t *testing.T) *apiClient {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	return &apiClient{t: t, base: e.server.URL, http: &http.Client{Jar: jar, Timeout: 10 * time.Second}}
}

func (c *apiClient) do(method, path string, body any) (int, apiEnvelope) {
	c.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			c.t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, c.base+path, reader)
	if err != nil {
		c.t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.csrf != "" && method != http.MethodGet {
		req.Header.Set("X-CSRF-Token", c.csrf)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		c.t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	var env apiEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		c.t.Fatalf("decode %s %s (status %d): %v", method, path, resp.StatusCode, err)
	}
	return resp.StatusCode, env
}

func (c *apiClient) login(email, password string) (int, apiEnvelope) {
	c.t.Helper()
	status, env := c.do(http.MethodPost, "/api/v1/auth/login", map[string]string{"email": email, "password": password})
	if status == http.StatusOK {
		var data struct {
			CSRFToken string `json:"csrfToken"`
		}
		decodeData(c.t, env, &data)
		c.csrf = data.CSRFToken
	}
	return status, env
}

func (c *apiClient) mustLogin(email, password string) {
	c.t.Helper()
	if status, env := c.login(email, password); status != http.StatusOK {
		c.t.Fatalf("login %s: status=%d code=%s", email, status, env.code())
	}
}

func (e *testEnv) adminClient(t *testing.T) *apiClient {
	t.Helper()
	c := e.newClient(t)
	c.mustLogin(adminEmail, adminPassword)
	return c
}

func decodeData(t *testing.T, env apiEnvelope, dst any) {
	t.Helper()
	if err := json.Unmarshal(env.Data, dst); err != nil {
		t.Fatalf("decode data %s: %v", string(env.Data), err)
	}
}

func (e *testEnv) roleID(t *testing.T, name string) uint {
	t.Helper()
	var role domain.Role
	if err := e.db.Where("name = ?", name).First(&role).Error; err != nil {
		t.Fatalf("load role %s: %v", name, err)
	}
	return role.ID
}

func (e *testEnv) userByEmail(t *testing.T, email string) domain.User {
	t.Helper()
	var user domain.User
	if err := e.db.Where("email = ?", email).First(&user).Error; err != nil {
		t.Fatalf("load user %s: %v", email, err)
	}
	return user
}

// inviteAndActivate creates a user through the API and completes the
// password setup link it was mailed.
func (e *testEnv) inviteAndActivate(t *testing.T, admin *apiClient, name, email string, roleID uint, password string) uint {
	t.Helper()
	status, env := admin.do(http.MethodPost, "/api/v1/admin/users", map[string]any{"name": name, "email": email, "roleId": roleID})
	if status != http.StatusCreated {
		t.Fatalf("create user %s: status=%d code=%s", email, status, env.code())
	}
	var created struct {
		User domain.UserSummary `json:"user"`
	}
	decodeData(t, env, &created)

	anon := e.newClient(t)
	status, env = anon.do(http.MethodPost, "/api/v1/auth/setup-password", map[string]string{
		"token": e.mail.tokenFor(t, email), "password": password, "confirmPassword": password,
	})
	if status != http.StatusOK {
		t.Fatalf("setup password %s: status=%d code=%s", email, status, env.code())
	}
	return created.User.ID
}

func itoa(id uint) string { return strconv.FormatUint(uint64(id), 10) }
