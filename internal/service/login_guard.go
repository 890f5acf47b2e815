package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/lfpcrew/lfp-admin/internal/observability"
)

// LoginGuardPolicy describes the cooldown applied after repeated login
// failures. The first Threshold failures inside Window are free; each one
// after that doubles the cooldown, starting at BaseCooldown and capped at
// MaxCooldown.
type LoginGuardPolicy struct {
	Threshold    int
	BaseCooldown time.Duration
	MaxCooldown  time.Duration
	Window       time.Duration
}

// LoginGuard tracks failures per email and per client IP. A login is
// blocked while either dimension is cooling down.
type LoginGuard interface {
	Cooldown(ctx context.Context, email, ip string) (time.Duration, error)
	RecordFailure(ctx context.Context, email, ip string) (time.Duration, error)
	Clear(ctx context.Context, email, ip string) error
}

type NoopLoginGuard struct{}

func (NoopLoginGuard) Cooldown(context.Context, string, string) (time.Duration, error) {
	return 0, nil
}

func (NoopLoginGuard) RecordFailure(context.Context, string, string) (time.Duration, error) {
	return 0, nil
}

func (NoopLoginGuard) Clear(context.Context, string, string) error { return nil }

type failureWindow struct {
	count     int
	lastFail  time.Time
	blockedAt time.Time
	until     time.Time
}

type MemoryLoginGuard struct {
	mu      sync.Mutex
	policy  LoginGuardPolicy
	windows map[string]failureWindow
	now     func() time.Time
}

func NewMemoryLoginGuard(policy LoginGuardPolicy) *MemoryLoginGuard {
	return &MemoryLoginGuard{
		policy:  normalizeLoginGuardPolicy(policy),
		windows: make(map[string]failureWindow),
		now:     time.Now,
	}
}

func (g *MemoryLoginGuard) Cooldown(_ context.Context, email, ip string) (time.Duration, error) {
	now := g.now()
	g.mu.Lock()
	defer g.mu.Unlock()
	return max(g.remainingLocked(now, emailKey(email)), g.remainingLocked(now, ipKey(ip))), nil
}

func (g *MemoryLoginGuard) RecordFailure(ctx context.Context, email, ip string) (time.Duration, error) {
	now := g.now()
	g.mu.Lock()
	wait := max(g.failLocked(now, emailKey(email)), g.failLocked(now, ipKey(ip)))
	g.mu.Unlock()

	if wait > 0 {
		observability.RecordLoginGuardEvent(ctx, "failure", "cooldown")
		observability.RecordLoginGuardCooldown(ctx, wait)
	} else {
		observability.RecordLoginGuardEvent(ctx, "failure", "counted")
	}
	return wait, nil
}

func (g *MemoryLoginGuard) Clear(ctx context.Context, email, ip string) error {
	g.mu.Lock()
	delete(g.windows, emailKey(email))
	delete(g.windows, ipKey(ip))
	g.mu.Unlock()
	observability.RecordLoginGuardEvent(ctx, "clear", "success")
	return nil
}

func (g *MemoryLoginGuard) failLocked(now time.Time, key string) time.Duration {
	w := g.windows[key]
	if w.lastFail.IsZero() || now.Sub(w.lastFail) > g.policy.Window {
		w = failureWindow{}
	}
	w.count++
	w.lastFail = now
	wait := g.policy.cooldownFor(w.count)
	w.until = now.Add(wait)
	g.windows[key] = w
	return wait
}

func (g *MemoryLoginGuard) remainingLocked(now time.Time, key string) time.Duration {
	w, ok := g.windows[key]
	if !ok {
		return 0
	}
	if now.Sub(w.lastFail) > g.policy.Window {
		delete(g.windows, key)
		return 0
	}
	if !now.Before(w.until) {
		return 0
	}
	return w.until.Sub(now)
}

func (p LoginGuardPolicy) cooldownFor(failures int) time.Duration {
	over := failures - p.Threshold
	if over <= 0 {
		return 0
	}
	wait := p.BaseCooldown
	for i := 1; i < over; i++ {
		wait *= 2
		if wait >= p.MaxCooldown {
			return p.MaxCooldown
		}
	}
	return min(wait, p.MaxCooldown)
}

func emailKey(email string) string {
	v := strings.ToLower(strings.TrimSpace(email))
	if v == "" {
		v = "anonymous"
	}
	return "email:" + v
}

func ipKey(ip string) string {
	v := strings.TrimSpace(ip)
	if v == "" {
		v = "unknown"
	}
	return "ip:" + v
}

func normalizeLoginGuardPolicy(p LoginGuardPolicy) LoginGuardPolicy {
	if p.Threshold < 0 {
		p.Threshold = 0
	}
	if p.BaseCooldown <= 0 {
		p.BaseCooldown = 30 * time.Second
	}
	if p.MaxCooldown < p.BaseCooldown {
		p.MaxCooldown = 15 * time.Minute
	}
	if p.Window <= 0 {
		p.Window = 15 * time.Minute
	}
	return p
}
