package middleware

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newSlidingLimiter(t *testing.T) (*miniredis.Miniredis, *redis.Client, *RedisSlidingWindowLimiter) {
	t.Helper()
	m := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return m, client, NewRedisSlidingWindowLimiter(client, "lfp:rl:test")
}

func TestRedisSlidingWindowLimiterDeniesOverBudget(t *testing.T) {
	_, _, limiter := newSlidingLimiter(t)
	ctx := context.Background()

	first, err := limiter.Allow(ctx, "", 1, time.Second)
	if err != nil || !first.Allowed {
		t.Fatalf("first request: %+v err=%v", first, err)
	}
	second, err := limiter.Allow(ctx, "", 1, time.Second)
	if err != nil {
		t.Fatalf("second request: %v", err)
	}
	if second.Allowed || second.Remaining != 0 || second.RetryAfter <= 0 {
		t.Fatalf("expected denial with retry hint, got %+v", second)
	}
}

func TestRedisSlidingWindowLimiterSlidesWithClock(t *testing.T) {
	_, client, limiter := newSlidingLimiter(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	now := base
	limiter.now = func() time.Time { return now }

	for i := range 2 {
		now = base.Add(time.Duration(i) * 20 * time.Second)
		if d, err := limiter.Allow(ctx, "203.0.113.5", 2, time.Minute); err != nil || !d.Allowed {
			t.Fatalf("request %d: %+v err=%v", i+1, d, err)
		}
	}
	now = base.Add(50 * time.Second)
	denied, _ := limiter.Allow(ctx, "203.0.113.5", 2, time.Minute)
	if denied.Allowed {
		t.Fatal("expected third request inside the window to be denied")
	}
	if denied.RetryAfter != 10*time.Second {
		t.Fatalf("expected retry when the oldest entry leaves the window, got %v", denied.RetryAfter)
	}
	if n := client.ZCard(ctx, "lfp:rl:test:203.0.113.5").Val(); n != 2 {
		t.Fatalf("denied requests must not be logged, got %d entries", n)
	}

	now = base.Add(61 * time.Second)
	d, err := limiter.Allow(ctx, "203.0.113.5", 2, time.Minute)
	if err != nil || !d.Allowed || d.Remaining != 0 {
		t.Fatalf("expected the first slot to free up, got %+v err=%v", d, err)
	}
}

func TestRedisSlidingWindowLimiterKeyExpires(t *testing.T) {
	m, client, limiter := newSlidingLimiter(t)
	ctx := context.Background()
	if _, err := limiter.Allow(ctx, "198.51.100.1", 5, time.Minute); err != nil {
		t.Fatalf("allow: %v", err)
	}
	if client.Exists(ctx, "lfp:rl:test:198.51.100.1").Val() != 1 {
		t.Fatal("expected prefixed log key")
	}
	m.FastForward(time.Minute + time.Second)
	if client.Exists(ctx, "lfp:rl:test:198.51.100.1").Val() != 0 {
		t.Fatal("expected idle log to expire with the window")
	}
}

func TestRedisSlidingWindowLimiterErrors(t *testing.T) {
	if _, err := NewRedisSlidingWindowLimiter(nil, "").Allow(context.Background(), "k", 1, time.Second); !errors.Is(err, errNilRedisClient) {
		t.Fatalf("expected nil client error, got %v", err)
	}

	badClient := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 20 * time.Millisecond})
	t.Cleanup(func() { _ = badClient.Close() })
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if _, err := NewRedisSlidingWindowLimiter(badClient, "").Allow(ctx, "k", 1, time.Second); err == nil {
		t.Fatal("expected backend error")
	}
}

func TestParseRedisInt64(t *testing.T) {
	if v, err := parseRedisInt64(int64(4)); err != nil || v != 4 {
		t.Fatalf("int64: v=%d err=%v", v, err)
	}
	if _, err := parseRedisInt64(uint64(math.MaxUint64)); err == nil {
		t.Fatal("expected overflow error")
	}
	if _, err := parseRedisInt64("1"); err == nil {
		t.Fatal("expected type error for strings")
	}
}
