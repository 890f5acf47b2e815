package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lfpcrew/lfp-admin/internal/observability"
)

// The script counts one failure and returns the resulting cooldown in ms.
// Keeping the read-modify-write in Lua makes concurrent failures from
// several API replicas count exactly once each.
var loginGuardFailScript = redis.NewScript(`
local now_ms = tonumber(ARGV[1])
local base_ms = tonumber(ARGV[2])
local max_ms = tonumber(ARGV[3])
local window_ms = tonumber(ARGV[4])
local threshold = tonumber(ARGV[5])

local count = tonumber(redis.call("HGET", KEYS[1], "count") or "0")
local last_ms = tonumber(redis.call("HGET", KEYS[1], "last_ms") or "0")
if last_ms == 0 or (now_ms - last_ms) > window_ms then
  count = 0
end
count = count + 1

local wait = 0
if count > threshold then
  wait = base_ms * (2 ^ (count - threshold - 1))
  if wait > max_ms then
    wait = max_ms
  end
end
wait = math.floor(wait)

redis.call("HSET", KEYS[1], "count", tostring(count), "last_ms", tostring(now_ms), "until_ms", tostring(now_ms + wait))
redis.call("PEXPIRE", KEYS[1], window_ms + wait)
return wait
`)

type RedisLoginGuard struct {
	client redis.UniversalClient
	prefix string
	policy LoginGuardPolicy
	now    func() time.Time
}

func NewRedisLoginGuard(client redis.UniversalClient, prefix string, policy LoginGuardPolicy) *RedisLoginGuard {
	if prefix == "" {
		prefix = "login_guard"
	}
	return &RedisLoginGuard{
		client: client,
		prefix: prefix,
		policy: normalizeLoginGuardPolicy(policy),
		now:    time.Now,
	}
}

func (g *RedisLoginGuard) Cooldown(ctx context.Context, email, ip string) (time.Duration, error) {
	now := g.now()
	byEmail, err := g.remaining(ctx, g.key(emailKey(email)), now)
	if err != nil {
		return 0, err
	}
	byIP, err := g.remaining(ctx, g.key(ipKey(ip)), now)
	if err != nil {
		return 0, err
	}
	return max(byEmail, byIP), nil
}

func (g *RedisLoginGuard) RecordFailure(ctx context.Context, email, ip string) (time.Duration, error) {
	nowMS := g.now().UnixMilli()
	byEmail, err := g.fail(ctx, g.key(emailKey(email)), nowMS)
	if err != nil {
		observability.RecordLoginGuardEvent(ctx, "failure", "error")
		return 0, err
	}
	byIP, err := g.fail(ctx, g.key(ipKey(ip)), nowMS)
	if err != nil {
		observability.RecordLoginGuardEvent(ctx, "failure", "error")
		return 0, err
	}
	wait := max(byEmail, byIP)
	if wait > 0 {
		observability.RecordLoginGuardEvent(ctx, "failure", "cooldown")
		observability.RecordLoginGuardCooldown(ctx, wait)
	} else {
		observability.RecordLoginGuardEvent(ctx, "failure", "counted")
	}
	return wait, nil
}

func (g *RedisLoginGuard) Clear(ctx context.Context, email, ip string) error {
	err := g.client.Del(ctx, g.key(emailKey(email)), g.key(ipKey(ip))).Err()
	if err != nil {
		observability.RecordLoginGuardEvent(ctx, "clear", "error")
		return err
	}
	observability.RecordLoginGuardEvent(ctx, "clear", "success")
	return nil
}

func (g *RedisLoginGuard) fail(ctx context.Context, key string, nowMS int64) (time.Duration, error) {
	ms, err := loginGuardFailScript.Run(ctx, g.client, []string{key},
		nowMS,
		g.policy.BaseCooldown.Milliseconds(),
		g.policy.MaxCooldown.Milliseconds(),
		g.policy.Window.Milliseconds(),
		g.policy.Threshold,
	).Int64()
	if err != nil {
		return 0, fmt.Errorf("login guard: %w", err)
	}
	return time.Duration(max(ms, 0)) * time.Millisecond, nil
}

func (g *RedisLoginGuard) remaining(ctx context.Context, key string, now time.Time) (time.Duration, error) {
	values, err := g.client.HMGet(ctx, key, "last_ms", "until_ms").Result()
	if err != nil {
		return 0, fmt.Errorf("login guard: %w", err)
	}
	if len(values) != 2 || values[0] == nil || values[1] == nil {
		return 0, nil
	}
	lastMS, err := parseRedisMillis(values[0])
	if err != nil {
		return 0, err
	}
	untilMS, err := parseRedisMillis(values[1])
	if err != nil {
		return 0, err
	}
	nowMS := now.UnixMilli()
	if nowMS-lastMS > g.policy.Window.Milliseconds() || untilMS <= nowMS {
		return 0, nil
	}
	return time.Duration(untilMS-nowMS) * time.Millisecond, nil
}

func (g *RedisLoginGuard) key(dim string) string {
	return fmt.Sprintf("%s:%s", g.prefix, hashKey(dim))
}

// HMGET hands hash fields back as strings.
func parseRedisMillis(v any) (int64, error) {
	switch n := v.(type) {
	case string:
		return strconv.ParseInt(n, 10, 64)
	case int64:
		return n, nil
	default:
		return 0, fmt.Errorf("login guard: unexpected redis value %T", v)
	}
}
