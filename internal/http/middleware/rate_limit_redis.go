package middleware

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var errNilRedisClient = errors.New("rate limiter: redis client is nil")

// The log is a sorted set of admitted request times in milliseconds. Denied
// requests are not recorded, so a client hammering the API does not extend
// its own lockout.
var redisSlidingWindowScript = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])
redis.call("ZREMRANGEBYSCORE", key, "-inf", ARGV[5])
local count = redis.call("ZCARD", key)
local allowed = 0
if count < limit then
  redis.call("ZADD", key, ARGV[1], ARGV[4])
  count = count + 1
  allowed = 1
end
redis.call("PEXPIRE", key, ARGV[2])
local reset = window
local oldest = redis.call("ZRANGE", key, 0, 0, "WITHSCORES")
if oldest[2] then
  reset = tonumber(oldest[2]) + window - now
end
return {allowed, count, reset}
`)

// RedisSlidingWindowLimiter shares request logs across API replicas. Each
// scope gets its own prefix so login and API budgets never mix.
type RedisSlidingWindowLimiter struct {
	client redis.UniversalClient
	prefix string
	now    func() time.Time
}

func NewRedisSlidingWindowLimiter(client redis.UniversalClient, prefix string) *RedisSlidingWindowLimiter {
	if prefix == "" {
		prefix = "rl"
	}
	return &RedisSlidingWindowLimiter{client: client, prefix: prefix, now: time.Now}
}

func (l *RedisSlidingWindowLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (Decision, error) {
	if l.client == nil {
		return Decision{}, errNilRedisClient
	}
	if key == "" {
		key = "unknown"
	}
	windowMS := max(window.Milliseconds(), 1000)
	now := l.now()
	nowMS := now.UnixMilli()
	member := strconv.FormatInt(now.UnixNano(), 36) + "-" + uuid.NewString()[:8]
	args := []any{nowMS, windowMS, limit, member, nowMS - windowMS}
	raw, err := redisSlidingWindowScript.Run(ctx, l.client, []string{l.prefix + ":" + key}, args...).Slice()
	if err != nil {
		return Decision{}, fmt.Errorf("rate limiter script: %w", err)
	}
	if len(raw) != 3 {
		return Decision{}, fmt.Errorf("rate limiter script: expected 3 values, got %d", len(raw))
	}
	var vals [3]int64
	for i, v := range raw {
		if vals[i], err = parseRedisInt64(v); err != nil {
			return Decision{}, err
		}
	}
	allowed, count, resetMS := vals[0] == 1, vals[1], vals[2]
	if resetMS <= 0 {
		resetMS = windowMS
	}
	reset := time.Duration(resetMS) * time.Millisecond
	d := Decision{
		Allowed:   allowed,
		Remaining: int(max(int64(limit)-count, 0)),
		ResetAt:   now.Add(reset),
	}
	if !allowed {
		d.RetryAfter = reset
	}
	return d, nil
}

func parseRedisInt64(v any) (int64, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	case uint64:
		if n > math.MaxInt64 {
			return 0, fmt.Errorf("redis integer overflows int64: %d", n)
		}
		return int64(n), nil
	default:
		return 0, fmt.Errorf("unexpected redis reply %T", v)
	}
}
