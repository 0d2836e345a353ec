package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// fixedWindowScript counts one action inside a fixed window atomically.
// KEYS[1] = window key
// ARGV[1] = window length in milliseconds
// ARGV[2] = max actions per window
// Returns {allowed, remaining, retry_after_ms}. A rejected call leaves the
// counter untouched.
var fixedWindowScript = redis.NewScript(`
local key = KEYS[1]
local window_ms = tonumber(ARGV[1])
local max = tonumber(ARGV[2])

local count = tonumber(redis.call("GET", key) or "0")
if count >= max then
    local ttl = redis.call("PTTL", key)
    if ttl < 0 then
        ttl = window_ms
    end
    return {0, 0, ttl}
end

count = redis.call("INCR", key)
if count == 1 then
    redis.call("PEXPIRE", key, window_ms)
end

return {1, max - count, 0}
`)

// RedisLimiter is a fixed-window limiter shared across instances.
type RedisLimiter struct {
	client *redis.Client
}

// Make sure we conform to the interface.
var _ Limiter = (*RedisLimiter)(nil)

// NewRedisLimiter connects to the Redis instance at addr.
func NewRedisLimiter(addr, password string, db int) *RedisLimiter {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisLimiter{client: rdb}
}

// Check runs the window script for the actor and action.
func (l *RedisLimiter) Check(ctx context.Context, actor, action string, policy Policy) (*Result, error) {
	key := fmt.Sprintf("ratelimit:%s:%s", action, actor)

	res, err := fixedWindowScript.Run(ctx, l.client, []string{key}, policy.Window.Milliseconds(), policy.Max).Result()
	if err != nil {
		return nil, fmt.Errorf("redis limiter error: %w", err)
	}

	values, ok := res.([]interface{})
	if !ok || len(values) != 3 {
		return nil, fmt.Errorf("unexpected response from limiter script")
	}

	allowed, _ := values[0].(int64)
	remaining, _ := values[1].(int64)
	retryMs, _ := values[2].(int64)

	return &Result{
		Allowed:    allowed == 1,
		Remaining:  remaining,
		RetryAfter: time.Duration(retryMs) * time.Millisecond,
	}, nil
}
