package redis

import (
	"context"
	"fmt"
	"time"

	"client-ledger/internal/core/ports"

	goredis "github.com/redis/go-redis/v9"
)

const rateLimitPrefix = "ledger:ratelimit:"

// RateLimitStore implements ports.RateLimiter with fixed-window counters.
type RateLimitStore struct {
	client goredis.UniversalClient
	now    func() time.Time
}

func NewRateLimitStore(client goredis.UniversalClient) *RateLimitStore {
	return &RateLimitStore{client: client, now: time.Now}
}

// Allow increments the counter for key in the current window. The key is
// scoped by window index, so INCR and PEXPIRE run in one MULTI and every
// window's key expires on its own.
func (s *RateLimitStore) Allow(ctx context.Context, key string, limit int64, window time.Duration) (*ports.RateLimitResult, error) {
	if window < time.Millisecond {
		return nil, fmt.Errorf("rate limit window too small: %s", window)
	}

	windowMs := window.Milliseconds()
	nowMs := s.now().UnixMilli()
	windowID := nowMs / windowMs
	redisKey := fmt.Sprintf("%s%s:%d", rateLimitPrefix, key, windowID)

	var incr *goredis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		incr = pipe.Incr(ctx, redisKey)
		pipe.PExpire(ctx, redisKey, window+time.Second)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("redis rate limit incr: %w", err)
	}
	count := incr.Val()

	remaining := limit - count
	if remaining < 0 {
		remaining = 0
	}

	// Round the window end up to whole seconds for the Reset header.
	resetMs := (windowID + 1) * windowMs
	resetAt := (resetMs + 999) / 1000

	return &ports.RateLimitResult{
		Allowed:   count <= limit,
		Limit:     limit,
		Remaining: remaining,
		ResetAt:   resetAt,
	}, nil
}
