package ratelimit

import (
	"fmt"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryRateLimiter_IsPerKey(t *testing.T) {
	limiter := NewInMemoryRateLimiter(1, time.Second)

	limited, err := limiter.IsLimited("client-a")
	require.NoError(t, err)
	assert.False(t, limited, "first request for client-a")

	limited, _ = limiter.IsLimited("client-a")
	assert.True(t, limited, "second immediate request for client-a")

	limited, _ = limiter.IsLimited("client-b")
	assert.False(t, limited, "client-b has its own bucket")
}

func TestInMemoryRateLimiter_RecoversAfterWindow(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter := NewInMemoryRateLimiter(2, time.Minute)
	limiter.now = func() time.Time { return now }

	for range 2 {
		limited, _ := limiter.IsLimited("ip")
		require.False(t, limited)
	}
	limited, _ := limiter.IsLimited("ip")
	assert.True(t, limited)

	now = now.Add(time.Minute)
	limited, _ = limiter.IsLimited("ip")
	assert.False(t, limited)
}

func TestInMemoryRateLimiter_SweepsIdleKeys(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter := NewInMemoryRateLimiter(1, time.Second)
	limiter.now = func() time.Time { return now }

	_, _ = limiter.IsLimited("stale")
	now = now.Add(time.Hour)

	for i := range sweepEvery - 1 {
		_, _ = limiter.IsLimited(fmt.Sprintf("fresh-%d", i%10))
	}

	assert.Equal(t, 10, limiter.Size())
}

func TestRedisRateLimiter_ScopedKeys(t *testing.T) {
	forms := NewRateLimiter(&RateLimitConfig{Requests: 1, Window: time.Minute, Redis: redis.NewClient(&redis.Options{}), Scope: "forms"}).(*RedisRateLimiter)
	global := NewRedisRateLimiter(nil, 1, time.Minute, nil)

	assert.Equal(t, "ratelimit:forms:203.0.113.9", forms.fullKey("ratelimit:203.0.113.9"))
	assert.Equal(t, "ratelimit:203.0.113.9", global.fullKey("203.0.113.9"))
}

func TestRedisRateLimiter_UnreachableRedisIsAnError(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 50 * time.Millisecond, MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })

	limited, err := NewRedisRateLimiter(client, 1, time.Minute, nil).IsLimited("ip")
	assert.Error(t, err)
	assert.False(t, limited)
}

func TestNewRateLimiter_InMemoryWithoutRedis(t *testing.T) {
	limiter := NewRateLimiter(&RateLimitConfig{Requests: 5, Window: time.Minute, Scope: "forms"})

	require.IsType(t, &InMemoryRateLimiter{}, limiter)
	requests, window := limiter.GetLimitDetails()
	assert.Equal(t, 5, requests)
	assert.Equal(t, time.Minute, window)
}
