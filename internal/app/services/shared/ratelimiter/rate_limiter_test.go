package ratelimiter

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeRedisRepository struct {
	counters map[string]int64
	ttls     map[string]time.Duration
}

func newFakeRedisRepository() *fakeRedisRepository {
	return &fakeRedisRepository{counters: make(map[string]int64), ttls: make(map[string]time.Duration)}
}

func (r *fakeRedisRepository) Delete(_ context.Context, key string) error {
	delete(r.counters, key)
	return nil
}

func (r *fakeRedisRepository) Set(context.Context, string, interface{}, time.Duration) error {
	return nil
}

func (r *fakeRedisRepository) Get(context.Context, string) (string, error) {
	return "", nil
}

func (r *fakeRedisRepository) Increment(_ context.Context, key string) (int64, error) {
	r.counters[key]++
	return r.counters[key], nil
}

func (r *fakeRedisRepository) Expire(_ context.Context, key string, exp time.Duration) error {
	r.ttls[key] = exp
	return nil
}

func (r *fakeRedisRepository) TrySetNX(context.Context, string, interface{}, time.Duration) (bool, error) {
	return true, nil
}

func TestApplyResourceLimiter(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, time.September, 7, 8, 0, 30, 0, time.UTC)

	input := func() *ApplyResourceLimiterInput {
		return &ApplyResourceLimiterInput{
			ResourceName:      "+593991234567",
			LimiterGroupName:  "whatsapp-outbound",
			WindowDurationSec: 60,
			MaxQuota:          2,
			NowUTC:            now,
		}
	}

	t.Run("allows up to the quota then blocks", func(t *testing.T) {
		limiter := NewResourceLimiter(newFakeRedisRepository(), zap.NewNop())

		for i := 0; i < 2; i++ {
			out, err := limiter.ApplyResourceLimiter(ctx, input())
			assert.NoError(t, err)
			assert.True(t, out.Allowed, "request %d is within quota", i+1)
		}

		out, err := limiter.ApplyResourceLimiter(ctx, input())
		assert.NoError(t, err)
		assert.False(t, out.Allowed)
		assert.Greater(t, out.RetryAfterSecs, 0)
	})

	t.Run("a new window resets the count", func(t *testing.T) {
		limiter := NewResourceLimiter(newFakeRedisRepository(), zap.NewNop())

		for i := 0; i < 3; i++ {
			_, err := limiter.ApplyResourceLimiter(ctx, input())
			assert.NoError(t, err)
		}

		next := input()
		next.NowUTC = now.Add(time.Minute)
		out, err := limiter.ApplyResourceLimiter(ctx, next)
		assert.NoError(t, err)
		assert.True(t, out.Allowed)
	})

	t.Run("resources count independently", func(t *testing.T) {
		limiter := NewResourceLimiter(newFakeRedisRepository(), zap.NewNop())

		first := input()
		first.MaxQuota = 1
		out, err := limiter.ApplyResourceLimiter(ctx, first)
		assert.NoError(t, err)
		assert.True(t, out.Allowed)

		other := input()
		other.MaxQuota = 1
		other.ResourceName = "+593998887766"
		out, err = limiter.ApplyResourceLimiter(ctx, other)
		assert.NoError(t, err)
		assert.True(t, out.Allowed, "a different recipient has its own counter")
	})

	t.Run("zero quota disables limiting", func(t *testing.T) {
		limiter := NewResourceLimiter(newFakeRedisRepository(), zap.NewNop())

		in := input()
		in.MaxQuota = 0
		for i := 0; i < 10; i++ {
			out, err := limiter.ApplyResourceLimiter(ctx, in)
			assert.NoError(t, err)
			assert.True(t, out.Allowed)
		}
	})

	t.Run("the counter key carries a window-sized ttl", func(t *testing.T) {
		redis := newFakeRedisRepository()
		limiter := NewResourceLimiter(redis, zap.NewNop())

		_, err := limiter.ApplyResourceLimiter(ctx, input())
		assert.NoError(t, err)

		assert.Len(t, redis.ttls, 1)
		for _, ttl := range redis.ttls {
			assert.Equal(t, 61*time.Second, ttl)
		}
	})
}
