package limiter

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestLimiter(t *testing.T, limit int, window time.Duration) (*LoginLimiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewLoginLimiter(client, limit, window, zap.NewNop()), mr
}

func TestAllowWithinBudget(t *testing.T) {
	l, _ := newTestLimiter(t, 3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		assert.True(t, l.Allow(ctx, "alice@example.com"))
	}
	assert.False(t, l.Allow(ctx, "alice@example.com"))
}

func TestAllowTracksEmailsIndependently(t *testing.T) {
	l, _ := newTestLimiter(t, 1, time.Minute)
	ctx := context.Background()

	assert.True(t, l.Allow(ctx, "alice@example.com"))
	assert.False(t, l.Allow(ctx, "alice@example.com"))
	assert.True(t, l.Allow(ctx, "bob@example.com"))
}

func TestAllowAfterWindowExpires(t *testing.T) {
	l, mr := newTestLimiter(t, 1, time.Minute)
	ctx := context.Background()

	assert.True(t, l.Allow(ctx, "alice@example.com"))
	assert.False(t, l.Allow(ctx, "alice@example.com"))

	mr.FastForward(2 * time.Minute)
	assert.True(t, l.Allow(ctx, "alice@example.com"))
}

func TestResetClearsBudget(t *testing.T) {
	l, _ := newTestLimiter(t, 1, time.Minute)
	ctx := context.Background()

	assert.True(t, l.Allow(ctx, "alice@example.com"))
	l.Reset(ctx, "alice@example.com")
	assert.True(t, l.Allow(ctx, "alice@example.com"))
}

func TestFailsOpenWithoutRedis(t *testing.T) {
	l := NewLoginLimiter(nil, 1, time.Minute, zap.NewNop())

	assert.True(t, l.Allow(context.Background(), "alice@example.com"))
	assert.True(t, l.Allow(context.Background(), "alice@example.com"))
}

func TestFailsOpenWhenRedisDown(t *testing.T) {
	l, mr := newTestLimiter(t, 1, time.Minute)
	mr.Close()

	assert.True(t, l.Allow(context.Background(), "alice@example.com"))
}
