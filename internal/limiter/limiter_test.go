package limiter

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(t *testing.T, maxAttempts int, cooldown time.Duration) (LoginLimiter, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)

	lim, err := NewRedisLimiter("redis://"+mr.Addr(), "", maxAttempts, cooldown)
	require.NoError(t, err)
	t.Cleanup(func() { _ = lim.Close() })

	return lim, mr
}

func TestNewRedisLimiter_BadURL(t *testing.T) {
	t.Parallel()

	_, err := NewRedisLimiter("not-a-url", "", 3, time.Minute)
	require.Error(t, err)
}

func TestNewRedisLimiter_Unreachable(t *testing.T) {
	t.Parallel()

	// Ping на старте должен провалиться.
	_, err := NewRedisLimiter("redis://127.0.0.1:1", "", 3, time.Minute)
	require.Error(t, err)
}

func TestLimiter_AllowBelowLimit(t *testing.T) {
	t.Parallel()

	lim, _ := newTestLimiter(t, 3, time.Minute)
	ctx := context.Background()

	// Без единой неудачи ключа нет — вход разрешён.
	require.NoError(t, lim.Allow(ctx, "user@example.com"))

	require.NoError(t, lim.Fail(ctx, "user@example.com"))
	require.NoError(t, lim.Fail(ctx, "user@example.com"))
	require.NoError(t, lim.Allow(ctx, "user@example.com"))
}

func TestLimiter_RateLimitedAtLimit(t *testing.T) {
	t.Parallel()

	lim, _ := newTestLimiter(t, 3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, lim.Fail(ctx, "user@example.com"))
	}

	err := lim.Allow(ctx, "user@example.com")
	require.ErrorIs(t, err, ErrRateLimited)

	// Другой ключ лимитом не затронут.
	require.NoError(t, lim.Allow(ctx, "other@example.com"))
}

func TestLimiter_ResetClearsCounter(t *testing.T) {
	t.Parallel()

	lim, _ := newTestLimiter(t, 2, time.Minute)
	ctx := context.Background()

	require.NoError(t, lim.Fail(ctx, "user@example.com"))
	require.NoError(t, lim.Fail(ctx, "user@example.com"))
	require.ErrorIs(t, lim.Allow(ctx, "user@example.com"), ErrRateLimited)

	require.NoError(t, lim.Reset(ctx, "user@example.com"))
	require.NoError(t, lim.Allow(ctx, "user@example.com"))
}

func TestLimiter_CooldownExpires(t *testing.T) {
	t.Parallel()

	lim, mr := newTestLimiter(t, 2, time.Minute)
	ctx := context.Background()

	require.NoError(t, lim.Fail(ctx, "user@example.com"))
	require.NoError(t, lim.Fail(ctx, "user@example.com"))
	require.ErrorIs(t, lim.Allow(ctx, "user@example.com"), ErrRateLimited)

	// TTL выставлен на первом инкременте; по его истечении счётчик исчезает.
	mr.FastForward(2 * time.Minute)
	require.NoError(t, lim.Allow(ctx, "user@example.com"))
}

func TestLimiter_UnavailableAfterClose(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	lim, err := NewRedisLimiter("redis://"+mr.Addr(), "", 3, time.Minute)
	require.NoError(t, err)

	mr.Close()

	require.ErrorIs(t, lim.Fail(context.Background(), "user@example.com"), ErrUnavailable)
	require.ErrorIs(t, lim.Allow(context.Background(), "user@example.com"), ErrUnavailable)
	require.ErrorIs(t, lim.Reset(context.Background(), "user@example.com"), ErrUnavailable)

	_ = lim.Close()
}
