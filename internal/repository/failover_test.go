package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRateLimiter struct {
	allowed bool
	err     error
	calls   int
}

func (s *stubRateLimiter) CheckRateLimit(context.Context, int64, int, time.Duration) (bool, error) {
	s.calls++
	return s.allowed, s.err
}

func TestFailover_PrimaryHealthy(t *testing.T) {
	primary := &stubRateLimiter{allowed: true}
	fallback := &stubRateLimiter{allowed: false}
	logger := zerolog.Nop()

	repo := NewFailoverRateLimitRepository(primary, fallback, &logger)

	allowed, err := repo.CheckRateLimit(context.Background(), 1, 10, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.Equal(t, 1, primary.calls)
	assert.Zero(t, fallback.calls)
}

func TestFailover_SwitchesToFallback(t *testing.T) {
	primary := &stubRateLimiter{err: errors.New("connection refused")}
	fallback := &stubRateLimiter{allowed: true}
	logger := zerolog.Nop()

	repo := NewFailoverRateLimitRepository(primary, fallback, &logger)
	ctx := context.Background()

	allowed, err := repo.CheckRateLimit(ctx, 1, 10, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.Equal(t, 1, fallback.calls)

	// Пока интервал восстановления не прошел, primary не трогаем.
	_, err = repo.CheckRateLimit(ctx, 1, 10, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 2, fallback.calls)
}

func TestFailover_RecoversAfterInterval(t *testing.T) {
	primary := &stubRateLimiter{err: errors.New("connection refused")}
	fallback := &stubRateLimiter{allowed: true}
	logger := zerolog.Nop()

	repo := NewFailoverRateLimitRepository(primary, fallback, &logger)
	ctx := context.Background()

	_, err := repo.CheckRateLimit(ctx, 1, 10, time.Minute)
	require.NoError(t, err)
	assert.True(t, repo.isDown.Load())

	// Имитируем давнее падение и чиним primary.
	repo.lastCheck.Store(time.Now().Add(-2 * recoveryInterval).UnixNano())
	primary.err = nil
	primary.allowed = true

	allowed, err := repo.CheckRateLimit(ctx, 1, 10, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.False(t, repo.isDown.Load())
}
