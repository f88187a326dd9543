package repository

import (
	"context"
	"testing"
	"time"

	"rentshare/internal/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedisRepo(t *testing.T) *RedisRateLimitRepository {
	t.Helper()
	mr := miniredis.RunT(t)
	client := NewRedisClient(config.RedisConfig{Address: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisRateLimitRepository(client)
}

func TestRedisRateLimit_CountsWithinWindow(t *testing.T) {
	repo := setupRedisRepo(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, err := repo.CheckRateLimit(ctx, 1, 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed, "request %d must pass", i+1)
	}

	allowed, err := repo.CheckRateLimit(ctx, 1, 3, time.Minute)
	require.NoError(t, err)
	assert.False(t, allowed)

	// Другой пользователь считается отдельно.
	allowed, err = repo.CheckRateLimit(ctx, 2, 3, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestRedisRateLimit_WindowExpires(t *testing.T) {
	mr := miniredis.RunT(t)
	client := NewRedisClient(config.RedisConfig{Address: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	repo := NewRedisRateLimitRepository(client)
	ctx := context.Background()

	allowed, err := repo.CheckRateLimit(ctx, 1, 1, time.Second)
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = repo.CheckRateLimit(ctx, 1, 1, time.Second)
	require.NoError(t, err)
	assert.False(t, allowed)

	// После истечения TTL счетчик начинается заново.
	mr.FastForward(2 * time.Second)

	allowed, err = repo.CheckRateLimit(ctx, 1, 1, time.Second)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestRedisRateLimit_NilClient(t *testing.T) {
	repo := NewRedisRateLimitRepository(nil)
	_, err := repo.CheckRateLimit(context.Background(), 1, 1, time.Minute)
	assert.Error(t, err)
}

func TestPing(t *testing.T) {
	mr := miniredis.RunT(t)
	client := NewRedisClient(config.RedisConfig{Address: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	assert.NoError(t, Ping(context.Background(), client))

	mr.Close()
	assert.Error(t, Ping(context.Background(), client))
}
