package repository

import (
	"context"
	"sync/atomic"
	"time"

	"rentshare/internal/domain"

	"github.com/rs/zerolog"
)

// recoveryInterval — пауза перед повторной попыткой вернуться на primary.
const recoveryInterval = time.Minute

// FailoverRateLimitRepository ходит в primary (Redis), при его падении
// прозрачно переключается на локальный счетчик и периодически пробует
// вернуться обратно.
type FailoverRateLimitRepository struct {
	primary  domain.RateLimitRepository
	fallback domain.RateLimitRepository
	logger   *zerolog.Logger

	isDown    atomic.Bool
	lastCheck atomic.Int64 // unix nanos
}

func NewFailoverRateLimitRepository(primary, fallback domain.RateLimitRepository, logger *zerolog.Logger) *FailoverRateLimitRepository {
	return &FailoverRateLimitRepository{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

func (r *FailoverRateLimitRepository) CheckRateLimit(ctx context.Context, userID int64, limit int, window time.Duration) (bool, error) {
	if !r.isDown.Load() {
		allowed, err := r.primary.CheckRateLimit(ctx, userID, limit, window)
		if err == nil {
			return allowed, nil
		}
		r.logger.Error().Err(err).Msg("primary rate limit repository failed, falling back to memory")
		r.isDown.Store(true)
		r.lastCheck.Store(time.Now().UnixNano())
	}

	if r.isDown.Load() && time.Since(time.Unix(0, r.lastCheck.Load())) > recoveryInterval {
		allowed, err := r.primary.CheckRateLimit(ctx, userID, limit, window)
		if err == nil {
			r.isDown.Store(false)
			return allowed, nil
		}
		r.lastCheck.Store(time.Now().UnixNano())
	}

	return r.fallback.CheckRateLimit(ctx, userID, limit, window)
}
