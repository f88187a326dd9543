package repository

import (
	"context"
	"sync"
	"time"
)

// MemoryRateLimitRepository — локальный fallback-счетчик запросов.
type MemoryRateLimitRepository struct {
	entries sync.Map
}

func NewMemoryRateLimitRepository() *MemoryRateLimitRepository {
	return &MemoryRateLimitRepository{}
}

type rateLimitEntry struct {
	mu        sync.Mutex
	count     int
	expiresAt time.Time
}

func (r *MemoryRateLimitRepository) CheckRateLimit(_ context.Context, userID int64, limit int, window time.Duration) (bool, error) {
	now := time.Now()

	val, _ := r.entries.LoadOrStore(userID, &rateLimitEntry{})
	entry := val.(*rateLimitEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if now.After(entry.expiresAt) {
		entry.count = 0
		entry.expiresAt = now.Add(window)
	}
	entry.count++

	return entry.count <= limit, nil
}
