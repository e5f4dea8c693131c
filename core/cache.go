package core

import (
	"context"
	"sync"
	"time"
)

// listCacheKey derives the cache key for a user's task listing.
func listCacheKey(userID string) string {
	return "all_tasks_" + userID
}

// ListCache holds the most recent task listing per user. Implementations must
// treat internal failures as a miss; a broken cache must never fail a request.
type ListCache interface {
	Get(ctx context.Context, userID string) ([]Task, bool)
	Set(ctx context.Context, userID string, tasks []Task)
	// Invalidate drops the user's entry. Every task mutation calls this so a
	// subsequent list read never serves a pre-mutation listing.
	Invalidate(ctx context.Context, userID string)
}

// MemoryListCache is a process-local ListCache with per-entry expiry. Each
// server instance has its own copy; cross-instance staleness is bounded by the
// TTL and is an accepted deployment limitation.
type MemoryListCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]memoryEntry
	now     func() time.Time
}

type memoryEntry struct {
	tasks     []Task
	expiresAt time.Time
}

func NewMemoryListCache(ttl time.Duration) *MemoryListCache {
	return &MemoryListCache{
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (c *MemoryListCache) Get(ctx context.Context, userID string) ([]Task, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := listCacheKey(userID)
	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().After(e.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}
	// Copy so callers cannot mutate the cached listing.
	tasks := make([]Task, len(e.tasks))
	copy(tasks, e.tasks)
	return tasks, true
}

func (c *MemoryListCache) Set(ctx context.Context, userID string, tasks []Task) {
	c.mu.Lock()
	defer c.mu.Unlock()

	stored := make([]Task, len(tasks))
	copy(stored, tasks)
	c.entries[listCacheKey(userID)] = memoryEntry{
		tasks:     stored,
		expiresAt: c.now().Add(c.ttl),
	}
}

func (c *MemoryListCache) Invalidate(ctx context.Context, userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, listCacheKey(userID))
}
