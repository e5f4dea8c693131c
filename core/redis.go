package core

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient returns a configured go-redis client from URL (e.g., redis://localhost:6379/0).
func NewRedisClient(redisURL string) (*redis.Client, error) {
	if redisURL == "" {
		return nil, errors.New("empty redis url")
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return client, nil
}

// RedisListCache implements ListCache on Redis so horizontally scaled
// instances share one listing cache. Listings are stored as JSON with a
// server-side TTL; any Redis or decode failure degrades to a cache miss.
type RedisListCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisListCache(client *redis.Client, ttl time.Duration) *RedisListCache {
	return &RedisListCache{client: client, ttl: ttl}
}

func (c *RedisListCache) Get(ctx context.Context, userID string) ([]Task, bool) {
	val, err := c.client.Get(ctx, listCacheKey(userID)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("list cache get failed for user %s: %v", userID, err)
		}
		return nil, false
	}
	var tasks []Task
	if err := json.Unmarshal([]byte(val), &tasks); err != nil {
		log.Printf("list cache entry corrupt for user %s: %v", userID, err)
		_ = c.client.Del(ctx, listCacheKey(userID)).Err()
		return nil, false
	}
	return tasks, true
}

func (c *RedisListCache) Set(ctx context.Context, userID string, tasks []Task) {
	data, err := json.Marshal(tasks)
	if err != nil {
		log.Printf("list cache encode failed for user %s: %v", userID, err)
		return
	}
	if err := c.client.Set(ctx, listCacheKey(userID), data, c.ttl).Err(); err != nil {
		log.Printf("list cache set failed for user %s: %v", userID, err)
	}
}

func (c *RedisListCache) Invalidate(ctx context.Context, userID string) {
	if err := c.client.Del(ctx, listCacheKey(userID)).Err(); err != nil {
		log.Printf("list cache invalidate failed for user %s: %v", userID, err)
	}
}
