package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	RatingCacheTTL = 5 * time.Minute
	AuthorCacheTTL = 15 * time.Minute
)

// CacheService provides a Redis cache-aside layer for rating snapshots and
// author aggregates.
type CacheService struct {
	rdb *redis.Client
}

// NewCacheService creates a new CacheService. If redisURL is empty or the
// connection fails, it returns a CacheService with a nil client (cache
// operations become no-ops).
func NewCacheService(redisURL string) *CacheService {
	if redisURL == "" {
		log.Println("redis: no URL configured, caching disabled")
		return &CacheService{}
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("redis: invalid URL %q, caching disabled: %v", redisURL, err)
		return &CacheService{}
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("redis: connection failed, caching disabled: %v", err)
		return &CacheService{}
	}

	log.Println("redis: connected, caching enabled")
	return &CacheService{rdb: rdb}
}

// Client returns the underlying Redis client (for health checks). May be nil.
func (c *CacheService) Client() *redis.Client {
	return c.rdb
}

// GetRating retrieves a cached rating snapshot. Returns nil if not cached or
// the cache is disabled.
func (c *CacheService) GetRating(ctx context.Context, pairID string) ([]byte, error) {
	if c.rdb == nil {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, ratingKey(pairID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	return data, err
}

// SetRating stores a rating snapshot in cache.
func (c *CacheService) SetRating(ctx context.Context, pairID string, data interface{}) error {
	if c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, ratingKey(pairID), b, RatingCacheTTL).Err()
}

// InvalidateRating removes a pair's rating from cache (called after votes).
func (c *CacheService) InvalidateRating(ctx context.Context, pairID string) error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctx, ratingKey(pairID)).Err()
}

// GetAuthor retrieves cached author stats. Returns nil if not cached.
func (c *CacheService) GetAuthor(ctx context.Context, authorID uint64) ([]byte, error) {
	if c.rdb == nil {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, authorKey(authorID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	return data, err
}

// SetAuthor stores author stats in cache.
func (c *CacheService) SetAuthor(ctx context.Context, authorID uint64, data interface{}) error {
	if c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, authorKey(authorID), b, AuthorCacheTTL).Err()
}

// InvalidateAuthor removes an author's stats from cache.
func (c *CacheService) InvalidateAuthor(ctx context.Context, authorID uint64) error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctx, authorKey(authorID)).Err()
}

// Close shuts down the Redis connection.
func (c *CacheService) Close() error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

func ratingKey(pairID string) string {
	return fmt.Sprintf("rating:%s", pairID)
}

func authorKey(authorID uint64) string {
	return fmt.Sprintf("author:%d", authorID)
}
