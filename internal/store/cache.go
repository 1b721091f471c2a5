package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// LikesCache caches album like counts. GetLikes reports ok=false on a miss.
type LikesCache interface {
	GetLikes(ctx context.Context, albumID string) (count int, ok bool, err error)
	SetLikes(ctx context.Context, albumID string, count int) error
	InvalidateLikes(ctx context.Context, albumID string) error
}

type RedisLikesCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisLikesCache(rdb *redis.Client, ttl time.Duration) *RedisLikesCache {
	return &RedisLikesCache{rdb: rdb, ttl: ttl}
}

func likesKey(albumID string) string {
	return "albums:" + albumID + ":likes"
}

func (c *RedisLikesCache) GetLikes(ctx context.Context, albumID string) (int, bool, error) {
	val, err := c.rdb.Get(ctx, likesKey(albumID)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("likes cache: get: %w", err)
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, false, fmt.Errorf("likes cache: parse %q: %w", val, err)
	}
	return n, true, nil
}

func (c *RedisLikesCache) SetLikes(ctx context.Context, albumID string, count int) error {
	if err := c.rdb.Set(ctx, likesKey(albumID), count, c.ttl).Err(); err != nil {
		return fmt.Errorf("likes cache: set: %w", err)
	}
	return nil
}

func (c *RedisLikesCache) InvalidateLikes(ctx context.Context, albumID string) error {
	if err := c.rdb.Del(ctx, likesKey(albumID)).Err(); err != nil {
		return fmt.Errorf("likes cache: del: %w", err)
	}
	return nil
}
