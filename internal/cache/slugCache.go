package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// KeyPrefixSlug prefixes every slug -> category name entry.
const KeyPrefixSlug = "bookmark:slug:"

func SlugKey(slug string) string {
	return KeyPrefixSlug + slug
}

// SlugCache stores slug resolutions in Redis. It satisfies services.SlugCache.
type SlugCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewSlugCache(client redis.UniversalClient, ttl time.Duration) *SlugCache {
	return &SlugCache{client: client, ttl: ttl}
}

// GetCategoryName reports a miss as ok == false with a nil error.
func (c *SlugCache) GetCategoryName(ctx context.Context, slug string) (string, bool, error) {
	name, err := c.client.Get(ctx, SlugKey(slug)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get cached slug: %w", err)
	}
	return name, true, nil
}

func (c *SlugCache) SetCategoryName(ctx context.Context, slug, name string) error {
	if err := c.client.Set(ctx, SlugKey(slug), name, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache slug: %w", err)
	}
	return nil
}

// Flush removes every cached slug resolution.
func (c *SlugCache) Flush(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, KeyPrefixSlug+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to delete cache key: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to flush slug cache: %w", err)
	}
	return nil
}
