package cache

import (
	"context"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"

	"github.com/fieldtrace-io/fieldtrace/internal/config"
)

func NewRedis(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return client, nil
}

// LookupCache caches dropdown option lists. A cache miss or a cache
// error are both treated as "not cached"; the lookup falls through to
// the database either way.
type LookupCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewLookupCache(rdb *redis.Client, ttl time.Duration) *LookupCache {
	return &LookupCache{rdb: rdb, ttl: ttl}
}

func (c *LookupCache) Get(ctx context.Context, key string) ([]string, bool) {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var values []string
	if err := sonic.Unmarshal(raw, &values); err != nil {
		return nil, false
	}
	return values, true
}

func (c *LookupCache) Set(ctx context.Context, key string, values []string) {
	raw, err := sonic.Marshal(values)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, key, raw, c.ttl)
}

// InvalidatePrefix drops all cached lists under a prefix. Called after
// asset writes so new distinct values show up within one request.
func (c *LookupCache) InvalidatePrefix(ctx context.Context, prefix string) {
	iter := c.rdb.Scan(ctx, 0, prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		c.rdb.Del(ctx, iter.Val())
	}
}
