package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/N08I40K/schedule-parser-next/domain/app"
	"github.com/redis/go-redis/v9"
)

const scanBatch = 100

// RedisStore кеш в redis, ключи "<prefix>:<namespace>:<key>"
type RedisStore struct {
	client *redis.Client
	prefix string
}

var _ app.MemoCacheFactory = &RedisStore{}

func NewRedis(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client, prefix}
}

func (s *RedisStore) Namespace(name string) app.MemoCache {
	return &redisCache{client: s.client, prefix: s.prefix + ":" + name + ":"}
}

type redisCache struct {
	client *redis.Client
	prefix string
}

func (c *redisCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get %q: %w", key, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("decode %q: %w", key, err)
	}
	return true, nil
}

func (c *redisCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	// ttl == 0 в go-redis - ключ без срока жизни
	if err := c.client.Set(ctx, c.prefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}

// Reset удаляет все ключи пространства имён
func (c *redisCache) Reset(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, c.prefix+"*", scanBatch).Iterator()

	keys := make([]string, 0, scanBatch)
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
		if len(keys) == scanBatch {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("redis del: %w", err)
			}
			keys = keys[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan: %w", err)
	}

	if len(keys) > 0 {
		if err := c.client.Del(ctx, keys...).Err(); err != nil {
			return fmt.Errorf("redis del: %w", err)
		}
	}
	return nil
}
