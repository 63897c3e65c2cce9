package store

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/redis/go-redis/v9"
)

// keyPrefix namespaces our keys so a shared Redis instance stays tidy.
const keyPrefix = "courtside:"

type redisKV struct {
	client *redis.Client
}

// NewRedis creates a KV backed by a Redis instance. It is an alternative
// to the SQLite backend for deployments that already run Redis.
func NewRedis(addr string) KV {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &redisKV{client: client}
}

var _ KV = (*redisKV)(nil)

func (r *redisKV) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := r.client.Get(ctx, keyPrefix+key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		log.Error("Failed to read key from redis", "error", err, "key", key)
		return nil, fmt.Errorf("failed to read key %q: %w", key, err)
	}
	return []byte(value), nil
}

func (r *redisKV) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, keyPrefix+key, string(value), 0).Err(); err != nil {
		log.Error("Failed to write key to redis", "error", err, "key", key)
		return fmt.Errorf("failed to write key %q: %w", key, err)
	}
	return nil
}

func (r *redisKV) Has(ctx context.Context, key string) (bool, error) {
	n, err := r.client.Exists(ctx, keyPrefix+key).Result()
	if err != nil {
		log.Error("Failed to check key in redis", "error", err, "key", key)
		return false, fmt.Errorf("failed to check key %q: %w", key, err)
	}
	return n > 0, nil
}

func (r *redisKV) Remove(ctx context.Context, key string) (bool, error) {
	n, err := r.client.Del(ctx, keyPrefix+key).Result()
	if err != nil {
		log.Error("Failed to remove key from redis", "error", err, "key", key)
		return false, fmt.Errorf("failed to remove key %q: %w", key, err)
	}
	return n > 0, nil
}

func (r *redisKV) Keys(ctx context.Context) ([]string, error) {
	raw, err := r.client.Keys(ctx, keyPrefix+"*").Result()
	if err != nil {
		log.Error("Failed to list keys in redis", "error", err)
		return nil, err
	}
	keys := make([]string, 0, len(raw))
	for _, k := range raw {
		keys = append(keys, k[len(keyPrefix):])
	}
	return keys, nil
}

func (r *redisKV) Clear(ctx context.Context) error {
	keys, err := r.client.Keys(ctx, keyPrefix+"*").Result()
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return r.client.Del(ctx, keys...).Err()
}
