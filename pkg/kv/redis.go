package kv

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig configures the Redis-backed store.
type RedisConfig struct {
	ConnectionURL  string        `env:"STOREFRONT_REDIS_URL" envDefault:"redis://localhost:6379/0"`
	RetryAttempts  int           `env:"STOREFRONT_REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"STOREFRONT_REDIS_RETRY_INTERVAL" envDefault:"5s"`
	ConnectTimeout time.Duration `env:"STOREFRONT_REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
	KeyPrefix      string        `env:"STOREFRONT_REDIS_KEY_PREFIX" envDefault:"storefront:"`
}

// RedisStore keeps values in a Redis server, namespaced by a key prefix so
// several storefront instances can share one database.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// ConnectRedis establishes a Redis connection and wraps it in a RedisStore.
// It retries up to cfg.RetryAttempts times with cfg.RetryInterval between
// attempts before giving up.
func ConnectRedis(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	opt, err := redis.ParseURL(cfg.ConnectionURL)
	if err != nil {
		return nil, errors.Join(ErrStoreUnavailable, err)
	}

	attempts := max(cfg.RetryAttempts, 1)
	for i := 0; i < attempts; i++ {
		client := redis.NewClient(opt)
		if err := client.Ping(ctx).Err(); err == nil {
			return NewRedisStore(client, cfg.KeyPrefix), nil
		}
		_ = client.Close()

		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrStoreUnavailable, ctx.Err())
		case <-time.After(cfg.RetryInterval):
		}
	}

	return nil, ErrStoreUnavailable
}

// NewRedisStore wraps an existing Redis client. The prefix is prepended to
// every key.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

// Get returns the value stored under key, or ErrKeyNotFound.
func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", ErrEmptyKey
	}

	value, err := s.client.Get(ctx, s.prefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrKeyNotFound
		}
		return "", errors.Join(ErrStoreUnavailable, err)
	}
	return value, nil
}

// Set stores value under key without expiry. Cart partitions and credentials
// live until explicitly removed.
func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}

	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}

// Remove deletes the value stored under key.
func (s *RedisStore) Remove(ctx context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}

	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}

// Close releases the underlying Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
