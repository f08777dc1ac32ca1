package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// redisKV implements KV on a redis instance. Useful when the storefront
// state should survive the local filesystem, for example inside
// short-lived containers.
type redisKV struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// NewRedisKV creates a redis-backed KV and verifies connectivity.
// A ttl of 0 stores keys without expiry.
func NewRedisKV(ctx context.Context, addr, password string, db int, ttl time.Duration, logger zerolog.Logger) (KV, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}

	return &redisKV{
		client: client,
		ttl:    ttl,
		logger: logger.With().Str("component", "redis-storage").Logger(),
	}, nil
}

// NewRedisKVFromClient wraps an existing client. The caller keeps
// ownership of the client's lifecycle.
func NewRedisKVFromClient(client *redis.Client, ttl time.Duration, logger zerolog.Logger) KV {
	return &redisKV{
		client: client,
		ttl:    ttl,
		logger: logger.With().Str("component", "redis-storage").Logger(),
	}
}

func (s *redisKV) redisKey(key string) string {
	return "shopfront:" + key
}

func (s *redisKV) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.redisKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("redis get failed")
		return nil, fmt.Errorf("failed to get %s from redis: %w", key, err)
	}
	return data, nil
}

func (s *redisKV) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.redisKey(key), value, s.ttl).Err(); err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("redis set failed")
		return fmt.Errorf("failed to set %s in redis: %w", key, err)
	}
	return nil
}

func (s *redisKV) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.redisKey(key)).Err(); err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("redis delete failed")
		return fmt.Errorf("failed to delete %s from redis: %w", key, err)
	}
	return nil
}
