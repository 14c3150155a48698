package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis"
	"go.uber.org/zap"
)

type RedisRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewRedisRepository(client *redis.Client, logger *zap.Logger) *RedisRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisRepository{client: client, logger: logger}
}

// NewDefaultRedisRepository targets localhost:6379, database 0. No connection
// is made until the first command.
func NewDefaultRedisRepository(logger *zap.Logger) *RedisRepository {
	cfg := DefaultRedisConfig()
	return NewRedisRepository(newRedisClient(cfg), logger)
}

func NewRedisRepositoryFromConfig(cfg RedisConfig, logger *zap.Logger) (*RedisRepository, error) {
	client := newRedisClient(cfg)
	if err := client.Ping().Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}

	return NewRedisRepository(client, logger), nil
}

func newRedisClient(cfg RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

func (repository *RedisRepository) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := repository.client.WithContext(ctx).Get(key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		repository.logger.Debug("redis get failed", zap.String("key", key), zap.Error(err))
		return nil, false, err
	}

	return value, true, nil
}

func (repository *RedisRepository) SetWithExpiration(ctx context.Context, key string, ttl time.Duration, value string) error {
	err := repository.client.WithContext(ctx).Set(key, value, ttl).Err()
	if err != nil {
		repository.logger.Debug("redis set failed", zap.String("key", key), zap.Duration("ttl", ttl), zap.Error(err))
	}
	return err
}

// Options exposes the client settings, mostly so callers can see where the
// default repository points.
func (repository *RedisRepository) Options() *redis.Options {
	return repository.client.Options()
}

func (repository *RedisRepository) Close() error {
	return repository.client.Close()
}
