package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisRepository struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisRepository stores credentials as plain string keys. A zero ttl keeps
// them until they are deleted.
func NewRedisRepository(rdb *redis.Client, ttl time.Duration) CredentialRepository {
	return &redisRepository{rdb: rdb, ttl: ttl}
}

func (r *redisRepository) credentialKey(key string) string { return fmt.Sprintf("credential:%s", key) }

func (r *redisRepository) GetCredential(ctx context.Context, key string) (string, error) {
	token, err := r.rdb.Get(ctx, r.credentialKey(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("could not read credential from redis: %w", err)
	}
	return token, nil
}

func (r *redisRepository) SaveCredential(ctx context.Context, key, token string) error {
	if err := r.rdb.Set(ctx, r.credentialKey(key), token, r.ttl).Err(); err != nil {
		return fmt.Errorf("could not save credential to redis: %w", err)
	}
	return nil
}

func (r *redisRepository) DeleteCredential(ctx context.Context, key string) error {
	if err := r.rdb.Del(ctx, r.credentialKey(key)).Err(); err != nil {
		return fmt.Errorf("could not delete credential from redis: %w", err)
	}
	return nil
}
