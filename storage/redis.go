package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis stores each key as a plain string under a per-profile namespace
type Redis struct {
	client  redis.Cmdable
	profile string
	ttl     time.Duration
}

// NewRedis wraps a redis client. A zero ttl keeps keys until removed.
func NewRedis(client redis.Cmdable, profile string, ttl time.Duration) *Redis {
	return &Redis{
		client:  client,
		profile: profile,
		ttl:     ttl,
	}
}

func (r *Redis) getKey(key string) string {
	return fmt.Sprintf("storefront:%s:%s", r.profile, key)
}

func (r *Redis) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := r.client.Get(ctx, r.getKey(key)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (r *Redis) Set(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, r.getKey(key), value, r.ttl).Err()
}

func (r *Redis) Remove(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.getKey(key)).Err()
}
