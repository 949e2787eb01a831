// Package storage isolates client-persisted key/value state behind a small
// interface so the cart and session logic can run against any backend.
package storage

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/yashrajoria/storefront-client/config"
	apperrors "github.com/yashrajoria/storefront-client/errors"
)

// Persisted keys
const (
	KeyAccessToken   = "access_token"
	KeyUser          = "user"
	KeyAnonymousCart = "anonymous_cart"
)

// Store is a string key/value store
type Store interface {
	// Get returns the value and whether it was present
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// Open builds the backend named by cfg.Storage
func Open(ctx context.Context, cfg config.Config, log *zap.Logger) (Store, error) {
	switch cfg.Storage {
	case "memory":
		return NewMemory(), nil
	case "file", "":
		return NewFile(cfg.StateFile, log), nil
	case "redis":
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
		}
		client := redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrStorageUnavailable, err)
		}
		log.Debug("Connected to Redis", zap.String("addr", opts.Addr))
		return NewRedis(client, cfg.Profile, cfg.RedisTTL), nil
	case "dynamodb":
		client, err := NewDynamoClient(ctx)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrStorageUnavailable, err)
		}
		return NewDynamo(client, cfg.DynamoTable, cfg.Profile), nil
	default:
		return nil, apperrors.Wrap(apperrors.ErrUnknownBackend, fmt.Errorf("%q", cfg.Storage))
	}
}
