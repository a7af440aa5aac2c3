package cartstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/zaylo/backend/internal/domain/cart"
	"github.com/zaylo/backend/internal/infrastructure/config"
)

// cartIDTTL bounds how long an idle session keeps its cart ID. The remote
// cart itself expires server-side; keeping the ID much longer only produces
// fetch-then-recreate churn.
const cartIDTTL = 30 * 24 * time.Hour

// RedisStore persists cart IDs per session key in Redis. Suitable for
// multi-instance deployments where any instance may serve a session.
type RedisStore struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(cfg *config.RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStore{
		client:    client,
		keyPrefix: "cart:id:",
	}, nil
}

// NewRedisStoreWithClient creates a store with an existing Redis client.
// Useful for testing or when sharing a client across components.
func NewRedisStoreWithClient(client *redis.Client, keyPrefix string) *RedisStore {
	if keyPrefix == "" {
		keyPrefix = "cart:id:"
	}
	return &RedisStore{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// Load returns the persisted cart ID for a session, "" when absent.
func (s *RedisStore) Load(ctx context.Context, key string) (string, error) {
	cartID, err := s.client.Get(ctx, s.keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load cart id: %w", err)
	}
	return cartID, nil
}

// Save persists the cart ID for a session, refreshing the TTL.
func (s *RedisStore) Save(ctx context.Context, key, cartID string) error {
	if err := s.client.Set(ctx, s.keyPrefix+key, cartID, cartIDTTL).Err(); err != nil {
		return fmt.Errorf("failed to save cart id: %w", err)
	}
	return nil
}

// Ping verifies the Redis connection, for health checks.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// Ensure RedisStore implements cart.IDStore
var _ cart.IDStore = (*RedisStore)(nil)
