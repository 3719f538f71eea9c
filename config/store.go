package config

import (
	"context"
	"fmt"
	"time"

	"snapbook-backend/store"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// NewRedisClient connects and pings the configured Redis server.
func NewRedisClient(ctx context.Context, cfg Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr,
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect redis at %s: %w", cfg.RedisAddr, err)
	}
	return client, nil
}

// OpenStore builds the panel store named by STORE_DRIVER. db may be nil
// unless the driver is postgres.
func OpenStore(ctx context.Context, cfg Config, db *gorm.DB) (store.Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.StoreDriver {
	case StorePostgres:
		if db == nil {
			return nil, noop, fmt.Errorf("postgres store needs a database connection")
		}
		gs := store.NewGormStore(db)
		if err := gs.Migrate(); err != nil {
			return nil, noop, err
		}
		return gs, noop, nil
	case StoreRedis:
		client, err := NewRedisClient(ctx, cfg)
		if err != nil {
			return nil, noop, err
		}
		return store.NewRedisStore(client, cfg.RedisPrefix), client.Close, nil
	default:
		return store.NewMemoryStore(), noop, nil
	}
}
