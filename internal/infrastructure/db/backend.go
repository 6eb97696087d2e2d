// Package db selects and opens the key-value backend named in the config.
package db

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/inkpost/blog-system/internal/core/ports"
	"github.com/inkpost/blog-system/internal/infrastructure/config"
	"github.com/inkpost/blog-system/internal/infrastructure/db/file"
	"github.com/inkpost/blog-system/internal/infrastructure/db/memory"
	"github.com/inkpost/blog-system/internal/infrastructure/db/mongo"
	"github.com/inkpost/blog-system/internal/infrastructure/db/redis"
)

// PingableStore is a KeyValueStore with a readiness check.
type PingableStore interface {
	ports.KeyValueStore
	Ping(ctx context.Context) error
}

// Backend is an opened storage backend.
type Backend struct {
	Name  string
	Store PingableStore
	// Redis is set only for the redis backend; it also serves idempotency keys.
	Redis *goredis.Client

	close func(ctx context.Context) error
}

// Open connects to the backend selected by cfg.Storage.Backend.
func Open(ctx context.Context, cfg *config.Config) (*Backend, error) {
	b := &Backend{Name: cfg.Storage.Backend, close: func(context.Context) error { return nil }}

	switch cfg.Storage.Backend {
	case config.BackendMemory:
		b.Store = memory.NewStore()

	case config.BackendFile:
		s, err := file.NewStore(cfg.Storage.Dir)
		if err != nil {
			return nil, err
		}
		b.Store = s

	case config.BackendRedis:
		client, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return nil, err
		}
		b.Store = redis.NewStore(client, cfg.Redis.KeyPrefix)
		b.Redis = client
		b.close = func(context.Context) error { return client.Close() }

	case config.BackendMongo:
		client, database, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		b.Store = mongo.NewStore(database, cfg.Mongo.Collection)
		b.close = client.Disconnect

	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}

	return b, nil
}

// Close releases connections held by the backend.
func (b *Backend) Close(ctx context.Context) error {
	return b.close(ctx)
}
