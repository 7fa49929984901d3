package core

import (
	"context"
	"fmt"

	"homeinventory/internal/infra/persistence/memory"
	"homeinventory/internal/infra/persistence/postgres"
	"homeinventory/internal/infra/persistence/redis"
	"homeinventory/internal/infra/persistence/sqlite"
	"homeinventory/pkg/domain"
)

// StorageDriver identifies a concrete key/value storage implementation.
type StorageDriver string

const (
	StorageMemory   StorageDriver = "memory"   // in-memory only (tests / ephemeral)
	StorageSQLite   StorageDriver = "sqlite"   // embedded sqlite file
	StoragePostgres StorageDriver = "postgres" // PostgreSQL server
	StorageRedis    StorageDriver = "redis"    // Redis server
)

// StorageOptions selects and configures the backend. An empty Driver means sqlite.
type StorageOptions struct {
	Driver        StorageDriver
	SQLitePath    string
	PostgresDSN   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
}

// OpenKeyValueStore opens the backend named by opts.Driver.
func OpenKeyValueStore(ctx context.Context, opts StorageOptions) (domain.KeyValueStore, error) {
	driver := opts.Driver
	if driver == "" {
		driver = StorageSQLite
	}
	var (
		store domain.KeyValueStore
		err   error
	)
	switch driver {
	case StorageMemory:
		return memory.NewStore(), nil
	case StorageSQLite:
		store, err = openStore(sqlite.NewStore(ctx, opts.SQLitePath))
	case StoragePostgres:
		store, err = openStore(postgres.NewStore(ctx, opts.PostgresDSN))
	case StorageRedis:
		store, err = openStore(redis.NewStore(ctx, redis.Options{
			Addr:     opts.RedisAddr,
			Password: opts.RedisPassword,
			DB:       opts.RedisDB,
			Prefix:   opts.RedisPrefix,
		}))
	default:
		return nil, fmt.Errorf("unknown storage driver %s", driver)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", driver, err)
	}
	return store, nil
}

// openStore keeps a typed nil out of the interface when opening fails.
func openStore(s domain.KeyValueStore, err error) (domain.KeyValueStore, error) {
	if err != nil {
		return nil, err
	}
	return s, nil
}
