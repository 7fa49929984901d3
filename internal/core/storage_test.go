package core

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
)

func TestOpenKeyValueStoreDrivers(t *testing.T) {
	ctx := context.Background()

	mem, err := OpenKeyValueStore(ctx, StorageOptions{Driver: StorageMemory})
	if err != nil {
		t.Fatalf("memory: %v", err)
	}
	_ = mem.Close()

	path := filepath.Join(t.TempDir(), "nested", "inventory.db")
	lite, err := OpenKeyValueStore(ctx, StorageOptions{SQLitePath: path})
	if err != nil {
		t.Fatalf("default sqlite: %v", err)
	}
	if err := lite.Set(ctx, "k", "v", 0); err != nil {
		t.Fatalf("sqlite set: %v", err)
	}
	_ = lite.Close()

	mr := miniredis.RunT(t)
	rdb, err := OpenKeyValueStore(ctx, StorageOptions{Driver: StorageRedis, RedisAddr: mr.Addr(), RedisPrefix: "test:"})
	if err != nil {
		t.Fatalf("redis: %v", err)
	}
	if err := rdb.Set(ctx, "k", "v", 0); err != nil {
		t.Fatalf("redis set: %v", err)
	}
	if !mr.Exists("test:k") {
		t.Fatalf("expected prefixed key in redis, got %v", mr.Keys())
	}
	_ = rdb.Close()
}

func TestOpenKeyValueStoreErrors(t *testing.T) {
	ctx := context.Background()
	if _, err := OpenKeyValueStore(ctx, StorageOptions{Driver: "floppy"}); err == nil || !strings.Contains(err.Error(), "floppy") {
		t.Fatalf("expected unknown driver error, got %v", err)
	}
	store, err := OpenKeyValueStore(ctx, StorageOptions{Driver: StoragePostgres, PostgresDSN: "postgres://127.0.0.1:1/inventory?sslmode=disable&connect_timeout=1"})
	if err == nil {
		t.Fatalf("expected postgres connection failure")
	}
	if store != nil {
		t.Fatalf("failed open must return a nil interface, got %#v", store)
	}
	if !strings.Contains(err.Error(), "open postgres storage") {
		t.Fatalf("unexpected error %v", err)
	}
}
