package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func TestStorePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "inventory.db")
	s, err := NewStore(ctx, path)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if err := s.Set(ctx, "inventory_rooms", `[{"id":"r1"}]`, 0); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Set(ctx, "inventory_rooms", `[{"id":"r2"}]`, 0); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := NewStore(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = reopened.Close() }()
	if reopened.Path() != path {
		t.Fatalf("unexpected path %s", reopened.Path())
	}
	got, ok, err := reopened.Get(ctx, "inventory_rooms")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if got != `[{"id":"r2"}]` {
		t.Fatalf("expected upserted payload, got %s", got)
	}
}

func TestStoreExpiryAndDelete(t *testing.T) {
	ctx := context.Background()
	s, err := NewStore(ctx, filepath.Join(t.TempDir(), "inventory.db"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	defer func() { _ = s.Close() }()

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s.nowFn = func() time.Time { return now }
	if err := s.Set(ctx, "inventory_units", "metric", time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "inventory_units"); !ok {
		t.Fatalf("expected live value")
	}
	now = now.Add(2 * time.Minute)
	if _, ok, _ := s.Get(ctx, "inventory_units"); ok {
		t.Fatalf("expected expired value to read as absent")
	}

	if err := s.Set(ctx, "a", "1", 0); err != nil {
		t.Fatalf("set a: %v", err)
	}
	if err := s.Delete(ctx, "a", "missing"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "a"); ok {
		t.Fatalf("expected key deleted")
	}
}
