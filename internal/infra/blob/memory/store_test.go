package memory

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"homeinventory/internal/blob/core"
)

func TestMemoryStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	s := New()
	if s.Driver() != core.DriverMemory {
		t.Fatalf("unexpected driver %s", s.Driver())
	}
	info, err := s.Put(ctx, "backups/a.json", strings.NewReader(`{}`), core.PutOptions{ContentType: "application/json", Metadata: map[string]string{"kind": "backup"}})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if info.Size != 2 || info.ETag == "" {
		t.Fatalf("unexpected info %+v", info)
	}
	if _, err := s.Put(ctx, "backups/a.json", strings.NewReader(`{}`), core.PutOptions{}); !errors.Is(err, core.ErrExists) {
		t.Fatalf("expected ErrExists, got %v", err)
	}
	_, rc, err := s.Get(ctx, "backups/a.json")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	body, _ := io.ReadAll(rc)
	_ = rc.Close()
	if string(body) != `{}` {
		t.Fatalf("body %q", body)
	}
	head, err := s.Head(ctx, "backups/a.json")
	if err != nil || head.Metadata["kind"] != "backup" {
		t.Fatalf("head: %+v %v", head, err)
	}
	head.Metadata["kind"] = "mutated"
	again, _ := s.Head(ctx, "backups/a.json")
	if again.Metadata["kind"] != "backup" {
		t.Fatalf("metadata must be copied")
	}

	if _, err := s.Put(ctx, "reports/r.csv", strings.NewReader("x"), core.PutOptions{}); err != nil {
		t.Fatalf("put report: %v", err)
	}
	list, _ := s.List(ctx, "backups/")
	if len(list) != 1 || list[0].Key != "backups/a.json" {
		t.Fatalf("list %+v", list)
	}
	if ok, _ := s.Delete(ctx, "backups/a.json"); !ok {
		t.Fatalf("expected delete to report existing key")
	}
	if ok, _ := s.Delete(ctx, "backups/a.json"); ok {
		t.Fatalf("second delete should report missing")
	}
	if _, _, err := s.Get(ctx, "backups/a.json"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
