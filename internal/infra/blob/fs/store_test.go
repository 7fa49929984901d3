package fs

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"homeinventory/internal/blob/core"
)

func TestFilesystemStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	s, err := New(root)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	info, err := s.Put(ctx, "reports/inventory_report_2024-01-01.csv", strings.NewReader("a,b"), core.PutOptions{ContentType: "text/csv"})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if info.Size != 3 || len(info.ETag) != 64 {
		t.Fatalf("unexpected info %+v", info)
	}
	if _, err := os.Stat(filepath.Join(root, "reports", "inventory_report_2024-01-01.csv.meta")); err != nil {
		t.Fatalf("expected sidecar: %v", err)
	}
	got, rc, err := s.Get(ctx, "reports/inventory_report_2024-01-01.csv")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	body, _ := io.ReadAll(rc)
	_ = rc.Close()
	if string(body) != "a,b" || got.ContentType != "text/csv" {
		t.Fatalf("unexpected blob %q %+v", body, got)
	}
	if _, err := s.Put(ctx, "reports/inventory_report_2024-01-01.csv", strings.NewReader("x"), core.PutOptions{}); !errors.Is(err, core.ErrExists) {
		t.Fatalf("expected ErrExists, got %v", err)
	}
}

func TestFilesystemStoreListAndDelete(t *testing.T) {
	ctx := context.Background()
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	for _, key := range []string{"backups/b.json", "backups/a.json", "reports/r.csv"} {
		if _, err := s.Put(ctx, key, strings.NewReader("{}"), core.PutOptions{}); err != nil {
			t.Fatalf("put %s: %v", key, err)
		}
	}
	list, err := s.List(ctx, "backups/")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].Key != "backups/a.json" || list[1].Key != "backups/b.json" {
		t.Fatalf("unexpected list %+v", list)
	}
	ok, err := s.Delete(ctx, "backups/a.json")
	if err != nil || !ok {
		t.Fatalf("delete: %v %v", ok, err)
	}
	if ok, _ := s.Delete(ctx, "backups/a.json"); ok {
		t.Fatalf("expected missing on second delete")
	}
	if _, err := s.Head(ctx, "backups/a.json"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSanitizeKey(t *testing.T) {
	for _, bad := range []string{"", "  ", "/etc/passwd", "../x", "a/../../b", "a.meta"} {
		if _, err := sanitizeKey(bad); err == nil {
			t.Fatalf("expected %q to be rejected", bad)
		}
	}
	if got, err := sanitizeKey("backups//a.json"); err != nil || got != "backups/a.json" {
		t.Fatalf("clean key: %q %v", got, err)
	}
}
