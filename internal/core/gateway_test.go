package core

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"homeinventory/internal/infra/persistence/memory"
	"homeinventory/pkg/domain"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestKVGatewayRecoversFromCorruptKeys(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewStore()
	_ = kv.Set(ctx, domain.KeyRooms, "{not json", 0)
	_ = kv.Set(ctx, domain.KeyItems, `[{"id":"i1","roomId":"r1","name":"Sofa"}]`, 0)

	core, logs := observer.New(zap.WarnLevel)
	gw := NewKVGateway(kv, zap.New(core))
	c, err := gw.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(c.Rooms) != 0 || c.Rooms == nil {
		t.Fatalf("corrupt rooms should load as empty, got %+v", c.Rooms)
	}
	if len(c.Items) != 1 || c.Items[0].Name != "Sofa" {
		t.Fatalf("items not loaded: %+v", c.Items)
	}
	if len(c.Projects) != 0 {
		t.Fatalf("missing projects should load as empty")
	}
	if logs.FilterMessage("discarding unreadable collection").Len() != 1 {
		t.Fatalf("expected one warning, got %d", logs.Len())
	}
}

func TestKVGatewayDiscardsPartiallyDecodedCollections(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewStore()
	_ = kv.Set(ctx, domain.KeyRooms, `[{"id":"a","name":"A"},{"id":"b","name":"B","width":"wide"}]`, 0)
	_ = kv.Set(ctx, domain.KeyProjects, `[{"id":"p1","name":"Reno","color":7}]`, 0)

	core, logs := observer.New(zap.WarnLevel)
	gw := NewKVGateway(kv, zap.New(core))
	c, err := gw.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Rooms == nil || len(c.Rooms) != 0 {
		t.Fatalf("rooms with a mistyped field must load as empty, got %+v", c.Rooms)
	}
	if c.Projects == nil || len(c.Projects) != 0 {
		t.Fatalf("projects with a mistyped field must load as empty, got %+v", c.Projects)
	}
	if logs.FilterMessage("discarding unreadable collection").Len() != 2 {
		t.Fatalf("expected two warnings, got %d", logs.Len())
	}

	if err := gw.Save(ctx, c); err != nil {
		t.Fatalf("save: %v", err)
	}
	raw, _, _ := kv.Get(ctx, domain.KeyRooms)
	if raw != "[]" {
		t.Fatalf("partial rooms written back: %s", raw)
	}
}

func TestKVGatewayPreferencesMigrateLegacySymbol(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewStore()
	_ = kv.Set(ctx, domain.KeyCurrency, "€", 0)
	_ = kv.Set(ctx, domain.KeyUnits, "cubits", 0)

	gw := NewKVGateway(kv, nil)
	prefs, err := gw.LoadPreferences(ctx)
	if err != nil {
		t.Fatalf("load prefs: %v", err)
	}
	if prefs.Currency != "EUR" || prefs.Units != domain.UnitImperial {
		t.Fatalf("unexpected prefs %+v", prefs)
	}
}

func TestKVGatewayPreferencesExpireAfterOneYear(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	kv := memory.NewStore()
	kv.SetNowFunc(func() time.Time { return now })
	gw := NewKVGateway(kv, nil)

	if err := gw.SavePreferences(ctx, domain.Preferences{Currency: "JPY", Units: domain.UnitMetric}); err != nil {
		t.Fatalf("save: %v", err)
	}
	prefs, _ := gw.LoadPreferences(ctx)
	if prefs.Currency != "JPY" {
		t.Fatalf("expected stored currency, got %+v", prefs)
	}
	now = now.Add(domain.PreferencesTTL)
	prefs, _ = gw.LoadPreferences(ctx)
	if prefs != domain.DefaultPreferences() {
		t.Fatalf("expected defaults after expiry, got %+v", prefs)
	}
}

type brokenStore struct {
	*memory.Store
	err error
}

func (b brokenStore) Get(context.Context, string) (string, bool, error) { return "", false, b.err }
func (b brokenStore) Set(context.Context, string, string, time.Duration) error {
	return b.err
}

func TestKVGatewaySurfacesStorageErrors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("disk gone")
	gw := NewKVGateway(brokenStore{Store: memory.NewStore(), err: boom}, nil)
	if _, err := gw.Load(ctx); !errors.Is(err, boom) {
		t.Fatalf("expected storage error from Load, got %v", err)
	}
	err := gw.Save(ctx, domain.Collections{})
	if !errors.Is(err, boom) || !strings.Contains(err.Error(), domain.KeyProjects) {
		t.Fatalf("expected joined write errors, got %v", err)
	}
	if _, err := Open(ctx, gw); err == nil {
		t.Fatalf("expected Open to fail")
	}
}
