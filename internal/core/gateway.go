package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"homeinventory/pkg/domain"

	"go.uber.org/zap"
)

// KVGateway stores each collection as a JSON array under its own key and the
// preferences as two expiring plain values.
type KVGateway struct {
	store  domain.KeyValueStore
	logger *zap.Logger
}

var _ domain.Gateway = (*KVGateway)(nil)

// NewKVGateway wraps a key/value store. A nil logger discards output.
func NewKVGateway(store domain.KeyValueStore, logger *zap.Logger) *KVGateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &KVGateway{store: store, logger: logger}
}

// Load reads the three collections. A missing or unparsable key yields an
// empty collection; only storage failures are returned.
func (g *KVGateway) Load(ctx context.Context) (domain.Collections, error) {
	rooms, err := loadCollection[domain.Room](ctx, g, domain.KeyRooms)
	if err != nil {
		return domain.Collections{}, err
	}
	items, err := loadCollection[domain.Item](ctx, g, domain.KeyItems)
	if err != nil {
		return domain.Collections{}, err
	}
	projects, err := loadCollection[domain.Project](ctx, g, domain.KeyProjects)
	if err != nil {
		return domain.Collections{}, err
	}
	return domain.Collections{Rooms: rooms, Items: items, Projects: projects}, nil
}

// loadCollection decodes key into a fresh slice. Any decode error discards
// the whole payload, including elements decoded before the failure.
func loadCollection[T any](ctx context.Context, g *KVGateway, key string) ([]T, error) {
	raw, ok, err := g.store.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	if !ok || raw == "" {
		return []T{}, nil
	}
	var decoded []T
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		g.logger.Warn("discarding unreadable collection", zap.String("key", key), zap.Error(err))
		return []T{}, nil
	}
	if decoded == nil {
		return []T{}, nil
	}
	return decoded, nil
}

// Save writes all three collections.
func (g *KVGateway) Save(ctx context.Context, c domain.Collections) error {
	c = c.Clone()
	entries := []struct {
		key   string
		value any
	}{
		{domain.KeyRooms, c.Rooms},
		{domain.KeyItems, c.Items},
		{domain.KeyProjects, c.Projects},
	}
	var errs []error
	for _, e := range entries {
		payload, err := json.Marshal(e.value)
		if err != nil {
			errs = append(errs, fmt.Errorf("encode %s: %w", e.key, err))
			continue
		}
		if err := g.store.Set(ctx, e.key, string(payload), 0); err != nil {
			errs = append(errs, fmt.Errorf("write %s: %w", e.key, err))
		}
	}
	return errors.Join(errs...)
}

// LoadPreferences reads the stored preferences, migrating legacy currency
// symbols and defaulting anything missing or invalid.
func (g *KVGateway) LoadPreferences(ctx context.Context) (domain.Preferences, error) {
	currency, _, err := g.store.Get(ctx, domain.KeyCurrency)
	if err != nil {
		return domain.Preferences{}, fmt.Errorf("read %s: %w", domain.KeyCurrency, err)
	}
	units, _, err := g.store.Get(ctx, domain.KeyUnits)
	if err != nil {
		return domain.Preferences{}, fmt.Errorf("read %s: %w", domain.KeyUnits, err)
	}
	prefs := domain.Preferences{Currency: currency, Units: domain.Unit(units)}.Normalize()
	if currency != "" && currency != prefs.Currency {
		g.logger.Info("migrated stored currency", zap.String("from", currency), zap.String("to", prefs.Currency))
	}
	return prefs, nil
}

// SavePreferences stores both values with a one-year expiry.
func (g *KVGateway) SavePreferences(ctx context.Context, p domain.Preferences) error {
	p = p.Normalize()
	if err := g.store.Set(ctx, domain.KeyCurrency, p.Currency, domain.PreferencesTTL); err != nil {
		return fmt.Errorf("write %s: %w", domain.KeyCurrency, err)
	}
	if err := g.store.Set(ctx, domain.KeyUnits, string(p.Units), domain.PreferencesTTL); err != nil {
		return fmt.Errorf("write %s: %w", domain.KeyUnits, err)
	}
	return nil
}
