package domain

import (
	"context"
	"time"
)

// Storage keys shared by every backend. They match the keys the browser
// edition wrote to local storage and cookies so exported data stays portable.
const (
	KeyRooms    = "inventory_rooms"
	KeyItems    = "inventory_items"
	KeyProjects = "inventory_projects"
	KeyCurrency = "inventory_currency"
	KeyUnits    = "inventory_units"
)

// PreferencesTTL is how long stored preferences live before reverting to defaults.
const PreferencesTTL = 365 * 24 * time.Hour

// Preferences captures process-wide display settings.
type Preferences struct {
	Currency string `json:"currency"`
	Units    Unit   `json:"units"`
}

// DefaultPreferences returns the settings used before anything is stored.
func DefaultPreferences() Preferences {
	return Preferences{Currency: DefaultCurrency, Units: UnitImperial}
}

// Normalize validates the currency code (migrating legacy symbols) and maps
// unknown unit values to imperial.
func (p Preferences) Normalize() Preferences {
	return Preferences{Currency: ResolveCurrency(p.Currency), Units: ParseUnits(string(p.Units))}
}

// Gateway loads and saves the entity collections and the user preferences.
// Implementations recover from missing or corrupt data by returning empty
// collections rather than failing.
type Gateway interface {
	Load(ctx context.Context) (Collections, error)
	Save(ctx context.Context, c Collections) error
	LoadPreferences(ctx context.Context) (Preferences, error)
	SavePreferences(ctx context.Context, p Preferences) error
}

// KeyValueStore is the storage medium behind a Gateway: string payloads under
// string keys, optionally expiring. Get reports absence with ok=false.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}
