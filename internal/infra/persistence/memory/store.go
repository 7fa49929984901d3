// Package memory provides a process-local key/value store used for tests and
// ephemeral deployments.
package memory

import (
	"context"
	"sync"
	"time"

	"homeinventory/pkg/domain"
)

var _ domain.KeyValueStore = (*Store)(nil)

type entry struct {
	value   string
	expires time.Time
}

// Store keeps values in a map guarded by a RWMutex. Expired entries read as
// absent and are dropped lazily.
type Store struct {
	mu    sync.RWMutex
	data  map[string]entry
	nowFn func() time.Time
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		data:  make(map[string]entry),
		nowFn: func() time.Time { return time.Now().UTC() },
	}
}

// SetNowFunc overrides the clock used for expiry.
func (s *Store) SetNowFunc(fn func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nowFn = fn
}

// Get returns the value stored under key.
func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	e, ok := s.data[key]
	now := s.nowFn()
	s.mu.RUnlock()
	if !ok {
		return "", false, nil
	}
	if !e.expires.IsZero() && !now.Before(e.expires) {
		s.mu.Lock()
		delete(s.data, key)
		s.mu.Unlock()
		return "", false, nil
	}
	return e.value, true, nil
}

// Set stores value under key. A non-positive ttl never expires.
func (s *Store) Set(_ context.Context, key, value string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := entry{value: value}
	if ttl > 0 {
		e.expires = s.nowFn().Add(ttl)
	}
	s.data[key] = e
	return nil
}

// Delete removes keys; unknown keys are ignored.
func (s *Store) Delete(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		delete(s.data, k)
	}
	return nil
}

// Close is a no-op.
func (s *Store) Close() error { return nil }
