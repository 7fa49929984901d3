package core

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"homeinventory/pkg/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Repository is the authoritative in-memory copy of the inventory. Every
// mutation runs against a clone of the collections, is committed as a whole
// and then written through the gateway.
type Repository struct {
	mu      sync.RWMutex
	state   domain.Collections
	prefs   domain.Preferences
	gateway domain.Gateway
	logger  *zap.Logger
	metrics MetricsRecorder
	rules   *RulesEngine
	newID   func() string
}

// Option configures a Repository.
type Option func(*Repository)

// WithLogger sets the structured logger. A nil logger is ignored.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Repository) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithMetricsRecorder sets the recorder notified after each mutation.
func WithMetricsRecorder(metrics MetricsRecorder) Option {
	return func(r *Repository) {
		if metrics != nil {
			r.metrics = metrics
		}
	}
}

// WithRulesEngine replaces the integrity rules checked after each mutation.
func WithRulesEngine(engine *RulesEngine) Option {
	return func(r *Repository) {
		if engine != nil {
			r.rules = engine
		}
	}
}

// WithIDGenerator overrides the uuid generator, mainly for tests.
func WithIDGenerator(fn func() string) Option {
	return func(r *Repository) {
		if fn != nil {
			r.newID = fn
		}
	}
}

// Open loads the collections and preferences through gateway and returns a
// ready repository.
func Open(ctx context.Context, gateway domain.Gateway, opts ...Option) (*Repository, error) {
	if gateway == nil {
		return nil, errors.New("core: gateway is required")
	}
	r := &Repository{
		gateway: gateway,
		logger:  zap.NewNop(),
		metrics: noopMetricsRecorder{},
		rules:   NewDefaultRulesEngine(),
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	state, err := gateway.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load collections: %w", err)
	}
	prefs, err := gateway.LoadPreferences(ctx)
	if err != nil {
		return nil, fmt.Errorf("load preferences: %w", err)
	}
	r.state = state.Clone()
	r.prefs = prefs.Normalize()
	r.logger.Info("inventory loaded",
		zap.Int("rooms", len(r.state.Rooms)),
		zap.Int("items", len(r.state.Items)),
		zap.Int("projects", len(r.state.Projects)),
	)
	return r, nil
}

// mutate applies fn to a working copy of the collections. The copy replaces
// the live state only when fn succeeds; the committed state is then saved.
func (r *Repository) mutate(ctx context.Context, op string, fn func(state *domain.Collections) error) (err error) {
	started := time.Now()
	defer func() {
		r.metrics.Observe(ctx, op, err == nil, time.Since(started))
	}()

	r.mu.Lock()
	defer r.mu.Unlock()

	working := r.state.Clone()
	if err = fn(&working); err != nil {
		r.logger.Debug("mutation rejected", zap.String("op", op), zap.Error(err))
		return err
	}
	r.state = working
	r.reportViolations(op, working)
	if saveErr := r.gateway.Save(ctx, working.Clone()); saveErr != nil {
		r.logger.Error("persist collections", zap.String("op", op), zap.Error(saveErr))
		return fmt.Errorf("%s: %w: %w", op, ErrPersist, saveErr)
	}
	return nil
}

func (r *Repository) reportViolations(op string, state domain.Collections) {
	for _, v := range r.rules.Evaluate(state) {
		r.logger.Warn("integrity violation",
			zap.String("op", op),
			zap.String("rule", v.Rule),
			zap.String("entity", string(v.Entity)),
			zap.String("id", v.ID),
			zap.String("detail", v.Message))
	}
}

// SaveRoom creates or updates a room and keeps room links symmetric.
func (r *Repository) SaveRoom(ctx context.Context, input RoomInput) (domain.Room, error) {
	var saved domain.Room
	switch in := input.(type) {
	case CreateRoom:
		id := r.newID()
		err := r.mutate(ctx, OpCreateRoom, func(state *domain.Collections) error {
			saved = in.Draft.room(id, r.prefs.Units)
			reconcileLinks(state.Rooms, saved, nil)
			state.Rooms = append(state.Rooms, saved)
			return nil
		})
		return saved.Clone(), err
	case UpdateRoom:
		err := r.mutate(ctx, OpUpdateRoom, func(state *domain.Collections) error {
			idx := roomIndex(state.Rooms, in.ID)
			if idx < 0 {
				return notFound(domain.EntityRoom, in.ID)
			}
			stored := state.Rooms[idx]
			saved = in.Draft.room(in.ID, r.prefs.Units)
			saved.Dimensions = stored.Dimensions
			reconcileLinks(state.Rooms, saved, stored.LinkedRoomIDs)
			state.Rooms[idx] = saved
			return nil
		})
		return saved.Clone(), err
	default:
		return domain.Room{}, fmt.Errorf("%w: unsupported room input %T", ErrValidation, input)
	}
}

// SaveItem creates or updates an item. The item's room must exist unless an
// update keeps the room it already had.
func (r *Repository) SaveItem(ctx context.Context, input ItemInput) (domain.Item, error) {
	var saved domain.Item
	switch in := input.(type) {
	case CreateItem:
		id := r.newID()
		err := r.mutate(ctx, OpCreateItem, func(state *domain.Collections) error {
			if roomIndex(state.Rooms, in.Draft.RoomID) < 0 {
				return fmt.Errorf("%w: room %q does not exist", ErrValidation, in.Draft.RoomID)
			}
			saved = in.Draft.item(id)
			state.Items = append(state.Items, saved)
			return nil
		})
		return saved.Clone(), err
	case UpdateItem:
		err := r.mutate(ctx, OpUpdateItem, func(state *domain.Collections) error {
			idx := itemIndex(state.Items, in.ID)
			if idx < 0 {
				return notFound(domain.EntityItem, in.ID)
			}
			stored := state.Items[idx]
			if in.Draft.RoomID != stored.RoomID && roomIndex(state.Rooms, in.Draft.RoomID) < 0 {
				return fmt.Errorf("%w: room %q does not exist", ErrValidation, in.Draft.RoomID)
			}
			saved = in.Draft.item(in.ID)
			saved.ManualURL = stored.ManualURL
			saved.ManualTitle = stored.ManualTitle
			state.Items[idx] = saved
			return nil
		})
		return saved.Clone(), err
	default:
		return domain.Item{}, fmt.Errorf("%w: unsupported item input %T", ErrValidation, input)
	}
}

// ApplyManual merges a located manual link into the currently stored item.
// Concurrent edits of the same item resolve last-write-wins.
func (r *Repository) ApplyManual(ctx context.Context, itemID string, link domain.ManualLink) (domain.Item, error) {
	var saved domain.Item
	err := r.mutate(ctx, OpApplyManual, func(state *domain.Collections) error {
		idx := itemIndex(state.Items, itemID)
		if idx < 0 {
			return notFound(domain.EntityItem, itemID)
		}
		state.Items[idx].ManualURL = link.URI
		state.Items[idx].ManualTitle = link.Title
		saved = state.Items[idx]
		return nil
	})
	return saved.Clone(), err
}

// AddProject stores a new project. An empty colour takes the first palette entry.
func (r *Repository) AddProject(ctx context.Context, draft ProjectDraft) (domain.Project, error) {
	id := r.newID()
	project := draft.project(id)
	err := r.mutate(ctx, OpAddProject, func(state *domain.Collections) error {
		state.Projects = append(state.Projects, project)
		return nil
	})
	return project, err
}

// DeleteProject removes a project and drops its id from every item. Deleting
// an unknown id changes nothing.
func (r *Repository) DeleteProject(ctx context.Context, id string) error {
	return r.mutate(ctx, OpDeleteProject, func(state *domain.Collections) error {
		projects := state.Projects[:0]
		for _, p := range state.Projects {
			if p.ID != id {
				projects = append(projects, p)
			}
		}
		state.Projects = projects
		for i := range state.Items {
			if state.Items[i].HasProject(id) {
				state.Items[i].ProjectIDs = removeString(state.Items[i].ProjectIDs, id)
			}
		}
		return nil
	})
}

// Import replaces each collection present in doc. Absent collections are kept.
// Referential integrity of the imported data is not checked.
func (r *Repository) Import(ctx context.Context, doc domain.BackupImport) error {
	return r.mutate(ctx, OpImport, func(state *domain.Collections) error {
		imported := domain.Collections{Rooms: doc.Rooms, Items: doc.Items, Projects: doc.Projects}.Clone()
		if doc.Rooms != nil {
			state.Rooms = imported.Rooms
		}
		if doc.Items != nil {
			state.Items = imported.Items
		}
		if doc.Projects != nil {
			state.Projects = imported.Projects
		}
		return nil
	})
}

// Clear removes every room, item and project. Preferences are kept.
func (r *Repository) Clear(ctx context.Context) error {
	return r.mutate(ctx, OpClear, func(state *domain.Collections) error {
		*state = domain.Collections{Rooms: []domain.Room{}, Items: []domain.Item{}, Projects: []domain.Project{}}
		return nil
	})
}

// Snapshot returns a deep copy of all three collections.
func (r *Repository) Snapshot() domain.Collections {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state.Clone()
}

// Rooms returns a copy of the stored rooms in insertion order.
func (r *Repository) Rooms() []domain.Room {
	return r.Snapshot().Rooms
}

// Items returns a copy of the stored items in insertion order.
func (r *Repository) Items() []domain.Item {
	return r.Snapshot().Items
}

// Projects returns a copy of the stored projects in insertion order.
func (r *Repository) Projects() []domain.Project {
	return r.Snapshot().Projects
}

// Room looks up a room by id.
func (r *Repository) Room(id string) (domain.Room, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if idx := roomIndex(r.state.Rooms, id); idx >= 0 {
		return r.state.Rooms[idx].Clone(), true
	}
	return domain.Room{}, false
}

// Item looks up an item by id.
func (r *Repository) Item(id string) (domain.Item, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if idx := itemIndex(r.state.Items, id); idx >= 0 {
		return r.state.Items[idx].Clone(), true
	}
	return domain.Item{}, false
}

// Project looks up a project by id.
func (r *Repository) Project(id string) (domain.Project, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.state.Projects {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Project{}, false
}

// Preferences returns the active display preferences.
func (r *Repository) Preferences() domain.Preferences {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.prefs
}

// SavePreferences normalises and stores new preferences. The normalised value
// becomes active even when the write fails.
func (r *Repository) SavePreferences(ctx context.Context, prefs domain.Preferences) (out domain.Preferences, err error) {
	started := time.Now()
	defer func() {
		r.metrics.Observe(ctx, OpSavePreferences, err == nil, time.Since(started))
	}()

	prefs = prefs.Normalize()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prefs = prefs
	if saveErr := r.gateway.SavePreferences(ctx, prefs); saveErr != nil {
		r.logger.Error("persist preferences", zap.Error(saveErr))
		return prefs, fmt.Errorf("%s: %w: %w", OpSavePreferences, ErrPersist, saveErr)
	}
	return prefs, nil
}

func roomIndex(rooms []domain.Room, id string) int {
	for i, r := range rooms {
		if r.ID == id {
			return i
		}
	}
	return -1
}

func itemIndex(items []domain.Item, id string) int {
	for i, it := range items {
		if it.ID == id {
			return i
		}
	}
	return -1
}
