package core

import (
	"math"
	"strings"

	"homeinventory/pkg/domain"
)

// RoomDraft holds the editable fields of a room.
type RoomDraft struct {
	Name          string
	Description   string
	Width         float64
	Length        float64
	Unit          domain.Unit
	LinkedRoomIDs []string
}

// RoomInput is either CreateRoom or UpdateRoom.
type RoomInput interface {
	roomInput()
}

// CreateRoom adds a new room with a generated id.
type CreateRoom struct {
	Draft RoomDraft
}

// UpdateRoom replaces the stored room with the given id.
type UpdateRoom struct {
	ID    string
	Draft RoomDraft
}

func (CreateRoom) roomInput() {}
func (UpdateRoom) roomInput() {}

// ItemDraft holds the editable fields of an item. A nil or zero Value clears
// the stored estimate.
type ItemDraft struct {
	RoomID       string
	Name         string
	Description  string
	Category     string
	Type         string
	Brand        string
	Model        string
	Notes        string
	ProjectIDs   []string
	Value        *float64
	PurchaseDate string
	IsFixed      bool
}

// ItemInput is either CreateItem or UpdateItem.
type ItemInput interface {
	itemInput()
}

// CreateItem adds a new item with a generated id.
type CreateItem struct {
	Draft ItemDraft
}

// UpdateItem replaces the stored item with the given id, keeping any manual
// link found earlier.
type UpdateItem struct {
	ID    string
	Draft ItemDraft
}

func (CreateItem) itemInput() {}
func (UpdateItem) itemInput() {}

// ProjectDraft holds the fields of a new project. A non-empty trimmed name is
// the caller's responsibility.
type ProjectDraft struct {
	Name        string
	Description string
	Color       string
}

func (d RoomDraft) room(id string, fallback domain.Unit) domain.Room {
	unit := d.Unit
	if unit == "" {
		unit = fallback
	}
	return domain.Room{
		ID:            id,
		Name:          strings.TrimSpace(d.Name),
		Description:   strings.TrimSpace(d.Description),
		Width:         nonNegative(d.Width),
		Length:        nonNegative(d.Length),
		Unit:          domain.ParseUnits(string(unit)),
		LinkedRoomIDs: dedupeLinks(d.LinkedRoomIDs, id),
	}
}

func (d ItemDraft) item(id string) domain.Item {
	return domain.Item{
		ID:           id,
		RoomID:       d.RoomID,
		Name:         strings.TrimSpace(d.Name),
		Description:  strings.TrimSpace(d.Description),
		Category:     strings.TrimSpace(d.Category),
		Type:         strings.TrimSpace(d.Type),
		Brand:        strings.TrimSpace(d.Brand),
		Model:        strings.TrimSpace(d.Model),
		Notes:        strings.TrimSpace(d.Notes),
		ProjectIDs:   dedupeStrings(d.ProjectIDs),
		Value:        cleanValue(d.Value),
		PurchaseDate: strings.TrimSpace(d.PurchaseDate),
		IsFixed:      d.IsFixed,
	}
}

func (d ProjectDraft) project(id string) domain.Project {
	color := d.Color
	if color == "" {
		color = domain.Colors[0]
	}
	return domain.Project{
		ID:          id,
		Name:        strings.TrimSpace(d.Name),
		Description: strings.TrimSpace(d.Description),
		Color:       color,
	}
}

// nonNegative discards the sign; NaN and infinities collapse to zero.
func nonNegative(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.Abs(v)
}

func cleanValue(v *float64) *float64 {
	if v == nil {
		return nil
	}
	clean := nonNegative(*v)
	if clean == 0 {
		return nil
	}
	return &clean
}

func dedupeStrings(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// dedupeLinks drops duplicates and a room's link to itself.
func dedupeLinks(values []string, self string) []string {
	out := dedupeStrings(values)
	filtered := out[:0]
	for _, v := range out {
		if v != self {
			filtered = append(filtered, v)
		}
	}
	return filtered
}
