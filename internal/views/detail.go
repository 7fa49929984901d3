package views

import "homeinventory/pkg/domain"

// RoomDetail is everything shown for a single room.
type RoomDetail struct {
	Room        domain.Room   `json:"room"`
	Dimensions  string        `json:"dimensions"`
	LinkedRooms []domain.Room `json:"linkedRooms"`
	Fixtures    []domain.Item `json:"fixtures"`
	Contents    []domain.Item `json:"contents"`
	TotalValue  float64       `json:"totalValue"`
}

// BuildRoomDetail resolves the room's linked rooms (ids without a stored room
// are skipped) and splits its items into fixtures and contents.
func BuildRoomDetail(room domain.Room, rooms []domain.Room, items []domain.Item, units domain.Unit) RoomDetail {
	byID := make(map[string]domain.Room, len(rooms))
	for _, r := range rooms {
		byID[r.ID] = r
	}
	detail := RoomDetail{
		Room:        room.Clone(),
		Dimensions:  domain.FormatRoomDimensions(room, units),
		LinkedRooms: []domain.Room{},
		Fixtures:    []domain.Item{},
		Contents:    []domain.Item{},
	}
	for _, id := range room.LinkedRoomIDs {
		if linked, ok := byID[id]; ok {
			detail.LinkedRooms = append(detail.LinkedRooms, linked.Clone())
		}
	}
	for _, it := range items {
		if it.RoomID != room.ID {
			continue
		}
		if it.IsFixed {
			detail.Fixtures = append(detail.Fixtures, it.Clone())
		} else {
			detail.Contents = append(detail.Contents, it.Clone())
		}
		detail.TotalValue += it.ValueOrZero()
	}
	return detail
}
