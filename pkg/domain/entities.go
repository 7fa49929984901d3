// Package domain defines the inventory entities, user preferences and the pure
// helpers shared by the repository, the view aggregators and the adapters.
package domain

// EntityType identifies the type of record stored in the inventory.
type EntityType string

// Supported entity type identifiers used in errors, metrics and storage keys.
const (
	// EntityRoom identifies a room record.
	EntityRoom EntityType = "room"
	// EntityItem identifies an item record.
	EntityItem EntityType = "item"
	// EntityProject identifies a project (tag group) record.
	EntityProject EntityType = "project"
)

// Unit is the measurement system room dimensions are recorded or displayed in.
type Unit string

// Supported unit systems.
const (
	UnitImperial Unit = "imperial"
	UnitMetric   Unit = "metric"
)

// Room is a physical space that owns items. LinkedRoomIDs is symmetric: when
// room A lists B, room B lists A.
type Room struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	// Dimensions is the legacy free-text size, read only as a display fallback.
	Dimensions    string   `json:"dimensions,omitempty"`
	Width         float64  `json:"width,omitempty"`
	Length        float64  `json:"length,omitempty"`
	Unit          Unit     `json:"unit,omitempty"`
	Description   string   `json:"description"`
	LinkedRoomIDs []string `json:"linkedRoomIds"`
}

// Item is a single belonging tracked inside exactly one room.
type Item struct {
	ID           string   `json:"id"`
	RoomID       string   `json:"roomId"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Category     string   `json:"category"`
	Type         string   `json:"type,omitempty"`
	Brand        string   `json:"brand,omitempty"`
	Model        string   `json:"model,omitempty"`
	Notes        string   `json:"notes,omitempty"`
	ProjectIDs   []string `json:"projectIds"`
	ManualURL    string   `json:"manualUrl,omitempty"`
	ManualTitle  string   `json:"manualTitle,omitempty"`
	Value        *float64 `json:"value,omitempty"`
	PurchaseDate string   `json:"purchaseDate,omitempty"`
	// IsFixed marks building-insured fixtures; false means contents insurance.
	IsFixed bool `json:"isFixed,omitempty"`
}

// Project is a named, coloured tag that groups items across rooms.
type Project struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

// ManualLink is a manual or support page located for an item.
type ManualLink struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// Collections groups the three entity collections persisted together.
type Collections struct {
	Rooms    []Room    `json:"rooms"`
	Items    []Item    `json:"items"`
	Projects []Project `json:"projects"`
}

// Clone returns a deep copy safe to hand to callers.
func (c Collections) Clone() Collections {
	out := Collections{
		Rooms:    make([]Room, len(c.Rooms)),
		Items:    make([]Item, len(c.Items)),
		Projects: make([]Project, len(c.Projects)),
	}
	for i, r := range c.Rooms {
		out.Rooms[i] = r.Clone()
	}
	for i, it := range c.Items {
		out.Items[i] = it.Clone()
	}
	copy(out.Projects, c.Projects)
	return out
}

// Clone returns a copy of the room with its own link slice.
func (r Room) Clone() Room {
	r.LinkedRoomIDs = cloneStrings(r.LinkedRoomIDs)
	return r
}

// LinksTo reports whether the room lists id among its linked rooms.
func (r Room) LinksTo(id string) bool {
	return containsString(r.LinkedRoomIDs, id)
}

// Clone returns a copy of the item with its own project slice and value.
func (it Item) Clone() Item {
	it.ProjectIDs = cloneStrings(it.ProjectIDs)
	if it.Value != nil {
		v := *it.Value
		it.Value = &v
	}
	return it
}

// HasProject reports whether the item is tagged with the project id.
func (it Item) HasProject(id string) bool {
	return containsString(it.ProjectIDs, id)
}

// ValueOrZero returns the estimated value, treating a missing value as zero.
func (it Item) ValueOrZero() float64 {
	if it.Value == nil {
		return 0
	}
	return *it.Value
}

func cloneStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func containsString(values []string, id string) bool {
	for _, v := range values {
		if v == id {
			return true
		}
	}
	return false
}
