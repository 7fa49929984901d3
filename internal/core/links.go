package core

import "homeinventory/pkg/domain"

// reconcileLinks updates the link lists of every room other than saved so
// they mirror saved.LinkedRoomIDs. previous holds the links the saved room had
// before this save (nil on create). rooms is modified in place.
func reconcileLinks(rooms []domain.Room, saved domain.Room, previous []string) {
	next := toSet(saved.LinkedRoomIDs)
	old := toSet(previous)
	for i := range rooms {
		r := &rooms[i]
		if r.ID == saved.ID {
			continue
		}
		_, wanted := next[r.ID]
		_, had := old[r.ID]
		switch {
		case wanted && !r.LinksTo(saved.ID):
			r.LinkedRoomIDs = append(r.LinkedRoomIDs, saved.ID)
		case !wanted && had && r.LinksTo(saved.ID):
			r.LinkedRoomIDs = removeString(r.LinkedRoomIDs, saved.ID)
		}
	}
}

func toSet(values []string) map[string]struct{} {
	out := make(map[string]struct{}, len(values))
	for _, v := range values {
		out[v] = struct{}{}
	}
	return out
}

func removeString(values []string, id string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
