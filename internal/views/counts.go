package views

import "homeinventory/pkg/domain"

// RoomItemCounts returns the number of items per room id. Every room is
// present, rooms without items map to zero.
func RoomItemCounts(rooms []domain.Room, items []domain.Item) map[string]int {
	counts := make(map[string]int, len(rooms))
	for _, r := range rooms {
		counts[r.ID] = 0
	}
	for _, it := range items {
		if _, ok := counts[it.RoomID]; ok {
			counts[it.RoomID]++
		}
	}
	return counts
}

// ProjectItemCounts returns the number of items tagged with each project.
func ProjectItemCounts(projects []domain.Project, items []domain.Item) map[string]int {
	counts := make(map[string]int, len(projects))
	for _, p := range projects {
		counts[p.ID] = 0
	}
	for _, it := range items {
		for _, id := range it.ProjectIDs {
			if _, ok := counts[id]; ok {
				counts[id]++
			}
		}
	}
	return counts
}

// ProjectItems returns the items tagged with projectID in collection order.
func ProjectItems(projectID string, items []domain.Item) []domain.Item {
	out := []domain.Item{}
	for _, it := range items {
		if it.HasProject(projectID) {
			out = append(out, it.Clone())
		}
	}
	return out
}

// RoomItems returns the items stored in roomID in collection order.
func RoomItems(roomID string, items []domain.Item) []domain.Item {
	out := []domain.Item{}
	for _, it := range items {
		if it.RoomID == roomID {
			out = append(out, it.Clone())
		}
	}
	return out
}
