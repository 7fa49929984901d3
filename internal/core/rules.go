package core

import (
	"fmt"

	"homeinventory/pkg/domain"
)

// Violation describes an integrity problem found in committed collections.
type Violation struct {
	Rule    string
	Entity  domain.EntityType
	ID      string
	Message string
}

// Rule inspects the collections after a mutation has been committed. Rules
// report; they never reject a mutation, so imported data with dangling
// references is kept as-is.
type Rule interface {
	Name() string
	Evaluate(c domain.Collections) []Violation
}

// RulesEngine runs the registered rules in order.
type RulesEngine struct {
	rules []Rule
}

// NewRulesEngine constructs an engine with the given rules.
func NewRulesEngine(rules ...Rule) *RulesEngine {
	return &RulesEngine{rules: rules}
}

// NewDefaultRulesEngine checks link symmetry and item references.
func NewDefaultRulesEngine() *RulesEngine {
	return NewRulesEngine(linkSymmetryRule{}, itemRoomRule{}, itemProjectRule{})
}

// Register appends a rule to the engine.
func (e *RulesEngine) Register(rule Rule) {
	e.rules = append(e.rules, rule)
}

// Evaluate collects the violations of every rule.
func (e *RulesEngine) Evaluate(c domain.Collections) []Violation {
	if e == nil {
		return nil
	}
	var out []Violation
	for _, rule := range e.rules {
		out = append(out, rule.Evaluate(c)...)
	}
	return out
}

type linkSymmetryRule struct{}

func (linkSymmetryRule) Name() string { return "room_link_symmetry" }

func (r linkSymmetryRule) Evaluate(c domain.Collections) []Violation {
	byID := make(map[string]domain.Room, len(c.Rooms))
	for _, room := range c.Rooms {
		byID[room.ID] = room
	}
	var out []Violation
	for _, room := range c.Rooms {
		for _, id := range room.LinkedRoomIDs {
			other, ok := byID[id]
			if !ok {
				out = append(out, Violation{Rule: r.Name(), Entity: domain.EntityRoom, ID: room.ID,
					Message: fmt.Sprintf("linked room %s does not exist", id)})
				continue
			}
			if !other.LinksTo(room.ID) {
				out = append(out, Violation{Rule: r.Name(), Entity: domain.EntityRoom, ID: room.ID,
					Message: fmt.Sprintf("room %s does not link back", id)})
			}
		}
	}
	return out
}

type itemRoomRule struct{}

func (itemRoomRule) Name() string { return "item_room_exists" }

func (r itemRoomRule) Evaluate(c domain.Collections) []Violation {
	rooms := make(map[string]struct{}, len(c.Rooms))
	for _, room := range c.Rooms {
		rooms[room.ID] = struct{}{}
	}
	var out []Violation
	for _, it := range c.Items {
		if _, ok := rooms[it.RoomID]; !ok {
			out = append(out, Violation{Rule: r.Name(), Entity: domain.EntityItem, ID: it.ID,
				Message: fmt.Sprintf("room %q does not exist", it.RoomID)})
		}
	}
	return out
}

type itemProjectRule struct{}

func (itemProjectRule) Name() string { return "item_projects_exist" }

func (r itemProjectRule) Evaluate(c domain.Collections) []Violation {
	projects := make(map[string]struct{}, len(c.Projects))
	for _, p := range c.Projects {
		projects[p.ID] = struct{}{}
	}
	var out []Violation
	for _, it := range c.Items {
		for _, id := range it.ProjectIDs {
			if _, ok := projects[id]; !ok {
				out = append(out, Violation{Rule: r.Name(), Entity: domain.EntityItem, ID: it.ID,
					Message: fmt.Sprintf("project %s does not exist", id)})
			}
		}
	}
	return out
}
