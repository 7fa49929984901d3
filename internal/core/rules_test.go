package core

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"homeinventory/pkg/domain"
)

func TestDefaultRulesEngineReportsViolations(t *testing.T) {
	c := domain.Collections{
		Rooms: []domain.Room{
			{ID: "r1", LinkedRoomIDs: []string{"r2", "ghost"}},
			{ID: "r2"},
		},
		Items: []domain.Item{
			{ID: "i1", RoomID: "r1", ProjectIDs: []string{"p1", "p9"}},
			{ID: "i2", RoomID: "gone"},
		},
		Projects: []domain.Project{{ID: "p1"}},
	}
	got := map[string]int{}
	for _, v := range NewDefaultRulesEngine().Evaluate(c) {
		got[v.Rule+"/"+v.ID]++
	}
	want := map[string]int{
		"room_link_symmetry/r1":  2,
		"item_room_exists/i2":    1,
		"item_projects_exist/i1": 1,
	}
	if len(got) != len(want) {
		t.Fatalf("unexpected violations %v", got)
	}
	for k, n := range want {
		if got[k] != n {
			t.Fatalf("violation %s: want %d, got %d (all %v)", k, n, got[k], got)
		}
	}
}

func TestRulesEngineCleanCollections(t *testing.T) {
	c := domain.Collections{
		Rooms:    []domain.Room{{ID: "r1", LinkedRoomIDs: []string{"r2"}}, {ID: "r2", LinkedRoomIDs: []string{"r1"}}},
		Items:    []domain.Item{{ID: "i1", RoomID: "r2", ProjectIDs: []string{"p1"}}},
		Projects: []domain.Project{{ID: "p1"}},
	}
	if v := NewDefaultRulesEngine().Evaluate(c); len(v) != 0 {
		t.Fatalf("expected no violations, got %+v", v)
	}
	var nilEngine *RulesEngine
	if v := nilEngine.Evaluate(c); v != nil {
		t.Fatalf("nil engine should report nothing")
	}
}

func TestRepositoryLogsViolationsWithoutRejecting(t *testing.T) {
	ctx := context.Background()
	logCore, logs := observer.New(zap.WarnLevel)
	repo, _ := newTestRepository(t, WithLogger(zap.New(logCore)))

	mustRoom(t, repo, CreateRoom{Draft: RoomDraft{Name: "Hall"}})
	if n := logs.FilterMessage("integrity violation").Len(); n != 0 {
		t.Fatalf("clean mutation logged %d violations", n)
	}

	err := repo.Import(ctx, domain.BackupImport{Items: []domain.Item{{ID: "orphan", RoomID: "missing", Name: "Lamp"}}})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if _, ok := repo.Item("orphan"); !ok {
		t.Fatalf("orphaned item must be kept")
	}
	entries := logs.FilterMessage("integrity violation").All()
	if len(entries) != 1 {
		t.Fatalf("expected one violation, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["rule"] != "item_room_exists" || fields["id"] != "orphan" || fields["op"] != OpImport {
		t.Fatalf("unexpected log fields %v", fields)
	}
}

type countingRule struct{ calls int }

func (r *countingRule) Name() string { return "counting" }

func (r *countingRule) Evaluate(domain.Collections) []Violation {
	r.calls++
	return nil
}

func TestWithRulesEngineReplacesDefaults(t *testing.T) {
	rule := &countingRule{}
	engine := NewRulesEngine()
	engine.Register(rule)
	repo, _ := newTestRepository(t, WithRulesEngine(engine))
	mustRoom(t, repo, CreateRoom{Draft: RoomDraft{Name: "Den"}})
	if _, err := repo.AddProject(context.Background(), ProjectDraft{Name: "Paint"}); err != nil {
		t.Fatalf("add project: %v", err)
	}
	if rule.calls != 2 {
		t.Fatalf("expected rule evaluated per mutation, got %d", rule.calls)
	}
}
