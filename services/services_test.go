package services

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"vindinium-bot/models"
	"vindinium-bot/pathing"
	"vindinium-bot/persistence"
)

func newServices(t *testing.T, searcher pathing.Searcher) (*SnapshotService, *PlanService) {
	t.Helper()
	store, err := persistence.NewJSONStore(filepath.Join(t.TempDir(), "snapshots.json"))
	if err != nil {
		t.Fatalf("NewJSONStore failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	snapshots := NewSnapshotService(store)
	return snapshots, NewPlanService(snapshots, searcher)
}

// 4x4 board, hero 1 at (0,0), wall column at x=1 except the bottom row
func corridorState(t *testing.T) *models.State {
	t.Helper()
	board, err := models.ParseBoard(4,
		"@1##  $-"+
			"  ##    "+
			"  ##    "+
			"        ")
	if err != nil {
		t.Fatalf("ParseBoard failed: %v", err)
	}
	hero := models.Hero{ID: 1, Name: "pathbot", Life: 100}
	return &models.State{
		Game: models.Game{ID: "g1", Turn: 10, Heroes: []models.Hero{hero}, Board: *board},
		Hero: hero,
	}
}

func TestSnapshotServiceSaveGet(t *testing.T) {
	snapshots, _ := newServices(t, pathing.Searcher{})

	id, err := snapshots.Save(corridorState(t))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if id == "" {
		t.Fatal("expected an id")
	}
	got, err := snapshots.Get(id)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Game.Turn != 10 {
		t.Errorf("turn = %d, want 10", got.Game.Turn)
	}

	infos, err := snapshots.List()
	if err != nil || len(infos) != 1 || infos[0].ID != id {
		t.Errorf("List() = %+v, %v", infos, err)
	}

	if _, err := snapshots.Get("nope"); !errors.Is(err, persistence.ErrNotFound) {
		t.Errorf("Get(nope) err = %v, want ErrNotFound", err)
	}
	if _, err := snapshots.Save(&models.State{}); err == nil {
		t.Error("expected an error for a snapshot without a board")
	}
}

func TestPlanBySnapshotID(t *testing.T) {
	snapshots, plans := newServices(t, pathing.Searcher{})
	id, err := snapshots.Save(corridorState(t))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	res, err := plans.Plan(PlanRequest{SnapshotID: id, Target: models.Position{X: 3, Y: 0}})
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	if !res.Reachable {
		t.Fatal("expected the mine to be reachable")
	}
	want := []models.Position{
		{X: 0, Y: 1}, {X: 0, Y: 2}, {X: 0, Y: 3}, {X: 1, Y: 3},
		{X: 2, Y: 3}, {X: 2, Y: 2}, {X: 2, Y: 1}, {X: 3, Y: 1}, {X: 3, Y: 0},
	}
	if len(res.Path) != len(want) {
		t.Fatalf("path = %v, want %d steps", res.Path, len(want))
	}
	if res.Path[0] != want[0] || res.Path[len(res.Path)-1] != want[len(want)-1] {
		t.Errorf("path = %v", res.Path)
	}
	if res.Direction != models.South {
		t.Errorf("direction = %v, want South", res.Direction)
	}
	if res.Cost != 90 {
		t.Errorf("cost = %d, want 90", res.Cost)
	}
	if res.Start != (models.Position{X: 0, Y: 0}) || res.Turn != 10 || res.SnapshotID != id {
		t.Errorf("result header = %+v", res)
	}
	if res.Board == "" {
		t.Error("expected a rendered board")
	}
}

func TestPlanInlineStateAndStart(t *testing.T) {
	_, plans := newServices(t, pathing.Searcher{})
	start := models.Position{X: 2, Y: 0}
	res, err := plans.Plan(PlanRequest{
		State:  corridorState(t),
		Start:  &start,
		Target: models.Position{X: 3, Y: 0},
	})
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	if !reflect.DeepEqual(res.Path, []models.Position{{X: 3, Y: 0}}) || res.Direction != models.East {
		t.Errorf("path = %v direction = %v", res.Path, res.Direction)
	}
}

func TestPlanUnreachable(t *testing.T) {
	_, plans := newServices(t, pathing.Searcher{MaxIterations: 2})
	res, err := plans.Plan(PlanRequest{State: corridorState(t), Target: models.Position{X: 3, Y: 0}})
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	if res.Reachable || res.Direction != models.Stay || len(res.Path) != 0 {
		t.Errorf("expected an unreachable Stay result, got %+v", res)
	}
	if stats := plans.Stats(); stats.Searches != 1 || stats.Unreachable != 1 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestPlanErrors(t *testing.T) {
	_, plans := newServices(t, pathing.Searcher{})
	if _, err := plans.Plan(PlanRequest{Target: models.Position{X: 1, Y: 1}}); err == nil {
		t.Error("expected an error without snapshot or state")
	}
	_, err := plans.Plan(PlanRequest{State: corridorState(t), Target: models.Position{X: 4, Y: 0}})
	if !errors.Is(err, pathing.ErrOutOfBounds) {
		t.Errorf("err = %v, want ErrOutOfBounds", err)
	}
}
