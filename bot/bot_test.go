package bot

import (
	"testing"

	"vindinium-bot/models"
	"vindinium-bot/pathing"
)

func stateOn(t *testing.T, size int, encoded string, hero models.Position) *models.State {
	t.Helper()
	board, err := models.ParseBoard(size, encoded)
	if err != nil {
		t.Fatalf("ParseBoard failed: %v", err)
	}
	return &models.State{
		Game: models.Game{Board: *board},
		Hero: models.Hero{ID: 1, Pos: models.GamePos{X: hero.Y, Y: hero.X}},
	}
}

func TestRandomBotIsReproducible(t *testing.T) {
	a := NewRandomBot(NewRand(7))
	b := NewRandomBot(NewRand(7))
	seen := map[models.Direction]bool{}
	for i := 0; i < 200; i++ {
		da, db := a.Step(nil), b.Step(nil)
		if da != db {
			t.Fatalf("step %d: %v != %v with the same seed", i, da, db)
		}
		seen[da] = true
	}
	if len(seen) != 5 {
		t.Errorf("saw %d distinct moves in 200 steps, want all 5", len(seen))
	}
}

func TestNewRandZeroSeed(t *testing.T) {
	if NewRand(0).Int63() != NewRand(1).Int63() {
		t.Error("seed 0 should behave like seed 1")
	}
}

func TestPathBotStep(t *testing.T) {
	// @1 at (0,0), wall to the east, mine at (2,2)
	state := stateOn(t, 3, "@1##  "+"      "+"    $-", models.Position{X: 0, Y: 0})

	b := NewPathBot(models.Position{X: 2, Y: 2}, pathing.Searcher{})
	if got := b.Step(state); got != models.South {
		t.Errorf("Step() = %v, want South", got)
	}
}

func TestPathBotUnreachableStays(t *testing.T) {
	state := stateOn(t, 3, "@1##  "+"####  "+"    $-", models.Position{X: 0, Y: 0})

	b := NewPathBot(models.Position{X: 2, Y: 2}, pathing.Searcher{})
	if got := b.Step(state); got != models.Stay {
		t.Errorf("Step() = %v, want Stay", got)
	}

	b.Target = models.Position{X: 9, Y: 9}
	if got := b.Step(state); got != models.Stay {
		t.Errorf("off-board target: Step() = %v, want Stay", got)
	}
}
