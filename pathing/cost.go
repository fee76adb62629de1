package pathing

import (
	"math"

	"vindinium-bot/models"
)

// Cost is a path cost. A native int keeps 10 * 2 * size far from overflow on
// any board the game can produce.
type Cost int

const (
	// StepCost is the cost of one cardinal move
	StepCost Cost = 10

	// Blocked marks an impassable cell; it is never added to
	Blocked Cost = math.MaxInt
)

// Heuristic estimates the remaining cost from pos to target
func Heuristic(pos, target models.Position) Cost {
	return StepCost * Cost(pos.Manhattan(target))
}

// IsTraversable reports whether a tile can be walked through
func IsTraversable(t models.Tile) bool {
	return t.Kind == models.TileFree
}

// passable also admits the destination itself, which is usually a mine, a
// tavern or a hero the agent is walking onto. Walls stay impassable.
func passable(g *Grid, p, target models.Position) bool {
	t := g.Tile(p)
	if p == target {
		return t.Kind != models.TileWall
	}
	return IsTraversable(t)
}

// stepCost returns the cost of entering p, or Blocked
func stepCost(g *Grid, p, target models.Position) Cost {
	if !passable(g, p, target) {
		return Blocked
	}
	return StepCost
}
