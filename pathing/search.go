package pathing

import (
	"errors"
	"fmt"

	"vindinium-bot/models"
)

// ErrOutOfBounds is returned when a start or target lies off the board
var ErrOutOfBounds = errors.New("position out of bounds")

// Searcher runs A* searches. MaxIterations caps the number of expansions;
// zero means unbounded. Running out of budget is reported as no path.
type Searcher struct {
	MaxIterations int
}

// FindPath runs an unbounded search
func FindPath(start, target models.Position, grid *Grid) (Path, bool, error) {
	return Searcher{}.FindPath(start, target, grid)
}

// FindPath searches for a shortest 4-connected path from start to target.
// On success the returned path holds the steps after start up to and
// including target; ok is false when target cannot be reached.
func (s Searcher) FindPath(start, target models.Position, grid *Grid) (Path, bool, error) {
	if !grid.InBounds(start) {
		return nil, false, fmt.Errorf("start %v on %dx%d board: %w", start, grid.Size, grid.Size, ErrOutOfBounds)
	}
	if !grid.InBounds(target) {
		return nil, false, fmt.Errorf("target %v on %dx%d board: %w", target, grid.Size, grid.Size, ErrOutOfBounds)
	}

	root := grid.Cell(start)
	root.G = 0
	root.H = Heuristic(start, target)
	root.F = root.G + root.H
	root.Parent = start

	open := map[models.Position]Cell{start: root}
	closed := make(map[models.Position]Cell)

	for iterations := 0; ; iterations++ {
		if _, done := closed[target]; done {
			return reconstruct(start, target, closed)
		}
		if len(open) == 0 {
			return nil, false, nil
		}
		if s.MaxIterations > 0 && iterations >= s.MaxIterations {
			return nil, false, nil
		}

		current := selectBest(open)
		delete(open, current.Pos)
		closed[current.Pos] = current

		for _, next := range expand(current, target, grid) {
			if _, done := closed[next.Pos]; done {
				continue
			}
			if known, ok := open[next.Pos]; ok && known.G <= next.G {
				continue
			}
			open[next.Pos] = next
		}
	}
}

// selectBest picks the open cell with the lowest F. Ties go to the lower H,
// then the lower X, then the lower Y, so results never depend on map order.
func selectBest(open map[models.Position]Cell) Cell {
	var best Cell
	first := true
	for _, c := range open {
		if first || less(c, best) {
			best = c
			first = false
		}
	}
	return best
}

func less(a, b Cell) bool {
	if a.F != b.F {
		return a.F < b.F
	}
	if a.H != b.H {
		return a.H < b.H
	}
	if a.Pos.X != b.Pos.X {
		return a.Pos.X < b.Pos.X
	}
	return a.Pos.Y < b.Pos.Y
}

// expand produces freshly scored copies of the passable neighbors of current
func expand(current Cell, target models.Position, grid *Grid) []Cell {
	positions := grid.Neighbors(current.Pos)
	out := make([]Cell, 0, len(positions))
	for _, p := range positions {
		step := stepCost(grid, p, target)
		if step == Blocked {
			continue
		}
		cell := grid.Cell(p)
		cell.G = current.G + step
		cell.H = Heuristic(p, target)
		cell.F = cell.G + cell.H
		cell.Parent = current.Pos
		out = append(out, cell)
	}
	return out
}
