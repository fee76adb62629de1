// Package pathing turns a board snapshot and a destination tile into the
// next move, using an A* search over the 4-connected board.
package pathing

import "vindinium-bot/models"

// Cell is a board position annotated with search bookkeeping
type Cell struct {
	Pos    models.Position
	Tile   models.Tile
	G      Cost
	H      Cost
	F      Cost
	Parent models.Position
}

// IsRoot reports whether the cell has no parent
func (c Cell) IsRoot() bool {
	return c.Parent == c.Pos
}

// Grid is a read-only table of fresh cells built from a board. Searches
// copy cells out of it and never write back.
type Grid struct {
	Size  int
	cells [][]Cell
}

// BuildGrid converts a board into a grid of zeroed, self-parented cells
func BuildGrid(board *models.Board) *Grid {
	cells := make([][]Cell, board.Size)
	for y := 0; y < board.Size; y++ {
		row := make([]Cell, board.Size)
		for x := 0; x < board.Size; x++ {
			pos := models.Position{X: x, Y: y}
			row[x] = Cell{
				Pos:    pos,
				Tile:   board.Tiles[y][x],
				Parent: pos,
			}
		}
		cells[y] = row
	}
	return &Grid{Size: board.Size, cells: cells}
}

// InBounds checks if a position is within grid bounds
func (g *Grid) InBounds(p models.Position) bool {
	return p.X >= 0 && p.X < g.Size && p.Y >= 0 && p.Y < g.Size
}

// Cell returns a copy of the template cell at a position
func (g *Grid) Cell(p models.Position) Cell {
	return g.cells[p.Y][p.X]
}

// Tile returns the tile at a position
func (g *Grid) Tile(p models.Position) models.Tile {
	return g.cells[p.Y][p.X].Tile
}

// Neighbors returns the in-bounds cardinal neighbors of p in North, East,
// South, West order. Diagonals are never produced.
func (g *Grid) Neighbors(p models.Position) []models.Position {
	out := make([]models.Position, 0, 4)
	for _, d := range models.Cardinals {
		next := p.Add(d.Offset())
		if g.InBounds(next) {
			out = append(out, next)
		}
	}
	return out
}
