package pathing

import (
	"log"

	"vindinium-bot/models"
)

// Path is the ordered list of cells to walk through, excluding the start
type Path []Cell

// Positions returns the positions along the path
func (p Path) Positions() []models.Position {
	out := make([]models.Position, len(p))
	for i, c := range p {
		out[i] = c.Pos
	}
	return out
}

// Cost returns the accumulated cost of reaching the end of the path
func (p Path) Cost() Cost {
	if len(p) == 0 {
		return 0
	}
	return p[len(p)-1].G
}

// Contains checks if a position lies on the path
func (p Path) Contains(pos models.Position) bool {
	for _, c := range p {
		if c.Pos == pos {
			return true
		}
	}
	return false
}

// reconstruct walks parent positions back from target through the closed set
func reconstruct(start, target models.Position, closed map[models.Position]Cell) (Path, bool, error) {
	cur := closed[target]
	reversed := Path{cur}
	for !cur.IsRoot() && cur.Pos != start {
		parent, ok := closed[cur.Parent]
		if !ok || len(reversed) > len(closed) {
			log.Printf("pathing: broken parent chain at %v (parent %v)", cur.Pos, cur.Parent)
			return nil, false, nil
		}
		cur = parent
		reversed = append(reversed, cur)
	}

	// reversed ends with the start cell, which is not a step
	steps := make(Path, 0, len(reversed)-1)
	for i := len(reversed) - 2; i >= 0; i-- {
		steps = append(steps, reversed[i])
	}
	return steps, true, nil
}
