package pathing

import (
	"log"

	"vindinium-bot/models"
)

// ResolveDirection converts a single step into a move. Anything other than a
// cardinal step or no step at all is logged and treated as Stay.
func ResolveDirection(current, next models.Position) models.Direction {
	dx, dy := next.X-current.X, next.Y-current.Y
	switch {
	case dx == 0 && dy == 0:
		return models.Stay
	case dx == 0 && dy == -1:
		return models.North
	case dx == 1 && dy == 0:
		return models.East
	case dx == 0 && dy == 1:
		return models.South
	case dx == -1 && dy == 0:
		return models.West
	}
	log.Printf("pathing: step %v -> %v is not a cardinal move, staying", current, next)
	return models.Stay
}

// Route builds a grid from board and returns the positions to walk to reach target
func (s Searcher) Route(board *models.Board, start, target models.Position) ([]models.Position, bool, error) {
	path, ok, err := s.FindPath(start, target, BuildGrid(board))
	if err != nil || !ok {
		return nil, ok, err
	}
	return path.Positions(), true, nil
}

// NextMove returns the first move along the shortest path to target. When
// target is unreachable it returns Stay and ok is false.
func (s Searcher) NextMove(board *models.Board, start, target models.Position) (models.Direction, bool, error) {
	route, ok, err := s.Route(board, start, target)
	if err != nil || !ok {
		return models.Stay, ok, err
	}
	if len(route) == 0 {
		return models.Stay, true, nil
	}
	return ResolveDirection(start, route[0]), true, nil
}

// Route runs an unbounded Searcher.Route
func Route(board *models.Board, start, target models.Position) ([]models.Position, bool, error) {
	return Searcher{}.Route(board, start, target)
}

// NextMove runs an unbounded Searcher.NextMove
func NextMove(board *models.Board, start, target models.Position) (models.Direction, bool, error) {
	return Searcher{}.NextMove(board, start, target)
}
