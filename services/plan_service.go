package services

import (
	"errors"
	"fmt"
	"sync"

	"vindinium-bot/models"
	"vindinium-bot/pathing"
	"vindinium-bot/render"
)

// PlanRequest asks for a route on a snapshot. Either SnapshotID or State is
// set; Start defaults to the position of the snapshot's hero.
type PlanRequest struct {
	SnapshotID string
	State      *models.State
	Start      *models.Position
	Target     models.Position
}

// PlanResult is the outcome of one search
type PlanResult struct {
	SnapshotID string
	Turn       int
	Start      models.Position
	Target     models.Position
	Reachable  bool
	Path       []models.Position
	Cost       int
	Direction  models.Direction
	Board      string
}

// PlanStats counts searches served
type PlanStats struct {
	Searches    int `json:"searches"`
	Unreachable int `json:"unreachable"`
}

// PlanService runs pathfinding searches against snapshots
type PlanService struct {
	snapshots *SnapshotService
	searcher  pathing.Searcher
	stats     PlanStats
	mutex     sync.Mutex
}

// NewPlanService creates a new plan service
func NewPlanService(snapshots *SnapshotService, searcher pathing.Searcher) *PlanService {
	return &PlanService{
		snapshots: snapshots,
		searcher:  searcher,
	}
}

// Plan resolves the request's snapshot and searches from start to target.
// An unreachable target is a normal result with Reachable false and a Stay move.
func (ps *PlanService) Plan(req PlanRequest) (*PlanResult, error) {
	state := req.State
	if state == nil {
		if req.SnapshotID == "" {
			return nil, errors.New("plan request needs a snapshot id or a state")
		}
		var err error
		state, err = ps.snapshots.Get(req.SnapshotID)
		if err != nil {
			return nil, err
		}
	}

	start := state.HeroPosition()
	if req.Start != nil {
		start = *req.Start
	}

	grid := pathing.BuildGrid(&state.Game.Board)
	path, ok, err := ps.searcher.FindPath(start, req.Target, grid)
	if err != nil {
		return nil, fmt.Errorf("plan from %v to %v: %w", start, req.Target, err)
	}

	result := &PlanResult{
		SnapshotID: req.SnapshotID,
		Turn:       state.Game.Turn,
		Start:      start,
		Target:     req.Target,
		Reachable:  ok,
		Path:       []models.Position{},
		Direction:  models.Stay,
	}
	if ok {
		result.Path = path.Positions()
		result.Cost = int(path.Cost())
		if len(path) > 0 {
			result.Direction = pathing.ResolveDirection(start, path[0].Pos)
		}
	}
	result.Board = render.Text(grid, path)

	ps.mutex.Lock()
	ps.stats.Searches++
	if !ok {
		ps.stats.Unreachable++
	}
	ps.mutex.Unlock()

	return result, nil
}

// Stats returns the counters accumulated so far
func (ps *PlanService) Stats() PlanStats {
	ps.mutex.Lock()
	defer ps.mutex.Unlock()
	return ps.stats
}
