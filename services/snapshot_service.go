package services

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"vindinium-bot/models"
	"vindinium-bot/persistence"
)

// SnapshotService stores turn snapshots for later replanning
type SnapshotService struct {
	snapshots map[string]*models.State
	db        persistence.Storage
	mutex     sync.RWMutex
}

// NewSnapshotService creates a new snapshot service
func NewSnapshotService(db persistence.Storage) *SnapshotService {
	return &SnapshotService{
		snapshots: make(map[string]*models.State),
		db:        db,
	}
}

// Save assigns an id to a snapshot and persists it
func (ss *SnapshotService) Save(state *models.State) (string, error) {
	if state == nil {
		return "", errors.New("snapshot is empty")
	}
	if state.Game.Board.Size == 0 {
		return "", errors.New("snapshot has no board")
	}

	id := uuid.New().String()
	if err := ss.db.SaveSnapshot(id, state); err != nil {
		return "", fmt.Errorf("failed to save snapshot: %v", err)
	}

	ss.mutex.Lock()
	ss.snapshots[id] = state
	ss.mutex.Unlock()

	return id, nil
}

// Get retrieves a snapshot from the cache or the database
func (ss *SnapshotService) Get(id string) (*models.State, error) {
	ss.mutex.RLock()
	state, exists := ss.snapshots[id]
	ss.mutex.RUnlock()
	if exists {
		return state, nil
	}

	state, err := ss.db.LoadSnapshot(id)
	if err != nil {
		return nil, err
	}

	ss.mutex.Lock()
	ss.snapshots[id] = state
	ss.mutex.Unlock()

	return state, nil
}

// List returns the stored snapshots
func (ss *SnapshotService) List() ([]persistence.SnapshotInfo, error) {
	return ss.db.ListSnapshots()
}
