package persistence

import (
	"errors"

	"vindinium-bot/models"
)

// ErrNotFound is returned when a snapshot id is unknown
var ErrNotFound = errors.New("snapshot not found")

// SnapshotInfo summarizes a stored snapshot
type SnapshotInfo struct {
	ID     string `json:"id"`
	GameID string `json:"game_id"`
	Turn   int    `json:"turn"`
}

// Storage defines the interface for snapshot persistence
type Storage interface {
	SaveSnapshot(id string, state *models.State) error
	LoadSnapshot(id string) (*models.State, error)
	ListSnapshots() ([]SnapshotInfo, error)
	Close() error
}
