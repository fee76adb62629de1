package persistence

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"

	"vindinium-bot/models"
)

// JSONStore handles snapshot persistence using a local JSON file
type JSONStore struct {
	filePath string
	mutex    sync.RWMutex
	data     *JSONData
}

// JSONData represents the structure of the JSON database
type JSONData struct {
	Snapshots map[string]*models.State `json:"snapshots"`
}

// NewJSONStore creates a new JSON storage manager
func NewJSONStore(filePath string) (*JSONStore, error) {
	store := &JSONStore{
		filePath: filePath,
		data: &JSONData{
			Snapshots: make(map[string]*models.State),
		},
	}

	// Load existing data if file exists
	if _, err := os.Stat(filePath); err == nil {
		if err := store.loadFromFile(); err != nil {
			return nil, fmt.Errorf("failed to load JSON store: %v", err)
		}
	} else {
		if err := store.saveToFile(); err != nil {
			return nil, fmt.Errorf("failed to create JSON store file: %v", err)
		}
	}

	return store, nil
}

// loadFromFile loads data from the JSON file
func (js *JSONStore) loadFromFile() error {
	js.mutex.Lock()
	defer js.mutex.Unlock()

	file, err := os.ReadFile(js.filePath)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(file, js.data); err != nil {
		return err
	}
	if js.data.Snapshots == nil {
		js.data.Snapshots = make(map[string]*models.State)
	}
	return nil
}

// saveToFile saves data to the JSON file; the caller holds the write lock
func (js *JSONStore) saveToFile() error {
	data, err := json.MarshalIndent(js.data, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(js.filePath, data, 0644)
}

// SaveSnapshot saves a snapshot to the store
func (js *JSONStore) SaveSnapshot(id string, state *models.State) error {
	js.mutex.Lock()
	defer js.mutex.Unlock()

	prev, existed := js.data.Snapshots[id]
	js.data.Snapshots[id] = state
	if err := js.saveToFile(); err != nil {
		if existed {
			js.data.Snapshots[id] = prev
		} else {
			delete(js.data.Snapshots, id)
		}
		return err
	}
	return nil
}

// LoadSnapshot loads a snapshot by ID
func (js *JSONStore) LoadSnapshot(id string) (*models.State, error) {
	js.mutex.RLock()
	defer js.mutex.RUnlock()

	state, exists := js.data.Snapshots[id]
	if !exists {
		return nil, fmt.Errorf("snapshot %s: %w", id, ErrNotFound)
	}

	return state, nil
}

// ListSnapshots lists stored snapshots ordered by game and turn
func (js *JSONStore) ListSnapshots() ([]SnapshotInfo, error) {
	js.mutex.RLock()
	defer js.mutex.RUnlock()

	infos := make([]SnapshotInfo, 0, len(js.data.Snapshots))
	for id, state := range js.data.Snapshots {
		infos = append(infos, SnapshotInfo{ID: id, GameID: state.Game.ID, Turn: state.Game.Turn})
	}
	sortInfos(infos)
	return infos, nil
}

// Close closes the store (no-op for JSON store)
func (js *JSONStore) Close() error {
	return nil
}

func sortInfos(infos []SnapshotInfo) {
	sort.Slice(infos, func(i, j int) bool {
		if infos[i].GameID != infos[j].GameID {
			return infos[i].GameID < infos[j].GameID
		}
		if infos[i].Turn != infos[j].Turn {
			return infos[i].Turn < infos[j].Turn
		}
		return infos[i].ID < infos[j].ID
	})
}
