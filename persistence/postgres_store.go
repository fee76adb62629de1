package persistence

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"

	"vindinium-bot/models"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// PostgresStore handles snapshot persistence using PostgreSQL
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a new PostgreSQL storage manager
func NewPostgresStore(connectionString string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %v", err)
	}

	store := &PostgresStore{db: db}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %v", err)
	}

	return store, nil
}

// initSchema initializes the database schema
func (ps *PostgresStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS snapshots (
		id TEXT PRIMARY KEY,
		game_id TEXT NOT NULL,
		turn INTEGER NOT NULL,
		board_size INTEGER NOT NULL,
		state JSONB NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS snapshots_game_turn ON snapshots (game_id, turn);
	`

	_, err := ps.db.Exec(schema)
	return err
}

// SaveSnapshot saves a snapshot to the database
func (ps *PostgresStore) SaveSnapshot(id string, state *models.State) error {
	stateJSON, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %v", err)
	}

	query := `
	INSERT INTO snapshots (id, game_id, turn, board_size, state)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (id)
	DO UPDATE SET
		game_id = $2, turn = $3, board_size = $4, state = $5,
		updated_at = NOW()
	`

	_, err = ps.db.Exec(query,
		id, state.Game.ID, state.Game.Turn, state.Game.Board.Size, string(stateJSON))
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %v", err)
	}

	return nil
}

// LoadSnapshot loads a snapshot from the database by ID
func (ps *PostgresStore) LoadSnapshot(id string) (*models.State, error) {
	var stateJSON string
	err := ps.db.QueryRow(`SELECT state FROM snapshots WHERE id = $1`, id).Scan(&stateJSON)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("snapshot %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load snapshot: %v", err)
	}

	var state models.State
	if err := json.Unmarshal([]byte(stateJSON), &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %v", err)
	}

	return &state, nil
}

// ListSnapshots lists stored snapshots ordered by game and turn
func (ps *PostgresStore) ListSnapshots() ([]SnapshotInfo, error) {
	rows, err := ps.db.Query(`SELECT id, game_id, turn FROM snapshots ORDER BY game_id, turn, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %v", err)
	}
	defer rows.Close()

	var infos []SnapshotInfo
	for rows.Next() {
		var info SnapshotInfo
		if err := rows.Scan(&info.ID, &info.GameID, &info.Turn); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %v", err)
		}
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %v", err)
	}

	return infos, nil
}

// Close closes the database connection
func (ps *PostgresStore) Close() error {
	log.Println("Closing database connection...")
	return ps.db.Close()
}
