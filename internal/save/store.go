// Package save persists game snapshots and the per-turn narration log in a
// single sqlite database.
package save

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"ascension/internal/game"
)

type Store struct {
	db *sql.DB
}

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.createTables(); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return store, nil
}

func (s *Store) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS snapshots (
		id TEXT PRIMARY KEY,
		label TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		state TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_snapshots_created_at ON snapshots(created_at);

	CREATE TABLE IF NOT EXISTS turns (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
		state TEXT NOT NULL,
		player_input TEXT NOT NULL,
		narration TEXT NOT NULL,
		command_count INTEGER NOT NULL,
		metadata TEXT NOT NULL,
		rating INTEGER,
		notes TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_turns_timestamp ON turns(timestamp);
	CREATE INDEX IF NOT EXISTS idx_turns_rating ON turns(rating);
	`

	_, err := s.db.Exec(schema)
	return err
}

// SnapshotInfo is the listing row for a stored snapshot.
type SnapshotInfo struct {
	ID        string    `json:"id"`
	Label     string    `json:"label"`
	CreatedAt time.Time `json:"created_at"`
}

// SaveSnapshot stores the state under a fresh id and returns it.
func (s *Store) SaveSnapshot(label string, st game.State) (string, error) {
	stateJSON, err := json.Marshal(st)
	if err != nil {
		return "", fmt.Errorf("failed to marshal state: %w", err)
	}

	id := uuid.NewString()
	_, err = s.db.Exec(`
		INSERT INTO snapshots (id, label, state)
		VALUES (?, ?, ?)
	`, id, label, string(stateJSON))
	if err != nil {
		return "", err
	}
	return id, nil
}

// LoadSnapshot restores a snapshot by id.
func (s *Store) LoadSnapshot(id string) (game.State, error) {
	var stateJSON string
	err := s.db.QueryRow(`SELECT state FROM snapshots WHERE id = ?`, id).Scan(&stateJSON)
	if err != nil {
		return game.State{}, fmt.Errorf("failed to load snapshot %s: %w", id, err)
	}

	var st game.State
	if err := json.Unmarshal([]byte(stateJSON), &st); err != nil {
		return game.State{}, fmt.Errorf("failed to decode snapshot %s: %w", id, err)
	}
	return st, nil
}

// LoadLatest restores the most recent snapshot. The second return is false
// when no snapshot exists yet.
func (s *Store) LoadLatest() (game.State, bool, error) {
	var stateJSON string
	err := s.db.QueryRow(`
		SELECT state FROM snapshots
		ORDER BY created_at DESC, rowid DESC
		LIMIT 1
	`).Scan(&stateJSON)
	if err == sql.ErrNoRows {
		return game.State{}, false, nil
	}
	if err != nil {
		return game.State{}, false, err
	}

	var st game.State
	if err := json.Unmarshal([]byte(stateJSON), &st); err != nil {
		return game.State{}, false, fmt.Errorf("failed to decode latest snapshot: %w", err)
	}
	return st, true, nil
}

// ListSnapshots returns the newest snapshots first.
func (s *Store) ListSnapshots(limit int) ([]SnapshotInfo, error) {
	rows, err := s.db.Query(`
		SELECT id, label, created_at FROM snapshots
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var infos []SnapshotInfo
	for rows.Next() {
		var info SnapshotInfo
		if err := rows.Scan(&info.ID, &info.Label, &info.CreatedAt); err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

func (s *Store) Close() error {
	return s.db.Close()
}
