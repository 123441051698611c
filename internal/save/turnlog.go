package save

import (
	"encoding/json"
	"fmt"
	"time"
)

// TurnLog is one recorded narration exchange, kept for replay and prompt
// quality review.
type TurnLog struct {
	ID           int       `json:"id"`
	Timestamp    time.Time `json:"timestamp"`
	State        string    `json:"state"`
	PlayerInput  string    `json:"player_input"`
	Narration    string    `json:"narration"`
	CommandCount int       `json:"command_count"`
	Metadata     string    `json:"metadata"`
	Rating       *int      `json:"rating,omitempty"`
	Notes        *string   `json:"notes,omitempty"`
}

type TurnMetadata struct {
	Model         string        `json:"model"`
	MaxTokens     int           `json:"max_tokens"`
	ResponseTime  time.Duration `json:"response_time_ms"`
	StreamingUsed bool          `json:"streaming_used"`
	Error         *string       `json:"error,omitempty"`
}

// LogTurn records one completed exchange. The state argument is the state
// the turn started from, so a logged turn can be replayed.
func (s *Store) LogTurn(state interface{}, playerInput, narration string, commandCount int, metadata TurnMetadata) error {
	stateJSON, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	metadataJSON, err := json.Marshal(metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO turns (state, player_input, narration, command_count, metadata)
		VALUES (?, ?, ?, ?, ?)
	`, string(stateJSON), playerInput, narration, commandCount, string(metadataJSON))

	return err
}

// RecentTurns returns the newest turns first.
func (s *Store) RecentTurns(limit int) ([]TurnLog, error) {
	rows, err := s.db.Query(`
		SELECT id, timestamp, state, player_input, narration, command_count, metadata, rating, notes
		FROM turns
		ORDER BY timestamp DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var turns []TurnLog
	for rows.Next() {
		var t TurnLog
		err := rows.Scan(&t.ID, &t.Timestamp, &t.State, &t.PlayerInput,
			&t.Narration, &t.CommandCount, &t.Metadata, &t.Rating, &t.Notes)
		if err != nil {
			return nil, err
		}
		turns = append(turns, t)
	}
	return turns, rows.Err()
}

// RateTurn attaches a quality rating and optional notes to a logged turn.
func (s *Store) RateTurn(id int, rating int, notes string) error {
	var notesPtr *string
	if notes != "" {
		notesPtr = &notes
	}

	_, err := s.db.Exec(`
		UPDATE turns
		SET rating = ?, notes = ?
		WHERE id = ?
	`, rating, notesPtr, id)

	return err
}
