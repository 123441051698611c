package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"ascension/internal/game"
	"ascension/internal/save"
)

// GameStateInput selects which snapshot to read. An empty snapshot id
// means the most recent one.
type GameStateInput struct {
	SnapshotID string `json:"snapshot_id,omitempty" jsonschema:"snapshot id, defaults to the latest snapshot"`
}

// GameStateResult is the full state document of one snapshot.
type GameStateResult struct {
	State game.State `json:"state"`
}

// FindPersonInput names the person to look up.
type FindPersonInput struct {
	Name string `json:"name" jsonschema:"person name, matched case-insensitively"`
}

// FindPersonResult reports where a person lives in the latest snapshot.
type FindPersonResult struct {
	Found  bool         `json:"found"`
	Role   string       `json:"role,omitempty"`
	Person *game.Person `json:"person,omitempty"`
}

// ListSnapshotsInput bounds the snapshot listing.
type ListSnapshotsInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"maximum rows to return, defaults to 10"`
}

// ListSnapshotsResult lists stored snapshots, newest first.
type ListSnapshotsResult struct {
	Snapshots []save.SnapshotInfo `json:"snapshots"`
}

// RecentTurnsInput bounds the turn listing.
type RecentTurnsInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"maximum rows to return, defaults to 10"`
}

// TurnSummary is one logged exchange without the embedded state blob.
type TurnSummary struct {
	ID           int       `json:"id"`
	Timestamp    time.Time `json:"timestamp"`
	PlayerInput  string    `json:"player_input"`
	Narration    string    `json:"narration"`
	CommandCount int       `json:"command_count"`
	Rating       *int      `json:"rating,omitempty"`
	Notes        *string   `json:"notes,omitempty"`
}

// RecentTurnsResult lists logged turns, newest first.
type RecentTurnsResult struct {
	Turns []TurnSummary `json:"turns"`
}

func registerTools(mcpServer *mcp.Server, store *save.Store) {
	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "get_game_state",
		Description: "Returns the full game state of a saved snapshot",
	}, gameStateHandler(store))
	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "get_person",
		Description: "Looks up a person by name across the latest snapshot",
	}, findPersonHandler(store))
	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "list_snapshots",
		Description: "Lists saved snapshots, newest first",
	}, listSnapshotsHandler(store))
	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "recent_turns",
		Description: "Lists recent narration turns without their state blobs",
	}, recentTurnsHandler(store))
}

func gameStateHandler(store *save.Store) mcp.ToolHandlerFor[GameStateInput, GameStateResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GameStateInput) (*mcp.CallToolResult, GameStateResult, error) {
		if input.SnapshotID != "" {
			st, err := store.LoadSnapshot(input.SnapshotID)
			if err != nil {
				return nil, GameStateResult{}, err
			}
			return nil, GameStateResult{State: st}, nil
		}

		st, ok, err := store.LoadLatest()
		if err != nil {
			return nil, GameStateResult{}, err
		}
		if !ok {
			return nil, GameStateResult{}, fmt.Errorf("no snapshots saved yet")
		}
		return nil, GameStateResult{State: st}, nil
	}
}

func findPersonHandler(store *save.Store) mcp.ToolHandlerFor[FindPersonInput, FindPersonResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input FindPersonInput) (*mcp.CallToolResult, FindPersonResult, error) {
		if input.Name == "" {
			return nil, FindPersonResult{}, fmt.Errorf("name is required")
		}

		st, ok, err := store.LoadLatest()
		if err != nil {
			return nil, FindPersonResult{}, err
		}
		if !ok {
			return nil, FindPersonResult{}, fmt.Errorf("no snapshots saved yet")
		}

		lists := []struct {
			role    string
			persons []game.Person
		}{
			{"npc", st.NPCs},
			{"wife", st.Wives},
			{"slave", st.Slaves},
			{"prisoner", st.Prisoners},
		}
		for _, l := range lists {
			if i := game.FindPerson(l.persons, input.Name); i >= 0 {
				p := l.persons[i]
				return nil, FindPersonResult{Found: true, Role: l.role, Person: &p}, nil
			}
		}
		return nil, FindPersonResult{Found: false}, nil
	}
}

func listSnapshotsHandler(store *save.Store) mcp.ToolHandlerFor[ListSnapshotsInput, ListSnapshotsResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ListSnapshotsInput) (*mcp.CallToolResult, ListSnapshotsResult, error) {
		limit := input.Limit
		if limit <= 0 {
			limit = 10
		}
		infos, err := store.ListSnapshots(limit)
		if err != nil {
			return nil, ListSnapshotsResult{}, err
		}
		return nil, ListSnapshotsResult{Snapshots: infos}, nil
	}
}

func recentTurnsHandler(store *save.Store) mcp.ToolHandlerFor[RecentTurnsInput, RecentTurnsResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input RecentTurnsInput) (*mcp.CallToolResult, RecentTurnsResult, error) {
		limit := input.Limit
		if limit <= 0 {
			limit = 10
		}
		turns, err := store.RecentTurns(limit)
		if err != nil {
			return nil, RecentTurnsResult{}, err
		}

		summaries := make([]TurnSummary, 0, len(turns))
		for _, t := range turns {
			summaries = append(summaries, TurnSummary{
				ID:           t.ID,
				Timestamp:    t.Timestamp,
				PlayerInput:  t.PlayerInput,
				Narration:    t.Narration,
				CommandCount: t.CommandCount,
				Rating:       t.Rating,
				Notes:        t.Notes,
			})
		}
		return nil, RecentTurnsResult{Turns: summaries}, nil
	}
}
