package mcp

import (
	"context"
	"path/filepath"
	"testing"

	"ascension/internal/game"
	"ascension/internal/save"
)

func openTestStore(t *testing.T) *save.Store {
	t.Helper()
	store, err := save.Open(filepath.Join(t.TempDir(), "inspect.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestGameStateHandlerReadsLatest(t *testing.T) {
	store := openTestStore(t)

	st := game.NewDefaultState("Han Li")
	st.Player.SpiritStones = 77
	if _, err := store.SaveSnapshot("test", st); err != nil {
		t.Fatalf("save snapshot: %v", err)
	}

	handler := gameStateHandler(store)
	_, result, err := handler(context.Background(), nil, GameStateInput{})
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	if result.State.Player.Name != "Han Li" {
		t.Errorf("expected player Han Li, got %q", result.State.Player.Name)
	}
	if result.State.Player.SpiritStones != 77 {
		t.Errorf("expected 77 spirit stones, got %d", result.State.Player.SpiritStones)
	}
}

func TestGameStateHandlerEmptyStore(t *testing.T) {
	store := openTestStore(t)

	handler := gameStateHandler(store)
	if _, _, err := handler(context.Background(), nil, GameStateInput{}); err == nil {
		t.Fatal("expected error for empty store")
	}
}

func TestGetPersonHandlerSearchesAllLists(t *testing.T) {
	store := openTestStore(t)

	st := game.NewDefaultState("Han Li")
	st.NPCs = []game.Person{{Name: "Elder Mo", Affinity: 20}}
	st.Prisoners = []game.Person{{Name: "Bandit Chief"}}
	if _, err := store.SaveSnapshot("test", st); err != nil {
		t.Fatalf("save snapshot: %v", err)
	}

	handler := findPersonHandler(store)

	_, result, err := handler(context.Background(), nil, FindPersonInput{Name: "bandit chief"})
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	if !result.Found || result.Role != "prisoner" {
		t.Errorf("expected prisoner found, got found=%v role=%q", result.Found, result.Role)
	}
	if result.Person == nil || result.Person.Name != "Bandit Chief" {
		t.Errorf("unexpected person: %+v", result.Person)
	}

	_, result, err = handler(context.Background(), nil, FindPersonInput{Name: "Nobody"})
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	if result.Found {
		t.Error("expected unknown name to report not found")
	}
}

func TestRecentTurnsHandlerOmitsStateBlob(t *testing.T) {
	store := openTestStore(t)

	st := game.NewDefaultState("Han Li")
	err := store.LogTurn(st, "meditate", "You settle into the lotus position.", 2, save.TurnMetadata{Model: "test"})
	if err != nil {
		t.Fatalf("log turn: %v", err)
	}

	handler := recentTurnsHandler(store)
	_, result, err := handler(context.Background(), nil, RecentTurnsInput{})
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	if len(result.Turns) != 1 {
		t.Fatalf("expected 1 turn, got %d", len(result.Turns))
	}
	turn := result.Turns[0]
	if turn.PlayerInput != "meditate" || turn.CommandCount != 2 {
		t.Errorf("unexpected turn summary: %+v", turn)
	}
}
