package save

import (
	"path/filepath"
	"testing"

	"ascension/internal/game"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSnapshotRoundTrip(t *testing.T) {
	store := openTestStore(t)

	st := game.NewDefaultState("Han Li")
	st.Player.Realm = "Foundation Establishment - Middle"
	st.Player.SpiritStones = 1234
	st.NPCs = append(st.NPCs, game.Person{Name: "Lin Wu", Realm: "Qi Refining - Late"})

	id, err := store.SaveSnapshot("before tribulation", st)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if id == "" {
		t.Fatalf("expected a snapshot id")
	}

	loaded, err := store.LoadSnapshot(id)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Player.Realm != st.Player.Realm || loaded.Player.SpiritStones != 1234 {
		t.Fatalf("player not restored: %+v", loaded.Player)
	}
	if len(loaded.NPCs) != 1 || loaded.NPCs[0].Name != "Lin Wu" {
		t.Fatalf("npcs not restored: %+v", loaded.NPCs)
	}
}

func TestLoadLatestEmpty(t *testing.T) {
	store := openTestStore(t)

	_, found, err := store.LoadLatest()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Fatalf("empty store must report no snapshot")
	}
}

func TestLoadLatestPicksNewest(t *testing.T) {
	store := openTestStore(t)

	first := game.NewDefaultState("Han Li")
	if _, err := store.SaveSnapshot("first", first); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	second := game.NewDefaultState("Han Li")
	second.Player.SpiritStones = 999
	if _, err := store.SaveSnapshot("second", second); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, found, err := store.LoadLatest()
	if err != nil || !found {
		t.Fatalf("expected latest snapshot, found=%v err=%v", found, err)
	}
	if loaded.Player.SpiritStones != 999 {
		t.Fatalf("expected the newest snapshot, got %d stones", loaded.Player.SpiritStones)
	}
}

func TestListSnapshots(t *testing.T) {
	store := openTestStore(t)

	for _, label := range []string{"a", "b", "c"} {
		if _, err := store.SaveSnapshot(label, game.NewDefaultState("Han Li")); err != nil {
			t.Fatalf("save failed: %v", err)
		}
	}

	infos, err := store.ListSnapshots(2)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(infos))
	}
}

func TestTurnLogRoundTrip(t *testing.T) {
	store := openTestStore(t)

	st := game.NewDefaultState("Han Li")
	err := store.LogTurn(st, "meditate", "You sit cross-legged...", 2, TurnMetadata{
		Model:         "gpt-5-2025-08-07",
		MaxTokens:     1200,
		StreamingUsed: true,
	})
	if err != nil {
		t.Fatalf("log failed: %v", err)
	}

	turns, err := store.RecentTurns(10)
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(turns) != 1 {
		t.Fatalf("expected one turn, got %d", len(turns))
	}
	if turns[0].PlayerInput != "meditate" || turns[0].CommandCount != 2 {
		t.Fatalf("turn not recorded faithfully: %+v", turns[0])
	}

	if err := store.RateTurn(turns[0].ID, 5, "good pacing"); err != nil {
		t.Fatalf("rate failed: %v", err)
	}
	turns, _ = store.RecentTurns(1)
	if turns[0].Rating == nil || *turns[0].Rating != 5 {
		t.Fatalf("rating not stored: %+v", turns[0])
	}
}
