package processors

import (
	"testing"

	"ascension/internal/game"
)

func TestEntityProcessorDescriptionOnlyUpdate(t *testing.T) {
	env := testEnv()
	st := testState()
	st.Entities = []game.Entity{{
		Name:        "Azure Cloud Sect",
		Category:    "location",
		Description: "a mid-tier sect in the eastern mountains",
		Tags:        []string{"sect"},
	}}

	proc := &EntityProcessor{CommandName: "LOCATION", DefaultCategory: "location"}
	st, _ = proc.Apply(env, st, map[string]string{
		"name":        "Azure Cloud Sect",
		"description": "half-razed after the beast tide",
	})

	if len(st.Entities) != 1 {
		t.Fatalf("expected an in-place update, got %d entities", len(st.Entities))
	}
	record := st.Entities[0]
	if record.Description != "half-razed after the beast tide" {
		t.Fatalf("description not updated: %q", record.Description)
	}
	if record.Name != "Azure Cloud Sect" || record.Category != "location" {
		t.Fatalf("omitted fields must be untouched: %+v", record)
	}
	if len(record.Tags) != 1 || record.Tags[0] != "sect" {
		t.Fatalf("tags must be preserved when not supplied: %v", record.Tags)
	}
}

func TestEntityProcessorDefaultCategory(t *testing.T) {
	env := testEnv()
	st := testState()

	lore := &EntityProcessor{CommandName: "LORE", DefaultCategory: "lore"}
	st, updates := lore.Apply(env, st, map[string]string{"name": "Heavenly Dao", "description": "the will of the world"})

	if st.Entities[0].Category != "lore" {
		t.Fatalf("expected default category, got %q", st.Entities[0].Category)
	}
	if len(updates) != 1 || updates[0].Type != "lore" {
		t.Fatalf("unexpected index updates: %+v", updates)
	}
}

func TestFactionProcessorMergeAndDefaults(t *testing.T) {
	env := testEnv()
	st := testState()

	proc := &FactionProcessor{}
	st, _ = proc.Apply(env, st, map[string]string{"name": "Blood Demon Cult"})
	st, _ = proc.Apply(env, st, map[string]string{"name": "blood demon cult", "alignment": "hostile"})

	if len(st.Factions) != 1 {
		t.Fatalf("expected merged faction, got %d", len(st.Factions))
	}
	if st.Factions[0].Alignment != "hostile" {
		t.Fatalf("alignment not updated: %q", st.Factions[0].Alignment)
	}
}

func TestFactionProcessorDoesNotMutateInput(t *testing.T) {
	env := testEnv()
	st := testState()
	st.Factions = []game.Faction{{Name: "Azure Cloud Sect", Alignment: "neutral"}}

	proc := &FactionProcessor{}
	after, _ := proc.Apply(env, st, map[string]string{"name": "Azure Cloud Sect", "alignment": "allied"})

	if st.Factions[0].Alignment != "neutral" {
		t.Fatalf("input state mutated in place")
	}
	if after.Factions[0].Alignment != "allied" {
		t.Fatalf("output state missing the update")
	}
}
