package progression

import (
	"testing"

	"ascension/internal/game"
)

func TestRealmBaseStatsMonotonic(t *testing.T) {
	realms := game.DefaultRealms
	stages := game.DefaultStages

	// Non-decreasing in major index at every fixed stage.
	for s := range stages {
		prev := 0
		for m := range realms {
			label := FormatRealmLabel(m, s, realms, stages)
			stats := RealmBaseStats(label, realms, stages)
			if stats.MaxHealth < prev {
				t.Fatalf("max health decreased at %s: %d < %d", label, stats.MaxHealth, prev)
			}
			prev = stats.MaxHealth
			if stats.MaxHealth <= 0 || stats.MaxQi <= 0 || stats.Attack <= 0 || stats.ExpToNext <= 0 || stats.Speed <= 0 {
				t.Fatalf("non-positive stat at %s: %+v", label, stats)
			}
		}
	}

	// Non-decreasing in stage within every major realm.
	for m := range realms {
		prev := 0
		for s := range stages {
			label := FormatRealmLabel(m, s, realms, stages)
			stats := RealmBaseStats(label, realms, stages)
			if stats.MaxHealth < prev {
				t.Fatalf("max health decreased at %s: %d < %d", label, stats.MaxHealth, prev)
			}
			prev = stats.MaxHealth
		}
	}
}

func TestGrowthRatioNeverBelowFloor(t *testing.T) {
	// Far beyond the decay horizon the per-step ratio must hold at the floor.
	deep := realmBaseValue(40) / realmBaseValue(39)
	if deep < growthFloor-1e-9 || deep > growthFloor+1e-9 {
		t.Fatalf("expected floor ratio %.2f, got %f", growthFloor, deep)
	}
}

func TestParseRealmLabelFallback(t *testing.T) {
	tests := []struct {
		name      string
		label     string
		wantMajor int
		wantMinor int
	}{
		{name: "unknown label", label: "Ancient Chaos God", wantMajor: 0, wantMinor: 0},
		{name: "major only", label: "Core Formation", wantMajor: 2, wantMinor: 0},
		{name: "major and minor", label: "Core Formation - Late", wantMajor: 2, wantMinor: 2},
		{name: "minor embedded", label: "Peak of Nascent Soul", wantMajor: 3, wantMinor: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			major, minor := ParseRealmLabel(tt.label, game.DefaultRealms, game.DefaultStages)
			if major != tt.wantMajor || minor != tt.wantMinor {
				t.Fatalf("expected (%d,%d), got (%d,%d)", tt.wantMajor, tt.wantMinor, major, minor)
			}
		})
	}
}

func TestMortalShortCircuit(t *testing.T) {
	stats := RealmBaseStats("Mortal", game.DefaultRealms, game.DefaultStages)
	if stats != MortalBaseStats() {
		t.Fatalf("expected mortal baseline, got %+v", stats)
	}

	cultivated := RealmBaseStats(game.DefaultRealms[0], game.DefaultRealms, game.DefaultStages)
	if cultivated.MaxHealth <= stats.MaxHealth {
		t.Fatalf("first realm should outclass a mortal: %d vs %d", cultivated.MaxHealth, stats.MaxHealth)
	}
}

func TestRealmPosition(t *testing.T) {
	realms := game.DefaultRealms
	stages := game.DefaultStages

	if pos := RealmPosition("Qi Refining - Early", realms, stages); pos != 0 {
		t.Fatalf("expected position 0, got %d", pos)
	}
	if pos := RealmPosition("Foundation Establishment - Middle", realms, stages); pos != 5 {
		t.Fatalf("expected position 5, got %d", pos)
	}
}
