package progression

import (
	"testing"

	"ascension/internal/game"
)

func TestEffectiveStatsAggregation(t *testing.T) {
	base := game.StatBlock{
		Health: 80, MaxHealth: 100,
		Qi: 50, MaxQi: 50,
		Attack: 20, Defense: 10, Speed: 10,
	}
	equipment := []game.Item{
		{
			Name: "Azure Sword", Equipped: true,
			Bonuses: []game.StatModifier{{Stat: game.StatAttack, Flat: 5}},
		},
		{
			Name: "Stored Robe", Equipped: false,
			Bonuses: []game.StatModifier{{Stat: game.StatDefense, Flat: 100}},
		},
	}
	effects := []game.StatusEffect{
		{
			Name: "Blood Surge", Turns: 3,
			Modifiers: []game.StatModifier{{Stat: game.StatHealth, Pct: 0.5}},
		},
	}

	got := EffectiveStats(base, equipment, effects)

	if got.Attack != 25 {
		t.Fatalf("expected attack 25, got %d", got.Attack)
	}
	if got.Defense != 10 {
		t.Fatalf("unequipped item must not contribute: defense %d", got.Defense)
	}
	if got.MaxHealth != 150 {
		t.Fatalf("expected max health 150, got %d", got.MaxHealth)
	}
	if got.Health != 80 {
		t.Fatalf("current health should survive unchanged below max, got %d", got.Health)
	}
}

func TestEffectiveStatsIdempotent(t *testing.T) {
	base := game.StatBlock{Health: 40, MaxHealth: 60, Qi: 10, MaxQi: 30, Attack: 12, Defense: 4, Speed: 8}
	equipment := []game.Item{{Name: "Ring", Equipped: true, Bonuses: []game.StatModifier{{Stat: game.StatQi, Pct: 0.2}}}}
	effects := []game.StatusEffect{{Name: "Chill", Modifiers: []game.StatModifier{{Stat: game.StatSpeed, Flat: -3}}}}

	first := EffectiveStats(base, equipment, effects)
	second := EffectiveStats(base, equipment, effects)
	if first != second {
		t.Fatalf("same inputs must give the same aggregation: %+v vs %+v", first, second)
	}

	// With no modifiers, re-running over its own output is a no-op beyond
	// the first run's clamping.
	clamped := EffectiveStats(first, nil, nil)
	if clamped != EffectiveStats(clamped, nil, nil) {
		t.Fatalf("aggregation accumulated across runs")
	}
}

func TestEffectiveStatsClampsCurrents(t *testing.T) {
	base := game.StatBlock{Health: 90, MaxHealth: 100, Qi: 45, MaxQi: 50, Attack: 10, Speed: 5}
	effects := []game.StatusEffect{
		{Name: "Withering", Modifiers: []game.StatModifier{{Stat: game.StatHealth, Pct: -0.5}}},
	}

	got := EffectiveStats(base, nil, effects)

	if got.MaxHealth != 50 {
		t.Fatalf("expected max health 50, got %d", got.MaxHealth)
	}
	if got.Health != 50 {
		t.Fatalf("current health must clamp into [0,max], got %d", got.Health)
	}
}

func TestEffectiveStatsNeverNegative(t *testing.T) {
	base := game.StatBlock{Health: 10, MaxHealth: 10, Qi: 5, MaxQi: 5, Attack: 2, Speed: 1}
	effects := []game.StatusEffect{
		{Name: "Crush", Modifiers: []game.StatModifier{{Stat: game.StatAttack, Flat: -100}}},
	}

	got := EffectiveStats(base, nil, effects)
	if got.Attack != 0 {
		t.Fatalf("stats floor at zero, got attack %d", got.Attack)
	}
}
