package progression

import (
	"math/rand"
	"testing"

	"ascension/internal/game"
)

func TestArchetypeForTags(t *testing.T) {
	tests := []struct {
		name string
		tags []string
		want Archetype
	}{
		{name: "boss outranks role words", tags: []string{"demon boss", "uses poison"}, want: ArchetypeBoss},
		{name: "tank keyword", tags: []string{"sect guardian"}, want: ArchetypeTank},
		{name: "caster keyword", tags: []string{"fire sorcerer"}, want: ArchetypeCaster},
		{name: "no match defaults balanced", tags: []string{"wandering merchant"}, want: ArchetypeBalanced},
		{name: "empty tags", tags: nil, want: ArchetypeBalanced},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ArchetypeForTags(tt.tags); got != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestGenerateNPCStatsScaling(t *testing.T) {
	realms := game.DefaultRealms
	stages := game.DefaultStages
	player := game.StatBlock{MaxHealth: 1000, MaxQi: 800, Attack: 200, Defense: 100, Speed: 50}
	playerRealm := "Core Formation - Early"

	rng := rand.New(rand.NewSource(1))
	equal := GenerateNPCStats(player, playerRealm, "Core Formation - Early", nil, realms, stages, rng)

	// Same tier, balanced archetype: within variance of the player.
	if equal.MaxHealth < 900 || equal.MaxHealth > 1100 {
		t.Fatalf("same-tier balanced NPC should be near player health, got %d", equal.MaxHealth)
	}

	rng = rand.New(rand.NewSource(1))
	stronger := GenerateNPCStats(player, playerRealm, "Core Formation - Peak", nil, realms, stages, rng)
	// Three sub-tiers up: +37.5% before variance.
	if stronger.MaxHealth <= equal.MaxHealth {
		t.Fatalf("higher-tier NPC must be stronger: %d vs %d", stronger.MaxHealth, equal.MaxHealth)
	}

	rng = rand.New(rand.NewSource(1))
	weaker := GenerateNPCStats(player, playerRealm, "Qi Refining - Early", nil, realms, stages, rng)
	if weaker.MaxHealth >= equal.MaxHealth {
		t.Fatalf("lower-tier NPC must be weaker: %d vs %d", weaker.MaxHealth, equal.MaxHealth)
	}
}

func TestGenerateNPCStatsArchetypeSkew(t *testing.T) {
	realms := game.DefaultRealms
	stages := game.DefaultStages
	player := game.StatBlock{MaxHealth: 1000, MaxQi: 800, Attack: 200, Defense: 100, Speed: 50}

	rng := rand.New(rand.NewSource(7))
	tank := GenerateNPCStats(player, "Core Formation", "Core Formation", []string{"mountain guardian"}, realms, stages, rng)
	rng = rand.New(rand.NewSource(7))
	assassin := GenerateNPCStats(player, "Core Formation", "Core Formation", []string{"shadow killer"}, realms, stages, rng)

	if tank.MaxHealth <= assassin.MaxHealth {
		t.Fatalf("tank should out-health assassin: %d vs %d", tank.MaxHealth, assassin.MaxHealth)
	}
	if tank.Attack >= assassin.Attack {
		t.Fatalf("assassin should out-damage tank: %d vs %d", assassin.Attack, tank.Attack)
	}
}

func TestGenerateNPCStatsFloors(t *testing.T) {
	// A trivial NPC scaled down from a weak player still gets positive stats.
	player := game.StatBlock{MaxHealth: 10, MaxQi: 5, Attack: 2, Defense: 0, Speed: 1}
	rng := rand.New(rand.NewSource(3))

	got := GenerateNPCStats(player, "True Immortal - Peak", "Qi Refining - Early", []string{"weak servant"}, game.DefaultRealms, game.DefaultStages, rng)

	if got.MaxHealth < npcMinHealth || got.MaxQi < npcMinQi || got.Attack < npcMinAttack || got.Speed < npcMinSpeed {
		t.Fatalf("floors violated: %+v", got)
	}
	if got.Health != got.MaxHealth || got.Qi != got.MaxQi {
		t.Fatalf("generated NPCs start at full health and qi: %+v", got)
	}
}
