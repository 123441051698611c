package progression

import (
	"math"
	"math/rand"
	"strings"

	"ascension/internal/game"
)

// Archetype names a multiplier profile for generated combatants.
type Archetype string

const (
	ArchetypeBalanced Archetype = "balanced"
	ArchetypeTank     Archetype = "tank"
	ArchetypeAssassin Archetype = "assassin"
	ArchetypeCaster   Archetype = "caster"
	ArchetypeBoss     Archetype = "boss"
	ArchetypeTrivial  Archetype = "trivial"
)

type archetypeProfile struct {
	health, qi, attack, defense, speed float64
}

var archetypeProfiles = map[Archetype]archetypeProfile{
	ArchetypeBalanced: {health: 1.0, qi: 1.0, attack: 1.0, defense: 1.0, speed: 1.0},
	ArchetypeTank:     {health: 1.6, qi: 0.8, attack: 0.7, defense: 1.8, speed: 0.7},
	ArchetypeAssassin: {health: 0.7, qi: 0.9, attack: 1.5, defense: 0.6, speed: 1.6},
	ArchetypeCaster:   {health: 0.8, qi: 1.8, attack: 1.3, defense: 0.7, speed: 0.9},
	ArchetypeBoss:     {health: 1.8, qi: 1.5, attack: 1.4, defense: 1.4, speed: 1.2},
	ArchetypeTrivial:  {health: 0.5, qi: 0.5, attack: 0.5, defense: 0.5, speed: 0.6},
}

// archetypeKeywords maps free-text tag fragments to archetypes. First match
// in this order wins; boss outranks role keywords so a "demon boss, uses
// poison" tag set lands on boss.
var archetypeKeywords = []struct {
	archetype Archetype
	words     []string
}{
	{ArchetypeBoss, []string{"boss", "overlord", "patriarch", "matriarch", "sovereign"}},
	{ArchetypeTrivial, []string{"trivial", "weak", "mortal", "servant", "commoner"}},
	{ArchetypeTank, []string{"tank", "guardian", "shield", "body cultivator", "juggernaut"}},
	{ArchetypeAssassin, []string{"assassin", "rogue", "shadow", "killer", "swift"}},
	{ArchetypeCaster, []string{"caster", "mage", "sorcer", "array master", "alchemist"}},
}

// ArchetypeForTags selects a power archetype from a person's descriptive
// tags. No match defaults to balanced.
func ArchetypeForTags(tags []string) Archetype {
	joined := strings.ToLower(strings.Join(tags, " "))
	for _, entry := range archetypeKeywords {
		for _, word := range entry.words {
			if strings.Contains(joined, word) {
				return entry.archetype
			}
		}
	}
	return ArchetypeBalanced
}

// subTierSwing is the per-sub-tier power swing used for relative scaling:
// each sub-tier of distance between NPC and player shifts every stat by
// 12.5%, linear in distance rather than compounding.
const subTierSwing = 0.125

// Per-stat floors for generated combatants.
const (
	npcMinHealth = 5
	npcMinQi     = 1
	npcMinAttack = 1
	npcMinDef    = 0
	npcMinSpeed  = 1
)

// GenerateNPCStats derives a combatant's stat block from the player's
// current effective stats, the NPC's tier label and its descriptive tags.
// Model-supplied numerics are never consulted. rng may be nil for the global
// source; tests inject a seeded one.
func GenerateNPCStats(playerEff game.StatBlock, playerRealm, npcRealm string, tags []string, realms, stages []string, rng *rand.Rand) game.StatBlock {
	playerPos := RealmPosition(playerRealm, realms, stages)
	npcPos := RealmPosition(npcRealm, realms, stages)

	scale := 1 + subTierSwing*float64(npcPos-playerPos)
	if scale < 0.1 {
		scale = 0.1
	}

	profile := archetypeProfiles[ArchetypeForTags(tags)]

	variance := func() float64 {
		if rng == nil {
			return 0.95 + 0.1*rand.Float64()
		}
		return 0.95 + 0.1*rng.Float64()
	}

	derive := func(playerStat int, ratio float64, min int) int {
		v := int(math.Floor(float64(playerStat) * scale * ratio * variance()))
		if v < min {
			return min
		}
		return v
	}

	stats := game.StatBlock{
		MaxHealth: derive(playerEff.MaxHealth, profile.health, npcMinHealth),
		MaxQi:     derive(playerEff.MaxQi, profile.qi, npcMinQi),
		Attack:    derive(playerEff.Attack, profile.attack, npcMinAttack),
		Defense:   derive(playerEff.Defense, profile.defense, npcMinDef),
		Speed:     derive(playerEff.Speed, profile.speed, npcMinSpeed),
	}
	stats.Health = stats.MaxHealth
	stats.Qi = stats.MaxQi
	stats.ExpToNext = RealmBaseStats(npcRealm, realms, stages).ExpToNext
	return stats
}
