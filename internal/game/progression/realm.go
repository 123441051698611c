// Package progression implements the numeric power system: realm-indexed
// base stats, equipment/status aggregation, experience-driven advancement,
// relative NPC generation and economic valuation. Every function is pure and
// clamps its outputs; the narrator model can request anything, the engine
// only ever produces bounded values.
package progression

import (
	"math"
	"strings"

	"ascension/internal/game"
)

// Base-value curve constants. Each major realm multiplies the previous
// realm's base by a ratio that starts high and decays per step, so growth
// continues but slows in relative terms. The ratio never drops below the
// floor.
const (
	firstRealmBase = 100.0
	growthStart    = 2.0
	growthDecay    = 0.1
	growthFloor    = 1.25
)

// Derived-stat ratios over the realm's final value, with hard minimums so no
// stat is ever zero or negative.
const (
	healthRatio = 1.2
	qiRatio     = 1.0
	attackRatio = 0.3
	expRatio    = 2.0
	speedRatio  = 0.08

	minHealth = 10
	minQi     = 10
	minAttack = 2
	minExp    = 10
	minSpeed  = 1
)

// ParseRealmLabel decomposes a tier label into major and minor indices over
// the configured ladders. Unresolvable parts default to index 0, so an
// unknown label lands on the lowest realm rather than failing.
func ParseRealmLabel(label string, realms, stages []string) (major, minor int) {
	lower := strings.ToLower(label)

	// Longest realm name wins, so "Spirit Severing" is not shadowed by a
	// hypothetical shorter ladder entry it contains.
	bestLen := 0
	for i, realm := range realms {
		if strings.Contains(lower, strings.ToLower(realm)) && len(realm) > bestLen {
			major = i
			bestLen = len(realm)
		}
	}
	bestLen = 0
	for i, stage := range stages {
		if strings.Contains(lower, strings.ToLower(stage)) && len(stage) > bestLen {
			minor = i
			bestLen = len(stage)
		}
	}
	return major, minor
}

// FormatRealmLabel renders (major, minor) back into a display label.
func FormatRealmLabel(major, minor int, realms, stages []string) string {
	if len(realms) == 0 {
		return game.MortalRealm
	}
	major = game.ClampInt(major, 0, len(realms)-1)
	if len(stages) == 0 {
		return realms[major]
	}
	minor = game.ClampInt(minor, 0, len(stages)-1)
	return realms[major] + " - " + stages[minor]
}

// IsMortal reports whether a label means an ordinary, uncultivated person.
func IsMortal(label string) bool {
	return label == "" || strings.EqualFold(strings.TrimSpace(label), game.MortalRealm)
}

// realmBaseValue computes the decaying-geometric base value for a major
// realm index.
func realmBaseValue(major int) float64 {
	value := firstRealmBase
	ratio := growthStart
	for i := 1; i <= major; i++ {
		value *= ratio
		ratio -= growthDecay
		if ratio < growthFloor {
			ratio = growthFloor
		}
	}
	return value
}

// realmFinalValue adds the linear minor-stage increment on top of the major
// base value.
func realmFinalValue(major, minor int, stageCount int) float64 {
	base := realmBaseValue(major)
	if stageCount <= 0 {
		return base
	}
	return base + float64(minor)*(base/float64(stageCount))
}

// MortalBaseStats is the fixed baseline for uncultivated persons.
func MortalBaseStats() game.StatBlock {
	return game.StatBlock{
		Health: 20, MaxHealth: 20,
		Qi: 10, MaxQi: 10,
		Attack: 3, Speed: 5,
		ExpToNext: minExp * 10,
	}
}

// RealmBaseStats computes the base stat block for a tier label. Current
// health and qi are returned at their maxima; callers merging into an
// existing block keep their own current values and re-clamp.
func RealmBaseStats(label string, realms, stages []string) game.StatBlock {
	if IsMortal(label) {
		return MortalBaseStats()
	}

	major, minor := ParseRealmLabel(label, realms, stages)
	final := realmFinalValue(major, minor, len(stages))

	floorAtLeast := func(v float64, min int) int {
		n := int(math.Floor(v))
		if n < min {
			return min
		}
		return n
	}

	stats := game.StatBlock{
		MaxHealth: floorAtLeast(final*healthRatio, minHealth),
		MaxQi:     floorAtLeast(final*qiRatio, minQi),
		Attack:    floorAtLeast(final*attackRatio, minAttack),
		ExpToNext: floorAtLeast(final*expRatio, minExp),
		Speed:     floorAtLeast(final*speedRatio, minSpeed),
	}
	stats.Health = stats.MaxHealth
	stats.Qi = stats.MaxQi
	return stats
}

// RealmPosition flattens a label into a single sub-tier index:
// major*stageCount + minor. Used for relative power scaling.
func RealmPosition(label string, realms, stages []string) int {
	if IsMortal(label) {
		return -1
	}
	major, minor := ParseRealmLabel(label, realms, stages)
	return major*len(stages) + minor
}
