package progression

import (
	"math"
	"strings"

	"ascension/internal/game"
)

// Economic base-value curve. Same decaying-geometric family as the stat
// curve but with its own constants, so prices grow slower than power.
const (
	econFirstBase   = 10.0
	econGrowthStart = 1.8
	econGrowthDecay = 0.05
	econGrowthFloor = 1.2
)

const minValue = 1

var rarityMultipliers = map[string]float64{
	"common":    1.0,
	"uncommon":  2.0,
	"rare":      5.0,
	"epic":      12.0,
	"legendary": 30.0,
	"mythic":    80.0,
}

var categoryMultipliers = map[string]float64{
	"weapon":   1.5,
	"armor":    1.4,
	"pill":     1.2,
	"manual":   2.0,
	"talisman": 1.6,
	"herb":     0.8,
	"material": 0.6,
	"misc":     1.0,
}

// effectSurcharges prices an equipment special effect by keyword; the first
// matching row wins per effect. A non-trivial effect matching nothing still
// pays the default surcharge so novel model-generated effects are never
// free.
var effectSurcharges = []keywordMult{
	{"lifesteal", 1.8},
	{"regenerat", 1.6},
	{"poison", 1.5},
	{"burn", 1.4},
	{"flame", 1.4},
	{"frost", 1.4},
	{"lightning", 1.5},
	{"pierce", 1.3},
	{"void", 2.5},
	{"teleport", 2.5},
	{"soul", 2.0},
}

const defaultEffectSurcharge = 1.15

// aptitudeMultipliers and physiqueMultipliers price a captured person's
// innate talent by label keyword.
type keywordMult struct {
	keyword string
	mult    float64
}

var aptitudeMultipliers = []keywordMult{
	{"heaven", 3.0},
	{"supreme", 2.5},
	{"excellent", 1.8},
	{"good", 1.3},
	{"average", 1.0},
	{"poor", 0.7},
}

var physiqueMultipliers = []keywordMult{
	{"divine", 3.0},
	{"saint", 2.5},
	{"spirit", 1.8},
	{"pure", 1.5},
	{"jade", 1.4},
}

func econBaseValue(label string, realms, stages []string) float64 {
	if IsMortal(label) {
		return econFirstBase / 2
	}
	major, minor := ParseRealmLabel(label, realms, stages)

	value := econFirstBase
	ratio := econGrowthStart
	for i := 1; i <= major; i++ {
		value *= ratio
		ratio -= econGrowthDecay
		if ratio < econGrowthFloor {
			ratio = econGrowthFloor
		}
	}
	if len(stages) > 0 {
		value += float64(minor) * (value / float64(len(stages)))
	}
	return value
}

func lookupMultiplier(m map[string]float64, key string) float64 {
	if mult, ok := m[strings.ToLower(strings.TrimSpace(key))]; ok {
		return mult
	}
	return 1.0
}

// ItemValue prices one unit of an item in spirit stones: tier base × rarity
// × category, with a multiplicative surcharge per special effect. Floored at
// a small positive minimum and rounded.
func ItemValue(item game.Item, realms, stages []string) int {
	value := econBaseValue(item.Realm, realms, stages)
	value *= lookupMultiplier(rarityMultipliers, item.Rarity)
	value *= lookupMultiplier(categoryMultipliers, item.Category)

	for _, effect := range item.Effects {
		value *= effectSurcharge(effect)
	}

	return roundValue(value)
}

func effectSurcharge(effect string) float64 {
	trimmed := strings.ToLower(strings.TrimSpace(effect))
	if trimmed == "" || trimmed == "none" {
		return 1.0
	}
	for _, row := range effectSurcharges {
		if strings.Contains(trimmed, row.keyword) {
			return row.mult
		}
	}
	return defaultEffectSurcharge
}

// PersonValue prices a captured person: tier base scaled by aptitude and
// physique, discounted by resistance and raised by willpower. Resistance and
// willpower are read as 0-100.
func PersonValue(p game.Person, realms, stages []string) int {
	value := econBaseValue(p.Realm, realms, stages) * 5

	value *= keywordMultiplier(aptitudeMultipliers, p.Aptitude)
	value *= keywordMultiplier(physiqueMultipliers, p.Physique)

	resistance := game.ClampInt(p.Resistance, 0, 100)
	willpower := game.ClampInt(p.Willpower, 0, 100)
	value *= 1 - 0.4*float64(resistance)/100
	value *= 1 + 0.3*float64(willpower)/100

	return roundValue(value)
}

func keywordMultiplier(rows []keywordMult, label string) float64 {
	lower := strings.ToLower(label)
	for _, row := range rows {
		if strings.Contains(lower, row.keyword) {
			return row.mult
		}
	}
	return 1.0
}

func roundValue(v float64) int {
	n := int(math.Round(v))
	if n < minValue {
		return minValue
	}
	return n
}
