package progression

import (
	"math"

	"ascension/internal/game"
)

// EffectiveStats aggregates equipment bonuses and status-effect modifiers on
// top of a base stat block. It always recomputes from the base, so applying
// it again to unchanged inputs changes nothing: equipment bonuses first (in
// inventory order), then status modifiers in the order the effects are
// listed. Maxima are rounded to the nearest integer and current values
// clamped into [0, max].
func EffectiveStats(base game.StatBlock, equipment []game.Item, effects []game.StatusEffect) game.StatBlock {
	maxHealth := float64(base.MaxHealth)
	maxQi := float64(base.MaxQi)
	attack := float64(base.Attack)
	defense := float64(base.Defense)
	speed := float64(base.Speed)

	apply := func(mod game.StatModifier) {
		target := map[string]*float64{
			game.StatHealth:  &maxHealth,
			game.StatQi:      &maxQi,
			game.StatAttack:  &attack,
			game.StatDefense: &defense,
			game.StatSpeed:   &speed,
		}[mod.Stat]
		if target == nil {
			return
		}
		*target += float64(mod.Flat)
		if mod.Pct != 0 {
			*target *= 1 + mod.Pct
		}
	}

	for _, item := range equipment {
		if !item.Equipped {
			continue
		}
		for _, mod := range item.Bonuses {
			apply(mod)
		}
	}
	for _, effect := range effects {
		for _, mod := range effect.Modifiers {
			apply(mod)
		}
	}

	out := base
	out.MaxHealth = roundNonNegative(maxHealth)
	out.MaxQi = roundNonNegative(maxQi)
	out.Attack = roundNonNegative(attack)
	out.Defense = roundNonNegative(defense)
	out.Speed = roundNonNegative(speed)
	out.Health = game.ClampInt(base.Health, 0, out.MaxHealth)
	out.Qi = game.ClampInt(base.Qi, 0, out.MaxQi)
	return out
}

func roundNonNegative(v float64) int {
	n := int(math.Round(v))
	if n < 0 {
		return 0
	}
	return n
}
