package processors

import (
	"math"
	"strconv"
	"strings"

	"ascension/internal/game"
	"ascension/internal/game/progression"
)

// Qualitative buckets for stat changes, as fractions of the stat's
// reference value.
var statBuckets = map[string]float64{
	"low":    0.10,
	"medium": 0.25,
	"high":   0.50,
}

// resolveStatAmount turns a value expression into a signed amount against a
// reference value: "+25"/"-10"/"25" absolute, "10%"/"-20%" relative, or a
// low/medium/high bucket ("-high" for a loss).
func resolveStatAmount(raw string, reference int) (int, bool) {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if trimmed == "" {
		return 0, false
	}

	sign := 1
	if strings.HasPrefix(trimmed, "-") {
		sign = -1
		trimmed = trimmed[1:]
	} else {
		trimmed = strings.TrimPrefix(trimmed, "+")
	}

	if frac, ok := statBuckets[trimmed]; ok {
		return sign * int(math.Round(frac*float64(reference))), true
	}
	if strings.HasSuffix(trimmed, "%") {
		pct, err := strconv.ParseFloat(strings.TrimSuffix(trimmed, "%"), 64)
		if err != nil {
			return 0, false
		}
		return sign * int(math.Round(pct/100*float64(reference))), true
	}
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, false
	}
	return sign * n, true
}

// StatChangeProcessor changes a current player stat. Health and qi clamp
// into [0, max]; experience routes through the leveling state machine;
// spirit stones floor at zero.
type StatChangeProcessor struct{}

func (p *StatChangeProcessor) Name() string { return "STAT_CHANGED" }

func (p *StatChangeProcessor) Validate(params map[string]string) error {
	return requireParams("STAT_CHANGED", params, "stat", "value")
}

func (p *StatChangeProcessor) Apply(env *Env, st game.State, params map[string]string) (game.State, []game.IndexUpdate) {
	stat := strings.ToLower(strings.TrimSpace(params["stat"]))
	stats := st.Player.Stats

	reference := map[string]int{
		game.StatHealth: stats.MaxHealth,
		game.StatQi:     stats.MaxQi,
		"experience":    stats.ExpToNext,
		"spirit_stones": st.Player.SpiritStones,
		game.StatAttack: stats.Attack, game.StatDefense: stats.Defense, game.StatSpeed: stats.Speed,
	}[stat]

	amount, ok := resolveStatAmount(params["value"], reference)
	if !ok {
		env.Logf("STAT_CHANGED: unreadable value %q, ignored", params["value"])
		return st, nil
	}

	switch stat {
	case game.StatHealth:
		stats.Health = game.ClampInt(stats.Health+amount, 0, stats.MaxHealth)
	case game.StatQi:
		stats.Qi = game.ClampInt(stats.Qi+amount, 0, stats.MaxQi)
	case game.StatAttack:
		stats.Attack = max(stats.Attack+amount, 0)
	case game.StatDefense:
		stats.Defense = max(stats.Defense+amount, 0)
	case game.StatSpeed:
		stats.Speed = max(stats.Speed+amount, 0)
	case "spirit_stones":
		st.Player.SpiritStones = max(st.Player.SpiritStones+amount, 0)
		return st, nil
	case "experience":
		return grantPlayerExperience(env, st, amount), nil
	default:
		env.Logf("STAT_CHANGED: unknown stat %q, ignored", stat)
		return st, nil
	}

	st.Player.Stats = stats
	return st, nil
}

// StatMaxProcessor advances a stat's maximum (level-up style rewards).
// Currents refill by the same amount so the gain is felt immediately.
type StatMaxProcessor struct{}

func (p *StatMaxProcessor) Name() string { return "STAT_MAX_CHANGED" }

func (p *StatMaxProcessor) Validate(params map[string]string) error {
	return requireParams("STAT_MAX_CHANGED", params, "stat", "value")
}

func (p *StatMaxProcessor) Apply(env *Env, st game.State, params map[string]string) (game.State, []game.IndexUpdate) {
	stat := strings.ToLower(strings.TrimSpace(params["stat"]))
	stats := st.Player.Stats

	reference := map[string]int{
		game.StatHealth: stats.MaxHealth,
		game.StatQi:     stats.MaxQi,
	}[stat]

	amount, ok := resolveStatAmount(params["value"], reference)
	if !ok {
		env.Logf("STAT_MAX_CHANGED: unreadable value %q, ignored", params["value"])
		return st, nil
	}

	switch stat {
	case game.StatHealth:
		stats.MaxHealth = max(stats.MaxHealth+amount, 1)
		stats.Health = game.ClampInt(stats.Health+max(amount, 0), 0, stats.MaxHealth)
	case game.StatQi:
		stats.MaxQi = max(stats.MaxQi+amount, 1)
		stats.Qi = game.ClampInt(stats.Qi+max(amount, 0), 0, stats.MaxQi)
	default:
		env.Logf("STAT_MAX_CHANGED: unknown stat %q, ignored", stat)
		return st, nil
	}

	st.Player.Stats = stats
	return st, nil
}

// grantPlayerExperience runs the leveling state machine over the player.
func grantPlayerExperience(env *Env, st game.State, amount int) game.State {
	if !env.Rules.StatsEnabled {
		return st
	}

	c := progression.Cultivator{
		Realm:        st.Player.Realm,
		AtBottleneck: st.Player.AtBottleneck,
		Stats:        st.Player.Stats,
	}
	c = progression.GrantExperience(c, amount, st.Realms, st.Stages)

	if c.Realm != st.Player.Realm {
		env.Logf("player advanced: %s -> %s", st.Player.Realm, c.Realm)
	}
	if c.AtBottleneck && !st.Player.AtBottleneck {
		env.Logf("player reached bottleneck at %s", c.Realm)
	}

	st.Player.Realm = c.Realm
	st.Player.AtBottleneck = c.AtBottleneck
	st.Player.Stats = c.Stats
	return st
}

// BreakthroughProcessor resolves a breakthrough attempt reported by the
// combat subsystem or the narrator. outcome=begun marks the player as
// mid-tribulation at a bottleneck; success or failure resolves it.
type BreakthroughProcessor struct{}

func (p *BreakthroughProcessor) Name() string { return "BREAKTHROUGH" }

func (p *BreakthroughProcessor) Validate(params map[string]string) error {
	return requireParams("BREAKTHROUGH", params, "outcome")
}

func (p *BreakthroughProcessor) Apply(env *Env, st game.State, params map[string]string) (game.State, []game.IndexUpdate) {
	if !env.Rules.StatsEnabled {
		return st, nil
	}

	outcome := strings.ToLower(strings.TrimSpace(params["outcome"]))
	if outcome == "begun" {
		if !st.Player.AtBottleneck {
			env.Logf("BREAKTHROUGH begun ignored: player not at a bottleneck")
			return st, nil
		}
		st.Player.InTribulation = true
		env.Logf("tribulation begun at %s", st.Player.Realm)
		return st, nil
	}
	success := outcome == "success"

	c := progression.Cultivator{
		Realm:        st.Player.Realm,
		AtBottleneck: st.Player.AtBottleneck,
		Stats:        st.Player.Stats,
	}
	c = progression.ApplyBreakthrough(c, success, st.Realms, st.Stages)

	env.Logf("breakthrough %s: %s -> %s", params["outcome"], st.Player.Realm, c.Realm)

	st.Player.Realm = c.Realm
	st.Player.AtBottleneck = c.AtBottleneck
	st.Player.InTribulation = false
	st.Player.Stats = c.Stats
	return st, nil
}
