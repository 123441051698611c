package processors

import (
	"strings"

	"ascension/internal/game"
)

const (
	hoursPerDay   = 24
	daysPerMonth  = 30
	monthsPerYear = 12
)

// TimeProcessor advances the world clock and ticks timed status effects.
type TimeProcessor struct{}

func (p *TimeProcessor) Name() string { return "TIME_PASSED" }

func (p *TimeProcessor) Validate(params map[string]string) error {
	for _, key := range []string{"hours", "days", "months", "years"} {
		if strings.TrimSpace(params[key]) != "" {
			return nil
		}
	}
	return requireParams("TIME_PASSED", params, "hours")
}

func (p *TimeProcessor) Apply(env *Env, st game.State, params map[string]string) (game.State, []game.IndexUpdate) {
	hours := parseIntDefault(params["hours"], 0) +
		parseIntDefault(params["days"], 0)*hoursPerDay +
		parseIntDefault(params["months"], 0)*daysPerMonth*hoursPerDay +
		parseIntDefault(params["years"], 0)*monthsPerYear*daysPerMonth*hoursPerDay
	if hours <= 0 {
		env.Logf("TIME_PASSED ignored: non-positive duration")
		return st, nil
	}

	clock := st.Clock
	clock.Hour += hours
	clock.Day += clock.Hour / hoursPerDay
	clock.Hour %= hoursPerDay
	clock.Month += (clock.Day - 1) / daysPerMonth
	clock.Day = (clock.Day-1)%daysPerMonth + 1
	clock.Year += (clock.Month - 1) / monthsPerYear
	clock.Month = (clock.Month-1)%monthsPerYear + 1
	st.Clock = clock

	// One command, one tick: timed effects expire by narrated time, not
	// wall hours.
	st.Player.Effects = tickEffects(st.Player.Effects)
	st.NPCs = tickPersonEffects(st.NPCs)
	st.Wives = tickPersonEffects(st.Wives)
	st.Slaves = tickPersonEffects(st.Slaves)
	st.Prisoners = tickPersonEffects(st.Prisoners)

	return st, nil
}

func tickEffects(effects []game.StatusEffect) []game.StatusEffect {
	var out []game.StatusEffect
	for _, effect := range effects {
		effect.Turns--
		if effect.Turns > 0 {
			out = append(out, effect)
		}
	}
	return out
}

func tickPersonEffects(list []game.Person) []game.Person {
	affected := false
	for i := range list {
		if len(list[i].Effects) > 0 {
			affected = true
			break
		}
	}
	if !affected {
		return list
	}

	out := make([]game.Person, len(list))
	copy(out, list)
	for i := range out {
		if len(out[i].Effects) > 0 {
			out[i].Effects = tickEffects(out[i].Effects)
		}
	}
	return out
}

// StatusApplyProcessor attaches a timed status effect to the player or a
// named person.
type StatusApplyProcessor struct{}

func (p *StatusApplyProcessor) Name() string { return "STATUS_APPLIED" }

func (p *StatusApplyProcessor) Validate(params map[string]string) error {
	return requireParams("STATUS_APPLIED", params, "name")
}

func (p *StatusApplyProcessor) Apply(env *Env, st game.State, params map[string]string) (game.State, []game.IndexUpdate) {
	effect := game.StatusEffect{
		Name:      strings.TrimSpace(params["name"]),
		Turns:     game.ClampInt(parseIntDefault(params["turns"], 3), 1, 100),
		Modifiers: modifiersFromParams(params),
	}

	target := NormalizeName(params["target"])
	if target == "" || strings.EqualFold(target, "player") {
		st.Player.Effects = replaceEffect(st.Player.Effects, effect)
		return st, nil
	}

	list, idx, found := findPersonAnywhere(st, target)
	var record game.Person
	if found {
		record = personsIn(st, list)[idx]
	} else {
		record = *regenerateStats(env, st, game.Person{Name: target, Category: list.label()})
	}
	record.Effects = replaceEffect(record.Effects, effect)
	return setPerson(st, list, idx, record), nil
}

// replaceEffect re-applies by name rather than stacking duplicates.
func replaceEffect(effects []game.StatusEffect, effect game.StatusEffect) []game.StatusEffect {
	out := make([]game.StatusEffect, 0, len(effects)+1)
	for _, existing := range effects {
		if !strings.EqualFold(existing.Name, effect.Name) {
			out = append(out, existing)
		}
	}
	return append(out, effect)
}

// StatusCureProcessor removes a named status effect.
type StatusCureProcessor struct{}

func (p *StatusCureProcessor) Name() string { return "STATUS_CURED" }

func (p *StatusCureProcessor) Validate(params map[string]string) error {
	return requireParams("STATUS_CURED", params, "name")
}

func (p *StatusCureProcessor) Apply(env *Env, st game.State, params map[string]string) (game.State, []game.IndexUpdate) {
	name := strings.TrimSpace(params["name"])

	target := NormalizeName(params["target"])
	if target == "" || strings.EqualFold(target, "player") {
		st.Player.Effects = removeEffect(st.Player.Effects, name)
		return st, nil
	}

	list, idx, found := findPersonAnywhere(st, target)
	if !found {
		env.Logf("STATUS_CURED: unknown target %q, ignored", target)
		return st, nil
	}
	record := personsIn(st, list)[idx]
	record.Effects = removeEffect(record.Effects, name)
	return setPerson(st, list, idx, record), nil
}

func removeEffect(effects []game.StatusEffect, name string) []game.StatusEffect {
	var out []game.StatusEffect
	for _, effect := range effects {
		if !strings.EqualFold(effect.Name, name) {
			out = append(out, effect)
		}
	}
	return out
}

// ReputationProcessor shifts the player's world reputation. Same delta
// grammar as affinity, bounded to the same absolute range.
type ReputationProcessor struct{}

func (p *ReputationProcessor) Name() string { return "REPUTATION_CHANGED" }

func (p *ReputationProcessor) Validate(params map[string]string) error {
	return requireParams("REPUTATION_CHANGED", params, "value")
}

func (p *ReputationProcessor) Apply(env *Env, st game.State, params map[string]string) (game.State, []game.IndexUpdate) {
	delta, ok := parseDeltaExpr(params["value"], st.Player.Reputation)
	if !ok {
		env.Logf("REPUTATION_CHANGED: unreadable value %q, ignored", params["value"])
		return st, nil
	}
	st.Player.Reputation = game.ClampInt(st.Player.Reputation+delta, -100, 100)
	return st, nil
}
