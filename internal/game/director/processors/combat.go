package processors

import (
	"fmt"
	"strings"

	"ascension/internal/game"
	"ascension/internal/game/progression"
)

// CombatTriggerProcessor asks the tactical combat screen to start an
// encounter. The narrative-combat guard is load-bearing: when the game is
// configured to resolve fights through prose, the same narrator stream must
// never open a tactical encounter.
type CombatTriggerProcessor struct{}

func (p *CombatTriggerProcessor) Name() string { return "BEGIN_COMBAT" }

func (p *CombatTriggerProcessor) Validate(params map[string]string) error {
	return requireParams("BEGIN_COMBAT", params, "opponents")
}

func (p *CombatTriggerProcessor) Apply(env *Env, st game.State, params map[string]string) (game.State, []game.IndexUpdate) {
	if env.Rules.NarrativeCombat {
		env.Logf("BEGIN_COMBAT ignored: narrative combat resolution configured")
		return st, nil
	}

	seen := make(map[string]bool)
	var opponents []string
	for _, raw := range splitList(params["opponents"]) {
		name := NormalizeName(raw)
		key := strings.ToLower(name)
		if name == "" || seen[key] {
			continue
		}
		seen[key] = true
		opponents = append(opponents, name)
	}
	if len(opponents) == 0 {
		env.Logf("BEGIN_COMBAT ignored: no opponents after trimming")
		return st, nil
	}

	st.PendingCombat = &game.CombatRequest{
		Opponents: opponents,
		Location:  strings.TrimSpace(params["location"]),
	}
	st.Player.CombatStreak = 0
	return st, nil
}

// CombatResultProcessor feeds the tactical screen's outcome back into the
// state: final health/qi deltas, experience, per-opponent dispositions and
// the cleared pending request.
type CombatResultProcessor struct{}

func (p *CombatResultProcessor) Name() string { return "COMBAT_RESULT" }

func (p *CombatResultProcessor) Validate(params map[string]string) error {
	return requireParams("COMBAT_RESULT", params, "outcome")
}

func (p *CombatResultProcessor) Apply(env *Env, st game.State, params map[string]string) (game.State, []game.IndexUpdate) {
	st.PendingCombat = nil
	var updates []game.IndexUpdate

	stats := st.Player.Stats
	if v, ok := params["health_delta"]; ok {
		stats.Health = game.ClampInt(stats.Health+parseIntDefault(v, 0), 0, stats.MaxHealth)
	}
	if v, ok := params["qi_delta"]; ok {
		stats.Qi = game.ClampInt(stats.Qi+parseIntDefault(v, 0), 0, stats.MaxQi)
	}
	st.Player.Stats = stats

	outcome := strings.ToLower(strings.TrimSpace(params["outcome"]))
	if outcome == "victory" {
		st.Player.CombatStreak++
	} else {
		st.Player.CombatStreak = 0
	}

	// Dispositions move persons between lists.
	for _, name := range splitList(params["killed"]) {
		if list, idx, found := findPersonAnywhere(st, NormalizeName(name)); found {
			st = removePerson(st, list, idx)
		}
	}
	for _, name := range splitList(params["captured"]) {
		st = movePerson(st, NormalizeName(name), ListPrisoners, env)
		if idx := game.FindPerson(st.Prisoners, NormalizeName(name)); idx >= 0 {
			captive := st.Prisoners[idx]
			value := progression.PersonValue(captive, st.Realms, st.Stages)
			env.Logf("COMBAT_RESULT: captured %s (value %d)", captive.Name, value)
			content := fmt.Sprintf("%s Estimated worth: %d spirit stones.", describePerson(captive), value)
			updates = append(updates, newIndexUpdate(ListPrisoners.label(), captive.Name, content))
		}
	}
	for _, name := range splitList(params["recruited"]) {
		if list, idx, found := findPersonAnywhere(st, NormalizeName(name)); found {
			record := personsIn(st, list)[idx]
			record.Affinity = BoundAffinity(record.Affinity, "+=10")
			record.Stance = "friendly"
			st = setPerson(st, list, idx, record)
		}
	}

	if v, ok := params["experience"]; ok {
		st = grantPlayerExperience(env, st, parseIntDefault(v, 0))
	}

	return st, updates
}

// movePerson relocates a record into the target list, creating a minimal
// record when the subject was never introduced.
func movePerson(st game.State, name string, target PersonList, env *Env) game.State {
	list, idx, found := findPersonAnywhere(st, name)
	var record game.Person
	if found {
		record = personsIn(st, list)[idx]
		if list == target {
			return st
		}
		st = removePerson(st, list, idx)
	} else {
		record = *regenerateStats(env, st, game.Person{Name: name})
	}
	record.Category = target.label()
	return setPerson(st, target, -1, record)
}
