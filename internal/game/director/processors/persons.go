package processors

import (
	"strings"

	"ascension/internal/game"
	"ascension/internal/game/progression"
)

// PersonList selects which of the four person lists a processor targets.
type PersonList int

const (
	ListNPCs PersonList = iota
	ListWives
	ListSlaves
	ListPrisoners
)

func (l PersonList) label() string {
	switch l {
	case ListWives:
		return "wife"
	case ListSlaves:
		return "slave"
	case ListPrisoners:
		return "prisoner"
	default:
		return "npc"
	}
}

func personsIn(st game.State, l PersonList) []game.Person {
	switch l {
	case ListWives:
		return st.Wives
	case ListSlaves:
		return st.Slaves
	case ListPrisoners:
		return st.Prisoners
	default:
		return st.NPCs
	}
}

// withPersons returns a state with one person list replaced. The input
// state's slice is never mutated.
func withPersons(st game.State, l PersonList, persons []game.Person) game.State {
	switch l {
	case ListWives:
		st.Wives = persons
	case ListSlaves:
		st.Slaves = persons
	case ListPrisoners:
		st.Prisoners = persons
	default:
		st.NPCs = persons
	}
	return st
}

// setPerson clones the list and writes the record at idx; idx == -1 appends.
func setPerson(st game.State, l PersonList, idx int, p game.Person) game.State {
	current := personsIn(st, l)
	updated := make([]game.Person, len(current))
	copy(updated, current)
	if idx >= 0 && idx < len(updated) {
		updated[idx] = p
	} else {
		updated = append(updated, p)
	}
	return withPersons(st, l, updated)
}

func removePerson(st game.State, l PersonList, idx int) game.State {
	current := personsIn(st, l)
	updated := make([]game.Person, 0, len(current))
	for i := range current {
		if i != idx {
			updated = append(updated, current[i])
		}
	}
	return withPersons(st, l, updated)
}

// findPersonAnywhere searches every person list for a normalized name.
func findPersonAnywhere(st game.State, name string) (PersonList, int, bool) {
	for _, l := range []PersonList{ListNPCs, ListWives, ListSlaves, ListPrisoners} {
		if idx := game.FindPerson(personsIn(st, l), name); idx >= 0 {
			return l, idx, true
		}
	}
	return ListNPCs, -1, false
}

// regenerateStats builds a fresh stat block for a person from their tier
// label and tags. Model-supplied numeric stats are never trusted for
// non-player persons; only the declared realm and descriptive tags are.
func regenerateStats(env *Env, st game.State, p game.Person) *game.Person {
	if !env.Rules.StatsEnabled {
		p.Stats = nil
		return &p
	}
	if progression.IsMortal(p.Realm) {
		stats := progression.MortalBaseStats()
		p.Stats = &stats
		return &p
	}

	playerEff := progression.EffectiveStats(st.Player.Stats, game.EquippedItems(st.Inventory), st.Player.Effects)
	stats := progression.GenerateNPCStats(playerEff, st.Player.Realm, p.Realm, p.Tags, st.Realms, st.Stages, env.Rand)
	p.Stats = &stats
	return &p
}

// PersonProcessor handles create-or-update person commands. Supplied fields
// win, omitted fields are preserved; the merge is an explicit whitelist, so
// a hostile command cannot introduce fields this processor does not name.
type PersonProcessor struct{}

func (p *PersonProcessor) Name() string { return "NPC" }

func (p *PersonProcessor) Validate(params map[string]string) error {
	return requireParams("NPC", params, "name")
}

func (p *PersonProcessor) Apply(env *Env, st game.State, params map[string]string) (game.State, []game.IndexUpdate) {
	name := NormalizeName(params["name"])
	list, idx, found := findPersonAnywhere(st, name)

	var record game.Person
	if found {
		record = personsIn(st, list)[idx]
	} else {
		record = game.Person{Name: name, Category: list.label()}
	}

	if v, ok := params["realm"]; ok {
		record.Realm = strings.TrimSpace(v)
	}
	if v, ok := params["gender"]; ok {
		record.Gender = strings.TrimSpace(v)
	}
	if v, ok := params["description"]; ok {
		record.Description = v
	}
	if v, ok := params["category"]; ok {
		record.Category = strings.TrimSpace(v)
	}
	if v, ok := params["aptitude"]; ok {
		record.Aptitude = strings.TrimSpace(v)
	}
	if v, ok := params["physique"]; ok {
		record.Physique = strings.TrimSpace(v)
	}
	if v, ok := params["willpower"]; ok {
		record.Willpower = game.ClampInt(parseIntDefault(v, record.Willpower), 0, 100)
	}
	if v, ok := params["resistance"]; ok {
		record.Resistance = game.ClampInt(parseIntDefault(v, record.Resistance), 0, 100)
	}
	if v, ok := params["tags"]; ok {
		record.Tags = splitList(v)
	}
	// An explicit archetype participates via the tag set rather than a
	// separate field, so inference stays the single source of truth.
	if v, ok := params["archetype"]; ok {
		record.Tags = append(append([]string(nil), record.Tags...), strings.TrimSpace(v))
	}

	// Created or updated, the record gets a freshly generated block; stat
	// numbers from the model never survive into state.
	record = *regenerateStats(env, st, record)

	st = setPerson(st, list, idx, record)

	update := newIndexUpdate(list.label(), record.Name, describePerson(record))
	return st, []game.IndexUpdate{update}
}

func describePerson(p game.Person) string {
	parts := []string{}
	if p.Realm != "" {
		parts = append(parts, p.Realm)
	}
	if p.Description != "" {
		parts = append(parts, p.Description)
	}
	if len(p.Tags) > 0 {
		parts = append(parts, strings.Join(p.Tags, ", "))
	}
	if len(parts) == 0 {
		return p.Category
	}
	return strings.Join(parts, " | ")
}

// StanceProcessor updates only a person's stance and thoughts.
type StanceProcessor struct{}

func (p *StanceProcessor) Name() string { return "NPC_STANCE" }

func (p *StanceProcessor) Validate(params map[string]string) error {
	return requireParams("NPC_STANCE", params, "name")
}

func (p *StanceProcessor) Apply(env *Env, st game.State, params map[string]string) (game.State, []game.IndexUpdate) {
	name := NormalizeName(params["name"])
	list, idx, found := findPersonAnywhere(st, name)

	var record game.Person
	if found {
		record = personsIn(st, list)[idx]
	} else {
		// Referenced before introduction: create a minimal record so later
		// commands naming this person still land.
		record = *regenerateStats(env, st, game.Person{Name: name, Category: list.label()})
	}

	if v, ok := params["stance"]; ok {
		record.Stance = strings.TrimSpace(v)
	}
	if v, ok := params["thoughts"]; ok {
		record.Thoughts = v
	}

	st = setPerson(st, list, idx, record)
	return st, nil
}

// MemoryProcessor sets a permanent memory flag on a person.
type MemoryProcessor struct{}

func (p *MemoryProcessor) Name() string { return "NPC_MEMORY" }

func (p *MemoryProcessor) Validate(params map[string]string) error {
	return requireParams("NPC_MEMORY", params, "name", "key")
}

func (p *MemoryProcessor) Apply(env *Env, st game.State, params map[string]string) (game.State, []game.IndexUpdate) {
	name := NormalizeName(params["name"])
	list, idx, found := findPersonAnywhere(st, name)

	var record game.Person
	if found {
		record = personsIn(st, list)[idx]
	} else {
		record = *regenerateStats(env, st, game.Person{Name: name, Category: list.label()})
	}

	value := params["value"]
	if strings.TrimSpace(value) == "" {
		value = "true"
	}

	memories := make(map[string]string, len(record.Memories)+1)
	for k, v := range record.Memories {
		memories[k] = v
	}
	memories[strings.TrimSpace(params["key"])] = value
	record.Memories = memories

	st = setPerson(st, list, idx, record)
	return st, nil
}

// EmotionProcessor replaces a person's transient emotional label and
// intensity.
type EmotionProcessor struct{}

func (p *EmotionProcessor) Name() string { return "NPC_EMOTION" }

func (p *EmotionProcessor) Validate(params map[string]string) error {
	return requireParams("NPC_EMOTION", params, "name", "emotion")
}

func (p *EmotionProcessor) Apply(env *Env, st game.State, params map[string]string) (game.State, []game.IndexUpdate) {
	name := NormalizeName(params["name"])
	list, idx, found := findPersonAnywhere(st, name)

	var record game.Person
	if found {
		record = personsIn(st, list)[idx]
	} else {
		record = *regenerateStats(env, st, game.Person{Name: name, Category: list.label()})
	}

	record.Emotion = game.Emotion{
		Label:     strings.TrimSpace(params["emotion"]),
		Intensity: game.ClampInt(parseIntDefault(params["intensity"], 50), 0, 100),
	}

	st = setPerson(st, list, idx, record)
	return st, nil
}
