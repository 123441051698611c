package processors

import (
	"strings"

	"ascension/internal/game"
)

// FactionProcessor records or updates an organisation.
type FactionProcessor struct{}

func (p *FactionProcessor) Name() string { return "FACTION" }

func (p *FactionProcessor) Validate(params map[string]string) error {
	return requireParams("FACTION", params, "name")
}

func (p *FactionProcessor) Apply(env *Env, st game.State, params map[string]string) (game.State, []game.IndexUpdate) {
	name := NormalizeName(params["name"])

	idx := -1
	for i := range st.Factions {
		if strings.EqualFold(st.Factions[i].Name, name) {
			idx = i
			break
		}
	}

	var record game.Faction
	if idx >= 0 {
		record = st.Factions[idx]
	} else {
		record = game.Faction{Name: name, Alignment: "neutral"}
	}

	if v, ok := params["description"]; ok {
		record.Description = v
	}
	if v, ok := params["alignment"]; ok {
		record.Alignment = strings.TrimSpace(v)
	}
	if v, ok := params["tags"]; ok {
		record.Tags = splitList(v)
	}

	factions := make([]game.Faction, len(st.Factions))
	copy(factions, st.Factions)
	if idx >= 0 {
		factions[idx] = record
	} else {
		factions = append(factions, record)
	}
	st.Factions = factions

	return st, []game.IndexUpdate{newIndexUpdate("faction", record.Name, record.Description)}
}

// EntityProcessor is the generic create-or-update for discovered entities.
// LOCATION and LORE are the same operation with a fixed category; ENTITY is
// the catch-all for subjects referenced before being formally introduced.
type EntityProcessor struct {
	CommandName     string
	DefaultCategory string
}

func (p *EntityProcessor) Name() string { return p.CommandName }

func (p *EntityProcessor) Validate(params map[string]string) error {
	return requireParams(p.CommandName, params, "name")
}

func (p *EntityProcessor) Apply(env *Env, st game.State, params map[string]string) (game.State, []game.IndexUpdate) {
	name := NormalizeName(params["name"])

	idx := -1
	for i := range st.Entities {
		if strings.EqualFold(st.Entities[i].Name, name) {
			idx = i
			break
		}
	}

	var record game.Entity
	if idx >= 0 {
		record = st.Entities[idx]
	} else {
		record = game.Entity{Name: name, Category: p.DefaultCategory}
	}

	if v, ok := params["description"]; ok {
		record.Description = v
	}
	if v, ok := params["category"]; ok {
		record.Category = strings.TrimSpace(v)
	}
	if v, ok := params["tags"]; ok {
		record.Tags = splitList(v)
	}

	entities := make([]game.Entity, len(st.Entities))
	copy(entities, st.Entities)
	if idx >= 0 {
		entities[idx] = record
	} else {
		entities = append(entities, record)
	}
	st.Entities = entities

	return st, []game.IndexUpdate{newIndexUpdate(record.Category, record.Name, record.Description)}
}
