package processors

import (
	"strings"

	"ascension/internal/game"
	"ascension/internal/game/progression"
)

func cloneInventory(st game.State) []game.Item {
	inventory := make([]game.Item, len(st.Inventory))
	copy(inventory, st.Inventory)
	return inventory
}

// ItemGainProcessor grants an item, merging quantity into an existing stack.
type ItemGainProcessor struct{}

func (p *ItemGainProcessor) Name() string { return "ITEM_GAINED" }

func (p *ItemGainProcessor) Validate(params map[string]string) error {
	return requireParams("ITEM_GAINED", params, "name")
}

func (p *ItemGainProcessor) Apply(env *Env, st game.State, params map[string]string) (game.State, []game.IndexUpdate) {
	name := NormalizeName(params["name"])
	quantity := parseIntDefault(params["quantity"], 1)
	if quantity < 1 {
		quantity = 1
	}

	inventory := cloneInventory(st)
	idx := game.FindItem(inventory, name)

	var record game.Item
	if idx >= 0 {
		record = inventory[idx]
		record.Quantity += quantity
	} else {
		record = game.Item{Name: name, Quantity: quantity}
	}

	if v, ok := params["category"]; ok {
		record.Category = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := params["rarity"]; ok {
		record.Rarity = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := params["realm"]; ok {
		record.Realm = strings.TrimSpace(v)
	}
	if v, ok := params["description"]; ok {
		record.Description = v
	}
	if v, ok := params["effects"]; ok {
		record.Effects = splitList(v)
	}
	if mods := modifiersFromParams(params); len(mods) > 0 {
		record.Bonuses = mods
	}

	if idx >= 0 {
		inventory[idx] = record
	} else {
		inventory = append(inventory, record)
	}
	st.Inventory = inventory

	value := progression.ItemValue(record, st.Realms, st.Stages)
	env.Logf("ITEM_GAINED: %s x%d (unit value %d)", record.Name, quantity, value)

	return st, []game.IndexUpdate{newIndexUpdate("item", record.Name, record.Description)}
}

// ItemConsumeProcessor removes quantity from a stack, deleting it at zero.
type ItemConsumeProcessor struct{}

func (p *ItemConsumeProcessor) Name() string { return "ITEM_CONSUMED" }

func (p *ItemConsumeProcessor) Validate(params map[string]string) error {
	return requireParams("ITEM_CONSUMED", params, "name")
}

func (p *ItemConsumeProcessor) Apply(env *Env, st game.State, params map[string]string) (game.State, []game.IndexUpdate) {
	name := NormalizeName(params["name"])
	quantity := parseIntDefault(params["quantity"], 1)
	if quantity < 1 {
		quantity = 1
	}

	idx := game.FindItem(st.Inventory, name)
	if idx < 0 {
		env.Logf("ITEM_CONSUMED: %q not in inventory, ignored", name)
		return st, nil
	}

	inventory := cloneInventory(st)
	inventory[idx].Quantity -= quantity
	if inventory[idx].Quantity <= 0 {
		inventory = append(inventory[:idx], inventory[idx+1:]...)
	}
	st.Inventory = inventory
	return st, nil
}

// ItemEquipProcessor toggles an item's equipped flag. Registered once per
// direction.
type ItemEquipProcessor struct {
	CommandName string
	Equip       bool
}

func (p *ItemEquipProcessor) Name() string { return p.CommandName }

func (p *ItemEquipProcessor) Validate(params map[string]string) error {
	return requireParams(p.CommandName, params, "name")
}

func (p *ItemEquipProcessor) Apply(env *Env, st game.State, params map[string]string) (game.State, []game.IndexUpdate) {
	name := NormalizeName(params["name"])

	idx := game.FindItem(st.Inventory, name)
	if idx < 0 {
		env.Logf("%s: %q not in inventory, ignored", p.CommandName, name)
		return st, nil
	}

	inventory := cloneInventory(st)
	inventory[idx].Equipped = p.Equip
	st.Inventory = inventory
	return st, nil
}

// SkillProcessor grants the player a technique.
type SkillProcessor struct{}

func (p *SkillProcessor) Name() string { return "SKILL_LEARNED" }

func (p *SkillProcessor) Validate(params map[string]string) error {
	return requireParams("SKILL_LEARNED", params, "name")
}

func (p *SkillProcessor) Apply(env *Env, st game.State, params map[string]string) (game.State, []game.IndexUpdate) {
	name := NormalizeName(params["name"])

	idx := -1
	for i := range st.Player.Skills {
		if strings.EqualFold(st.Player.Skills[i].Name, name) {
			idx = i
			break
		}
	}

	var record game.Skill
	if idx >= 0 {
		record = st.Player.Skills[idx]
	} else {
		record = game.Skill{Name: name}
	}
	if v, ok := params["description"]; ok {
		record.Description = v
	}
	if v, ok := params["realm"]; ok {
		record.Realm = strings.TrimSpace(v)
	}

	skills := make([]game.Skill, len(st.Player.Skills))
	copy(skills, st.Player.Skills)
	if idx >= 0 {
		skills[idx] = record
	} else {
		skills = append(skills, record)
	}
	st.Player.Skills = skills

	return st, []game.IndexUpdate{newIndexUpdate("skill", record.Name, record.Description)}
}
