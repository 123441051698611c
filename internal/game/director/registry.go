// Package director routes parsed narrator commands to their processors and
// folds them, in order, over the game state. It is the only writer of the
// state document; the host owns the single current reference and swaps it
// for Dispatch's output each turn.
package director

import (
	"ascension/internal/game"
	"ascension/internal/game/director/processors"
)

// CommandProcessor is one named state transformer. Validate runs before
// Apply; a command that fails validation is skipped as a whole, so partial
// application of one command never happens.
type CommandProcessor interface {
	Name() string
	Validate(params map[string]string) error
	Apply(env *processors.Env, st game.State, params map[string]string) (game.State, []game.IndexUpdate)
}

var processorRegistry = make(map[string]CommandProcessor)

func init() {
	RegisterProcessor(&processors.PersonProcessor{})
	RegisterProcessor(&processors.StanceProcessor{})
	RegisterProcessor(&processors.MemoryProcessor{})
	RegisterProcessor(&processors.EmotionProcessor{})
	RegisterProcessor(&processors.AffinityProcessor{CommandName: "AFFINITY"})
	RegisterProcessor(&processors.AffinityProcessor{CommandName: "WIFE_AFFINITY", List: processors.ListWives})
	RegisterProcessor(&processors.AffinityProcessor{CommandName: "SLAVE_AFFINITY", List: processors.ListSlaves})
	RegisterProcessor(&processors.AffinityProcessor{CommandName: "PRISONER_AFFINITY", List: processors.ListPrisoners})
	RegisterProcessor(&processors.FactionProcessor{})
	RegisterProcessor(&processors.EntityProcessor{CommandName: "LOCATION", DefaultCategory: "location"})
	RegisterProcessor(&processors.EntityProcessor{CommandName: "LORE", DefaultCategory: "lore"})
	RegisterProcessor(&processors.EntityProcessor{CommandName: "ENTITY", DefaultCategory: "entity"})
	RegisterProcessor(&processors.ItemGainProcessor{})
	RegisterProcessor(&processors.ItemConsumeProcessor{})
	RegisterProcessor(&processors.ItemEquipProcessor{CommandName: "ITEM_EQUIPPED", Equip: true})
	RegisterProcessor(&processors.ItemEquipProcessor{CommandName: "ITEM_UNEQUIPPED"})
	RegisterProcessor(&processors.SkillProcessor{})
	RegisterProcessor(&processors.StatChangeProcessor{})
	RegisterProcessor(&processors.StatMaxProcessor{})
	RegisterProcessor(&processors.BreakthroughProcessor{})
	RegisterProcessor(&processors.CombatTriggerProcessor{})
	RegisterProcessor(&processors.CombatResultProcessor{})
	RegisterProcessor(&processors.TimeProcessor{})
	RegisterProcessor(&processors.StatusApplyProcessor{})
	RegisterProcessor(&processors.StatusCureProcessor{})
	RegisterProcessor(&processors.ReputationProcessor{})
}

func RegisterProcessor(p CommandProcessor) {
	processorRegistry[p.Name()] = p
}

func GetProcessor(name string) (CommandProcessor, bool) {
	p, exists := processorRegistry[name]
	return p, exists
}
