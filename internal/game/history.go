package game

import (
	"fmt"
	"strings"
)

type History struct {
	exchanges []string
	maxSize   int
}

func NewHistory(maxSize int) *History {
	return &History{
		exchanges: make([]string, 0, maxSize),
		maxSize:   maxSize,
	}
}

func (h *History) AddPlayerAction(input string) {
	h.add("Player: " + input)
}

func (h *History) AddNarratorResponse(response string) {
	h.add("Narrator: " + response)
}

func (h *History) AddError(err error) {
	h.add("Error: " + err.Error())
}

func (h *History) add(entry string) {
	h.exchanges = append(h.exchanges, entry)

	if len(h.exchanges) > h.maxSize {
		h.exchanges = h.exchanges[len(h.exchanges)-h.maxSize:]
	}
}

func (h *History) GetEntries() []string {
	result := make([]string, len(h.exchanges))
	copy(result, h.exchanges)
	return result
}

// BuildStateContext creates the formatted game-state context string handed to
// the narrator model each turn: player condition, companions, inventory and
// recent conversation.
func BuildStateContext(st State, gameHistory []string) string {
	var context strings.Builder

	context.WriteString("GAME STATE:\n")
	p := st.Player
	context.WriteString(fmt.Sprintf("Player: %s (%s)", p.Name, p.Realm))
	if p.AtBottleneck {
		context.WriteString(" (at bottleneck)")
	}
	context.WriteString("\n")
	context.WriteString(fmt.Sprintf("Health %d/%d, Qi %d/%d, Attack %d, Defense %d, Speed %d\n",
		p.Stats.Health, p.Stats.MaxHealth, p.Stats.Qi, p.Stats.MaxQi,
		p.Stats.Attack, p.Stats.Defense, p.Stats.Speed))
	context.WriteString(fmt.Sprintf("Experience %d/%d, Spirit Stones %d, Reputation %d\n",
		p.Stats.Experience, p.Stats.ExpToNext, p.SpiritStones, p.Reputation))
	context.WriteString(fmt.Sprintf("Date: Year %d, Month %d, Day %d, Hour %d\n",
		st.Clock.Year, st.Clock.Month, st.Clock.Day, st.Clock.Hour))

	writePersons := func(label string, list []Person) {
		if len(list) == 0 {
			return
		}
		var names []string
		for _, person := range list {
			entry := person.Name
			if person.Realm != "" {
				entry += " (" + person.Realm + ")"
			}
			names = append(names, entry)
		}
		context.WriteString(label + ": " + strings.Join(names, ", ") + "\n")
	}
	writePersons("Known NPCs", st.NPCs)
	writePersons("Wives", st.Wives)
	writePersons("Slaves", st.Slaves)
	writePersons("Prisoners", st.Prisoners)

	if len(st.Inventory) > 0 {
		var items []string
		for _, it := range st.Inventory {
			items = append(items, fmt.Sprintf("%s x%d", it.Name, it.Quantity))
		}
		context.WriteString("Inventory: " + strings.Join(items, ", ") + "\n")
	}
	if len(st.Factions) > 0 {
		var names []string
		for _, f := range st.Factions {
			names = append(names, f.Name)
		}
		context.WriteString("Factions: " + strings.Join(names, ", ") + "\n")
	}

	if len(gameHistory) > 0 {
		context.WriteString("\nRECENT CONVERSATION:\n")
		for _, exchange := range gameHistory {
			context.WriteString(exchange + "\n")
		}
	}

	return context.String()
}
