package processors

import "ascension/internal/game"

// Single-turn relationship swing cap and the absolute affinity range. The
// delta is clamped before the result on purpose: the narrator model cannot
// demand an extreme jump in one turn, even via an absolute target.
const (
	maxAffinityDelta = 10
	affinityMin      = -100
	affinityMax      = 100
)

// BoundAffinity applies a delta expression to a current score under the
// two-stage clamp: first the requested delta is bounded to ±10, then the
// result to [-100, 100]. Unreadable expressions leave the score unchanged.
func BoundAffinity(current int, expr string) int {
	delta, ok := parseDeltaExpr(expr, current)
	if !ok {
		return current
	}
	delta = game.ClampInt(delta, -maxAffinityDelta, maxAffinityDelta)
	return game.ClampInt(current+delta, affinityMin, affinityMax)
}

// AffinityProcessor adjusts a bounded relationship score. One instance is
// registered per person list, so spouse/subordinate/captive adjustments
// route to the right records.
type AffinityProcessor struct {
	CommandName string
	List        PersonList
}

func (p *AffinityProcessor) Name() string { return p.CommandName }

func (p *AffinityProcessor) Validate(params map[string]string) error {
	return requireParams(p.CommandName, params, "name", "value")
}

func (p *AffinityProcessor) Apply(env *Env, st game.State, params map[string]string) (game.State, []game.IndexUpdate) {
	name := NormalizeName(params["name"])

	list := p.List
	idx := game.FindPerson(personsIn(st, list), name)

	var record game.Person
	if idx >= 0 {
		record = personsIn(st, list)[idx]
	} else if otherList, otherIdx, found := findPersonAnywhere(st, name); found {
		list, idx = otherList, otherIdx
		record = personsIn(st, list)[idx]
	} else {
		record = *regenerateStats(env, st, game.Person{Name: name, Category: list.label()})
	}

	before := record.Affinity
	record.Affinity = BoundAffinity(before, params["value"])
	if record.Affinity != before {
		env.Logf("%s: %s affinity %d -> %d (requested %q)", p.CommandName, name, before, record.Affinity, params["value"])
	}

	st = setPerson(st, list, idx, record)
	return st, nil
}
