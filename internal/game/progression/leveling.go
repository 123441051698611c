package progression

import "ascension/internal/game"

// Cultivator is the slice of a person the leveling state machine operates
// on. Progression never touches the rest of the record.
type Cultivator struct {
	Realm        string
	AtBottleneck bool
	Stats        game.StatBlock
}

// GrantExperience adds experience and advances minor stages while the
// requirement is met. The loop is capped at the number of stages remaining
// in the current realm, so even a pathological grant terminates. Reaching
// the last stage sets the bottleneck flag and clamps experience to exactly
// the requirement; only ApplyBreakthrough moves past it. Negative amounts
// reduce experience but never below zero.
func GrantExperience(c Cultivator, amount int, realms, stages []string) Cultivator {
	if IsMortal(c.Realm) || len(stages) == 0 {
		return c
	}

	c.Stats.Experience += amount
	if c.Stats.Experience < 0 {
		c.Stats.Experience = 0
	}

	major, minor := ParseRealmLabel(c.Realm, realms, stages)
	lastStage := len(stages) - 1

	if c.AtBottleneck {
		c.Stats.Experience = game.ClampInt(c.Stats.Experience, 0, c.Stats.ExpToNext)
		return c
	}

	remaining := lastStage - minor
	for i := 0; i <= remaining; i++ {
		if c.Stats.Experience < c.Stats.ExpToNext {
			break
		}
		if minor >= lastStage {
			c.AtBottleneck = true
			c.Stats.Experience = c.Stats.ExpToNext
			break
		}

		c.Stats.Experience -= c.Stats.ExpToNext
		minor++
		c = c.withRealm(major, minor, realms, stages)
	}

	// A grant that lands exactly on the last stage's requirement still
	// bottlenecks.
	if minor == lastStage && c.Stats.Experience >= c.Stats.ExpToNext {
		c.AtBottleneck = true
		c.Stats.Experience = c.Stats.ExpToNext
	}

	return c
}

// ApplyBreakthrough resolves an externally driven breakthrough attempt.
// Success advances to the next realm's first stage with a full heal and
// clears the bottleneck. Failure demotes exactly one minor stage (never
// below the realm's first stage), resets experience to zero and clears the
// flag; equipment and inventory are untouched. At the top of the ladder a
// successful breakthrough only clears the flag.
func ApplyBreakthrough(c Cultivator, success bool, realms, stages []string) Cultivator {
	if IsMortal(c.Realm) {
		return c
	}
	major, minor := ParseRealmLabel(c.Realm, realms, stages)

	if success {
		c.AtBottleneck = false
		if major+1 < len(realms) {
			c = c.withRealm(major+1, 0, realms, stages)
		}
		c.Stats.Experience = 0
		c.Stats.Health = c.Stats.MaxHealth
		c.Stats.Qi = c.Stats.MaxQi
		return c
	}

	c.AtBottleneck = false
	if minor > 0 {
		c = c.withRealm(major, minor-1, realms, stages)
	}
	c.Stats.Experience = 0
	return c
}

// withRealm moves the cultivator to a new stage: base stats are regenerated
// for the new tier and current health/qi refill to the new maxima.
func (c Cultivator) withRealm(major, minor int, realms, stages []string) Cultivator {
	c.Realm = FormatRealmLabel(major, minor, realms, stages)

	exp := c.Stats.Experience
	regenerated := RealmBaseStats(c.Realm, realms, stages)
	regenerated.Experience = exp
	c.Stats = regenerated
	return c
}
