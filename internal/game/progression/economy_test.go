package progression

import (
	"testing"

	"ascension/internal/game"
)

func TestItemValueMultipliers(t *testing.T) {
	realms := game.DefaultRealms
	stages := game.DefaultStages

	plain := ItemValue(game.Item{Name: "Iron Sword", Category: "weapon", Rarity: "common", Realm: "Qi Refining"}, realms, stages)
	rare := ItemValue(game.Item{Name: "Azure Sword", Category: "weapon", Rarity: "rare", Realm: "Qi Refining"}, realms, stages)

	if rare <= plain {
		t.Fatalf("rarity must raise value: %d vs %d", rare, plain)
	}

	higher := ItemValue(game.Item{Name: "Iron Sword", Category: "weapon", Rarity: "common", Realm: "Nascent Soul"}, realms, stages)
	if higher <= plain {
		t.Fatalf("tier must raise value: %d vs %d", higher, plain)
	}
}

func TestItemValueEffectSurcharges(t *testing.T) {
	realms := game.DefaultRealms
	stages := game.DefaultStages
	base := game.Item{Name: "Ring", Category: "weapon", Rarity: "common", Realm: "Qi Refining"}

	known := base
	known.Effects = []string{"drains life on hit (lifesteal)"}
	novel := base
	novel.Effects = []string{"whispers forgotten names at midnight"}

	plain := ItemValue(base, realms, stages)
	if got := ItemValue(known, realms, stages); got <= plain {
		t.Fatalf("keyword effect must add a surcharge: %d vs %d", got, plain)
	}
	// Novel model-generated effects are never free.
	if got := ItemValue(novel, realms, stages); got <= plain {
		t.Fatalf("unmatched effect must still pay the default surcharge: %d vs %d", got, plain)
	}
}

func TestItemValueFloor(t *testing.T) {
	junk := game.Item{Name: "Pebble", Category: "material", Rarity: "common", Realm: game.MortalRealm}
	if got := ItemValue(junk, game.DefaultRealms, game.DefaultStages); got < 1 {
		t.Fatalf("value floors at 1, got %d", got)
	}
}

func TestPersonValue(t *testing.T) {
	realms := game.DefaultRealms
	stages := game.DefaultStages

	base := game.Person{Name: "Captive", Realm: "Foundation Establishment"}
	resistant := base
	resistant.Resistance = 100
	willful := base
	willful.Willpower = 100
	talented := base
	talented.Aptitude = "heaven-defying"

	plain := PersonValue(base, realms, stages)
	if got := PersonValue(resistant, realms, stages); got >= plain {
		t.Fatalf("resistance must discount: %d vs %d", got, plain)
	}
	if got := PersonValue(willful, realms, stages); got <= plain {
		t.Fatalf("willpower must raise: %d vs %d", got, plain)
	}
	if got := PersonValue(talented, realms, stages); got <= plain {
		t.Fatalf("aptitude must raise: %d vs %d", got, plain)
	}
}

func TestPersonValueClampsInputs(t *testing.T) {
	p := game.Person{Name: "Captive", Realm: "Qi Refining", Resistance: 9999}
	if got := PersonValue(p, game.DefaultRealms, game.DefaultStages); got < 1 {
		t.Fatalf("out-of-range resistance is clamped, value floors at 1: got %d", got)
	}
}
