package game

import "strings"

// Rules holds the configuration knobs the engine consults while applying
// commands. They come from the host configuration, never from the model.
type Rules struct {
	// StatsEnabled turns the numeric progression system on. When false,
	// person records keep no stat blocks and combat is narrative-only.
	StatsEnabled bool
	// NarrativeCombat resolves fights purely through prose; combat-trigger
	// commands become no-ops.
	NarrativeCombat bool
}

// StatBlock is the numeric shape shared by the player and every person
// record that carries stats. Current values never exceed their maxima.
type StatBlock struct {
	Health     int `json:"health"`
	MaxHealth  int `json:"max_health"`
	Qi         int `json:"qi"`
	MaxQi      int `json:"max_qi"`
	Attack     int `json:"attack"`
	Defense    int `json:"defense"`
	Speed      int `json:"speed"`
	Experience int `json:"experience"`
	ExpToNext  int `json:"exp_to_next"`
}

// StatModifier adjusts one named stat either by a flat amount or by a
// percentage (0.10 = +10%). Flat is applied before Pct within one modifier.
type StatModifier struct {
	Stat string  `json:"stat"`
	Flat int     `json:"flat,omitempty"`
	Pct  float64 `json:"pct,omitempty"`
}

// Stat names accepted by StatModifier and the stat-change commands.
const (
	StatHealth  = "health"
	StatQi      = "qi"
	StatAttack  = "attack"
	StatDefense = "defense"
	StatSpeed   = "speed"
)

// StatusEffect is a timed buff or debuff. Turns counts down as world time
// advances; at zero the effect is dropped.
type StatusEffect struct {
	Name      string         `json:"name"`
	Turns     int            `json:"turns"`
	Modifiers []StatModifier `json:"modifiers,omitempty"`
}

// Emotion is a transient label with bounded intensity, replaced wholesale
// whenever the narrator reports a new one.
type Emotion struct {
	Label     string `json:"label,omitempty"`
	Intensity int    `json:"intensity,omitempty"`
}

// Person is one NPC record. The same shape is used across the encountered,
// wife, slave and prisoner lists; Category records which role the narrator
// assigned.
type Person struct {
	Name        string            `json:"name"`
	Gender      string            `json:"gender,omitempty"`
	Description string            `json:"description,omitempty"`
	Category    string            `json:"category,omitempty"`
	Realm       string            `json:"realm,omitempty"`
	Affinity    int               `json:"affinity"`
	Tags        []string          `json:"tags,omitempty"`
	Stats       *StatBlock        `json:"stats,omitempty"`
	AtBottleneck bool             `json:"at_bottleneck,omitempty"`
	Stance      string            `json:"stance,omitempty"`
	Thoughts    string            `json:"thoughts,omitempty"`
	Emotion     Emotion           `json:"emotion,omitempty"`
	Memories    map[string]string `json:"memories,omitempty"`
	Effects     []StatusEffect    `json:"effects,omitempty"`
	Willpower   int               `json:"willpower,omitempty"`
	Resistance  int               `json:"resistance,omitempty"`
	Aptitude    string            `json:"aptitude,omitempty"`
	Physique    string            `json:"physique,omitempty"`
}

// Item is one inventory record. Equipped items contribute their Bonuses to
// the effective stat aggregation; Effects holds free-text special effects
// used for valuation.
type Item struct {
	Name        string         `json:"name"`
	Quantity    int            `json:"quantity"`
	Category    string         `json:"category,omitempty"`
	Rarity      string         `json:"rarity,omitempty"`
	Realm       string         `json:"realm,omitempty"`
	Description string         `json:"description,omitempty"`
	Equipped    bool           `json:"equipped,omitempty"`
	Bonuses     []StatModifier `json:"bonuses,omitempty"`
	Effects     []string       `json:"effects,omitempty"`
}

// Skill is a technique the player has learned.
type Skill struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Realm       string `json:"realm,omitempty"`
}

// Entity is a generic lore/location/discovery record.
type Entity struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// Faction is an organisation the player has learned about.
type Faction struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Alignment   string   `json:"alignment,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// CombatRequest asks the tactical combat screen to start an encounter. It is
// transient: the combat screen clears it when the encounter begins.
type CombatRequest struct {
	Opponents []string `json:"opponents"`
	Location  string   `json:"location,omitempty"`
}

// WorldClock tracks in-game time. Months have 30 days, years 12 months.
type WorldClock struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
	Hour  int `json:"hour"`
}

// Player is the protagonist's record.
type Player struct {
	Name          string         `json:"name"`
	Stats         StatBlock      `json:"stats"`
	Realm         string         `json:"realm"`
	AtBottleneck  bool           `json:"at_bottleneck,omitempty"`
	InTribulation bool           `json:"in_tribulation,omitempty"`
	SpiritStones  int            `json:"spirit_stones"`
	Reputation    int            `json:"reputation"`
	CombatStreak  int            `json:"combat_streak,omitempty"`
	Skills        []Skill        `json:"skills,omitempty"`
	Effects       []StatusEffect `json:"effects,omitempty"`
}

// State is the root game-state document. Processors never mutate it in
// place; every operation returns a new value with the touched lists
// replaced.
type State struct {
	Player        Player         `json:"player"`
	NPCs          []Person       `json:"npcs"`
	Wives         []Person       `json:"wives,omitempty"`
	Slaves        []Person       `json:"slaves,omitempty"`
	Prisoners     []Person       `json:"prisoners,omitempty"`
	Inventory     []Item         `json:"inventory"`
	Entities      []Entity       `json:"entities,omitempty"`
	Factions      []Faction      `json:"factions,omitempty"`
	PendingCombat *CombatRequest `json:"pending_combat,omitempty"`
	Realms        []string       `json:"realms"`
	Stages        []string       `json:"stages"`
	Clock         WorldClock     `json:"clock"`
}

// IndexUpdate asks the external retrieval layer to (re)index one entity.
type IndexUpdate struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Content string `json:"content"`
}

// DefaultRealms is the standard cultivation ladder, lowest first.
var DefaultRealms = []string{
	"Qi Refining",
	"Foundation Establishment",
	"Core Formation",
	"Nascent Soul",
	"Spirit Severing",
	"Dao Seeking",
	"Immortal Ascension",
	"True Immortal",
}

// DefaultStages are the minor stages within every realm, lowest first.
var DefaultStages = []string{"Early", "Middle", "Late", "Peak"}

// MortalRealm marks an ordinary, uncultivated person. It bypasses the realm
// stat formula entirely.
const MortalRealm = "Mortal"

// NewDefaultState creates the game-start document: empty lists, default
// ladders, a mortal protagonist at day one.
func NewDefaultState(playerName string) State {
	return State{
		Player: Player{
			Name:  playerName,
			Realm: MortalRealm,
			Stats: StatBlock{
				Health: 20, MaxHealth: 20,
				Qi: 10, MaxQi: 10,
				Attack: 3, Speed: 5,
				ExpToNext: 100,
			},
			SpiritStones: 10,
		},
		NPCs:      []Person{},
		Inventory: []Item{},
		Realms:    append([]string(nil), DefaultRealms...),
		Stages:    append([]string(nil), DefaultStages...),
		Clock:     WorldClock{Year: 1, Month: 1, Day: 1, Hour: 8},
	}
}

// ClampInt bounds v to [lo, hi].
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// FindPerson returns the index of the record whose name matches
// case-insensitively, or -1.
func FindPerson(list []Person, name string) int {
	for i := range list {
		if strings.EqualFold(list[i].Name, name) {
			return i
		}
	}
	return -1
}

// FindItem returns the index of the item whose name matches
// case-insensitively, or -1.
func FindItem(list []Item, name string) int {
	for i := range list {
		if strings.EqualFold(list[i].Name, name) {
			return i
		}
	}
	return -1
}

// EquippedItems returns the currently equipped subset of the inventory.
func EquippedItems(inventory []Item) []Item {
	var out []Item
	for _, it := range inventory {
		if it.Equipped {
			out = append(out, it)
		}
	}
	return out
}
