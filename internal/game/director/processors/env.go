// Package processors holds one command processor per entity family. Each
// processor validates its required arguments and applies one command to the
// game state, returning the new state plus index-update requests for the
// retrieval layer. Processors absorb malformed input by clamping and
// defaulting; they never fail once validated.
package processors

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"ascension/internal/debug"
	"ascension/internal/game"
)

// Env carries the per-run collaborators a processor may consult. It holds no
// game state; everything mutable flows through the state value.
type Env struct {
	Rules game.Rules
	Debug *debug.Logger
	Rand  *rand.Rand
}

// Logf writes to the debug log when one is attached. Safe on a nil Env.
func (e *Env) Logf(format string, args ...interface{}) {
	if e != nil && e.Debug != nil {
		e.Debug.Printf(format, args...)
	}
}

func newIndexUpdate(entityType, name, content string) game.IndexUpdate {
	return game.IndexUpdate{
		ID:      uuid.NewString(),
		Type:    entityType,
		Content: name + ": " + content,
	}
}

func requireParams(command string, params map[string]string, keys ...string) error {
	for _, key := range keys {
		if strings.TrimSpace(params[key]) == "" {
			return fmt.Errorf("%s requires %q parameter", command, key)
		}
	}
	return nil
}

// NormalizeName strips trailing qualifier suffixes the narrator likes to
// append, such as "Lin Wu - Core Formation cultivator".
func NormalizeName(raw string) string {
	name := strings.TrimSpace(raw)
	if idx := strings.Index(name, " - "); idx > 0 {
		name = name[:idx]
	}
	return strings.TrimSpace(name)
}

func parseIntDefault(raw string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return fallback
	}
	return n
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// parseDeltaExpr evaluates a relationship-style delta expression against a
// current value: "+=N", "-=N", or a bare absolute target (delta = target -
// current). Returns false for anything unreadable.
func parseDeltaExpr(expr string, current int) (int, bool) {
	trimmed := strings.TrimSpace(expr)
	switch {
	case strings.HasPrefix(trimmed, "+="):
		n, err := strconv.Atoi(strings.TrimSpace(trimmed[2:]))
		if err != nil {
			return 0, false
		}
		return n, true
	case strings.HasPrefix(trimmed, "-="):
		n, err := strconv.Atoi(strings.TrimSpace(trimmed[2:]))
		if err != nil {
			return 0, false
		}
		return -n, true
	default:
		target, err := strconv.Atoi(trimmed)
		if err != nil {
			return 0, false
		}
		return target - current, true
	}
}

// parseModifierValue reads an equipment/status modifier value: "5" or "-3"
// is flat, "10%" or "-25%" is a percentage.
func parseModifierValue(stat, raw string) (game.StatModifier, bool) {
	trimmed := strings.TrimSpace(raw)
	if strings.HasSuffix(trimmed, "%") {
		pct, err := strconv.ParseFloat(strings.TrimSuffix(trimmed, "%"), 64)
		if err != nil {
			return game.StatModifier{}, false
		}
		return game.StatModifier{Stat: stat, Pct: pct / 100}, true
	}
	flat, err := strconv.Atoi(trimmed)
	if err != nil {
		return game.StatModifier{}, false
	}
	return game.StatModifier{Stat: stat, Flat: flat}, true
}

// modifiersFromParams collects stat-named params (health="10", attack="5%")
// into a modifier list. Unreadable values are skipped.
func modifiersFromParams(params map[string]string) []game.StatModifier {
	var mods []game.StatModifier
	for _, stat := range []string{game.StatHealth, game.StatQi, game.StatAttack, game.StatDefense, game.StatSpeed} {
		raw, ok := params[stat]
		if !ok {
			continue
		}
		if mod, ok := parseModifierValue(stat, raw); ok {
			mods = append(mods, mod)
		}
	}
	return mods
}
