// Package tags extracts the narrator model's embedded commands from its raw
// output and parses their argument lists. The model is an unreliable source,
// so parsing is tolerant end to end: anything unrecognisable is dropped, and
// no function here ever fails.
package tags

import (
	"regexp"
	"strings"
)

// Command is one embedded instruction, e.g. [NPC: name="Lin Wu", realm="Core Formation"].
type Command struct {
	Name   string
	Params map[string]string
	Raw    string
}

var (
	commandPattern = regexp.MustCompile(`\[([A-Z][A-Z0-9_]*)\s*:\s*([^\[\]]*)\]`)

	// key=value where value is double-quoted, single-quoted, or bare.
	// Bare values run to the next whitespace or comma.
	paramPattern = regexp.MustCompile(`([A-Za-z_][A-Za-z0-9_]*)\s*=\s*(?:"([^"]*)"|'([^']*)'|([^\s,\]"']+))`)
)

// ExtractCommands splits raw model output into prose and the ordered list of
// embedded commands. Tags are removed from the returned narrative.
func ExtractCommands(raw string) (string, []Command) {
	matches := commandPattern.FindAllStringSubmatch(raw, -1)

	var commands []Command
	for _, m := range matches {
		commands = append(commands, Command{
			Name:   m[1],
			Params: ParseParams(m[2]),
			Raw:    m[0],
		})
	}

	narrative := commandPattern.ReplaceAllString(raw, "")
	narrative = collapseBlankLines(narrative)

	return strings.TrimSpace(narrative), commands
}

// ParseParams tokenizes one command's argument list into a map. Values may be
// double-quoted, single-quoted or bare, and quoting styles can be mixed
// within one command. Fragments that match no form are skipped; consumers
// treat a missing key as "argument not supplied".
func ParseParams(raw string) map[string]string {
	params := make(map[string]string)

	for _, idx := range paramPattern.FindAllStringSubmatchIndex(raw, -1) {
		key := strings.ToLower(raw[idx[2]:idx[3]])

		// Groups 2..4 are the three value forms; exactly one participates.
		// An empty quoted value still counts as supplied.
		value := ""
		for group := 2; group <= 4; group++ {
			if idx[2*group] >= 0 {
				value = raw[idx[2*group]:idx[2*group+1]]
				break
			}
		}
		params[key] = value
	}

	return params
}

func collapseBlankLines(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	blank := false
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			if blank {
				continue
			}
			blank = true
		} else {
			blank = false
		}
		out = append(out, strings.TrimRight(line, " \t"))
	}
	return strings.Join(out, "\n")
}
