package scan

import (
	"strings"

	"github.com/dhamidi/clispec/command"
	"github.com/dhamidi/clispec/value"
)

// DefaultIgnoredNames are usage placeholders that stand for "flags go here"
// rather than naming an argument.
var DefaultIgnoredNames = []string{"option", "options", "opts"}

// Heuristics are the tunable ambiguity decisions of a scan.
type Heuristics struct {
	// IgnoreArgument reports whether a lower-cased usage placeholder of c
	// should be dropped instead of becoming an argument.
	IgnoreArgument func(c *command.Command, name string) bool
	// AcceptSubcommand reports whether a name listed in c's help text
	// should become a subcommand. Self-references are rejected regardless.
	AcceptSubcommand func(c *command.Command, name string) bool
	// Coercions turn two-literal values into booleans.
	Coercions value.CoercionTable
}

// DefaultHeuristics ignores DefaultIgnoredNames, accepts every subcommand
// and uses value.DefaultCoercions.
func DefaultHeuristics() Heuristics {
	return Heuristics{
		IgnoreArgument:   IgnoreNames(DefaultIgnoredNames...),
		AcceptSubcommand: RejectNames(),
		Coercions:        value.DefaultCoercions,
	}
}

func (h Heuristics) withDefaults() Heuristics {
	def := DefaultHeuristics()
	if h.IgnoreArgument == nil {
		h.IgnoreArgument = def.IgnoreArgument
	}
	if h.AcceptSubcommand == nil {
		h.AcceptSubcommand = def.AcceptSubcommand
	}
	if h.Coercions == nil {
		h.Coercions = def.Coercions
	}
	return h
}

// IgnoreNames drops placeholders whose last word is one of names, compared
// case-insensitively, and placeholders named after the command itself.
// "[global options]" is dropped because its last word is "options".
func IgnoreNames(names ...string) func(*command.Command, string) bool {
	set := lowerSet(names)
	return func(c *command.Command, name string) bool {
		if strings.EqualFold(name, c.Name) {
			return true
		}
		words := strings.Fields(name)
		if len(words) == 0 {
			return true
		}
		return set[strings.ToLower(words[len(words)-1])]
	}
}

// RejectNames accepts every subcommand except names.
func RejectNames(names ...string) func(*command.Command, string) bool {
	set := lowerSet(names)
	return func(_ *command.Command, name string) bool {
		return !set[strings.ToLower(name)]
	}
}

func lowerSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[strings.ToLower(n)] = true
	}
	return set
}
