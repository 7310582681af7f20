package scan

import (
	g "github.com/dhamidi/clispec/grammar"
)

// Line kinds recognised while scanning help text, in priority order.
const (
	kindUsage      = "usage"
	kindOr         = "or"
	kindOption     = "option"
	kindSubcommand = "subcommand"
)

var (
	helpLines     = newHelpLines()
	sectionHeader = g.Seq(g.Class("A-Z"), g.Many(g.Class("A-Z ")))
	manOptionLine = g.Seq(
		g.Blanks(),
		g.Lit("-"),
		g.Alt(g.Class("A-Za-z0-9"), g.Seq(g.Lit("-"), g.Class("A-Za-z0-9"))),
		g.Many(g.Any()),
	)
)

func newHelpLines() g.Choice {
	subcommandName := g.Seq(g.Class("a-z"), g.Many(g.Class("a-z0-9_-")))
	alias := g.Seq(g.Class("A-Za-z0-9"), g.Many(g.Class("A-Za-z0-9_-")))
	separator := g.Alt(
		g.Lit("\t"),
		g.Seq(g.Lit(" "), g.Some(g.Class(" \t"))),
		g.Lit(" - "),
	)
	return g.Choice{
		// "Usage: prog ARGS" or "Usage:" alone.
		{Name: kindUsage, Parser: g.Seq(
			g.Opt(g.Blanks()), g.LitFold("usage:"), g.Opt(g.Blanks()),
			g.Capture("rest", g.Many(g.Any())),
		)},
		// "  or:  prog OTHER ARGS", continuing a usage line.
		{Name: kindOr, Parser: g.Seq(
			g.Blanks(), g.Lit("or:"), g.Blanks(),
			g.Capture("rest", g.Some(g.Any())),
		)},
		{Name: kindOption, Parser: g.Seq(g.Blanks(), g.And(g.Lit("-")), g.Many(g.Any()))},
		// "   checkpoint  checkpoint a running container"
		{Name: kindSubcommand, Parser: g.Seq(
			g.AtLeast(2, g.Lit(" ")),
			g.Capture("name", subcommandName),
			g.Many(g.Seq(g.Lit(","), g.Opt(g.Space()), g.Capture("alias", alias))),
			separator,
			g.Many(g.Class(" \t")),
			g.Capture("summary", g.Some(g.Any())),
		)},
	}
}

// classify returns the kind of a help line and its captures, or "" for a
// line that needs no grammar.
func classify(line string) (string, *g.Node) {
	for _, b := range helpLines {
		if root, err := g.Parse(b.Parser, line); err == nil {
			return b.Name, root
		}
	}
	return "", nil
}

// isIndented reports whether line starts with a space or tab and has
// something after it.
func isIndented(line string) bool {
	if len(line) == 0 || (line[0] != ' ' && line[0] != '\t') {
		return false
	}
	for i := 0; i < len(line); i++ {
		if line[i] != ' ' && line[i] != '\t' {
			return true
		}
	}
	return false
}

func isSectionHeader(line string) bool {
	_, err := g.Parse(sectionHeader, line)
	return err == nil
}

func isManOptionLine(line string) bool {
	_, err := g.Parse(manOptionLine, line)
	return err == nil
}
