// Package optline parses the per-option lines of a help listing, such as
//
//	-o, --output=FILE      write to FILE instead of stdout
//	    --color[=WHEN]     colorize the output
package optline

import (
	"strings"

	g "github.com/dhamidi/clispec/grammar"
	"github.com/dhamidi/clispec/value"
)

// Line is a parsed option line.
type Line struct {
	ShortFlag string
	// LongFlags lists every long spelling, canonical first.
	LongFlags []string
	Value     *value.Attachment
	Summary   string
}

// Flag returns the canonical flag: the first long flag if there is one,
// otherwise the short flag.
func (l *Line) Flag() string {
	if len(l.LongFlags) > 0 {
		return l.LongFlags[0]
	}
	return l.ShortFlag
}

var line = newGrammar()

// Parse parses one option line. Failures are *grammar.ParseError values.
func Parse(text string) (*Line, error) {
	text = strings.TrimRight(text, " \t\r\n")
	root, err := g.Parse(line, text)
	if err != nil {
		return nil, err
	}
	l := &Line{}
	if n := root.Child("short_flag"); n != nil {
		l.ShortFlag = n.Text
	}
	for _, n := range root.All("long_flag") {
		l.LongFlags = append(l.LongFlags, n.Text)
	}
	if as := root.All("attachment"); len(as) > 0 {
		v := value.DecodeAttachment(as[len(as)-1])
		l.Value = &v
	}
	if n := root.Child("summary"); n != nil {
		l.Summary = n.Text
	}
	return l, nil
}

// Tree returns the raw capture tree of an option line.
func Tree(text string) (*g.Node, error) {
	return g.Parse(line, strings.TrimRight(text, " \t\r\n"))
}

// valueBoundary is what may follow a value separated from its flag by a
// single space. It keeps "--help display this help" from reading "display"
// as a value.
func valueBoundary() g.Parser {
	return g.Alt(
		g.End(),
		g.Lit(","),
		g.Lit("\t"),
		g.Seq(g.Class(" \t"), g.Class(" \t")),
	)
}

// Forms is the ordered choice between the flag layouts of an option line.
func Forms() g.Choice {
	attach := g.Opt(value.AttachmentParser(valueBoundary()))
	short := g.Capture("short_flag", g.ShortFlag())
	long := g.Capture("long_flag", g.LongFlag())
	comma := g.Lit(", ")

	return g.Choice{
		{Name: "long", Parser: g.Seq(long, attach)},
		{Name: "short_and_long", Parser: g.Seq(
			short, attach, comma, long, g.Many(g.Seq(comma, long)), attach,
		)},
		{Name: "short", Parser: g.Seq(short, attach)},
	}
}

func newGrammar() g.Parser {
	return g.Seq(
		g.Opt(g.Blanks()),
		Forms(),
		g.Opt(g.Lit(",")),
		g.Opt(g.Seq(g.Blanks(), g.Capture("summary", g.Some(g.Any())))),
		g.End(),
	)
}
