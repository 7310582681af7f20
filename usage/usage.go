// Package usage parses synopsis lines such as
//
//	tar [-xzf] [--file=ARCHIVE] FILE...
//	podman image tag IMAGE TARGET_NAME [TARGET_NAME...]
//
// into a tree of arguments, options and groups.
package usage

import (
	"strings"

	g "github.com/dhamidi/clispec/grammar"
	"github.com/dhamidi/clispec/value"
)

// Usage is a parsed usage line.
type Usage struct {
	// Line is the input with runs of whitespace collapsed.
	Line           string
	CommandName    string
	SubcommandName string
	Args           []Node
}

var line = newGrammar()

// Parse parses a usage line without its "usage:" prefix. Failures are
// *grammar.ParseError values.
func Parse(text string) (*Usage, error) {
	text = strings.Join(strings.Fields(text), " ")
	root, err := g.Parse(line, text)
	if err != nil {
		return nil, err
	}
	u := &Usage{Line: text}
	if n := root.Child("command_name"); n != nil {
		u.CommandName = n.Text
	}
	if n := root.Child("subcommand_name"); n != nil {
		u.SubcommandName = n.Text
	}
	if n := root.Child("args"); n != nil {
		u.Args = decode(n.Children)
	}
	return u, nil
}

// Tree returns the raw capture tree of a usage line.
func Tree(text string) (*g.Node, error) {
	return g.Parse(line, strings.Join(strings.Fields(text), " "))
}

// Alternatives is the ordered choice between the elements of a usage line.
func Alternatives() g.Choice {
	return newAlternatives(g.Lazy(func() g.Parser { return args }))
}

var args g.Parser

func newGrammar() g.Parser {
	args = newArgs(newAlternatives(g.Lazy(func() g.Parser { return args })))

	commandName := g.Seq(
		g.Class("A-Za-z"),
		g.Many(g.Alt(g.Class("a-zA-Z0-9_-"), g.Seq(g.Lit("."), g.Class("a-zA-Z0-9")))),
	)
	subcommandName := g.Seq(g.Class("a-z"), g.Many(g.Class("a-z0-9_-")))

	return g.Seq(
		g.Rule("command name", g.Capture("command_name", commandName)),
		g.Opt(g.Seq(
			g.Space(),
			g.Capture("subcommand_name", subcommandName),
			g.And(g.Alt(g.Space(), g.End())),
		)),
		g.Opt(g.Seq(g.Space(), g.Capture("args", args))),
	)
}

func newArgs(arg g.Parser) g.Parser {
	sep := g.Alt(
		g.Lit("|"),
		g.Seq(g.Space(), g.Opt(g.Seq(g.Lit("|"), g.Space()))),
	)
	return g.Seq(arg, g.Many(g.Seq(sep, arg)))
}

func newAlternatives(args g.Parser) g.Choice {
	sp := g.Opt(g.Space())

	flag := g.Capture("option", g.Seq(
		g.Alt(
			g.Capture("long_flag", g.LongFlag()),
			g.Capture("short_flags", g.ShortFlags()),
			g.Capture("short_flag", g.ShortFlag()),
		),
		g.Opt(value.AttachmentParser(nil)),
	))

	ignored := g.Seq(
		g.Alt(g.Lit("OPTIONS"), g.Lit("OPTS"), g.Lit("options"), g.Lit("opts")),
		g.Not(g.Class("A-Za-z0-9_")),
	)
	argument := g.Capture("argument", g.Seq(
		g.Capture("name", g.Seq(g.Name(), g.Opt(g.Seq(g.Space(), ignored)))),
		g.Opt(g.Capture("list", g.Seq(g.Lit(","), g.Ellipsis()))),
		g.Opt(g.Repeats()),
	))

	word := g.Alt(
		g.Seq(g.Class("A-Z"), g.Some(g.Class("a-z"))),
		g.Some(g.Class("a-z")),
	)
	words := g.Capture("words", g.Seq(
		g.Capture("name", g.Seq(word, g.Some(g.Seq(g.Space(), word)))),
		g.Opt(g.Repeats()),
	))

	group := func(name, open, close string) g.Parser {
		return g.Capture(name, g.Seq(g.Lit(open), sp, g.Alt(words, args), sp, g.Lit(close)))
	}

	return g.Choice{
		{Name: "option", Parser: flag},
		{Name: "argument", Parser: argument},
		{Name: "angle", Parser: group("angle", "<", ">")},
		{Name: "curly", Parser: group("curly", "{", "}")},
		{Name: "optional", Parser: g.Capture("optional", g.Seq(
			g.Lit("["), sp, args, sp, g.Lit("]"), g.Opt(g.Repeats()),
		))},
		{Name: "ellipsis", Parser: g.Capture("ellipsis", g.Ellipsis())},
		{Name: "dash", Parser: g.Capture("dash", g.Seq(g.Lit("-"), g.Opt(g.Lit("-"))))},
	}
}

func decode(nodes []*g.Node) []Node {
	var out []Node
	for _, n := range nodes {
		switch n.Name {
		case "option":
			out = append(out, decodeOption(n))
		case "argument":
			out = append(out, &Argument{
				Name:    n.Child("name").Text,
				List:    n.Has("list"),
				Repeats: n.Has("repeats") || n.Has("list"),
			})
		case "words":
			out = append(out, &Argument{
				Name:    n.Child("name").Text,
				Words:   true,
				Repeats: n.Has("repeats"),
			})
		case "angle":
			out = append(out, &Group{Kind: Angle, Nodes: decode(n.Children)})
		case "curly":
			out = append(out, &Group{Kind: Curly, Nodes: decode(n.Children)})
		case "optional":
			out = append(out, &Group{Kind: Optional, Nodes: decode(n.Children), Repeats: n.Has("repeats")})
		case "ellipsis":
			if len(out) > 0 && markRepeats(out[len(out)-1]) {
				continue
			}
			out = append(out, &Ellipsis{})
		case "dash":
			out = append(out, &Dash{Text: n.Text})
		}
	}
	return out
}

func decodeOption(n *g.Node) *Option {
	o := &Option{}
	switch {
	case n.Has("long_flag"):
		o.Flag = n.Child("long_flag").Text
	case n.Has("short_flags"):
		o.Flag = n.Child("short_flags").Text
		o.Cluster = true
	default:
		o.Flag = n.Child("short_flag").Text
	}
	if a := n.Child("attachment"); a != nil {
		v := value.DecodeAttachment(a)
		o.Value = &v
	}
	return o
}

// markRepeats folds a bare ellipsis into the node before it.
func markRepeats(n Node) bool {
	switch n := n.(type) {
	case *Argument:
		n.Repeats = true
	case *Option:
		n.Repeats = true
	case *Group:
		n.Repeats = true
	default:
		return false
	}
	return true
}
