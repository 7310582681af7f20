package value

import (
	g "github.com/dhamidi/clispec/grammar"
)

// Shape is the syntactic form of a value descriptor.
type Shape int

const (
	ShapeName Shape = iota
	ShapeList
	ShapeKeyValue
	ShapeLiterals
)

var shapeNames = map[Shape]string{
	ShapeName:     "name",
	ShapeList:     "list",
	ShapeKeyValue: "key_value",
	ShapeLiterals: "literals",
}

func (s Shape) String() string {
	return shapeNames[s]
}

// Descriptor is a parsed value placeholder, before inference.
type Descriptor struct {
	Shape Shape
	// Name is the placeholder name, or the key name of a key/value pair.
	Name string
	// Separator is set for lists and key/value pairs.
	Separator rune
	// Literals holds the alternatives of a literal set.
	Literals []string
	// Optional is set when the descriptor was wrapped in [...].
	Optional bool
}

// Join is how a value is attached to its flag.
type Join int

const (
	// JoinSpace is "--opt VALUE".
	JoinSpace Join = iota
	// JoinEquals is "--opt=VALUE".
	JoinEquals
	// JoinBracket is "--opt[=VALUE]" or "--opt[VALUE]".
	JoinBracket
)

// Attachment is a value following a flag.
type Attachment struct {
	Join  Join
	Value Descriptor
}

// Shapes is the ordered choice between descriptor forms. The order is the
// priority: "FOO,..." must be tried before "FOO", and "KEY=VALUE" before
// "a|b".
func Shapes() g.Choice {
	name := g.Name()
	return g.Choice{
		{Name: ShapeList.String(), Parser: g.Capture("list", g.Seq(
			g.Capture("name", name),
			g.Alt(
				g.Seq(g.Capture("separator", g.Lit(",")), g.Ellipsis()),
				g.Seq(g.Lit("["), g.Capture("separator", g.Lit(",")), g.Ellipsis(), g.Lit("]")),
			),
		))},
		{Name: ShapeKeyValue.String(), Parser: g.Capture("key_value", g.Seq(
			g.Capture("name", name),
			g.Capture("separator", g.Class(":=")),
			g.Alt(name, g.Ellipsis()),
		))},
		{Name: ShapeLiterals.String(), Parser: g.Capture("literals", g.Seq(
			g.Capture("literal", name),
			g.Some(g.Seq(g.Lit("|"), g.Capture("literal", name))),
		))},
		{Name: ShapeName.String(), Parser: g.Capture("name", name)},
	}
}

// DescriptorParser matches a bare or bracketed value descriptor, captured as
// "value".
func DescriptorParser() g.Parser {
	desc := g.Capture("value", Shapes())
	sp := g.Opt(g.Space())
	return g.Alt(
		g.Seq(g.Lit("{"), sp, desc, sp, g.Lit("}")),
		g.Seq(g.Lit("<"), sp, desc, sp, g.Lit(">")),
		g.Seq(g.Capture("optional", g.Lit("[")), sp, desc, sp, g.Lit("]")),
		desc,
	)
}

// AttachmentParser matches a value attached to a flag, captured as
// "attachment". When boundary is not nil it must match, without being
// consumed, after a space-joined value.
func AttachmentParser(boundary g.Parser) g.Parser {
	spaced := g.Seq(g.Space(), DescriptorParser())
	if boundary != nil {
		spaced = g.Seq(spaced, g.And(boundary))
	}
	equals := g.Seq(g.Capture("equals", g.Lit("=")), DescriptorParser())
	return g.Capture("attachment", g.Alt(
		spaced,
		equals,
		g.Seq(g.Capture("bracket", g.Lit("[")), g.Alt(equals, DescriptorParser()), g.Lit("]")),
	))
}

// DecodeDescriptor converts a node holding a "value" capture (or the value
// capture itself) into a Descriptor.
func DecodeDescriptor(n *g.Node) Descriptor {
	var d Descriptor
	if n.Name != "value" {
		d.Optional = n.Has("optional")
		n = n.Child("value")
	}
	if n == nil || len(n.Children) == 0 {
		return d
	}
	shape := n.Children[0]
	switch shape.Name {
	case "list":
		d.Shape = ShapeList
		d.Name = shape.Child("name").Text
		d.Separator = separator(shape)
	case "key_value":
		d.Shape = ShapeKeyValue
		d.Name = shape.Child("name").Text
		d.Separator = separator(shape)
	case "literals":
		d.Shape = ShapeLiterals
		for _, lit := range shape.All("literal") {
			d.Literals = append(d.Literals, lit.Text)
		}
	default:
		d.Shape = ShapeName
		d.Name = shape.Text
	}
	return d
}

// DecodeAttachment converts an "attachment" capture into an Attachment.
func DecodeAttachment(n *g.Node) Attachment {
	a := Attachment{Value: DecodeDescriptor(n)}
	switch {
	case n.Has("bracket"):
		a.Join = JoinBracket
	case n.Has("equals"):
		a.Join = JoinEquals
	}
	return a
}

func separator(n *g.Node) rune {
	sep := n.Child("separator")
	if sep == nil || sep.Text == "" {
		return 0
	}
	return rune(sep.Text[0])
}
