package grammar

import "strings"

// Span is a byte range within the parsed input.
type Span struct {
	Start int
	End   int
}

// Node is a named capture. Children are the captures made while matching
// the capture's body, in input order.
type Node struct {
	Name     string
	Text     string
	Span     Span
	Children []*Node
}

// Child returns the first direct child with the given name.
func (n *Node) Child(name string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// All returns every direct child with the given name.
func (n *Node) All(name string) []*Node {
	if n == nil {
		return nil
	}
	var nodes []*Node
	for _, c := range n.Children {
		if c.Name == name {
			nodes = append(nodes, c)
		}
	}
	return nodes
}

// Has reports whether a direct child with the given name exists.
func (n *Node) Has(name string) bool {
	return n.Child(name) != nil
}

// String renders the node as an s-expression, mostly for tests and debugging.
func (n *Node) String() string {
	var b strings.Builder
	n.write(&b)
	return b.String()
}

func (n *Node) write(b *strings.Builder) {
	if n == nil {
		b.WriteString("nil")
		return
	}
	b.WriteString("(")
	b.WriteString(n.Name)
	if len(n.Children) == 0 {
		b.WriteString(" ")
		b.WriteString(quote(n.Text))
	}
	for _, c := range n.Children {
		b.WriteString(" ")
		c.write(b)
	}
	b.WriteString(")")
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}
