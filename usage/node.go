package usage

import "github.com/dhamidi/clispec/value"

// Node is one element of a usage line. It is one of *Argument, *Option,
// *Group, *Ellipsis or *Dash.
type Node interface {
	node()
}

// Argument is a positional placeholder such as FILE, <container id> or
// FILE,...
type Argument struct {
	// Name is the placeholder as written, including an absorbed
	// "OPTIONS"-style suffix ("global options").
	Name string
	// Words is set for multi-word prose placeholders.
	Words bool
	// List is set for "NAME,..." placeholders.
	List    bool
	Repeats bool
}

// Option is a flag mentioned in a usage line.
type Option struct {
	Flag string
	// Cluster is set for amalgamated short flags such as -xzf.
	Cluster bool
	Value   *value.Attachment
	Repeats bool
}

// GroupKind is the bracket style of a group.
type GroupKind int

const (
	// Angle is <...>.
	Angle GroupKind = iota
	// Curly is {...}.
	Curly
	// Optional is [...].
	Optional
)

func (k GroupKind) String() string {
	switch k {
	case Angle:
		return "angle"
	case Curly:
		return "curly"
	default:
		return "optional"
	}
}

// Group is a bracketed sequence of nodes.
type Group struct {
	Kind    GroupKind
	Nodes   []Node
	Repeats bool
}

// Ellipsis is a "..." with nothing before it to repeat.
type Ellipsis struct{}

// Dash is a bare "-" or "--".
type Dash struct {
	Text string
}

func (*Argument) node() {}
func (*Option) node()   {}
func (*Group) node()    {}
func (*Ellipsis) node() {}
func (*Dash) node()     {}

// Slot is an argument or option of a usage line with the optionality and
// repetition it inherits from the groups around it. Alternatives separated
// by "|" are flattened: each becomes its own slot.
type Slot struct {
	Argument *Argument
	Option   *Option
	Required bool
	Repeats  bool
}

// Slots flattens the usage line's nodes in order.
func (u *Usage) Slots() []Slot {
	var slots []Slot
	var walk func(nodes []Node, required, repeats bool)
	walk = func(nodes []Node, required, repeats bool) {
		for _, n := range nodes {
			switch n := n.(type) {
			case *Argument:
				slots = append(slots, Slot{Argument: n, Required: required, Repeats: repeats || n.Repeats})
			case *Option:
				slots = append(slots, Slot{Option: n, Required: required, Repeats: repeats || n.Repeats})
			case *Group:
				walk(n.Nodes, required && n.Kind != Optional, repeats || n.Repeats)
			}
		}
	}
	walk(u.Args, true, false)
	return slots
}
