// Package command is the model inferred from a program's help text: a tree
// of commands, each with its options, positional arguments and subcommands.
package command

import (
	"errors"
	"fmt"
	"strings"

	"github.com/iancoleman/strcase"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/dhamidi/clispec/value"
)

// ErrSelfReference is returned when a subcommand would be named after the
// command itself or one of its ancestors.
var ErrSelfReference = errors.New("subcommand refers to itself")

// Equals says whether an option takes its value as --opt=VALUE.
type Equals int

const (
	EqualsNone Equals = iota
	EqualsRequired
	EqualsOptional
)

func (e Equals) String() string {
	switch e {
	case EqualsRequired:
		return "required"
	case EqualsOptional:
		return "optional"
	default:
		return "none"
	}
}

// Option is one flag definition.
type Option struct {
	// Flag is the canonical spelling, long preferred over short.
	Flag    string
	Equals  Equals
	Repeats bool
	Value   *OptionValue
}

// OptionValue describes the value an option takes.
type OptionValue struct {
	Required bool
	// Type is nil when nothing is known beyond the value's presence.
	Type value.Spec
}

// Argument is a positional argument slot.
type Argument struct {
	// Name is lower-cased.
	Name     string
	Required bool
	Repeats  bool
	Type     value.Spec
}

// ID is a stable handle to a command within its Tree.
type ID int

// NoParent is the parent of a root command.
const NoParent ID = -1

// Command is one invocable program or subcommand. Commands are created by
// a Tree and refer to their parent by ID.
type Command struct {
	tree   *Tree
	id     ID
	parent ID

	// Name may be empty until a usage line reveals it.
	Name        string
	Options     *orderedmap.OrderedMap[string, *Option]
	Arguments   *orderedmap.OrderedMap[string, *Argument]
	subcommands *orderedmap.OrderedMap[string, ID]
}

// Tree owns every command of one inspected program.
type Tree struct {
	commands []*Command
}

// NewTree returns a tree whose root command is called name. An empty name is
// allowed and can be set later with SetName.
func NewTree(name string) *Tree {
	t := &Tree{}
	t.add(name, NoParent)
	return t
}

func (t *Tree) add(name string, parent ID) *Command {
	c := &Command{
		tree:        t,
		id:          ID(len(t.commands)),
		parent:      parent,
		Name:        name,
		Options:     orderedmap.New[string, *Option](),
		Arguments:   orderedmap.New[string, *Argument](),
		subcommands: orderedmap.New[string, ID](),
	}
	t.commands = append(t.commands, c)
	return c
}

// Root returns the root command.
func (t *Tree) Root() *Command {
	return t.commands[0]
}

// Get returns the command with the given ID, or nil.
func (t *Tree) Get(id ID) *Command {
	if id < 0 || int(id) >= len(t.commands) {
		return nil
	}
	return t.commands[id]
}

// Len returns the number of commands in the tree.
func (t *Tree) Len() int {
	return len(t.commands)
}

// Walk calls fn for c and its descendants, depth first, parents before
// children. It stops at the first error.
func (c *Command) Walk(fn func(*Command) error) error {
	if err := fn(c); err != nil {
		return err
	}
	for _, sub := range c.Subcommands() {
		if err := sub.Walk(fn); err != nil {
			return err
		}
	}
	return nil
}

// ID returns the command's handle.
func (c *Command) ID() ID {
	return c.id
}

// Tree returns the tree the command belongs to.
func (c *Command) Tree() *Tree {
	return c.tree
}

// Parent returns the parent command, or nil for the root.
func (c *Command) Parent() *Command {
	return c.tree.Get(c.parent)
}

// SetName records the command's name unless it already has one. It reports
// whether the name was recorded.
func (c *Command) SetName(name string) bool {
	if c.Name != "" || name == "" {
		return false
	}
	c.Name = name
	return true
}

// DefineOption records o under its flag, replacing an earlier definition.
func (c *Command) DefineOption(o *Option) {
	c.Options.Set(o.Flag, o)
}

// DefineOptionIfAbsent records o unless its flag is already defined. It
// reports whether o was recorded.
func (c *Command) DefineOptionIfAbsent(o *Option) bool {
	if _, ok := c.Options.Get(o.Flag); ok {
		return false
	}
	c.Options.Set(o.Flag, o)
	return true
}

// DefineArgument records a under its name and returns the stored argument.
// Redefining an argument keeps its position and Required, and adds
// repetition and a value type when the new definition has them.
func (c *Command) DefineArgument(a *Argument) *Argument {
	existing, ok := c.Arguments.Get(a.Name)
	if !ok {
		c.Arguments.Set(a.Name, a)
		return a
	}
	existing.Repeats = existing.Repeats || a.Repeats
	if existing.Type == nil {
		existing.Type = a.Type
	}
	return existing
}

// Subcommand returns the subcommand called name, creating it if needed.
// A name equal to the command's own name or an ancestor's is rejected with
// ErrSelfReference.
func (c *Command) Subcommand(name string) (*Command, error) {
	if id, ok := c.subcommands.Get(name); ok {
		return c.tree.Get(id), nil
	}
	for a := c; a != nil; a = a.Parent() {
		if a.Name == name {
			return nil, fmt.Errorf("%w: %q in %q", ErrSelfReference, name, c.CommandPath())
		}
	}
	sub := c.tree.add(name, c.id)
	c.subcommands.Set(name, sub.id)
	return sub, nil
}

// LookupSubcommand returns an existing subcommand.
func (c *Command) LookupSubcommand(name string) (*Command, bool) {
	id, ok := c.subcommands.Get(name)
	if !ok {
		return nil, false
	}
	return c.tree.Get(id), true
}

// Subcommands returns the subcommands in discovery order.
func (c *Command) Subcommands() []*Command {
	subs := make([]*Command, 0, c.subcommands.Len())
	for p := c.subcommands.Oldest(); p != nil; p = p.Next() {
		subs = append(subs, c.tree.Get(p.Value))
	}
	return subs
}

// Path returns the names from the root down to c.
func (c *Command) Path() []string {
	var path []string
	for a := c; a != nil; a = a.Parent() {
		path = append([]string{a.Name}, path...)
	}
	return path
}

// CommandPath is the space-joined path used to invoke the command, such as
// "podman image tag".
func (c *Command) CommandPath() string {
	return strings.Join(c.Path(), " ")
}

// ManPage is the dash-joined path naming the command's manual page, such
// as "podman-image-tag".
func (c *Command) ManPage() string {
	return strings.Join(c.Path(), "-")
}

// ClassName is the command name in CamelCase ("git-lfs" becomes "GitLfs").
func (c *Command) ClassName() string {
	return strcase.ToCamel(c.Name)
}

// OptionFlags returns the option flags in discovery order.
func (c *Command) OptionFlags() []string {
	return keys(c.Options)
}

// ArgumentNames returns the argument names in discovery order.
func (c *Command) ArgumentNames() []string {
	return keys(c.Arguments)
}

// SubcommandNames returns the subcommand names in discovery order.
func (c *Command) SubcommandNames() []string {
	return keys(c.subcommands)
}

// Empty reports whether nothing was learned about the command's options or
// arguments.
func (c *Command) Empty() bool {
	return c.Options.Len() == 0 && c.Arguments.Len() == 0
}

func keys[V any](m *orderedmap.OrderedMap[string, V]) []string {
	out := make([]string, 0, m.Len())
	for p := m.Oldest(); p != nil; p = p.Next() {
		out = append(out, p.Key)
	}
	return out
}
