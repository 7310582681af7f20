// Package value infers the shape of an option's or argument's value from
// the placeholder text a help page uses for it ("FILE,...", "KEY=VALUE",
// "yes|no", "NUM").
package value

import (
	"fmt"
	"strings"
)

// Spec is the inferred shape of a value. It is one of Name, List, KeyValue,
// Enum, BooleanMap or Num.
type Spec interface {
	spec()
	String() string
}

// Name is an opaque placeholder such as FILE.
type Name struct {
	Name string
}

// List is a sequence of items joined by Separator, such as "FILE,...".
type List struct {
	Separator rune
}

// KeyValue is a KEY<Separator>VALUE pair.
type KeyValue struct {
	Separator rune
}

// Enum is one of an explicit set of literals, in the order they were listed.
type Enum struct {
	Values []string
}

// BooleanMap is a two-literal alternative that encodes a boolean, such as
// "yes|no". The literals keep the casing of the help text.
type BooleanMap struct {
	True  string
	False string
}

// Num is a numeric placeholder, written NUM.
type Num struct{}

func (Name) spec()       {}
func (List) spec()       {}
func (KeyValue) spec()   {}
func (Enum) spec()       {}
func (BooleanMap) spec() {}
func (Num) spec()        {}

func (v Name) String() string       { return "name(" + v.Name + ")" }
func (v List) String() string       { return fmt.Sprintf("list(%q)", v.Separator) }
func (v KeyValue) String() string   { return fmt.Sprintf("key_value(%q)", v.Separator) }
func (v Enum) String() string       { return "enum(" + strings.Join(v.Values, "|") + ")" }
func (v BooleanMap) String() string { return "map(true=" + v.True + ", false=" + v.False + ")" }
func (Num) String() string          { return "num" }
