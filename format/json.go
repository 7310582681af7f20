package format

import (
	"encoding/json"
	"io"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/dhamidi/clispec/command"
	"github.com/dhamidi/clispec/value"
)

// JSONEncoder writes a command and its subcommands as indented JSON.
// Options and arguments are objects keyed by flag and name, in discovery
// order.
type JSONEncoder struct {
	w   io.Writer
	cmd *command.Command
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(c *command.Command) error {
	e.cmd = c
	return write(e.w, e)
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	data, err := json.MarshalIndent(buildCommand(e.cmd), "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

type jsonCommand struct {
	Name        string                                       `json:"name"`
	Path        []string                                     `json:"path"`
	ClassName   string                                       `json:"className"`
	Options     *orderedmap.OrderedMap[string, jsonOption]   `json:"options"`
	Arguments   *orderedmap.OrderedMap[string, jsonArgument] `json:"arguments"`
	Subcommands []jsonCommand                                `json:"subcommands,omitempty"`
}

type jsonOption struct {
	Equals  string     `json:"equals"`
	Repeats bool       `json:"repeats"`
	Value   *jsonValue `json:"value,omitempty"`
}

type jsonValue struct {
	Required bool      `json:"required"`
	Type     *jsonType `json:"type,omitempty"`
}

type jsonArgument struct {
	Required bool      `json:"required"`
	Repeats  bool      `json:"repeats"`
	Type     *jsonType `json:"type,omitempty"`
}

type jsonType struct {
	Kind      string   `json:"kind"`
	Name      string   `json:"name,omitempty"`
	Separator string   `json:"separator,omitempty"`
	Values    []string `json:"values,omitempty"`
	True      string   `json:"true,omitempty"`
	False     string   `json:"false,omitempty"`
}

func buildCommand(c *command.Command) jsonCommand {
	data := jsonCommand{
		Name:      c.Name,
		Path:      c.Path(),
		ClassName: c.ClassName(),
		Options:   orderedmap.New[string, jsonOption](),
		Arguments: orderedmap.New[string, jsonArgument](),
	}
	for p := c.Options.Oldest(); p != nil; p = p.Next() {
		data.Options.Set(p.Key, buildOption(p.Value))
	}
	for p := c.Arguments.Oldest(); p != nil; p = p.Next() {
		a := p.Value
		data.Arguments.Set(p.Key, jsonArgument{
			Required: a.Required,
			Repeats:  a.Repeats,
			Type:     buildType(a.Type),
		})
	}
	for _, sub := range c.Subcommands() {
		data.Subcommands = append(data.Subcommands, buildCommand(sub))
	}
	return data
}

func buildOption(o *command.Option) jsonOption {
	opt := jsonOption{
		Equals:  o.Equals.String(),
		Repeats: o.Repeats,
	}
	if o.Value != nil {
		opt.Value = &jsonValue{
			Required: o.Value.Required,
			Type:     buildType(o.Value.Type),
		}
	}
	return opt
}

func buildType(s value.Spec) *jsonType {
	switch v := s.(type) {
	case value.Name:
		return &jsonType{Kind: "name", Name: v.Name}
	case value.List:
		return &jsonType{Kind: "list", Separator: string(v.Separator)}
	case value.KeyValue:
		return &jsonType{Kind: "key_value", Separator: string(v.Separator)}
	case value.Enum:
		return &jsonType{Kind: "enum", Values: v.Values}
	case value.BooleanMap:
		return &jsonType{Kind: "map", True: v.True, False: v.False}
	case value.Num:
		return &jsonType{Kind: "num"}
	}
	return nil
}
