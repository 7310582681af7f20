package format

import (
	"io"
	"strings"

	"github.com/dhamidi/clispec/command"
)

// OutlineEncoder writes an indented, human-readable outline:
//
//	podman
//	  option --log-level=name(LEVEL)
//	  image
//	    tag
//	      argument image
//	      argument target_name...
//
// Each command is followed by its options and arguments, then its
// subcommands one level deeper.
type OutlineEncoder struct {
	w   io.Writer
	cmd *command.Command
}

func NewOutlineEncoder(w io.Writer) *OutlineEncoder {
	return &OutlineEncoder{w: w}
}

func (e *OutlineEncoder) Encode(c *command.Command) error {
	e.cmd = c
	return write(e.w, e)
}

func (e *OutlineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	writeOutline(&sb, e.cmd, 0)
	return []byte(sb.String()), nil
}

func writeOutline(sb *strings.Builder, c *command.Command, depth int) {
	indent := strings.Repeat("  ", depth)
	sb.WriteString(indent)
	sb.WriteString(c.Name)
	sb.WriteString("\n")

	for p := c.Options.Oldest(); p != nil; p = p.Next() {
		sb.WriteString(indent)
		sb.WriteString("  option ")
		sb.WriteString(outlineOption(p.Value))
		sb.WriteString("\n")
	}
	for p := c.Arguments.Oldest(); p != nil; p = p.Next() {
		sb.WriteString(indent)
		sb.WriteString("  argument ")
		sb.WriteString(outlineArgument(p.Value))
		sb.WriteString("\n")
	}
	for _, sub := range c.Subcommands() {
		writeOutline(sb, sub, depth+1)
	}
}

// outlineOption renders an option the way a help page would, such as
// "--color[=enum(auto|always|never)]" or "--jobs N".
func outlineOption(o *command.Option) string {
	var sb strings.Builder
	sb.WriteString(o.Flag)
	if o.Value != nil {
		v := specString(o.Value.Type)
		switch o.Equals {
		case command.EqualsRequired:
			sb.WriteString("=" + v)
		case command.EqualsOptional:
			sb.WriteString("[=" + v + "]")
		default:
			if o.Value.Required {
				sb.WriteString(" " + v)
			} else {
				sb.WriteString(" [" + v + "]")
			}
		}
	}
	if o.Repeats {
		sb.WriteString("...")
	}
	return sb.String()
}

func outlineArgument(a *command.Argument) string {
	var sb strings.Builder
	if a.Required {
		sb.WriteString(a.Name)
	} else {
		sb.WriteString("[" + a.Name + "]")
	}
	if a.Repeats {
		sb.WriteString("...")
	}
	if a.Type != nil {
		sb.WriteString(" " + a.Type.String())
	}
	return sb.String()
}
