package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/clispec/command"
)

// LineEncoder writes one tab-separated record per command, option and
// argument, for grep and cut. Every record carries the command path.
type LineEncoder struct {
	w   io.Writer
	cmd *command.Command
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(c *command.Command) error {
	e.cmd = c
	return write(e.w, e)
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	err := e.cmd.Walk(func(c *command.Command) error {
		path := c.CommandPath()
		fmt.Fprintf(&sb, "command\t%s\t%s\n", path, c.ClassName())

		for p := c.Options.Oldest(); p != nil; p = p.Next() {
			o := p.Value
			valueType, valueRequired := "-", "-"
			if o.Value != nil {
				valueType = specString(o.Value.Type)
				valueRequired = requiredString(o.Value.Required)
			}
			fmt.Fprintf(&sb, "option\t%s\t%s\t%s\t%s\t%s\t%s\n",
				path,
				o.Flag,
				o.Equals,
				valueType,
				valueRequired,
				repeatsString(o.Repeats),
			)
		}

		for p := c.Arguments.Oldest(); p != nil; p = p.Next() {
			a := p.Value
			fmt.Fprintf(&sb, "argument\t%s\t%s\t%s\t%s\t%s\n",
				path,
				a.Name,
				requiredString(a.Required),
				repeatsString(a.Repeats),
				specString(a.Type),
			)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return []byte(sb.String()), nil
}

func repeatsString(repeats bool) string {
	if repeats {
		return "repeats"
	}
	return "once"
}
