// Package format renders command trees and grammar capture trees.
package format

import (
	"encoding"
	"fmt"
	"io"

	"github.com/dhamidi/clispec/command"
	"github.com/dhamidi/clispec/value"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(c *command.Command) error
}

// Names lists the encoders NewEncoder knows, the default first.
var Names = []string{"json", "outline", "lines"}

// NewEncoder returns the encoder called name writing to w.
func NewEncoder(name string, w io.Writer) (Encoder, error) {
	switch name {
	case "json":
		return NewJSONEncoder(w), nil
	case "outline":
		return NewOutlineEncoder(w), nil
	case "lines":
		return NewLineEncoder(w), nil
	}
	return nil, fmt.Errorf("unknown format %q, want one of %v", name, Names)
}

func write(w io.Writer, m encoding.TextMarshaler) error {
	text, err := m.MarshalText()
	if err != nil {
		return err
	}
	_, err = w.Write(text)
	return err
}

func specString(s value.Spec) string {
	if s == nil {
		return "-"
	}
	return s.String()
}

func requiredString(required bool) string {
	if required {
		return "required"
	}
	return "optional"
}
