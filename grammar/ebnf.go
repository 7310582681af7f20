package grammar

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"

	"golang.org/x/exp/ebnf"
)

// HelpTextEBNF is the reference grammar, in EBNF, of the usage, option and
// subcommand lines understood by the usage and optline packages.
//
//go:embed helptext.ebnf
var HelpTextEBNF []byte

// HelpTextStart is the start production of HelpTextEBNF.
const HelpTextStart = "HelpText"

// LoadEBNF parses an EBNF grammar file.
func LoadEBNF(filename string) (ebnf.Grammar, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open grammar: %w", err)
	}
	defer f.Close()

	return ParseEBNF(filename, f)
}

// ParseEBNF parses an EBNF grammar read from r.
func ParseEBNF(filename string, r io.Reader) (ebnf.Grammar, error) {
	g, err := ebnf.Parse(filename, r)
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	return g, nil
}

// CheckEBNF parses an EBNF grammar and verifies that every production is
// defined and reachable from start. An empty start only checks syntax.
func CheckEBNF(filename string, r io.Reader, start string) error {
	g, err := ParseEBNF(filename, r)
	if err != nil {
		return err
	}
	if start == "" {
		return nil
	}
	if err := ebnf.Verify(g, start); err != nil {
		return fmt.Errorf("verify grammar: %w", err)
	}
	return nil
}

// CheckHelpText verifies the embedded reference grammar.
func CheckHelpText() error {
	return CheckEBNF("helptext.ebnf", bytes.NewReader(HelpTextEBNF), HelpTextStart)
}
