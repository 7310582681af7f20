package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/clispec/command"
	"github.com/dhamidi/clispec/inspect"
	"github.com/dhamidi/clispec/scan"
)

func newParseCmd(a *app) *cobra.Command {
	var man bool
	var name string
	var diagnostics bool

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse saved help or man page text and print the inferred interface",
		Long: `Parse --help output or a plain-text man page read from a file, or from
standard input when the file is omitted or "-". The command name defaults
to the file name without its extension; --name "podman image tag" places
the result under its parents.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var text []byte
			var err error
			if len(args) == 0 || args[0] == "-" {
				text, err = io.ReadAll(cmd.InOrStdin())
			} else {
				text, err = os.ReadFile(args[0])
				if name == "" {
					name = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
				}
			}
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}

			c, err := commandAt(name)
			if err != nil {
				return err
			}

			mode := scan.Help
			if man {
				mode = scan.Man
			}
			opts := []scan.Option{
				scan.WithMode(mode),
				scan.WithHeuristics(a.cfg.ScanHeuristics()),
			}
			if diagnostics {
				opts = append(opts, scan.WithDiagnostics(printDiagnostic(cmd)))
			}
			scan.New(opts...).Scan(c, string(text))

			return a.emit(cmd, c)
		},
	}

	cmd.Flags().BoolVar(&man, "man", false, "the input is a man page")
	cmd.Flags().StringVar(&name, "name", "", "command path of the program the text describes")
	cmd.Flags().BoolVar(&diagnostics, "diagnostics", false, "report lines that could not be parsed on stderr")

	return cmd
}

// commandAt returns the command named by the last word of path, creating
// its parents. An empty path leaves the name to the first usage line.
func commandAt(path string) (*command.Command, error) {
	names, err := inspect.SplitPath(path)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return command.NewTree("").Root(), nil
	}
	c := command.NewTree(names[0]).Root()
	for _, name := range names[1:] {
		if c, err = c.Subcommand(name); err != nil {
			return nil, err
		}
	}
	return c, nil
}
