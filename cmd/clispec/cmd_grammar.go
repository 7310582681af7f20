package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"

	"github.com/spf13/cobra"

	"github.com/dhamidi/clispec/format"
	g "github.com/dhamidi/clispec/grammar"
	"github.com/dhamidi/clispec/optline"
	"github.com/dhamidi/clispec/usage"
)

func newGrammarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grammar",
		Short: "Inspect the usage and option-line grammars",
	}

	cmd.AddCommand(newGrammarCheckCmd())
	cmd.AddCommand(newGrammarShowCmd())
	cmd.AddCommand(newGrammarParseCmd())
	cmd.AddCommand(newGrammarMatchCmd())

	return cmd
}

func newGrammarCheckCmd() *cobra.Command {
	var startProduction string

	cmd := &cobra.Command{
		Use:   "check [file]",
		Short: "Parse and verify an EBNF grammar file, by default the built-in one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := "helptext.ebnf"
			var r io.Reader = bytes.NewReader(g.HelpTextEBNF)
			start := g.HelpTextStart
			if len(args) == 1 {
				filename = args[0]
				f, err := os.Open(filename)
				if err != nil {
					return fmt.Errorf("open file: %w", err)
				}
				defer f.Close()
				r = f
				start = startProduction
			}
			if cmd.Flags().Changed("start") {
				start = startProduction
			}

			if err := g.CheckEBNF(filename, r, start); err != nil {
				printErrors(cmd.OutOrStdout(), err)
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", filename)
			return nil
		},
	}

	cmd.Flags().StringVar(&startProduction, "start", "", "start production for verification (if empty, only checks syntax)")

	return cmd
}

func newGrammarShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the built-in EBNF grammar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := cmd.OutOrStdout().Write(g.HelpTextEBNF)
			return err
		},
	}
}

func newGrammarParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "parse usage|option <line>",
		Short:     "Print the capture tree of a single usage or option line as JSON",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"usage", "option"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var node *g.Node
			var err error
			switch args[0] {
			case "usage":
				node, err = usage.Tree(args[1])
			case "option":
				node, err = optline.Tree(args[1])
			default:
				return fmt.Errorf("unknown grammar %q, want usage or option", args[0])
			}
			if encErr := format.NewNodeJSONEncoder(cmd.OutOrStdout()).Encode(node, err); encErr != nil {
				return encErr
			}
			return err
		},
	}
}

func newGrammarMatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "match <production> <line>",
		Short: "Check a line against a production of the built-in EBNF grammar",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := g.HelpTextRecognizer()
			if err != nil {
				return err
			}
			ok, err := r.Recognize(args[0], args[1])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%s does not match %q", args[0], args[1])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: match\n", args[0])
			return nil
		},
	}
}

// printErrors prints each error of an error list on its own line.
func printErrors(w io.Writer, err error) {
	for e := err; e != nil; e = errors.Unwrap(e) {
		v := reflect.ValueOf(e)
		if v.Kind() == reflect.Slice {
			for i := 0; i < v.Len(); i++ {
				fmt.Fprintln(w, v.Index(i).Interface())
			}
			return
		}
	}
	fmt.Fprintln(w, err)
}
