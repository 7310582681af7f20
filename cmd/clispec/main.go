package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/clispec/command"
	"github.com/dhamidi/clispec/config"
	"github.com/dhamidi/clispec/format"
)

// exitError carries a specific exit status out of a command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

// errNothingFound is returned, with exit status 2, when a scan found
// neither options nor arguments.
var errNothingFound = errors.New("no options or arguments found")

type app struct {
	verbosity  int
	configPath string
	outputPath string
	format     string
	cfg        *config.Config
}

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := newRootCmd(&app{})
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "clispec:", err)
		var exit *exitError
		if errors.As(err, &exit) {
			return exit.code
		}
		return 1
	}
	return 0
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "clispec",
		Short:         "Infer the command-line interface of a program from its help text",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			commonlog.Configure(a.verbosity, nil)
			cfg, err := config.Load(cmd.Context(), config.LoadOptions{ConfigFilePath: a.configPath})
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("format") {
				cfg.Format = a.format
			}
			a.cfg = cfg
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&a.verbosity, "verbose", "v", "increase log verbosity (repeatable)")
	flags.StringVar(&a.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/clispec/clispec.yaml)")
	flags.StringVarP(&a.outputPath, "output", "o", "", "write output to a file instead of stdout")
	flags.StringVarP(&a.format, "format", "f", format.Names[0], fmt.Sprintf("output format %v", format.Names))

	rootCmd.AddCommand(newInspectCmd(a))
	rootCmd.AddCommand(newParseCmd(a))
	rootCmd.AddCommand(newGrammarCmd())

	return rootCmd
}

// emit encodes c and its subcommands in the configured format. Finding
// nothing at all is reported with exit status 2 after the output is
// written.
func (a *app) emit(cmd *cobra.Command, c *command.Command) error {
	var w io.Writer = cmd.OutOrStdout()
	if a.outputPath != "" {
		f, err := os.Create(a.outputPath)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		w = f
	}

	enc, err := format.NewEncoder(a.cfg.Format, w)
	if err != nil {
		return err
	}
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	if empty(c) {
		return &exitError{code: 2, err: errNothingFound}
	}
	return nil
}

func empty(c *command.Command) bool {
	found := errors.New("found")
	err := c.Walk(func(c *command.Command) error {
		if !c.Empty() {
			return found
		}
		return nil
	})
	return err == nil
}
