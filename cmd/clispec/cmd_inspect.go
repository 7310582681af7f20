package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dhamidi/clispec/inspect"
	"github.com/dhamidi/clispec/provider"
	"github.com/dhamidi/clispec/scan"
)

func newInspectCmd(a *app) *cobra.Command {
	var depth int
	var parsers []string
	var timeout time.Duration
	var diagnostics bool

	cmd := &cobra.Command{
		Use:   "inspect <command> [subcommand...]",
		Short: "Run a program's --help and man page and print its inferred interface",
		Long: `Run a program's --help (falling back to -h) and man page, and print the
options, arguments and subcommands found in them. A single quoted argument
such as "git remote add" is split like a shell would.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg
			if cmd.Flags().Changed("depth") {
				cfg.Depth = depth
			}
			if cmd.Flags().Changed("parsers") {
				cfg.Parsers = parsers
			}
			if cmd.Flags().Changed("timeout") {
				cfg.Timeout = timeout
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			path := args
			if len(args) == 1 {
				var err error
				if path, err = inspect.SplitPath(args[0]); err != nil {
					return err
				}
			}

			var sources []inspect.Source
			for _, mode := range cfg.Modes() {
				var p provider.Provider
				switch mode {
				case scan.Help:
					p = provider.NewHelp(cfg.Timeout)
				case scan.Man:
					p = provider.NewMan(cfg.Timeout)
				}
				sources = append(sources, inspect.Source{Provider: p, Mode: mode})
			}

			scanOpts := []scan.Option{scan.WithHeuristics(cfg.ScanHeuristics())}
			if diagnostics {
				scanOpts = append(scanOpts, scan.WithDiagnostics(printDiagnostic(cmd)))
			}
			inspector := inspect.New(
				inspect.WithSources(sources...),
				inspect.WithDepth(cfg.Depth),
				inspect.WithScanOptions(scanOpts...),
			)

			tree, err := inspector.Inspect(cmd.Context(), path)
			switch {
			case errors.Is(err, inspect.ErrNoModel):
				return &exitError{code: 2, err: err}
			case err != nil:
				return err
			}

			target := tree.Root()
			for _, name := range path[1:] {
				target, _ = target.LookupSubcommand(name)
			}
			return a.emit(cmd, target)
		},
	}

	cmd.Flags().IntVarP(&depth, "depth", "d", 0, "levels of subcommands to inspect")
	cmd.Flags().StringSliceVarP(&parsers, "parsers", "p", nil, "text sources in order (help, man)")
	cmd.Flags().DurationVar(&timeout, "timeout", provider.DefaultTimeout, "time limit for each invocation")
	cmd.Flags().BoolVar(&diagnostics, "diagnostics", false, "report lines that could not be parsed on stderr")

	return cmd
}

func printDiagnostic(cmd *cobra.Command) scan.Diagnostics {
	return func(line string, err error) {
		fmt.Fprintf(cmd.ErrOrStderr(), "skipped %q: %s\n", line, err)
	}
}
