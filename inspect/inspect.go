// Package inspect builds a command tree for an installed program by feeding
// its help and man text through the scanner, optionally descending into the
// subcommands it discovers.
package inspect

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-shellwords"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/clispec/command"
	"github.com/dhamidi/clispec/provider"
	"github.com/dhamidi/clispec/scan"
)

var log = commonlog.GetLogger("clispec.inspect")

// ErrNoModel means no provider produced any text for the command.
var ErrNoModel = errors.New("no model produced")

// Source is a text provider and the format of the text it returns.
type Source struct {
	Provider provider.Provider
	Mode     scan.Mode
}

type Option func(*Inspector)

// WithSources sets the providers to consult, in order. Every source that
// yields text is scanned into the same command.
func WithSources(sources ...Source) Option {
	return func(i *Inspector) {
		i.sources = sources
	}
}

// WithDepth sets how many levels of discovered subcommands are inspected
// below the requested command. Zero inspects the command alone.
func WithDepth(depth int) Option {
	return func(i *Inspector) {
		i.depth = depth
	}
}

// WithScanOptions passes options to every scanner, such as heuristics or a
// diagnostics callback.
func WithScanOptions(opts ...scan.Option) Option {
	return func(i *Inspector) {
		i.scanOptions = append(i.scanOptions, opts...)
	}
}

// Inspector runs providers and scanners over a command and its subcommands.
type Inspector struct {
	sources     []Source
	depth       int
	scanOptions []scan.Option
}

// New returns an Inspector. Without WithSources it runs --help, then man.
func New(opts ...Option) *Inspector {
	i := &Inspector{
		sources: []Source{
			{Provider: provider.NewHelp(provider.DefaultTimeout), Mode: scan.Help},
			{Provider: provider.NewMan(provider.DefaultTimeout), Mode: scan.Man},
		},
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Inspect returns the tree rooted at path[0] with the command named by path
// populated. ErrNoModel is returned, wrapped, when no provider had text for
// it; provider.ErrUnknownCommand when the program is not installed.
func (i *Inspector) Inspect(ctx context.Context, path []string) (*command.Tree, error) {
	if len(path) == 0 {
		return nil, fmt.Errorf("%w: empty command path", provider.ErrUnknownCommand)
	}
	tree := command.NewTree(path[0])
	c := tree.Root()
	for _, name := range path[1:] {
		sub, err := c.Subcommand(name)
		if err != nil {
			return nil, err
		}
		c = sub
	}

	found, err := i.populate(ctx, c)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrNoModel, c.CommandPath())
	}
	i.descend(ctx, c, 1)
	return tree, nil
}

// InspectLine is Inspect with the path given as a shell-quoted string, such
// as "git remote add".
func (i *Inspector) InspectLine(ctx context.Context, line string) (*command.Tree, error) {
	path, err := SplitPath(line)
	if err != nil {
		return nil, err
	}
	return i.Inspect(ctx, path)
}

// SplitPath splits a shell-quoted command path into names.
func SplitPath(line string) ([]string, error) {
	path, err := shellwords.Parse(line)
	if err != nil {
		return nil, fmt.Errorf("split %q: %w", line, err)
	}
	return path, nil
}

func (i *Inspector) populate(ctx context.Context, c *command.Command) (bool, error) {
	found := false
	for _, src := range i.sources {
		if err := ctx.Err(); err != nil {
			return found, err
		}
		text, err := src.Provider.Text(ctx, c.Path())
		switch {
		case errors.Is(err, provider.ErrUnknownCommand):
			return false, err
		case err != nil:
			log.Debugf("%s: %s", src.Provider.Name(), err)
			continue
		}
		found = true
		opts := append(append([]scan.Option{}, i.scanOptions...), scan.WithMode(src.Mode))
		stats := scan.New(opts...).Scan(c, text)
		log.Infof("%s %s: %d usage lines, %d options, %d subcommands, %d skipped",
			src.Provider.Name(), c.CommandPath(), stats.Usages, stats.Options, stats.Subcommands, stats.Failures)
	}
	return found, nil
}

func (i *Inspector) descend(ctx context.Context, c *command.Command, level int) {
	if level > i.depth {
		return
	}
	for _, sub := range c.Subcommands() {
		if ctx.Err() != nil {
			return
		}
		found, err := i.populate(ctx, sub)
		if err != nil || !found {
			log.Debugf("no text for %s", strings.Join(sub.Path(), " "))
			continue
		}
		i.descend(ctx, sub, level+1)
	}
}
