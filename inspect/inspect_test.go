package inspect

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dhamidi/clispec/command"
	"github.com/dhamidi/clispec/provider"
	"github.com/dhamidi/clispec/scan"
)

type fakeProvider struct {
	name  string
	texts map[string]string
	err   error
	calls []string
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Text(ctx context.Context, path []string) (string, error) {
	key := strings.Join(path, " ")
	f.calls = append(f.calls, key)
	if f.err != nil {
		return "", f.err
	}
	text, ok := f.texts[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", provider.ErrNoText, key)
	}
	return text, nil
}

const toolHelp = `Usage: tool [OPTIONS] COMMAND

Options:
  -v, --verbose   be loud

Commands:
  build   Build things
  clean   Remove build output
`

const buildHelp = `Usage: tool build [OPTIONS] TARGET...

Options:
  -j, --jobs=N    run N jobs
`

const toolMan = `NAME
       tool - build things

OPTIONS
       --color=WHEN
              colorize output
`

func TestInspectDepth(t *testing.T) {
	help := &fakeProvider{name: "help", texts: map[string]string{
		"tool":       toolHelp,
		"tool build": buildHelp,
	}}
	cases := []struct {
		depth     int
		wantCalls []string
	}{
		{0, []string{"tool"}},
		{1, []string{"tool", "tool build", "tool clean"}},
	}
	for _, tc := range cases {
		help.calls = nil
		i := New(WithSources(Source{Provider: help, Mode: scan.Help}), WithDepth(tc.depth))
		tree, err := i.Inspect(context.Background(), []string{"tool"})
		if err != nil {
			t.Fatalf("depth %d: unexpected error: %v", tc.depth, err)
		}
		if diff := cmp.Diff(tc.wantCalls, help.calls); diff != "" {
			t.Errorf("depth %d: calls mismatch (-want +got):\n%s", tc.depth, diff)
		}
		root := tree.Root()
		if diff := cmp.Diff([]string{"build", "clean"}, root.SubcommandNames()); diff != "" {
			t.Errorf("depth %d: subcommands mismatch (-want +got):\n%s", tc.depth, diff)
		}
		build, _ := root.LookupSubcommand("build")
		if tc.depth == 0 && !build.Empty() {
			t.Errorf("depth 0: expected build to be uninspected, got %v", build.OptionFlags())
		}
		if tc.depth == 1 {
			if diff := cmp.Diff([]string{"--jobs"}, build.OptionFlags()); diff != "" {
				t.Errorf("build options mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff([]string{"target"}, build.ArgumentNames()); diff != "" {
				t.Errorf("build arguments mismatch (-want +got):\n%s", diff)
			}
		}
	}
}

func TestInspectMergesSources(t *testing.T) {
	help := &fakeProvider{name: "help", texts: map[string]string{"tool": toolHelp}}
	man := &fakeProvider{name: "man", texts: map[string]string{"tool": toolMan}}
	i := New(WithSources(
		Source{Provider: help, Mode: scan.Help},
		Source{Provider: man, Mode: scan.Man},
	))
	tree, err := i.Inspect(context.Background(), []string{"tool"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"--verbose", "--color"}, tree.Root().OptionFlags()); diff != "" {
		t.Errorf("options mismatch (-want +got):\n%s", diff)
	}
	color, _ := tree.Root().Options.Get("--color")
	if color.Equals != command.EqualsRequired {
		t.Errorf("expected --color to take =WHEN, got %v", color.Equals)
	}
}

func TestInspectSubcommandPath(t *testing.T) {
	help := &fakeProvider{name: "help", texts: map[string]string{"tool build": buildHelp}}
	i := New(WithSources(Source{Provider: help, Mode: scan.Help}))
	tree, err := i.InspectLine(context.Background(), "tool 'build'")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	build, ok := tree.Root().LookupSubcommand("build")
	if !ok {
		t.Fatalf("expected build under %q", tree.Root().Name)
	}
	if diff := cmp.Diff([]string{"--jobs"}, build.OptionFlags()); diff != "" {
		t.Errorf("options mismatch (-want +got):\n%s", diff)
	}
	if !tree.Root().Empty() {
		t.Errorf("expected the root to be uninspected")
	}
}

func TestInspectNoModel(t *testing.T) {
	help := &fakeProvider{name: "help"}
	man := &fakeProvider{name: "man"}
	i := New(WithSources(
		Source{Provider: help, Mode: scan.Help},
		Source{Provider: man, Mode: scan.Man},
	))
	_, err := i.Inspect(context.Background(), []string{"tool"})
	if !errors.Is(err, ErrNoModel) {
		t.Fatalf("expected ErrNoModel, got %v", err)
	}
	if len(man.calls) != 1 {
		t.Errorf("expected man to be tried after help, got %v", man.calls)
	}
}

func TestInspectUnknownCommand(t *testing.T) {
	help := &fakeProvider{name: "help", err: provider.ErrUnknownCommand}
	man := &fakeProvider{name: "man"}
	i := New(WithSources(
		Source{Provider: help, Mode: scan.Help},
		Source{Provider: man, Mode: scan.Man},
	))
	_, err := i.Inspect(context.Background(), []string{"nope"})
	if !errors.Is(err, provider.ErrUnknownCommand) {
		t.Fatalf("expected ErrUnknownCommand, got %v", err)
	}
	if len(man.calls) != 0 {
		t.Errorf("expected man to be skipped, got %v", man.calls)
	}
}

func TestInspectEmptyPath(t *testing.T) {
	_, err := New().Inspect(context.Background(), nil)
	if err == nil {
		t.Fatal("expected an error for an empty path")
	}
}

func TestInspectDiagnostics(t *testing.T) {
	help := &fakeProvider{name: "help", texts: map[string]string{
		"tool": "Usage: tool ARG1 (ARG2)\n  --ok   fine\n",
	}}
	var lines []string
	i := New(
		WithSources(Source{Provider: help, Mode: scan.Help}),
		WithScanOptions(scan.WithDiagnostics(func(line string, err error) {
			lines = append(lines, line)
		})),
	)
	tree, err := i.Inspect(context.Background(), []string{"tool"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"Usage: tool ARG1 (ARG2)"}, lines); diff != "" {
		t.Errorf("diagnostics mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"--ok"}, tree.Root().OptionFlags()); diff != "" {
		t.Errorf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestSplitPath(t *testing.T) {
	path, err := SplitPath(`git "remote add"`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"git", "remote add"}, path); diff != "" {
		t.Errorf("path mismatch (-want +got):\n%s", diff)
	}
	if _, err := SplitPath(`git "remote`); err == nil {
		t.Error("expected an error for an unterminated quote")
	}
}
