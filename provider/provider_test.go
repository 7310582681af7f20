package provider

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type call struct {
	Name string
	Args []string
}

// fakeRunner answers invocations from a table keyed by the joined command
// line and records each call.
type fakeRunner struct {
	outputs map[string]string
	missing bool
	calls   []call
}

func (f *fakeRunner) run(ctx context.Context, env []string, name string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, call{Name: name, Args: args})
	if f.missing {
		return nil, ErrUnknownCommand
	}
	if _, ok := ctx.Deadline(); !ok {
		return nil, errors.New("expected a deadline")
	}
	return []byte(f.outputs[strings.Join(append([]string{name}, args...), " ")]), nil
}

func TestHelpFallsBackToShortFlag(t *testing.T) {
	f := &fakeRunner{outputs: map[string]string{"foo -h": "usage: foo ARG\n"}}
	h := &Help{Runner: f.run}

	text, err := h.Text(context.Background(), []string{"foo"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "usage: foo ARG\n" {
		t.Errorf("unexpected text %q", text)
	}
	want := []call{{"foo", []string{"--help"}}, {"foo", []string{"-h"}}}
	if diff := cmp.Diff(want, f.calls); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
}

func TestHelpSubcommandPath(t *testing.T) {
	f := &fakeRunner{outputs: map[string]string{"git remote add --help": "usage: git remote add NAME URL\n"}}
	h := &Help{Runner: f.run}

	if _, err := h.Text(context.Background(), []string{"git", "remote", "add"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.calls) != 1 {
		t.Errorf("expected one call, got %v", f.calls)
	}
}

func TestHelpNoText(t *testing.T) {
	f := &fakeRunner{outputs: map[string]string{"foo --help": "  \n"}}
	h := &Help{Runner: f.run}

	_, err := h.Text(context.Background(), []string{"foo"})
	if !errors.Is(err, ErrNoText) {
		t.Errorf("expected ErrNoText, got %v", err)
	}
}

func TestHelpUnknownCommand(t *testing.T) {
	f := &fakeRunner{missing: true}
	h := &Help{Runner: f.run}

	_, err := h.Text(context.Background(), []string{"foo"})
	if !errors.Is(err, ErrUnknownCommand) {
		t.Errorf("expected ErrUnknownCommand, got %v", err)
	}
	if len(f.calls) != 1 {
		t.Errorf("expected -h not to be tried, got %v", f.calls)
	}
}

func TestManPageName(t *testing.T) {
	f := &fakeRunner{outputs: map[string]string{
		"man podman-image-tag": "N\bNA\bAM\bME\bE\n       podman-image-tag\n",
	}}
	m := &Man{Runner: f.run}

	text, err := m.Text(context.Background(), []string{"podman", "image", "tag"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(text, "NAME\n") {
		t.Errorf("expected overstrike to be removed, got %q", text)
	}
}

func TestManNoEntry(t *testing.T) {
	f := &fakeRunner{outputs: map[string]string{"man foo": ""}}
	m := &Man{Runner: f.run}
	if _, err := m.Text(context.Background(), []string{"foo"}); !errors.Is(err, ErrNoText) {
		t.Errorf("expected ErrNoText, got %v", err)
	}

	f = &fakeRunner{missing: true}
	m = &Man{Runner: f.run}
	if _, err := m.Text(context.Background(), []string{"foo"}); !errors.Is(err, ErrNoText) {
		t.Errorf("expected a missing man to mean no text, got %v", err)
	}
}

func TestRemoveOverstrike(t *testing.T) {
	cases := []struct{ in, want string }{
		{"plain", "plain"},
		{"N\bNA\bAM\bME\bE", "NAME"},
		{"_\bf_\bi_\bl_\be", "file"},
		{"--h\bhe\bel\blp\bp", "--help"},
		{"trailing\b", "trailing\b"},
	}
	for _, tc := range cases {
		if got := RemoveOverstrike(tc.in); got != tc.want {
			t.Errorf("RemoveOverstrike(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
