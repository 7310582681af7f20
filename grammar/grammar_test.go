package grammar

import (
	"errors"
	"strings"
	"testing"
)

func TestParseSequenceCaptures(t *testing.T) {
	p := Seq(Capture("flag", Lit("--")), Capture("digits", Some(Class("0-9"))))

	root, err := Parse(p, "--42")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(root.Children) != 2 {
		t.Fatalf("expected 2 captures, got %d: %s", len(root.Children), root)
	}
	if got := root.Child("digits").Text; got != "42" {
		t.Errorf("expected digits %q, got %q", "42", got)
	}
	if span := root.Child("digits").Span; span != (Span{Start: 2, End: 4}) {
		t.Errorf("unexpected span %+v", span)
	}
	if want := `( (flag "--") (digits "42"))`; root.String() != want {
		t.Errorf("expected %s, got %s", want, root.String())
	}
}

func TestChoicePriority(t *testing.T) {
	ch := Choice{
		{Name: "long", Parser: Capture("long", Lit("--"))},
		{Name: "short", Parser: Capture("short", Lit("-"))},
	}
	if got := strings.Join(ch.Names(), ","); got != "long,short" {
		t.Errorf("expected branch names long,short, got %s", got)
	}

	root, err := Parse(Seq(ch, Many(Any())), "--x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !root.Has("long") || root.Has("short") {
		t.Errorf("expected the first branch to win, got %s", root)
	}
}

func TestChoiceBacktracks(t *testing.T) {
	p := Alt(
		Seq(Capture("ab", Lit("a")), Lit("b")),
		Seq(Capture("ac", Lit("a")), Lit("c")),
	)
	root, err := Parse(p, "ac")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if root.Has("ab") {
		t.Errorf("captures of a failed branch leaked: %s", root)
	}
	if !root.Has("ac") {
		t.Errorf("expected ac capture, got %s", root)
	}
}

func TestClass(t *testing.T) {
	cases := []struct {
		spec  string
		input string
		ok    bool
	}{
		{"a-z", "q", true},
		{"a-z", "Q", false},
		{"a-zA-Z0-9#", "#", true},
		{"a-z-", "-", true},
		{"-a", "-", true},
		{"_", "-", false},
	}
	for _, tc := range cases {
		_, err := Parse(Class(tc.spec), tc.input)
		if ok := err == nil; ok != tc.ok {
			t.Errorf("Class(%q) on %q: expected ok=%v, got err=%v", tc.spec, tc.input, tc.ok, err)
		}
	}
}

func TestRepetition(t *testing.T) {
	digit := Class("0-9")
	if _, err := Parse(AtLeast(2, digit), "1"); err == nil {
		t.Error("expected AtLeast(2) to reject a single digit")
	}
	if _, err := Parse(AtLeast(2, digit), "123"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	// Repetition of a parser that can match empty input must terminate.
	if _, err := Parse(Seq(Many(Opt(Lit("x"))), Lit("y")), "xxy"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestNot(t *testing.T) {
	p := Seq(Not(Lit("--")), Capture("short", Seq(Lit("-"), Any())))
	if _, err := Parse(p, "-v"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if _, err := Parse(p, "--"); err == nil {
		t.Error("expected negative lookahead to reject --")
	}
}

func TestLazyRecursion(t *testing.T) {
	var group Parser
	group = Lazy(func() Parser {
		return Capture("group", Seq(Lit("("), Many(group), Lit(")")))
	})

	root, err := Parse(group, "(()())")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	outer := root.Child("group")
	if got := len(outer.All("group")); got != 2 {
		t.Errorf("expected 2 nested groups, got %d: %s", got, root)
	}
}

func TestParseErrorReportsFurthestFailure(t *testing.T) {
	p := Seq(Lit("usage: "), Rule("argument", Some(Class("A-Z"))))

	_, err := Parse(p, "usage: foo")
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %T: %v", err, err)
	}
	if perr.Offset != 7 {
		t.Errorf("expected offset 7, got %d", perr.Offset)
	}
	found := false
	for _, e := range perr.Expected {
		if e == "argument" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected %q among %v", "argument", perr.Expected)
	}
	if !strings.Contains(perr.Error(), `unexpected "foo"`) {
		t.Errorf("unexpected message: %s", perr.Error())
	}
}

func TestParseRejectsLeftoverInput(t *testing.T) {
	_, err := Parse(Lit("foo"), "foo bar")
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if perr.Offset != 3 {
		t.Errorf("expected offset 3, got %d", perr.Offset)
	}
}

func TestParseRejectsEmptyMatch(t *testing.T) {
	if _, err := Parse(Opt(Lit("foo")), ""); err == nil {
		t.Error("expected a match that consumes nothing to fail")
	}
}

func TestCheckHelpText(t *testing.T) {
	if err := CheckHelpText(); err != nil {
		t.Fatalf("embedded grammar does not verify: %v", err)
	}
}

func TestCheckEBNFUndefinedProduction(t *testing.T) {
	src := `Start = Missing .`
	if err := CheckEBNF("bad.ebnf", strings.NewReader(src), "Start"); err == nil {
		t.Error("expected an undefined production to be reported")
	}
	if err := CheckEBNF("bad.ebnf", strings.NewReader(src), ""); err != nil {
		t.Errorf("syntax-only check failed: %v", err)
	}
}

func TestTokens(t *testing.T) {
	cases := []struct {
		name  string
		p     Parser
		input string
		ok    bool
	}{
		{"long flag", LongFlag(), "--log-format", true},
		{"long flag underscore", LongFlag(), "--dry_run", true},
		{"long flag too short", LongFlag(), "--x", false},
		{"long flag trailing dash", LongFlag(), "--foo-", false},
		{"short flag", ShortFlag(), "-#", true},
		{"short flag cluster", ShortFlags(), "-xzf", true},
		{"single short is not a cluster", ShortFlags(), "-x", false},
		{"upper name", Name(), "TARGET_NAME", true},
		{"dashed name", Name(), "container-id", true},
		{"name trailing dash", Name(), "file-", false},
		{"name leading digit", Name(), "1st", false},
		{"repeats", Seq(Name(), Repeats()), "FILE ...", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.p, tc.input)
			if ok := err == nil; ok != tc.ok {
				t.Errorf("%q: expected ok=%v, got err=%v", tc.input, tc.ok, err)
			}
		})
	}
}

func TestLitFold(t *testing.T) {
	for _, input := range []string{"usage:", "Usage:", "USAGE:"} {
		if _, err := Parse(LitFold("usage:"), input); err != nil {
			t.Errorf("%q: unexpected error: %v", input, err)
		}
	}
	if _, err := Parse(LitFold("usage:"), "usage"); err == nil {
		t.Error("expected a short input to be rejected")
	}
}
