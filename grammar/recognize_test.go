package grammar

import (
	"strings"
	"testing"
)

func recognizer(t *testing.T, src string) *Recognizer {
	t.Helper()
	g, err := ParseEBNF("test.ebnf", strings.NewReader(src))
	if err != nil {
		t.Fatalf("failed to parse grammar: %v", err)
	}
	return NewRecognizer(g)
}

func TestRecognize(t *testing.T) {
	r := recognizer(t, `
S = A "b" [ "!" ] .
A = "a" | "a" "a" | digit { digit } .
digit = "0" … "9" .
`)
	cases := []struct {
		input string
		want  bool
	}{
		{"ab", true},
		{"aab", true},
		{"aab!", true},
		{"123b", true},
		{"aaab", false},
		{"b", false},
		{"ab!!", false},
		{"", false},
	}
	for _, tc := range cases {
		got, err := r.Recognize("S", tc.input)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", tc.input, err)
		}
		if got != tc.want {
			t.Errorf("%q: expected %v, got %v", tc.input, tc.want, got)
		}
	}
}

func TestRecognizeLeftRecursion(t *testing.T) {
	r := recognizer(t, `S = S "a" | "a" .`)
	ok, err := r.Recognize("S", "a")
	if err != nil || !ok {
		t.Errorf("expected the non-recursive alternative to match, got %v, %v", ok, err)
	}
}

func TestRecognizeUndefinedProduction(t *testing.T) {
	r := recognizer(t, `S = "a" .`)
	if _, err := r.Recognize("T", "a"); err == nil {
		t.Error("expected an error for an undefined production")
	}
}

func TestHelpTextRecognizer(t *testing.T) {
	r, err := HelpTextRecognizer()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cases := []struct {
		production string
		input      string
		want       bool
	}{
		{"UsageLine", "yes [STRING]...", true},
		{"UsageLine", "runc [global options] command [command options] [arguments...]", true},
		{"UsageLine", "docker ps <container id>", true},
		{"UsageLine", "foo ARG1 (ARG2)", false},
		{"OptionLine", "  -a, --all                 show all", true},
		{"OptionLine", "      --color[=WHEN]      colorize", true},
		{"OptionLine", "show all", false},
		{"SubcommandLine", "   checkpoint  checkpoint a running container", true},
		{"SubcommandLine", "   help, h     Shows a list of commands", true},
		{"HelpText", "   help, h     Shows a list of commands", true},
		{"HelpText", "output 'y' forever", false},
	}
	for _, tc := range cases {
		got, err := r.Recognize(tc.production, tc.input)
		if err != nil {
			t.Fatalf("%s %q: unexpected error: %v", tc.production, tc.input, err)
		}
		if got != tc.want {
			t.Errorf("%s %q: expected %v, got %v", tc.production, tc.input, tc.want, got)
		}
	}
}
