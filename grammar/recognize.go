package grammar

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/exp/ebnf"
)

// Recognizer decides whether an input matches a production of an EBNF
// grammar. Whitespace is never skipped: every space a line may contain is
// spelled out in the grammar. Unlike the combinators it explores every
// alternative, so it accepts whatever the grammar admits, ambiguities
// included.
type Recognizer struct {
	grammar ebnf.Grammar
}

type memoKey struct {
	name   string
	offset int
}

type recognition struct {
	grammar  ebnf.Grammar
	input    string
	memo     map[memoKey][]int
	visiting map[memoKey]bool
}

// NewRecognizer returns a Recognizer for g.
func NewRecognizer(g ebnf.Grammar) *Recognizer {
	return &Recognizer{grammar: g}
}

// HelpTextRecognizer returns a Recognizer for the embedded reference
// grammar.
func HelpTextRecognizer() (*Recognizer, error) {
	g, err := ParseEBNF("helptext.ebnf", strings.NewReader(string(HelpTextEBNF)))
	if err != nil {
		return nil, err
	}
	return NewRecognizer(g), nil
}

// Recognize reports whether the whole input matches production.
func (r *Recognizer) Recognize(production, input string) (bool, error) {
	prod, ok := r.grammar[production]
	if !ok || prod.Expr == nil {
		return false, fmt.Errorf("undefined production %q", production)
	}
	rec := &recognition{
		grammar:  r.grammar,
		input:    input,
		memo:     make(map[memoKey][]int),
		visiting: make(map[memoKey]bool),
	}
	ends := rec.matchName(production, 0)
	return slices.Contains(ends, len(input)), nil
}

// match returns every offset at which expr can end when it starts at
// offset, in increasing order.
func (r *recognition) match(expr ebnf.Expression, offset int) []int {
	switch e := expr.(type) {
	case nil:
		return []int{offset}

	case *ebnf.Token:
		if strings.HasPrefix(r.input[offset:], e.String) {
			return []int{offset + len(e.String)}
		}
		return nil

	case *ebnf.Range:
		if offset >= len(r.input) || len(e.Begin.String) != 1 || len(e.End.String) != 1 {
			return nil
		}
		ch := r.input[offset]
		if ch >= e.Begin.String[0] && ch <= e.End.String[0] {
			return []int{offset + 1}
		}
		return nil

	case ebnf.Sequence:
		ends := []int{offset}
		for _, item := range e {
			var next []int
			for _, end := range ends {
				next = union(next, r.match(item, end))
			}
			if len(next) == 0 {
				return nil
			}
			ends = next
		}
		return ends

	case ebnf.Alternative:
		var ends []int
		for _, alt := range e {
			ends = union(ends, r.match(alt, offset))
		}
		return ends

	case *ebnf.Repetition:
		ends := []int{offset}
		frontier := []int{offset}
		for len(frontier) > 0 {
			var next []int
			for _, start := range frontier {
				for _, end := range r.match(e.Body, start) {
					if !slices.Contains(ends, end) {
						next = union(next, []int{end})
					}
				}
			}
			ends = union(ends, next)
			frontier = next
		}
		return ends

	case *ebnf.Option:
		return union([]int{offset}, r.match(e.Body, offset))

	case *ebnf.Group:
		return r.match(e.Body, offset)

	case *ebnf.Name:
		return r.matchName(e.String, offset)
	}
	return nil
}

// matchName matches a production with memoization. A production reached
// again at the same offset while it is being matched is left recursion and
// fails.
func (r *recognition) matchName(name string, offset int) []int {
	key := memoKey{name: name, offset: offset}
	if ends, ok := r.memo[key]; ok {
		return ends
	}
	if r.visiting[key] {
		return nil
	}
	prod, ok := r.grammar[name]
	if !ok || prod.Expr == nil {
		r.memo[key] = nil
		return nil
	}

	r.visiting[key] = true
	ends := r.match(prod.Expr, offset)
	delete(r.visiting, key)

	r.memo[key] = ends
	return ends
}

// union merges two sorted, duplicate-free offset lists.
func union(a, b []int) []int {
	out := make([]int, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			out = append(out, a[i])
			i++
		case a[i] > b[j]:
			out = append(out, b[j])
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	out = append(out, a[i:]...)
	return append(out, b[j:]...)
}
