package grammar

import (
	"strings"
	"sync"
)

// Result is the outcome of a successful match: where matching stopped and
// the captures it produced.
type Result struct {
	Next  Cursor
	Nodes []*Node
}

// Parser matches a prefix of the input at a cursor. On failure it returns
// false and the caller continues from its own, unchanged cursor.
type Parser interface {
	Match(c Cursor) (Result, bool)
}

// Func adapts a function to the Parser interface.
type Func func(c Cursor) (Result, bool)

// Match calls f.
func (f Func) Match(c Cursor) (Result, bool) {
	return f(c)
}

// Lit matches the literal string s.
func Lit(s string) Parser {
	return Func(func(c Cursor) (Result, bool) {
		if strings.HasPrefix(c.Rest(), s) {
			return Result{Next: c.Advance(len(s))}, true
		}
		c.Fail(quote(s))
		return Result{}, false
	})
}

// LitFold matches s, ignoring ASCII case.
func LitFold(s string) Parser {
	return Func(func(c Cursor) (Result, bool) {
		rest := c.Rest()
		if len(rest) >= len(s) && strings.EqualFold(rest[:len(s)], s) {
			return Result{Next: c.Advance(len(s))}, true
		}
		c.Fail(quote(s))
		return Result{}, false
	})
}

// Class matches one byte from a character class written the way regular
// expressions write bracket contents, e.g. "a-zA-Z0-9_#". A '-' that is first
// or last in spec is literal.
func Class(spec string) Parser {
	var set [256]bool
	for i := 0; i < len(spec); i++ {
		if i+2 < len(spec) && spec[i+1] == '-' {
			for ch := int(spec[i]); ch <= int(spec[i+2]); ch++ {
				set[ch] = true
			}
			i += 2
			continue
		}
		set[spec[i]] = true
	}
	name := "[" + spec + "]"
	return Func(func(c Cursor) (Result, bool) {
		if !c.EOF() && set[c.Peek()] {
			return Result{Next: c.Advance(1)}, true
		}
		c.Fail(name)
		return Result{}, false
	})
}

// Any matches any single byte.
func Any() Parser {
	return Func(func(c Cursor) (Result, bool) {
		if c.EOF() {
			c.Fail("any character")
			return Result{}, false
		}
		return Result{Next: c.Advance(1)}, true
	})
}

// End matches only at the end of input.
func End() Parser {
	return Func(func(c Cursor) (Result, bool) {
		if c.EOF() {
			return Result{Next: c}, true
		}
		c.Fail("end of input")
		return Result{}, false
	})
}

// Seq matches each parser in turn, stopping at the first failure.
func Seq(ps ...Parser) Parser {
	return Func(func(c Cursor) (Result, bool) {
		res := Result{Next: c}
		for _, p := range ps {
			r, ok := p.Match(res.Next)
			if !ok {
				return Result{}, false
			}
			res.Next = r.Next
			res.Nodes = append(res.Nodes, r.Nodes...)
		}
		return res, true
	})
}

// Branch is one named alternative of a Choice.
type Branch struct {
	Name   string
	Parser Parser
}

// Choice is an ordered choice: branches are tried in order and the first one
// that matches wins. The order is the priority, so it is kept as data that
// callers can inspect.
type Choice []Branch

// Alt builds a Choice of unnamed branches.
func Alt(ps ...Parser) Choice {
	c := make(Choice, len(ps))
	for i, p := range ps {
		c[i] = Branch{Parser: p}
	}
	return c
}

// Match tries each branch in order.
func (ch Choice) Match(c Cursor) (Result, bool) {
	for _, b := range ch {
		if r, ok := b.Parser.Match(c); ok {
			return r, true
		}
	}
	return Result{}, false
}

// Names returns the branch names in priority order.
func (ch Choice) Names() []string {
	names := make([]string, len(ch))
	for i, b := range ch {
		names[i] = b.Name
	}
	return names
}

// Opt matches p or nothing.
func Opt(p Parser) Parser {
	return Func(func(c Cursor) (Result, bool) {
		if r, ok := p.Match(c); ok {
			return r, true
		}
		return Result{Next: c}, true
	})
}

// Many matches p zero or more times.
func Many(p Parser) Parser {
	return AtLeast(0, p)
}

// Some matches p one or more times.
func Some(p Parser) Parser {
	return AtLeast(1, p)
}

// AtLeast matches p greedily, requiring at least n matches. Repetition stops
// at the first failure or at a match that consumes nothing.
func AtLeast(n int, p Parser) Parser {
	return Func(func(c Cursor) (Result, bool) {
		res := Result{Next: c}
		count := 0
		for {
			r, ok := p.Match(res.Next)
			if !ok || r.Next.pos == res.Next.pos {
				break
			}
			res.Next = r.Next
			res.Nodes = append(res.Nodes, r.Nodes...)
			count++
		}
		if count < n {
			return Result{}, false
		}
		return res, true
	})
}

// Not succeeds, consuming nothing, when p does not match.
func Not(p Parser) Parser {
	return Func(func(c Cursor) (Result, bool) {
		if _, ok := p.Match(c); ok {
			return Result{}, false
		}
		return Result{Next: c}, true
	})
}

// And succeeds, consuming nothing, when p matches.
func And(p Parser) Parser {
	return Func(func(c Cursor) (Result, bool) {
		if _, ok := p.Match(c); !ok {
			return Result{}, false
		}
		return Result{Next: c}, true
	})
}

// Capture wraps the match of p in a node called name. The node's text is
// the matched input and its children are the captures p produced.
func Capture(name string, p Parser) Parser {
	return Func(func(c Cursor) (Result, bool) {
		r, ok := p.Match(c)
		if !ok {
			return Result{}, false
		}
		n := &Node{
			Name:     name,
			Text:     c.Slice(r.Next),
			Span:     Span{Start: c.pos, End: r.Next.pos},
			Children: r.Nodes,
		}
		return Result{Next: r.Next, Nodes: []*Node{n}}, true
	})
}

// Rule names p for error reporting: when p fails, name is what the parse
// error says was expected at the starting position.
func Rule(name string, p Parser) Parser {
	return Func(func(c Cursor) (Result, bool) {
		r, ok := p.Match(c)
		if !ok {
			c.Fail(name)
		}
		return r, ok
	})
}

// Lazy defers building a parser until first use, which allows recursive
// grammars.
func Lazy(build func() Parser) Parser {
	var (
		once sync.Once
		p    Parser
	)
	return Func(func(c Cursor) (Result, bool) {
		once.Do(func() { p = build() })
		return p.Match(c)
	})
}

// Parse matches p against the whole input. The returned node spans the
// input and holds p's captures. A match that consumes nothing or leaves
// input behind is a *ParseError.
func Parse(p Parser, input string) (*Node, error) {
	c := NewCursor(input)
	r, ok := p.Match(c)
	if ok && r.Next.pos > 0 && r.Next.EOF() {
		return &Node{
			Text:     input,
			Span:     Span{End: len(input)},
			Children: r.Nodes,
		}, nil
	}
	if ok && r.Next.pos > 0 {
		r.Next.Fail("end of input")
	}
	return nil, &ParseError{
		Input:    input,
		Offset:   c.src.furthest,
		Expected: c.src.expected,
	}
}
