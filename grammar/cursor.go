// Package grammar provides backtracking parser combinators over a line of
// text. Parsers never mutate their input: a Cursor is a value, and a failed
// match leaves the caller's cursor where it was.
package grammar

import "fmt"

// source is shared by every cursor derived from the same input. It records
// the furthest failure so a top-level parse can report where it got stuck.
type source struct {
	input    string
	furthest int
	expected []string
}

func (s *source) fail(offset int, what string) {
	if what == "" {
		return
	}
	switch {
	case offset > s.furthest:
		s.furthest = offset
		s.expected = []string{what}
	case offset == s.furthest:
		for _, e := range s.expected {
			if e == what {
				return
			}
		}
		s.expected = append(s.expected, what)
	}
}

// Cursor is an immutable position within an input string.
type Cursor struct {
	src *source
	pos int
}

// NewCursor returns a cursor at the start of input.
func NewCursor(input string) Cursor {
	return Cursor{src: &source{input: input}}
}

// Offset returns the byte offset of the cursor.
func (c Cursor) Offset() int {
	return c.pos
}

// EOF reports whether the cursor is at the end of input.
func (c Cursor) EOF() bool {
	return c.pos >= len(c.src.input)
}

// Peek returns the byte under the cursor, or 0 at end of input.
func (c Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.src.input[c.pos]
}

// Rest returns the unconsumed input.
func (c Cursor) Rest() string {
	return c.src.input[c.pos:]
}

// Advance returns a cursor n bytes further along.
func (c Cursor) Advance(n int) Cursor {
	pos := c.pos + n
	if pos > len(c.src.input) {
		pos = len(c.src.input)
	}
	return Cursor{src: c.src, pos: pos}
}

// Slice returns the input between c and end.
func (c Cursor) Slice(end Cursor) string {
	return c.src.input[c.pos:end.pos]
}

// Fail records that what was expected at the cursor. It is used by custom
// parsers to take part in error reporting.
func (c Cursor) Fail(what string) {
	c.src.fail(c.pos, what)
}

func (c Cursor) String() string {
	return fmt.Sprintf("%d:%q", c.pos, c.Rest())
}
