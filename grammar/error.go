package grammar

import (
	"fmt"
	"strings"
)

// ParseError reports a line the grammar could not consume completely.
type ParseError struct {
	Input    string
	Offset   int
	Expected []string
}

func (e *ParseError) Error() string {
	var found string
	if e.Offset >= len(e.Input) {
		found = "end of input"
	} else {
		rest := e.Input[e.Offset:]
		if len(rest) > 16 {
			rest = rest[:16] + "..."
		}
		found = fmt.Sprintf("%q", rest)
	}
	if len(e.Expected) == 0 {
		return fmt.Sprintf("parse error at offset %d: unexpected %s", e.Offset, found)
	}
	return fmt.Sprintf("parse error at offset %d: unexpected %s, expected %s",
		e.Offset, found, strings.Join(e.Expected, " or "))
}
