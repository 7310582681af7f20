package format

import (
	"encoding/json"
	"errors"
	"io"

	g "github.com/dhamidi/clispec/grammar"
)

// NodeJSONEncoder writes a grammar capture tree, or the parse error that
// prevented one, as JSON.
type NodeJSONEncoder struct {
	w io.Writer
}

func NewNodeJSONEncoder(w io.Writer) *NodeJSONEncoder {
	return &NodeJSONEncoder{w: w}
}

// Encode writes the tree when err is nil. Otherwise it writes err, with
// its offset and expectations when it is a *grammar.ParseError.
func (e *NodeJSONEncoder) Encode(node *g.Node, err error) error {
	text, merr := e.MarshalText(node, err)
	if merr != nil {
		return merr
	}
	_, werr := e.w.Write(text)
	return werr
}

func (e *NodeJSONEncoder) MarshalText(node *g.Node, err error) ([]byte, error) {
	var data any
	if err != nil {
		data = struct {
			Error *nodeJSONError `json:"error"`
		}{errorToJSON(err)}
	} else {
		data = nodeToJSON(node)
	}
	text, merr := json.MarshalIndent(data, "", "  ")
	if merr != nil {
		return nil, merr
	}
	return append(text, '\n'), nil
}

type nodeJSON struct {
	Name     string       `json:"name,omitempty"`
	Text     string       `json:"text"`
	Span     nodeJSONSpan `json:"span"`
	Children []*nodeJSON  `json:"children,omitempty"`
}

type nodeJSONSpan struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

type nodeJSONError struct {
	Message  string   `json:"message"`
	Offset   *int     `json:"offset,omitempty"`
	Expected []string `json:"expected,omitempty"`
	Got      string   `json:"got,omitempty"`
}

func errorToJSON(err error) *nodeJSONError {
	je := &nodeJSONError{Message: err.Error()}
	var perr *g.ParseError
	if errors.As(err, &perr) {
		offset := perr.Offset
		je.Offset = &offset
		je.Expected = perr.Expected
		if perr.Offset < len(perr.Input) {
			je.Got = perr.Input[perr.Offset:]
		}
	}
	return je
}

func nodeToJSON(n *g.Node) *nodeJSON {
	jn := &nodeJSON{
		Name: n.Name,
		Text: n.Text,
		Span: nodeJSONSpan{Start: n.Span.Start, End: n.Span.End},
	}
	if len(n.Children) > 0 {
		jn.Children = make([]*nodeJSON, len(n.Children))
		for i, child := range n.Children {
			jn.Children[i] = nodeToJSON(child)
		}
	}
	return jn
}
