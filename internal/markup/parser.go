// internal/markup/parser.go
package markup

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/beevik/etree"
)

// ErrNoRoot is returned for documents without a root element
var ErrNoRoot = errors.New("markup has no root element")

// SyntaxError reports markup that is not well-formed XML
type SyntaxError struct {
	Err error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("failed to parse markup: %v", e.Err)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// Parse parses a TicketML document and returns its root element
func Parse(data []byte) (Node, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, &SyntaxError{Err: err}
	}

	root := doc.Root()
	if root == nil {
		return nil, ErrNoRoot
	}

	return convert(root), nil
}

// ParseString parses a TicketML document held in a string
func ParseString(s string) (Node, error) {
	return Parse([]byte(s))
}

// convert copies an etree element into an Element, distributing character
// data between the element text and the tails of its children.
// Processing instructions and directives are dropped; character data on
// either side of them is joined.
func convert(el *etree.Element) *Element {
	node := &Element{
		tag:   el.Tag,
		attrs: make(map[string]string, len(el.Attr)),
	}
	for _, attr := range el.Attr {
		if attr.Space != "" && attr.Space != "xmlns" {
			node.attrs[attr.Space+":"+attr.Key] = attr.Value
			continue
		}
		node.attrs[attr.Key] = attr.Value
	}
	if el.Space != "" {
		node.tag = el.Space + ":" + el.Tag
	}

	var text strings.Builder
	var last *Element
	for _, token := range el.Child {
		switch t := token.(type) {
		case *etree.CharData:
			if last == nil {
				text.WriteString(t.Data)
			} else {
				last.tail += t.Data
			}
		case *etree.Element:
			child := convert(t)
			node.children = append(node.children, child)
			last = child
		case *etree.Comment:
			child := NewComment(t.Data, "")
			node.children = append(node.children, child)
			last = child
		}
	}
	node.text = text.String()
	return node
}

// StripIndentation left-trims every source line and joins the lines without
// separators, so template indentation and line structure never reach the printer.
func StripIndentation(data []byte) []byte {
	lines := bytes.Split(data, []byte("\n"))
	out := make([]byte, 0, len(data))
	for _, line := range lines {
		out = append(out, bytes.TrimLeftFunc(line, unicode.IsSpace)...)
	}
	return out
}
