// internal/markup/node.go
package markup

// Node is a read-only view of one markup element or comment.
// Text is the character data before the first child; Tail is the character
// data after the node's end tag, which belongs to the parent.
type Node interface {
	Tag() string
	Attr(name string) (string, bool)
	Text() string
	Tail() string
	Children() []Node
	IsComment() bool
}

// Element is the Node implementation produced by Parse
type Element struct {
	tag      string
	attrs    map[string]string
	text     string
	tail     string
	children []Node
	comment  bool
}

var _ Node = (*Element)(nil)

// NewElement creates a detached element; used when building trees in code
func NewElement(tag string, attrs map[string]string, text, tail string, children ...Node) *Element {
	if attrs == nil {
		attrs = make(map[string]string)
	}
	return &Element{tag: tag, attrs: attrs, text: text, tail: tail, children: children}
}

// NewComment creates a comment node
func NewComment(text, tail string) *Element {
	return &Element{attrs: map[string]string{}, text: text, tail: tail, comment: true}
}

func (e *Element) Tag() string      { return e.tag }
func (e *Element) Text() string     { return e.text }
func (e *Element) Tail() string     { return e.tail }
func (e *Element) Children() []Node { return e.children }
func (e *Element) IsComment() bool  { return e.comment }

// Attr returns the attribute value and whether it was present
func (e *Element) Attr(name string) (string, bool) {
	v, ok := e.attrs[name]
	return v, ok
}
