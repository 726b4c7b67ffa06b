package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTextAndTail(t *testing.T) {
	doc, err := ParseString(`<ticket>head<b>bold</b>middle<br/>end</ticket>`)
	require.NoError(t, err)

	assert.Equal(t, "ticket", doc.Tag())
	assert.Equal(t, "head", doc.Text())
	assert.Equal(t, "", doc.Tail())

	children := doc.Children()
	require.Len(t, children, 2)
	assert.Equal(t, "b", children[0].Tag())
	assert.Equal(t, "bold", children[0].Text())
	assert.Equal(t, "middle", children[0].Tail())
	assert.Equal(t, "br", children[1].Tag())
	assert.Equal(t, "", children[1].Text())
	assert.Equal(t, "end", children[1].Tail())
}

func TestParseAttributes(t *testing.T) {
	doc, err := ParseString(`<barcode type="EAN13" height="">1</barcode>`)
	require.NoError(t, err)

	value, ok := doc.Attr("type")
	assert.True(t, ok)
	assert.Equal(t, "EAN13", value)

	value, ok = doc.Attr("height")
	assert.True(t, ok)
	assert.Equal(t, "", value)

	_, ok = doc.Attr("hriposition")
	assert.False(t, ok)
}

func TestParseComments(t *testing.T) {
	doc, err := ParseString(`<ticket>a<!-- note -->b<b>c</b></ticket>`)
	require.NoError(t, err)

	children := doc.Children()
	require.Len(t, children, 2)
	assert.True(t, children[0].IsComment())
	assert.Equal(t, " note ", children[0].Text())
	assert.Equal(t, "b", children[0].Tail())
	assert.False(t, children[1].IsComment())
	assert.Equal(t, "a", doc.Text())
}

func TestParseEntities(t *testing.T) {
	doc, err := ParseString(`<ticket>Fish &amp; Chips &lt;3</ticket>`)
	require.NoError(t, err)
	assert.Equal(t, "Fish & Chips <3", doc.Text())
}

func TestParseErrors(t *testing.T) {
	_, err := ParseString(`<ticket attr=1/>`)
	var syntaxErr *SyntaxError
	assert.ErrorAs(t, err, &syntaxErr)

	_, err = ParseString(``)
	assert.ErrorIs(t, err, ErrNoRoot)
}

func TestStripIndentation(t *testing.T) {
	in := []byte("<ticket>\n    <b>Hello</b>\n\t  World\n</ticket>")
	assert.Equal(t, "<ticket><b>Hello</b>World</ticket>", string(StripIndentation(in)))

	// trailing spaces on a line are kept
	assert.Equal(t, "a b", string(StripIndentation([]byte("a \n  b"))))
}

func TestNewElement(t *testing.T) {
	child := NewElement("b", nil, "x", "y")
	root := NewElement("ticket", map[string]string{"id": "1"}, "t", "", child, NewComment("c", ""))

	assert.Len(t, root.Children(), 2)
	id, ok := root.Attr("id")
	assert.True(t, ok)
	assert.Equal(t, "1", id)
	_, ok = child.Attr("id")
	assert.False(t, ok)
	assert.True(t, root.Children()[1].IsComment())
}
