// internal/render/handlers.go
package render

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"ticketml-service/internal/markup"
	"ticketml-service/pkg/driver"
)

type tag int

const (
	tagUnknown tag = iota
	tagTicket
	tagB
	tagU
	tagFont
	tagAlign
	tagBr
	tagLogo
	tagBarcode
	tagSensibreak
	tagCount
)

var tagNames = map[string]tag{
	"ticket":     tagTicket,
	"b":          tagB,
	"u":          tagU,
	"font":       tagFont,
	"align":      tagAlign,
	"br":         tagBr,
	"logo":       tagLogo,
	"barcode":    tagBarcode,
	"sensibreak": tagSensibreak,
}

func lookupTag(name string) tag {
	if t, ok := tagNames[name]; ok {
		return t
	}
	return tagUnknown
}

// printsText reports whether the element's leading text is printed on enter.
// barcode and sensibreak consume their text themselves.
func (t tag) printsText() bool {
	return t != tagBarcode && t != tagSensibreak
}

type handler func(in *Interpreter, ev event, node markup.Node) error

// Unknown tags have no handler and are transparent.
var handlers = [tagCount]handler{
	tagTicket:     handleTicket,
	tagB:          handleB,
	tagU:          handleU,
	tagFont:       handleFont,
	tagAlign:      handleAlign,
	tagBr:         handleBr,
	tagLogo:       handleLogo,
	tagBarcode:    handleBarcode,
	tagSensibreak: handleSensibreak,
}

// Barcode attribute defaults
const (
	defaultBarcodeType   = "CODE93"
	defaultHRIPosition   = "below"
	defaultBarcodeHeight = 12
)

func handleB(in *Interpreter, ev event, node markup.Node) error {
	if ev == enter {
		return in.backend.SetEmphasis(in.stack.Push(WithEmphasis(true)).Emphasis)
	}
	return in.backend.SetEmphasis(in.stack.Pop().Emphasis)
}

func handleU(in *Interpreter, ev event, node markup.Node) error {
	if ev == enter {
		return in.backend.SetUnderline(in.stack.Push(WithUnderline(true)).Underline)
	}
	return in.backend.SetUnderline(in.stack.Pop().Underline)
}

func handleFont(in *Interpreter, ev event, node markup.Node) error {
	var frame Frame
	if ev == enter {
		var overrides []Override
		if w, ok, err := intAttr(node, "width"); err != nil {
			return err
		} else if ok {
			overrides = append(overrides, WithFontWidth(w))
		}
		if h, ok, err := intAttr(node, "height"); err != nil {
			return err
		} else if ok {
			overrides = append(overrides, WithFontHeight(h))
		}
		frame = in.stack.Push(overrides...)
	} else {
		frame = in.stack.Pop()
	}
	return in.backend.SetFontSize(frame.FontWidth, frame.FontHeight)
}

func handleAlign(in *Interpreter, ev event, node markup.Node) error {
	if ev == exit {
		return in.backend.SetAlignment(in.stack.Pop().Alignment)
	}

	mode, ok := node.Attr("mode")
	if !ok {
		return missingAttr(node.Tag(), "mode")
	}
	alignment, err := driver.ParseAlignment(mode)
	if err != nil {
		return invalidAttr(node.Tag(), "mode", mode, nil)
	}
	return in.backend.SetAlignment(in.stack.Push(WithAlignment(alignment)).Alignment)
}

func handleBr(in *Interpreter, ev event, node markup.Node) error {
	if ev != exit {
		return nil
	}
	return in.backend.Linebreak()
}

func handleTicket(in *Interpreter, ev event, node markup.Node) error {
	if ev != exit {
		return nil
	}
	return in.backend.FeedAndCut()
}

func handleLogo(in *Interpreter, ev event, node markup.Node) error {
	if ev != exit {
		return nil
	}

	num, ok, err := intAttr(node, "num")
	if err != nil {
		return err
	}
	if !ok {
		return missingAttr(node.Tag(), "num")
	}
	if num < 0 {
		value, _ := node.Attr("num")
		return &MarkupError{Tag: node.Tag(), Attr: "num", Value: value, Reason: "must not be negative"}
	}
	return in.backend.PrintLogo(num)
}

func handleBarcode(in *Interpreter, ev event, node markup.Node) error {
	if ev != exit {
		return nil
	}

	typeName := attrOr(node, "type", defaultBarcodeType)
	barcodeType, err := driver.ParseBarcodeType(typeName)
	if err != nil {
		return invalidAttr(node.Tag(), "type", typeName, nil)
	}

	position := attrOr(node, "hriposition", defaultHRIPosition)
	hri, err := driver.ParseHRIPosition(position)
	if err != nil {
		return invalidAttr(node.Tag(), "hriposition", position, nil)
	}

	height := defaultBarcodeHeight
	if value, ok := node.Attr("height"); ok {
		if height, err = parseInt(value); err != nil {
			return invalidAttr(node.Tag(), "height", value, err)
		}
	}

	return in.backend.PrintBarcode(driver.BarcodeSpec{
		Type:        barcodeType,
		HRIPosition: hri,
		Height:      height,
		Data:        strings.TrimSpace(node.Text()),
	})
}

func handleSensibreak(in *Interpreter, ev event, node markup.Node) error {
	if ev != exit {
		return nil
	}

	text := normalize(node.Text())
	budget := in.backend.GetCharactersPerLine(in.stack.Top().FontWidth)
	if utf8.RuneCountInString(text) <= budget {
		return in.printText(text)
	}

	in.stats.TextCalls++
	return in.backend.PrintText(WrapLines(text, budget))
}

// attrOr returns the attribute value, or def when the attribute is absent
func attrOr(node markup.Node, name, def string) string {
	if value, ok := node.Attr(name); ok {
		return value
	}
	return def
}

// intAttr parses an optional integer attribute; empty values count as absent
func intAttr(node markup.Node, name string) (int, bool, error) {
	value, ok := node.Attr(name)
	if !ok || value == "" {
		return 0, false, nil
	}
	n, err := parseInt(value)
	if err != nil {
		return 0, false, invalidAttr(node.Tag(), name, value, err)
	}
	return n, true, nil
}

func parseInt(value string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(value))
}
