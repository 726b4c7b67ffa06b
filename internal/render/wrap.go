// internal/render/wrap.go
package render

import "strings"

// Wrap splits text into blocks of at most width runes.
// An over-long block breaks at the last space within its first width runes,
// dropping that space; without one it breaks at exactly width runes and
// keeps every character. Blocks are never merged or reordered.
func Wrap(text string, width int) []string {
	runes := []rune(text)
	if width < 1 || len(runes) <= width {
		return []string{text}
	}

	var blocks []string
	for len(runes) > width {
		cut := lastSpace(runes[:width])
		if cut < 0 {
			blocks = append(blocks, string(runes[:width]))
			runes = runes[width:]
			continue
		}
		blocks = append(blocks, string(runes[:cut]))
		runes = runes[cut+1:]
	}
	return append(blocks, string(runes))
}

// WrapLines joins the wrapped blocks with newlines
func WrapLines(text string, width int) string {
	return strings.Join(Wrap(text, width), "\n")
}

func lastSpace(runes []rune) int {
	for i := len(runes) - 1; i >= 0; i-- {
		if runes[i] == ' ' {
			return i
		}
	}
	return -1
}
