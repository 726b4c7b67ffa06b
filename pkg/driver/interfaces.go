// pkg/driver/interfaces.go
package driver

// Backend translates formatting and text operations into one printer
// protocol's byte sequences. A Backend owns its transport and deferred
// command state and must serve a single render at a time.
type Backend interface {
	// Text attributes
	SetAlignment(alignment Alignment) error
	SetEmphasis(on bool) error
	SetDoubleHeight(on bool) error
	SetDoubleWidth(on bool) error
	SetUnderline(on bool) error
	SetFontSize(width, height int) error

	// Content
	PrintText(text string) error
	PrintLogo(num int) error
	PrintBarcode(spec BarcodeSpec) error

	// Paper handling
	Linebreak() error
	FeedAndCut() error

	// Layout information
	GetCharactersPerLine(fontWidth int) int
}

// Flusher is implemented by backends that can push buffered transport data to the device
type Flusher interface {
	Flush() error
}
