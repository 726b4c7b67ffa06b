// internal/driver/escpos/base.go
package escpos

import (
	"fmt"

	"go.uber.org/zap"

	"ticketml-service/internal/encoding"
	"ticketml-service/internal/protocol"
	"ticketml-service/pkg/driver"
)

// DefaultCodepage is the character table both printer families boot with
const DefaultCodepage = "cp437"

// Base implements the operations whose encoding is identical across
// printer families. Family drivers embed it and add their own commands.
type Base struct {
	*LineWriter

	encoder      encoding.Encoder
	codepage     string
	charsPerLine int
	logger       *zap.Logger
}

// NewBase creates the shared backend state around transport
func NewBase(transport protocol.Transport, enc encoding.Encoder, charsPerLine int, logger *zap.Logger) *Base {
	if enc == nil {
		enc = encoding.NewCharmapEncoder()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Base{
		LineWriter:   NewLineWriter(transport),
		encoder:      enc,
		codepage:     DefaultCodepage,
		charsPerLine: charsPerLine,
		logger:       logger,
	}
}

// Logger returns the backend logger
func (b *Base) Logger() *zap.Logger {
	return b.logger
}

// SetAlignment queues the alignment command for the next line start
func (b *Base) SetAlignment(alignment driver.Alignment) error {
	var n byte
	switch alignment {
	case driver.AlignLeft:
		n = 0
	case driver.AlignCenter:
		n = 1
	case driver.AlignRight:
		n = 2
	default:
		return fmt.Errorf("alignment %q: %w", alignment, driver.ErrUnsupported)
	}
	return b.WriteAtLinebreak(Command(ESC_POS_COMMANDS.SELECT_ALIGNMENT, n))
}

// SetFontSize selects the character scale, 1..8 in each direction
func (b *Base) SetFontSize(width, height int) error {
	if err := driver.CheckRange("font width", width, driver.MinFontScale, driver.MaxFontScale); err != nil {
		return err
	}
	if err := driver.CheckRange("font height", height, driver.MinFontScale, driver.MaxFontScale); err != nil {
		return err
	}
	size := byte((width-1)<<4 | (height - 1))
	return b.WriteImmediately(Command(ESC_POS_COMMANDS.SELECT_FONT_SIZE, size))
}

// PrintText encodes the whole text before writing so an unmappable
// character leaves the stream untouched.
func (b *Base) PrintText(text string) error {
	if text == "" {
		return nil
	}
	data, err := b.encoder.Encode(text, b.codepage)
	if err != nil {
		return err
	}
	return b.WriteImmediately(data)
}

// Linebreak ends the current line
func (b *Base) Linebreak() error {
	return b.WriteImmediately(ESC_POS_COMMANDS.LINE_FEED)
}

// GetCharactersPerLine returns how many characters of the given width fit on a line
func (b *Base) GetCharactersPerLine(fontWidth int) int {
	if fontWidth < 1 {
		return b.charsPerLine
	}
	return b.charsPerLine / fontWidth
}

// EncodePayload encodes barcode data with the backend codepage
func (b *Base) EncodePayload(data string) ([]byte, error) {
	return b.encoder.Encode(data, b.codepage)
}

// BarcodeSetup validates the shared barcode parameters and returns the
// HRI position and module height commands.
func (b *Base) BarcodeSetup(spec driver.BarcodeSpec) ([]byte, error) {
	hri, err := HRIByte(spec.HRIPosition)
	if err != nil {
		return nil, err
	}
	if err := driver.CheckRange("barcode height", spec.Height, driver.MinBarcodeHeight, driver.MaxBarcodeHeight); err != nil {
		return nil, err
	}

	setup := Command(ESC_POS_COMMANDS.BARCODE_HRI_POSITION, hri)
	setup = append(setup, ESC_POS_COMMANDS.BARCODE_HEIGHT...)
	return append(setup, byte(spec.Height)), nil
}

// HRIByte maps a label position to its parameter byte
func HRIByte(position driver.HRIPosition) (byte, error) {
	switch position {
	case driver.HRINone:
		return 0, nil
	case driver.HRIAbove:
		return 1, nil
	case driver.HRIBelow:
		return 2, nil
	case driver.HRIBoth:
		return 3, nil
	}
	return 0, fmt.Errorf("hri position %q: %w", position, driver.ErrUnsupported)
}

// CheckLogo validates a stored logo number
func CheckLogo(num int) error {
	return driver.CheckRange("logo number", num, 0, driver.MaxLogoNumber)
}

// Flush pushes transport buffers to the device
func (b *Base) Flush() error {
	return b.LineWriter.Flush()
}
