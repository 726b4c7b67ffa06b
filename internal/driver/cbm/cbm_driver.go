// internal/driver/cbm/cbm_driver.go
package cbm

import (
	"fmt"

	"go.uber.org/zap"

	"ticketml-service/internal/driver/escpos"
	"ticketml-service/internal/encoding"
	"ticketml-service/internal/protocol"
	"ticketml-service/pkg/driver"
)

// Name is the registry name of this backend
const Name = "cbm"

// CharactersPerLine is the line width at font scale 1
const CharactersPerLine = 48

// Driver renders ticket operations for CBM/Citizen printers.
// Emphasis, double height, double width and underline share one printing
// mode register which is only rewritten at the start of a line.
type Driver struct {
	*escpos.Base
	mode byte
}

var _ driver.Backend = (*Driver)(nil)

// New creates a CBM backend and writes its initial state to transport
func New(transport protocol.Transport, enc encoding.Encoder, logger *zap.Logger) (*Driver, error) {
	d := &Driver{
		Base: escpos.NewBase(transport, enc, CharactersPerLine, logger),
	}

	if err := d.setPrintingMode(0); err != nil {
		return nil, fmt.Errorf("failed to initialize %s backend: %w", Name, err)
	}
	if err := d.SetAlignment(driver.AlignLeft); err != nil {
		return nil, fmt.Errorf("failed to initialize %s backend: %w", Name, err)
	}

	d.Logger().Debug("Backend initialized", zap.String("backend", Name))
	return d, nil
}

// Mode returns the current printing mode register
func (d *Driver) Mode() byte {
	return d.mode
}

func (d *Driver) setPrintingMode(mode byte) error {
	d.mode = mode
	return d.WriteAtLinebreak(escpos.Command(CBM_COMMANDS.SELECT_PRINT_MODE, mode))
}

func (d *Driver) setModeBit(bit uint, on bool) error {
	mode := d.mode &^ (1 << bit)
	if on {
		mode |= 1 << bit
	}
	return d.setPrintingMode(mode)
}

// SetEmphasis toggles bold text
func (d *Driver) SetEmphasis(on bool) error {
	return d.setModeBit(EmphasisBit, on)
}

// SetDoubleHeight toggles double height text
func (d *Driver) SetDoubleHeight(on bool) error {
	return d.setModeBit(DoubleHeightBit, on)
}

// SetDoubleWidth toggles double width text
func (d *Driver) SetDoubleWidth(on bool) error {
	return d.setModeBit(DoubleWidthBit, on)
}

// SetUnderline toggles underlined text
func (d *Driver) SetUnderline(on bool) error {
	return d.setModeBit(UnderlineBit, on)
}

// PrintLogo prints a logo stored in printer memory on its own line
func (d *Driver) PrintLogo(num int) error {
	if err := escpos.CheckLogo(num); err != nil {
		return err
	}
	if err := d.Linebreak(); err != nil {
		return err
	}
	return d.WriteImmediately(escpos.Command(CBM_COMMANDS.PRINT_LOGO, byte(num), 0x00))
}

// PrintBarcode prints a length prefixed barcode on its own line
func (d *Driver) PrintBarcode(spec driver.BarcodeSpec) error {
	barcodeType, err := barcodeTypeByte(spec.Type)
	if err != nil {
		return err
	}
	setup, err := d.BarcodeSetup(spec)
	if err != nil {
		return err
	}
	payload, err := d.EncodePayload(spec.Data)
	if err != nil {
		return err
	}
	if err := driver.CheckRange("barcode length", len(payload), 0, maxPayloadLength); err != nil {
		return err
	}

	if err := d.Linebreak(); err != nil {
		return err
	}
	if err := d.WriteImmediately(setup); err != nil {
		return err
	}

	cmd := escpos.Command(escpos.ESC_POS_COMMANDS.BARCODE_PRINT, barcodeType, byte(len(payload)))
	cmd = append(cmd, payload...)
	return d.WriteImmediately(cmd)
}

// FeedAndCut feeds four blank lines and performs a partial cut
func (d *Driver) FeedAndCut() error {
	return d.WriteImmediately(CBM_COMMANDS.FEED_AND_CUT)
}

func barcodeTypeByte(t driver.BarcodeType) (byte, error) {
	switch t {
	case driver.BarcodeUPCA:
		return 65, nil
	case driver.BarcodeUPCE:
		return 66, nil
	case driver.BarcodeJAN13:
		return 67, nil
	case driver.BarcodeJAN8:
		return 68, nil
	case driver.BarcodeCode39:
		return 69, nil
	case driver.BarcodeITF:
		return 70, nil
	case driver.BarcodeCodabar:
		return 71, nil
	case driver.BarcodeCode93:
		return 72, nil
	case driver.BarcodeCode128:
		return 73, nil
	}
	return 0, fmt.Errorf("barcode type %q: %w", t, driver.ErrUnsupported)
}
