// internal/driver/ibm4610/ibm4610_driver.go
package ibm4610

import (
	"fmt"

	"go.uber.org/zap"

	"ticketml-service/internal/driver/escpos"
	"ticketml-service/internal/encoding"
	"ticketml-service/internal/protocol"
	"ticketml-service/pkg/driver"
)

// Name is the registry name of this backend
const Name = "ibm4610"

// CharactersPerLine is the line width at font scale 1
const CharactersPerLine = 44

// Driver renders ticket operations for IBM 4610 printers.
// Text attributes are independent commands written at once; alignment
// waits for the next line start.
type Driver struct {
	*escpos.Base
}

var _ driver.Backend = (*Driver)(nil)

// New creates an IBM 4610 backend and writes its initial state to transport
func New(transport protocol.Transport, enc encoding.Encoder, logger *zap.Logger) (*Driver, error) {
	d := &Driver{
		Base: escpos.NewBase(transport, enc, CharactersPerLine, logger),
	}

	if err := d.SetAlignment(driver.AlignLeft); err != nil {
		return nil, fmt.Errorf("failed to initialize %s backend: %w", Name, err)
	}

	d.Logger().Debug("Backend initialized", zap.String("backend", Name))
	return d, nil
}

func (d *Driver) setAttribute(prefix []byte, on bool) error {
	return d.WriteImmediately(escpos.Command(prefix, escpos.Bool(on)))
}

// SetEmphasis toggles bold text
func (d *Driver) SetEmphasis(on bool) error {
	return d.setAttribute(IBM_COMMANDS.EMPHASIS, on)
}

// SetDoubleHeight toggles double height text
func (d *Driver) SetDoubleHeight(on bool) error {
	return d.setAttribute(IBM_COMMANDS.DOUBLE_HEIGHT, on)
}

// SetDoubleWidth toggles double width text
func (d *Driver) SetDoubleWidth(on bool) error {
	return d.setAttribute(IBM_COMMANDS.DOUBLE_WIDTH, on)
}

// SetUnderline toggles underlined text
func (d *Driver) SetUnderline(on bool) error {
	return d.setAttribute(IBM_COMMANDS.UNDERLINE, on)
}

// PrintLogo prints a logo stored in printer memory on its own line
func (d *Driver) PrintLogo(num int) error {
	if err := escpos.CheckLogo(num); err != nil {
		return err
	}
	if err := d.Linebreak(); err != nil {
		return err
	}
	return d.WriteImmediately(escpos.Command(IBM_COMMANDS.PRINT_LOGO, byte(num)))
}

// PrintBarcode prints a null terminated barcode on its own line
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

	if err := d.Linebreak(); err != nil {
		return err
	}
	if err := d.WriteImmediately(setup); err != nil {
		return err
	}

	cmd := escpos.Command(escpos.ESC_POS_COMMANDS.BARCODE_PRINT, barcodeType)
	cmd = append(cmd, payload...)
	cmd = append(cmd, barcodeTerminator)
	return d.WriteImmediately(cmd)
}

// FeedAndCut feeds the paper past the cutter and cuts
func (d *Driver) FeedAndCut() error {
	return d.WriteImmediately(IBM_COMMANDS.FEED_AND_CUT)
}

func barcodeTypeByte(t driver.BarcodeType) (byte, error) {
	switch t {
	case driver.BarcodeUPCA:
		return 0, nil
	case driver.BarcodeUPCE:
		return 1, nil
	case driver.BarcodeJAN13:
		return 2, nil
	case driver.BarcodeJAN8:
		return 3, nil
	case driver.BarcodeCode39:
		return 4, nil
	case driver.BarcodeITF:
		return 5, nil
	case driver.BarcodeCodabar:
		return 6, nil
	case driver.BarcodeCode128:
		return 7, nil
	case driver.BarcodeCode93:
		return 8, nil
	}
	return 0, fmt.Errorf("barcode type %q: %w", t, driver.ErrUnsupported)
}
