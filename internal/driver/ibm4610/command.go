// internal/driver/ibm4610/command.go
package ibm4610

// IBM_COMMANDS contains the IBM 4610 specific command prefixes
var IBM_COMMANDS = struct {
	// Text attributes, each + n (0 off, 1 on)
	EMPHASIS      []byte
	DOUBLE_HEIGHT []byte
	DOUBLE_WIDTH  []byte
	UNDERLINE     []byte

	// Graphics
	PRINT_LOGO []byte // + logo number

	// Paper handling
	FEED_AND_CUT []byte
}{
	EMPHASIS:      []byte{0x1B, 0x47}, // ESC G
	DOUBLE_HEIGHT: []byte{0x1B, 0x68}, // ESC h
	DOUBLE_WIDTH:  []byte{0x1B, 0x57}, // ESC W
	UNDERLINE:     []byte{0x1B, 0x2D}, // ESC -

	PRINT_LOGO: []byte{0x1D, 0x2F, 0x00}, // GS / 0

	FEED_AND_CUT: []byte{0x0C}, // FF
}

// barcodeTerminator ends a null terminated barcode payload
const barcodeTerminator = 0x00
