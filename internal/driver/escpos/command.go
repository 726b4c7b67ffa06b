// internal/driver/escpos/command.go
package escpos

// ESC_POS_COMMANDS contains the command prefixes both printer families share
var ESC_POS_COMMANDS = struct {
	// Paper handling
	LINE_FEED []byte

	// Layout
	SELECT_ALIGNMENT []byte // + n (0 left, 1 center, 2 right)
	SELECT_FONT_SIZE []byte // + (width-1)<<4 | (height-1)

	// Barcodes
	BARCODE_HRI_POSITION []byte // + n
	BARCODE_HEIGHT       []byte // + dots
	BARCODE_PRINT        []byte // + type + data
}{
	LINE_FEED: []byte{0x0A}, // LF

	SELECT_ALIGNMENT: []byte{0x1B, 0x61}, // ESC a
	SELECT_FONT_SIZE: []byte{0x1D, 0x21}, // GS !

	BARCODE_HRI_POSITION: []byte{0x1D, 0x48}, // GS H
	BARCODE_HEIGHT:       []byte{0x1D, 0x68}, // GS h
	BARCODE_PRINT:        []byte{0x1D, 0x6B}, // GS k
}

// Command returns a new slice holding prefix followed by args.
// The shared prefix tables are never appended to in place.
func Command(prefix []byte, args ...byte) []byte {
	cmd := make([]byte, 0, len(prefix)+len(args))
	cmd = append(cmd, prefix...)
	return append(cmd, args...)
}

// Bool returns the 0/1 parameter byte for on/off commands
func Bool(on bool) byte {
	if on {
		return 1
	}
	return 0
}
