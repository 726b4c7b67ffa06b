// internal/driver/cbm/command.go
package cbm

// CBM_COMMANDS contains the CBM/Citizen specific command prefixes
var CBM_COMMANDS = struct {
	SELECT_PRINT_MODE []byte // + mode register
	PRINT_LOGO        []byte // + logo number + 0x00
	FEED_AND_CUT      []byte
}{
	// ESC !
	SELECT_PRINT_MODE: []byte{0x1B, 0x21},
	// FS p
	PRINT_LOGO: []byte{0x1C, 0x70},
	// LF LF LF LF, GS V 1
	FEED_AND_CUT: []byte{0x0A, 0x0A, 0x0A, 0x0A, 0x1D, 0x56, 0x01},
}

// Printing mode register bits
const (
	EmphasisBit     = 3
	DoubleHeightBit = 4
	DoubleWidthBit  = 5
	UnderlineBit    = 7
)

// maxPayloadLength is the largest payload a one byte length prefix can describe
const maxPayloadLength = 255
