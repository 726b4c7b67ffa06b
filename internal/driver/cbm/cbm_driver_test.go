package cbm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticketml-service/internal/encoding"
	"ticketml-service/internal/protocol"
	"ticketml-service/pkg/driver"
)

func newTestDriver(t *testing.T) (*Driver, *protocol.BufferConnection) {
	t.Helper()
	conn := protocol.NewBufferConnection()
	d, err := New(conn, encoding.NewCharmapEncoder(), nil)
	require.NoError(t, err)
	return d, conn
}

func newStartedDriver(t *testing.T) (*Driver, *protocol.BufferConnection) {
	t.Helper()
	d, conn := newTestDriver(t)
	conn.Reset()
	return d, conn
}

func TestNewResetsModeThenAlignment(t *testing.T) {
	d, conn := newTestDriver(t)

	assert.Equal(t, [][]byte{
		{0x1B, 0x21, 0x00},
		{0x1B, 0x61, 0x00},
	}, conn.Writes())
	assert.Equal(t, byte(0), d.Mode())
}

func TestModeChangeAtLinebreakIsImmediate(t *testing.T) {
	d, conn := newStartedDriver(t)

	require.NoError(t, d.SetEmphasis(true))
	assert.Equal(t, []byte{0x1B, 0x21, 0x08}, conn.Bytes())
}

func TestModeChangeMidLineIsDeferred(t *testing.T) {
	d, conn := newStartedDriver(t)

	require.NoError(t, d.PrintText("ab"))
	require.NoError(t, d.SetEmphasis(true))
	assert.Equal(t, []byte("ab"), conn.Bytes())
	assert.Equal(t, []byte{0x1B, 0x21, 0x08}, d.Pending())

	require.NoError(t, d.PrintText("c\nd"))
	assert.Equal(t, []byte("abc\n\x1B!\x08d"), conn.Bytes())
}

func TestModeRegisterBits(t *testing.T) {
	d, _ := newStartedDriver(t)

	require.NoError(t, d.SetEmphasis(true))
	assert.Equal(t, byte(0x08), d.Mode())
	require.NoError(t, d.SetDoubleHeight(true))
	assert.Equal(t, byte(0x18), d.Mode())
	require.NoError(t, d.SetDoubleWidth(true))
	assert.Equal(t, byte(0x38), d.Mode())
	require.NoError(t, d.SetUnderline(true))
	assert.Equal(t, byte(0xB8), d.Mode())

	require.NoError(t, d.SetEmphasis(false))
	assert.Equal(t, byte(0xB0), d.Mode())
	require.NoError(t, d.SetDoubleHeight(false))
	require.NoError(t, d.SetDoubleWidth(false))
	require.NoError(t, d.SetUnderline(false))
	assert.Equal(t, byte(0), d.Mode())
}

func TestPendingModeChangesAccumulate(t *testing.T) {
	d, conn := newStartedDriver(t)

	require.NoError(t, d.PrintText("x"))
	require.NoError(t, d.SetEmphasis(true))
	require.NoError(t, d.SetUnderline(true))
	require.NoError(t, d.Linebreak())

	assert.Equal(t, []byte{'x', 0x0A, 0x1B, 0x21, 0x08, 0x1B, 0x21, 0x88}, conn.Bytes())
}

func TestPrintLogo(t *testing.T) {
	d, conn := newStartedDriver(t)

	require.NoError(t, d.PrintLogo(1))
	assert.Equal(t, [][]byte{{0x0A}, {0x1C, 0x70, 0x01, 0x00}}, conn.Writes())
}

func TestPrintBarcode(t *testing.T) {
	d, conn := newStartedDriver(t)

	err := d.PrintBarcode(driver.BarcodeSpec{
		Type:        driver.BarcodeCode128,
		HRIPosition: driver.HRINone,
		Height:      10,
		Data:        "ABC",
	})
	require.NoError(t, err)

	assert.Equal(t, []byte{
		0x0A,
		0x1D, 0x48, 0x00, 0x1D, 0x68, 0x0A,
		0x1D, 0x6B, 73, 3, 'A', 'B', 'C',
	}, conn.Bytes())
}

func TestPrintBarcodeHeightByteDoesNotSplice(t *testing.T) {
	d, conn := newStartedDriver(t)

	require.NoError(t, d.PrintText("x"))
	require.NoError(t, d.SetEmphasis(true))
	require.NoError(t, d.PrintBarcode(driver.BarcodeSpec{
		Type:        driver.BarcodeCode93,
		HRIPosition: driver.HRIBelow,
		Height:      0x0A,
		Data:        "1",
	}))

	assert.Equal(t, []byte{
		'x', 0x0A, 0x1B, 0x21, 0x08,
		0x1D, 0x48, 0x02, 0x1D, 0x68, 0x0A,
		0x1D, 0x6B, 72, 1, '1',
	}, conn.Bytes())
}

func TestPrintBarcodeTooLong(t *testing.T) {
	d, conn := newStartedDriver(t)

	data := make([]byte, 256)
	for i := range data {
		data[i] = '7'
	}
	err := d.PrintBarcode(driver.BarcodeSpec{
		Type:        driver.BarcodeCode128,
		HRIPosition: driver.HRIBelow,
		Height:      12,
		Data:        string(data),
	})

	var rangeErr *driver.RangeError
	require.ErrorAs(t, err, &rangeErr)
	assert.Empty(t, conn.Bytes())
}

func TestFeedAndCut(t *testing.T) {
	d, conn := newStartedDriver(t)

	require.NoError(t, d.PrintText("x"))
	require.NoError(t, d.SetDoubleWidth(true))
	require.NoError(t, d.FeedAndCut())
	assert.False(t, d.AtLinebreak())

	assert.Equal(t, []byte{
		'x',
		0x0A, 0x1B, 0x21, 0x20, 0x0A, 0x0A, 0x0A, 0x1D, 0x56, 0x01,
	}, conn.Bytes())
	assert.Empty(t, d.Pending())
}

func TestModeChangeAfterCutStaysPending(t *testing.T) {
	d, conn := newStartedDriver(t)

	require.NoError(t, d.FeedAndCut())
	conn.Reset()

	require.NoError(t, d.SetEmphasis(true))
	require.NoError(t, d.PrintText("a"))

	assert.Equal(t, []byte{'a'}, conn.Bytes())
	assert.Equal(t, []byte{0x1B, 0x21, 0x08}, d.Pending())
}

func TestCharactersPerLine(t *testing.T) {
	d, _ := newStartedDriver(t)

	assert.Equal(t, 48, d.GetCharactersPerLine(1))
	assert.Equal(t, 24, d.GetCharactersPerLine(2))
	assert.Equal(t, 6, d.GetCharactersPerLine(8))
}
