package escpos

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticketml-service/internal/protocol"
)

func TestLineWriterStartsAtLinebreak(t *testing.T) {
	conn := protocol.NewBufferConnection()
	w := NewLineWriter(conn)

	assert.True(t, w.AtLinebreak())
	require.NoError(t, w.WriteAtLinebreak([]byte{0x1B, 0x61, 0x01}))
	assert.Equal(t, []byte{0x1B, 0x61, 0x01}, conn.Bytes())
	assert.Empty(t, w.Pending())
}

func TestLineWriterDefersUntilBoundary(t *testing.T) {
	conn := protocol.NewBufferConnection()
	w := NewLineWriter(conn)

	require.NoError(t, w.WriteImmediately([]byte("abc")))
	assert.False(t, w.AtLinebreak())

	require.NoError(t, w.WriteAtLinebreak([]byte("X")))
	require.NoError(t, w.WriteAtLinebreak([]byte("Y")))
	assert.Equal(t, []byte("XY"), w.Pending())
	assert.Equal(t, []byte("abc"), conn.Bytes())

	// no boundary byte: pending stays queued
	require.NoError(t, w.WriteImmediately([]byte("def")))
	assert.Equal(t, []byte("XY"), w.Pending())

	require.NoError(t, w.WriteImmediately([]byte("gh\nij\nk")))
	assert.Equal(t, []byte("abcdefgh\nXYij\nk"), conn.Bytes())
	assert.Empty(t, w.Pending())
	assert.False(t, w.AtLinebreak())
}

func TestLineWriterSpliceProperty(t *testing.T) {
	cases := []struct {
		name string
		x    []byte
		y    []byte
		at   int
	}{
		{"boundary first", []byte{0x1B, 0x21, 0x08}, []byte("\nabc"), 0},
		{"boundary last", []byte{0x1B, 0x61, 0x02}, []byte("abc\n"), 3},
		{"two boundaries", []byte("P"), []byte("a\nb\nc"), 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			conn := protocol.NewBufferConnection()
			w := NewLineWriter(conn)
			require.NoError(t, w.WriteImmediately([]byte("text")))
			conn.Reset()

			require.NoError(t, w.WriteAtLinebreak(tc.x))
			require.NoError(t, w.WriteImmediately(tc.y))

			var want []byte
			want = append(want, tc.y[:tc.at+1]...)
			want = append(want, tc.x...)
			want = append(want, tc.y[tc.at+1:]...)
			assert.Equal(t, want, conn.Bytes())
		})
	}
}

func TestLineWriterTracksLastByte(t *testing.T) {
	conn := protocol.NewBufferConnection()
	w := NewLineWriter(conn)

	require.NoError(t, w.WriteImmediately([]byte("a")))
	assert.False(t, w.AtLinebreak())
	require.NoError(t, w.WriteImmediately([]byte("a\n")))
	assert.True(t, w.AtLinebreak())
	require.NoError(t, w.WriteImmediately([]byte("a\nb")))
	assert.False(t, w.AtLinebreak())

	// form feed and cut commands do not end a line
	require.NoError(t, w.WriteImmediately([]byte("\n")))
	require.NoError(t, w.WriteImmediately([]byte{0x0C}))
	assert.False(t, w.AtLinebreak())
}

func TestLineWriterEmptyWriteIsNoop(t *testing.T) {
	conn := protocol.NewBufferConnection()
	w := NewLineWriter(conn)

	require.NoError(t, w.WriteImmediately([]byte("a")))
	require.NoError(t, w.WriteImmediately(nil))
	assert.False(t, w.AtLinebreak())
	assert.Len(t, conn.Writes(), 1)
}

func TestLineWriterPendingSurvivesCut(t *testing.T) {
	conn := protocol.NewBufferConnection()
	w := NewLineWriter(conn)

	require.NoError(t, w.WriteImmediately([]byte("x")))
	require.NoError(t, w.WriteAtLinebreak([]byte("Q")))
	require.NoError(t, w.WriteImmediately([]byte{0x1D, 0x56, 0x01}))

	assert.False(t, w.AtLinebreak())
	assert.Equal(t, []byte("Q"), w.Pending())
	assert.Equal(t, []byte{'x', 0x1D, 0x56, 0x01}, conn.Bytes())
}

func TestLineWriterKeepsPendingOnWriteError(t *testing.T) {
	conn := protocol.NewBufferConnection()
	w := NewLineWriter(conn)

	require.NoError(t, w.WriteImmediately([]byte("a")))
	require.NoError(t, w.WriteAtLinebreak([]byte("P")))

	conn.FailWrites = errors.New("cable unplugged")
	err := w.WriteImmediately([]byte("\n"))
	require.Error(t, err)
	assert.Equal(t, []byte("P"), w.Pending())
	assert.False(t, w.AtLinebreak())
}

func TestCommandCopiesPrefix(t *testing.T) {
	a := Command(ESC_POS_COMMANDS.SELECT_ALIGNMENT, 1)
	b := Command(ESC_POS_COMMANDS.SELECT_ALIGNMENT, 2)

	assert.Equal(t, []byte{0x1B, 0x61, 0x01}, a)
	assert.Equal(t, []byte{0x1B, 0x61, 0x02}, b)
	assert.Equal(t, []byte{0x1B, 0x61}, ESC_POS_COMMANDS.SELECT_ALIGNMENT)
}
