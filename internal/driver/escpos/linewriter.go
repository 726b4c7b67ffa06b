// internal/driver/escpos/linewriter.go
package escpos

import (
	"bytes"

	"ticketml-service/internal/protocol"
)

// lineBoundary is the byte that ends a printed line
const lineBoundary = '\n'

// LineWriter sits between a backend and its transport and holds back
// commands that the printer only honours at the start of a line.
//
// Invariant: pending is non-empty only while the stream is not at a line
// boundary. Pending bytes are spliced into the next immediate write that
// contains a line feed, directly after the first one.
type LineWriter struct {
	transport   protocol.Transport
	pending     []byte
	atLinebreak bool
}

// NewLineWriter creates a writer that starts at a line boundary
func NewLineWriter(transport protocol.Transport) *LineWriter {
	return &LineWriter{
		transport:   transport,
		atLinebreak: true,
	}
}

// WriteImmediately writes data now, splicing in any pending commands after
// the first line feed in data.
func (w *LineWriter) WriteImmediately(data []byte) error {
	if len(data) == 0 {
		return nil
	}

	out := data
	spliced := false
	if len(w.pending) > 0 {
		if i := bytes.IndexByte(data, lineBoundary); i >= 0 {
			out = make([]byte, 0, len(data)+len(w.pending))
			out = append(out, data[:i+1]...)
			out = append(out, w.pending...)
			out = append(out, data[i+1:]...)
			spliced = true
		}
	}

	if err := w.transport.Write(out); err != nil {
		return err
	}

	if spliced {
		w.pending = nil
	}
	w.atLinebreak = data[len(data)-1] == lineBoundary
	return nil
}

// WriteAtLinebreak writes data now when at a line boundary and queues it otherwise
func (w *LineWriter) WriteAtLinebreak(data []byte) error {
	if w.atLinebreak {
		return w.transport.Write(data)
	}
	w.pending = append(w.pending, data...)
	return nil
}

// AtLinebreak reports whether the stream is at a line boundary
func (w *LineWriter) AtLinebreak() bool {
	return w.atLinebreak
}

// Pending returns a copy of the queued commands
func (w *LineWriter) Pending() []byte {
	return append([]byte(nil), w.pending...)
}

// Flush pushes transport buffers to the device
func (w *LineWriter) Flush() error {
	return w.transport.Flush()
}
