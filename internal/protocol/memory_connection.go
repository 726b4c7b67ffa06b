// internal/protocol/memory_connection.go
package protocol

import (
	"bytes"
	"context"
	"sync"
	"time"

	"ticketml-service/internal/model"
)

// BufferConnection records everything written to it in memory.
// It is always open and is used for previews and tests.
type BufferConnection struct {
	mutex   sync.Mutex
	buf     bytes.Buffer
	writes  [][]byte
	flushes int
	stats   ProtocolStats

	// FailWrites makes every subsequent Write return this error
	FailWrites error
}

// NewBufferConnection creates an empty in-memory connection
func NewBufferConnection() *BufferConnection {
	return &BufferConnection{stats: ProtocolStats{IsConnected: true}}
}

func (bc *BufferConnection) Open(ctx context.Context) error { return nil }
func (bc *BufferConnection) Close() error                   { return nil }
func (bc *BufferConnection) IsOpen() bool                   { return true }

// Write appends data to the buffer and records it as one write call
func (bc *BufferConnection) Write(data []byte) error {
	bc.mutex.Lock()
	defer bc.mutex.Unlock()

	if bc.FailWrites != nil {
		bc.stats.ErrorCount++
		return bc.FailWrites
	}

	startTime := time.Now()
	bc.buf.Write(data)
	bc.writes = append(bc.writes, append([]byte(nil), data...))
	bc.stats.recordWrite(len(data), time.Since(startTime))
	return nil
}

// Flush counts flush calls
func (bc *BufferConnection) Flush() error {
	bc.mutex.Lock()
	defer bc.mutex.Unlock()
	bc.flushes++
	bc.stats.FlushCount++
	return nil
}

// Bytes returns a copy of everything written so far
func (bc *BufferConnection) Bytes() []byte {
	bc.mutex.Lock()
	defer bc.mutex.Unlock()
	return append([]byte(nil), bc.buf.Bytes()...)
}

// Writes returns a copy of the individual write calls in order
func (bc *BufferConnection) Writes() [][]byte {
	bc.mutex.Lock()
	defer bc.mutex.Unlock()
	out := make([][]byte, len(bc.writes))
	copy(out, bc.writes)
	return out
}

// Flushes returns the number of Flush calls
func (bc *BufferConnection) Flushes() int {
	bc.mutex.Lock()
	defer bc.mutex.Unlock()
	return bc.flushes
}

// Reset discards recorded data
func (bc *BufferConnection) Reset() {
	bc.mutex.Lock()
	defer bc.mutex.Unlock()
	bc.buf.Reset()
	bc.writes = nil
	bc.flushes = 0
}

// GetProtocolType returns the protocol type
func (bc *BufferConnection) GetProtocolType() model.ConnectionType {
	return model.ConnectionTypeMemory
}

// GetStats returns a snapshot of the connection statistics
func (bc *BufferConnection) GetStats() ProtocolStats {
	bc.mutex.Lock()
	defer bc.mutex.Unlock()
	return bc.stats
}
