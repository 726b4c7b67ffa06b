// internal/protocol/debug_connection.go
package protocol

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"sync"
	"time"

	"ticketml-service/internal/model"
)

// DebugConnection prints every write as a hex line instead of talking to hardware
type DebugConnection struct {
	out    io.Writer
	mutex  sync.Mutex
	isOpen bool
	stats  ProtocolStats
}

// NewDebugConnection creates a debug connection writing to out
func NewDebugConnection(out io.Writer) *DebugConnection {
	return &DebugConnection{out: out}
}

// Open marks the connection open
func (dc *DebugConnection) Open(ctx context.Context) error {
	dc.mutex.Lock()
	defer dc.mutex.Unlock()
	dc.isOpen = true
	dc.stats.IsConnected = true
	return nil
}

// Close marks the connection closed
func (dc *DebugConnection) Close() error {
	dc.mutex.Lock()
	defer dc.mutex.Unlock()
	dc.isOpen = false
	dc.stats.IsConnected = false
	return nil
}

// IsOpen returns whether the connection is open
func (dc *DebugConnection) IsOpen() bool {
	dc.mutex.Lock()
	defer dc.mutex.Unlock()
	return dc.isOpen
}

// Write prints ">>> <hex>" for data
func (dc *DebugConnection) Write(data []byte) error {
	dc.mutex.Lock()
	defer dc.mutex.Unlock()

	if !dc.isOpen {
		return fmt.Errorf("debug: %w", ErrNotOpen)
	}

	startTime := time.Now()
	if _, err := fmt.Fprintf(dc.out, ">>> %s\n", hex.EncodeToString(data)); err != nil {
		dc.stats.ErrorCount++
		return fmt.Errorf("failed to write debug output: %w", err)
	}
	dc.stats.recordWrite(len(data), time.Since(startTime))
	return nil
}

// Flush prints "> FLUSH"
func (dc *DebugConnection) Flush() error {
	dc.mutex.Lock()
	defer dc.mutex.Unlock()

	if !dc.isOpen {
		return fmt.Errorf("debug: %w", ErrNotOpen)
	}

	if _, err := fmt.Fprintln(dc.out, "> FLUSH"); err != nil {
		dc.stats.ErrorCount++
		return fmt.Errorf("failed to write debug output: %w", err)
	}
	dc.stats.FlushCount++
	return nil
}

// GetProtocolType returns the protocol type
func (dc *DebugConnection) GetProtocolType() model.ConnectionType {
	return model.ConnectionTypeDebug
}

// GetStats returns a snapshot of the connection statistics
func (dc *DebugConnection) GetStats() ProtocolStats {
	dc.mutex.Lock()
	defer dc.mutex.Unlock()
	return dc.stats
}
