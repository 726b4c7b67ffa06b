// internal/protocol/protocol.go
package protocol

import (
	"context"
	"errors"
	"time"

	"ticketml-service/internal/model"
)

// ErrNotOpen is returned when writing to a connection that has not been opened
var ErrNotOpen = errors.New("connection not open")

// Transport is the append-only byte sink a printer backend writes to
type Transport interface {
	Write(data []byte) error
	Flush() error
}

// DeviceProtocol represents a communication link to a printer
type DeviceProtocol interface {
	Transport

	// Connection lifecycle
	Open(ctx context.Context) error
	Close() error
	IsOpen() bool

	// Protocol information
	GetProtocolType() model.ConnectionType
	GetStats() ProtocolStats
}

// ProtocolStats provides protocol-level statistics
type ProtocolStats struct {
	BytesWritten   int64         `json:"bytes_written"`
	OperationCount int64         `json:"operation_count"`
	FlushCount     int64         `json:"flush_count"`
	ErrorCount     int64         `json:"error_count"`
	LastActivity   time.Time     `json:"last_activity"`
	AverageLatency time.Duration `json:"average_latency"`
	IsConnected    bool          `json:"is_connected"`
}

// recordWrite updates statistics after a successful write
func (s *ProtocolStats) recordWrite(n int, latency time.Duration) {
	s.BytesWritten += int64(n)
	s.OperationCount++
	s.LastActivity = time.Now()
	if s.AverageLatency == 0 {
		s.AverageLatency = latency
	} else {
		s.AverageLatency = (s.AverageLatency + latency) / 2
	}
}
