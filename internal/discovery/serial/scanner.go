// internal/discovery/serial/scanner.go
package serial

import (
	"context"
	"fmt"
	"strings"

	"go.bug.st/serial/enumerator"
	"go.uber.org/zap"

	"ticketml-service/internal/discovery"
	"ticketml-service/internal/model"
)

// Scanner lists serial ports
type Scanner struct {
	logger *zap.Logger
	list   func() ([]*enumerator.PortDetails, error)
}

// NewScanner creates a new serial scanner
func NewScanner(logger *zap.Logger) *Scanner {
	return &Scanner{
		logger: logger.With(zap.String("scanner", "serial")),
		list:   enumerator.GetDetailedPortsList,
	}
}

// GetScannerType returns scanner type
func (s *Scanner) GetScannerType() string {
	return "serial"
}

// Scan lists the serial ports of this machine
func (s *Scanner) Scan(ctx context.Context) ([]*discovery.Port, error) {
	details, err := s.list()
	if err != nil {
		return nil, fmt.Errorf("failed to get serial ports: %w", err)
	}

	ports := make([]*discovery.Port, 0, len(details))
	for _, d := range details {
		if err := ctx.Err(); err != nil {
			return ports, err
		}

		port := &discovery.Port{
			ConnectionType: model.ConnectionTypeSerial,
			Name:           d.Name,
			Description:    d.Product,
		}
		if d.IsUSB {
			port.VendorID = strings.ToLower(d.VID)
			port.ProductID = strings.ToLower(d.PID)
			if vendor, backend, ok := discovery.SuggestBackend(port.VendorID); ok {
				port.Backend = backend
				if port.Description == "" {
					port.Description = vendor
				}
			}
		}
		ports = append(ports, port)
	}

	s.logger.Debug("Serial scan completed", zap.Int("ports_found", len(ports)))
	return ports, nil
}
