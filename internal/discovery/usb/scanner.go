// internal/discovery/usb/scanner.go
package usb

import (
	"context"
	"fmt"

	"github.com/google/gousb"
	"go.uber.org/zap"

	"ticketml-service/internal/discovery"
	"ticketml-service/internal/model"
)

// Scanner lists USB printer class devices and devices from known printer vendors
type Scanner struct {
	logger *zap.Logger
}

// NewScanner creates a new USB scanner
func NewScanner(logger *zap.Logger) *Scanner {
	return &Scanner{
		logger: logger.With(zap.String("scanner", "usb")),
	}
}

// GetScannerType returns scanner type identifier
func (s *Scanner) GetScannerType() string {
	return "usb"
}

// Scan enumerates USB descriptors without opening any device
func (s *Scanner) Scan(ctx context.Context) ([]*discovery.Port, error) {
	usbCtx := gousb.NewContext()
	defer func() {
		if err := usbCtx.Close(); err != nil {
			s.logger.Warn("Failed to close USB context", zap.Error(err))
		}
	}()

	var ports []*discovery.Port
	devices, err := usbCtx.OpenDevices(func(desc *gousb.DeviceDesc) bool {
		if ctx.Err() != nil {
			return false
		}
		if port := describe(desc); port != nil {
			ports = append(ports, port)
		}
		return false
	})
	for _, dev := range devices {
		dev.Close()
	}
	if err != nil {
		return nil, err
	}

	s.logger.Debug("USB scan completed", zap.Int("ports_found", len(ports)))
	return ports, ctx.Err()
}

// describe returns a Port for printer-like devices and nil otherwise
func describe(desc *gousb.DeviceDesc) *discovery.Port {
	vendorID := desc.Vendor.String()
	vendor, backend, known := discovery.SuggestBackend(vendorID)
	if !known && !isPrinterClass(desc) {
		return nil
	}

	port := &discovery.Port{
		ConnectionType: model.ConnectionTypeUSB,
		Name:           fmt.Sprintf("bus %d address %d", desc.Bus, desc.Address),
		VendorID:       vendorID,
		ProductID:      desc.Product.String(),
		Backend:        backend,
		Description:    vendor,
	}
	if port.Description == "" {
		port.Description = "USB printer"
	}
	return port
}

func isPrinterClass(desc *gousb.DeviceDesc) bool {
	if desc.Class == gousb.ClassPrinter {
		return true
	}
	for _, cfg := range desc.Configs {
		for _, intf := range cfg.Interfaces {
			for _, alt := range intf.AltSettings {
				if alt.Class == gousb.ClassPrinter {
					return true
				}
			}
		}
	}
	return false
}
