// internal/discovery/scanner.go
package discovery

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"ticketml-service/internal/model"
)

// PortScanner lists local attachment points a printer may be connected to
type PortScanner interface {
	Scan(ctx context.Context) ([]*Port, error)
	GetScannerType() string
}

// Port is a candidate printer connection.
// Backend is the suggested backend when the vendor is recognised.
type Port struct {
	ConnectionType model.ConnectionType `json:"connection_type"`
	Name           string               `json:"name"`
	VendorID       string               `json:"vendor_id,omitempty"`
	ProductID      string               `json:"product_id,omitempty"`
	Description    string               `json:"description,omitempty"`
	Backend        string               `json:"backend,omitempty"`
}

// Known printer vendors and the backend that drives them
var knownVendors = map[string]struct {
	name    string
	backend string
}{
	"04b3": {name: "IBM", backend: "ibm4610"},
	"1d90": {name: "Citizen", backend: "cbm"},
	"2730": {name: "Citizen", backend: "cbm"},
}

// SuggestBackend returns the vendor name and backend for a USB vendor ID
func SuggestBackend(vendorID string) (vendor, backend string, ok bool) {
	v, ok := knownVendors[vendorID]
	return v.name, v.backend, ok
}

// ScannerManager runs every registered scanner
type ScannerManager struct {
	scanners map[string]PortScanner
	logger   *zap.Logger
}

// NewScannerManager creates a new scanner manager
func NewScannerManager(logger *zap.Logger) *ScannerManager {
	return &ScannerManager{
		scanners: make(map[string]PortScanner),
		logger:   logger,
	}
}

// RegisterScanner registers a port scanner
func (sm *ScannerManager) RegisterScanner(scanner PortScanner) {
	scannerType := scanner.GetScannerType()
	sm.scanners[scannerType] = scanner
	sm.logger.Debug("Scanner registered", zap.String("type", scannerType))
}

// ScanAll runs all scanners. A failing scanner is logged and skipped.
func (sm *ScannerManager) ScanAll(ctx context.Context) []*Port {
	var all []*Port

	for _, scannerType := range sm.scannerTypes() {
		ports, err := sm.scanners[scannerType].Scan(ctx)
		if err != nil {
			sm.logger.Warn("Scanner failed", zap.String("type", scannerType), zap.Error(err))
			continue
		}

		all = append(all, ports...)
		sm.logger.Debug("Scanner completed",
			zap.String("type", scannerType),
			zap.Int("ports_found", len(ports)),
		)
	}

	return all
}

// ScanByType runs one scanner
func (sm *ScannerManager) ScanByType(ctx context.Context, scannerType string) ([]*Port, error) {
	scanner, exists := sm.scanners[scannerType]
	if !exists {
		return nil, fmt.Errorf("scanner type not found: %s", scannerType)
	}
	return scanner.Scan(ctx)
}

func (sm *ScannerManager) scannerTypes() []string {
	types := make([]string, 0, len(sm.scanners))
	for t := range sm.scanners {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
