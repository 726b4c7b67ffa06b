// internal/driver/registry_init.go
package driver

import (
	"go.uber.org/zap"

	"ticketml-service/internal/driver/cbm"
	"ticketml-service/internal/driver/ibm4610"
	"ticketml-service/internal/encoding"
	"ticketml-service/internal/protocol"
	"ticketml-service/pkg/driver"
)

// RegisterDefaultBackends registers the built-in printer families
func RegisterDefaultBackends(registry *Registry) {
	registry.Register(BackendInfo{
		Name:              ibm4610.Name,
		Description:       "IBM 4610 SureMark receipt printers",
		CharactersPerLine: ibm4610.CharactersPerLine,
	}, func(transport protocol.Transport, enc encoding.Encoder, logger *zap.Logger) (driver.Backend, error) {
		return ibm4610.New(transport, enc, logger)
	})

	registry.Register(BackendInfo{
		Name:              cbm.Name,
		Description:       "Citizen CBM receipt printers",
		CharactersPerLine: cbm.CharactersPerLine,
	}, func(transport protocol.Transport, enc encoding.Encoder, logger *zap.Logger) (driver.Backend, error) {
		return cbm.New(transport, enc, logger)
	})
}

// NewDefaultRegistry returns a registry holding the built-in backends
func NewDefaultRegistry(enc encoding.Encoder, logger *zap.Logger) *Registry {
	registry := NewRegistry(enc, logger)
	RegisterDefaultBackends(registry)
	return registry
}
