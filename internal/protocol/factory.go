// internal/protocol/factory.go
package protocol

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"ticketml-service/internal/config"
	"ticketml-service/internal/model"
)

// CreateProtocol creates the printer connection described by the printer configuration.
// Debug connections write their hex dump to debugOut.
func CreateProtocol(cfg *config.PrinterConfig, debugOut io.Writer, logger *zap.Logger) (DeviceProtocol, error) {
	connectionType, ok := model.ParseConnectionType(cfg.Connection)
	if !ok {
		return nil, fmt.Errorf("unsupported protocol type: %s", cfg.Connection)
	}

	switch connectionType {
	case model.ConnectionTypeSerial:
		return createSerialProtocol(&cfg.Serial, logger)
	case model.ConnectionTypeUSB:
		return createUSBProtocol(&cfg.USB, logger)
	case model.ConnectionTypeTCP:
		return createTCPProtocol(&cfg.TCP, logger)
	case model.ConnectionTypeDebug:
		return NewDebugConnection(debugOut), nil
	case model.ConnectionTypeMemory:
		return NewBufferConnection(), nil
	default:
		return nil, fmt.Errorf("unsupported protocol type: %s", connectionType)
	}
}

// createSerialProtocol creates a serial protocol
func createSerialProtocol(cfg *config.SerialPortConfig, logger *zap.Logger) (DeviceProtocol, error) {
	if cfg.Port == "" {
		return nil, fmt.Errorf("serial port is required")
	}

	serialConfig := &SerialConfig{
		Port:     cfg.Port,
		BaudRate: cfg.BaudRate,
		DataBits: cfg.DataBits,
		StopBits: cfg.StopBits,
		Parity:   cfg.Parity,
		Timeout:  cfg.Timeout,
	}
	if serialConfig.BaudRate == 0 {
		serialConfig.BaudRate = 19200
	}
	if serialConfig.DataBits == 0 {
		serialConfig.DataBits = 8
	}

	logger.Info("Creating serial protocol",
		zap.String("port", serialConfig.Port),
		zap.Int("baud_rate", serialConfig.BaudRate),
	)

	return NewSerialConnection(serialConfig, logger), nil
}

// createUSBProtocol creates a USB protocol
func createUSBProtocol(cfg *config.USBPortConfig, logger *zap.Logger) (DeviceProtocol, error) {
	if cfg.VendorID == "" {
		return nil, fmt.Errorf("USB vendor_id is required")
	}
	if cfg.ProductID == "" {
		return nil, fmt.Errorf("USB product_id is required")
	}

	usbConfig := &USBConfig{
		VendorID:  cfg.VendorID,
		ProductID: cfg.ProductID,
		Endpoint:  cfg.Endpoint,
		Timeout:   cfg.Timeout,
	}
	if usbConfig.Endpoint == 0 {
		usbConfig.Endpoint = 1
	}

	logger.Info("Creating USB protocol",
		zap.String("vendor_id", usbConfig.VendorID),
		zap.String("product_id", usbConfig.ProductID),
	)

	return NewUSBConnection(usbConfig, logger), nil
}

// createTCPProtocol creates a TCP protocol
func createTCPProtocol(cfg *config.TCPPortConfig, logger *zap.Logger) (DeviceProtocol, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("TCP host is required")
	}

	tcpConfig := &TCPConfig{
		Host:         cfg.Host,
		Port:         cfg.Port,
		KeepAlive:    cfg.KeepAlive,
		Timeout:      cfg.ConnectTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if tcpConfig.Port == 0 {
		tcpConfig.Port = 9100
	}

	logger.Info("Creating TCP protocol",
		zap.String("host", tcpConfig.Host),
		zap.Int("port", tcpConfig.Port),
	)

	return NewTCPConnection(tcpConfig, logger), nil
}
