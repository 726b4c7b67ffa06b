// internal/model/device.go
package model

import "strings"

// ConnectionType represents how the printer is connected
type ConnectionType string

const (
	ConnectionTypeSerial ConnectionType = "SERIAL"
	ConnectionTypeUSB    ConnectionType = "USB"
	ConnectionTypeTCP    ConnectionType = "TCP"
	ConnectionTypeDebug  ConnectionType = "DEBUG"
	ConnectionTypeMemory ConnectionType = "MEMORY"
)

// ParseConnectionType accepts connection names in any case
func ParseConnectionType(name string) (ConnectionType, bool) {
	switch t := ConnectionType(strings.ToUpper(name)); t {
	case ConnectionTypeSerial, ConnectionTypeUSB, ConnectionTypeTCP, ConnectionTypeDebug, ConnectionTypeMemory:
		return t, true
	}
	return "", false
}
