// pkg/driver/types.go
package driver

import (
	"fmt"
)

// Alignment represents horizontal text alignment
type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

// ParseAlignment maps a markup mode value to an Alignment
func ParseAlignment(mode string) (Alignment, error) {
	switch Alignment(mode) {
	case AlignLeft, AlignCenter, AlignRight:
		return Alignment(mode), nil
	default:
		return "", fmt.Errorf("unrecognized alignment %q", mode)
	}
}

// BarcodeType identifies a barcode symbology
type BarcodeType string

const (
	BarcodeUPCA    BarcodeType = "UPC-A"
	BarcodeUPCE    BarcodeType = "UPC-E"
	BarcodeJAN13   BarcodeType = "JAN13"
	BarcodeJAN8    BarcodeType = "JAN8"
	BarcodeCode39  BarcodeType = "CODE39"
	BarcodeITF     BarcodeType = "ITF"
	BarcodeCodabar BarcodeType = "CODABAR"
	BarcodeCode93  BarcodeType = "CODE93"
	BarcodeCode128 BarcodeType = "CODE128"
)

// barcodeTypeNames maps markup type names, including EAN aliases, to symbologies
var barcodeTypeNames = map[string]BarcodeType{
	"UPC-A":   BarcodeUPCA,
	"UPC-E":   BarcodeUPCE,
	"JAN13":   BarcodeJAN13,
	"EAN13":   BarcodeJAN13,
	"JAN8":    BarcodeJAN8,
	"EAN8":    BarcodeJAN8,
	"CODE39":  BarcodeCode39,
	"ITF":     BarcodeITF,
	"CODABAR": BarcodeCodabar,
	"CODE93":  BarcodeCode93,
	"CODE128": BarcodeCode128,
}

// ParseBarcodeType resolves a markup barcode type name. Names are case sensitive.
func ParseBarcodeType(name string) (BarcodeType, error) {
	t, ok := barcodeTypeNames[name]
	if !ok {
		return "", fmt.Errorf("unknown barcode type %q", name)
	}
	return t, nil
}

// HRIPosition is where the human readable label is printed relative to a barcode
type HRIPosition string

const (
	HRINone  HRIPosition = "none"
	HRIAbove HRIPosition = "above"
	HRIBelow HRIPosition = "below"
	HRIBoth  HRIPosition = "both"
)

// ParseHRIPosition resolves a markup hriposition value
func ParseHRIPosition(name string) (HRIPosition, error) {
	switch HRIPosition(name) {
	case HRINone, HRIAbove, HRIBelow, HRIBoth:
		return HRIPosition(name), nil
	default:
		return "", fmt.Errorf("unknown barcode HRI position %q", name)
	}
}

// BarcodeSpec describes a single barcode to print
type BarcodeSpec struct {
	Type        BarcodeType `json:"type"`
	HRIPosition HRIPosition `json:"hri_position"`
	Height      int         `json:"height"`
	Data        string      `json:"data"`
}

// Font size and barcode height bounds
const (
	MinFontScale     = 1
	MaxFontScale     = 8
	MinBarcodeHeight = 1
	MaxBarcodeHeight = 255
	MaxLogoNumber    = 255
)
