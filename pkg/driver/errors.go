// pkg/driver/errors.go
package driver

import (
	"errors"
	"fmt"
)

// ErrUnsupported is returned when a backend has no encoding for a requested value
var ErrUnsupported = errors.New("unsupported by backend")

// RangeError reports a numeric argument outside its documented bound
type RangeError struct {
	Name  string
	Value int
	Min   int
	Max   int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s must be between %d and %d, got %d", e.Name, e.Min, e.Max, e.Value)
}

// CheckRange returns a *RangeError when value falls outside [min, max]
func CheckRange(name string, value, min, max int) error {
	if value < min || value > max {
		return &RangeError{Name: name, Value: value, Min: min, Max: max}
	}
	return nil
}
