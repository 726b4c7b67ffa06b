package serial

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.bug.st/serial/enumerator"
	"go.uber.org/zap"

	"ticketml-service/internal/model"
)

func TestScan(t *testing.T) {
	scanner := NewScanner(zap.NewNop())
	scanner.list = func() ([]*enumerator.PortDetails, error) {
		return []*enumerator.PortDetails{
			{Name: "/dev/ttyS0"},
			{Name: "/dev/ttyUSB0", IsUSB: true, VID: "04B3", PID: "4535"},
			{Name: "/dev/ttyUSB1", IsUSB: true, VID: "0403", PID: "6001", Product: "FT232R"},
		}, nil
	}

	ports, err := scanner.Scan(context.Background())
	require.NoError(t, err)
	require.Len(t, ports, 3)

	assert.Equal(t, model.ConnectionTypeSerial, ports[0].ConnectionType)
	assert.Empty(t, ports[0].Backend)

	assert.Equal(t, "04b3", ports[1].VendorID)
	assert.Equal(t, "ibm4610", ports[1].Backend)
	assert.Equal(t, "IBM", ports[1].Description)

	assert.Equal(t, "FT232R", ports[2].Description)
	assert.Empty(t, ports[2].Backend)
}

func TestScanListError(t *testing.T) {
	scanner := NewScanner(zap.NewNop())
	scanner.list = func() ([]*enumerator.PortDetails, error) {
		return nil, errors.New("no sysfs")
	}

	_, err := scanner.Scan(context.Background())
	assert.ErrorContains(t, err, "no sysfs")
}
