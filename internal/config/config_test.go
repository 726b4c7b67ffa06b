package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "app:\n  environment: test\n"))
	require.NoError(t, err)

	assert.Equal(t, "ibm4610", cfg.Printer.Backend)
	assert.Equal(t, "debug", cfg.Printer.Connection)
	assert.True(t, cfg.Printer.StripIndentation)
	assert.Equal(t, 15*time.Second, cfg.Printer.OpenTimeout)
	assert.Equal(t, 19200, cfg.Printer.Serial.BaudRate)
	assert.Equal(t, 9100, cfg.Printer.TCP.Port)
	assert.Equal(t, int64(1<<20), cfg.Server.MaxBodyBytes)
	assert.Equal(t, "0.0.0.0:8085", cfg.GetServerAddr())
	assert.False(t, cfg.IsProduction())
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
server:
  port: "9000"
  allowed_origins: ["http://pos.local"]
printer:
  backend: cbm
  connection: serial
  strip_indentation: false
  serial:
    port: /dev/ttyUSB0
    baud_rate: 9600
logging:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, []string{"http://pos.local"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "cbm", cfg.Printer.Backend)
	assert.False(t, cfg.Printer.StripIndentation)
	assert.Equal(t, "/dev/ttyUSB0", cfg.Printer.Serial.Port)
	assert.Equal(t, 9600, cfg.Printer.Serial.BaudRate)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadEnvironmentOverride(t *testing.T) {
	t.Setenv("TICKETML_PRINTER_BACKEND", "cbm")
	t.Setenv("TICKETML_SERVER_PORT", "7000")

	cfg, err := Load(writeConfig(t, "printer:\n  backend: ibm4610\n"))
	require.NoError(t, err)

	assert.Equal(t, "cbm", cfg.Printer.Backend)
	assert.Equal(t, "7000", cfg.Server.Port)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"no backend", func(c *Config) { c.Printer.Backend = "" }, "printer.backend"},
		{"bad connection", func(c *Config) { c.Printer.Connection = "bluetooth" }, "printer.connection"},
		{"serial without port", func(c *Config) { c.Printer.Connection = "serial" }, "printer.serial.port"},
		{"bad baud rate", func(c *Config) {
			c.Printer.Connection = "serial"
			c.Printer.Serial.Port = "/dev/ttyS0"
			c.Printer.Serial.BaudRate = 12345
		}, "baud rate"},
		{"tcp without host", func(c *Config) { c.Printer.Connection = "tcp" }, "printer.tcp.host"},
		{"usb without ids", func(c *Config) { c.Printer.Connection = "usb" }, "printer.usb"},
		{"bad environment", func(c *Config) { c.App.Environment = "qa" }, "app.environment"},
		{"bad level", func(c *Config) { c.Logging.Level = "trace" }, "logging.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Printer: PrinterConfig{
					Backend:    "ibm4610",
					Connection: "debug",
					Serial:     SerialPortConfig{BaudRate: 19200},
				},
				Logging: LoggingConfig{Level: "info"},
				App:     AppConfig{Environment: "development"},
			}
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
