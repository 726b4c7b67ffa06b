// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Printer PrinterConfig `mapstructure:"printer"`
	Logging LoggingConfig `mapstructure:"logging"`
	App     AppConfig     `mapstructure:"app"`
}

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Host           string        `mapstructure:"host"`
	Port           string        `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	IdleTimeout    time.Duration `mapstructure:"idle_timeout"`
	MaxBodyBytes   int64         `mapstructure:"max_body_bytes"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
}

// PrinterConfig selects the protocol backend and how to reach the printer
type PrinterConfig struct {
	Backend          string           `mapstructure:"backend"`
	Connection       string           `mapstructure:"connection"`
	StripIndentation bool             `mapstructure:"strip_indentation"`
	OpenTimeout      time.Duration    `mapstructure:"open_timeout"`
	Serial           SerialPortConfig `mapstructure:"serial"`
	TCP              TCPPortConfig    `mapstructure:"tcp"`
	USB              USBPortConfig    `mapstructure:"usb"`
}

// SerialPortConfig represents serial port configuration
type SerialPortConfig struct {
	Port     string        `mapstructure:"port"`
	BaudRate int           `mapstructure:"baud_rate"`
	DataBits int           `mapstructure:"data_bits"`
	StopBits int           `mapstructure:"stop_bits"`
	Parity   string        `mapstructure:"parity"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// TCPPortConfig represents network printer configuration
type TCPPortConfig struct {
	Host           string        `mapstructure:"host"`
	Port           int           `mapstructure:"port"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	KeepAlive      bool          `mapstructure:"keep_alive"`
}

// USBPortConfig represents USB printer configuration
type USBPortConfig struct {
	VendorID  string        `mapstructure:"vendor_id"`
	ProductID string        `mapstructure:"product_id"`
	Endpoint  int           `mapstructure:"endpoint"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
}

// AppConfig represents application metadata
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// Load loads configuration from an optional file and environment variables.
// An empty path searches for config.yaml in the working directory and /etc/ticketml.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/ticketml")
	}

	// Environment variable support
	v.SetEnvPrefix("TICKETML")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8085")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("server.max_body_bytes", 1<<20)

	// Printer defaults
	v.SetDefault("printer.backend", "ibm4610")
	v.SetDefault("printer.connection", "debug")
	v.SetDefault("printer.strip_indentation", true)
	v.SetDefault("printer.open_timeout", "15s")

	v.SetDefault("printer.serial.baud_rate", 19200)
	v.SetDefault("printer.serial.data_bits", 8)
	v.SetDefault("printer.serial.stop_bits", 1)
	v.SetDefault("printer.serial.parity", "none")
	v.SetDefault("printer.serial.timeout", "5s")

	v.SetDefault("printer.tcp.port", 9100)
	v.SetDefault("printer.tcp.connect_timeout", "10s")
	v.SetDefault("printer.tcp.write_timeout", "30s")
	v.SetDefault("printer.tcp.keep_alive", true)

	v.SetDefault("printer.usb.endpoint", 1)
	v.SetDefault("printer.usb.timeout", "5s")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.output", "stderr")
	v.SetDefault("logging.max_size", 100)
	v.SetDefault("logging.max_backups", 3)
	v.SetDefault("logging.max_age", 28)
	v.SetDefault("logging.compress", true)

	// App defaults
	v.SetDefault("app.name", "ticketml-service")
	v.SetDefault("app.version", "0.3.0")
	v.SetDefault("app.environment", "development")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Printer.Backend == "" {
		return fmt.Errorf("printer.backend is required")
	}

	switch strings.ToLower(config.Printer.Connection) {
	case "debug", "memory":
	case "serial":
		if config.Printer.Serial.Port == "" {
			return fmt.Errorf("printer.serial.port is required for serial connections")
		}
		if !isValidBaudRate(config.Printer.Serial.BaudRate) {
			return fmt.Errorf("invalid baud rate: %d", config.Printer.Serial.BaudRate)
		}
	case "tcp":
		if config.Printer.TCP.Host == "" {
			return fmt.Errorf("printer.tcp.host is required for tcp connections")
		}
		if config.Printer.TCP.Port < 1 || config.Printer.TCP.Port > 65535 {
			return fmt.Errorf("invalid port number: %d", config.Printer.TCP.Port)
		}
	case "usb":
		if config.Printer.USB.VendorID == "" || config.Printer.USB.ProductID == "" {
			return fmt.Errorf("printer.usb.vendor_id and printer.usb.product_id are required for usb connections")
		}
	default:
		return fmt.Errorf("printer.connection must be one of: serial, tcp, usb, debug, memory")
	}

	validEnvs := []string{"development", "staging", "production", "test"}
	if !contains(validEnvs, config.App.Environment) {
		return fmt.Errorf("app.environment must be one of: %v", validEnvs)
	}

	validLevels := []string{"debug", "info", "warn", "error", "fatal"}
	if !contains(validLevels, config.Logging.Level) {
		return fmt.Errorf("logging.level must be one of: %v", validLevels)
	}

	return nil
}

func isValidBaudRate(rate int) bool {
	switch rate {
	case 1200, 2400, 4800, 9600, 19200, 38400, 57600, 115200:
		return true
	}
	return false
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}

// Validate re-checks the configuration after command line overrides
func (c *Config) Validate() error {
	return validate(c)
}

// GetServerAddr returns the server address
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}

// IsProduction checks if the environment is production
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}
