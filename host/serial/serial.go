// Package serial opens the USB/UART link to a Gopper MCU.
package serial

import (
	"errors"
	"io"
	"time"
)

// ErrNoDevice is returned when opening a port with an empty device path.
var ErrNoDevice = errors.New("no serial device given")

// Port is the byte stream the host transport runs over. Tests substitute
// an in-memory fake.
type Port interface {
	io.ReadWriteCloser

	// Flush discards anything buffered but not yet read.
	Flush() error
}

// Config holds serial port settings.
type Config struct {
	// Device path (e.g. "/dev/ttyACM0", "COM3")
	Device string `json:"device"`

	// Baud is ignored by USB CDC links but required by UARTs.
	Baud int `json:"baud"`

	// ReadTimeout in milliseconds. Config files that leave it at 0 get
	// DefaultReadTimeout.
	ReadTimeout int `json:"read_timeout_ms"`
}

const (
	DefaultBaud        = 250000
	DefaultReadTimeout = 100
)

// DefaultConfig returns the settings Klipper-protocol firmware expects.
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        DefaultBaud,
		ReadTimeout: DefaultReadTimeout,
	}
}

// Timeout returns ReadTimeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.ReadTimeout) * time.Millisecond
}
