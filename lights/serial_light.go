//go:build !noserial

package lights

import (
	"fmt"
	"io"
	"time"

	"github.com/tarm/serial"
)

const readTimeout = 500 * time.Millisecond

// SerialLight implements Light for the LED board on a serial port
type SerialLight struct {
	name string
	port io.WriteCloser
}

// NewSerialLight opens the port and keeps it open until Close
func NewSerialLight(port string, baudRate int) (*SerialLight, error) {
	s, err := openPort(port, baudRate)
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", port, err)
	}
	return &SerialLight{name: port, port: s}, nil
}

func openPort(name string, baudRate int) (*serial.Port, error) {
	c := &serial.Config{
		Name:        name,
		Baud:        baudRate,
		ReadTimeout: readTimeout,
	}
	return serial.OpenPort(c)
}

func (l *SerialLight) Set(led1, led2 int) error {
	if led1 < 0 || led2 < 0 {
		return fmt.Errorf("invalid brightness: %d,%d", led1, led2)
	}
	return sendFrame(l.port, led1, led2)
}

func (l *SerialLight) Clear() error {
	return sendFrame(l.port, 0, 0)
}

func (l *SerialLight) Close() error {
	if err := l.port.Close(); err != nil {
		return fmt.Errorf("error closing serial port %s: %w", l.name, err)
	}
	return nil
}
