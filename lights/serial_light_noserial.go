//go:build noserial

package lights

import "fmt"

// SerialLight implements Light for the LED board on a serial port
type SerialLight struct{}

// NewSerialLight creates a new SerialLight instance
func NewSerialLight(port string, baudRate int) (*SerialLight, error) {
	return nil, fmt.Errorf("serial port support not available in this build")
}

func (l *SerialLight) Set(led1, led2 int) error {
	return fmt.Errorf("serial port support not available in this build")
}

func (l *SerialLight) Clear() error {
	return fmt.Errorf("serial port support not available in this build")
}

func (l *SerialLight) Close() error {
	return nil
}
