package lights

import (
	"errors"
	"fmt"
	"io"
)

// sendFrame writes one LED frame to the port
func sendFrame(port io.Writer, led1, led2 int) error {
	_, err := port.Write(EncodeFrame(led1, led2))
	if err != nil {
		return fmt.Errorf("failed to send frame: %w", err)
	}
	return nil
}

var errLightClosed = errors.New("light is closed")
