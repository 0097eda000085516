package lights

import "fmt"

// Frame layout of the LED set command. The three middle fields are channels
// reserved by the board and always sent as zero.
const (
	framePrefix = "$LED:"
	frameFormat = framePrefix + "%d,0,0,0,%d\r\n"
)

// EncodeFrame renders the LED set command for both channels
func EncodeFrame(led1, led2 int) []byte {
	return []byte(fmt.Sprintf(frameFormat, led1, led2))
}
