package lights

// Light is an output device that shows two LED brightness values
type Light interface {
	// Set shows brightness led1 on the first LED and led2 on the second
	Set(led1, led2 int) error
	// Clear turns off all LEDs
	Clear() error
	// Close releases the underlying device
	Close() error
}
