package lights

import (
	"sync"

	"status-leds/types"
)

// LogLight implements Light without hardware. It tracks the last frame and
// logs every change, which is what dry-run mode uses.
type LogLight struct {
	mu     sync.Mutex
	logger *types.Logger
	led1   int
	led2   int
	frames int
	closed bool
}

// NewLogLight creates a LogLight reporting through logger
func NewLogLight(logger *types.Logger) *LogLight {
	return &LogLight{logger: logger}
}

func (l *LogLight) Set(led1, led2 int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return errLightClosed
	}
	if l.frames == 0 || led1 != l.led1 || led2 != l.led2 {
		l.logger.DebugLog.Printf("frame %q", EncodeFrame(led1, led2))
	}
	l.led1, l.led2 = led1, led2
	l.frames++
	return nil
}

func (l *LogLight) Clear() error {
	return l.Set(0, 0)
}

// State returns the last brightness pair and the number of frames shown
func (l *LogLight) State() (led1, led2, frames int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.led1, l.led2, l.frames
}

func (l *LogLight) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = true
	l.logger.InfoLog.Printf("dry-run light closed after %d frames", l.frames)
	return nil
}
