package scheduler

import (
	"context"
	"fmt"
	"time"

	"status-leds/lights"
	"status-leds/types"
)

// Stepper yields the brightness of both LEDs for the next tick
type Stepper interface {
	Next() (int, int)
}

// Interval converts a tick rate in ticks per second into a tick period
func Interval(rate float64) time.Duration {
	if rate <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / rate)
}

// Run sends one frame per tick until ctx is cancelled, then turns all LEDs off.
// Write errors are logged and the loop moves on to the next tick.
func Run(ctx context.Context, src Stepper, light lights.Light, interval time.Duration, logger *types.Logger) error {
	if interval <= 0 {
		return fmt.Errorf("tick interval must be positive, got %s", interval)
	}

	logger.InfoLog.Printf("Starting LED loop every %s", interval)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	failures := 0
	for ctx.Err() == nil {
		led1, led2 := src.Next()
		if err := light.Set(led1, led2); err != nil {
			failures++
			// avoid flooding the log at 100 Hz when the port is gone
			if failures == 1 || failures%100 == 0 {
				logger.WarnLog.Printf("Failed to set LEDs (%d failures): %s", failures, err.Error())
			}
		} else if failures > 0 {
			logger.InfoLog.Printf("LED writes recovered after %d failures", failures)
			failures = 0
		}

		select {
		case <-ctx.Done():
		case <-ticker.C:
		}
	}

	logger.InfoLog.Printf("Stopping LED loop, turning LEDs off")
	if err := light.Clear(); err != nil {
		return fmt.Errorf("failed to turn LEDs off: %w", err)
	}
	return nil
}
