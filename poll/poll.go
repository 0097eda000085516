package poll

import (
	"context"
	"errors"
	"fmt"
	"time"

	"status-leds/animation"
	"status-leds/network"
	"status-leds/types"
)

// Source reports which animation the current status calls for.
// An empty name means the status gives no reason to change.
type Source interface {
	Status(ctx context.Context) (string, error)
}

// Switcher activates an animation by name
type Switcher interface {
	Switch(name string) error
}

// Notifier delivers a human-readable message about a status change
type Notifier interface {
	Notify(ctx context.Context, message string) error
}

// Monitor polls a Source and switches the LED animation when the status changes.
//
// Only changes of the mapped status trigger a switch. An animation set by
// another caller (the HTTP API) stays active until the status moves to a
// different animation; polling the same status again does not undo it.
type Monitor struct {
	source          Source
	switcher        Switcher
	interval        time.Duration
	connectivityURL string
	logger          *types.Logger
	notifier        Notifier
	nodeName        string
	current         string
}

// NewMonitor creates a Monitor. An empty connectivityURL skips the connectivity check.
func NewMonitor(source Source, switcher Switcher, interval time.Duration, connectivityURL string, logger *types.Logger) *Monitor {
	return &Monitor{
		source:          source,
		switcher:        switcher,
		interval:        interval,
		connectivityURL: connectivityURL,
		logger:          logger,
	}
}

// WithNotifier reports every animation change made by the monitor through n,
// prefixed with nodeName
func (m *Monitor) WithNotifier(n Notifier, nodeName string) *Monitor {
	m.notifier = n
	m.nodeName = nodeName
	return m
}

// Run polls until ctx is cancelled
func (m *Monitor) Run(ctx context.Context) {
	m.logger.InfoLog.Printf("Starting status polling every %s", m.interval)

	for {
		m.Poll(ctx)

		select {
		case <-ctx.Done():
			m.logger.InfoLog.Printf("Status polling stopped")
			return
		case <-time.After(m.interval):
		}
	}
}

// Poll checks the status once and applies the resulting animation
func (m *Monitor) Poll(ctx context.Context) {
	if m.connectivityURL != "" {
		if err := network.CheckConnectivity(ctx, m.connectivityURL); err != nil {
			if ctx.Err() != nil {
				return
			}
			m.logger.WarnLog.Printf("Internet connectivity issue: %s", err.Error())
			m.apply(ctx, animation.Error)
			return
		}
	}

	name, err := m.source.Status(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		m.logger.ErrorLog.Printf("Failed to get status: %s", err.Error())
	}
	m.apply(ctx, name)
}

// Current returns the last animation the monitor switched to
func (m *Monitor) Current() string { return m.current }

func (m *Monitor) apply(ctx context.Context, name string) {
	if name == "" || name == m.current {
		return
	}
	if err := m.switcher.Switch(name); err != nil {
		if errors.Is(err, animation.ErrUnknownAnimation) {
			m.logger.ErrorLog.Printf("Status mapped to an animation that is not configured: %s", err.Error())
		} else {
			m.logger.ErrorLog.Printf("Failed to switch animation: %s", err.Error())
		}
		return
	}
	m.logger.InfoLog.Printf("Animation changed to: %s", name)
	previous := m.current
	m.current = name

	if m.notifier != nil {
		message := fmt.Sprintf("%s status lights changed to %s", m.nodeName, name)
		if previous != "" {
			message += " (was " + previous + ")"
		}
		if err := m.notifier.Notify(ctx, message); err != nil {
			m.logger.WarnLog.Printf("Failed to send notification: %s", err.Error())
		}
	}
}
