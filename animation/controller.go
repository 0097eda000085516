package animation

import (
	"fmt"
	"sync"
)

// Controller owns the active animation. Switch and Next may be called from
// different goroutines.
type Controller struct {
	mu      sync.Mutex
	catalog *Catalog
	rate    float64
	active  *Animation
}

// NewController starts with the initial animation active
func NewController(catalog *Catalog, rate float64, initial string) (*Controller, error) {
	if catalog == nil {
		return nil, fmt.Errorf("catalog cannot be nil")
	}
	if rate <= 0 {
		return nil, fmt.Errorf("tick rate must be positive, got %v", rate)
	}
	t, ok := catalog.Lookup(initial)
	if !ok {
		return nil, fmt.Errorf("initial animation: %w: %q", ErrUnknownAnimation, initial)
	}
	return &Controller{
		catalog: catalog,
		rate:    rate,
		active:  t.Instantiate(rate),
	}, nil
}

// Switch replaces the active animation with a fresh instance of name, starting
// at its first stage. An unknown name leaves the active animation running.
func (c *Controller) Switch(name string) error {
	t, ok := c.catalog.Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAnimation, name)
	}
	// the catalog is immutable, so building the instance needs no lock
	next := t.Instantiate(c.rate)

	c.mu.Lock()
	c.active = next
	c.mu.Unlock()
	return nil
}

// Next returns the brightness of both channels for the next tick
func (c *Controller) Next() (int, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active.Step()
}

// Active returns the name of the running animation
func (c *Controller) Active() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active.Name()
}

// Finished reports whether a non-looping animation has completed on both channels
func (c *Controller) Finished() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active.Done()
}

func (c *Controller) Rate() float64 { return c.rate }

func (c *Controller) Names() []string { return c.catalog.Names() }
