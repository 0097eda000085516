package animation

import (
	"errors"
	"fmt"
)

// Preset animation names
const (
	Starting = "starting"
	Flashing = "flashing"
	Finish   = "finish"
	Off      = "off"
	On       = "on"
	Error    = "error"
)

// ErrUnknownAnimation is returned when a name is not in the catalog
var ErrUnknownAnimation = errors.New("unknown animation")

// Template is a read-only blueprint for an Animation
type Template struct {
	name     string
	channels []Pattern
}

// NewTemplate builds a template from one pattern (used for both channels) or two
func NewTemplate(name string, channels ...Pattern) (Template, error) {
	if name == "" {
		return Template{}, fmt.Errorf("template name cannot be empty")
	}
	if len(channels) < 1 || len(channels) > 2 {
		return Template{}, fmt.Errorf("%s: expected 1 or 2 channel patterns, got %d", name, len(channels))
	}
	for i, p := range channels {
		if p.Len() == 0 {
			return Template{}, fmt.Errorf("%s: channel %d has an empty pattern", name, i)
		}
	}
	cp := make([]Pattern, len(channels))
	copy(cp, channels)
	return Template{name: name, channels: cp}, nil
}

func mustTemplate(name string, channels ...Pattern) Template {
	t, err := NewTemplate(name, channels...)
	if err != nil {
		panic(err)
	}
	return t
}

func (t Template) Name() string { return t.name }

// Channels returns the number of distinct channel patterns (1 or 2)
func (t Template) Channels() int { return len(t.channels) }

// Instantiate creates a fresh animation with its own cursors, reset for rate
func (t Template) Instantiate(rate float64) *Animation {
	a := NewSequence(t.channels[0], rate)
	var b *Sequence
	if len(t.channels) == 2 {
		b = NewSequence(t.channels[1], rate)
	}
	return NewAnimation(t.name, a, b)
}

// Catalog is an immutable set of named templates
type Catalog struct {
	templates map[string]Template
	order     []string
}

// NewCatalog indexes templates by name. Duplicate names are rejected.
func NewCatalog(templates ...Template) (*Catalog, error) {
	c := &Catalog{templates: make(map[string]Template, len(templates))}
	for _, t := range templates {
		if t.name == "" || len(t.channels) == 0 {
			return nil, fmt.Errorf("catalog entry is not a valid template")
		}
		if _, exists := c.templates[t.name]; exists {
			return nil, fmt.Errorf("duplicate animation: %s", t.name)
		}
		c.templates[t.name] = t
		c.order = append(c.order, t.name)
	}
	return c, nil
}

// Lookup returns the template registered under name
func (c *Catalog) Lookup(name string) (Template, bool) {
	t, ok := c.templates[name]
	return t, ok
}

// Names lists animation names in registration order
func (c *Catalog) Names() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

func (c *Catalog) Len() int { return len(c.order) }

// With returns a new catalog where templates are added, replacing any entry of
// the same name in place. The receiver is left unchanged.
func (c *Catalog) With(templates ...Template) (*Catalog, error) {
	merged := make([]Template, 0, len(c.order)+len(templates))
	override := make(map[string]Template, len(templates))
	for _, t := range templates {
		if _, dup := override[t.name]; dup {
			return nil, fmt.Errorf("duplicate animation: %s", t.name)
		}
		override[t.name] = t
	}
	for _, name := range c.order {
		if t, ok := override[name]; ok {
			merged = append(merged, t)
			delete(override, name)
			continue
		}
		merged = append(merged, c.templates[name])
	}
	for _, t := range templates {
		if _, pending := override[t.name]; pending {
			merged = append(merged, t)
		}
	}
	return NewCatalog(merged...)
}

// DefaultCatalog returns the stock animations. Durations are in seconds.
func DefaultCatalog() *Catalog {
	ramp := make([]int, 0, 50)
	for v := 0; v < 25; v++ {
		ramp = append(ramp, v)
	}
	for v := 25; v > 0; v-- {
		ramp = append(ramp, v)
	}
	rampDurations := make([]float64, len(ramp))
	for i := range rampDurations {
		rampDurations[i] = 0.04
	}

	c, err := NewCatalog(
		mustTemplate(Starting,
			MustPattern("starting_left", []int{10, 0}, []float64{0.5, 0.5}, true, Seconds),
			MustPattern("starting_right", []int{0, 10}, []float64{0.5, 0.5}, true, Seconds),
		),
		mustTemplate(Flashing, MustPattern(Flashing, ramp, rampDurations, true, Seconds)),
		mustTemplate(Finish, MustPattern(Finish, []int{10, 0, 10, 0}, []float64{0.1, 0.1, 0.1, 0.7}, false, Seconds)),
		mustTemplate(Off, MustPattern(Off, []int{0}, []float64{1}, true, Seconds)),
		mustTemplate(On, MustPattern(On, []int{10}, []float64{1}, true, Seconds)),
		mustTemplate(Error, MustPattern(Error, []int{5}, []float64{1}, true, Seconds)),
	)
	if err != nil {
		panic(err)
	}
	return c
}
