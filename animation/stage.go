package animation

import (
	"fmt"
	"math"
	"strings"
)

// frameEpsilon absorbs float error so 0.7s at 100Hz is 70 ticks, not 69
const frameEpsilon = 1e-9

// Unit describes how stage durations are expressed
type Unit int

const (
	// Seconds durations are multiplied by the tick rate and truncated
	Seconds Unit = iota
	// Ticks durations are already raw tick counts
	Ticks
)

func (u Unit) String() string {
	switch u {
	case Ticks:
		return "ticks"
	default:
		return "seconds"
	}
}

// ParseUnit converts a configuration string into a Unit. An empty string means Seconds.
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "seconds", "s":
		return Seconds, nil
	case "ticks", "frames":
		return Ticks, nil
	default:
		return Seconds, fmt.Errorf("unsupported duration unit: %s", s)
	}
}

// Stage holds a constant brightness for a duration
type Stage struct {
	Brightness int
	Duration   float64
}

// Pattern is the immutable definition of a single channel animation
type Pattern struct {
	name   string
	stages []Stage
	loop   bool
	unit   Unit
}

// NewPattern builds a Pattern from parallel brightness and duration lists
func NewPattern(name string, brightness []int, durations []float64, loop bool, unit Unit) (Pattern, error) {
	if len(brightness) != len(durations) {
		return Pattern{}, fmt.Errorf("%s: %d stages but %d durations", name, len(brightness), len(durations))
	}
	if len(brightness) == 0 {
		return Pattern{}, fmt.Errorf("%s: pattern has no stages", name)
	}

	stages := make([]Stage, len(brightness))
	for i := range brightness {
		if brightness[i] < 0 {
			return Pattern{}, fmt.Errorf("%s: stage %d has negative brightness %d", name, i, brightness[i])
		}
		if !(durations[i] > 0) {
			return Pattern{}, fmt.Errorf("%s: stage %d has non-positive duration %v", name, i, durations[i])
		}
		stages[i] = Stage{Brightness: brightness[i], Duration: durations[i]}
	}

	return Pattern{name: name, stages: stages, loop: loop, unit: unit}, nil
}

// MustPattern is NewPattern for static presets; it panics on a malformed definition
func MustPattern(name string, brightness []int, durations []float64, loop bool, unit Unit) Pattern {
	p, err := NewPattern(name, brightness, durations, loop, unit)
	if err != nil {
		panic(err)
	}
	return p
}

func (p Pattern) Name() string { return p.name }
func (p Pattern) Loop() bool   { return p.loop }
func (p Pattern) Unit() Unit   { return p.unit }
func (p Pattern) Len() int     { return len(p.stages) }

// Stages returns a copy of the stage list
func (p Pattern) Stages() []Stage {
	out := make([]Stage, len(p.stages))
	copy(out, p.stages)
	return out
}

// frames converts every stage duration into a whole number of ticks.
// Stages shorter than one tick are held for exactly one tick.
//
// The tick count is floor(duration*rate + frameEpsilon), which is not the
// same as truncating with int(duration*rate): a product that lands just
// below a whole number rounds up to it. 0.29s at 100Hz is 28.999999999999996
// and yields 29 ticks here, where plain truncation would give 28.
func (p Pattern) frames(rate float64) []int {
	frames := make([]int, len(p.stages))
	for i, st := range p.stages {
		d := st.Duration
		if p.unit == Seconds {
			d *= rate
		}
		frames[i] = int(math.Floor(d + frameEpsilon))
		if frames[i] < 1 {
			frames[i] = 1
		}
	}
	return frames
}

// Ticks returns the number of ticks one pass over the pattern takes at rate
func (p Pattern) Ticks(rate float64) int {
	total := 0
	for _, f := range p.frames(rate) {
		total += f
	}
	return total
}

// Sequence steps through a Pattern one tick at a time. It owns its cursor;
// the pattern itself is shared read-only.
type Sequence struct {
	pattern Pattern
	frames  []int
	index   int
	emitted int
	ended   bool
}

// NewSequence creates a cursor over p, reset for the given tick rate
func NewSequence(p Pattern, rate float64) *Sequence {
	s := &Sequence{pattern: p}
	s.Reset(rate)
	return s
}

// Reset recomputes stage lengths for rate and rewinds to the first stage
func (s *Sequence) Reset(rate float64) {
	s.frames = s.pattern.frames(rate)
	s.index = 0
	s.emitted = 0
	s.ended = false
}

// Step advances one tick. ok is false once a non-looping pattern has ended.
func (s *Sequence) Step() (brightness int, ok bool) {
	if s.ended {
		return 0, false
	}

	if s.emitted < s.frames[s.index] {
		s.emitted++
		return s.pattern.stages[s.index].Brightness, true
	}

	// entering the next stage counts as its first tick
	s.index++
	s.emitted = 1

	if s.pattern.loop {
		s.index %= len(s.frames)
	} else if s.index >= len(s.frames) {
		s.ended = true
		return 0, false
	}

	return s.pattern.stages[s.index].Brightness, true
}

// Ended reports whether a non-looping sequence has run past its last stage
func (s *Sequence) Ended() bool { return s.ended }

func (s *Sequence) Pattern() Pattern { return s.pattern }

// Clone returns an independent copy including the current cursor position
func (s *Sequence) Clone() *Sequence {
	c := *s
	c.frames = make([]int, len(s.frames))
	copy(c.frames, s.frames)
	return &c
}
