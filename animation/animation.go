package animation

// Animation drives both LED channels in lockstep
type Animation struct {
	name string
	a    *Sequence
	b    *Sequence
}

// NewAnimation pairs two sequences. When b is nil the second channel gets its
// own copy of a, so both channels animate identically but never share a cursor.
func NewAnimation(name string, a, b *Sequence) *Animation {
	if b == nil {
		b = a.Clone()
	}
	return &Animation{name: name, a: a, b: b}
}

func (an *Animation) Name() string { return an.name }

// Reset rewinds both channels
func (an *Animation) Reset(rate float64) {
	an.a.Reset(rate)
	an.b.Reset(rate)
}

// Step advances both channels by one tick. An ended channel reads 0.
func (an *Animation) Step() (int, int) {
	v1, _ := an.a.Step()
	v2, _ := an.b.Step()
	return max(v1, 0), max(v2, 0)
}

// Done reports whether both channels have finished
func (an *Animation) Done() bool {
	return an.a.Ended() && an.b.Ended()
}

func (an *Animation) Clone() *Animation {
	return &Animation{name: an.name, a: an.a.Clone(), b: an.b.Clone()}
}
