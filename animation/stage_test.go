package animation

import (
	"reflect"
	"testing"
)

type stepResult struct {
	value int
	ok    bool
}

func stepN(s *Sequence, n int) []stepResult {
	out := make([]stepResult, n)
	for i := range out {
		v, ok := s.Step()
		out[i] = stepResult{v, ok}
	}
	return out
}

func TestSequenceStep(t *testing.T) {
	tests := []struct {
		name       string
		brightness []int
		durations  []float64
		loop       bool
		want       []stepResult
	}{
		{
			name:       "looping two stages",
			brightness: []int{10, 0},
			durations:  []float64{2, 2},
			loop:       true,
			want: []stepResult{
				{10, true}, {10, true}, {0, true}, {0, true},
				{10, true}, {10, true}, {0, true}, {0, true},
			},
		},
		{
			name:       "finite sequence ends",
			brightness: []int{0, 10},
			durations:  []float64{1, 1},
			loop:       false,
			want:       []stepResult{{0, true}, {10, true}, {0, false}, {0, false}},
		},
		{
			name:       "single stage loop holds forever",
			brightness: []int{7},
			durations:  []float64{3},
			loop:       true,
			want: []stepResult{
				{7, true}, {7, true}, {7, true}, {7, true}, {7, true}, {7, true}, {7, true},
			},
		},
		{
			name:       "uneven stages",
			brightness: []int{1, 2, 3},
			durations:  []float64{1, 3, 2},
			loop:       true,
			want: []stepResult{
				{1, true}, {2, true}, {2, true}, {2, true}, {3, true}, {3, true}, {1, true},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPattern(tt.name, tt.brightness, tt.durations, tt.loop, Ticks)
			if err != nil {
				t.Fatalf("NewPattern() error = %v", err)
			}
			got := stepN(NewSequence(p, 100), len(tt.want))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Step() sequence = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSequenceFiniteEndsAfterTotalTicks(t *testing.T) {
	p := MustPattern("finite", []int{3, 7, 1}, []float64{2, 3, 1}, false, Ticks)
	s := NewSequence(p, 50)

	total := p.Ticks(50)
	if total != 6 {
		t.Fatalf("Ticks() = %d, want 6", total)
	}

	for i := 0; i < total; i++ {
		if _, ok := s.Step(); !ok {
			t.Fatalf("step %d ended early", i)
		}
	}
	for i := 0; i < 20; i++ {
		if v, ok := s.Step(); ok || v != 0 {
			t.Fatalf("step after end = (%d, %v), want (0, false)", v, ok)
		}
	}
	if !s.Ended() {
		t.Error("Ended() = false after running past the last stage")
	}
}

func TestSequenceLoopRepeatsAfterTotalTicks(t *testing.T) {
	p := MustPattern("loop", []int{4, 9, 0, 2}, []float64{3, 1, 2, 5}, true, Ticks)
	s := NewSequence(p, 10)
	total := p.Ticks(10)

	first := stepN(s, total)
	second := stepN(s, total)
	third := stepN(s, total)

	if !reflect.DeepEqual(first, second) || !reflect.DeepEqual(second, third) {
		t.Errorf("looping pattern did not repeat:\n%v\n%v\n%v", first, second, third)
	}
	if s.index != 3 || s.emitted != 5 {
		t.Errorf("cursor after full passes = (%d, %d), want (3, 5)", s.index, s.emitted)
	}
	if v, _ := s.Step(); v != 4 {
		t.Errorf("first step of next pass = %d, want 4", v)
	}
}

func TestSequenceSecondsUnit(t *testing.T) {
	p := MustPattern("seconds", []int{1, 2}, []float64{0.5, 0.25}, true, Seconds)
	s := NewSequence(p, 8)

	want := []stepResult{{1, true}, {1, true}, {1, true}, {1, true}, {2, true}, {2, true}, {1, true}}
	if got := stepN(s, len(want)); !reflect.DeepEqual(got, want) {
		t.Errorf("Step() sequence = %v, want %v", got, want)
	}

	// the same pattern at a different rate changes stage lengths
	s.Reset(4)
	want = []stepResult{{1, true}, {1, true}, {2, true}, {1, true}}
	if got := stepN(s, len(want)); !reflect.DeepEqual(got, want) {
		t.Errorf("Step() after Reset(4) = %v, want %v", got, want)
	}
}

func TestSequenceShortStageLastsOneTick(t *testing.T) {
	p := MustPattern("blip", []int{9, 0}, []float64{0.001, 0.02}, false, Seconds)
	s := NewSequence(p, 100)

	want := []stepResult{{9, true}, {0, true}, {0, true}, {0, false}}
	if got := stepN(s, len(want)); !reflect.DeepEqual(got, want) {
		t.Errorf("Step() sequence = %v, want %v", got, want)
	}
}

func TestFramesAbsorbFloatError(t *testing.T) {
	p := MustPattern("finish", []int{10, 0, 10, 0}, []float64{0.1, 0.1, 0.1, 0.7}, false, Seconds)
	if got := p.frames(100); !reflect.DeepEqual(got, []int{10, 10, 10, 70}) {
		t.Errorf("frames(100) = %v, want [10 10 10 70]", got)
	}
	if got := p.Ticks(100); got != 100 {
		t.Errorf("Ticks(100) = %d, want 100", got)
	}
}

func TestFramesDifferFromTruncation(t *testing.T) {
	tests := []struct {
		seconds float64
		want    int
	}{
		{0.29, 29},
		{0.57, 57},
		{0.295, 29},
		{0.004, 1},
	}

	for _, tt := range tests {
		p := MustPattern("t", []int{10}, []float64{tt.seconds}, false, Seconds)
		if got := p.frames(100); got[0] != tt.want {
			t.Errorf("frames(100) for %vs = %d, want %d", tt.seconds, got[0], tt.want)
		}
	}
	seconds, rate := 0.29, 100.0
	if got := int(seconds * rate); got != 28 {
		t.Fatalf("plain truncation of 0.29*100 = %d, expected 28", got)
	}
}

func TestSequenceReset(t *testing.T) {
	p := MustPattern("finite", []int{5, 6}, []float64{1, 1}, false, Ticks)
	s := NewSequence(p, 1)
	stepN(s, 5)
	if !s.Ended() {
		t.Fatal("expected sequence to have ended")
	}

	s.Reset(1)
	want := []stepResult{{5, true}, {6, true}, {0, false}}
	if got := stepN(s, len(want)); !reflect.DeepEqual(got, want) {
		t.Errorf("Step() after Reset = %v, want %v", got, want)
	}
}

func TestSequenceCloneIsIndependent(t *testing.T) {
	p := MustPattern("clone", []int{1, 2, 3}, []float64{1, 1, 1}, true, Ticks)
	s := NewSequence(p, 1)
	s.Step()

	c := s.Clone()
	stepN(s, 2)

	if v, _ := c.Step(); v != 2 {
		t.Errorf("clone Step() = %d, want 2", v)
	}
	c.frames[0] = 99
	if s.frames[0] != 1 {
		t.Error("clone shares frame storage with the original")
	}
}

func TestNewPatternErrors(t *testing.T) {
	tests := []struct {
		name       string
		brightness []int
		durations  []float64
	}{
		{"length mismatch", []int{1, 2}, []float64{1}},
		{"no stages", nil, nil},
		{"negative brightness", []int{-1}, []float64{1}},
		{"zero duration", []int{1}, []float64{0}},
		{"negative duration", []int{1, 2}, []float64{1, -0.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewPattern(tt.name, tt.brightness, tt.durations, true, Seconds); err == nil {
				t.Errorf("NewPattern() error = nil, want error")
			}
		})
	}
}

func TestPatternStagesIsACopy(t *testing.T) {
	p := MustPattern("copy", []int{1, 2}, []float64{1, 1}, true, Ticks)
	stages := p.Stages()
	stages[0].Brightness = 50

	if got := p.Stages()[0].Brightness; got != 1 {
		t.Errorf("pattern mutated through Stages(): brightness = %d", got)
	}
}

func TestParseUnit(t *testing.T) {
	tests := []struct {
		in      string
		want    Unit
		wantErr bool
	}{
		{"", Seconds, false},
		{"seconds", Seconds, false},
		{"Ticks", Ticks, false},
		{" frames ", Ticks, false},
		{"minutes", Seconds, true},
	}

	for _, tt := range tests {
		got, err := ParseUnit(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseUnit(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseUnit(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
