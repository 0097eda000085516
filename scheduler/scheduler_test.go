package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"status-leds/animation"
	"status-leds/types"
)

type recordingLight struct {
	mu      sync.Mutex
	frames  [][2]int
	cleared int
	failSet error
}

func (l *recordingLight) Set(led1, led2 int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.frames = append(l.frames, [2]int{led1, led2})
	return l.failSet
}

func (l *recordingLight) Clear() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cleared++
	l.frames = append(l.frames, [2]int{0, 0})
	return nil
}

func (l *recordingLight) Close() error { return nil }

func (l *recordingLight) snapshot() ([][2]int, int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([][2]int, len(l.frames))
	copy(out, l.frames)
	return out, l.cleared
}

func TestInterval(t *testing.T) {
	tests := []struct {
		rate float64
		want time.Duration
	}{
		{100, 10 * time.Millisecond},
		{1, time.Second},
		{0.5, 2 * time.Second},
		{0, 0},
	}
	for _, tt := range tests {
		if got := Interval(tt.rate); got != tt.want {
			t.Errorf("Interval(%v) = %s, want %s", tt.rate, got, tt.want)
		}
	}
}

func TestRunSendsFramesAndTurnsOff(t *testing.T) {
	ctrl, err := animation.NewController(animation.DefaultCatalog(), 1000, animation.On)
	if err != nil {
		t.Fatalf("NewController() error = %v", err)
	}
	light := &recordingLight{}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, ctrl, light, time.Millisecond, types.DiscardLogger())
	}()

	deadline := time.Now().Add(2 * time.Second)
	for {
		frames, _ := light.snapshot()
		if len(frames) >= 5 || time.Now().After(deadline) {
			break
		}
		time.Sleep(time.Millisecond)
	}
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run() did not stop after cancel")
	}

	frames, cleared := light.snapshot()
	if cleared != 1 {
		t.Errorf("Clear() called %d times, want 1", cleared)
	}
	if len(frames) < 6 {
		t.Fatalf("got %d frames, want at least 6", len(frames))
	}
	for i, f := range frames[:len(frames)-1] {
		if f != [2]int{10, 10} {
			t.Errorf("frame %d = %v, want [10 10]", i, f)
		}
	}
	if last := frames[len(frames)-1]; last != [2]int{0, 0} {
		t.Errorf("last frame = %v, want all off", last)
	}
}

func TestRunKeepsGoingOnWriteErrors(t *testing.T) {
	ctrl, err := animation.NewController(animation.DefaultCatalog(), 1000, animation.Error)
	if err != nil {
		t.Fatalf("NewController() error = %v", err)
	}
	light := &recordingLight{failSet: errors.New("port gone")}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	if err := Run(ctx, ctrl, light, time.Millisecond, types.DiscardLogger()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	frames, cleared := light.snapshot()
	if len(frames) < 3 {
		t.Errorf("got %d frames, want the loop to keep ticking", len(frames))
	}
	if cleared != 1 {
		t.Errorf("Clear() called %d times, want 1", cleared)
	}
}

func TestRunCancelledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	light := &recordingLight{}
	ctrl, _ := animation.NewController(animation.DefaultCatalog(), 100, animation.On)
	if err := Run(ctx, ctrl, light, 10*time.Millisecond, types.DiscardLogger()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	frames, cleared := light.snapshot()
	if len(frames) != 1 || cleared != 1 {
		t.Errorf("frames = %v, cleared = %d; want only the off frame", frames, cleared)
	}
}

func TestRunRejectsBadInterval(t *testing.T) {
	ctrl, _ := animation.NewController(animation.DefaultCatalog(), 100, animation.On)
	if err := Run(context.Background(), ctrl, &recordingLight{}, 0, types.DiscardLogger()); err == nil {
		t.Error("Run() with zero interval error = nil")
	}
}
