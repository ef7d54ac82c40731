package viewport

import (
	"testing"
	"time"
)

func TestZoomAtFocal(t *testing.T) {
	v := New()
	v.ZoomAt(2, 500, 1000)
	if v.Start != 0.25 || v.End != 0.75 {
		t.Fatalf("viewport = [%g,%g], want [0.25,0.75]", v.Start, v.End)
	}
}

func TestZoomAtRoundTrip(t *testing.T) {
	v := New()
	v.ZoomAt(2, 500, 1000)
	v.ZoomAt(0.5, 500, 1000)
	if d := v.Start - 0; d > 1e-9 || d < -1e-9 {
		t.Fatalf("Start = %g, want ~0", v.Start)
	}
	if d := v.End - 1; d > 1e-9 || d < -1e-9 {
		t.Fatalf("End = %g, want ~1", v.End)
	}
}

func TestHistoryPushBackForward(t *testing.T) {
	v := New()
	v.PushHistory()
	v.Start, v.End = 0.6, 0.8

	pre := Window{v.Start, v.End}
	v.PushHistory()
	v.Start, v.End = 0.1, 0.2

	if !v.Back() {
		t.Fatal("Back() = false, want true")
	}
	if v.Start != pre.Start || v.End != pre.End {
		t.Fatalf("after Back, viewport = [%g,%g], want [%g,%g]", v.Start, v.End, pre.Start, pre.End)
	}
	if !v.Forward() {
		t.Fatal("Forward() = false, want true")
	}
	if v.Start != 0.1 || v.End != 0.2 {
		t.Fatalf("after Forward, viewport = [%g,%g], want [0.1,0.2]", v.Start, v.End)
	}
}

func TestResetZoomPushesHistory(t *testing.T) {
	v := New()
	v.Start, v.End = 0.6, 0.8
	v.ResetZoom()
	if v.Start != 0 || v.End != 1 {
		t.Fatalf("viewport = [%g,%g], want [0,1]", v.Start, v.End)
	}
	if !v.Back() {
		t.Fatal("expected ResetZoom to have pushed history")
	}
	if v.Start != 0.6 || v.End != 0.8 {
		t.Fatalf("after Back, viewport = [%g,%g], want [0.6,0.8]", v.Start, v.End)
	}
}

func TestAnimateToReachesTarget(t *testing.T) {
	v := New()
	now := time.Unix(0, 0)
	v.AnimateTo(now, 0.25, 0.75, 100*time.Millisecond)
	v.Tick(now.Add(200 * time.Millisecond))
	if v.Start != 0.25 || v.End != 0.75 {
		t.Fatalf("viewport = [%g,%g], want [0.25,0.75]", v.Start, v.End)
	}
}

func TestSpringDecaysToZero(t *testing.T) {
	s := NewSpring(DefaultSpringConfig)
	now := time.Unix(0, 0)
	s.Tick(now, 0, 0) // prime lastTick
	s.Tick(now.Add(16*time.Millisecond), 1, 0)
	for i := 0; i < 500; i++ {
		now = now.Add(16 * time.Millisecond)
		s.Tick(now, 0, 0)
	}
	if !s.Idle() {
		t.Fatal("expected spring to decay to idle after releasing input")
	}
}
