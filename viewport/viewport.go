package viewport

import (
	"time"
)

const (
	minSpan = 0.0001
	maxSpan = 1.0

	historyLimit = 64
)

// Viewport is the shared fractional time window [Start,End] ⊂ [0,1] every
// view transform reads, plus its zoom-history breadcrumbs. Start, End and
// ScrollY are the only fields a lane's rendering needs beyond the model
// itself.
type Viewport struct {
	Start, End float64
	ScrollY    float64

	back    []Window
	forward []Window

	anim Animation[Window]
}

// Window is a point-in-time viewport state, used by the history stacks
// and by animateTo's start/end values.
type Window struct {
	Start, End float64
}

// Lerp interpolates linearly between two windows; Animation uses this via
// the Lerper interface since Window isn't one of constraints.Float.
func (w Window) Lerp(end Window, ratio float64) Window {
	return Window{
		Start: w.Start + (end.Start-w.Start)*ratio,
		End:   w.End + (end.End-w.End)*ratio,
	}
}

// New returns a Viewport showing the full [0,1] range.
func New() *Viewport {
	return &Viewport{Start: 0, End: 1}
}

// Span returns End-Start.
func (v *Viewport) Span() float64 {
	return v.End - v.Start
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// ScrollBy pans the viewport by dxPixels against a canvas canvasWidth
// pixels wide, clamping so Start stays within [0, 1-span].
func (v *Viewport) ScrollBy(dxPixels, canvasWidth float64) {
	if canvasWidth <= 0 {
		return
	}
	span := v.Span()
	delta := (dxPixels / canvasWidth) * span
	v.Start = clamp(v.Start+delta, 0, 1-span)
	v.End = v.Start + span
}

// ZoomAt rescales the viewport by factor, keeping the point under focalPx
// stationary on a canvas canvasWidth pixels wide.
func (v *Viewport) ZoomAt(factor, focalPx, canvasWidth float64) {
	if canvasWidth <= 0 || factor <= 0 {
		return
	}
	span := v.Span()
	focalFrac := focalPx / canvasWidth
	focalTime := v.Start + focalFrac*span

	newSpan := clamp(span/factor, minSpan, maxSpan)
	newStart := clamp(focalTime-focalFrac*newSpan, 0, 1-newSpan)

	v.Start = newStart
	v.End = newStart + newSpan
}

// AnimateTo begins a cubic ease-out transition to the given window,
// cancelling any animation already in flight. Tick must be called every
// frame to advance it.
func (v *Viewport) AnimateTo(now time.Time, targetStart, targetEnd float64, duration time.Duration) {
	v.anim.Start(now, Window{v.Start, v.End}, Window{targetStart, targetEnd}, duration, EaseOut(3))
}

// Tick advances any in-flight animation and applies its current value to
// Start/End. Returns whether an animation is still active, so the host
// knows whether to keep invalidating.
func (v *Viewport) Tick(now time.Time) bool {
	if v.anim.Done() {
		return false
	}
	w := v.anim.Tick(now)
	v.Start, v.End = w.Start, w.End
	return v.anim.Active()
}

// CancelAnimation stops any in-flight animation, as happens on an
// explicit viewport mutation or history navigation (spec.md §5).
func (v *Viewport) CancelAnimation() {
	v.anim.Cancel()
}

// PushHistory records the current window on the back stack, truncating
// any forward stack (a push after a Back discards redo history).
func (v *Viewport) PushHistory() {
	v.back = append(v.back, Window{v.Start, v.End})
	if len(v.back) > historyLimit {
		v.back = v.back[len(v.back)-historyLimit:]
	}
	v.forward = nil
}

// Back restores the most recently pushed window, pushing the current one
// onto the forward stack. No-op if the back stack is empty.
func (v *Viewport) Back() bool {
	if len(v.back) == 0 {
		return false
	}
	cur := Window{v.Start, v.End}
	prev := v.back[len(v.back)-1]
	v.back = v.back[:len(v.back)-1]
	v.forward = append(v.forward, cur)
	v.Start, v.End = prev.Start, prev.End
	return true
}

// Forward replays the most recently undone window. No-op if the forward
// stack is empty.
func (v *Viewport) Forward() bool {
	if len(v.forward) == 0 {
		return false
	}
	cur := Window{v.Start, v.End}
	next := v.forward[len(v.forward)-1]
	v.forward = v.forward[:len(v.forward)-1]
	v.back = append(v.back, cur)
	v.Start, v.End = next.Start, next.End
	return true
}

// ResetZoom pushes the current window to history and resets to [0,1].
func (v *Viewport) ResetZoom() {
	v.PushHistory()
	v.Start, v.End = 0, 1
}
