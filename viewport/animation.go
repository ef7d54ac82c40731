// Package viewport holds the shared [0,1] time window and its zoom/pan/
// history state, plus the generic Tick-driven animation primitive used to
// smoothly interpolate between viewport states.
package viewport

import (
	"fmt"
	"math"
	"time"

	"golang.org/x/exp/constraints"
	"honnef.co/go/stuff/math/mathutil"
)

// EasingFunction maps a progress ratio in [0,1] to an eased ratio in [0,1].
type EasingFunction func(float64) float64

// LerpFunction interpolates between start and end at ratio r ∈ [0,1].
type LerpFunction[T any] func(start, end T, r float64) T

// Lerper lets a value supply its own interpolation, for types Animation
// doesn't know how to lerp generically.
type Lerper[T any] interface {
	Lerp(end T, ratio float64) T
}

// Animation advances a value from StartValue to EndValue over Duration,
// eased by Ease. Unlike a callback-driven animation, it has no timer of its
// own: the host calls Tick with the current time on every frame and reads
// Value. This satisfies the "no callback closures on the viewer" rule —
// the host supplies ticks, the animation only computes.
type Animation[T any] struct {
	StartValue T
	EndValue   T
	StartTime  time.Time
	Duration   time.Duration
	Ease       EasingFunction
	Lerp       LerpFunction[T]

	active bool
}

// Start begins an animation from v1 to v2, anchored at now.
func (anim *Animation[T]) Start(now time.Time, v1, v2 T, d time.Duration, ease EasingFunction) {
	anim.StartValue = v1
	anim.EndValue = v2
	anim.StartTime = now
	anim.Duration = d
	anim.Ease = ease
	anim.active = true
}

// StartSimple begins an animation over a built-in numeric type, using the
// default linear-interpolation helper.
func StartSimple[T constraints.Integer | constraints.Float](anim *Animation[T], now time.Time, v1, v2 T, d time.Duration, ease EasingFunction) {
	anim.Start(now, v1, v2, d, ease)
	anim.Lerp = mathutil.Lerp
}

// Tick reports the animation's current value as of now, deactivating it
// once Duration has elapsed.
func (anim *Animation[T]) Tick(now time.Time) T {
	if !anim.active {
		return anim.EndValue
	}

	d := now.Sub(anim.StartTime)
	if d >= anim.Duration {
		anim.active = false
		return anim.EndValue
	}

	ratio := anim.Ease(float64(d) / float64(anim.Duration))

	if anim.Lerp == nil {
		if lerper, ok := any(anim.StartValue).(Lerper[T]); ok {
			return lerper.Lerp(anim.EndValue, ratio)
		}
		panic(fmt.Sprintf("Animation.Lerp is nil and %T doesn't implement Lerper", anim.StartValue))
	}

	return anim.Lerp(anim.StartValue, anim.EndValue, ratio)
}

// Cancel stops the animation; subsequent Tick calls return EndValue.
func (anim *Animation[T]) Cancel() {
	anim.active = false
}

// Done reports whether the animation has finished or was cancelled.
func (anim *Animation[T]) Done() bool {
	return !anim.active
}

// Active reports whether the animation is currently running.
func (anim *Animation[T]) Active() bool {
	return anim.active
}

// EaseIn returns a power-N ease-in curve.
func EaseIn(power int) EasingFunction {
	switch power {
	case 1:
		return func(r float64) float64 { return r }
	case 2:
		return func(r float64) float64 { return r * r }
	case 3:
		return func(r float64) float64 { return r * r * r }
	case 4:
		return func(r float64) float64 { return r * r * r * r }
	default:
		return func(r float64) float64 { return math.Pow(r, float64(power)) }
	}
}

// EaseOut returns a power-N ease-out curve. Used for animateTo per the
// spec's "cubic ease-out interpolation" (power 3).
func EaseOut(power int) EasingFunction {
	switch power {
	case 1:
		return func(r float64) float64 { return r }
	case 2:
		return func(r float64) float64 { r = 1 - r; return 1 - r*r }
	case 3:
		return func(r float64) float64 { r = 1 - r; return 1 - r*r*r }
	case 4:
		return func(r float64) float64 { r = 1 - r; return 1 - r*r*r*r }
	default:
		return func(r float64) float64 { return 1 - math.Pow(1-r, float64(power)) }
	}
}

// EaseBezier is a smoothstep-style ease, kept for parity with the teacher's
// curve set; unused by the viewport itself but available to hosts that want
// a different feel for custom animations.
func EaseBezier(t float64) float64 {
	return t * t * (3.0 - 2.0*t)
}
