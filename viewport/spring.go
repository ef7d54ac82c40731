package viewport

import (
	"math"
	"time"
)

// SpringConfig holds the empirical constants of the WASD pan/zoom spring.
// spec.md §9 flags these as unspecified in the source and asks that they
// be configuration rather than hard-coded; DefaultSpringConfig is a
// reasonable starting point, not a mandated value.
type SpringConfig struct {
	// Acceleration applied per second of a held key, in viewport-fraction
	// units per second squared.
	Acceleration float64
	// Friction is the fraction of velocity retained per second of no
	// input (0 = stops instantly, 1 = never slows).
	Friction float64
	// StopThreshold is the velocity magnitude below which the spring
	// snaps to exactly zero instead of decaying asymptotically forever.
	StopThreshold float64
	// MaxVelocity caps how fast the spring can move the viewport,
	// regardless of how long a key has been held.
	MaxVelocity float64
}

// DefaultSpringConfig is tuned for a comfortable keyboard pan feel at
// typical frame rates; callers needing a different feel should construct
// their own SpringConfig rather than edit this one.
var DefaultSpringConfig = SpringConfig{
	Acceleration: 3.0,
	// 0.85 retained per 1/60 s frame, expressed per second.
	Friction:      math.Pow(0.85, 60),
	StopThreshold: 0.0005,
	MaxVelocity:   1.5,
}

// Spring integrates acceleration toward a target direction into a
// velocity, then decays it with friction — the cosmetic smoothing layer
// on top of Viewport.ScrollBy/ZoomAt that spec.md §4.5 describes for WASD
// input. It holds no timer of its own: the host calls Tick once per
// frame with the elapsed time and which directions are currently held.
type Spring struct {
	Config SpringConfig

	velocityX float64
	velocityY float64
	lastTick  time.Time
	hasTick   bool
}

// NewSpring returns a Spring using cfg.
func NewSpring(cfg SpringConfig) *Spring {
	return &Spring{Config: cfg}
}

// Tick advances the spring by the time elapsed since the previous Tick
// call (zero on the first call), given which pan directions are
// currently held, and returns the fractional (dx, dy) to apply this
// frame. dx/dy are in the same units as Viewport.Start/End.
func (s *Spring) Tick(now time.Time, panX, panY float64) (dx, dy float64) {
	var dt float64
	if s.hasTick {
		dt = now.Sub(s.lastTick).Seconds()
	}
	s.lastTick = now
	s.hasTick = true
	if dt <= 0 {
		return 0, 0
	}

	cfg := s.Config
	s.velocityX += panX * cfg.Acceleration * dt
	s.velocityY += panY * cfg.Acceleration * dt

	decay := math.Pow(cfg.Friction, dt)
	s.velocityX *= decay
	s.velocityY *= decay

	s.velocityX = clampAbs(s.velocityX, cfg.MaxVelocity)
	s.velocityY = clampAbs(s.velocityY, cfg.MaxVelocity)

	if math.Abs(s.velocityX) < cfg.StopThreshold {
		s.velocityX = 0
	}
	if math.Abs(s.velocityY) < cfg.StopThreshold {
		s.velocityY = 0
	}

	return s.velocityX * dt, s.velocityY * dt
}

// Idle reports whether the spring has decayed to a full stop.
func (s *Spring) Idle() bool {
	return s.velocityX == 0 && s.velocityY == 0
}

func clampAbs(x, max float64) float64 {
	if x > max {
		return max
	}
	if x < -max {
		return -max
	}
	return x
}
