// SPDX-License-Identifier: Unlicense OR MIT

// Package f32color provides small color transforms used when dimming spans
// that fall outside a search match.
package f32color

import "github.com/proftrace/proftrace/color"

// MulAlpha scales the alpha channel by the given factor, clamped to [0, 1].
func MulAlpha(c color.Oklch, factor float32) color.Oklch {
	c.A *= factor
	if c.A < 0 {
		c.A = 0
	} else if c.A > 1 {
		c.A = 1
	}
	return c
}

// Dimmed desaturates c towards gray and lowers its alpha. Used to recolor
// spans that don't match the active search query (spec: non-matches lose
// saturation and borders).
func Dimmed(c color.Oklch) color.Oklch {
	const blend = 0.35 // how much of the original chroma survives
	d := mix(c, color.Oklch{L: c.L, C: 0, H: c.H, A: c.A}, blend)
	return MulAlpha(d, 0.6)
}

// mix blends c1 and c2, weighted by a and (1-a) respectively.
func mix(c1, c2 color.Oklch, a float32) color.Oklch {
	return color.Oklch{
		L: c1.L*a + c2.L*(1-a),
		C: c1.C*a + c2.C*(1-a),
		H: c1.H*a + c2.H*(1-a),
		A: c1.A*a + c2.A*(1-a),
	}
}
