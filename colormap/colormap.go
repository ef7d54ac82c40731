// Package colormap chooses the fill theme.Token for a span: by a hash of
// its name, by its depth, or overridden by its category. Every mode cycles
// through a fixed small ramp so colors stay visually distinct without a
// full 256-entry palette.
package colormap

import (
	"github.com/cespare/xxhash/v2"

	"github.com/proftrace/proftrace/model"
	"github.com/proftrace/proftrace/theme"
)

// Mode selects how a span's fill token is derived.
type Mode uint8

const (
	ByName Mode = iota
	ByDepth
)

// ramp is the fixed 6-token cycle every mode indexes into. Using a
// six-entry ramp of the flame-graph tokens plus bar/async-span hues keeps
// adjacent spans visually distinguishable without needing per-symbol
// unique colors.
var ramp = [...]theme.Token{
	theme.FlameHot,
	theme.FlameWarm,
	theme.FlameCold,
	theme.FlameNeutral,
	theme.BarFill,
	theme.AsyncSpanFill,
}

// categoryOverrides maps well-known category strings straight to a
// token, bypassing the name/depth ramp. Unrecognized categories fall
// through to the active Mode.
var categoryOverrides = map[string]theme.Token{
	"gc":            theme.FrameWarning,
	"network":       theme.NetworkBar,
	"react-commit":  theme.FrameGood,
	"react-fiber":   theme.FlameCold,
}

// Resolve returns the fill token for span under mode, honoring a
// category override if span.Category matches one.
func Resolve(span *model.Span, mode Mode) theme.Token {
	if span.Category != "" {
		if tok, ok := categoryOverrides[span.Category]; ok {
			return tok
		}
	}
	switch mode {
	case ByDepth:
		return ramp[int(span.Depth)%len(ramp)]
	default: // ByName
		return ramp[NameHash(span.Name)%uint64(len(ramp))]
	}
}

// NameHash hashes a span name into a stable ramp index, consistent across
// frames and across views for the same symbol. xxhash is non-cryptographic
// and fast enough to call per-span per-frame without a cache.
func NameHash(name string) uint64 {
	return xxhash.Sum64String(name)
}
