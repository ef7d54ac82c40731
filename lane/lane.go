// Package lane implements the vertical layout of the viewer: an ordered
// list of Lanes (one per thread, counter, marker, async track, or frame
// track), their visibility and height, and the reverse lookups interaction
// needs to turn a pixel position into a lane.
package lane

import (
	"github.com/proftrace/proftrace/model"
)

// ViewType selects which view transform a thread lane renders with.
// Non-thread lanes ignore this field.
type ViewType uint8

const (
	TimeOrder ViewType = iota
	LeftHeavy
	Icicle
	Sandwich
	Ranked
)

func (v ViewType) String() string {
	switch v {
	case TimeOrder:
		return "time-order"
	case LeftHeavy:
		return "left-heavy"
	case Icicle:
		return "icicle"
	case Sandwich:
		return "sandwich"
	case Ranked:
		return "ranked"
	default:
		return "view-type(?)"
	}
}

// Kind is the closed set of tracks a Lane can bind to.
type Kind uint8

const (
	KindThread Kind = iota
	KindCounter
	KindMarker
	KindAsync
	KindFrame
)

func (k Kind) String() string {
	switch k {
	case KindThread:
		return "thread"
	case KindCounter:
		return "counter"
	case KindMarker:
		return "marker"
	case KindAsync:
		return "async"
	case KindFrame:
		return "frame"
	default:
		return "kind(?)"
	}
}

const (
	MinHeight = 16
	MaxHeight = 600

	// HeaderHeight is the fixed height, in pixels, of a lane's header
	// strip, per spec.md §4.4.
	HeaderHeight = 28
)

// Lane is one horizontal display track, bound either to a thread or to an
// auxiliary track derived from the same profile (counter, marker, async,
// frame), per spec.md §3.
type Lane struct {
	ID            int
	ProfileHandle int64
	Kind          Kind

	ThreadID    model.ThreadID
	HasThreadID bool

	CounterName string

	HeightPx int
	ScrollY  float64
	Visible  bool

	ViewType ViewType

	SelectedFrame    model.FrameID
	HasSelectedFrame bool
}

// clampHeight keeps HeightPx within [MinHeight,MaxHeight] per spec.md §3.
func clampHeight(px int) int {
	if px < MinHeight {
		return MinHeight
	}
	if px > MaxHeight {
		return MaxHeight
	}
	return px
}
