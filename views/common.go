// Package views implements the pure view transforms of spec.md §4.6: each
// one maps (profile, lane, viewport, width, height, selection, search) to a
// slice of render.Command, with no side effects and no cached state of its
// own. Layout mechanics (row math, left-heavy packing, axis tick choice)
// are adapted from the teacher's cmd/gotraceui/{timeline,flamegraph}.go;
// the transform boundaries themselves follow the Rust reference's
// core/src/views/*.rs one-file-per-transform split.
package views

import (
	"math"
	"sort"

	"github.com/proftrace/proftrace/colormap"
	"github.com/proftrace/proftrace/lane"
	"github.com/proftrace/proftrace/model"
	"github.com/proftrace/proftrace/render"
	"github.com/proftrace/proftrace/theme"
	"github.com/proftrace/proftrace/viewport"
)

const (
	// RowHeight is the pixel height of one span row in a flame-shaped
	// view, per spec.md §4.6.
	RowHeight = 20.0
	// MinWidthPx is the narrowest a span's rect may be before it is
	// dropped entirely rather than drawn as a sliver.
	MinWidthPx = 0.5
	// LabelMinPx is the narrowest a span's rect may be before its name
	// label is suppressed.
	LabelMinPx = 20.0
)

// Selection names the one span the viewer currently has selected, if any.
// Lane-bound views (sandwich in particular) need this to know F.
type Selection struct {
	ProfileHandle int64
	FrameID       model.FrameID
	Has           bool
}

// Matches reports whether id is the selection's span within profileHandle.
func (s Selection) Matches(profileHandle int64, id model.FrameID) bool {
	return s.Has && s.ProfileHandle == profileHandle && s.FrameID == id
}

// SearchLookup is the read-only view a transform needs of interaction's
// search state: whether a span currently matches the active query.
type SearchLookup interface {
	IsMatch(profileHandle int64, id model.FrameID) bool
	Active() bool
}

// noSearch is used where the caller has no active search, so every span
// renders at full color.
type noSearch struct{}

func (noSearch) IsMatch(int64, model.FrameID) bool { return false }
func (noSearch) Active() bool                      { return false }

// NoSearch is the SearchLookup to pass when no search query is active.
var NoSearch SearchLookup = noSearch{}

// Context carries everything a thread-bound view transform needs beyond
// the profile and lane themselves. SessionStartUS/OffsetUS let the
// transform convert a span's profile-local StartUS/EndUS into the
// session's aligned timeline: aligned = local - profile.StartTimeUS +
// OffsetUS, matching session.AlignedTime (spec.md §4.2).
type Context struct {
	Profile       *model.Profile
	ProfileHandle int64
	OffsetUS      int64

	Viewport *viewport.Viewport
	// SessionStartUS, SessionEndUS bound the session's full aligned
	// timeline; Viewport.Start/End are fractions of this span.
	SessionStartUS, SessionEndUS int64

	WidthPx, HeightPx float64

	ColorMode colormap.Mode
	Selection Selection
	Search    SearchLookup
}

// visibleWindow computes [t0,t1], the aligned-time window the viewport
// currently shows, per spec.md §4.6 step 1.
func (c *Context) visibleWindow() (t0, t1 int64) {
	span := c.SessionEndUS - c.SessionStartUS
	t0 = c.SessionStartUS + int64(c.Viewport.Start*float64(span))
	t1 = c.SessionStartUS + int64(c.Viewport.End*float64(span))
	return t0, t1
}

// pixelsPerMicro computes ppu, per spec.md §4.6 step 2.
func (c *Context) pixelsPerMicro(t0, t1 int64) float64 {
	d := float64(t1 - t0)
	if d <= 0 {
		return 0
	}
	return c.WidthPx / d
}

// alignLocal converts a profile-local microsecond timestamp into the
// session's aligned timeline.
func (c *Context) alignLocal(localUS int64) int64 {
	return localUS - c.Profile.StartTimeUS + c.OffsetUS
}

// localWindow converts the aligned [t0,t1] visible window back into the
// profile's own local timestamps, for VisibleSpans/Counter queries that
// operate on local time.
func (c *Context) localWindow(t0, t1 int64) (l0, l1 int64) {
	return t0 + c.Profile.StartTimeUS - c.OffsetUS, t1 + c.Profile.StartTimeUS - c.OffsetUS
}

// snap rounds x to the nearest device pixel, per spec.md §4.6's "X ...
// snapped to the nearest device pixel" crispness rule.
func snap(x float64) float64 {
	return math.Round(x)
}

// spanFillToken resolves the fill token for a span, honoring search
// dimming: non-matching spans during an active search lose their color
// in favor of FlameNeutral, per spec.md §4.8.
func spanFillToken(c *Context, s *model.Span) theme.Token {
	if c.Search.Active() && !c.Search.IsMatch(c.ProfileHandle, s.ID) {
		return theme.FlameNeutral
	}
	return colormap.Resolve(s, c.ColorMode)
}

// spanOverlayCommands appends the selection/search overlay rects that sit
// on top of a span's base DrawRect, if any apply.
func spanOverlayCommands(cmds []render.Command, c *Context, s *model.Span, rect render.DrawRect) []render.Command {
	if c.Search.Active() && c.Search.IsMatch(c.ProfileHandle, s.ID) {
		cmds = append(cmds, render.DrawRect{Rect: rect.Rect, Fill: theme.SearchHighlight, HasBorder: false})
	}
	if c.Selection.Matches(c.ProfileHandle, s.ID) {
		cmds = append(cmds, render.DrawRect{Rect: rect.Rect, Fill: theme.SelectionHighlight, HasBorder: false})
	}
	return cmds
}

// byDurationDesc sorts a []model.FrameID slice by the referenced span's
// Duration descending, breaking ties by ID for determinism. Used by the
// left-heavy and sandwich layouts.
func byDurationDesc(p *model.Profile, ids []model.FrameID) {
	sort.Slice(ids, func(i, j int) bool {
		a, b := p.Span(ids[i]), p.Span(ids[j])
		if a.Duration() != b.Duration() {
			return a.Duration() > b.Duration()
		}
		return a.ID < b.ID
	})
}

// LaneKindOf reports the lane.Kind a *lane.Lane carries, re-exported so
// view-selection code in the facade doesn't need to import lane directly
// for this one check.
func LaneKindOf(l *lane.Lane) lane.Kind {
	return l.Kind
}
