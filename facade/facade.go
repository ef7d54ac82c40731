// Package facade implements the narrow command surface spec.md §4.10/§6
// exposes to a host: load/clear/navigate/export plus a flat, serializable
// state snapshot and a change subscription. It is the only package a host
// application (the viewer, a CLI, a test harness) needs to import; every
// command validates or clamps its input and never fails except for the
// two operations spec.md §7 names as fallible (load, export). The façade
// is driven from a single goroutine, per spec.md §5 — facade.LoadAsync is
// the one documented exception, offloading a parse to a background
// goroutine and handing the finished Profile back through Drain.
package facade

import (
	"log"
	"time"

	"github.com/proftrace/proftrace/colormap"
	"github.com/proftrace/proftrace/export"
	"github.com/proftrace/proftrace/geom"
	"github.com/proftrace/proftrace/interaction"
	"github.com/proftrace/proftrace/lane"
	"github.com/proftrace/proftrace/model"
	"github.com/proftrace/proftrace/parsers"
	"github.com/proftrace/proftrace/render"
	"github.com/proftrace/proftrace/session"
	"github.com/proftrace/proftrace/theme"
	"github.com/proftrace/proftrace/viewport"
	"github.com/proftrace/proftrace/views"
)

// zoomToSelectionPadding widens a zoom-to-selection window by this
// fraction of the selected span's own width on each side, so the span
// isn't drawn flush against the viewport edges.
const zoomToSelectionPadding = 0.15

// minViewportSpan is the smallest span setViewport/zoomToSelection will
// produce, keeping the spec.md §8 invariant start < end strictly true
// even for a zero-duration selection.
const minViewportSpan = 0.0001

// Facade owns every piece of mutable viewer state and is the single
// entry point a host mutates. None of its fields are safe for concurrent
// mutation; LoadAsync/Drain is the one seam designed for a second
// goroutine.
type Facade struct {
	Session   *session.Session
	Lanes     *lane.Manager
	Viewport  *viewport.Viewport
	Spring    *viewport.Spring
	Theme     *theme.Theme
	ColorMode colormap.Mode
	Selection interaction.Selection
	Search    interaction.SearchState

	// Logger receives assertion failures logged in release builds (see
	// debug_stub.go); nil means silent, per spec.md §7's ambient
	// logging policy.
	Logger *log.Logger

	generation uint64
	listeners  []func(State)
	pending    chan loadResult
}

type loadResult struct {
	label   string
	profile *model.Profile
	err     error
}

// New returns a Facade with an empty session and default theme/viewport,
// ready to accept commands.
func New() *Facade {
	return &Facade{
		Session:  session.New(),
		Lanes:    lane.NewManager(),
		Viewport: viewport.New(),
		Spring:   viewport.NewSpring(viewport.DefaultSpringConfig),
		Theme:    theme.Light,
		pending:  make(chan loadResult, 8),
	}
}

func clampf(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// bumpAndNotify advances the layout-cache generation and informs every
// registered listener of the new state, per spec.md §4.10's "a change
// subscription fires whenever any state touched by a command mutates."
func (f *Facade) bumpAndNotify() {
	f.generation++
	if len(f.listeners) == 0 {
		return
	}
	st := f.GetState()
	for _, fn := range f.listeners {
		if fn != nil {
			fn(st)
		}
	}
}

// Generation is the current layout-cache generation, passed to
// lane.Manager.CachedLayout/StoreLayout and interaction.HitTest so a
// host can tell whether a cached rect list is still current.
func (f *Facade) Generation() uint64 {
	return f.generation
}

// entry returns the session entry for a profile handle, or the zero
// Entry if unknown.
func (f *Facade) entry(profileHandle int64) session.Entry {
	for _, e := range f.Session.Entries() {
		if int64(e.Handle) == profileHandle {
			return e
		}
	}
	return session.Entry{}
}

// LoadProfile detects data's format, parses it, admits it to the
// session, and creates one lane per thread/counter/marker-track/
// async-track/frame-track the new profile carries — spec.md §3's "Lanes
// are owned by the LaneManager" extended to mean a freshly loaded
// profile's tracks appear as lanes immediately, with no separate
// "create lane" command a host would otherwise have to issue once per
// track by hand.
func (f *Facade) LoadProfile(label string, data []byte) (session.Handle, error) {
	h, err := f.Session.AddProfile(label, data)
	if err != nil {
		return 0, err
	}
	f.adoptLanes(h)
	f.bumpAndNotify()
	return h, nil
}

// LoadProfileAs is LoadProfile but with a caller-supplied format,
// bypassing content sniffing.
func (f *Facade) LoadProfileAs(label string, format model.Format, data []byte) (session.Handle, error) {
	h, err := f.Session.AddProfileAs(label, format, data)
	if err != nil {
		return 0, err
	}
	f.adoptLanes(h)
	f.bumpAndNotify()
	return h, nil
}

// LoadAsync parses data on a background goroutine and delivers the
// result to the next Drain call, per spec.md §5's "may be offloaded to a
// worker thread but must deliver a fully built Profile atomically." The
// façade itself is touched only by Drain, on the façade's own goroutine.
func (f *Facade) LoadAsync(label string, data []byte) {
	go func() {
		p, err := parsers.Parse(data)
		f.pending <- loadResult{label: label, profile: p, err: err}
	}()
}

// Drain admits every LoadAsync result that has completed since the last
// Drain call, returning the parse errors (if any) in completion order.
// A host calls this once per tick; it never blocks.
func (f *Facade) Drain() []error {
	var errs []error
	changed := false
	for {
		select {
		case res := <-f.pending:
			if res.err != nil {
				errs = append(errs, res.err)
				continue
			}
			h := f.Session.AdoptProfile(res.label, res.profile)
			f.adoptLanes(h)
			changed = true
		default:
			if changed {
				f.bumpAndNotify()
			}
			return errs
		}
	}
}

func (f *Facade) adoptLanes(h session.Handle) {
	p := f.Session.Profile(h)
	if p == nil {
		return
	}
	for _, t := range p.Threads {
		l := f.Lanes.AddLane(lane.KindThread, int64(h))
		l.ThreadID, l.HasThreadID = t.ID, true
	}
	for _, c := range p.Counters {
		l := f.Lanes.AddLane(lane.KindCounter, int64(h))
		l.CounterName = c.Name
	}
	if len(p.Markers) > 0 {
		f.Lanes.AddLane(lane.KindMarker, int64(h))
	}
	if len(p.AsyncSpans) > 0 {
		f.Lanes.AddLane(lane.KindAsync, int64(h))
	}
	if len(p.Frames) > 0 {
		f.Lanes.AddLane(lane.KindFrame, int64(h))
	}
}

// ClearSession drops every loaded profile, its derived lanes, and any
// selection/search state that referenced them, per spec.md §4.2's
// clear() contract.
func (f *Facade) ClearSession() {
	f.Session.Clear()
	f.Lanes = lane.NewManager()
	f.Selection = interaction.Clear()
	f.Search = interaction.SearchState{}
	f.Viewport = viewport.New()
	f.bumpAndNotify()
}

// SetProfileOffset shifts h's profile along the session timeline.
func (f *Facade) SetProfileOffset(h session.Handle, offsetUS int64) {
	f.Session.SetOffset(h, offsetUS)
	f.bumpAndNotify()
}

// SetTheme switches to the named theme ("light"/"dark"), per spec.md
// §6's setTheme command.
func (f *Facade) SetTheme(name string) {
	f.Theme = theme.ByName(name)
	f.bumpAndNotify()
}

// ToggleTheme switches between Light and Dark, backing the keyboard
// surface's theme-toggle binding (spec.md §6, key T).
func (f *Facade) ToggleTheme() {
	f.Theme = theme.Toggle(f.Theme)
	f.bumpAndNotify()
}

// SetViewType changes a single lane's view transform.
func (f *Facade) SetViewType(laneID int, vt lane.ViewType) {
	if l, ok := f.Lanes.Lane(laneID); ok {
		l.ViewType = vt
	}
	f.bumpAndNotify()
}

// SetColorMode changes how spans are colored across every lane.
func (f *Facade) SetColorMode(mode colormap.Mode) {
	f.ColorMode = mode
	f.bumpAndNotify()
}

// searchTargets collects every thread lane's (profile, thread) pair for
// SetSearch to scan, per spec.md §4.8's "scanned across all spans in all
// visible lanes" — hidden lanes are excluded deliberately, so a search
// never surfaces a match the viewer has no way to show.
func (f *Facade) searchTargets() []interaction.SearchTarget {
	var targets []interaction.SearchTarget
	for _, l := range f.Lanes.VisibleLanes() {
		if l.Kind != lane.KindThread || !l.HasThreadID {
			continue
		}
		p := f.Session.Profile(session.Handle(l.ProfileHandle))
		if p == nil {
			continue
		}
		targets = append(targets, interaction.SearchTarget{
			ProfileHandle: l.ProfileHandle, Profile: p, ThreadID: l.ThreadID,
		})
	}
	return targets
}

// SetSearch sets the active search query, re-scanning every visible
// thread lane. An empty query clears the search entirely.
func (f *Facade) SetSearch(query string) {
	f.Search = interaction.SetQuery(query, f.searchTargets())
	f.bumpAndNotify()
}

// centerOnActiveMatch re-centers the viewport on the active search
// match, per spec.md §4.8's next/prev-match viewport animation.
func (f *Facade) centerOnActiveMatch() {
	m, ok := f.Search.ActiveMatch()
	if !ok {
		return
	}
	p := f.Session.Profile(session.Handle(m.ProfileHandle))
	if p == nil {
		return
	}
	entry := f.entry(m.ProfileHandle)
	info := f.Session.Info()
	start, end := interaction.CenterWindow(p, entry.OffsetUS, info.StartUS, info.EndUS, m.FrameID, f.Viewport.Span())
	f.Viewport.AnimateTo(time.Now(), start, end, 200*time.Millisecond)
}

// NextSearchResult advances to the next match and centers the viewport
// on it, wrapping around at the end of the match list.
func (f *Facade) NextSearchResult() {
	f.Search = f.Search.NextMatch()
	f.centerOnActiveMatch()
	f.bumpAndNotify()
}

// PrevSearchResult retreats to the previous match and centers on it.
func (f *Facade) PrevSearchResult() {
	f.Search = f.Search.PrevMatch()
	f.centerOnActiveMatch()
	f.bumpAndNotify()
}

// SelectSpan selects a span within a profile/lane.
func (f *Facade) SelectSpan(h session.Handle, laneIndex int, id model.FrameID) {
	f.assertf(id != model.NoFrame, "SelectSpan called with the NoFrame sentinel")
	p := f.Session.Profile(h)
	if p == nil {
		return
	}
	f.Selection = interaction.Select(p, int64(h), laneIndex, id)
	f.bumpAndNotify()
}

// ClearSelection drops the current selection, if any.
func (f *Facade) ClearSelection() {
	f.Selection = interaction.Clear()
	f.bumpAndNotify()
}

func (f *Facade) selectedProfile() *model.Profile {
	if !f.Selection.Has {
		return nil
	}
	return f.Session.Profile(session.Handle(f.Selection.ProfileHandle))
}

// NavigateToParent moves the selection to its span's parent.
func (f *Facade) NavigateToParent() {
	if p := f.selectedProfile(); p != nil {
		f.Selection = interaction.NavigateToParent(p, f.Selection)
	}
	f.bumpAndNotify()
}

// NavigateToChild moves the selection to its span's first child.
func (f *Facade) NavigateToChild() {
	if p := f.selectedProfile(); p != nil {
		f.Selection = interaction.NavigateToChild(p, f.Selection)
	}
	f.bumpAndNotify()
}

// NavigateToNextSibling moves the selection to its span's next sibling.
func (f *Facade) NavigateToNextSibling() {
	if p := f.selectedProfile(); p != nil {
		f.Selection = interaction.NavigateToNextSibling(p, f.Selection)
	}
	f.bumpAndNotify()
}

// NavigateToPrevSibling moves the selection to its span's previous sibling.
func (f *Facade) NavigateToPrevSibling() {
	if p := f.selectedProfile(); p != nil {
		f.Selection = interaction.NavigateToPrevSibling(p, f.Selection)
	}
	f.bumpAndNotify()
}

// SetLaneVisibility toggles one lane's visibility.
func (f *Facade) SetLaneVisibility(laneID int, visible bool) {
	f.Lanes.SetVisible(laneID, visible)
	f.bumpAndNotify()
}

// SetLaneHeight resizes one lane, clamped to [lane.MinHeight,lane.MaxHeight].
func (f *Facade) SetLaneHeight(laneID int, px int) {
	f.Lanes.SetHeight(laneID, px)
	f.bumpAndNotify()
}

// ReorderLanes moves the lane at position from to position to.
func (f *Facade) ReorderLanes(from, to int) {
	f.Lanes.MoveLane(from, to)
	f.bumpAndNotify()
}

// SetViewport sets the fractional [start,end] window directly, clamping
// to the spec.md §8 invariant 0 ≤ start < end ≤ 1 and cancelling any
// animation in flight.
func (f *Facade) SetViewport(start, end float64) {
	f.Viewport.CancelAnimation()
	start = clampf(start, 0, 1)
	end = clampf(end, start+minViewportSpan, 1)
	f.Viewport.Start, f.Viewport.End = start, end
	f.bumpAndNotify()
}

// ResetZoom pushes the current window to history and resets to [0,1].
func (f *Facade) ResetZoom() {
	f.Viewport.ResetZoom()
	f.bumpAndNotify()
}

// ZoomToSelection frames the viewport around the selected span, widened
// by zoomToSelectionPadding on each side. No-op without a selection.
func (f *Facade) ZoomToSelection() {
	p := f.selectedProfile()
	if p == nil {
		return
	}
	entry := f.entry(f.Selection.ProfileHandle)
	info := f.Session.Info()
	total := float64(info.EndUS - info.StartUS)
	if total <= 0 {
		return
	}
	s := p.Span(f.Selection.FrameID)
	alignedStart := session.AlignedTime(p, entry.OffsetUS, s.StartUS)
	alignedEnd := session.AlignedTime(p, entry.OffsetUS, s.EndUS)
	fracStart := float64(alignedStart-info.StartUS) / total
	fracEnd := float64(alignedEnd-info.StartUS) / total
	pad := (fracEnd - fracStart) * zoomToSelectionPadding
	if pad <= 0 {
		pad = minViewportSpan
	}

	f.Viewport.CancelAnimation()
	f.Viewport.PushHistory()
	start := clampf(fracStart-pad, 0, 1)
	end := clampf(fracEnd+pad, start+minViewportSpan, 1)
	f.Viewport.Start, f.Viewport.End = start, end
	f.bumpAndNotify()
}

// NavigateBack restores the most recently pushed viewport window.
func (f *Facade) NavigateBack() {
	f.Viewport.CancelAnimation()
	f.Viewport.Back()
	f.bumpAndNotify()
}

// NavigateForward replays the most recently undone viewport window.
func (f *Facade) NavigateForward() {
	f.Viewport.CancelAnimation()
	f.Viewport.Forward()
	f.bumpAndNotify()
}

// ExportJSON serializes h's profile to the stable JSON schema, per
// spec.md §6's exportJSON command.
func (f *Facade) ExportJSON(h session.Handle) ([]byte, error) {
	p := f.Session.Profile(h)
	if p == nil {
		return nil, &model.ExportError{Kind: model.NoProfileLoaded}
	}
	data, err := export.MarshalJSON(p)
	if err != nil {
		return nil, &model.ExportError{Kind: model.SerializationFailed, Reason: err.Error()}
	}
	return data, nil
}

// ExportSVG renders every visible lane bound to h into one stand-alone
// SVG document widthPx by heightPx CSS pixels, stacking lane headers and
// content exactly as the interactive viewer lays them out, per spec.md
// §6's exportSVG command.
func (f *Facade) ExportSVG(h session.Handle, widthPx, heightPx float64) (string, error) {
	p := f.Session.Profile(h)
	if p == nil {
		return "", &model.ExportError{Kind: model.NoProfileLoaded}
	}
	entry := f.entry(int64(h))
	info := f.Session.Info()

	cmds := f.Lanes.RenderHeaders(widthPx, 0)
	for _, l := range f.Lanes.VisibleLanes() {
		if l.ProfileHandle != int64(h) {
			continue
		}
		top, ok := f.Lanes.LaneTop(l.ID)
		if !ok {
			continue
		}
		laneCmds := f.renderLaneForExport(p, int64(h), entry.OffsetUS, info, l, widthPx)
		if len(laneCmds) == 0 {
			continue
		}
		cmds = append(cmds, render.PushTransform{Translate: geom.Point{X: 0, Y: top}, ScaleX: 1, ScaleY: 1})
		cmds = append(cmds, laneCmds...)
		cmds = append(cmds, render.PopTransform{})
	}

	return export.RenderSVG(cmds, widthPx, heightPx, f.Theme), nil
}

// renderLaneForExport dispatches one lane's content to the matching view
// transform, mirroring the switch a live renderer would do per frame.
func (f *Facade) renderLaneForExport(p *model.Profile, handle, offsetUS int64, info session.Info, l *lane.Lane, widthPx float64) []render.Command {
	ctx := &views.Context{
		Profile:        p,
		ProfileHandle:  handle,
		OffsetUS:       offsetUS,
		Viewport:       f.Viewport,
		SessionStartUS: info.StartUS,
		SessionEndUS:   info.EndUS,
		WidthPx:        widthPx,
		HeightPx:       float64(l.HeightPx),
		ColorMode:      f.ColorMode,
		Selection: views.Selection{
			ProfileHandle: f.Selection.ProfileHandle,
			FrameID:       f.Selection.FrameID,
			Has:           f.Selection.Has,
		},
		Search: f.Search,
	}
	switch l.Kind {
	case lane.KindThread:
		switch l.ViewType {
		case lane.LeftHeavy:
			return views.LeftHeavy(ctx, l.ThreadID)
		case lane.Icicle:
			return views.Icicle(ctx, l.ThreadID)
		case lane.Sandwich:
			cmds, err := views.Sandwich(ctx, l.ThreadID)
			if err != nil {
				return nil
			}
			return cmds
		case lane.Ranked:
			return views.Ranked(ctx, l.ThreadID, views.RankBySelfTime, views.SortDescending)
		default:
			return views.TimeOrder(ctx, l.ThreadID)
		}
	case lane.KindCounter:
		for i := range p.Counters {
			c := &p.Counters[i]
			if c.Name != l.CounterName {
				continue
			}
			min, max := counterRange(c)
			return views.Counter(ctx, c, min, max, widthPx, float64(l.HeightPx))
		}
		return nil
	case lane.KindMarker:
		return views.Marker(ctx, p.Markers, float64(l.HeightPx))
	case lane.KindAsync:
		return views.Async(ctx, p.AsyncSpans)
	case lane.KindFrame:
		return views.Frame(ctx, p.Frames, float64(l.HeightPx))
	default:
		return nil
	}
}

// counterRange scans c's samples for their value range, used to scale
// views.Counter's track the same way a live renderer would.
func counterRange(c *model.Counter) (min, max float64) {
	if len(c.Samples) == 0 {
		return 0, 1
	}
	min, max = c.Samples[0].Value, c.Samples[0].Value
	for _, s := range c.Samples[1:] {
		if s.Value < min {
			min = s.Value
		}
		if s.Value > max {
			max = s.Value
		}
	}
	if min == max {
		max = min + 1
	}
	return min, max
}

// OnStateChange registers fn to be called with the latest State after
// every mutating command, per spec.md §4.10's change subscription. The
// returned function unregisters fn.
func (f *Facade) OnStateChange(fn func(State)) (unsubscribe func()) {
	f.listeners = append(f.listeners, fn)
	idx := len(f.listeners) - 1
	return func() {
		if idx < len(f.listeners) {
			f.listeners[idx] = nil
		}
	}
}

// Tick advances the viewport's in-flight animation and the WASD pan
// spring, returning whether either is still active (so a host knows
// whether to keep invalidating). It does not itself bump the generation
// unless something actually moved.
func (f *Facade) Tick(now time.Time, panX, panY float64) bool {
	animating := f.Viewport.Tick(now)
	dx, dy := f.Spring.Tick(now, panX, panY)
	moved := dx != 0 || dy != 0
	if moved {
		span := f.Viewport.Span()
		f.Viewport.Start = clampf(f.Viewport.Start+dx, 0, 1-span)
		f.Viewport.End = f.Viewport.Start + span
		f.Viewport.ScrollY += dy
	}
	if animating || moved {
		f.bumpAndNotify()
	}
	return animating || !f.Spring.Idle()
}
